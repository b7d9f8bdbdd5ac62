package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.005", "12"}, // half-even: arredonda para o par
		{"12.015", "12.02"},
		{"3.14159", "3.14"},
		{"10.126", "10.13"},
		{"7", "7"},
	}
	for _, tt := range tests {
		got := roundCurrency(dec(t, tt.in))
		assert.True(t, dec(t, tt.want).Equal(got), "round(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestRoundCurrencyIdempotent(t *testing.T) {
	once := roundCurrency(dec(t, "99.999"))
	assert.True(t, once.Equal(roundCurrency(once)))
}

func TestDedupeCosts(t *testing.T) {
	entries := []entity.ServiceCost{
		{ServiceName: "Amazon EC2", Amount: dec(t, "10")},
		{ServiceName: "Amazon S3", Amount: dec(t, "5")},
		{ServiceName: "Amazon EC2", Amount: dec(t, "12")},
	}

	out := dedupeCosts(entries)

	require.Len(t, out, 2)
	assert.Equal(t, "Amazon EC2", out[0].ServiceName)
	assert.True(t, dec(t, "12").Equal(out[0].Amount), "duplicate keeps the last amount seen")
	assert.Equal(t, "Amazon S3", out[1].ServiceName)
}

func TestRankCosts(t *testing.T) {
	entries := []entity.ServiceCost{
		{ServiceName: "low", Amount: dec(t, "1")},
		{ServiceName: "high", Amount: dec(t, "30")},
		{ServiceName: "mid-a", Amount: dec(t, "10")},
		{ServiceName: "mid-b", Amount: dec(t, "10")},
	}

	ranked := rankCosts(entries)

	require.Len(t, ranked, 4)
	assert.Equal(t, "high", ranked[0].ServiceName)
	// empates mantêm a ordem de chegada
	assert.Equal(t, "mid-a", ranked[1].ServiceName)
	assert.Equal(t, "mid-b", ranked[2].ServiceName)
	assert.Equal(t, "low", ranked[3].ServiceName)
}

func TestRankCostsCapsAtTen(t *testing.T) {
	var entries []entity.ServiceCost
	for i := 0; i < 15; i++ {
		entries = append(entries, entity.ServiceCost{
			ServiceName: string(rune('a' + i)),
			Amount:      decimal.NewFromInt(int64(i)),
		})
	}

	ranked := rankCosts(entries)

	require.Len(t, ranked, 10)
	assert.Equal(t, "o", ranked[0].ServiceName)
	assert.True(t, decimal.NewFromInt(14).Equal(ranked[0].Amount))
	assert.True(t, decimal.NewFromInt(5).Equal(ranked[9].Amount))
}

func TestSumCosts(t *testing.T) {
	entries := []entity.ServiceCost{
		{ServiceName: "a", Amount: dec(t, "1.11")},
		{ServiceName: "b", Amount: dec(t, "2.22")},
	}
	assert.True(t, dec(t, "3.33").Equal(sumCosts(entries)))
	assert.True(t, decimal.Zero.Equal(sumCosts(nil)))
}

func TestRankAnomalies(t *testing.T) {
	anomalies := []entity.Anomaly{
		{Service: "s3", MaxImpact: dec(t, "10")},
		{Service: "ec2", MaxImpact: dec(t, "50")},
		{Service: "rds", MaxImpact: dec(t, "30")},
	}

	ranked := rankAnomalies(anomalies)

	require.Len(t, ranked, 3)
	assert.Equal(t, "ec2", ranked[0].Service)
	assert.Equal(t, "rds", ranked[1].Service)
	assert.Equal(t, "s3", ranked[2].Service)
	// a entrada não é tocada
	assert.Equal(t, "s3", anomalies[0].Service)
}

func TestRankReservations(t *testing.T) {
	items := []entity.Reservation{
		{InstanceType: "small", MonthlySavings: dec(t, "5")},
		{InstanceType: "big", MonthlySavings: dec(t, "80")},
	}

	ranked := rankReservations(items)

	assert.Equal(t, "big", ranked[0].InstanceType)
	assert.Equal(t, "small", ranked[1].InstanceType)
}

func TestCompareBudget(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		monthly      string
		found        bool
		wantNil      bool
		wantWeekly   string
		wantExceeded bool
	}{
		{name: "no budget found", total: "10", monthly: "0", found: false, wantNil: true},
		{name: "under the weekly limit", total: "80", monthly: "400", found: true, wantWeekly: "100", wantExceeded: false},
		{name: "over the weekly limit", total: "105", monthly: "400", found: true, wantWeekly: "100", wantExceeded: true},
		{name: "exactly at the limit is not exceeded", total: "100", monthly: "400", found: true, wantWeekly: "100", wantExceeded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := compareBudget(dec(t, tt.total), dec(t, tt.monthly), tt.found)
			if tt.wantNil {
				assert.Nil(t, status)
				return
			}
			require.NotNil(t, status)
			assert.True(t, dec(t, tt.wantWeekly).Equal(status.WeeklyLimit))
			assert.Equal(t, tt.wantExceeded, status.Exceeded)
		})
	}
}
