package report

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
)

func testAccount() entity.Account {
	return entity.Account{
		ID:    "111122223333",
		Name:  "prod",
		Owner: "jane.doe@company.com",
	}
}

func testReport(t *testing.T) *entity.AccountReport {
	t.Helper()
	month := decimal.RequireFromString("900.00")
	return &entity.AccountReport{
		Account: testAccount(),
		ServiceCosts: []entity.ServiceCost{
			{ServiceName: "Amazon EC2", Amount: decimal.RequireFromString("120.50")},
			{ServiceName: "AWS Lambda", Amount: decimal.RequireFromString("3.20")},
		},
		TotalCost:   decimal.RequireFromString("123.70"),
		MonthToDate: &month,
		Budget: &entity.BudgetStatus{
			WeeklyLimit: decimal.RequireFromString("100.00"),
			TotalCost:   decimal.RequireFromString("123.70"),
			Exceeded:    true,
		},
		Anomalies: []entity.Anomaly{
			{
				Service:     "Amazon S3",
				StartDate:   "2024-01-02",
				EndDate:     "2024-01-03",
				Region:      "us-east-1",
				UsageType:   "DataTransfer-Out-Bytes",
				MaxImpact:   decimal.NewFromFloat(50.3),
				TotalImpact: decimal.NewFromFloat(75.1),
			},
		},
		Reservations: []entity.FamilyReservations{
			{
				Schema: entity.FamilySchemas[0],
				Items: []entity.Reservation{
					{
						Family:            entity.FamilyCompute,
						Quantity:          "3",
						InstanceType:      "m5.large",
						Platform:          "Linux/UNIX",
						Region:            "us-east-1",
						CurrentGeneration: true,
						UpfrontCost:       decimal.RequireFromString("1000"),
						MonthlySavings:    decimal.RequireFromString("80"),
					},
				},
			},
		},
	}
}

func TestRendererProducesBodyAndWorkbooks(t *testing.T) {
	window := testWindow(t)
	renderer, err := NewRenderer(window, []string{"jane.doe"})
	require.NoError(t, err)

	require.NoError(t, renderer.RenderAccount(testReport(t)))

	dir := t.TempDir()
	costPath, riPath, body, err := renderer.Finalize(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "AWSCOST_WeeklyReport_2024-01-01_to_2024-01-07.xlsx"), costPath)
	assert.Equal(t, filepath.Join(dir, "AWSCOST_RIReport_2024-01-01_to_2024-01-07.xlsx"), riPath)

	assert.Contains(t, body, "Account Owner: jane.doe@company.com")
	assert.Contains(t, body, "[!!Weekly budget limit exceeded!!] Total cost for all services this week == $123.70")
	assert.Contains(t, body, "Overall spend for the account in this month == $900.00")
	assert.Contains(t, body, "Anomaly Details for the account 111122223333 (prod):")
	assert.Contains(t, body, "RI Recommendations for Amazon Elastic Compute Cloud - Compute:")
	assert.Contains(t, body, "Buy 3 m5.large")
	assert.Contains(t, body, "######################################")

	costFile, err := excelize.OpenFile(costPath)
	require.NoError(t, err)
	defer costFile.Close()

	costRows, err := costFile.GetRows("jane.doe")
	require.NoError(t, err)
	// cabeçalho + 2 custos + 1 anomalia
	require.Len(t, costRows, 4)
	assert.Equal(t, costHeaders, costRows[0])
	assert.Equal(t, []string{"111122223333", "prod", "Amazon EC2", "120.50", "-", "-", "-", "-", "-", "-", "-"}, costRows[1])
	assert.Equal(t, []string{"111122223333", "prod", "-", "-", "Amazon S3", "2024-01-02", "2024-01-03", "us-east-1", "DataTransfer-Out-Bytes", "50.3", "75.1"}, costRows[3])

	riFile, err := excelize.OpenFile(riPath)
	require.NoError(t, err)
	defer riFile.Close()

	riRows, err := riFile.GetRows("jane.doe")
	require.NoError(t, err)
	// linha vazia + título do bloco + cabeçalho + 1 recomendação
	require.Len(t, riRows, 4)
	assert.Empty(t, riRows[0])
	assert.Equal(t, "Amazon EC2 for account prod", riRows[1][0])
	assert.Equal(t, entity.FamilySchemas[0].Headers, riRows[2])
	assert.Equal(t, []string{"Buy 3 m5.large", "m5.large", "Linux/UNIX", "us-east-1", "true", "1000.00", "80.00"}, riRows[3])
}

func TestRendererLockStep(t *testing.T) {
	// as linhas do corpo HTML e das planilhas saem do mesmo laço;
	// contagens têm de bater para qualquer volume de entradas.
	window := testWindow(t)
	renderer, err := NewRenderer(window, []string{"jane.doe"})
	require.NoError(t, err)

	rep := testReport(t)
	for i := 0; i < 8; i++ {
		rep.ServiceCosts = append(rep.ServiceCosts, entity.ServiceCost{
			ServiceName: fmt.Sprintf("service-%d", i),
			Amount:      decimal.NewFromInt(int64(i)),
		})
	}
	require.NoError(t, renderer.RenderAccount(rep))

	assert.Equal(t, 1+len(rep.ServiceCosts)+len(rep.Anomalies), renderer.cost.RowCount("jane.doe"))
	assert.Equal(t, 3+len(rep.Reservations[0].Items), renderer.ri.RowCount("jane.doe"))
}

func TestRendererSkipsEmptySections(t *testing.T) {
	window := testWindow(t)
	renderer, err := NewRenderer(window, []string{"jane.doe"})
	require.NoError(t, err)

	rep := testReport(t)
	rep.Anomalies = nil
	rep.Reservations = nil
	rep.Budget = nil
	rep.MonthToDate = nil
	require.NoError(t, renderer.RenderAccount(rep))

	_, _, body, err := renderer.Finalize(t.TempDir())
	require.NoError(t, err)

	assert.NotContains(t, body, "Anomaly Details")
	assert.NotContains(t, body, "RI Recommendations")
	assert.NotContains(t, body, "background-color: yellow")
	assert.NotContains(t, body, "Overall spend for the account in this month")
	assert.Contains(t, body, "Total cost for all services this week == $123.70")
	assert.Equal(t, 0, renderer.ri.RowCount("jane.doe"))
}

func TestRendererSharedOwnerSheet(t *testing.T) {
	window := testWindow(t)
	renderer, err := NewRenderer(window, []string{"jane.doe"})
	require.NoError(t, err)

	first := testReport(t)
	second := testReport(t)
	second.Account.ID = "444455556666"
	second.Account.Name = "staging"

	require.NoError(t, renderer.RenderAccount(first))
	require.NoError(t, renderer.RenderAccount(second))

	costPath, _, _, err := renderer.Finalize(t.TempDir())
	require.NoError(t, err)

	file, err := excelize.OpenFile(costPath)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("jane.doe")
	require.NoError(t, err)
	// contas com o mesmo dono acumulam na mesma aba
	require.Len(t, rows, 7)
	assert.Equal(t, "444455556666", rows[4][0])
}
