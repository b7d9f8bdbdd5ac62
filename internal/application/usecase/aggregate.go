package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
)

const topCosts = 10

// roundCurrency arredonda para duas casas com arredondamento bancário
// (half-even), o mesmo usado em todas as cifras do relatório.
func roundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// dedupeCosts colapsa entradas com o mesmo nome de serviço preservando a
// posição da primeira ocorrência e ficando com o último valor visto.
func dedupeCosts(entries []entity.ServiceCost) []entity.ServiceCost {
	index := make(map[string]int, len(entries))
	out := make([]entity.ServiceCost, 0, len(entries))
	for _, e := range entries {
		if pos, ok := index[e.ServiceName]; ok {
			out[pos].Amount = e.Amount
			continue
		}
		index[e.ServiceName] = len(out)
		out = append(out, e)
	}
	return out
}

// rankCosts ordena por valor decrescente (ordenação estável, empates mantêm a
// ordem de chegada) e corta nos dez maiores gastos.
func rankCosts(entries []entity.ServiceCost) []entity.ServiceCost {
	ranked := make([]entity.ServiceCost, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if len(ranked) > topCosts {
		ranked = ranked[:topCosts]
	}
	return ranked
}

// sumCosts acumula os valores já arredondados; o total é a soma exibida, não
// a soma bruta rearredondada.
func sumCosts(entries []entity.ServiceCost) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// rankAnomalies ordena por impacto máximo decrescente, estável nos empates.
func rankAnomalies(anomalies []entity.Anomaly) []entity.Anomaly {
	ranked := make([]entity.Anomaly, len(anomalies))
	copy(ranked, anomalies)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MaxImpact.GreaterThan(ranked[j].MaxImpact)
	})
	return ranked
}

// rankReservations ordena por economia mensal estimada decrescente.
func rankReservations(items []entity.Reservation) []entity.Reservation {
	ranked := make([]entity.Reservation, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MonthlySavings.GreaterThan(ranked[j].MonthlySavings)
	})
	return ranked
}

// compareBudget deriva o limite semanal (limite mensal / 4, arredondado) e
// sinaliza estouro quando o custo total da semana o ultrapassa. Sem orçamento
// encontrado não há comparação a fazer.
func compareBudget(total, monthlyLimit decimal.Decimal, found bool) *entity.BudgetStatus {
	if !found {
		return nil
	}
	weekly := roundCurrency(monthlyLimit.Div(decimal.NewFromInt(4)))
	return &entity.BudgetStatus{
		WeeklyLimit: weekly,
		TotalCost:   total,
		Exceeded:    total.GreaterThan(weekly),
	}
}
