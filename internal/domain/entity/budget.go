package entity

import "github.com/shopspring/decimal"

// BudgetStatus compara o custo total da semana com o orçamento semanal
// (limite mensal dividido por 4, arredondado para 2 casas).
type BudgetStatus struct {
	WeeklyLimit decimal.Decimal `json:"weekly_limit"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Exceeded    bool            `json:"exceeded"`
}
