package entity

import "github.com/shopspring/decimal"

// ServiceCost representa o custo amortizado semanal de um serviço AWS,
// arredondado para 2 casas decimais.
type ServiceCost struct {
	ServiceName string          `json:"service_name"`
	Amount      decimal.Decimal `json:"amount"`
}
