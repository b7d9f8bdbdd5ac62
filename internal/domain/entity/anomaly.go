package entity

import "github.com/shopspring/decimal"

// Anomaly é a forma normalizada de uma anomalia de custo do Cost Explorer.
// A conta local expõe o serviço na root cause ('Service'); contas delegadas
// no campo 'DimensionValue' — a normalização acontece na borda de ingestão,
// nunca na renderização.
type Anomaly struct {
	Service     string          `json:"service"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Region      string          `json:"region"`
	UsageType   string          `json:"usage_type"`
	MaxImpact   decimal.Decimal `json:"max_impact"`
	TotalImpact decimal.Decimal `json:"total_impact"`
}
