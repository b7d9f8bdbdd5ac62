package entity

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ReservationFamily identifica a família de recursos elegível para compra
// de instâncias reservadas.
type ReservationFamily string

const (
	FamilyCompute   ReservationFamily = "compute"
	FamilyDatabase  ReservationFamily = "database"
	FamilyWarehouse ReservationFamily = "warehouse"
	FamilyCache     ReservationFamily = "cache"
	FamilySearch    ReservationFamily = "search"
)

// Reservation é a variante única que cobre as cinco famílias de recomendação.
// Campos específicos de família ficam vazios nas demais; o FamilySchema
// correspondente decide quais entram na saída.
type Reservation struct {
	Family            ReservationFamily `json:"family"`
	Quantity          string            `json:"quantity"`
	InstanceType      string            `json:"instance_type"`
	Region            string            `json:"region"`
	Platform          string            `json:"platform,omitempty"`
	DatabaseEngine    string            `json:"database_engine,omitempty"`
	LicenseModel      string            `json:"license_model,omitempty"`
	CacheEngine       string            `json:"cache_engine,omitempty"`
	SizeFlexEligible  bool              `json:"size_flex_eligible,omitempty"`
	CurrentGeneration bool              `json:"current_generation"`
	UpfrontCost       decimal.Decimal   `json:"upfront_cost"`
	MonthlySavings    decimal.Decimal   `json:"estimated_monthly_savings"`
}

// Action devolve o texto de ação de compra ("Buy <qtd> <tipo>").
func (r Reservation) Action() string {
	return fmt.Sprintf("Buy %s %s", r.Quantity, r.InstanceType)
}

// FamilySchema descreve, por família, o nome do serviço no Cost Explorer, os
// títulos das seções e a extração de colunas — iterado genericamente no lugar
// de cinco blocos quase idênticos.
type FamilySchema struct {
	Family    ReservationFamily
	Service   string // nome do serviço na API do Cost Explorer
	HTMLTitle string // título da seção no corpo do e-mail
	BookTitle string // prefixo do título de bloco na planilha de RI
	Headers   []string
	Row       func(Reservation) []string
}

// FamilySchemas lista as consultas de recomendação na ordem fixa do relatório.
// O serviço de busca aparece duas vezes (alias legado da Elasticsearch),
// compartilhando o mesmo esquema de colunas.
var FamilySchemas = []FamilySchema{
	{
		Family:    FamilyCompute,
		Service:   "Amazon Elastic Compute Cloud - Compute",
		HTMLTitle: "RI Recommendations for Amazon Elastic Compute Cloud - Compute:",
		BookTitle: "Amazon EC2",
		Headers:   []string{"Action", "Instance Type", "Platform", "Region", "Current Generation", "Upfront Cost", "Estimated Monthly Savings"},
		Row: func(r Reservation) []string {
			return []string{r.Action(), r.InstanceType, r.Platform, r.Region, formatBool(r.CurrentGeneration), r.UpfrontCost.StringFixed(2), r.MonthlySavings.StringFixed(2)}
		},
	},
	{
		Family:    FamilyDatabase,
		Service:   "Amazon Relational Database Service",
		HTMLTitle: "RI Recommendations for Amazon Relational Database Service (RDS):",
		BookTitle: "Amazon RDS",
		Headers:   []string{"Action", "Instance Type", "Region", "Database", "License", "Current Generation", "Upfront Cost", "Estimated Monthly Savings"},
		Row: func(r Reservation) []string {
			return []string{r.Action(), r.InstanceType, r.Region, r.DatabaseEngine, r.LicenseModel, formatBool(r.CurrentGeneration), r.UpfrontCost.StringFixed(2), r.MonthlySavings.StringFixed(2)}
		},
	},
	{
		Family:    FamilyWarehouse,
		Service:   "Amazon Redshift",
		HTMLTitle: "RI Recommendations for Amazon Redshift:",
		BookTitle: "Amazon Redshift",
		Headers:   []string{"Action", "Instance Type", "Region", "SizeFlex Eligible", "Current Generation", "Upfront Cost", "Estimated Monthly Savings"},
		Row: func(r Reservation) []string {
			return []string{r.Action(), r.InstanceType, r.Region, formatBool(r.SizeFlexEligible), formatBool(r.CurrentGeneration), r.UpfrontCost.StringFixed(2), r.MonthlySavings.StringFixed(2)}
		},
	},
	{
		Family:    FamilyCache,
		Service:   "Amazon ElastiCache",
		HTMLTitle: "RI Recommendations for Amazon ElastiCache:",
		BookTitle: "Amazon ElastiCache",
		Headers:   []string{"Action", "Instance Type", "Region", "Cache Engine", "Current Generation", "Upfront Cost", "Estimated Monthly Savings"},
		Row: func(r Reservation) []string {
			return []string{r.Action(), r.InstanceType, r.Region, r.CacheEngine, formatBool(r.CurrentGeneration), r.UpfrontCost.StringFixed(2), r.MonthlySavings.StringFixed(2)}
		},
	},
	{
		Family:    FamilySearch,
		Service:   "Amazon Elasticsearch Service",
		HTMLTitle: "RI Recommendations for Amazon Elasticsearch Service:",
		BookTitle: "Amazon Elasticsearch Service",
		Headers:   searchHeaders,
		Row:       searchRow,
	},
	{
		Family:    FamilySearch,
		Service:   "Amazon OpenSearch Service",
		HTMLTitle: "RI Recommendations for Amazon OpenSearch Service:",
		BookTitle: "Amazon OpenSearch Service",
		Headers:   searchHeaders,
		Row:       searchRow,
	},
}

var searchHeaders = []string{"Action", "Instance Type", "Region", "Current Generation", "Upfront Cost", "Estimated Monthly Savings"}

func searchRow(r Reservation) []string {
	return []string{r.Action(), r.InstanceType, r.Region, formatBool(r.CurrentGeneration), r.UpfrontCost.StringFixed(2), r.MonthlySavings.StringFixed(2)}
}

func formatBool(b bool) string { return strconv.FormatBool(b) }
