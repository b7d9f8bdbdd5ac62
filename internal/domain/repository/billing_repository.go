package repository

import (
	"context"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BillingRepository defines the interface for billing, anomaly, budget and
// reservation-recommendation queries. Implementations resolve cross-account
// delegation internally: the home account is queried with the job's own
// identity, every other account through an assumed role.
type BillingRepository interface {
	// WeeklyServiceCosts devolve o custo amortizado da janela semanal,
	// agrupado por serviço.
	WeeklyServiceCosts(ctx context.Context, account entity.Account, window entity.ReportingWindow) ([]entity.ServiceCost, error)

	// MonthToDateCost devolve o custo acumulado do mês até o fim da semana.
	// found == false quando a consulta não devolve nenhum período.
	MonthToDateCost(ctx context.Context, account entity.Account, window entity.ReportingWindow) (amount decimal.Decimal, found bool, err error)

	// Anomalies devolve as anomalias do monitor da conta na janela semanal,
	// já normalizadas.
	Anomalies(ctx context.Context, account entity.Account, window entity.ReportingWindow) ([]entity.Anomaly, error)

	// MonthlyBudget devolve o limite do orçamento mensal da conta.
	// found == false quando nenhum orçamento existe (seção omitida).
	MonthlyBudget(ctx context.Context, account entity.Account, year int) (limit decimal.Decimal, found bool, err error)

	// ReservationRecommendations consulta as recomendações de compra de
	// instâncias reservadas para o serviço do esquema dado.
	ReservationRecommendations(ctx context.Context, account entity.Account, schema entity.FamilySchema) ([]entity.Reservation, error)
}
