package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
	"github.com/diillson/aws-cost-reporter-go/internal/shared/types"
)

const subjectTemplate = "[AWS COSTING]: AWS Costs from %s to %s"

// ReportUseCase orquestra o ciclo completo do relatório semanal: coleta por
// conta, agregação, renderização e entrega.
type ReportUseCase struct {
	billing     repository.BillingRepository
	delivery    repository.DeliveryRepository
	newRenderer repository.RendererFactory
	cfg         *types.Config
	logger      zerolog.Logger
}

// NewReportUseCase cria o caso de uso com os repositórios já configurados.
func NewReportUseCase(
	billing repository.BillingRepository,
	delivery repository.DeliveryRepository,
	newRenderer repository.RendererFactory,
	cfg *types.Config,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		billing:     billing,
		delivery:    delivery,
		newRenderer: newRenderer,
		cfg:         cfg,
		logger:      logger,
	}
}

// Run executa o relatório da última semana ISO completa anterior a now.
func (uc *ReportUseCase) Run(ctx context.Context, now time.Time) error {
	window := entity.NewReportingWindow(now)
	uc.logger.Info().
		Str("week_start", window.StartDate()).
		Str("week_end", window.EndLabelDate()).
		Int("accounts", len(uc.cfg.Accounts)).
		Msg("Gerando relatório semanal de custos")

	renderer, err := uc.newRenderer(window, ownerSheets(uc.cfg.Accounts))
	if err != nil {
		return err
	}

	for _, acct := range uc.cfg.Accounts {
		rep, err := uc.collectAccount(ctx, acct, window, now.Year())
		if err != nil {
			return err
		}
		if err := renderer.RenderAccount(rep); err != nil {
			return err
		}
	}

	costPath, riPath, body, err := renderer.Finalize(uc.cfg.OutputDir)
	if err != nil {
		return err
	}

	if uc.cfg.SkipSend {
		uc.logger.Info().
			Str("cost_workbook", costPath).
			Str("ri_workbook", riPath).
			Msg("Envio desabilitado; planilhas geradas")
		return nil
	}

	// Falha de upload não interrompe o envio do e-mail.
	uc.delivery.Upload(ctx, costPath, uc.cfg.Bucket)

	subject := fmt.Sprintf(subjectTemplate, window.StartDate(), window.EndLabelDate())
	messageID, err := uc.delivery.Send(ctx, subject, uc.cfg.SendFrom, uc.cfg.Recipients, body, []string{costPath, riPath})
	if err != nil {
		return err
	}

	uc.logger.Info().
		Str("message_id", messageID).
		Strs("recipients", uc.cfg.Recipients).
		Msg("Relatório enviado")
	return nil
}

// collectAccount executa todas as consultas de uma conta e devolve o registro
// agregado pronto para renderização.
func (uc *ReportUseCase) collectAccount(ctx context.Context, acct entity.Account, window entity.ReportingWindow, year int) (*entity.AccountReport, error) {
	logger := uc.logger.With().Str("account_id", acct.ID).Logger()
	logger.Debug().Msg("Coletando custos da conta")

	raw, err := uc.billing.WeeklyServiceCosts(ctx, acct, window)
	if err != nil {
		return nil, err
	}
	costs := dedupeCosts(raw)
	for i := range costs {
		costs[i].Amount = roundCurrency(costs[i].Amount)
	}
	total := sumCosts(costs)
	costs = rankCosts(costs)

	rep := &entity.AccountReport{
		Account:      acct,
		ServiceCosts: costs,
		TotalCost:    total,
	}

	monthAmount, monthFound, err := uc.billing.MonthToDateCost(ctx, acct, window)
	if err != nil {
		return nil, err
	}
	if monthFound {
		rounded := roundCurrency(monthAmount)
		rep.MonthToDate = &rounded
	}

	limit, budgetFound, err := uc.billing.MonthlyBudget(ctx, acct, year)
	if err != nil {
		return nil, err
	}
	rep.Budget = compareBudget(total, limit, budgetFound)

	anomalies, err := uc.billing.Anomalies(ctx, acct, window)
	if err != nil {
		return nil, err
	}
	rep.Anomalies = rankAnomalies(anomalies)

	for _, schema := range entity.FamilySchemas {
		items, err := uc.billing.ReservationRecommendations(ctx, acct, schema)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		rep.Reservations = append(rep.Reservations, entity.FamilyReservations{
			Schema: schema,
			Items:  rankReservations(items),
		})
	}

	return rep, nil
}

// ownerSheets devolve os nomes de aba distintos, na ordem das contas.
func ownerSheets(accounts []entity.Account) []string {
	seen := make(map[string]struct{}, len(accounts))
	sheets := make([]string, 0, len(accounts))
	for _, acct := range accounts {
		name := acct.OwnerSheet()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		sheets = append(sheets, name)
	}
	return sheets
}
