package aws

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
	"github.com/diillson/aws-cost-reporter-go/internal/shared/types"
)

// billing APIs são globais; o Cost Explorer e o Budgets só respondem em us-east-1.
const billingRegion = "us-east-1"

const delegationSessionName = "cross_acct_access_for_reporter"

// budgetAPI é o recorte do cliente de Budgets que a consulta de orçamento usa.
type budgetAPI interface {
	DescribeBudget(ctx context.Context, in *budgets.DescribeBudgetInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetOutput, error)
	DescribeBudgets(ctx context.Context, in *budgets.DescribeBudgetsInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error)
}

// BillingRepositoryImpl implementa o BillingRepository com delegação de
// credenciais por conta. Clientes são reutilizados dentro da mesma execução
// (as quatro-a-oito consultas de uma conta compartilham a mesma delegação),
// mas nunca entre execuções.
type BillingRepositoryImpl struct {
	cfg         aws.Config
	homeAccount string
	assumeRole  string
	logger      zerolog.Logger

	mu          sync.Mutex
	ceCache     map[string]*costexplorer.Client
	budgetCache map[string]budgetAPI
}

// NewBillingRepository cria uma nova implementação do BillingRepository usando
// a identidade padrão do ambiente como base.
func NewBillingRepository(ctx context.Context, homeAccount, assumeRole string, logger zerolog.Logger) (repository.BillingRepository, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &BillingRepositoryImpl{
		cfg:         cfg,
		homeAccount: homeAccount,
		assumeRole:  assumeRole,
		logger:      logger,
		ceCache:     make(map[string]*costexplorer.Client),
		budgetCache: make(map[string]budgetAPI),
	}, nil
}

// delegatedConfig troca o papel de delegação configurado por credenciais
// temporárias da conta alvo. Sem retry e sem cache de credenciais: uma
// delegação nova por conta por execução.
func (r *BillingRepositoryImpl) delegatedConfig(ctx context.Context, accountID string) (aws.Config, error) {
	stsClient := sts.NewFromConfig(r.cfg)

	out, err := stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, r.assumeRole)),
		RoleSessionName: aws.String(delegationSessionName),
	})
	if err != nil {
		return aws.Config{}, &types.DelegationError{AccountID: accountID, Err: err}
	}

	delegated := r.cfg.Copy()
	delegated.Region = billingRegion
	delegated.Credentials = credentials.NewStaticCredentialsProvider(
		aws.ToString(out.Credentials.AccessKeyId),
		aws.ToString(out.Credentials.SecretAccessKey),
		aws.ToString(out.Credentials.SessionToken),
	)
	return delegated, nil
}

func (r *BillingRepositoryImpl) accountConfig(ctx context.Context, accountID string) (aws.Config, error) {
	if accountID == r.homeAccount {
		cfg := r.cfg.Copy()
		cfg.Region = billingRegion
		return cfg, nil
	}
	return r.delegatedConfig(ctx, accountID)
}

func (r *BillingRepositoryImpl) ceClient(ctx context.Context, accountID string) (*costexplorer.Client, error) {
	r.mu.Lock()
	if client, ok := r.ceCache[accountID]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.accountConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	client := costexplorer.NewFromConfig(cfg)

	r.mu.Lock()
	r.ceCache[accountID] = client
	r.mu.Unlock()
	return client, nil
}

func (r *BillingRepositoryImpl) budgetClient(ctx context.Context, accountID string) (budgetAPI, error) {
	r.mu.Lock()
	if client, ok := r.budgetCache[accountID]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.accountConfig(ctx, accountID)
	if err != nil {
		return nil, err
	}
	client := budgets.NewFromConfig(cfg)

	r.mu.Lock()
	r.budgetCache[accountID] = client
	r.mu.Unlock()
	return client, nil
}

// WeeklyServiceCosts consulta o custo amortizado da janela semanal agrupado
// por serviço. Montantes chegam como strings decimais e nunca passam por
// float64.
func (r *BillingRepositoryImpl) WeeklyServiceCosts(ctx context.Context, account entity.Account, window entity.ReportingWindow) ([]entity.ServiceCost, error) {
	client, err := r.ceClient(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.StartDate()),
			End:   aws.String(window.EndDate()),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"AmortizedCost"},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
	}

	result, err := client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, &types.BillingQueryError{AccountID: account.ID, Operation: "cost-and-usage", Err: err}
	}

	var costs []entity.ServiceCost
	if len(result.ResultsByTime) > 0 {
		for _, group := range result.ResultsByTime[0].Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics["AmortizedCost"]
			if !ok || metric.Amount == nil {
				continue
			}
			amount, err := decimal.NewFromString(aws.ToString(metric.Amount))
			if err != nil {
				return nil, &types.BillingQueryError{AccountID: account.ID, Operation: "cost-and-usage", Err: err}
			}
			costs = append(costs, entity.ServiceCost{
				ServiceName: group.Keys[0],
				Amount:      amount,
			})
		}
	}
	return costs, nil
}

// MonthToDateCost consulta o custo acumulado do início do mês até o fim da
// semana, sem agrupamento. found == false quando não há período no resultado.
func (r *BillingRepositoryImpl) MonthToDateCost(ctx context.Context, account entity.Account, window entity.ReportingWindow) (decimal.Decimal, bool, error) {
	client, err := r.ceClient(ctx, account.ID)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.MonthDate()),
			End:   aws.String(window.EndDate()),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"AmortizedCost"},
	}

	result, err := client.GetCostAndUsage(ctx, input)
	if err != nil {
		return decimal.Decimal{}, false, &types.BillingQueryError{AccountID: account.ID, Operation: "month-to-date", Err: err}
	}

	if len(result.ResultsByTime) == 0 {
		return decimal.Decimal{}, false, nil
	}
	metric, ok := result.ResultsByTime[0].Total["AmortizedCost"]
	if !ok || metric.Amount == nil {
		return decimal.Decimal{}, false, nil
	}
	amount, err := decimal.NewFromString(aws.ToString(metric.Amount))
	if err != nil {
		return decimal.Decimal{}, false, &types.BillingQueryError{AccountID: account.ID, Operation: "month-to-date", Err: err}
	}
	return amount, true, nil
}

// Anomalies consulta o monitor de anomalias da conta na janela semanal e
// normaliza as respostas em uma única forma interna.
func (r *BillingRepositoryImpl) Anomalies(ctx context.Context, account entity.Account, window entity.ReportingWindow) ([]entity.Anomaly, error) {
	client, err := r.ceClient(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	result, err := client.GetAnomalies(ctx, &costexplorer.GetAnomaliesInput{
		DateInterval: &ceTypes.AnomalyDateInterval{
			StartDate: aws.String(window.StartDate()),
			EndDate:   aws.String(window.EndDate()),
		},
		MonitorArn: aws.String(account.MonitorARN),
	})
	if err != nil {
		return nil, &types.BillingQueryError{AccountID: account.ID, Operation: "anomalies", Err: err}
	}

	anomalies := make([]entity.Anomaly, 0, len(result.Anomalies))
	for _, raw := range result.Anomalies {
		anomalies = append(anomalies, normalizeAnomaly(raw))
	}
	return anomalies, nil
}

// normalizeAnomaly resolve a divergência de formato entre a conta local
// (root cause 'Service') e as contas delegadas ('DimensionValue') na borda
// de ingestão.
func normalizeAnomaly(raw ceTypes.Anomaly) entity.Anomaly {
	anomaly := entity.Anomaly{
		Service:   aws.ToString(raw.DimensionValue),
		StartDate: dateOnly(aws.ToString(raw.AnomalyStartDate)),
		EndDate:   dateOnly(aws.ToString(raw.AnomalyEndDate)),
		Region:    "-",
		UsageType: "-",
	}
	if len(raw.RootCauses) > 0 {
		root := raw.RootCauses[0]
		if svc := aws.ToString(root.Service); svc != "" {
			anomaly.Service = svc
		}
		if region := aws.ToString(root.Region); region != "" {
			anomaly.Region = region
		}
		if usage := aws.ToString(root.UsageType); usage != "" {
			anomaly.UsageType = usage
		}
	}
	if raw.Impact != nil {
		anomaly.MaxImpact = decimal.NewFromFloat(raw.Impact.MaxImpact)
		anomaly.TotalImpact = decimal.NewFromFloat(raw.Impact.TotalImpact)
	}
	return anomaly
}

// dateOnly corta a parte de hora de um timestamp ("2024-01-01T00:00:00Z").
func dateOnly(ts string) string {
	if i := strings.Index(ts, "T"); i >= 0 {
		return ts[:i]
	}
	return ts
}

// MonthlyBudget busca o orçamento nomeado da conta. Qualquer falha na conta
// local apenas omite a seção de orçamento; a listagem de orçamentos como
// fallback existe só para contas delegadas, onde o primeiro resultado vence.
func (r *BillingRepositoryImpl) MonthlyBudget(ctx context.Context, account entity.Account, year int) (decimal.Decimal, bool, error) {
	client, err := r.budgetClient(ctx, account.ID)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return r.lookupBudget(ctx, client, account, year)
}

func (r *BillingRepositoryImpl) lookupBudget(ctx context.Context, client budgetAPI, account entity.Account, year int) (decimal.Decimal, bool, error) {
	budgetName := fmt.Sprintf("finops-ACCOUNT_%s_MONTHLY_%d", account.ID, year)
	out, err := client.DescribeBudget(ctx, &budgets.DescribeBudgetInput{
		AccountId:  aws.String(account.ID),
		BudgetName: aws.String(budgetName),
	})
	if err == nil && out.Budget != nil && out.Budget.BudgetLimit != nil && out.Budget.BudgetLimit.Amount != nil {
		return parseBudgetAmount(account.ID, aws.ToString(out.Budget.BudgetLimit.Amount))
	}

	if account.ID == r.homeAccount {
		if err != nil {
			lookupErr := &types.BudgetLookupError{AccountID: account.ID, Err: err}
			r.logger.Warn().Err(lookupErr).Str("account", account.ID).Msg("budget lookup failed, omitting budget section")
		}
		return decimal.Decimal{}, false, nil
	}

	if err != nil {
		lookupErr := &types.BudgetLookupError{AccountID: account.ID, Err: err}
		r.logger.Warn().Err(lookupErr).Str("account", account.ID).Msg("named budget lookup failed, falling back to budget listing")
	}

	list, err := client.DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(account.ID),
	})
	if err != nil || len(list.Budgets) == 0 {
		return decimal.Decimal{}, false, nil
	}
	first := list.Budgets[0]
	if first.BudgetLimit == nil || first.BudgetLimit.Amount == nil {
		return decimal.Decimal{}, false, nil
	}
	return parseBudgetAmount(account.ID, aws.ToString(first.BudgetLimit.Amount))
}

func parseBudgetAmount(accountID, amount string) (decimal.Decimal, bool, error) {
	limit, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, false, &types.BudgetLookupError{AccountID: accountID, Err: err}
	}
	return limit, true, nil
}

// ReservationRecommendations consulta as recomendações de compra de RI do
// serviço do esquema: prazo de um ano, retrospecto de 30 dias, pagamento
// adiantado integral.
func (r *BillingRepositoryImpl) ReservationRecommendations(ctx context.Context, account entity.Account, schema entity.FamilySchema) ([]entity.Reservation, error) {
	client, err := r.ceClient(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	result, err := client.GetReservationPurchaseRecommendation(ctx, &costexplorer.GetReservationPurchaseRecommendationInput{
		AccountId:            aws.String(account.ID),
		Service:              aws.String(schema.Service),
		TermInYears:          ceTypes.TermInYearsOneYear,
		LookbackPeriodInDays: ceTypes.LookbackPeriodInDaysThirtyDays,
		PaymentOption:        ceTypes.PaymentOptionAllUpfront,
	})
	if err != nil {
		return nil, &types.BillingQueryError{AccountID: account.ID, Operation: "reservation-recommendation", Err: err}
	}

	if len(result.Recommendations) == 0 {
		return nil, nil
	}

	details := result.Recommendations[0].RecommendationDetails
	reservations := make([]entity.Reservation, 0, len(details))
	for _, detail := range details {
		reservation, err := decodeRecommendation(schema.Family, detail)
		if err != nil {
			return nil, &types.BillingQueryError{AccountID: account.ID, Operation: "reservation-recommendation", Err: err}
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

// decodeRecommendation projeta o detalhe da recomendação na variante única,
// escolhendo o ramo de instance details pela família.
func decodeRecommendation(family entity.ReservationFamily, detail ceTypes.ReservationPurchaseRecommendationDetail) (entity.Reservation, error) {
	reservation := entity.Reservation{
		Family:   family,
		Quantity: aws.ToString(detail.RecommendedNumberOfInstancesToPurchase),
	}

	upfront, err := decimal.NewFromString(aws.ToString(detail.UpfrontCost))
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("invalid upfront cost: %w", err)
	}
	savings, err := decimal.NewFromString(aws.ToString(detail.EstimatedMonthlySavingsAmount))
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("invalid monthly savings: %w", err)
	}
	reservation.UpfrontCost = upfront
	reservation.MonthlySavings = savings

	if detail.InstanceDetails == nil {
		return reservation, nil
	}

	switch family {
	case entity.FamilyCompute:
		if d := detail.InstanceDetails.EC2InstanceDetails; d != nil {
			reservation.InstanceType = aws.ToString(d.InstanceType)
			reservation.Platform = aws.ToString(d.Platform)
			reservation.Region = aws.ToString(d.Region)
			reservation.CurrentGeneration = d.CurrentGeneration
		}
	case entity.FamilyDatabase:
		if d := detail.InstanceDetails.RDSInstanceDetails; d != nil {
			reservation.InstanceType = aws.ToString(d.InstanceType)
			reservation.DatabaseEngine = aws.ToString(d.DatabaseEngine)
			reservation.LicenseModel = aws.ToString(d.LicenseModel)
			reservation.Region = aws.ToString(d.Region)
			reservation.CurrentGeneration = d.CurrentGeneration
		}
	case entity.FamilyWarehouse:
		if d := detail.InstanceDetails.RedshiftInstanceDetails; d != nil {
			reservation.InstanceType = aws.ToString(d.NodeType)
			reservation.Region = aws.ToString(d.Region)
			reservation.SizeFlexEligible = d.SizeFlexEligible
			reservation.CurrentGeneration = d.CurrentGeneration
		}
	case entity.FamilyCache:
		if d := detail.InstanceDetails.ElastiCacheInstanceDetails; d != nil {
			reservation.InstanceType = aws.ToString(d.NodeType)
			reservation.CacheEngine = aws.ToString(d.ProductDescription)
			reservation.Region = aws.ToString(d.Region)
			reservation.CurrentGeneration = d.CurrentGeneration
		}
	case entity.FamilySearch:
		if d := detail.InstanceDetails.ESInstanceDetails; d != nil {
			reservation.InstanceType = aws.ToString(d.InstanceSize)
			reservation.Region = aws.ToString(d.Region)
			reservation.CurrentGeneration = d.CurrentGeneration
		}
	}
	return reservation, nil
}
