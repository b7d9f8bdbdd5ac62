package report

import (
	"fmt"
	"path/filepath"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
)

var costHeaders = []string{
	"Account_ID", "Account_Name", "Service_Name", "AWS_Cost",
	"Anomaly_Service", "Anomaly_StartDate", "Anomaly_EndDate",
	"Region", "Usage_Type", "Max_Anomaly_Impact", "Total_Anomaly_Impact",
}

// Renderer produz os três artefatos do relatório em paralelo: o corpo HTML do
// e-mail, a planilha de custos e a planilha de recomendações de RI. Cada
// registro de conta alimenta os três no mesmo laço, de modo que e-mail e
// anexos nunca divergem.
type Renderer struct {
	window entity.ReportingWindow
	html   *HTMLBuilder
	cost   *Workbook
	ri     *Workbook
}

// NewReportRenderer adapta NewRenderer à fábrica esperada pelo caso de uso.
func NewReportRenderer(window entity.ReportingWindow, owners []string) (repository.ReportRenderer, error) {
	return NewRenderer(window, owners)
}

// NewRenderer prepara os livros com uma aba por dono de conta. A planilha de
// custos já recebe o cabeçalho fixo; a de RI começa vazia porque os títulos
// de bloco são escritos por família, conforme as recomendações chegam.
func NewRenderer(window entity.ReportingWindow, owners []string) (*Renderer, error) {
	cost, err := NewWorkbook(owners, costHeaders)
	if err != nil {
		return nil, fmt.Errorf("error creating cost workbook: %w", err)
	}
	ri, err := NewWorkbook(owners, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating reservation workbook: %w", err)
	}
	return &Renderer{
		window: window,
		html:   NewHTMLBuilder(window),
		cost:   cost,
		ri:     ri,
	}, nil
}

// RenderAccount escreve a seção completa de uma conta: custos ranqueados,
// totais, anomalias e recomendações por família.
func (r *Renderer) RenderAccount(rep *entity.AccountReport) error {
	acct := rep.Account
	sheet := acct.OwnerSheet()

	r.html.OwnerHeading(acct.Owner)
	for i, sc := range rep.ServiceCosts {
		amount := sc.Amount.StringFixed(2)
		r.html.CostRow(acct.ID, acct.Name, sc.ServiceName, amount, i == 0)
		if err := r.cost.Append(sheet, costRow(acct, sc.ServiceName, amount)); err != nil {
			return err
		}
	}

	var monthToDate string
	if rep.MonthToDate != nil {
		monthToDate = rep.MonthToDate.StringFixed(2)
	}
	exceeded := rep.Budget != nil && rep.Budget.Exceeded
	r.html.TotalLine(rep.TotalCost.StringFixed(2), exceeded, monthToDate)

	if len(rep.Anomalies) > 0 {
		r.html.BeginAnomalyTable(acct.ID, acct.Name)
		for _, a := range rep.Anomalies {
			r.html.AnomalyRow(a)
			if err := r.cost.Append(sheet, anomalyRow(acct, a)); err != nil {
				return err
			}
		}
		r.html.EndTable()
	}

	for _, fam := range rep.Reservations {
		if len(fam.Items) == 0 {
			continue
		}
		r.html.BeginReservationTable(fam.Schema)
		if err := r.ri.AppendBlank(sheet); err != nil {
			return err
		}
		title := fmt.Sprintf("%s for account %s", fam.Schema.BookTitle, acct.Name)
		if err := r.ri.Append(sheet, []string{title}); err != nil {
			return err
		}
		if err := r.ri.Append(sheet, fam.Schema.Headers); err != nil {
			return err
		}
		for _, item := range fam.Items {
			cells := fam.Schema.Row(item)
			r.html.ReservationRow(cells)
			if err := r.ri.Append(sheet, cells); err != nil {
				return err
			}
		}
		r.html.EndTable()
	}

	r.html.Separator()
	return nil
}

// Finalize ajusta as larguras de coluna, grava os dois arquivos no diretório
// dado e devolve os caminhos junto com o corpo HTML pronto para envio.
func (r *Renderer) Finalize(dir string) (costPath, riPath, body string, err error) {
	if err = r.cost.Finalize(); err != nil {
		return "", "", "", err
	}
	if err = r.ri.Finalize(); err != nil {
		return "", "", "", err
	}

	start := r.window.StartDate()
	endLabel := r.window.EndLabelDate()
	costPath = filepath.Join(dir, fmt.Sprintf("AWSCOST_WeeklyReport_%s_to_%s.xlsx", start, endLabel))
	riPath = filepath.Join(dir, fmt.Sprintf("AWSCOST_RIReport_%s_to_%s.xlsx", start, endLabel))

	if err = r.cost.Save(costPath); err != nil {
		return "", "", "", err
	}
	if err = r.ri.Save(riPath); err != nil {
		return "", "", "", err
	}
	return costPath, riPath, r.html.String(), nil
}

func costRow(acct entity.Account, service, amount string) []string {
	return []string{acct.ID, acct.Name, service, amount, "-", "-", "-", "-", "-", "-", "-"}
}

func anomalyRow(acct entity.Account, a entity.Anomaly) []string {
	return []string{
		acct.ID, acct.Name, "-", "-",
		a.Service, a.StartDate, a.EndDate, a.Region, a.UsageType,
		a.MaxImpact.String(), a.TotalImpact.String(),
	}
}
