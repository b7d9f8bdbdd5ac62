package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
)

const (
	bodyPreamble = `<html>
        <head></head>
        <body>
        Hi,<br>
        As part of Cloud Governance, we are sending weekly AWS costing report along with Cost Anomalies and RI recommendations for each of the AWS accounts. The report is generated using the amortized costs of the account. Respective account owners can find any cost anomalies and recommendations of the accounts. There are two excel files attached for the top 10 spends and RI recommendations for each of the AWS accounts.<br>
        <br>The 'Total cost for all services this week' will be yellow highlighted if the allocated budget is exceeded for the week.<br>
        <br>This Report will shared once every week, please let us know if any of the recipients needed to be changed or added to this chain.
        <br>
        <br>
        <h4>AWS costs for the period of %s to %s</h4>
        <h4>######################################</h4>
        <div><table style="width:100%%">`

	bodySignature = `Thank you,<br>
    DevOps Team<br>
    DevOps@company.com`

	headerCell = `<td><b style="font-family:'Open Sans';font-size:13px">%s</b></td>`
	spacerRow  = `<tr height = 20px></tr>`
	separator  = `<h4>######################################</h4>`
)

// HTMLBuilder monta o corpo do e-mail seção a seção, na mesma ordem em que as
// linhas correspondentes entram nas planilhas.
type HTMLBuilder struct {
	b strings.Builder
}

// NewHTMLBuilder inicia o corpo com o preâmbulo fixo datado pela janela.
func NewHTMLBuilder(window entity.ReportingWindow) *HTMLBuilder {
	h := &HTMLBuilder{}
	fmt.Fprintf(&h.b, bodyPreamble, window.StartDate(), window.EndLabelDate())
	return h
}

// OwnerHeading abre a seção de uma conta com o dono e a tabela de custos.
func (h *HTMLBuilder) OwnerHeading(owner string) {
	fmt.Fprintf(&h.b, "<h4>Account Owner: %s</h4>", html.EscapeString(owner))
	h.beginTable([]string{"Account No", "Account Name", "Service Name", "AWS Cost"})
}

// CostRow escreve uma linha de custo; a primeira (maior gasto) sai em negrito.
func (h *HTMLBuilder) CostRow(accountID, accountName, service, amount string, primary bool) {
	cells := []string{accountID, accountName, service, amount}
	if primary {
		h.b.WriteString("<tr>")
		for _, c := range cells {
			fmt.Fprintf(&h.b, "<td style=font-weight:bold>%s</td>", html.EscapeString(c))
		}
		h.b.WriteString("</tr>")
		return
	}
	h.row(cells)
}

// TotalLine fecha a tabela de custos com o total semanal, destacado em amarelo
// quando o orçamento foi estourado, e o acumulado do mês quando disponível.
func (h *HTMLBuilder) TotalLine(total string, exceeded bool, monthToDate string) {
	h.b.WriteString(spacerRow)
	if exceeded {
		fmt.Fprintf(&h.b, "<tr colspan=2><td><span style='font-weight:bold;background-color: yellow'>[!!Weekly budget limit exceeded!!] Total cost for all services this week == $%s</span></td>", total)
	} else {
		fmt.Fprintf(&h.b, "<tr colspan=2><td><span style=font-weight:bold>Total cost for all services this week == $%s</span></td>", total)
	}
	if monthToDate != "" {
		fmt.Fprintf(&h.b, "<tr colspan=2><td><span style=font-weight:bold>Overall spend for the account in this month == $%s</span></td>", monthToDate)
	}
	h.endTable()
}

// BeginAnomalyTable abre a tabela de anomalias da conta.
func (h *HTMLBuilder) BeginAnomalyTable(accountID, accountName string) {
	fmt.Fprintf(&h.b, "<h4>Anomaly Details for the account %s (%s):</h4>", html.EscapeString(accountID), html.EscapeString(accountName))
	h.beginTable([]string{"Service", "Start Date", "End Date", "Region", "UsageType", "Max Impact", "Total Impact"})
}

// AnomalyRow escreve uma linha de anomalia já normalizada.
func (h *HTMLBuilder) AnomalyRow(a entity.Anomaly) {
	h.row([]string{a.Service, a.StartDate, a.EndDate, a.Region, a.UsageType, a.MaxImpact.String(), a.TotalImpact.String()})
}

// BeginReservationTable abre a tabela de recomendações de uma família.
func (h *HTMLBuilder) BeginReservationTable(schema entity.FamilySchema) {
	fmt.Fprintf(&h.b, "<h4>%s</h4>", schema.HTMLTitle)
	h.beginTable(schema.Headers)
}

// ReservationRow escreve as colunas extraídas pelo esquema da família.
func (h *HTMLBuilder) ReservationRow(cells []string) {
	h.row(cells)
}

// EndTable fecha a tabela corrente com a linha de respiro final.
func (h *HTMLBuilder) EndTable() {
	h.b.WriteString(spacerRow)
	h.endTable()
}

// Separator encerra a seção da conta.
func (h *HTMLBuilder) Separator() {
	h.b.WriteString(separator)
}

// String devolve o corpo completo com a assinatura.
func (h *HTMLBuilder) String() string {
	return h.b.String() + bodySignature
}

func (h *HTMLBuilder) beginTable(headers []string) {
	h.b.WriteString(`<div><table style="width:100%"><thead><tr>`)
	for _, header := range headers {
		fmt.Fprintf(&h.b, headerCell, header)
	}
	h.b.WriteString("</tr></thead><tbody>")
}

func (h *HTMLBuilder) endTable() {
	h.b.WriteString("</tbody></table></div>")
}

func (h *HTMLBuilder) row(cells []string) {
	h.b.WriteString("<tr>")
	for _, c := range cells {
		fmt.Fprintf(&h.b, "<td>%s</td>", html.EscapeString(c))
	}
	h.b.WriteString("</tr>")
}
