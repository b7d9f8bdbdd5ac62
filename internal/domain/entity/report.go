package entity

import "github.com/shopspring/decimal"

// FamilyReservations agrupa as recomendações já ranqueadas de uma família.
type FamilyReservations struct {
	Schema FamilySchema
	Items  []Reservation
}

// AccountReport reúne o resultado agregado de uma conta, pronto para a
// renderização. Montado do zero a cada iteração — nenhum campo vaza de uma
// conta para a seguinte.
type AccountReport struct {
	Account      Account
	ServiceCosts []ServiceCost // ranqueados em ordem decrescente, no máximo 10
	TotalCost    decimal.Decimal
	MonthToDate  *decimal.Decimal // nil quando a consulta mensal não devolveu resultado
	Budget       *BudgetStatus    // nil quando nenhum orçamento foi encontrado
	Anomalies    []Anomaly
	Reservations []FamilyReservations
}
