package entity

import "time"

const dateLayout = "2006-01-02"

// ReportingWindow delimita a última semana ISO completa anterior à data de
// execução, junto com o início do mês dessa semana para o acumulado mensal.
type ReportingWindow struct {
	WeekStart    time.Time // segunda-feira da semana reportada
	WeekEnd      time.Time // segunda-feira seguinte (exclusivo nas consultas)
	WeekEndLabel time.Time // último dia incluído (domingo)
	MonthStart   time.Time // primeiro dia do mês de WeekStart
}

// NewReportingWindow calcula a janela a partir da data de execução: a semana
// reportada é sempre a última semana completa de segunda a domingo.
func NewReportingWindow(now time.Time) ReportingWindow {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -daysSinceMonday-7)
	weekEnd := weekStart.AddDate(0, 0, 7)
	return ReportingWindow{
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		WeekEndLabel: weekEnd.AddDate(0, 0, -1),
		MonthStart:   time.Date(weekStart.Year(), weekStart.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

// StartDate devolve o início da semana no formato das APIs de custo.
func (w ReportingWindow) StartDate() string { return w.WeekStart.Format(dateLayout) }

// EndDate devolve o fim exclusivo da semana (segunda-feira seguinte).
func (w ReportingWindow) EndDate() string { return w.WeekEnd.Format(dateLayout) }

// EndLabelDate devolve o último dia incluído (domingo), usado em títulos e
// nomes de arquivo.
func (w ReportingWindow) EndLabelDate() string { return w.WeekEndLabel.Format(dateLayout) }

// MonthDate devolve o primeiro dia do mês da semana reportada.
func (w ReportingWindow) MonthDate() string { return w.MonthStart.Format(dateLayout) }
