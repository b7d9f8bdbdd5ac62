package repository

import "github.com/diillson/aws-cost-reporter-go/internal/domain/entity"

// ReportRenderer acumula a seção de cada conta nos artefatos do relatório e os
// materializa uma única vez ao final.
type ReportRenderer interface {
	RenderAccount(report *entity.AccountReport) error
	Finalize(dir string) (costPath, riPath, body string, err error)
}

// RendererFactory cria um renderizador para a janela dada, com uma aba por
// dono de conta.
type RendererFactory func(window entity.ReportingWindow, owners []string) (ReportRenderer, error)
