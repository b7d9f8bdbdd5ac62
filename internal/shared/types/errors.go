package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoAccounts        = errors.New("no accounts configured for the report")
	ErrNoRecipients      = errors.New("no recipients configured for the report")
	ErrIncompleteAccount = errors.New("account entry is missing id or name")
	ErrInvalidOwner      = errors.New("account owner must be an email address")
)

// DelegationError indica que o provedor de identidade rejeitou a assunção de
// papel para a conta alvo. Fatal: aborta a execução.
type DelegationError struct {
	AccountID string
	Err       error
}

func (e *DelegationError) Error() string {
	return fmt.Sprintf("failed to assume role for account %s: %v", e.AccountID, e.Err)
}

func (e *DelegationError) Unwrap() error { return e.Err }

// BillingQueryError indica falha em uma consulta de custo, anomalia ou
// recomendação. Fatal: nenhum relatório parcial é enviado.
type BillingQueryError struct {
	AccountID string
	Operation string
	Err       error
}

func (e *BillingQueryError) Error() string {
	return fmt.Sprintf("billing query %s failed for account %s: %v", e.Operation, e.AccountID, e.Err)
}

func (e *BillingQueryError) Unwrap() error { return e.Err }

// BudgetLookupError indica falha na consulta de orçamento. Recuperado
// localmente: fallback para a listagem de orçamentos (contas delegadas) ou
// omissão da seção (conta local).
type BudgetLookupError struct {
	AccountID string
	Err       error
}

func (e *BudgetLookupError) Error() string {
	return fmt.Sprintf("budget lookup failed for account %s: %v", e.AccountID, e.Err)
}

func (e *BudgetLookupError) Unwrap() error { return e.Err }

// UploadError indica falha no envio da planilha para o bucket de
// arquivamento. Registrado e devolvido como indicador, nunca propagado.
type UploadError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s to bucket %s failed: %v", e.Key, e.Bucket, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// DeliveryError indica falha no transporte de e-mail. Fatal, propagado após
// todo o trabalho de geração já concluído.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
