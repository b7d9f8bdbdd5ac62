package types

import (
	"os"
	"strings"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
)

// Config representa a configuração do relatório, carregada de um arquivo
// TOML, YAML ou JSON e complementada por variáveis de ambiente.
type Config struct {
	AssumeRole  string           `json:"assume_role" yaml:"assume_role" toml:"assume_role"`
	SendFrom    string           `json:"send_from" yaml:"send_from" toml:"send_from"`
	SESRegion   string           `json:"ses_region" yaml:"ses_region" toml:"ses_region"`
	Bucket      string           `json:"bucket" yaml:"bucket" toml:"bucket"`
	HomeAccount string           `json:"home_account" yaml:"home_account" toml:"home_account"`
	OutputDir   string           `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	Recipients  []string         `json:"recipients" yaml:"recipients" toml:"recipients"`
	Accounts    []entity.Account `json:"accounts" yaml:"accounts" toml:"accounts"`

	// SkipSend gera e persiste as planilhas sem subir nem enviar nada.
	// Só via flag de linha de comando, nunca via arquivo.
	SkipSend bool `json:"-" yaml:"-" toml:"-"`
}

// ApplyEnv sobrepõe os campos sensíveis com as variáveis de ambiente do
// agendador, quando presentes.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ASSUME_ROLE"); v != "" {
		c.AssumeRole = v
	}
	if v := os.Getenv("SEND_FROM"); v != "" {
		c.SendFrom = v
	}
	if v := os.Getenv("SES_REGION"); v != "" {
		c.SESRegion = v
	}
	if v := os.Getenv("REPORT_BUCKET"); v != "" {
		c.Bucket = v
	}
}

// Validate garante os invariantes do registro de contas antes da execução.
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return ErrNoAccounts
	}
	if len(c.Recipients) == 0 {
		return ErrNoRecipients
	}
	for _, acct := range c.Accounts {
		if acct.ID == "" || acct.Name == "" {
			return ErrIncompleteAccount
		}
		if !strings.Contains(acct.Owner, "@") {
			return ErrInvalidOwner
		}
	}
	return nil
}
