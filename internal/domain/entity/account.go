package entity

import "strings"

// Account é uma entrada do registro de contas cobertas pelo relatório.
type Account struct {
	ID         string `json:"account_id" yaml:"account_id" toml:"account_id"`
	Name       string `json:"account_name" yaml:"account_name" toml:"account_name"`
	MonitorARN string `json:"monitor_arn" yaml:"monitor_arn" toml:"monitor_arn"`
	Owner      string `json:"account_owner" yaml:"account_owner" toml:"account_owner"`
}

// OwnerSheet devolve a parte local do e-mail do dono, usada como nome de aba
// nas planilhas. Contas com o mesmo dono compartilham a aba.
func (a Account) OwnerSheet() string {
	local, _, _ := strings.Cut(a.Owner, "@")
	return local
}
