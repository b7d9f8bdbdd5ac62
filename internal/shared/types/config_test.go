package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/entity"
)

func validConfig() Config {
	return Config{
		SendFrom:   "reports@company.com",
		Recipients: []string{"finops@company.com"},
		Accounts: []entity.Account{
			{ID: "111122223333", Name: "prod", Owner: "jane.doe@company.com"},
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "no accounts",
			mutate:  func(c *Config) { c.Accounts = nil },
			wantErr: ErrNoAccounts,
		},
		{
			name:    "no recipients",
			mutate:  func(c *Config) { c.Recipients = nil },
			wantErr: ErrNoRecipients,
		},
		{
			name:    "account missing id",
			mutate:  func(c *Config) { c.Accounts[0].ID = "" },
			wantErr: ErrIncompleteAccount,
		},
		{
			name:    "account missing name",
			mutate:  func(c *Config) { c.Accounts[0].Name = "" },
			wantErr: ErrIncompleteAccount,
		},
		{
			name:    "owner without an at sign",
			mutate:  func(c *Config) { c.Accounts[0].Owner = "jane.doe" },
			wantErr: ErrInvalidOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigApplyEnv(t *testing.T) {
	t.Setenv("ASSUME_ROLE", "env-role")
	t.Setenv("SEND_FROM", "env@company.com")

	cfg := validConfig()
	cfg.AssumeRole = "file-role"
	cfg.ApplyEnv()

	assert.Equal(t, "env-role", cfg.AssumeRole)
	assert.Equal(t, "env@company.com", cfg.SendFrom)
}
