package cli

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-reporter-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-reporter-go/internal/adapter/driven/report"
	"github.com/diillson/aws-cost-reporter-go/internal/application/usecase"
	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
	"github.com/diillson/aws-cost-reporter-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	logger     zerolog.Logger
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, logger zerolog.Logger) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		logger:     logger,
		version:    versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "aws-cost-reporter",
		Short:   "Weekly AWS cost report over e-mail",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Reporter version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report workbooks (default: system temp directory)")
	rootCmd.PersistentFlags().Bool("skip-send", false, "Generate the workbooks without uploading or emailing them")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// runCommand carrega a configuração, monta os adaptadores AWS e dispara o
// relatório da semana anterior.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	configFile, _ := cmd.Flags().GetString("config-file")
	dir, _ := cmd.Flags().GetString("dir")
	skipSend, _ := cmd.Flags().GetBool("skip-send")

	cfg, err := app.configRepo.LoadConfigFile(configFile)
	if err != nil {
		return err
	}
	cfg.SkipSend = skipSend
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		cfg.OutputDir = absDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	billingRepo, err := aws.NewBillingRepository(ctx, cfg.HomeAccount, cfg.AssumeRole, app.logger)
	if err != nil {
		return err
	}
	deliveryRepo, err := aws.NewDeliveryRepository(ctx, cfg.SESRegion, app.logger)
	if err != nil {
		return err
	}

	reportUseCase := usecase.NewReportUseCase(billingRepo, deliveryRepo, report.NewReportRenderer, cfg, app.logger)
	return reportUseCase.Run(ctx, time.Now().UTC())
}
