package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/diillson/aws-cost-reporter-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-reporter-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-reporter-go/pkg/version"
)

func main() {
	logger := newLogger()

	// Inicializa os repositórios
	configRepo := config.NewConfigRepository()

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, configRepo, logger)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger devolve um logger em stderr: console legível num terminal, JSON
// sob o agendador. Nível controlado por LOG_LEVEL (padrão info).
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
