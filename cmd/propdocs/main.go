package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/unus-solutions/propdocs/app"
	"github.com/unus-solutions/propdocs/pkg/config"
	"github.com/unus-solutions/propdocs/pkg/logger"
)

func main() {
	cfg := app.DefaultConfig()
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize application", logger.Error(err))
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "application exited with error", logger.Error(err))
		os.Exit(1)
	}
}
