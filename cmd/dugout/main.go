package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dugout-cli/dugout/internal/app"
	"github.com/dugout-cli/dugout/internal/config"
	"github.com/dugout-cli/dugout/internal/interfaces/cli"
	"github.com/dugout-cli/dugout/internal/platform/logging"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	logger := logging.NewConsole(cfg.LogLevel)
	defer logger.Sync()
	logging.SetDefault(logger)

	deps, cleanup, err := app.NewCLI(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// cobra prints the error itself, so no double reporting here.
	return cli.NewRootCommand(deps).ExecuteContext(ctx)
}
