// Package app wires storage, the MLB Stats API client and the lookup
// services into the dependency set the CLI consumes.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/dugout-cli/dugout/external/mlbstats"
	"github.com/dugout-cli/dugout/internal/config"
	"github.com/dugout-cli/dugout/internal/infrastructure/loader"
	"github.com/dugout-cli/dugout/internal/infrastructure/repository/sqlite"
	"github.com/dugout-cli/dugout/internal/interfaces/cli"
	"github.com/dugout-cli/dugout/internal/platform/logging"
	"github.com/dugout-cli/dugout/internal/platform/style"
	"github.com/dugout-cli/dugout/internal/usecase"
)

// NewCLI assembles the command tree dependencies. The returned cleanup closes
// the database and must run after the command finishes.
func NewCLI(cfg config.Config, logger *logging.Logger) (cli.Deps, func(), error) {
	db, err := sqlx.Open("sqlite", sqliteDSN(cfg.DBPath))
	if err != nil {
		return cli.Deps{}, nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	// during concurrent season loads.
	db.SetMaxOpenConns(1)

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
	}

	lines := sqlite.NewStatLineRepository(db)
	teams := sqlite.NewTeamAverageRepository(db)
	matchupCache := sqlite.NewMatchupRepository(db)
	platoonCache := sqlite.NewPlatoonRepository(db)

	apiClient := mlbstats.NewClient(mlbstats.ClientConfig{
		BaseURL:             cfg.MLBAPIBaseURL,
		Timeout:             cfg.MLBAPITimeout,
		MaxRetries:          cfg.MLBAPIMaxRetries,
		Logger:              logger,
		CircuitEnabled:      cfg.MLBAPICircuitEnabled,
		CircuitFailureCount: cfg.MLBAPICircuitFailureCount,
		CircuitOpenTimeout:  cfg.MLBAPICircuitOpenTimeout,
	})

	out := io.Writer(os.Stdout)
	progress := func(msg string) {
		fmt.Fprintln(out, msg)
	}

	resolver := usecase.NewResolverService(lines, cfg.CurrentSeason, cfg.IsTwoWay)
	deps := cli.Deps{
		Config:      cfg,
		Logger:      logger,
		Styles:      stylesForMode(cfg.ColorMode),
		Resolver:    resolver,
		Reports:     usecase.NewReportService(lines, teams, cfg.CurrentSeason),
		Comparisons: usecase.NewCompareService(resolver, lines, cfg.CurrentSeason),
		Matchups:    usecase.NewMatchupService(resolver, matchupCache, apiClient, logger, progress),
		Platoons:    usecase.NewPlatoonService(resolver, platoonCache, apiClient, logger, progress),
		Loader:      loader.NewService(lines, teams, cfg.LoadWorkers, logger),
		Migrator:    newSchemaMigrator(db, logger),
		In:          os.Stdin,
		Out:         out,
	}

	return deps, cleanup, nil
}

// stylesForMode resolves "auto" against the fatih/color TTY detection, which
// also honors NO_COLOR.
func stylesForMode(mode string) style.Styles {
	switch mode {
	case config.ColorAlways:
		return style.New(true)
	case config.ColorNever:
		return style.New(false)
	default:
		return style.New(!color.NoColor)
	}
}
