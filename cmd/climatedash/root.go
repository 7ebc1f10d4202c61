package main

import (
	"context"
	"fmt"
	"log/slog"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-dashboard/internal/adapter/sqlstore"
	"github.com/couchcryptid/climate-dashboard/internal/config"
	"github.com/couchcryptid/climate-dashboard/internal/database"
	"github.com/couchcryptid/climate-dashboard/internal/observability"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "climatedash",
		Short: "Climate records dashboard",
		Long: `climatedash keeps daily temperature and wind observations for a set of
locations and serves a web dashboard to browse, edit, search and chart them.

Settings are read from the environment (DB_DRIVER, DB_URL, HTTP_ADDR, ...).`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newImportCmd())

	return cmd
}

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *observability.Metrics
	provider *database.Provider
	store    *sqlstore.Store
}

// setup loads configuration, initializes the connection provider and, when
// enabled, creates the climate_data table.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	provider := database.NewProvider(logger)
	if err := provider.Init(database.Settings{
		Driver:          cfg.DBDriver,
		URL:             cfg.DBURL,
		Username:        cfg.DBUsername,
		Password:        cfg.DBPassword,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if cfg.DBBootstrapSchema {
		db, err := provider.Conn(ctx)
		if err != nil {
			return nil, err
		}
		if err := database.Bootstrap(ctx, db, cfg.DBDriver); err != nil {
			_ = provider.Close()
			return nil, err
		}
		logger.Info("schema bootstrapped", "driver", cfg.DBDriver)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		provider: provider,
		store:    sqlstore.New(provider, logger, metrics),
	}, nil
}

func (a *app) close() {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("database close error", "error", err)
	}
}
