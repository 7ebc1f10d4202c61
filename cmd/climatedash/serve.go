package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/climate-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/climate-dashboard/internal/changefeed"
	"github.com/couchcryptid/climate-dashboard/internal/domain"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	var repo domain.Repository = a.store

	// Change feed is feature-flagged via KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if a.cfg.ChangeFeedEnabled() {
		writer = kafkaadapter.NewWriter(a.cfg, a.logger)
		repo = changefeed.NewRepository(repo, writer, a.logger, a.metrics)
		a.metrics.ChangeFeedActive.Set(1)
		a.logger.Info("change feed enabled", "topic", a.cfg.KafkaChangesTopic, "brokers", a.cfg.KafkaBrokers)
	} else {
		a.logger.Info("change feed disabled")
	}

	srv := httpadapter.NewServer(a.cfg.HTTPAddr, repo, a.provider, a.logger, a.metrics)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			a.logger.Error("http server error", "error", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			a.logger.Error("kafka writer close error", "error", err)
		}
		a.metrics.ChangeFeedActive.Set(0)
	}

	a.logger.Info("shutdown complete")
	return nil
}
