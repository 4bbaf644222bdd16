// Package server hosts the announcer's runnables under a go-supervisor
// instance, which owns signal handling and orderly shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/announcer/internal/config"
	"github.com/atlanticdynamic/announcer/internal/server/runnables/announcer"
	"github.com/robbyt/go-supervisor/supervisor"
)

// ErrNilConfig is returned when Run is called without a configuration.
var ErrNilConfig = errors.New("configuration is required")

// Run starts the announcer with the provided configuration and blocks until
// ctx is canceled or the process receives SIGINT or SIGTERM.
func Run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if logger == nil {
		logger = slog.Default()
	}
	logHandler := logger.Handler()

	announcerRunner, err := announcer.NewRunner(
		cfg.App.TextToPrint,
		announcer.WithInterval(cfg.App.Interval.AsDuration()),
		announcer.WithContext(ctx),
		announcer.WithLogHandler(logHandler),
	)
	if err != nil {
		return fmt.Errorf("failed to create announcer: %w", err)
	}

	super, err := supervisor.New(
		supervisor.WithContext(ctx),
		supervisor.WithLogHandler(logHandler),
		supervisor.WithRunnables(announcerRunner),
	)
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}
	if err := super.Run(); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}

	logger.Info("Server shutdown complete")
	return nil
}
