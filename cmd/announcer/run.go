package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/announcer/internal/config"
	"github.com/atlanticdynamic/announcer/internal/logging"
	"github.com/atlanticdynamic/announcer/internal/logging/writers"
	"github.com/atlanticdynamic/announcer/internal/server"
	"github.com/gofrs/uuid/v5"
	"github.com/urfave/cli/v3"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Start the announcer",
		ArgsUsage: "[key=value ...]",
		Flags:     configFlags(),
		Action:    runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	boot := logging.NewBootstrap()

	cfg, err := config.Load(loadOptions(cmd, boot.Logger()))
	if err != nil {
		// no configured handler exists yet, report on stderr
		fallback := logging.SetupHandlerText(config.LogLevelInfo.String(), stderr(cmd))
		if replayErr := boot.Replay(fallback); replayErr != nil {
			err = fmt.Errorf("%w (replaying startup logs: %w)", err, replayErr)
		}
		return terminated(ctx, slog.New(fallback), err)
	}

	writer, err := writers.Open(cfg.Logging.Output)
	if err != nil {
		fallback := logging.SetupHandlerText(cfg.Logging.Level.String(), stderr(cmd))
		return terminated(ctx, slog.New(fallback), fmt.Errorf("failed to open log output: %w", err))
	}
	defer func() { _ = writer.Close() }()

	handler := logging.NewHandler(cfg.Logging.Format.String(), cfg.Logging.Level.String(), writer)
	logger := slog.New(handler)
	if err := boot.Replay(handler); err != nil {
		logger.Warn("Failed to replay startup logs", "error", err)
	}

	instance, err := uuid.NewV6()
	if err != nil {
		return terminated(ctx, logger, fmt.Errorf("failed to generate instance id: %w", err))
	}
	logger = logger.With("instance", instance.String())
	slog.SetDefault(logger)

	logger.Info("Starting up",
		"version", cmd.Root().Version,
		"environment", cfg.Environment,
		"interval", cfg.App.Interval.String(),
	)

	if err := server.Run(ctx, logger, cfg); err != nil {
		return terminated(ctx, logger, err)
	}
	return nil
}

// terminated logs err at fatal level and converts it to exit code 1.
func terminated(ctx context.Context, logger *slog.Logger, err error) error {
	logger.Log(ctx, logging.LevelFatal, "Host terminated unexpectedly", "error", err)
	return cli.Exit(err, 1)
}
