package main

import (
	"context"
	"fmt"

	"github.com/atlanticdynamic/announcer/internal/config"
	"github.com/urfave/cli/v3"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:      "config",
		Aliases:   []string{"validate"},
		Usage:     "Resolve and validate the layered configuration",
		ArgsUsage: "[key=value ...]",
		Flags: append(configFlags(), &cli.BoolFlag{
			Name:  "tree",
			Usage: "Show the resolved configuration and where each value came from",
		}),
		Action: configAction,
	}
}

func configAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(loadOptions(cmd, nil))
	if err != nil {
		return cli.Exit(fmt.Errorf("configuration is invalid: %w", err), 1)
	}

	out := stdout(cmd)
	if cmd.Bool("tree") {
		fmt.Fprintln(out, cfg)
		return nil
	}
	fmt.Fprintf(out, "Configuration for environment %q is valid\n", cfg.Environment)
	return nil
}
