package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set during build using ldflags
var Version = "dev"

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "announcer",
		Version: Version,
		Usage:   "Periodically log a configured line of text",
		Commands: []*cli.Command{
			runCmd(),
			configCmd(),
			versionCmd,
		},
		DisableSliceFlagSeparator: true,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
