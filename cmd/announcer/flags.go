package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/atlanticdynamic/announcer/internal/config"
	"github.com/urfave/cli/v3"
)

// shortcuts map convenience flags onto configuration keys.
var shortcuts = []struct {
	flag string
	key  string
}{
	{flag: "text", key: config.KeyTextToPrint},
	{flag: "interval", key: config.KeyInterval},
	{flag: "log-level", key: config.KeyLoggingLevel},
	{flag: "log-format", key: config.KeyLoggingFormat},
	{flag: "log-output", key: config.KeyLoggingOutput},
}

// configFlags returns a fresh set of the flags shared by commands that
// resolve configuration.
func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config-dir",
			Aliases: []string{"d"},
			Usage:   "Directory holding announcer.toml and announcer.<environment>.toml",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "environment",
			Aliases: []string{"e"},
			Usage:   "Environment name, selects announcer.<environment>.toml (default: $ANNOUNCER_ENVIRONMENT or production)",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a .env file (default: .env in the config directory)",
		},
		&cli.StringSliceFlag{
			Name:    "set",
			Aliases: []string{"s"},
			Usage:   "Override a configuration key, e.g. --set App:TextToPrint=hello",
		},
		&cli.StringFlag{
			Name:    "text",
			Aliases: []string{"t"},
			Usage:   "Text to announce (app.text_to_print)",
		},
		&cli.StringFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "Announcement interval as a duration or seconds (app.interval)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error, fatal",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text or json",
		},
		&cli.StringFlag{
			Name:  "log-output",
			Usage: "Log output: stdout, stderr, file:///path or a file path",
		},
	}
}

// overrides collects command-line configuration in increasing precedence:
// --set values, positional key=value arguments, then the shortcut flags.
func overrides(cmd *cli.Command) []string {
	out := append([]string(nil), cmd.StringSlice("set")...)
	out = append(out, cmd.Args().Slice()...)
	for _, s := range shortcuts {
		if cmd.IsSet(s.flag) {
			out = append(out, s.key+"="+cmd.String(s.flag))
		}
	}
	return out
}

func loadOptions(cmd *cli.Command, logger *slog.Logger) config.LoadOptions {
	return config.LoadOptions{
		Dir:         cmd.String("config-dir"),
		Environment: cmd.String("environment"),
		DotEnvFile:  cmd.String("env-file"),
		Overrides:   overrides(cmd),
		Logger:      logger,
	}
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
