// Package config holds the announcer's domain configuration, decoded from the
// values resolved by the layers package.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atlanticdynamic/announcer/internal/config/layers"
)

// Keys understood by FromResolved, in their normalized form.
const (
	KeyEnvironment   = "environment"
	KeyTextToPrint   = "app.texttoprint"
	KeyInterval      = "app.interval"
	KeyLoggingLevel  = "logging.level"
	KeyLoggingFormat = "logging.format"
	KeyLoggingOutput = "logging.output"
)

const (
	DefaultEnvironment = "production"
	DefaultInterval    = 5 * time.Second
	DefaultLogOutput   = "stderr"
)

// Config is the fully resolved configuration of one announcer process.
type Config struct {
	Environment string
	App         App
	Logging     LoggingConfig

	// resolved is what the config was decoded from, kept for provenance.
	resolved layers.Resolved
}

// App is the announcer's own section.
type App struct {
	// TextToPrint is announced verbatim on every tick. Empty is valid.
	TextToPrint string
	Interval    Duration
}

// Defaults returns the values that apply when no source sets a key.
func Defaults() map[string]string {
	return map[string]string{
		KeyInterval:      DefaultInterval.String(),
		KeyLoggingLevel:  LogLevelInfo.String(),
		KeyLoggingFormat: LogFormatText.String(),
		KeyLoggingOutput: DefaultLogOutput,
	}
}

// FromResolved decodes a Config. It only fails on values that cannot be
// parsed, range checks are left to Validate.
func FromResolved(r layers.Resolved) (*Config, error) {
	cfg := &Config{
		Environment: r.String(KeyEnvironment),
		App: App{
			TextToPrint: r.String(KeyTextToPrint),
			Interval:    FromDuration(DefaultInterval),
		},
		resolved: r,
	}

	var errz []error
	if raw, ok := r.Lookup(KeyInterval); ok {
		d, err := parseInterval(raw.Raw)
		if err != nil {
			errz = append(errz, fmt.Errorf("%s (from %s): %w", KeyInterval, raw.Source, err))
		} else {
			cfg.App.Interval = d
		}
	}

	level, err := LogLevelFromString(strings.ToLower(r.String(KeyLoggingLevel)))
	if err != nil {
		errz = append(errz, err)
	}
	format, err := LogFormatFromString(strings.ToLower(r.String(KeyLoggingFormat)))
	if err != nil {
		errz = append(errz, err)
	}
	cfg.Logging = LoggingConfig{
		Level:  level,
		Format: format,
		Output: r.String(KeyLoggingOutput),
	}

	if len(errz) > 0 {
		return nil, joinWith(ErrFailedToLoadConfig, errz)
	}
	return cfg, nil
}

// Resolved returns the layered values this config was decoded from.
func (c *Config) Resolved() layers.Resolved {
	return c.resolved
}

// parseInterval accepts a Go duration ("1m30s") or a bare number of seconds.
func parseInterval(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return FromDuration(time.Duration(secs * float64(time.Second))), nil
}
