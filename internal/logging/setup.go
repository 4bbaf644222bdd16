// Package logging builds the slog handlers used by the announcer.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LevelFatal sits above slog.LevelError and lines up with log.FatalLevel, so
// the text handler prints it as FATA.
const LevelFatal = slog.Level(12)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewHandler returns the handler for the configured format. Anything other
// than "json" gets the text handler.
func NewHandler(format, logLevel string, writer io.Writer) slog.Handler {
	if strings.EqualFold(format, FormatJSON) {
		return SetupHandlerJSON(logLevel, writer)
	}
	return SetupHandlerText(logLevel, writer)
}

// ParseLevel maps a configured level name to a slog level. Unknown names map
// to info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "fatal":
		return LevelFatal
	default:
		return slog.LevelInfo
	}
}

// SetupHandlerText configures a text slog handler with the provided writer and log level
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := true
	if strings.EqualFold(logLevel, "trace") {
		reportCaller = true
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		TimeFormat:      "15:04:05",
		Level:           log.Level(ParseLevel(logLevel)),
	})
}

// SetupHandlerJSON configures a JSON slog handler with the provided writer and log level
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:       ParseLevel(logLevel),
		AddSource:   strings.EqualFold(logLevel, "trace"),
		ReplaceAttr: replaceFatalLevel,
	}

	return slog.NewJSONHandler(writer, opts)
}

// replaceFatalLevel renders LevelFatal as "FATAL" instead of "ERROR+4".
func replaceFatalLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level >= LevelFatal {
		return slog.String(slog.LevelKey, "FATAL")
	}
	return a
}

// levelGate drops records below the wrapped handler's level. Replayed records
// bypass slog.Logger's own Enabled check, so the gate restores it.
type levelGate struct {
	slog.Handler
}

func (g levelGate) Handle(ctx context.Context, r slog.Record) error {
	if !g.Enabled(ctx, r.Level) {
		return nil
	}
	return g.Handler.Handle(ctx, r)
}
