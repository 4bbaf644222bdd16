package logging

import (
	"io"
	"log/slog"

	"github.com/robbyt/go-loglater"
)

// Bootstrap holds log records written before the configured logger exists.
// Configuration loading decides where logs go, so anything it logs is parked
// here and replayed once the real handler is built.
type Bootstrap struct {
	collector *loglater.LogCollector
	logger    *slog.Logger
}

// NewBootstrap returns a Bootstrap that keeps every record down to debug.
func NewBootstrap() *Bootstrap {
	base := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	collector := loglater.NewLogCollector(base)
	return &Bootstrap{
		collector: collector,
		logger:    slog.New(collector),
	}
}

// Logger returns the logger that records into the bootstrap buffer.
func (b *Bootstrap) Logger() *slog.Logger {
	return b.logger
}

// Replay writes the buffered records to handler, dropping those below its
// level.
func (b *Bootstrap) Replay(handler slog.Handler) error {
	return b.collector.PlayLogs(levelGate{Handler: handler})
}
