package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// RecordHandler is a slog.Handler that keeps every record it receives. It
// sees the message exactly as the caller built it, before any formatting.
type RecordHandler struct {
	mu      *sync.Mutex
	records *[]slog.Record
	level   slog.Leveler
}

// NewRecordHandler returns a handler that accepts records at level and above.
func NewRecordHandler(level slog.Leveler) *RecordHandler {
	if level == nil {
		level = slog.LevelDebug
	}
	return &RecordHandler{
		mu:      &sync.Mutex{},
		records: &[]slog.Record{},
		level:   level,
	}
}

func (h *RecordHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *RecordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, r.Clone())
	return nil
}

// WithAttrs and WithGroup share the record store with the parent handler.
func (h *RecordHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *RecordHandler) WithGroup(_ string) slog.Handler { return h }

// Records returns a copy of everything handled so far.
func (h *RecordHandler) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]slog.Record(nil), *h.records...)
}

// Messages returns the messages of records whose message starts with prefix.
func (h *RecordHandler) Messages(prefix string) []string {
	var out []string
	for _, r := range h.Records() {
		if strings.HasPrefix(r.Message, prefix) {
			out = append(out, r.Message)
		}
	}
	return out
}
