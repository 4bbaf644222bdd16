package server

import (
	"context"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/atlanticdynamic/announcer/internal/config"
	"github.com/atlanticdynamic/announcer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(text string, interval time.Duration) *config.Config {
	cfg := &config.Config{Environment: "test"}
	cfg.App.TextToPrint = text
	cfg.App.Interval = config.FromDuration(interval)
	return cfg
}

func TestRun(t *testing.T) {
	t.Run("announces until the context ends", func(t *testing.T) {
		handler := testutil.NewRecordHandler(slog.LevelInfo)
		logger := slog.New(handler)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			errCh <- Run(ctx, logger, testConfig("hello from host", 10*time.Millisecond))
		}()

		require.Eventually(t, func() bool {
			return len(handler.Messages("Background work with text: ")) >= 2
		}, 5*time.Second, 5*time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after cancel")
		}

		for _, msg := range handler.Messages("Background work with text: ") {
			assert.Equal(t, "Background work with text: hello from host", msg)
		}
		messages := handler.Messages("")
		assert.Equal(t, len(messages)-1, slices.Index(messages, "Server shutdown complete"))
	})

	t.Run("invalid interval fails before starting", func(t *testing.T) {
		err := Run(context.Background(), slog.New(testutil.NewRecordHandler(nil)), testConfig("x", 0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create announcer")
	})

	t.Run("nil config", func(t *testing.T) {
		err := Run(context.Background(), nil, nil)
		require.ErrorIs(t, err, ErrNilConfig)
	})
}
