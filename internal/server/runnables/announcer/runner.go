// Package announcer provides the runnable that periodically logs the
// configured text.
package announcer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/atlanticdynamic/announcer/internal/periodic"
	"github.com/atlanticdynamic/announcer/internal/server/finitestate"
	"github.com/robbyt/go-supervisor/supervisor"
)

// DefaultInterval is used when no WithInterval option is given.
const DefaultInterval = 5 * time.Second

var _ supervisor.Runnable = (*Runner)(nil)

// Runner owns one periodic.Timer, created by NewRunner and closed when Run
// returns. A Runner is therefore single use: a second Run fails.
type Runner struct {
	text     string
	interval time.Duration
	timer    *periodic.Timer

	logger *slog.Logger
	fsm    finitestate.Machine

	mu        sync.Mutex
	runCancel context.CancelFunc
	parentCtx context.Context
}

// NewRunner creates a Runner that logs text once per interval while running.
// The text is never modified, an empty string is announced as-is.
func NewRunner(text string, opts ...Option) (*Runner, error) {
	runner := &Runner{
		text:      text,
		interval:  DefaultInterval,
		timer:     periodic.New(),
		logger:    slog.Default().WithGroup("announcer.Runner"),
		parentCtx: context.Background(),
	}

	for _, opt := range opts {
		opt(runner)
	}

	if runner.interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, runner.interval)
	}

	fsmLogger := runner.logger.WithGroup("fsm")
	fsm, err := finitestate.New(fsmLogger.Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	runner.fsm = fsm

	return runner, nil
}

// String implements the supervisor.Runnable interface
func (r *Runner) String() string {
	return "announcer.Runner"
}

// Run implements the supervisor.Runnable interface. It blocks until ctx, the
// parent context, or Stop ends the run.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("Starting...")

	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()
	r.mu.Lock()
	r.runCancel = runCancel
	r.mu.Unlock()

	if err := r.timer.Start(r.interval, r.announce); err != nil {
		if stateErr := r.fsm.Transition(finitestate.StatusError); stateErr != nil {
			r.logger.Error("Failed to transition to error state", "error", stateErr)
		}
		return fmt.Errorf("%w: %w", ErrStartTimer, err)
	}

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		r.shutdownTimer()
		return fmt.Errorf("failed to transition to running state: %w", err)
	}
	r.logger.Debug("Announcer running", "interval", r.interval)

	select {
	case <-r.parentCtx.Done():
		r.logger.Debug("Parent context canceled")
	case <-runCtx.Done():
		r.logger.Debug("Run context canceled")
	}

	r.logger.Info("Stopping")

	if r.fsm.GetState() != finitestate.StatusStopping {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}

	r.shutdownTimer()

	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}
	return nil
}

// Stop implements the supervisor.Runnable interface. It is a no-op when the
// runner is not running and may be called more than once.
func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")

	if err := r.fsm.TransitionIfCurrentState(finitestate.StatusRunning, finitestate.StatusStopping); err != nil {
		r.logger.Debug("Stop called while not running", "state", r.fsm.GetState())
	}

	r.mu.Lock()
	cancel := r.runCancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// shutdownTimer halts future ticks and waits for a tick in progress, so
// nothing is announced once Run returns.
func (r *Runner) shutdownTimer() {
	r.timer.Stop()
	if err := r.timer.Close(); err != nil {
		r.logger.Warn("Failed to close announcement timer", "error", err)
	}
}

// announce is the tick action. The text goes into the message unquoted so the
// log line carries it verbatim.
func (r *Runner) announce() {
	r.logger.Info("Background work with text: " + r.text)
}
