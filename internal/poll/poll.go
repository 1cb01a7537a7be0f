// Package poll drives the bounded retry loop that waits for Claude Code
// panes to become ready.
package poll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/simonbystrom/farmhand/internal/ready"
	"github.com/simonbystrom/farmhand/internal/tmux"
)

const (
	// DefaultAttempts is how many snapshots are taken before giving up
	// on a pane.
	DefaultAttempts = 5

	// DefaultInterval is the delay between snapshots.
	DefaultInterval = 2 * time.Second
)

// Waiter polls a pane until Claude Code reports ready or the attempt
// budget runs out. Each poll captures a fresh snapshot; no state is kept
// between polls.
type Waiter struct {
	tmux     tmux.PaneCapturer
	attempts int
	interval time.Duration
	logger   *slog.Logger
}

// Option configures a Waiter.
type Option func(*Waiter)

// WithTmux overrides the default tmux implementation.
func WithTmux(t tmux.PaneCapturer) Option {
	return func(w *Waiter) { w.tmux = t }
}

// WithAttempts sets the number of polls before giving up.
func WithAttempts(n int) Option {
	return func(w *Waiter) {
		if n > 0 {
			w.attempts = n
		}
	}
}

// WithInterval sets the delay between polls.
func WithInterval(d time.Duration) Option {
	return func(w *Waiter) {
		if d >= 0 {
			w.interval = d
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Waiter) { w.logger = l }
}

func NewWaiter(opts ...Option) *Waiter {
	w := &Waiter{
		tmux:     tmux.RealTmux{},
		attempts: DefaultAttempts,
		interval: DefaultInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Check captures the pane once and returns the readiness verdict.
func (w *Waiter) Check(paneID string) (bool, error) {
	content, err := w.tmux.CapturePane(paneID)
	if err != nil {
		return false, err
	}
	return ready.IsReady(content), nil
}

// Wait polls the pane until it is ready, the context is cancelled, or the
// attempt budget is exhausted. The agent number only labels log output and
// the failure error.
func (w *Waiter) Wait(ctx context.Context, agent int, paneID string) error {
	for attempt := 1; attempt <= w.attempts; attempt++ {
		if !w.tmux.PaneExists(paneID) {
			return fmt.Errorf("agent %d: pane %s is gone", agent, paneID)
		}

		content, err := w.tmux.CapturePane(paneID)
		if err != nil {
			// A capture can fail transiently while the pane is being
			// created; treat it as not ready and keep polling.
			w.logger.Debug("capture failed", "agent", agent, "pane", paneID, "err", err)
		} else if ready.IsReady(content) {
			w.logger.Debug("agent ready", "agent", agent, "pane", paneID, "attempt", attempt)
			return nil
		}

		if attempt == w.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.interval):
		}
	}

	return fmt.Errorf("agent %d: claude failed to start properly after %d attempts", agent, w.attempts)
}
