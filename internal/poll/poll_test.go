package poll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/simonbystrom/farmhand/internal/tmux"
)

// fakeTmux serves captures from a scripted sequence, repeating the last
// entry once the sequence is exhausted.
type fakeTmux struct {
	captures   []string
	captureErr error
	calls      int
	gone       bool
	panes      []tmux.Pane
}

func (f *fakeTmux) ListPanes(session string) ([]tmux.Pane, error) {
	return f.panes, nil
}

func (f *fakeTmux) CapturePane(paneID string) (string, error) {
	if f.captureErr != nil {
		return "", f.captureErr
	}
	i := f.calls
	f.calls++
	if i >= len(f.captures) {
		i = len(f.captures) - 1
	}
	return f.captures[i], nil
}

func (f *fakeTmux) PaneExists(paneID string) bool {
	return !f.gone
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWaitReadyImmediately(t *testing.T) {
	fake := &fakeTmux{captures: []string{"Welcome to Claude Code!\n"}}
	w := NewWaiter(WithTmux(fake), WithInterval(0), WithLogger(quietLogger()))

	if err := w.Wait(context.Background(), 1, "%0"); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}
	if fake.calls != 1 {
		t.Errorf("captures = %d, want 1", fake.calls)
	}
}

func TestWaitReadyAfterRetries(t *testing.T) {
	fake := &fakeTmux{captures: []string{
		"",
		"Loading...",
		"╭──────────╮\n│ > Try \"fix the build\"\n",
	}}
	w := NewWaiter(WithTmux(fake), WithInterval(0), WithLogger(quietLogger()))

	if err := w.Wait(context.Background(), 2, "%1"); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}
	if fake.calls != 3 {
		t.Errorf("captures = %d, want 3", fake.calls)
	}
}

func TestWaitExhaustsAttempts(t *testing.T) {
	fake := &fakeTmux{captures: []string{"$ ls -la\nfile1 file2"}}
	w := NewWaiter(WithTmux(fake), WithAttempts(5), WithInterval(0), WithLogger(quietLogger()))

	err := w.Wait(context.Background(), 3, "%2")
	if err == nil {
		t.Fatal("Wait() = nil, want error")
	}
	want := "agent 3: claude failed to start properly after 5 attempts"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	if fake.calls != 5 {
		t.Errorf("captures = %d, want 5", fake.calls)
	}
}

func TestWaitCaptureErrorKeepsPolling(t *testing.T) {
	fake := &fakeTmux{captureErr: errors.New("no server running")}
	w := NewWaiter(WithTmux(fake), WithAttempts(2), WithInterval(0), WithLogger(quietLogger()))

	err := w.Wait(context.Background(), 1, "%0")
	if err == nil || !strings.Contains(err.Error(), "failed to start properly") {
		t.Errorf("Wait() = %v, want attempt-exhausted error", err)
	}
}

func TestWaitPaneGone(t *testing.T) {
	fake := &fakeTmux{gone: true, captures: []string{""}}
	w := NewWaiter(WithTmux(fake), WithInterval(0), WithLogger(quietLogger()))

	err := w.Wait(context.Background(), 4, "%9")
	if err == nil || !strings.Contains(err.Error(), "pane %9 is gone") {
		t.Errorf("Wait() = %v, want pane-gone error", err)
	}
}

func TestWaitContextCancelled(t *testing.T) {
	fake := &fakeTmux{captures: []string{"not ready yet"}}
	w := NewWaiter(WithTmux(fake), WithInterval(time.Hour), WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Wait(ctx, 1, "%0") }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after cancellation")
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"ready pane", "? for shortcuts\n", true},
		{"busy pane", "Compiling files...\n", false},
		{"empty pane", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTmux{captures: []string{tt.content}}
			w := NewWaiter(WithTmux(fake), WithLogger(quietLogger()))
			got, err := w.Check("%0")
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckPropagatesCaptureError(t *testing.T) {
	fake := &fakeTmux{captureErr: fmt.Errorf("capture pane: %w", errors.New("exit status 1"))}
	w := NewWaiter(WithTmux(fake), WithLogger(quietLogger()))

	if _, err := w.Check("%0"); err == nil {
		t.Error("Check() = nil error, want capture error")
	}
}
