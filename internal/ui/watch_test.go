package ui

import (
	"strings"
	"testing"

	"github.com/simonbystrom/farmhand/internal/config"
	"github.com/simonbystrom/farmhand/internal/tmux"
)

func newTestWatch(t *testing.T) WatchModel {
	t.Helper()
	cfg := config.Default()
	m := NewWatch(cfg, tmux.RealTmux{}, "test")
	m.width = 120
	m.height = 40
	return m
}

func result(id, window, cmd string, ready bool) pollResult {
	return pollResult{
		pane:   tmux.Pane{ID: id, Window: window, Command: cmd},
		ready:  ready,
		marker: "welcome banner",
	}
}

func TestMergeMarksReady(t *testing.T) {
	m := newTestWatch(t)

	rows := m.merge([]pollResult{result("%1", "agent01", "claude", true)})
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].state != stateReady {
		t.Errorf("state = %v, want stateReady", rows[0].state)
	}
	if rows[0].marker != "welcome banner" {
		t.Errorf("marker = %q, want %q", rows[0].marker, "welcome banner")
	}
}

func TestMergeCountsNotReadyPolls(t *testing.T) {
	m := newTestWatch(t)

	m.rows = m.merge([]pollResult{result("%1", "agent01", "claude", false)})
	if m.rows[0].state != stateStarting {
		t.Errorf("state after 1 poll = %v, want stateStarting", m.rows[0].state)
	}
	if m.rows[0].notReady != 1 {
		t.Errorf("notReady = %d, want 1", m.rows[0].notReady)
	}

	for i := 0; i < m.cfg.Poll.Attempts-1; i++ {
		m.rows = m.merge([]pollResult{result("%1", "agent01", "claude", false)})
	}
	if m.rows[0].state != stateFailed {
		t.Errorf("state after %d polls = %v, want stateFailed", m.cfg.Poll.Attempts, m.rows[0].state)
	}
}

func TestMergeFailedPaneRecovers(t *testing.T) {
	m := newTestWatch(t)

	for i := 0; i < m.cfg.Poll.Attempts; i++ {
		m.rows = m.merge([]pollResult{result("%1", "agent01", "claude", false)})
	}
	if m.rows[0].state != stateFailed {
		t.Fatalf("state = %v, want stateFailed", m.rows[0].state)
	}

	m.rows = m.merge([]pollResult{result("%1", "agent01", "claude", true)})
	if m.rows[0].state != stateReady {
		t.Errorf("state = %v, want stateReady after late marker", m.rows[0].state)
	}
	if m.rows[0].notReady != 0 {
		t.Errorf("notReady = %d, want 0 after recovery", m.rows[0].notReady)
	}
}

func TestMergeDropsGonePanes(t *testing.T) {
	m := newTestWatch(t)

	m.rows = m.merge([]pollResult{
		result("%1", "agent01", "claude", true),
		result("%2", "agent02", "claude", false),
	})
	m.rows = m.merge([]pollResult{result("%2", "agent02", "claude", false)})

	if len(m.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(m.rows))
	}
	if m.rows[0].pane.ID != "%2" {
		t.Errorf("remaining pane = %s, want %%2", m.rows[0].pane.ID)
	}
	if m.rows[0].notReady != 2 {
		t.Errorf("notReady = %d, want 2 (count kept across polls)", m.rows[0].notReady)
	}
}

func TestMergeSortsByPaneID(t *testing.T) {
	m := newTestWatch(t)

	rows := m.merge([]pollResult{
		result("%3", "agent03", "claude", false),
		result("%1", "agent01", "claude", false),
	})
	if rows[0].pane.ID != "%1" || rows[1].pane.ID != "%3" {
		t.Errorf("rows out of order: %s, %s", rows[0].pane.ID, rows[1].pane.ID)
	}
}

func TestViewShowsPanes(t *testing.T) {
	m := newTestWatch(t)
	m.rows = m.merge([]pollResult{
		result("%1", "agent01", "claude", true),
		result("%2", "agent02", "node", false),
	})

	view := m.View()
	for _, want := range []string{"agent01", "agent02", "ready", "starting", "watching session test"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := newTestWatch(t)
	if !strings.Contains(m.View(), "no panes found") {
		t.Error("View() missing empty-state message")
	}
}
