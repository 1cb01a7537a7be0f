package tmux

import (
	"fmt"
	"os/exec"
	"strings"
)

// Pane identifies a single tmux pane and the command running in it.
type Pane struct {
	ID      string // tmux pane ID, e.g. "%3"
	Window  string // window name
	Command string // current command in the pane, e.g. "claude"
}

// ListPanes returns every pane in the given session.
func ListPanes(session string) ([]Pane, error) {
	out, err := exec.Command("tmux", "list-panes",
		"-s", "-t", session,
		"-F", "#{pane_id}|#{window_name}|#{pane_current_command}").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list panes for session %s: %w", session, err)
	}

	var panes []Pane
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("unexpected list-panes format: %s", line)
		}
		panes = append(panes, Pane{ID: parts[0], Window: parts[1], Command: parts[2]})
	}
	return panes, nil
}

// CapturePane returns the visible content of the pane as plain text.
func CapturePane(paneID string) (string, error) {
	out, err := exec.Command("tmux", "capture-pane", "-t", paneID, "-p").Output()
	if err != nil {
		return "", fmt.Errorf("failed to capture pane %s: %w", paneID, err)
	}
	return string(out), nil
}

// PaneExists returns true if the given tmux pane ID still exists.
func PaneExists(paneID string) bool {
	err := exec.Command("tmux", "display-message", "-t", paneID, "-p", "").Run()
	return err == nil
}
