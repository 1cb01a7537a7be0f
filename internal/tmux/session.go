package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

func CurrentSession() (string, error) {
	out, err := exec.Command("tmux", "display-message", "-p", "#{session_name}").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get current session: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func SessionExists(name string) bool {
	err := exec.Command("tmux", "has-session", "-t", name).Run()
	return err == nil
}
