package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/simonbystrom/farmhand/internal/config"
	"github.com/simonbystrom/farmhand/internal/poll"
	"github.com/simonbystrom/farmhand/internal/tmux"
	"github.com/simonbystrom/farmhand/internal/ui"
)

func main() {
	session := flag.String("session", "", "tmux session name (defaults to current session)")
	pane := flag.String("pane", "", "check a single pane ID instead of the whole session")
	wait := flag.Bool("wait", false, "poll until ready or the attempt budget runs out")
	watch := flag.Bool("watch", false, "show a live dashboard of pane readiness")
	attempts := flag.Int("attempts", 0, "polls before declaring a pane failed (overrides config)")
	interval := flag.Duration("interval", 0, "delay between polls (overrides config)")
	initConfig := flag.Bool("init-config", false, "write a default config file and exit")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *initConfig {
		path := config.Path()
		if err := config.WriteDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if *attempts > 0 {
		cfg.Poll.Attempts = *attempts
	}
	if *interval > 0 {
		cfg.Poll.IntervalMS = int(interval.Milliseconds())
	}

	if err := validateDependencies(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if _, err := tmux.CheckVersion(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	// Auto-detect current tmux session if not specified
	if *session == "" && *pane == "" {
		if !tmux.InsideTmux() {
			fmt.Fprintf(os.Stderr, "error: not inside a tmux session (run inside tmux or pass --session)\n")
			os.Exit(1)
		}
		detected, err := tmux.CurrentSession()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error detecting tmux session: %v\n", err)
			os.Exit(1)
		}
		*session = detected
	}
	if *session != "" && !tmux.SessionExists(*session) {
		fmt.Fprintf(os.Stderr, "error: tmux session %q does not exist\n", *session)
		os.Exit(1)
	}

	if *watch {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintf(os.Stderr, "error: --watch needs a terminal (use --wait for scripts)\n")
			os.Exit(1)
		}
		model := ui.NewWatch(cfg, tmux.RealTmux{}, *session)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *wait {
		os.Exit(runWait(ctx, cfg, *session, *pane))
	}
	os.Exit(runCheck(cfg, *session, *pane))
}

// runCheck takes a single snapshot of each pane and prints the verdicts.
// Exit status is 0 when at least one pane is ready.
func runCheck(cfg config.Config, session, pane string) int {
	w := poll.NewWaiter(pollOptions(cfg)...)

	panes, code := targetPanes(session, pane)
	if code != 0 {
		return code
	}

	anyReady := false
	for _, p := range panes {
		ok, err := w.Check(p.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		verdict := "not ready"
		if ok {
			verdict = "ready"
			anyReady = true
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", p.ID, p.Window, p.Command, verdict)
	}
	if !anyReady {
		return 1
	}
	return 0
}

// runWait polls each pane until it is ready or the attempt budget runs out.
// Exit status is 0 only when every pane came up.
func runWait(ctx context.Context, cfg config.Config, session, pane string) int {
	w := poll.NewWaiter(pollOptions(cfg)...)

	panes, code := targetPanes(session, pane)
	if code != 0 {
		return code
	}

	failed := 0
	for i, p := range panes {
		if err := w.Wait(ctx, i+1, p.ID); err != nil {
			if ctx.Err() != nil {
				fmt.Fprintf(os.Stderr, "interrupted\n")
				return 1
			}
			fmt.Fprintf(os.Stderr, "%v\n", err)
			failed++
			continue
		}
		fmt.Printf("%s\t%s\tready\n", p.ID, p.Window)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// pollOptions maps the poll section of the config onto waiter options.
func pollOptions(cfg config.Config) []poll.Option {
	return []poll.Option{
		poll.WithAttempts(cfg.Poll.Attempts),
		poll.WithInterval(cfg.Poll.Interval()),
	}
}

// targetPanes resolves the flags to the list of panes to inspect.
func targetPanes(session, pane string) ([]tmux.Pane, int) {
	if pane != "" {
		if !tmux.PaneExists(pane) {
			fmt.Fprintf(os.Stderr, "error: pane %s does not exist\n", pane)
			return nil, 1
		}
		return []tmux.Pane{{ID: pane}}, 0
	}

	panes, err := tmux.ListPanes(session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, 1
	}
	if len(panes) == 0 {
		fmt.Fprintf(os.Stderr, "error: session %q has no panes\n", session)
		return nil, 1
	}
	return panes, 0
}

func validateDependencies() error {
	if _, err := exec.LookPath("tmux"); err != nil {
		return fmt.Errorf("tmux not found on PATH")
	}
	return nil
}
