package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/farmhand/internal/config"
	"github.com/simonbystrom/farmhand/internal/ready"
	"github.com/simonbystrom/farmhand/internal/tmux"
)

type paneState int

const (
	stateStarting paneState = iota
	stateReady
	stateFailed
)

// paneRow is the per-pane state shown in the watch table. It only observes:
// the watcher never sends keys to a pane.
type paneRow struct {
	pane     tmux.Pane
	state    paneState
	marker   string // description of the matched marker, when ready
	notReady int    // consecutive not-ready polls
}

type tickMsg time.Time

type pollResult struct {
	pane    tmux.Pane
	ready   bool
	marker  string
	capFail bool
}

type pollDoneMsg struct {
	results []pollResult
	err     error
}

// WatchModel is the read-only dashboard: it polls every pane of a session
// on a fixed tick and shows which ones have a ready Claude Code instance.
type WatchModel struct {
	session string
	tmux    tmux.PaneCapturer
	cfg     config.Config
	styles  Styles
	spinner spinner.Model

	rows   []paneRow
	cursor int
	err    string
	width  int
	height int
}

func NewWatch(cfg config.Config, t tmux.PaneCapturer, session string) WatchModel {
	s := NewStyles(cfg.Colors)
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Starting
	return WatchModel{
		session: session,
		tmux:    t,
		cfg:     cfg,
		styles:  s,
		spinner: sp,
	}
}

func (m WatchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Poll.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m WatchModel) pollCmd() tea.Cmd {
	t, session := m.tmux, m.session
	return func() tea.Msg {
		panes, err := t.ListPanes(session)
		if err != nil {
			return pollDoneMsg{err: err}
		}
		results := make([]pollResult, 0, len(panes))
		for _, p := range panes {
			content, err := t.CapturePane(p.ID)
			if err != nil {
				results = append(results, pollResult{pane: p, capFail: true})
				continue
			}
			r := pollResult{pane: p}
			if rule, ok := ready.MatchMarker(content); ok {
				r.ready = true
				r.marker = rule.Desc
			}
			results = append(results, r)
		}
		return pollDoneMsg{results: results}
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.pollCmd())
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "r":
			return m, m.pollCmd()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m, m.pollCmd()

	case pollDoneMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, m.tickCmd()
		}
		m.err = ""
		m.rows = m.merge(msg.results)
		if m.cursor >= len(m.rows) && len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
		return m, m.tickCmd()
	}

	return m, nil
}

// merge folds a poll into the existing rows, keeping per-pane attempt counts
// across polls. Panes that disappeared are dropped.
func (m WatchModel) merge(results []pollResult) []paneRow {
	prev := make(map[string]paneRow, len(m.rows))
	for _, r := range m.rows {
		prev[r.pane.ID] = r
	}

	rows := make([]paneRow, 0, len(results))
	for _, res := range results {
		row := paneRow{pane: res.pane}
		if old, ok := prev[res.pane.ID]; ok {
			row.notReady = old.notReady
		}
		switch {
		case res.ready:
			row.state = stateReady
			row.marker = res.marker
			row.notReady = 0
		default:
			row.notReady++
			// A failed pane keeps being polled: a late marker still
			// flips it back to ready.
			if row.notReady >= m.cfg.Poll.Attempts {
				row.state = stateFailed
			} else {
				row.state = stateStarting
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].pane.ID < rows[j].pane.ID })
	return rows
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("farmhand"))
	b.WriteString(m.styles.Dimmed.Render(" — watching session " + m.session))
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(m.styles.Error.Render("error: " + m.err))
		b.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(m.styles.Dimmed.Render("no panes found"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.Header.Render(fmt.Sprintf("  %-3s %-12s %-8s %-12s %s",
			"", "WINDOW", "PANE", "COMMAND", "STATUS")))
		b.WriteString("\n")
		for i, row := range m.rows {
			line := fmt.Sprintf("%-3s %-12s %-8s %-12s %s",
				m.stateGlyph(row), row.pane.Window, row.pane.ID, row.pane.Command, m.stateText(row))
			if i == m.cursor {
				line = m.styles.Selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ move · r refresh · q quit"))
	return b.String()
}

func (m WatchModel) stateGlyph(row paneRow) string {
	switch row.state {
	case stateReady:
		return m.styles.Ready.Render("✓")
	case stateFailed:
		return m.styles.Failed.Render("✗")
	default:
		return m.spinner.View()
	}
}

func (m WatchModel) stateText(row paneRow) string {
	switch row.state {
	case stateReady:
		return m.styles.Ready.Render("ready") + m.styles.Dimmed.Render(" ("+row.marker+")")
	case stateFailed:
		return m.styles.Failed.Render(fmt.Sprintf("not ready after %d polls", row.notReady))
	default:
		return m.styles.Starting.Render(fmt.Sprintf("starting (poll %d/%d)", row.notReady+1, m.cfg.Poll.Attempts))
	}
}
