// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist-go/internal/task"
	"github.com/nibzard/tasklist-go/internal/utils"
)

// ErrNotTTY is returned when the viewer is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	output   io.Writer
	interval time.Duration
}

// WithOutput sets the terminal the viewer draws to. Defaults to stdout.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// WithRefreshInterval sets how often the task file is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// RunTUI shows a read-only view of the task file at path until the user
// quits or ctx is cancelled.
func RunTUI(ctx context.Context, path string, opts ...TUIOption) error {
	c := &tuiConfig{
		output:   os.Stdout,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !utils.IsTTY(c.output) {
		return ErrNotTTY
	}

	model := newTUIModel(path, c.interval)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(c.output),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

type tuiModel struct {
	path         string
	tasks        []task.Task
	loadErr      error
	loaded       bool
	tickInterval time.Duration
	filter       *task.Priority
	cursor       int
	showHelp     bool
}

type tickMsg time.Time

func newTUIModel(path string, interval time.Duration) *tuiModel {
	return &tuiModel{
		path:         path,
		tickInterval: interval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case "1":
			m.setFilter(task.PriorityLow)
		case "2":
			m.setFilter(task.PriorityMedium)
		case "3":
			m.setFilter(task.PriorityHigh)
		case "0":
			m.filter = nil
			m.cursor = 0
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.filter != nil {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", *m.filter)
	}

	switch {
	case m.loadErr != nil:
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	case !m.loaded:
		b.WriteString("Loading...\n\n")
	default:
		writeOverview(&b, m.tasks)
		visible := m.visible()
		writeTaskList(&b, visible, m.cursor)
		if m.cursor < len(visible) {
			b.WriteString("Selected\n\n")
			b.WriteString(indent(visible[m.cursor].Render()))
			b.WriteString("\n\n")
		}
	}

	fmt.Fprintf(&b, "  File: %s\n\n", m.path)
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	tasks, err := task.ReadFile(m.path)
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.loaded = true
	m.tasks = tasks
	m.clampCursor()
}

func (m *tuiModel) setFilter(p task.Priority) {
	m.filter = &p
	m.cursor = 0
}

// visible returns the tasks matching the active filter, in file order.
func (m *tuiModel) visible() []task.Task {
	if m.filter == nil {
		return m.tasks
	}
	var out []task.Task
	for _, t := range m.tasks {
		if t.Priority == *m.filter {
			out = append(out, t)
		}
	}
	return out
}

func (m *tuiModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func writeTitle(b *strings.Builder) {
	title := "Tasklist"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []task.Task) {
	counts := make(map[task.Priority]int, len(task.Priorities()))
	for _, t := range tasks {
		counts[t.Priority]++
	}
	b.WriteString("Task Overview\n\n")
	fmt.Fprintf(b, "  Total: %d  Low: %d  Medium: %d  High: %d\n\n",
		len(tasks),
		counts[task.PriorityLow],
		counts[task.PriorityMedium],
		counts[task.PriorityHigh],
	)
}

func writeTaskList(b *strings.Builder, tasks []task.Task, cursor int) {
	b.WriteString("Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for i, t := range tasks {
		marker := " "
		if i == cursor {
			marker = ">"
		}
		fmt.Fprintf(b, "  %s %-6s %s\n", marker, t.Priority, t.Name)
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by low\n")
	b.WriteString("  2            Filter by medium\n")
	b.WriteString("  3            Filter by high\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	fmt.Fprintf(b, "Press h for help | q to quit | Refreshing every %s\n", interval)
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
