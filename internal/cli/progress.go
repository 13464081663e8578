package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/figx/pkg/evaluator"
	"github.com/matzehuels/figx/pkg/graph"
)

// dashboardMsg wraps one evaluator.Event for the bubbletea update loop.
type dashboardMsg struct {
	event evaluator.Event
	ok    bool
}

// runDoneMsg carries the outcome of the evaluator.Run goroutine back into
// the dashboard loop, so the program can quit once the graph finishes.
type runDoneMsg struct{ err error }

// dashboardModel renders one row per in-flight action, keyed by
// monotonically increasing handle (spec's Progress interface, §1).
// Finished rows drop out of the map; the model keeps a running completed
// count for the summary line.
type dashboardModel struct {
	reporter  *evaluator.Reporter
	inflight  map[graph.Handle]graph.DiagnosticsInfo
	order     []graph.Handle
	completed int
	total     int
	start     time.Time
	err       error
	quitting  bool
}

func newDashboardModel(reporter *evaluator.Reporter, total int) dashboardModel {
	return dashboardModel{
		reporter: reporter,
		inflight: make(map[graph.Handle]graph.DiagnosticsInfo),
		total:    total,
		start:    time.Now(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return listenForEvent(m.reporter)
}

func listenForEvent(r *evaluator.Reporter) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-r.Events()
		return dashboardMsg{event: ev, ok: ok}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case dashboardMsg:
		if !msg.ok {
			return m, nil
		}
		if msg.event.Done {
			delete(m.inflight, msg.event.Handle)
			m.completed++
		} else {
			m.inflight[msg.event.Handle] = msg.event.Info
			m.order = append(m.order, msg.event.Handle)
		}
		return m, listenForEvent(m.reporter)
	case runDoneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var rows [][]string
	seen := make(map[graph.Handle]bool)
	for i := len(m.order) - 1; i >= 0 && len(rows) < 8; i-- {
		h := m.order[i]
		if seen[h] {
			continue
		}
		seen[h] = true
		info, ok := m.inflight[h]
		if !ok {
			continue
		}
		rows = append(rows, []string{info.Name, paramsString(info)})
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("figx import — %d/%d", m.completed, m.total)))
	b.WriteString("\n")

	if len(rows) > 0 {
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if col == 0 {
					return lipgloss.NewStyle().Foreground(colorCyan)
				}
				return lipgloss.NewStyle().Foreground(colorDim)
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(time.Since(m.start).Round(time.Millisecond).String()))
	return b.String()
}

func paramsString(info graph.DiagnosticsInfo) string {
	parts := make([]string, len(info.Params))
	for i, p := range info.Params {
		parts[i] = p.Key + "=" + p.Value
	}
	return strings.Join(parts, " ")
}

// runWithDashboard drives an evaluator.Run call while rendering a
// bubbletea dashboard fed by reporter. It blocks until the run finishes.
func runWithDashboard(ctx context.Context, run func(progress graph.Progress) error, total int) error {
	reporter := evaluator.NewReporter(32)
	defer reporter.Close()

	model := newDashboardModel(reporter, total)
	program := tea.NewProgram(model)

	runErr := make(chan error, 1)
	go func() {
		runErr <- run(reporter)
	}()

	go func() {
		err := <-runErr
		program.Send(runDoneMsg{err: err})
	}()

	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := finalModel.(dashboardModel); ok {
		return fm.err
	}
	return nil
}
