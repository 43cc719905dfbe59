package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avelinecarr/dealsense/internal/cli/formatter"
	"github.com/avelinecarr/dealsense/internal/insight"
	"github.com/avelinecarr/dealsense/internal/risk"
	"github.com/avelinecarr/dealsense/internal/signal"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// refreshInterval drives the background tick that keeps scores current
// while the dashboard is open.
const refreshInterval = 30 * time.Second

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Live pipeline dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newDashboardModel(app)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg signals that dashboard data has been loaded.
type dashboardLoadedMsg struct {
	scored   []risk.ScoredDeal
	pipeline *insight.PipelineInsights
	loadedAt time.Time
	err      error
}

// tickMsg triggers a periodic background refresh.
type tickMsg time.Time

// ── model ────────────────────────────────────────────────────────────────────

// dashboardModel is a split-pane live view: a selectable deal list on the
// left, fresh signals for the selected deal on the right.
type dashboardModel struct {
	app *App

	width  int
	height int

	loading   bool
	err       error
	scored    []risk.ScoredDeal
	pipeline  *insight.PipelineInsights
	refreshed time.Time

	cursor int

	keys dashboardKeyMap
}

type dashboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func newDashboardModel(app *App) *dashboardModel {
	return &dashboardModel{
		app:     app,
		loading: true,
		keys:    newDashboardKeyMap(),
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadData(), m.tick())
}

func (m *dashboardModel) tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *dashboardModel) loadData() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()

		scored, err := app.Signals.EnrichAll(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		pipeline, err := app.Insights.PipelineInsights(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{
			scored:   scored,
			pipeline: pipeline,
			loadedAt: time.Now().UTC(),
		}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.scored = msg.scored
		m.pipeline = msg.pipeline
		m.refreshed = msg.loadedAt
		if m.cursor >= len(m.scored) {
			m.cursor = max(0, len(m.scored)-1)
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadData(), m.tick())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.scored)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadData()
		}
	}

	return m, nil
}

// ── view ─────────────────────────────────────────────────────────────────────

const dashLeftPaneWidth = 42

func (m *dashboardModel) View() string {
	if m.loading && m.scored == nil {
		return "\n  " + formatter.Dim("Loading...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}

	var b strings.Builder

	b.WriteString("\n  " + m.renderHealthLine() + "\n\n")

	if len(m.scored) == 0 {
		b.WriteString("  " + formatter.Dim("No deals yet. Run 'dealsense deal add' to create one.") + "\n")
		b.WriteString("\n" + m.renderFooter())
		return b.String()
	}

	left := m.renderDealList()
	right := m.renderDetail()

	if m.width >= 80 {
		rightWidth := m.width - dashLeftPaneWidth - 3
		if rightWidth < 20 {
			rightWidth = 20
		}
		leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(left)
		divider := formatter.StyleDim.Render("│")
		rightCol := lipgloss.NewStyle().Width(rightWidth).Render(right)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol))
	} else {
		b.WriteString(left)
		b.WriteString("\n")
		b.WriteString(right)
	}

	b.WriteString("\n" + m.renderFooter())
	return b.String()
}

func (m *dashboardModel) renderHealthLine() string {
	if m.pipeline == nil {
		return ""
	}
	line := fmt.Sprintf("%s %s",
		formatter.Dim("Pipeline health"),
		formatter.RenderProgress(float64(m.pipeline.HealthScore)/100, 14),
	)
	if !m.refreshed.IsZero() {
		line += "  " + formatter.Dim("updated "+m.refreshed.Format("15:04:05"))
	}
	return line
}

func (m *dashboardModel) renderDealList() string {
	var b strings.Builder
	b.WriteString("  " + formatter.StyleHeader.Render("DEALS") + "\n\n")

	for i, sd := range m.scored {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		name := sd.Deal.Name
		if len(name) > 18 {
			name = name[:17] + "…"
		}

		dot := formatter.RiskColor(sd.Signals.RiskLevel).Render("●")
		overdue := ""
		if sd.Signals.IsActionOverdue {
			overdue = formatter.StyleRed.Render(" !")
		}

		b.WriteString(fmt.Sprintf("  %s%s %s %s%s\n",
			cursor,
			dot,
			nameStyle.Render(padRight(name, 18)),
			formatter.Dim(formatter.Money(sd.Deal.Value)),
			overdue,
		))
	}

	return b.String()
}

func (m *dashboardModel) renderDetail() string {
	if m.cursor >= len(m.scored) {
		return formatter.Dim("Select a deal to see details.")
	}

	sd := m.scored[m.cursor]
	now := time.Now().UTC()
	var b strings.Builder

	b.WriteString(formatter.StyleBold.Render(sd.Deal.Name) + "\n")
	b.WriteString(formatter.StageBadge(sd.Deal.Stage) + "  " + formatter.StatusPill(sd.Signals.Status) + "\n\n")

	b.WriteString(formatter.Dim("Value   ") + formatter.Bold(formatter.Money(sd.Deal.Value)) + "\n")
	b.WriteString(formatter.Dim("Risk    ") + formatter.RiskBadge(sd.Signals.RiskLevel) + "  " + formatter.RenderScoreBar(sd.Signals.RiskScore, 12) + "\n")
	b.WriteString(formatter.Dim("Active  ") + formatter.ActivityStyled(signal.DaysSince(sd.Signals.LastActivityAt, now)) + "\n")

	if len(sd.Signals.Reasons) > 0 {
		b.WriteString("\n")
		for _, r := range sd.Signals.Reasons {
			b.WriteString(formatter.StyleYellow.Render("▸ ") + formatter.Dim(r.Message) + "\n")
		}
	}

	if ra := sd.Signals.RecommendedAction; ra != nil {
		b.WriteString("\n" + formatter.Dim("Next    ") + formatter.StyleFg.Render(ra.Label))
		if sd.Signals.IsActionOverdue && sd.Signals.ActionOverdueDays != nil {
			b.WriteString("  " + formatter.StyleRed.Render(fmt.Sprintf("overdue %dd", *sd.Signals.ActionOverdueDays)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *dashboardModel) renderFooter() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Refresh, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", kb.Help().Key, kb.Help().Desc))
	}
	return "  " + formatter.Dim(strings.Join(parts, "  ·  "))
}

// padRight pads s with spaces to exactly n display cells.
func padRight(s string, n int) string {
	w := lipgloss.Width(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}
