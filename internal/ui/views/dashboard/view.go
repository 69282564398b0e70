package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	feedbackdto "fittrack/internal/modules/feedback/dto"
	trackerdto "fittrack/internal/modules/tracker/dto"
	"fittrack/internal/platform/datekey"
	"fittrack/internal/platform/numfmt"
	"fittrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	LoadData(ctx context.Context) (trackerdto.LoadDataOutput, error)
	Feedback(ctx context.Context, date string) (feedbackdto.FeedbackOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Data     trackerdto.LoadDataOutput
	Feedback feedbackdto.FeedbackOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	data     trackerdto.LoadDataOutput
	feedback feedbackdto.FeedbackOutput
	err      error
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches today's entry, goals and feedback.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		data, err := m.port.LoadData(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		fb, err := m.port.Feedback(ctx, "")
		return LoadedMsg{Data: data, Feedback: fb, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Data
			m.feedback = msg.Feedback
		}
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading today…")
	}
	if m.err != nil {
		return theme.Error.Render("could not load data: " + m.err.Error())
	}

	half := m.width/2 - 2
	if half < 30 {
		half = 30
	}
	today := theme.Pane.Width(half).Render(m.renderToday())
	feedback := theme.Pane.Width(half).Render(m.renderFeedback())
	if m.width < 64 {
		return lipgloss.JoinVertical(lipgloss.Left, today, feedback)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, today, feedback)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderToday() string {
	e := m.data.Today.Entry
	g := m.data.Goals

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(datekey.Long(e.Date)))
	if m.data.Today.Draft {
		sb.WriteString(theme.Muted.Render("  not logged yet"))
	}
	sb.WriteString("\n\n")

	weight := "—"
	if e.Weight != nil {
		weight = numfmt.Pounds(*e.Weight) + " lbs"
	}
	if g.TargetWeight != nil {
		weight += theme.Muted.Render("  target " + numfmt.Pounds(*g.TargetWeight))
	}
	sb.WriteString(metric("Weight", weight, theme.WeightColor))

	steps := "—"
	if e.Steps != nil {
		steps = numfmt.Count(*e.Steps)
	}
	sb.WriteString(metric("Steps", steps+theme.Muted.Render(" / "+numfmt.Count(g.DailySteps)), theme.StepsColor))

	water := "—"
	if e.Water != nil {
		water = fmt.Sprintf("%d", *e.Water)
	}
	sb.WriteString(metric("Water", water+theme.Muted.Render(fmt.Sprintf(" / %d %s", g.DailyWater, numfmt.Plural(g.DailyWater, "cup", "cups"))), theme.WaterColor))

	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("%d days logged", len(m.data.Entries))))
	return sb.String()
}

func (m Model) renderFeedback() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Feedback") + "\n\n")
	for _, msg := range m.feedback.Messages {
		if msg.Achieved {
			sb.WriteString(theme.Achieved.Render("✓ "+msg.Text) + "\n")
		} else {
			sb.WriteString(theme.Pending.Render("• "+msg.Text) + "\n")
		}
	}
	return sb.String()
}

func metric(label, value string, color lipgloss.Color) string {
	name := lipgloss.NewStyle().Foreground(color).Width(8).Render(label)
	return name + value + "\n"
}
