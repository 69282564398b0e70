package trends

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	trackerdto "fittrack/internal/modules/tracker/dto"
	"fittrack/internal/platform/datekey"
	"fittrack/internal/platform/numfmt"
	"fittrack/internal/ui/components"
	"fittrack/internal/ui/theme"
)

// Periods in the order the period key cycles through them.
var Periods = []string{"7days", "30days", "90days", "all"}

type Port interface {
	Timeline(ctx context.Context, period string) (trackerdto.TimelineOutput, error)
	LoadGoals(ctx context.Context) (trackerdto.GoalsOutput, error)
}

type TimelineLoadedMsg struct {
	Timeline trackerdto.TimelineOutput
	Goals    trackerdto.GoalsOutput
	Err      error
}

type Model struct {
	port     Port
	period   string
	timeline trackerdto.TimelineOutput
	goals    trackerdto.GoalsOutput
	err      error
	view     viewport.Model
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, period: Periods[0], view: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Period() string { return m.period }

func (m Model) Reload() tea.Cmd {
	period := m.period
	return func() tea.Msg {
		ctx := context.Background()
		tl, err := m.port.Timeline(ctx, period)
		if err != nil {
			return TimelineLoadedMsg{Err: err}
		}
		goals, err := m.port.LoadGoals(ctx)
		return TimelineLoadedMsg{Timeline: tl, Goals: goals, Err: err}
	}
}

// SetPeriod switches the chart window and reloads it.
func (m *Model) SetPeriod(period string) tea.Cmd {
	m.period = period
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-2, 1)
		m.view.SetContent(m.renderCharts())
		return m, nil

	case TimelineLoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.timeline = msg.Timeline
			m.goals = msg.Goals
			m.period = msg.Timeline.Period
		}
		m.view.SetContent(m.renderCharts())
		m.view.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			return m, m.SetPeriod(nextPeriod(m.period))
		case "1", "2", "3", "4":
			return m, m.SetPeriod(Periods[int(msg.String()[0]-'1')])
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.renderHeader() + "\n" + m.view.View()
}

func (m Model) renderHeader() string {
	title := cases.Title(language.English)
	parts := make([]string, len(Periods))
	for i, p := range Periods {
		label := fmt.Sprintf("%d %s", i+1, title.String(periodLabel(p)))
		if p == m.period {
			parts[i] = theme.Hot.Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	return strings.Join(parts, "   ") + theme.Muted.Render("   p: next period  ↑/↓: scroll")
}

func (m Model) renderCharts() string {
	if m.err != nil {
		return theme.Error.Render("could not load timeline: " + m.err.Error())
	}
	points := m.timeline.Points
	if len(points) == 0 {
		return theme.Muted.Render("Nothing logged yet.")
	}

	width := m.width
	if width < 40 {
		width = 40
	}
	weights := make([]components.Bar, len(points))
	steps := make([]components.Bar, len(points))
	water := make([]components.Bar, len(points))
	for i, p := range points {
		label := datekey.Short(p.Date)
		weights[i] = components.Bar{Label: label}
		steps[i] = components.Bar{Label: label}
		water[i] = components.Bar{Label: label}
		if p.Weight != nil {
			w := *p.Weight
			weights[i].Value, weights[i].Text = &w, numfmt.Pounds(w)
		}
		if p.Steps != nil {
			s := float64(*p.Steps)
			steps[i].Value, steps[i].Text = &s, numfmt.Count(*p.Steps)
		}
		if p.Water != nil {
			c := float64(*p.Water)
			water[i].Value, water[i].Text = &c, fmt.Sprintf("%d", *p.Water)
		}
	}

	charts := []string{
		components.BarChart("Weight (lbs)", weights, 0, width, theme.WeightColor),
		components.BarChart("Steps", steps, float64(m.goals.DailySteps), width, theme.StepsColor),
		components.BarChart("Water (cups)", water, float64(m.goals.DailyWater), width, theme.WaterColor),
	}
	return lipgloss.JoinVertical(lipgloss.Left, charts...)
}

func periodLabel(p string) string {
	switch p {
	case "7days":
		return "7 days"
	case "30days":
		return "30 days"
	case "90days":
		return "90 days"
	}
	return "all time"
}

func nextPeriod(p string) string {
	for i, candidate := range Periods {
		if candidate == p {
			return Periods[(i+1)%len(Periods)]
		}
	}
	return Periods[0]
}
