package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	feedbackdto "fittrack/internal/modules/feedback/dto"
	trackerinadapter "fittrack/internal/modules/tracker/adapter/in"
	trackerdto "fittrack/internal/modules/tracker/dto"
	"fittrack/internal/platform/datekey"
	"fittrack/internal/platform/numfmt"
	"fittrack/internal/ui/components"
	"fittrack/internal/ui/theme"
	dashboardview "fittrack/internal/ui/views/dashboard"
	historyview "fittrack/internal/ui/views/history"
	trendsview "fittrack/internal/ui/views/trends"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type trackerPort interface {
	LoadData(ctx context.Context) (trackerdto.LoadDataOutput, error)
	LogEntry(ctx context.Context, date string, fields trackerinadapter.EntryFields) (trackerdto.EntryOutput, error)
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, ascending bool) ([]trackerdto.EntryOutput, error)
	LoadGoals(ctx context.Context) (trackerdto.GoalsOutput, error)
	UpdateGoals(ctx context.Context, fields trackerinadapter.GoalFields) (trackerdto.GoalsOutput, error)
	Timeline(ctx context.Context, period string) (trackerdto.TimelineOutput, error)
}

type feedbackPort interface {
	Feedback(ctx context.Context, date string) (feedbackdto.FeedbackOutput, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabHistory
	tabTrends
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "History", "Trends"}

// ─── async messages ──────────────────────────────────────────────────────────

type entrySavedMsg struct {
	entry trackerdto.EntryOutput
	err   error
}

type goalsSavedMsg struct {
	goals trackerdto.GoalsOutput
	err   error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Delete  key.Binding
	Period  key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry (history)")),
		Period:  key.NewBinding(key.WithKeys("p", "1", "2", "3", "4"), key.WithHelp("p/1-4", "chart period (trends)")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.Delete, k.Period},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, owns the help overlay
// and the command palette, and refreshes every view after a write.
type Model struct {
	tracker trackerPort

	dashView    dashboardview.Model
	historyView historyview.Model
	trendsView  trendsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(tracker trackerPort, feedback feedbackPort) Model {
	return Model{
		tracker:     tracker,
		dashView:    dashboardview.New(dashboardPortBridge{tracker: tracker, feedback: feedback}),
		historyView: historyview.New(tracker),
		trendsView:  trendsview.New(tracker),
		activeTab:   tabDashboard,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.dashView.Init(), m.historyView.Init(), m.trendsView.Init())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() && !isAsyncResult(msg) {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Loaded messages go to their owning view whatever tab is showing.
	case dashboardview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd
	case historyview.EntriesLoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd
	case trendsview.TimelineLoadedMsg:
		var cmd tea.Cmd
		m.trendsView, cmd = m.trendsView.Update(msg)
		return m, cmd

	case historyview.DeletedMsg:
		if msg.Err != nil {
			m.status = "delete failed: " + msg.Err.Error()
			return m, nil
		}
		m.status = "deleted " + datekey.Long(msg.Date)
		return m, m.refreshAll()

	case entrySavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "saved " + datekey.Long(msg.entry.Date)
		return m, m.refreshAll()

	case goalsSavedMsg:
		if msg.err != nil {
			m.status = "goals not saved: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("goals: %d steps, %d %s", msg.goals.DailySteps, msg.goals.DailyWater,
			numfmt.Plural(msg.goals.DailyWater, "cup", "cups"))
		return m, m.refreshAll()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if !m.subViewCapturing() {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "tab":
				m.activeTab = (m.activeTab + 1) % tabCount
				return m, nil
			case "shift+tab":
				m.activeTab = (m.activeTab + tabCount - 1) % tabCount
				return m, nil
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				cmd := m.palette.Open()
				return m, cmd
			case "r":
				m.status = "refreshing"
				return m, m.refreshAll()
			}
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case tabHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case tabTrends:
		m.trendsView, cmd = m.trendsView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabHistory:
		return m.historyView.View()
	case tabTrends:
		return m.trendsView.View()
	}
	return m.dashView.View()
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "fittrack  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  ::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "log":
		cmd, err := parseLog(parts[1:])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.logEntryCmd(cmd)

	case "goal", "goals":
		fields, err := parseGoal(parts[1:])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.updateGoalsCmd(fields)

	case "period":
		if len(parts) != 2 || !validPeriod(parts[1]) {
			m.status = "usage: period " + strings.Join(trendsview.Periods, "|")
			return m, nil
		}
		m.activeTab = tabTrends
		return m, m.trendsView.SetPeriod(parts[1])

	case "refresh":
		return m, m.refreshAll()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the history tab is filtering or waiting for
// a delete confirmation, in which case global keys yield to it.
func (m Model) subViewCapturing() bool {
	if m.activeTab != tabHistory {
		return false
	}
	return m.historyView.Filtering() || m.historyView.Confirming()
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.trendsView, _ = m.trendsView.Update(sz)
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(m.dashView.Reload(), m.historyView.Reload(), m.trendsView.Reload())
}

// isAsyncResult reports whether msg answers a command issued earlier; those
// are handled even while the palette is open.
func isAsyncResult(msg tea.Msg) bool {
	switch msg.(type) {
	case dashboardview.LoadedMsg, historyview.EntriesLoadedMsg, trendsview.TimelineLoadedMsg,
		historyview.DeletedMsg, entrySavedMsg, goalsSavedMsg:
		return true
	}
	return false
}

func validPeriod(p string) bool {
	for _, candidate := range trendsview.Periods {
		if p == candidate {
			return true
		}
	}
	return false
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) logEntryCmd(cmd logCommand) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.tracker.LogEntry(context.Background(), cmd.date, cmd.fields)
		return entrySavedMsg{entry: entry, err: err}
	}
}

func (m Model) updateGoalsCmd(fields trackerinadapter.GoalFields) tea.Cmd {
	return func() tea.Msg {
		goals, err := m.tracker.UpdateGoals(context.Background(), fields)
		return goalsSavedMsg{goals: goals, err: err}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

type dashboardPortBridge struct {
	tracker  trackerPort
	feedback feedbackPort
}

func (b dashboardPortBridge) LoadData(ctx context.Context) (trackerdto.LoadDataOutput, error) {
	return b.tracker.LoadData(ctx)
}

func (b dashboardPortBridge) Feedback(ctx context.Context, date string) (feedbackdto.FeedbackOutput, error) {
	return b.feedback.Feedback(ctx, date)
}
