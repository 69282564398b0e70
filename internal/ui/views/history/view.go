package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "fittrack/internal/modules/tracker/dto"
	"fittrack/internal/platform/datekey"
	"fittrack/internal/platform/numfmt"
	"fittrack/internal/ui/theme"
)

type Port interface {
	ListEntries(ctx context.Context, ascending bool) ([]trackerdto.EntryOutput, error)
	DeleteEntry(ctx context.Context, id string) error
}

type EntriesLoadedMsg struct {
	Entries []trackerdto.EntryOutput
	Err     error
}

// DeletedMsg reports a finished delete so other views can refresh.
type DeletedMsg struct {
	Date string
	Err  error
}

type entryItem struct {
	entry trackerdto.EntryOutput
}

func (i entryItem) Title() string       { return datekey.Long(i.entry.Date) }
func (i entryItem) Description() string { return Summary(i.entry) }
func (i entryItem) FilterValue() string { return i.entry.Date }

// Summary renders the recorded measurements on one line.
func Summary(e trackerdto.EntryOutput) string {
	var parts []string
	if e.Weight != nil {
		parts = append(parts, numfmt.Pounds(*e.Weight)+" lbs")
	}
	if e.Steps != nil {
		parts = append(parts, numfmt.Count(*e.Steps)+" steps")
	}
	if e.Water != nil {
		parts = append(parts, cups(*e.Water))
	}
	if len(parts) == 0 {
		return "no measurements"
	}
	return strings.Join(parts, " · ")
}

func cups(n int) string {
	return fmt.Sprintf("%d %s", n, numfmt.Plural(n, "cup", "cups"))
}

type Model struct {
	port    Port
	list    list.Model
	detail  viewport.Model
	loaded  bool
	confirm string
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload lists entries newest first.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.ListEntries(context.Background(), false)
		return EntriesLoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case EntriesLoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.list.Title = "History: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "History"
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "d":
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				m.confirm = item.entry.ID
				m.detail.SetContent(m.renderDetail())
			}
			return m, nil
		case "y":
			pending := m.confirm
			m.confirm = ""
			if item, ok := m.list.SelectedItem().(entryItem); ok && pending != "" && item.entry.ID == pending {
				return m, m.deleteCmd(pending)
			}
		default:
			// Any other key, navigation included, abandons a pending delete.
			m.confirm = ""
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	m.detail.SetContent(m.renderDetail())

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("Loading history…")
	}
	listW := m.width * 45 / 100
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 10)).
		Height(max(m.height-2, 1)).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Confirming reports whether a delete is waiting for y/n.
func (m Model) Confirming() bool {
	return m.confirm != ""
}

func (m *Model) resize() {
	listW := m.width * 45 / 100
	m.list.SetSize(listW, m.height)
	m.detail.Width = m.width - listW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return theme.Muted.Render("No entries yet. Press : and log today's numbers.")
	}
	e := item.entry
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(datekey.Long(e.Date)) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:     ") + e.ID + "\n")
	sb.WriteString(theme.Muted.Render("weight: ") + orDash(e.Weight != nil, func() string { return numfmt.Pounds(*e.Weight) + " lbs" }) + "\n")
	sb.WriteString(theme.Muted.Render("steps:  ") + orDash(e.Steps != nil, func() string { return numfmt.Count(*e.Steps) }) + "\n")
	sb.WriteString(theme.Muted.Render("water:  ") + orDash(e.Water != nil, func() string { return cups(*e.Water) }) + "\n\n")
	if m.confirm == e.ID {
		sb.WriteString(theme.Error.Render("Delete this entry? y/n"))
	} else {
		sb.WriteString(theme.Muted.Render("d: delete  /: filter"))
	}
	return sb.String()
}

func orDash(ok bool, render func() string) string {
	if !ok {
		return "—"
	}
	return render()
}

func (m Model) deleteCmd(id string) tea.Cmd {
	var date string
	for _, it := range m.list.Items() {
		if e, ok := it.(entryItem); ok && e.entry.ID == id {
			date = e.entry.Date
		}
	}
	return func() tea.Msg {
		err := m.port.DeleteEntry(context.Background(), id)
		return DeletedMsg{Date: date, Err: err}
	}
}
