package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pingpong/internal/storage"
)

// Replay browser layout constants
const (
	minWidthForDetails = 80  // Minimum width to show the details panel
	detailsWidth       = 24  // Width of the details panel
	maxReplays         = 200 // Max replays to load
)

// ReplayStore is the storage the replay browser reads and deletes from.
type ReplayStore interface {
	RecentReplays(limit int) ([]storage.ReplayEntry, error)
	DeleteReplay(id int64) error
}

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Watch, k.Delete, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model for the replay browser.
type BrowserModel struct {
	store       ReplayStore
	replays     []storage.ReplayEntry
	table       table.Model
	help        help.Model
	keys        BrowserKeyMap
	width       int
	height      int
	err         error
	quitting    bool
	selected    int64 // Replay chosen for watching, 0 if none
	showDetails bool
}

// NewBrowserModel creates a replay browser and loads the replay list.
func NewBrowserModel(store ReplayStore, width, height int) BrowserModel {
	m := BrowserModel{
		store:       store,
		keys:        DefaultBrowserKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showDetails: width >= minWidthForDetails,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table with columns sized to the window.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Ending", Width: 8},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4 // Margins
	if m.showDetails {
		tableWidth -= detailsWidth + 3
	}
	if extra := tableWidth - 40; extra > 0 {
		columns[3].Width += min(extra, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays reloads the replay list from the store.
func (m *BrowserModel) loadReplays() {
	if m.store == nil {
		m.replays = nil
		m.updateTableRows()
		return
	}

	replays, err := m.store.RecentReplays(maxReplays)
	m.err = err
	if err != nil {
		replays = nil
	}
	m.replays = replays
	m.updateTableRows()
}

// updateTableRows refreshes the table, keeping the cursor in range.
func (m *BrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Score),
			r.EndReason,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// current returns the highlighted replay.
func (m BrowserModel) current() (storage.ReplayEntry, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.replays) {
		return storage.ReplayEntry{}, false
	}
	return m.replays[c], true
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.current(); ok {
				m.selected = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteReplay(r.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.loadReplays()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetails = m.width >= minWidthForDetails
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(min(cursor, max(0, len(m.replays)-1)))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("RECORDED ROUNDS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableBox := boxStyle.Render(m.renderTableContent())
	if m.showDetails {
		details := boxStyle.Width(detailsWidth).Render(m.renderDetails())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableBox, "  ", details))
	} else {
		b.WriteString(tableBox)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("Error: " + m.err.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m BrowserModel) renderTableContent() string {
	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No rounds recorded yet.\nPlay a round to record one!")
	}
	return m.table.View()
}

// renderDetails renders the summary of the highlighted replay.
func (m BrowserModel) renderDetails() string {
	r, ok := m.current()
	if !ok {
		return "Replay\n" + strings.Repeat("-", detailsWidth-4)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Replay #%d\n", r.ID)
	b.WriteString(strings.Repeat("-", detailsWidth-4))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Score:  %d\n", r.Score)
	fmt.Fprintf(&b, "Ending: %s\n", r.EndReason)
	fmt.Fprintf(&b, "Ticks:  %d\n", r.Ticks)
	fmt.Fprintf(&b, "Keys:   %d\n", r.Events)
	fmt.Fprintf(&b, "Played: %s", r.CreatedAt.Format("2006-01-02 15:04"))
	return b.String()
}

// Selected returns the replay chosen for watching, or 0.
func (m BrowserModel) Selected() int64 {
	return m.selected
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunReplayBrowser runs the replay browser and returns the ID of the replay
// the user chose to watch, or 0 if they quit.
func RunReplayBrowser(store ReplayStore, width, height int) (int64, error) {
	model := NewBrowserModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := finalModel.(BrowserModel)
	if !ok {
		return 0, nil
	}
	return m.Selected(), nil
}
