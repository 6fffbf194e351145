package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/games/memory"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// maxAttempts is the number of attempts the browser loads.
const maxAttempts = 200

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top}, {k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "newest"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing a player's attempts.
type HistoryModel struct {
	player   string
	attempts []storage.AttemptEntry
	stats    *storage.PlayerStats
	level    int
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel loads player's history from store.
func NewHistoryModel(store *storage.Store, player string, width, height int) HistoryModel {
	m := HistoryModel{
		player: player,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}

	m.load(store)
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *HistoryModel) load(store *storage.Store) {
	if store == nil {
		return
	}

	attempts, err := store.RecentAttempts(m.player, maxAttempts)
	if err != nil {
		m.err = err
		return
	}
	m.attempts = attempts

	stats, err := store.PlayerStats(m.player)
	if err != nil {
		m.err = err
		return
	}
	m.stats = stats

	if level, ok, err := store.LoadLevel(storage.ProgressKey(m.player)); err == nil && ok {
		m.level = level
	}
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Outcome", Width: 10},
		{Title: "Pairs", Width: 7},
		{Title: "Left", Width: 6},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, help, and margins
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

// updateTableRows fills the table from the loaded attempts.
func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(attemptRows(m.attempts))
	m.table.GotoTop()
}

// attemptRows formats attempts for display, newest first.
func attemptRows(attempts []storage.AttemptEntry) []table.Row {
	rows := make([]table.Row, len(attempts))
	for i, a := range attempts {
		rows[i] = table.Row{
			fmt.Sprintf("%d", a.Level),
			outcomeLabel(a.Outcome),
			fmt.Sprintf("%d/%d", a.MatchedPairs, a.TotalPairs),
			fmt.Sprintf("%ds", a.SecondsLeft),
			a.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func outcomeLabel(o memory.Outcome) string {
	switch o {
	case memory.OutcomeCleared:
		return "cleared"
	case memory.OutcomeTimedOut:
		return "time up"
	case memory.OutcomeRestarted:
		return "restarted"
	default:
		return string(o)
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("MEMORY MATCH - %s", m.player), m.width)))
	b.WriteString("\n\n")

	summaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(centerText(summaryStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) summary() string {
	if m.stats == nil {
		return fmt.Sprintf("Current level %d", max(m.level, 1))
	}
	return fmt.Sprintf("Current level %d   Best cleared %d   %d attempts (%d cleared, %d timed out, %d restarted)",
		max(m.level, 1), m.stats.BestLevel, m.stats.Attempts, m.stats.Cleared, m.stats.TimedOut, m.stats.Restarted)
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not load history:\n" + m.err.Error())
	}
	if len(m.attempts) == 0 {
		return emptyStyle.Render("No attempts recorded yet.\nPlay a level to start your history!")
	}
	return m.table.View()
}

// RunHistory runs the history browser for player.
func RunHistory(store *storage.Store, player string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, player, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
