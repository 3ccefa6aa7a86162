// Package ui is the terminal palette: a bubbletea program that owns one session.Session
// and forwards typing, navigation keys and clicks to it.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lvim-tech/qp/pkg/commands"
	"github.com/lvim-tech/qp/pkg/session"
)

const (
	// firstRow is the screen line of the first suggestion; line 0 is the input.
	// Mouse rows are screen rows, so the program must run in the alternate screen.
	firstRow        = 1
	defaultMaxItems = 10
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("5")).
			PaddingLeft(2)
	scriptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// deferredMsg runs the session's deferred work once the key event that queued it is done.
type deferredMsg struct{}

// ReloadMsg swaps in a registry loaded after the command file changed.
type ReloadMsg struct {
	Registry *commands.Registry
}

// Model is the bubbletea model of the palette.
type Model struct {
	session  *session.Session
	input    textinput.Model
	shortcut string
	maxItems int
}

// New creates the palette model for s. shortcut is only shown in the help line.
func New(s *session.Session, shortcut string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type command..."
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		session:  s,
		input:    ti,
		shortcut: shortcut,
		maxItems: defaultMaxItems,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.session.OnKey(session.KeyEscape)
			return m, tea.Quit
		}
		if m.session.OnKey(keyOf(msg)) == session.Stop {
			return m.afterEvent()
		}

		prev := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != prev {
			m.session.OnTextChanged(m.input.Value())
		}
		return m, cmd

	case deferredMsg:
		m.session.RunDeferred()
		return m.afterEvent()

	case tea.MouseMsg:
		if msg.Type != tea.MouseLeft {
			return m, nil
		}
		start, end := m.visibleRange()
		i := start + msg.Y - firstRow
		if msg.Y >= firstRow && i < end {
			_ = m.session.OnSuggestionClicked(m.session.Suggestions()[i].ID)
		}
		return m.afterEvent()

	case ReloadMsg:
		m.session.SetRegistry(msg.Registry)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// afterEvent schedules deferred work behind the current event, or quits once dismissed.
func (m Model) afterEvent() (tea.Model, tea.Cmd) {
	if m.session.HasDeferred() {
		return m, func() tea.Msg { return deferredMsg{} }
	}
	if m.session.Dismissed() {
		return m, tea.Quit
	}
	return m, nil
}

func keyOf(msg tea.KeyMsg) session.Key {
	switch msg.Type {
	case tea.KeyEnter:
		return session.KeyEnter
	case tea.KeyEsc:
		return session.KeyEscape
	case tea.KeyUp:
		return session.KeyUp
	case tea.KeyDown:
		return session.KeyDown
	default:
		return session.KeyOther
	}
}

// visibleRange is the window of suggestions on screen, scrolled to keep the selection visible.
func (m Model) visibleRange() (int, int) {
	n := len(m.session.Suggestions())
	start := 0
	if sel := m.session.Selected(); sel >= m.maxItems {
		start = sel - m.maxItems + 1
	}
	return start, min(n, start+m.maxItems)
}

func (m Model) View() string {
	if m.session.Dismissed() {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	suggestions := m.session.Suggestions()
	if len(suggestions) == 0 {
		b.WriteString(mutedStyle.Render("  No matching commands"))
		b.WriteString("\n")
	}

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderItem(suggestions[i], i == m.session.Selected()))
		b.WriteString("\n")
	}
	if rest := len(suggestions) - end; rest > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d more", rest)))
		b.WriteString("\n")
	}

	help := "↑/↓ navigate · enter run · esc close"
	if m.shortcut != "" {
		help += " · " + m.shortcut
	}
	b.WriteString(mutedStyle.Render(help))
	return b.String()
}

func (m Model) renderItem(cmd commands.Command, selected bool) string {
	detail := strings.Join(cmd.Argv(), " ")
	if selected {
		return selectedStyle.Render(cmd.Name + "  " + detail)
	}
	return itemStyle.Render(cmd.Name) + "  " + scriptStyle.Render(detail)
}
