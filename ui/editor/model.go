package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cohortid/internal/messages"
)

// Styling constants
var (
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")
	successColor   = lipgloss.Color("46")
	errorColor     = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	validStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Padding(0, 1)

	invalidStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Padding(0, 1)
)

// Model is the pattern editor panel: a single live input whose value is
// re-applied to the whole batch on every keystroke, so users get feedback
// mid-typing. An invalid pattern is shown inline, never raised.
type Model struct {
	input     textinput.Model
	lastValue string

	// Resolution feedback from the last IDsResolvedMsg
	selectedCount  int
	matchedCount   int
	collisionCount int
	patternValid   bool
	patternError   string

	focused bool
	width   int
	height  int
}

// NewModel creates a new pattern editor model
func NewModel() *Model {
	input := textinput.New()
	input.Placeholder = "{parent}, sample_{id}.vcf, (?P<id>...) ..."
	input.CharLimit = 256

	return &Model{
		input:        input,
		patternValid: true,
	}
}

// Update handles messages for the pattern editor
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.IDsResolvedMsg:
		m.selectedCount = msg.SelectedCount
		m.matchedCount = msg.MatchedCount
		m.collisionCount = msg.CollisionCount
		m.patternValid = msg.PatternValid
		m.patternError = msg.PatternError
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != m.lastValue {
			m.lastValue = value
			return m, tea.Batch(cmd, m.emitPatternChangedCmd(value))
		}
		return m, cmd
	}

	return m, nil
}

// View renders the pattern editor panel
func (m *Model) View() string {
	title := "🧬 Pattern"
	if m.focused {
		title += " *"
	}
	header := headerStyle.Render(title)

	input := inputStyle.Width(m.width - 4).Render(m.input.View())

	status := m.renderStatus()

	help := ""
	if m.focused {
		help = helpStyle.Render("Type to edit • results update live")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, input, status, help)
}

func (m *Model) renderStatus() string {
	if strings.TrimSpace(m.input.Value()) == "" {
		return helpStyle.Render("Enter a pattern to extract participant IDs")
	}

	if !m.patternValid {
		msg := m.patternError
		if len(msg) > m.width-8 && m.width > 11 {
			msg = msg[:m.width-11] + "..."
		}
		return invalidStyle.Render(fmt.Sprintf("✗ %s", msg))
	}

	line := fmt.Sprintf("✓ %d/%d matched", m.matchedCount, m.selectedCount)
	if m.collisionCount > 0 {
		line += fmt.Sprintf(" • %d suffixed for uniqueness", m.collisionCount)
	}
	return validStyle.Render(line)
}

// SetValue replaces the pattern text, e.g. when a suggestion is applied.
func (m *Model) SetValue(value string) tea.Cmd {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.lastValue = value
	return m.emitPatternChangedCmd(value)
}

// Value returns the current pattern text.
func (m *Model) Value() string {
	return m.input.Value()
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
	m.input.Focus()
}

func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 8
}

// emitPatternChangedCmd notifies the parent that the pattern text changed
func (m *Model) emitPatternChangedCmd(value string) tea.Cmd {
	return func() tea.Msg {
		return messages.PatternChangedMsg{
			Text:            value,
			SourceComponent: "pattern_editor",
		}
	}
}
