package suggestions

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cohortid/internal/messages"
	"cohortid/internal/suggest"
)

var (
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	descStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Padding(0, 3)
)

// Model lists pattern suggestions; enter applies the one under the cursor.
type Model struct {
	suggestions []suggest.Suggestion
	cursor      int

	focused bool
	width   int
	height  int
}

// NewModel creates a new suggestions model
func NewModel() *Model {
	return &Model{}
}

// Update handles messages for the suggestions panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SuggestionsReadyMsg:
		m.suggestions = msg.Suggestions
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			m.moveCursorUp()
		case "down", "j":
			m.moveCursorDown()
		case "enter":
			if m.cursor >= 0 && m.cursor < len(m.suggestions) {
				return m, m.applyCmd(m.suggestions[m.cursor].Pattern)
			}
		}
	}

	return m, nil
}

// View renders the suggestions panel
func (m *Model) View() string {
	title := "💡 Suggestions"
	if m.focused {
		title += " *"
	}
	header := headerStyle.Render(title)

	help := ""
	if m.focused {
		help = helpStyle.Render("↑/↓: Navigate • Enter: Apply")
	}

	var body string
	if len(m.suggestions) == 0 {
		body = helpStyle.Render("No suggestions for these files")
	} else {
		body = m.renderSuggestions()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m *Model) renderSuggestions() string {
	// Two lines per suggestion plus the chrome around the list
	maxVisible := (m.height - 3) / 2
	if maxVisible < 1 {
		maxVisible = 1
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(m.suggestions) {
		end = len(m.suggestions)
	}

	var lines []string
	if start > 0 {
		lines = append(lines, descStyle.Render("↑ ..."))
	}
	for i := start; i < end; i++ {
		s := m.suggestions[i]

		text := s.Pattern
		if len(text) > m.width-14 && m.width > 17 {
			text = text[:m.width-17] + "..."
		}
		line := fmt.Sprintf("%s (%d)", text, s.Count)

		if m.focused && i == m.cursor {
			lines = append(lines, selectedStyle.Render(line))
		} else {
			lines = append(lines, itemStyle.Render(line))
		}
		lines = append(lines, descStyle.Render(s.Description))
	}
	if end < len(m.suggestions) {
		lines = append(lines, descStyle.Render("↓ ..."))
	}

	return strings.Join(lines, "\n")
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) moveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	} else if len(m.suggestions) > 0 {
		m.cursor = len(m.suggestions) - 1
	}
}

func (m *Model) moveCursorDown() {
	if len(m.suggestions) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < len(m.suggestions)-1 {
		m.cursor++
	} else {
		m.cursor = 0
	}
}

// applyCmd asks the app to adopt the selected pattern
func (m *Model) applyCmd(pattern string) tea.Cmd {
	return func() tea.Msg {
		return messages.ApplySuggestionMsg{Pattern: pattern}
	}
}
