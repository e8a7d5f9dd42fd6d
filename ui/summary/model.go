package summary

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cohortid/internal/messages"
	"cohortid/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	matchedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Padding(0, 1)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)
)

// Model shows the batch's extension distribution as bars plus the current
// match / collision / missing tallies.
type Model struct {
	extensions []models.ExtensionCount

	selectedCount  int
	matchedCount   int
	collisionCount int

	focused bool
	width   int
	height  int
}

// NewModel creates a new summary model for the given batch.
func NewModel(batch *models.Batch) *Model {
	return &Model{
		extensions: batch.ExtensionsByCount(),
	}
}

// Update handles messages for the summary panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(messages.IDsResolvedMsg); ok {
		m.selectedCount = msg.SelectedCount
		m.matchedCount = msg.MatchedCount
		m.collisionCount = msg.CollisionCount
	}
	return m, nil
}

// View renders the summary panel
func (m *Model) View() string {
	header := headerStyle.Render("📊 Batch")

	var lines []string
	lines = append(lines, header)
	lines = append(lines, m.renderExtensionBars()...)
	lines = append(lines, "")
	lines = append(lines, m.renderTallies())

	return strings.Join(lines, "\n")
}

// renderExtensionBars draws one scaled bar per extension, largest first.
func (m *Model) renderExtensionBars() []string {
	if len(m.extensions) == 0 {
		return []string{labelStyle.Render("No files scanned")}
	}

	maxCount := m.extensions[0].Count
	maxBars := m.height - 5
	if maxBars < 1 {
		maxBars = 1
	}

	barWidth := m.width - 20
	if barWidth < 5 {
		barWidth = 5
	}

	var lines []string
	for i, ec := range m.extensions {
		if i >= maxBars {
			lines = append(lines, labelStyle.Render(
				fmt.Sprintf("... and %d more extensions", len(m.extensions)-maxBars)))
			break
		}

		barLen := ec.Count * barWidth / maxCount
		if barLen < 1 {
			barLen = 1
		}
		lines = append(lines, fmt.Sprintf("%s%s %d",
			labelStyle.Render(fmt.Sprintf("%-8s", ec.Extension)),
			barStyle.Render(strings.Repeat("█", barLen)),
			ec.Count,
		))
	}
	return lines
}

func (m *Model) renderTallies() string {
	missing := m.selectedCount - m.matchedCount

	parts := []string{
		matchedStyle.Render(fmt.Sprintf("✓ %d matched", m.matchedCount)),
	}
	if m.collisionCount > 0 {
		parts = append(parts, labelStyle.Render(fmt.Sprintf("⧉ %d suffixed", m.collisionCount)))
	}
	if missing > 0 {
		parts = append(parts, missingStyle.Render(fmt.Sprintf("✗ %d missing ID", missing)))
	}

	return strings.Join(parts, " ")
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
