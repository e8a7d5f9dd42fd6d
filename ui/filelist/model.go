package filelist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cohortid/internal/highlight"
)

// Row is one file's preview: the split path plus the final assigned ID.
type Row struct {
	Segments highlight.Segments
	ID       string // Final (possibly suffixed) participant ID, "" if none
	Matched  bool
}

// RowsMsg replaces the preview rows after a re-resolution.
type RowsMsg struct {
	Rows       []Row
	TotalSize  int64
	TotalFiles int
}

// Model renders the per-file extraction preview in a scrollable viewport.
type Model struct {
	rows       []Row
	totalSize  int64
	totalFiles int

	focused  bool
	width    int
	height   int
	viewport viewport.Model

	// Styles
	titleStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	matchStyle   lipgloss.Style
	idStyle      lipgloss.Style
	missingStyle lipgloss.Style
	summaryStyle lipgloss.Style
}

// NewModel creates a new file preview model
func NewModel() *Model {
	vp := viewport.New(40, 6) // Initial size, updated in SetSize
	vp.SetContent("")

	return &Model{
		viewport: vp,
		width:    40,
		height:   10,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Margin(0, 0, 1, 0),

		dimStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		matchStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("205")).
			Foreground(lipgloss.Color("0")),

		idStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")),

		missingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),

		summaryStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case RowsMsg:
		m.rows = msg.Rows
		m.totalSize = msg.TotalSize
		m.totalFiles = msg.TotalFiles
		m.updateViewportContent()
		return m, nil

	case tea.KeyMsg:
		if m.focused {
			switch msg.String() {
			case "j", "down":
				m.viewport.LineDown(1)
			case "k", "up":
				m.viewport.LineUp(1)
			case "pgdown", " ":
				m.viewport.ViewDown()
			case "pgup":
				m.viewport.ViewUp()
			case "home", "g":
				m.viewport.GotoTop()
			case "end", "G":
				m.viewport.GotoBottom()
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the component
func (m *Model) View() string {
	title := "📁 Files"
	if m.focused {
		title += " *"
	}
	header := m.titleStyle.Render(title)

	var content string
	if len(m.rows) == 0 {
		content = m.dimStyle.Italic(true).Render("No files selected")
	} else {
		content = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderSummary())
}

// updateViewportContent rebuilds the styled preview lines
func (m *Model) updateViewportContent() {
	if len(m.rows) == 0 {
		m.viewport.SetContent("")
		return
	}

	var lines []string
	for _, row := range m.rows {
		lines = append(lines, m.renderRow(row))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// renderRow draws one file: dim prefix, highlighted span, dim suffix, and
// the assigned ID (or a missing-ID marker).
func (m *Model) renderRow(row Row) string {
	seg := row.Segments

	path := m.dimStyle.Render(seg.Prefix)
	if seg.Highlighted {
		path += m.matchStyle.Render(seg.Match)
	}
	path += m.dimStyle.Render(seg.Suffix)

	if row.Matched {
		return fmt.Sprintf("%s %s", path, m.idStyle.Render("→ "+row.ID))
	}
	return fmt.Sprintf("%s %s", path, m.missingStyle.Render("→ missing participant ID"))
}

// renderSummary renders the summary information
func (m *Model) renderSummary() string {
	if m.totalFiles == 0 {
		return ""
	}

	scrollInfo := ""
	if len(m.rows) > 0 && m.viewport.Height > 0 {
		scrollInfo = fmt.Sprintf(" • %d/%d", m.viewport.YOffset+1, len(m.rows))
	}

	return m.summaryStyle.Render(fmt.Sprintf("Total: %s • %d files%s",
		formatBytes(m.totalSize), m.totalFiles, scrollInfo))
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

	// Account for title, summary, and some padding
	viewportHeight := height - 4
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = width
	m.viewport.Height = viewportHeight

	if len(m.rows) > 0 {
		m.updateViewportContent()
	}
}

// formatBytes formats byte counts in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
