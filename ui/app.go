package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cohortid/internal/highlight"
	"cohortid/internal/messages"
	"cohortid/internal/models"
	"cohortid/internal/suggest"
	"cohortid/ui/editor"
	"cohortid/ui/filelist"
	"cohortid/ui/suggestions"
	"cohortid/ui/summary"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	EditorPanel FocusedPanel = iota
	FileListPanel
	SuggestionsPanel
	SummaryPanel
)

// AppModel represents the main application model
type AppModel struct {
	// Core state
	importSet *models.ImportSet

	// Panels
	editor      *editor.Model
	fileList    *filelist.Model
	suggestions *suggestions.Model
	summary     *summary.Model

	// UI state
	focused      FocusedPanel
	panels       []FocusedPanel
	currentPanel int
	width        int
	height       int

	status   string
	quitting bool
}

// NewAppModel creates a new application model
func NewAppModel(set *models.ImportSet) *AppModel {
	m := &AppModel{
		importSet:   set,
		editor:      editor.NewModel(),
		fileList:    filelist.NewModel(),
		suggestions: suggestions.NewModel(),
		summary:     summary.NewModel(set.Batch),
		focused:     EditorPanel,
		panels:      []FocusedPanel{EditorPanel, FileListPanel, SuggestionsPanel, SummaryPanel},
		width:       80,
		height:      24,
		status:      "Ready",
	}
	m.editor.Focus()

	// Seed the panels with the initial (empty-pattern) resolution.
	m.broadcastResolution()

	return m
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return m.computeSuggestionsCmd()
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case messages.PatternChangedMsg:
		m.importSet.Apply(msg.Text)
		m.status = "Pattern applied"
		m.broadcastResolution()
		return m, nil

	case messages.ApplySuggestionMsg:
		cmd := m.editor.SetValue(msg.Pattern)
		m.status = fmt.Sprintf("Applied suggestion: %s", msg.Pattern)
		return m, cmd

	case messages.SuggestionsReadyMsg:
		var cmd tea.Cmd
		m.suggestions, cmd = m.suggestions.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			// The editor needs literal q; quit only from other panels.
			if m.focused != EditorPanel {
				m.quitting = true
				return m, tea.Quit
			}

		case "tab":
			m.nextPanel()
			return m, nil

		case "shift+tab":
			m.prevPanel()
			return m, nil
		}

		return m, m.routeToFocused(msg)
	}

	return m, m.routeToAll(msg)
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return "Thanks for using cohortid!\n"
	}

	header := m.renderHeader()

	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth
	contentHeight := m.contentHeight()

	editorHeight := 7
	suggestionsHeight := (contentHeight - editorHeight) / 2
	summaryHeight := contentHeight - editorHeight - suggestionsHeight

	left := m.panelStyle(FileListPanel, leftWidth, contentHeight).Render(m.fileList.View())
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.panelStyle(EditorPanel, rightWidth, editorHeight).Render(m.editor.View()),
		m.panelStyle(SuggestionsPanel, rightWidth, suggestionsHeight).Render(m.suggestions.View()),
		m.panelStyle(SummaryPanel, rightWidth, summaryHeight).Render(m.summary.View()),
	)

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

// broadcastResolution pushes the current resolution state into every panel.
// Child commands are intentionally dropped: these are data pushes, not
// user-driven updates.
func (m *AppModel) broadcastResolution() {
	resolved := messages.IDsResolvedMsg{
		SelectedCount:  m.importSet.SelectedCount(),
		MatchedCount:   m.importSet.MatchedCount(),
		CollisionCount: m.importSet.CollisionCount(),
		PatternValid:   m.importSet.PatternValid(),
		PatternError:   m.importSet.PatternError(),
	}
	m.editor, _ = m.editor.Update(resolved)
	m.summary, _ = m.summary.Update(resolved)
	m.fileList, _ = m.fileList.Update(m.buildRows())
}

// buildRows prepares the highlighted preview rows for the file list.
func (m *AppModel) buildRows() filelist.RowsMsg {
	paths := m.importSet.SelectedPaths()

	rows := make([]filelist.Row, 0, len(paths))
	for _, path := range paths {
		id, matched := m.importSet.ResolvedID(path)
		rows = append(rows, filelist.Row{
			Segments: highlight.Split(path, m.importSet.Pattern(), id),
			ID:       id,
			Matched:  matched,
		})
	}

	return filelist.RowsMsg{
		Rows:       rows,
		TotalSize:  m.importSet.SelectedTotalSize(),
		TotalFiles: len(rows),
	}
}

// computeSuggestionsCmd runs the suggestion engine off the update loop.
func (m *AppModel) computeSuggestionsCmd() tea.Cmd {
	paths := m.importSet.SelectedPaths()
	return func() tea.Msg {
		return messages.SuggestionsReadyMsg{
			Suggestions: suggest.NewEngine().Suggest(paths),
		}
	}
}

// routeToFocused sends a message to the focused panel only.
func (m *AppModel) routeToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focused {
	case EditorPanel:
		m.editor, cmd = m.editor.Update(msg)
	case FileListPanel:
		m.fileList, cmd = m.fileList.Update(msg)
	case SuggestionsPanel:
		m.suggestions, cmd = m.suggestions.Update(msg)
	case SummaryPanel:
		m.summary, cmd = m.summary.Update(msg)
	}
	return cmd
}

// routeToAll fans a message out to every panel.
func (m *AppModel) routeToAll(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	m.fileList, cmd = m.fileList.Update(msg)
	cmds = append(cmds, cmd)
	m.suggestions, cmd = m.suggestions.Update(msg)
	cmds = append(cmds, cmd)
	m.summary, cmd = m.summary.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// layout recomputes panel sizes after a terminal resize.
func (m *AppModel) layout() {
	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth
	contentHeight := m.contentHeight()

	editorHeight := 7
	suggestionsHeight := (contentHeight - editorHeight) / 2
	summaryHeight := contentHeight - editorHeight - suggestionsHeight

	m.fileList.SetSize(leftWidth-4, contentHeight-2)
	m.editor.SetSize(rightWidth-4, editorHeight-2)
	m.suggestions.SetSize(rightWidth-4, suggestionsHeight-2)
	m.summary.SetSize(rightWidth-4, summaryHeight-2)
}

func (m *AppModel) contentHeight() int {
	headerHeight := 3
	statusHeight := 1
	h := m.height - headerHeight - statusHeight
	if h < 6 {
		h = 6
	}
	return h
}

// renderHeader creates the application header
func (m *AppModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("cohortid - Participant ID Review")

	root := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("Batch: %s", m.importSet.Batch.Root))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("Tab: Navigate | Ctrl+C: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, root, help)
}

func (m *AppModel) renderStatus() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf("Files: %d/%d selected | Status: %s",
			m.importSet.SelectedCount(), len(m.importSet.Batch.Files), m.status))
}

// Helper methods

func (m *AppModel) panelStyle(panel FocusedPanel, width, height int) lipgloss.Style {
	borderColor := lipgloss.Color("240")
	if panel == m.focused {
		borderColor = lipgloss.Color("205")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width - 2).
		Height(height - 2).
		Padding(0, 1)
}

func (m *AppModel) nextPanel() {
	m.setFocus((m.currentPanel + 1) % len(m.panels))
}

func (m *AppModel) prevPanel() {
	m.setFocus((m.currentPanel - 1 + len(m.panels)) % len(m.panels))
}

func (m *AppModel) setFocus(index int) {
	m.blurFocused()
	m.currentPanel = index
	m.focused = m.panels[index]
	m.focusFocused()
}

func (m *AppModel) blurFocused() {
	switch m.focused {
	case EditorPanel:
		m.editor.Blur()
	case FileListPanel:
		m.fileList.Blur()
	case SuggestionsPanel:
		m.suggestions.Blur()
	case SummaryPanel:
		m.summary.Blur()
	}
}

func (m *AppModel) focusFocused() {
	switch m.focused {
	case EditorPanel:
		m.editor.Focus()
	case FileListPanel:
		m.fileList.Focus()
	case SuggestionsPanel:
		m.suggestions.Focus()
	case SummaryPanel:
		m.summary.Focus()
	}
}
