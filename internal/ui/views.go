package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ViewHelp:
		return m.viewHelp()
	case ViewEventEditor:
		return m.viewEventEditor()
	default:
		return m.renderGridView()
	}
}

func (m *Model) viewHelp() string {
	var lines []string

	lines = append(lines, m.styles.Header.Render("Verdandi - Scheduling Grid"))
	lines = append(lines, "")

	help := [][2]string{
		{"click-drag on empty cells", "create an event across the dragged range"},
		{"drag an event", "move it to another resource or time"},
		{"h/l, arrows", "move selection between columns"},
		{"j/k, arrows", "move selection between resources"},
		{"mouse wheel", "scroll rows (shift for columns)"},
		{"n", "new event on the selected cell"},
		{"z", "zoom: day, month, quarter columns"},
		{"o", "jump to today"},
		{"r", "reload schedule files"},
		{"esc", "cancel the active gesture"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %-28s %s", h[0], m.styles.Help.Render(h[1])))
	}

	lines = append(lines, "")
	note := "Events never overlap within a resource: conflicting creates and " +
		"drops are rejected with a message and the grid is left untouched."
	lines = append(lines, m.styles.Help.Render(wordwrap.String(note, m.width-4)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewEventEditor() string {
	res := m.pendingResource
	if r, ok := m.coord.Index().Resource(m.selectedRow); ok && r.ID == m.pendingResource {
		res = r.Title
	}

	var lines []string
	lines = append(lines, m.styles.Header.Render("New event"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Resource: %s", res))
	lines = append(lines, fmt.Sprintf("From:     %s", m.pendingStart.Format(m.config.DateFormat)))
	lines = append(lines, fmt.Sprintf("Until:    %s (exclusive)", m.pendingEnd.Format(m.config.DateFormat)))
	lines = append(lines, "")

	input := m.inputBuffer[:m.cursorPos] + "█" + m.inputBuffer[m.cursorPos:]
	lines = append(lines, "Title: "+input)
	lines = append(lines, "")
	lines = append(lines, m.styles.Help.Render("enter: save   esc: cancel"))

	box := lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	pad := (m.height - strings.Count(box, "\n") - 1) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", pad) + box
}
