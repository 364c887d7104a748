package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"heic2jpg/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("238")).
			PaddingRight(2)

	detailsStyle = lipgloss.NewStyle().PaddingLeft(2)

	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("170"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingTop(1)
)

const aboutText = `HEIC to JPG Converter
Version 1.0

This application allows you to convert HEIC files to JPG format.
You can select multiple files, preview them, and convert them all at once.`

func (m Model) View() string {
	title := titleStyle.Render("HEIC to JPG Converter") + "\n\n"

	var body string
	switch m.State {
	case StateAdding, StateOutputDir:
		body = m.input.View() + footerStyle.Render("\nEnter: confirm • Esc: cancel")
	case StateConverting:
		body = m.viewConverting()
	case StateResults:
		body = m.viewResults()
	case StateAbout:
		body = aboutText + footerStyle.Render("\nEsc: close")
	default:
		body = m.viewBrowsing()
	}
	return lipgloss.NewStyle().Margin(1, 2).Render(title + body)
}

func (m Model) statusLine() string {
	if m.Err != nil {
		return failStyle.Render(m.Err.Error())
	}
	if m.Status != "" {
		return successStyle.Render(m.Status)
	}
	return ""
}

func (m Model) viewBrowsing() string {
	var list strings.Builder
	if m.selection.Len() == 0 {
		list.WriteString(dimStyle.Render("No files selected.\nPress 'a' to add a file or folder."))
	}
	for i, p := range m.selection.Paths() {
		cursor := " "
		style := itemStyle
		if i == m.Cursor {
			cursor = ">"
			style = selectedItemStyle
		}
		mark := "[ ]"
		if m.marked[p] {
			mark = "[x]"
		}
		list.WriteString(style.Render(fmt.Sprintf("%s %s %s", cursor, mark, base(p))) + "\n")
	}
	listView := listStyle.Render(list.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, listView, detailsStyle.Render(m.viewPreview()))

	summary := fmt.Sprintf("Selected: %d | Marked: %d", m.selection.Len(), len(m.marked))
	help := "\nKeys: ↑/↓: Navigate • a: Add • space: Mark • d: Remove • c: Convert • o: Open output • ?: About • q: Quit"
	footer := footerStyle.Render(summary + help)

	return lipgloss.JoinVertical(lipgloss.Left, mainView, m.statusLine(), footer)
}

func (m Model) viewPreview() string {
	if m.selection.Len() == 0 || m.Cursor >= m.selection.Len() {
		return ""
	}
	path := m.selection.At(m.Cursor)
	if path != m.previewPath {
		return dimStyle.Render("Loading preview...")
	}
	if m.previewErr != nil {
		return failStyle.Render(fmt.Sprintf("Error loading image preview: %v", m.previewErr))
	}
	var b strings.Builder
	b.WriteString(m.previewArt)
	b.WriteString("\n")
	b.WriteString(path + "\n")
	for _, line := range m.previewMeta {
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewConverting() string {
	done, total := m.done, max(m.total, 1)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Converting into %s\n\n", m.outputDir))
	b.WriteString(m.progress.ViewAs(float64(done) / float64(total)))
	b.WriteString(fmt.Sprintf("  %d/%d\n", done, total))
	if m.last.Source != "" {
		if m.last.OK() {
			b.WriteString(successStyle.Render("Converted: " + m.last.Output))
		} else {
			b.WriteString(failStyle.Render(m.last.Message()))
		}
	}
	return b.String()
}

func (m Model) viewResults() string {
	if m.summary == nil {
		return ""
	}
	s := *m.summary
	lines := report.Lines(s)

	visible := len(lines)
	if m.height > 12 {
		visible = m.height - 10
	}
	start := min(m.scroll, max(len(lines)-1, 0))
	end := min(start+visible, len(lines))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Conversion Results: %d converted, %d failed\n\n", len(s.Converted()), len(s.Failed())))
	for _, line := range lines[start:end] {
		if strings.HasPrefix(line, "Error converting") {
			line = failStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(m.statusLine())
	b.WriteString(footerStyle.Render("\n↑/↓: Scroll • o: Open Output Folder • Enter/Esc: Back • q: Quit"))
	return b.String()
}
