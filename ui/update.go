package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"heic2jpg/converter"
	"heic2jpg/files_manager"
	"heic2jpg/report"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case fileConvertedMsg:
		return m.handleConverted(msg)
	case previewMsg:
		if m.selection.Len() > 0 && m.Cursor < m.selection.Len() && m.selection.At(m.Cursor) == msg.Path {
			m.previewPath = msg.Path
			m.previewArt = msg.Art
			m.previewMeta = msg.Meta
			m.previewErr = msg.Err
		}
		return m, nil
	case openedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
		} else {
			m.Status = "Opened " + msg.Dir
		}
		return m, nil
	}

	switch m.State {
	case StateAdding:
		return m.updateAdding(msg)
	case StateOutputDir:
		return m.updateOutputDir(msg)
	case StateConverting:
		// Selection is frozen while a batch runs.
		return m, nil
	case StateResults:
		return m.updateResults(msg)
	case StateAbout:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "esc", "enter", "q", "?":
				m.State = StateBrowsing
			}
		}
		return m, nil
	}
	return m.updateBrowsing(msg)
}

func (m Model) updateBrowsing(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, m.previewCurrent()
	case "down", "j":
		if m.Cursor < m.selection.Len()-1 {
			m.Cursor++
		}
		return m, m.previewCurrent()
	case " ", "space":
		if m.selection.Len() > 0 {
			p := m.selection.At(m.Cursor)
			if m.marked[p] {
				delete(m.marked, p)
			} else {
				m.marked[p] = true
			}
		}
	case "a":
		m.Err = nil
		m.State = StateAdding
		cmd := m.prompt("Add file or folder: ", "/path/to/photo.heic")
		return m, cmd
	case "d":
		return m.removeSelected()
	case "c":
		m.Err = nil
		if m.selection.Len() == 0 {
			m.Err = &converter.PreconditionError{Err: converter.ErrNothingToConvert}
			return m, nil
		}
		m.State = StateOutputDir
		cmd := m.prompt("Output folder: ", "/path/to/output")
		m.input.SetValue(m.outputDir)
		return m, cmd
	case "o":
		return m, m.openOutput()
	case "?":
		m.State = StateAbout
	case "esc":
		m.Err = nil
		m.Status = ""
	}
	return m, nil
}

func (m *Model) prompt(label, placeholder string) tea.Cmd {
	m.input.Reset()
	m.input.Prompt = label
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.input.Blur()
			m.State = StateBrowsing
			return m, nil
		case "enter":
			m.input.Blur()
			m.State = StateBrowsing
			return m.addPath(strings.TrimSpace(m.input.Value()))
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) addPath(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		return m, nil
	}
	paths, err := files_manager.ExpandInputs([]string{path}, false)
	if err != nil {
		m.Err = err
		return m, nil
	}
	added := m.selection.Add(paths...)
	switch {
	case len(paths) == 0:
		m.Status = "No HEIC files in " + path
	case added == 0:
		m.Status = "Already selected"
	default:
		m.Status = fmt.Sprintf("Added %d file(s)", added)
	}
	if m.log != nil && added > 0 {
		m.log.Debug("added %d file(s) from %s", added, path)
	}
	return m, m.previewCurrent()
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	if m.selection.Len() == 0 {
		return m, nil
	}
	var indices []int
	for i, p := range m.selection.Paths() {
		if m.marked[p] {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		indices = []int{m.Cursor}
	}
	sort.Ints(indices)

	m.selection.RemoveAt(indices...)
	m.marked = map[string]bool{}
	m.Status = fmt.Sprintf("Removed %d file(s)", len(indices))
	if m.Cursor >= m.selection.Len() {
		m.Cursor = max(m.selection.Len()-1, 0)
	}
	return m, m.previewCurrent()
}

func (m Model) updateOutputDir(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.input.Blur()
			m.State = StateBrowsing
			return m, nil
		case "enter":
			m.input.Blur()
			m.State = StateBrowsing
			return m.startBatch(strings.TrimSpace(m.input.Value()))
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startBatch(dir string) (tea.Model, tea.Cmd) {
	if m.conv == nil {
		m.Err = fmt.Errorf("no converter configured")
		return m, nil
	}
	b, err := m.conv.NewBatch(m.selection.Paths(), dir)
	if err != nil {
		m.Err = err
		return m, nil
	}
	m.batch = b
	m.done, m.total = 0, b.Total()
	m.outputDir = dir
	m.summary = nil
	m.last = converter.ConversionResult{}
	m.Status = ""
	m.State = StateConverting
	return m, nextFileCmd(b)
}

func (m Model) handleConverted(msg fileConvertedMsg) (tea.Model, tea.Cmd) {
	if m.batch == nil {
		return m, nil
	}
	m.last = msg.Result
	m.done++
	if m.done < m.total {
		return m, nextFileCmd(m.batch)
	}

	summary := m.batch.Summary()
	m.batch = nil
	m.summary = &summary
	m.scroll = 0
	m.State = StateResults
	if m.log != nil {
		m.log.Info("Done: %d converted, %d failed", len(summary.Converted()), len(summary.Failed()))
	}
	if m.onBatchDone != nil {
		m.onBatchDone(summary)
	}
	return m, nil
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		if m.summary != nil && m.scroll < len(report.Lines(*m.summary))-1 {
			m.scroll++
		}
	case "o":
		return m, m.openOutput()
	case "esc", "enter":
		m.State = StateBrowsing
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) openOutput() tea.Cmd {
	if m.outputDir == "" {
		return nil
	}
	return openDirCmd(m.openDir, m.outputDir)
}

func (m Model) previewCurrent() tea.Cmd {
	if m.conv == nil || m.selection.Len() == 0 || m.Cursor >= m.selection.Len() {
		return nil
	}
	path := m.selection.At(m.Cursor)
	if path == m.previewPath {
		return nil
	}
	return previewCmd(m.conv.Decoder, path, m.previewSize)
}

func base(path string) string {
	return filepath.Base(path)
}
