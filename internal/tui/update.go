package tui

import (
	"fmt"
	"strings"

	"ostimeline/internal/applog"
	"ostimeline/internal/dataset"
	"ostimeline/internal/model"
	"ostimeline/internal/timeline"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgDatasetReady indicates that the dataset has loaded.
type MsgDatasetReady struct {
	Dataset *dataset.Dataset
}

// MsgError indicates an error occurred.
type MsgError error

// MsgExported reports the outcome of an export.
type MsgExported struct {
	Path  string
	Count int
	Err   error
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.resizeDetails()
		return m, nil

	case MsgDatasetReady:
		m.Loading = false
		m.Dataset = msg.Dataset
		minYear, maxYear := msg.Dataset.Bounds()
		m.Bounds = timeline.Bounds{Min: minYear, Max: maxYear}
		m.State = timeline.DefaultState(m.Bounds)
		m.recompute()
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case MsgExported:
		if msg.Err != nil {
			m.Status = fmt.Sprintf("Export failed: %v", msg.Err)
			applog.Log.Errorf("export: %v", msg.Err)
		} else {
			m.Status = fmt.Sprintf("Exported %d items to %s", msg.Count, msg.Path)
			applog.Log.Infof("exported %s", msg.Path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.Loading || m.Err != nil {
			if msg.String() == "ctrl+c" || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				// Keep the query, leave input mode
				m.InputMode = false
				m.InputBuffer.Blur()
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				m.setQuery("")
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			m.setQuery(m.InputBuffer.Value())
			return m, cmd
		}

		if m.ShowHelp {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "up", "k":
				if m.HelpScrollY > 0 {
					m.HelpScrollY--
				}
			case "down", "j":
				if m.HelpScrollY < m.maxHelpScroll() {
					m.HelpScrollY++
				}
			case "esc", "?":
				m.ShowHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.Focus != FocusList {
				m.Focus = FocusList
				return m, nil
			}
			if m.State.Query != "" {
				m.InputBuffer.SetValue("")
				m.setQuery("")
			}
		case "?":
			m.ShowHelp = true
			m.HelpScrollY = 0
		case "/":
			m.InputMode = true
			m.Focus = FocusList
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue(m.State.Query)
			m.InputBuffer.CursorEnd()
			return m, textinput.Blink
		case "tab":
			m.Focus = (m.Focus + 1) % 3
			m.ChipIdx = 0
		case "shift+tab":
			m.Focus = (m.Focus + 2) % 3
			m.ChipIdx = 0
		case "t":
			m.Focus = FocusTypes
			m.ChipIdx = 0
		case "f":
			m.Focus = FocusFamilies
			m.ChipIdx = 0
		case "[":
			m.applyState(m.State.WithFrom(m.State.Range.From-1, m.Bounds))
		case "]":
			m.applyState(m.State.WithFrom(m.State.Range.From+1, m.Bounds))
		case "{":
			m.applyState(m.State.WithTo(m.State.Range.To-1, m.Bounds))
		case "}":
			m.applyState(m.State.WithTo(m.State.Range.To+1, m.Bounds))
		case "<":
			m.applyState(m.State.WithFrom(m.State.Range.From-10, m.Bounds))
		case ">":
			m.applyState(m.State.WithTo(m.State.Range.To+10, m.Bounds))
		case "r":
			m.InputBuffer.SetValue("")
			m.applyState(timeline.DefaultState(m.Bounds))
			m.Status = "Filters reset"
		case "e":
			return m, ExportCmd(m.ExportDir, m.Filtered, m.State.Range)
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
		default:
			if m.Focus == FocusList {
				m.handleListKey(msg.String())
			} else {
				m.handleChipKey(msg.String())
			}
		}
	}

	return m, cmd
}

func (m *AppModel) handleListKey(key string) {
	switch key {
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case "home", "g":
		m.SelectedIdx = 0
		m.moveSelection(0)
	case "end", "G":
		m.SelectedIdx = len(m.rows) - 1
		m.moveSelection(0)
	case "enter", " ":
		if e, ok := m.Selected(); ok {
			if m.Expanded == e.ID {
				m.Expanded = ""
			} else {
				m.Expanded = e.ID
			}
			m.refreshDetails()
		}
	}
}

func (m *AppModel) handleChipKey(key string) {
	n := len(model.Types)
	if m.Focus == FocusFamilies {
		n = len(model.Families)
	}

	switch key {
	case "left", "h":
		m.ChipIdx = (m.ChipIdx + n - 1) % n
	case "right", "l":
		m.ChipIdx = (m.ChipIdx + 1) % n
	case "enter", " ":
		if m.Focus == FocusTypes {
			m.applyState(m.State.ToggleType(model.Types[m.ChipIdx]))
		} else {
			m.applyState(m.State.ToggleFamily(model.Families[m.ChipIdx]))
		}
	}
}

// moveSelection steps over decade headers. delta 0 snaps the cursor to the
// nearest entry row.
func (m *AppModel) moveSelection(delta int) {
	if len(m.rows) == 0 {
		m.SelectedIdx = 0
		return
	}
	step := delta
	if step == 0 {
		step = 1
	}
	i := m.SelectedIdx + delta
	if i < 0 {
		i, step = 0, 1
	}
	if i >= len(m.rows) {
		i, step = len(m.rows)-1, -1
	}
	for i >= 0 && i < len(m.rows) && m.rows[i].Header {
		i += step
	}
	if i < 0 || i >= len(m.rows) {
		// Ran off the end, stay put
		return
	}
	m.SelectedIdx = i
	m.refreshDetails()
}

func (m *AppModel) setQuery(q string) {
	m.applyState(m.State.WithQuery(q))
}

func (m *AppModel) applyState(st timeline.State) {
	m.State = st
	m.recompute()
}

// recompute runs the filter pipeline and keeps the cursor on the same entry
// when it survives.
func (m *AppModel) recompute() {
	if m.Dataset == nil {
		return
	}
	prev, hadPrev := m.Selected()

	m.Filtered = timeline.Filter(m.Dataset.Entries(), m.State)
	m.Buckets = timeline.GroupByDecade(m.Filtered)

	rows := make([]row, 0, len(m.Filtered)+len(m.Buckets))
	for _, b := range m.Buckets {
		rows = append(rows, row{Header: true, Decade: b.Decade})
		for _, e := range b.Entries {
			rows = append(rows, row{Decade: b.Decade, Entry: e})
		}
	}
	m.rows = rows

	m.SelectedIdx = 0
	if hadPrev {
		for i, r := range m.rows {
			if !r.Header && r.Entry.ID == prev.ID {
				m.SelectedIdx = i
				break
			}
		}
	}
	m.moveSelection(0)
	m.refreshDetails()
}

// LoadDatasetCmd loads the dataset in the background.
func LoadDatasetCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ds, err := dataset.Load(path)
		if err != nil {
			return MsgError(err)
		}
		return MsgDatasetReady{Dataset: ds}
	}
}

// ExportCmd writes the filtered list next to the working directory.
func ExportCmd(dir string, list []model.Entry, r timeline.Range) tea.Cmd {
	return func() tea.Msg {
		path, err := timeline.WriteExport(dir, list, r)
		return MsgExported{Path: path, Count: len(list), Err: err}
	}
}

// maxHelpScroll is the last scroll offset that still fills the help dialog.
func (m AppModel) maxHelpScroll() int {
	lines := strings.Count(HelpText, "\n") + 1
	n := lines - m.helpContentHeight()
	if n < 0 {
		return 0
	}
	return n
}
