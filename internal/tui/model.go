package tui

import (
	"ostimeline/internal/dataset"
	"ostimeline/internal/model"
	"ostimeline/internal/timeline"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Focus identifies which control receives navigation keys.
type Focus int

const (
	FocusList Focus = iota
	FocusTypes
	FocusFamilies
)

// row is one line of the left panel: a decade header or an entry.
type row struct {
	Header bool
	Decade int
	Entry  model.Entry
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Dataset  *dataset.Dataset
	Bounds   timeline.Bounds
	DataFile string
	Loading  bool
	Err      error

	// Filter pipeline
	State    timeline.State
	Filtered []model.Entry // nil until the dataset arrives
	Buckets  []timeline.Bucket
	rows     []row

	// UI State
	SelectedIdx int    // Index into rows, always an entry row when any exist
	Expanded    string // ID of the entry whose details are expanded
	Focus       Focus
	ChipIdx     int // Cursor inside the focused chip bar
	WindowSize  tea.WindowSizeMsg
	Status      string
	ExportDir   string

	// Search State
	InputMode   bool
	InputBuffer textinput.Model

	// Help
	ShowHelp    bool
	HelpScrollY int

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state. dataFile may be empty for the
// embedded dataset.
func InitialModel(dataFile, exportDir string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "name, feature, version..."
	ti.CharLimit = 60
	ti.Width = 30

	if exportDir == "" {
		exportDir = "."
	}

	return AppModel{
		Loading:         true,
		DataFile:        dataFile,
		ExportDir:       exportDir,
		InputBuffer:     ti,
		DetailsViewport: viewport.New(40, 10),
	}
}

// Selected returns the entry under the cursor.
func (m AppModel) Selected() (model.Entry, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.rows) || m.rows[m.SelectedIdx].Header {
		return model.Entry{}, false
	}
	return m.rows[m.SelectedIdx].Entry, true
}
