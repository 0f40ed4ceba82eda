package views

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"auditlens/internal/adapters/tui/styles"
	"auditlens/internal/application"
)

// PickerKeyMap defines the picker keys layered over the file browser
type PickerKeyMap struct {
	Toggle key.Binding
	Done   key.Binding
	Cancel key.Binding
}

var PickerKeys = PickerKeyMap{
	Toggle: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/select"),
	),
	Done: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "import selected"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// PickerModel lets the user choose several manifests before importing
type PickerModel struct {
	ViewState
	fp       filepicker.Model
	selected []string
}

// NewPickerModel creates a picker rooted at dir, or at the working
// directory when dir is empty
func NewPickerModel(dir string) *PickerModel {
	fp := filepicker.New()
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	// esc cancels the whole pick instead of leaving the directory
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "back"),
	)

	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	if dir != "" {
		fp.CurrentDirectory = dir
	}

	return &PickerModel{fp: fp}
}

// Init reads the starting directory and clears any earlier selection
func (m *PickerModel) Init() tea.Cmd {
	m.selected = nil
	m.ClearMessage()
	return m.fp.Init()
}

// Selected returns the chosen paths in selection order
func (m *PickerModel) Selected() []string {
	return slices.Clone(m.selected)
}

// SetSize updates the view dimensions and resizes the file list
func (m *PickerModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.fp, _ = m.fp.Update(tea.WindowSizeMsg{Width: width, Height: max(height-6, 3)})
}

// Update handles messages for the picker
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, PickerKeys.Cancel):
			return m, func() tea.Msg {
				return PickedFilesMsg{}
			}
		case key.Matches(msg, PickerKeys.Done):
			if len(m.selected) == 0 {
				m.SetMessage("Nothing selected", true)
				return m, nil
			}
			paths := m.Selected()
			return m, func() tea.Msg {
				return PickedFilesMsg{Paths: paths}
			}
		}
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	// Path is sticky inside the file picker; only accept selections from
	// the directory on screen
	if ok, path := m.fp.DidSelectFile(msg); ok && filepath.Dir(path) == filepath.Clean(m.fp.CurrentDirectory) {
		m.toggle(path)
	}

	return m, cmd
}

func (m *PickerModel) toggle(path string) {
	if i := slices.Index(m.selected, path); i >= 0 {
		m.selected = slices.Delete(m.selected, i, i+1)
		m.SetMessage("Removed "+filepath.Base(path), false)
		return
	}
	if !application.IsManifest(path) {
		m.SetMessage(filepath.Base(path)+" is not an audit manifest", true)
		return
	}
	m.selected = append(m.selected, path)
	m.SetMessage("Added "+filepath.Base(path), false)
}

// View renders the picker
func (m *PickerModel) View() string {
	v := NewViewBuilder().
		Title("Import manifests").
		Subtitle(m.fp.CurrentDirectory).
		Raw(m.fp.View()).
		BlankLine()

	if len(m.selected) > 0 {
		v.Line(styles.InputLabel.Render(fmt.Sprintf("Selected (%d)", len(m.selected))))
		for _, p := range m.selected {
			v.Line("  " + styles.Picked.Render(p))
		}
	}

	return v.Message(m.Message, m.MessageErr).
		Help(PickerKeys.Toggle, PickerKeys.Done, PickerKeys.Cancel).
		String()
}
