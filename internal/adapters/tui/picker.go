package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"auditlens/internal/adapters/tui/views"
)

// Selection is a pick that already happened
type Selection []string

// PickFiles returns the selection as is
func (s Selection) PickFiles(ctx context.Context) ([]string, error) {
	return s, nil
}

// Picker implements ports.FilePicker with a full screen file browser
type Picker struct {
	dir  string
	opts []tea.ProgramOption
}

// NewPicker creates a picker starting in dir
func NewPicker(dir string, opts ...tea.ProgramOption) *Picker {
	return &Picker{dir: dir, opts: opts}
}

// PickFiles runs the picker until the user imports or cancels
func (p *Picker) PickFiles(ctx context.Context) ([]string, error) {
	m := &pickerProgram{view: views.NewPickerModel(p.dir)}

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, p.opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("file picker: %w", err)
	}
	return m.picked, nil
}

// pickerProgram wraps the picker view as a standalone program
type pickerProgram struct {
	view   *views.PickerModel
	picked []string
}

func (m *pickerProgram) Init() tea.Cmd {
	return m.view.Init()
}

func (m *pickerProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(views.PickedFilesMsg); ok {
		m.picked = msg.Paths
		return m, tea.Quit
	}
	_, cmd := m.view.Update(msg)
	return m, cmd
}

func (m *pickerProgram) View() string {
	return m.view.View()
}
