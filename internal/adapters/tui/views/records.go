package views

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"auditlens/internal/adapters/tui/styles"
	"auditlens/internal/domain"
)

// RecordsKeyMap defines key bindings for the records view
type RecordsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Copy     key.Binding
	Back     key.Binding
}

var RecordsKeys = RecordsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "pgdown", "right", "l"),
		key.WithHelp("n", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "pgup", "left", "h"),
		key.WithHelp("p", "prev page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy record"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

const defaultRecordPage = 20

// RecordsModel pages through the parsed records of one file
type RecordsModel struct {
	ViewState
	groupID string
	file    domain.LogGroupFile
	lines   []string
	pager   *Paginator
}

// NewRecordsModel creates a new records view model
func NewRecordsModel() *RecordsModel {
	return &RecordsModel{
		pager: NewPaginator(defaultRecordPage),
	}
}

// SetFile loads the records of f for display
func (m *RecordsModel) SetFile(groupID string, f domain.LogGroupFile) {
	m.groupID = groupID
	m.file = f
	m.ClearMessage()

	m.lines = make([]string, len(f.Data))
	for i, rec := range f.Data {
		m.lines[i] = recordLine(rec)
	}

	m.pager.Reset()
	m.pager.SetTotal(len(m.lines))
}

func recordLine(rec domain.Record) string {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(rec))
	}
	return string(b)
}

// Init initializes the records view
func (m *RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records view
func (m *RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, RecordsKeys.Back):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		case key.Matches(msg, RecordsKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, RecordsKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, RecordsKeys.NextPage):
			m.pager.NextPage()
		case key.Matches(msg, RecordsKeys.PrevPage):
			m.pager.PrevPage()
		case key.Matches(msg, RecordsKeys.Copy):
			if len(m.lines) == 0 {
				return m, nil
			}
			if err := clipboard.WriteAll(m.lines[m.pager.Cursor()]); err != nil {
				m.SetMessage("Copy failed: "+err.Error(), true)
			} else {
				m.SetMessage(fmt.Sprintf("Copied record %d", m.pager.Cursor()+1), false)
			}
		}
	}

	return m, nil
}

// SetSize updates the view dimensions and fits the page to the height
func (m *RecordsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	if height > 10 {
		m.pager.SetPageSize(height - 10)
	}
}

// View renders the records view
func (m *RecordsModel) View() string {
	v := NewViewBuilder().
		Title(domain.BaseName(m.file.Name)).
		Subtitle(fmt.Sprintf("group %s · %d records · page %d/%d",
			shortID(m.groupID), len(m.lines), m.pager.CurrentPage(), m.pager.TotalPages()))

	if len(m.lines) == 0 {
		v.Muted("No records")
	}

	width := m.Width - 8
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		text := Truncate(fmt.Sprintf("%5d  %s", i+1, m.lines[i]), width)
		if i == m.pager.Cursor() {
			v.Line(styles.RowSelected.Render(text))
		} else {
			v.Line(text)
		}
	}

	return v.Message(m.Message, m.MessageErr).
		Help(RecordsKeys.Down, RecordsKeys.NextPage, RecordsKeys.PrevPage, RecordsKeys.Copy, RecordsKeys.Back).
		String()
}
