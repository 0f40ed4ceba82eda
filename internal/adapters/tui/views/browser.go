package views

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"auditlens/internal/adapters/tui/styles"
	"auditlens/internal/application"
	"auditlens/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Import    key.Binding
	Reconcile key.Binding
	Copy      key.Binding
	Edit      key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/records"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Reconcile: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reconcile"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "open file"),
	),
	Reset: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "reset"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type rowKind int

const (
	rowGroup rowKind = iota
	rowFile
)

// row is one visible line of the tree
type row struct {
	kind  rowKind
	group int
	file  int
}

// BrowserModel shows log groups as a tree of groups and their files
type BrowserModel struct {
	ViewState
	state    domain.State
	expanded map[string]bool
	rows     []row
	cursor   int
	offset   int
	loaded   bool
}

// NewBrowserModel creates a new browser model
func NewBrowserModel() *BrowserModel {
	return &BrowserModel{
		expanded: make(map[string]bool),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// SetState replaces the displayed state. Expanded groups stay expanded
// and the cursor stays on the same group when it still exists.
func (m *BrowserModel) SetState(st domain.State) {
	selected := m.SelectedGroupID()
	m.state = st
	m.loaded = true
	m.refreshRows()

	if selected == "" {
		return
	}
	for i, r := range m.rows {
		if r.kind == rowGroup && m.state.LogGroups[r.group].LogGroupID == selected {
			if cur, ok := m.selectedRow(); !ok || cur.group != r.group {
				m.cursor = i
			}
			break
		}
	}
	m.clampCursor()
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case StatusMsg:
		m.SetMessage(msg.Text, msg.Err)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if r, ok := m.selectedRow(); ok {
				g := m.state.LogGroups[r.group]
				if r.kind == rowFile {
					m.moveToGroup(r.group)
				} else if m.expanded[g.LogGroupID] {
					delete(m.expanded, g.LogGroupID)
					m.refreshRows()
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right):
			if r, ok := m.selectedRow(); ok && r.kind == rowGroup {
				m.expanded[m.state.LogGroups[r.group].LogGroupID] = true
				m.refreshRows()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Enter):
			r, ok := m.selectedRow()
			if !ok {
				return m, nil
			}
			g := m.state.LogGroups[r.group]
			if r.kind == rowFile {
				f := g.Files[r.file]
				if !f.Reconciled() {
					m.SetMessage(fmt.Sprintf("%s has no records yet, press r to reconcile", f.Name), true)
					return m, nil
				}
				return m, func() tea.Msg {
					return SwitchToRecordsMsg{GroupID: g.LogGroupID, File: f}
				}
			}
			m.expanded[g.LogGroupID] = !m.expanded[g.LogGroupID]
			m.refreshRows()
			return m, nil

		case key.Matches(msg, BrowserKeys.Import):
			return m, func() tea.Msg {
				return SwitchToPickerMsg{}
			}

		case key.Matches(msg, BrowserKeys.Reconcile):
			id := m.SelectedGroupID()
			if id == "" {
				return m, nil
			}
			m.SetMessage("Reconciling "+shortID(id)+"…", false)
			return m, func() tea.Msg {
				return ReconcileRequestMsg{GroupID: id}
			}

		case key.Matches(msg, BrowserKeys.Copy):
			id := m.SelectedGroupID()
			if id == "" {
				return m, nil
			}
			if err := clipboard.WriteAll(id); err != nil {
				m.SetMessage("Copy failed: "+err.Error(), true)
				return m, nil
			}
			m.SetMessage("Copied "+id, false)
			return m, nil

		case key.Matches(msg, BrowserKeys.Edit):
			r, ok := m.selectedRow()
			if !ok || r.kind != rowFile {
				return m, nil
			}
			f := m.state.LogGroups[r.group].Files[r.file]
			if f.Path == "" {
				m.SetMessage(f.Name+" is not matched to a file on disk", true)
				return m, nil
			}
			return m, func() tea.Msg {
				return OpenEditorMsg{Path: f.Path}
			}

		case key.Matches(msg, BrowserKeys.Reset):
			if len(m.state.LogGroups) == 0 {
				return m, nil
			}
			return m, func() tea.Msg {
				return SwitchToResetMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// SelectedGroupID returns the id of the group under the cursor, or of the
// group owning the file under the cursor
func (m *BrowserModel) SelectedGroupID() string {
	r, ok := m.selectedRow()
	if !ok {
		return ""
	}
	return m.state.LogGroups[r.group].LogGroupID
}

func (m *BrowserModel) selectedRow() (row, bool) {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor], true
	}
	return row{}, false
}

func (m *BrowserModel) moveToGroup(group int) {
	for i, r := range m.rows {
		if r.kind == rowGroup && r.group == group {
			m.cursor = i
			return
		}
	}
}

func (m *BrowserModel) refreshRows() {
	m.rows = m.rows[:0]
	for gi, g := range m.state.LogGroups {
		m.rows = append(m.rows, row{kind: rowGroup, group: gi})
		if !m.expanded[g.LogGroupID] {
			continue
		}
		for fi := range g.Files {
			m.rows = append(m.rows, row{kind: rowFile, group: gi, file: fi})
		}
	}
	m.clampCursor()
}

func (m *BrowserModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visibleRows keeps the cursor inside the window that fits the terminal
func (m *BrowserModel) visibleRows() (start, end int) {
	capacity := m.Height - 9
	if m.Height == 0 || capacity >= len(m.rows) {
		return 0, len(m.rows)
	}
	if capacity < 1 {
		capacity = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+capacity {
		m.offset = m.cursor - capacity + 1
	}
	return m.offset, min(m.offset+capacity, len(m.rows))
}

// View renders the browser
func (m *BrowserModel) View() string {
	if !m.loaded {
		return "Loading..."
	}

	v := NewViewBuilder().Title("auditlens")

	groups := len(m.state.LogGroups)
	if groups == 0 {
		v.Subtitle("No log groups").
			Muted("Press i to import audit manifests")
	} else {
		v.Subtitle(fmt.Sprintf("%d log group(s)", groups))
		start, end := m.visibleRows()
		for i := start; i < end; i++ {
			v.Line(m.renderRow(m.rows[i], i == m.cursor))
		}
	}

	v.Message(m.Message, m.MessageErr)

	return v.Help(
		BrowserKeys.Enter,
		BrowserKeys.Import,
		BrowserKeys.Reconcile,
		BrowserKeys.Copy,
		BrowserKeys.Edit,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	).String()
}

func (m *BrowserModel) renderRow(r row, selected bool) string {
	g := m.state.LogGroups[r.group]

	if r.kind == rowGroup {
		prefix := styles.TreeCollapsed
		if m.expanded[g.LogGroupID] {
			prefix = styles.TreeExpanded
		}
		text := fmt.Sprintf("%s %s  %d/%d reconciled · %d records",
			shortID(g.LogGroupID),
			filepath.Base(g.ManifestPath),
			g.ReconciledCount(), len(g.Files), g.RecordCount(),
		)
		style := styles.GroupRow
		if selected {
			style = styles.RowSelected
		}
		return styles.TreeBranch.Render(prefix) + style.Render(text)
	}

	f := g.Files[r.file]
	status := application.FileStatus(f)
	text := domain.BaseName(f.Name)
	if f.Reconciled() {
		text = fmt.Sprintf("%s  %d records", text, len(f.Data))
	}
	style := styles.StatusStyle(status)
	if selected {
		style = styles.RowSelected
	}
	return "  " + styles.TreeBranch.Render(styles.TreeLeaf) + style.Render(text) +
		" " + styles.MutedText.Render("["+status+"]")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// helpBindings lists the keys shown on the help screen
func helpBindings() []key.Binding {
	return []key.Binding{
		BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Left, BrowserKeys.Right,
		BrowserKeys.Enter, BrowserKeys.Import, BrowserKeys.Reconcile,
		BrowserKeys.Copy, BrowserKeys.Edit, BrowserKeys.Reset,
		BrowserKeys.Help, BrowserKeys.Quit,
	}
}
