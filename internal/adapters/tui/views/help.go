package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"auditlens/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("auditlens help"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Audit manifest browser"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Browser"))
	b.WriteString("\n")
	for _, kb := range helpBindings() {
		h := kb.Help()
		b.WriteString(helpLine(h.Key, h.Desc))
	}
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Records"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k", "Move between records"))
	b.WriteString(helpLine("n / p", "Next / previous page"))
	b.WriteString(helpLine("y", "Copy record as JSON"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Files"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  *-audit.json  manifest, imported with i"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  *.gz          gzip log, decompressed on reconcile"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  anything else plain log, one JSON record per line"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 14)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
