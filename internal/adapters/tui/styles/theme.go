package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree rows
	GroupRow = lipgloss.NewStyle().
			Bold(true)

	FileReconciled = lipgloss.NewStyle().
			Foreground(Secondary)

	FilePending = lipgloss.NewStyle().
			Foreground(Warning)

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Selected files in the picker
	Picked = lipgloss.NewStyle().
		Foreground(Secondary)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// StatusStyle returns the style for a file status as reported by
// application.FileStatus
func StatusStyle(status string) lipgloss.Style {
	if status == "reconciled" {
		return FileReconciled
	}
	return FilePending
}
