package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"auditlens/internal/adapters/editor"
	"auditlens/internal/adapters/tui/views"
	"auditlens/internal/application/commands"
	"auditlens/internal/domain"
	"auditlens/internal/logging"
	"auditlens/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewPicker
	ViewRecords
	ViewConfirmReset
	ViewHelp
)

// StateSource is a log group store that also publishes its changes
type StateSource interface {
	ports.LogGroupStore
	Subscribe() <-chan domain.State
}

// Deps holds what the application needs to run commands
type Deps struct {
	Store    StateSource
	Lister   ports.DirectoryLister
	Decoder  ports.FormatDecoder
	Editor   *editor.Opener
	Workers  int
	StartDir string
}

// App is the main TUI application model
type App struct {
	deps    Deps
	ctx     context.Context
	changes <-chan domain.State

	state   ViewState
	browser *views.BrowserModel
	picker  *views.PickerModel
	records *views.RecordsModel
	confirm *views.ConfirmationModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. Cancelling ctx aborts running
// imports and reconciles.
func NewApp(ctx context.Context, deps Deps) *App {
	if deps.Workers <= 0 {
		deps.Workers = commands.DefaultWorkers
	}

	a := &App{
		deps:    deps,
		ctx:     ctx,
		changes: deps.Store.Subscribe(),
		state:   ViewBrowser,
		browser: views.NewBrowserModel(),
		picker:  views.NewPickerModel(deps.StartDir),
		records: views.NewRecordsModel(),
		confirm: views.NewConfirmationModel(),
		help:    views.NewHelpModel(),
	}
	a.browser.SetState(deps.Store.Snapshot())
	return a
}

// stateChangedMsg carries a state published by the store
type stateChangedMsg struct {
	state domain.State
}

type editorFinishedMsg struct{ err error }

func (a *App) waitForChange() tea.Msg {
	st, ok := <-a.changes
	if !ok {
		return nil
	}
	return stateChangedMsg{st}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.browser.Init(), a.waitForChange)
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.picker.SetSize(msg.Width, msg.Height)
		a.records.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case stateChangedMsg:
		a.browser.SetState(msg.state)
		return a, a.waitForChange

	// View switching messages
	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToPickerMsg:
		a.state = ViewPicker
		return a, a.picker.Init()

	case views.SwitchToRecordsMsg:
		a.records.SetFile(msg.GroupID, msg.File)
		a.state = ViewRecords
		return a, nil

	case views.SwitchToResetMsg:
		snap := a.deps.Store.Snapshot()
		files := 0
		for _, g := range snap.LogGroups {
			files += len(g.Files)
		}
		a.confirm.SetCounts(len(snap.LogGroups), files)
		a.state = ViewConfirmReset
		return a, nil

	// Actions
	case views.PickedFilesMsg:
		a.state = ViewBrowser
		if len(msg.Paths) == 0 {
			return a, status("Import cancelled", false)
		}
		return a, a.importPicked(msg.Paths)

	case views.ReconcileRequestMsg:
		return a, a.reconcile(msg.GroupID)

	case views.ResetConfirmedMsg:
		a.state = ViewBrowser
		return a, a.reset()

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			return a, status(msg.err.Error(), true)
		}
		return a, nil

	case views.StatusMsg:
		_, cmd := a.browser.Update(msg)
		return a, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewPicker:
		_, cmd = a.picker.Update(msg)
	case ViewRecords:
		_, cmd = a.records.Update(msg)
	case ViewConfirmReset:
		_, cmd = a.confirm.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return views.StatusMsg{Text: text, Err: isErr}
	}
}

func (a *App) importPicked(paths []string) tea.Cmd {
	return func() tea.Msg {
		ctx := logging.WithOperation(a.ctx, "import")
		cmd := commands.NewImportPickedCommand(Selection(paths), a.deps.Store, a.deps.Decoder)
		cmd.Workers = a.deps.Workers

		result, err := cmd.Execute(ctx)
		if err != nil {
			logging.FromContext(ctx).Error("import failed", "err", err)
			return views.StatusMsg{Text: err.Error(), Err: true}
		}
		return views.StatusMsg{Text: result.Message}
	}
}

func (a *App) reconcile(groupID string) tea.Cmd {
	return func() tea.Msg {
		ctx := logging.WithOperation(a.ctx, "reconcile")
		cmd := commands.NewReconcileCommand(a.deps.Store, a.deps.Lister, a.deps.Decoder, groupID)
		cmd.Workers = a.deps.Workers

		result, err := cmd.Execute(ctx)
		if err != nil {
			logging.FromContext(ctx).Error("reconcile failed", "group", groupID, "err", err)
			return views.StatusMsg{Text: err.Error(), Err: true}
		}
		return views.StatusMsg{Text: result.Message}
	}
}

func (a *App) reset() tea.Cmd {
	return func() tea.Msg {
		ctx := logging.WithOperation(a.ctx, "reset")
		result, err := commands.NewResetCommand(a.deps.Store).Execute(ctx)
		if err != nil {
			return views.StatusMsg{Text: err.Error(), Err: true}
		}
		return views.StatusMsg{Text: result.Message}
	}
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.deps.Editor == nil {
		return status("No viewer configured", true)
	}

	cmd, err := a.deps.Editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			err = fmt.Errorf("viewer exited: %w", err)
		}
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPicker:
		return a.picker.View()
	case ViewRecords:
		return a.records.View()
	case ViewConfirmReset:
		return a.confirm.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
