package views

import "auditlens/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToBrowserMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToPickerMsg struct{}

type SwitchToResetMsg struct{}

type SwitchToRecordsMsg struct {
	GroupID string
	File    domain.LogGroupFile
}

// Messages the app acts on
type ReconcileRequestMsg struct {
	GroupID string
}

type ResetConfirmedMsg struct{}

type OpenEditorMsg struct {
	Path string
}

// PickedFilesMsg carries the picker selection. An empty selection means
// the user cancelled.
type PickedFilesMsg struct {
	Paths []string
}

// StatusMsg reports the outcome of an action run by the app
type StatusMsg struct {
	Text string
	Err  bool
}
