package ports

import "os/exec"

// EditorOpener opens a matched log file in an external program
type EditorOpener interface {
	// OpenFile opens path and waits for the program to exit
	OpenFile(path string) error

	// Command returns the command that would open path, for callers that
	// run it themselves (bubbletea's ExecProcess)
	Command(path string) (*exec.Cmd, error)
}
