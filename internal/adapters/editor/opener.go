package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"auditlens/internal/domain"
	"auditlens/internal/ports"
)

var _ ports.EditorOpener = (*Opener)(nil)

var (
	plainFallbacks      = []string{"less", "nvim", "vim", "vi", "nano"}
	compressedFallbacks = []string{"zless", "less"}
)

// Opener implements ports.EditorOpener. Plain logs open in $VISUAL or
// $EDITOR; gzip logs go to a pager that can read them.
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

// OpenFile opens a log file and waits for the program to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a log file
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.findProgram(path)
	if len(argv) == 0 {
		return nil, fmt.Errorf("no program found to open %s: set $EDITOR", path)
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findProgram returns the program and its leading arguments
func (o *Opener) findProgram(path string) []string {
	fallbacks := plainFallbacks

	if domain.Classify(path) == domain.EntryCompressed {
		fallbacks = compressedFallbacks
	} else {
		for _, env := range []string{"VISUAL", "EDITOR"} {
			if argv := strings.Fields(o.getenv(env)); len(argv) > 0 {
				return argv
			}
		}
	}

	for _, name := range fallbacks {
		if p, err := o.lookPath(name); err == nil {
			return []string{p}
		}
	}
	return nil
}
