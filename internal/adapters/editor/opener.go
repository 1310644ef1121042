// Package editor opens files, such as the catalog, in the user's editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"scentquiz/internal/ports"
)

var _ ports.EditorOpener = (*Opener)(nil)

// Opener implements ports.EditorOpener
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor and waits for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor.
// The TUI hands it to tea.ExecProcess.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.findEditor()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor command line, split into words ("code --wait")
func (o *Opener) findEditor() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(o.getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}
