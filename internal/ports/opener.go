package ports

import "os/exec"

// URLOpener opens a URL (e.g., a perfume image) with the desktop's default handler
type URLOpener interface {
	Open(url string) error
}

// EditorOpener defines the interface for opening files in an external editor
type EditorOpener interface {
	// OpenFile opens the file in $EDITOR (or $VISUAL, or a common editor)
	OpenFile(path string) error

	// Command returns the editor process without starting it,
	// for use with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
