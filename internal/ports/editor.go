package ports

import "os/exec"

// EditorOpener opens files in an external editor
type EditorOpener interface {
	// OpenFile opens path in the user's editor and waits for it to exit
	OpenFile(path string) error

	// Command returns the editor process for path without starting it
	Command(path string) (*exec.Cmd, error)
}
