package orchestrator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"imagine-cli/internal/interfaces"
)

// OutputHandler implements the OutputHandler interface
type OutputHandler struct {
	stdout    io.Writer
	clipboard func(string) error
}

// NewOutputHandler creates a new output handler backed by the system clipboard
func NewOutputHandler() interfaces.OutputHandler {
	return &OutputHandler{
		stdout:    os.Stdout,
		clipboard: clipboard.WriteAll,
	}
}

// WriteToClipboard copies content to the system clipboard. The clipboard
// error is returned as is since it becomes the form's status text.
func (h *OutputHandler) WriteToClipboard(content string) error {
	return h.clipboard(content)
}

// WriteToStdout writes content to standard output
func (h *OutputHandler) WriteToStdout(content string) error {
	_, err := fmt.Fprintln(h.stdout, content)
	return err
}

// WriteToFile writes content to the specified file path
func (h *OutputHandler) WriteToFile(content string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content+"\n"), 0644)
}
