package orchestrator

import (
	"imagine-cli/internal/interfaces"
	"imagine-cli/internal/template"
	"imagine-cli/pkg/models"
)

// Copier decides when the rendered command goes to the clipboard and
// records the outcome in the state's status text.
type Copier struct {
	output interfaces.OutputHandler
	status *template.Status
	last   string
	err    error
}

// NewCopier creates a copier whose baseline is the command of initial,
// so opening the form does not trigger a copy.
func NewCopier(output interfaces.OutputHandler, status *template.Status, initial *models.FormState) *Copier {
	return &Copier{
		output: output,
		status: status,
		last:   models.Command(initial),
	}
}

// Observe is called after every edit. It copies when copy-on-change is set,
// the command differs from the previously observed one and the prompt text
// is not blank. It reports whether a copy was attempted.
func (c *Copier) Observe(st *models.FormState) bool {
	cmd := models.Command(st)
	changed := cmd != c.last
	c.last = cmd

	if !changed || !st.CopyOnChange || !st.HasText() {
		return false
	}
	c.copy(st, cmd)
	return true
}

// CopyNow copies on explicit request. It is a no-op while the prompt text is blank.
func (c *Copier) CopyNow(st *models.FormState) bool {
	if !st.HasText() {
		return false
	}
	cmd := models.Command(st)
	c.last = cmd
	c.copy(st, cmd)
	return true
}

// Err returns the error of the most recent copy attempt
func (c *Copier) Err() error {
	return c.err
}

func (c *Copier) copy(st *models.FormState, cmd string) {
	c.err = c.output.WriteToClipboard(cmd)
	if c.err != nil {
		st.CopiedCommand = c.status.Failed(cmd, c.err)
		return
	}
	st.CopiedCommand = c.status.Copied(cmd)
}
