package orchestrator

import (
	"bytes"
	"errors"
	"testing"

	"imagine-cli/internal/template"
	"imagine-cli/pkg/models"
)

func newTestCopier(t *testing.T, out *recordingOutput, st *models.FormState) *Copier {
	t.Helper()
	status, err := template.NewStatus(template.NewProcessor(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	return NewCopier(out, status, st)
}

func TestCopier_NoCopyWithoutChange(t *testing.T) {
	out := newRecordingOutput()
	st := models.DefaultFormState()
	st.Text = "a cat"
	copier := newTestCopier(t, out, st)

	if copier.Observe(st) {
		t.Error("Observe() copied although nothing changed")
	}
	if len(out.clipboard) != 0 {
		t.Errorf("clipboard = %v", out.clipboard)
	}
}

func TestCopier_CopiesOncePerChange(t *testing.T) {
	out := newRecordingOutput()
	st := models.DefaultFormState()
	copier := newTestCopier(t, out, st)

	st.Text = "a cat"
	if !copier.Observe(st) {
		t.Fatal("Observe() did not copy after text change")
	}
	// Same command observed again
	if copier.Observe(st) {
		t.Error("Observe() copied twice for one change")
	}

	st.Video = true
	copier.Observe(st)

	expected := []string{
		"/imagine prompt: a cat, realistic",
		"/imagine prompt: a cat, realistic --video",
	}
	if len(out.clipboard) != len(expected) {
		t.Fatalf("clipboard = %v, expected %v", out.clipboard, expected)
	}
	for i := range expected {
		if out.clipboard[i] != expected[i] {
			t.Errorf("clipboard[%d] = %q, expected %q", i, out.clipboard[i], expected[i])
		}
	}
	if st.CopiedCommand != "copied command:\n"+expected[1] {
		t.Errorf("CopiedCommand = %q", st.CopiedCommand)
	}
}

func TestCopier_EditThatDoesNotChangeCommand(t *testing.T) {
	out := newRecordingOutput()
	st := models.DefaultFormState()
	st.Text = "a cat"
	copier := newTestCopier(t, out, st)

	// Seed value is not rendered while UseSeed is off
	st.Seed = 99
	st.Text = "a cat  "
	if copier.Observe(st) {
		t.Error("Observe() copied although the command is unchanged")
	}
}

func TestCopier_BlankPromptSuppressesCopy(t *testing.T) {
	out := newRecordingOutput()
	st := models.DefaultFormState()
	copier := newTestCopier(t, out, st)

	st.Video = true
	if copier.Observe(st) {
		t.Error("Observe() copied with a blank prompt")
	}
	if copier.CopyNow(st) {
		t.Error("CopyNow() copied with a blank prompt")
	}

	// The change was consumed while blank; typing text is a new change
	st.Text = "a cat"
	if !copier.Observe(st) {
		t.Error("Observe() did not copy after text was entered")
	}
}

func TestCopier_CopyOnChangeDisabled(t *testing.T) {
	out := newRecordingOutput()
	st := models.DefaultFormState()
	st.CopyOnChange = false
	copier := newTestCopier(t, out, st)

	st.Text = "a cat"
	if copier.Observe(st) {
		t.Error("Observe() copied with copy-on-change disabled")
	}
	if !copier.CopyNow(st) {
		t.Fatal("CopyNow() did not copy")
	}
	if len(out.clipboard) != 1 || out.clipboard[0] != "/imagine prompt: a cat, realistic" {
		t.Errorf("clipboard = %v", out.clipboard)
	}

	// Turning copy-on-change back on does not change the command
	st.CopyOnChange = true
	if copier.Observe(st) {
		t.Error("Observe() copied after toggling a setting that is not rendered")
	}
}

func TestCopier_ClipboardFailure(t *testing.T) {
	out := newRecordingOutput()
	out.clipboardErr = errors.New("no display")
	st := models.DefaultFormState()
	copier := newTestCopier(t, out, st)

	st.Text = "a cat"
	if !copier.Observe(st) {
		t.Fatal("Observe() did not attempt a copy")
	}
	if st.CopiedCommand != "error copying command: no display" {
		t.Errorf("CopiedCommand = %q", st.CopiedCommand)
	}
	if copier.Err() == nil {
		t.Error("Err() = nil after a failed copy")
	}

	out.clipboardErr = nil
	st.Video = true
	copier.Observe(st)
	if copier.Err() != nil {
		t.Errorf("Err() = %v after a successful copy", copier.Err())
	}
}

func TestCopier_SystemClipboardFailureStatus(t *testing.T) {
	output := &OutputHandler{
		stdout:    &bytes.Buffer{},
		clipboard: func(string) error { return errors.New("no display") },
	}
	status, err := template.NewStatus(template.NewProcessor(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	st := models.DefaultFormState()
	copier := NewCopier(output, status, st)

	st.Text = "a cat"
	copier.Observe(st)

	if st.CopiedCommand != "error copying command: no display" {
		t.Errorf("CopiedCommand = %q, expected %q", st.CopiedCommand, "error copying command: no display")
	}
}
