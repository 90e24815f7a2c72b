package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"imagine-cli/internal/interfaces"
	"imagine-cli/internal/orchestrator"
	"imagine-cli/pkg/models"
)

type rowKind int

const (
	rowPrompt rowKind = iota
	rowAlgorithm
	rowAspect
	rowStylize
	rowSeed
	rowVideo
	rowSuffix
	rowAddSuffix
	rowCopyOnChange
)

// row is one focusable line of the form. index is the suffix position for
// rowSuffix and unused otherwise.
type row struct {
	kind  rowKind
	index int
}

// Form is the bubbletea model editing one FormState
type Form struct {
	state  *models.FormState
	store  interfaces.StateStore
	copier *orchestrator.Copier
	logger zerolog.Logger

	focus    int
	editor   textinput.Model
	help     help.Model
	width    int
	quitting bool
}

// NewForm creates a form over st. The store receives the state on quit and
// the copier is consulted after every key press.
func NewForm(st *models.FormState, store interfaces.StateStore, copier *orchestrator.Copier, logger zerolog.Logger) *Form {
	editor := textinput.New()
	editor.Prompt = ""
	// No limit so long pasted prompts are kept whole
	editor.CharLimit = 0
	editor.Width = 60

	f := &Form{
		state:  st,
		store:  store,
		copier: copier,
		logger: logger,
		editor: editor,
		help:   help.New(),
	}
	f.syncEditor()
	return f
}

// Run starts the form on the alternate screen and blocks until it quits
func Run(f *Form) error {
	p := tea.NewProgram(f, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running form: %w", err)
	}
	return nil
}

// State returns the state being edited
func (f *Form) State() *models.FormState {
	return f.state
}

func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.help.Width = msg.Width
		return f, nil

	case tea.KeyMsg:
		cmd := f.handleKey(msg)
		if !f.quitting {
			f.copier.Observe(f.state)
		}
		return f, cmd
	}

	if f.editing() {
		var cmd tea.Cmd
		f.editor, cmd = f.editor.Update(msg)
		return f, cmd
	}
	return f, nil
}

// rows lists the focusable rows for the current suffix count
func (f *Form) rows() []row {
	rows := []row{
		{kind: rowPrompt},
		{kind: rowAlgorithm},
		{kind: rowAspect},
		{kind: rowStylize},
		{kind: rowSeed},
		{kind: rowVideo},
	}
	for i := range f.state.Suffixes {
		rows = append(rows, row{kind: rowSuffix, index: i})
	}
	return append(rows, row{kind: rowAddSuffix}, row{kind: rowCopyOnChange})
}

func (f *Form) current() row {
	return f.rows()[f.focus]
}

// editing reports whether the focused row takes typed text
func (f *Form) editing() bool {
	k := f.current().kind
	return k == rowPrompt || k == rowSuffix
}

func (f *Form) moveFocus(delta int) {
	n := len(f.rows())
	f.focus = ((f.focus+delta)%n + n) % n
	f.syncEditor()
}

func (f *Form) setFocus(r row) {
	for i, candidate := range f.rows() {
		if candidate == r {
			f.focus = i
			break
		}
	}
	f.syncEditor()
}

// syncEditor loads the focused text field into the editor
func (f *Form) syncEditor() {
	r := f.current()
	switch r.kind {
	case rowPrompt:
		f.editor.SetValue(f.state.Text)
	case rowSuffix:
		f.editor.SetValue(f.state.Suffixes[r.index].Label)
	default:
		f.editor.Blur()
		return
	}
	f.editor.CursorEnd()
	f.editor.Focus()
}

func (f *Form) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		f.quit()
		return tea.Quit
	case key.Matches(msg, keys.Next):
		f.moveFocus(1)
		return nil
	case key.Matches(msg, keys.Prev):
		f.moveFocus(-1)
		return nil
	case key.Matches(msg, keys.Copy):
		if !f.state.CopyOnChange {
			f.copier.CopyNow(f.state)
		}
		return nil
	}

	r := f.current()
	switch r.kind {
	case rowPrompt:
		return f.edit(msg, func(s string) { f.state.Text = s })

	case rowSuffix:
		switch {
		case key.Matches(msg, keys.ToggleSuffix):
			f.state.ToggleSuffix(r.index)
			return nil
		case key.Matches(msg, keys.Remove):
			f.state.RemoveSuffix(r.index)
			if f.focus >= len(f.rows()) {
				f.focus = len(f.rows()) - 1
			}
			f.syncEditor()
			return nil
		}
		return f.edit(msg, func(s string) { f.state.Suffixes[r.index].Label = s })

	case rowAlgorithm:
		switch {
		case key.Matches(msg, keys.Decrease):
			f.state.Algorithm = f.state.Algorithm.Next(-1)
		case key.Matches(msg, keys.Increase):
			f.state.Algorithm = f.state.Algorithm.Next(1)
		}

	case rowAspect:
		switch {
		case key.Matches(msg, keys.Decrease):
			f.state.SetAspect(f.state.AspectW-1, f.state.AspectH)
		case key.Matches(msg, keys.Increase):
			f.state.SetAspect(f.state.AspectW+1, f.state.AspectH)
		case key.Matches(msg, keys.HeightDown):
			f.state.SetAspect(f.state.AspectW, f.state.AspectH-1)
		case key.Matches(msg, keys.HeightUp):
			f.state.SetAspect(f.state.AspectW, f.state.AspectH+1)
		case key.Matches(msg, keys.Preset):
			next := f.state.NextPreset()
			f.state.SetAspect(next.W, next.H)
		}

	case rowStylize:
		switch {
		case key.Matches(msg, keys.Decrease):
			f.state.StepStylize(-1)
		case key.Matches(msg, keys.Increase):
			f.state.StepStylize(1)
		case key.Matches(msg, keys.Reset):
			f.state.ResetStylize()
		}

	case rowSeed:
		switch {
		case key.Matches(msg, keys.Toggle):
			f.state.UseSeed = !f.state.UseSeed
		case msg.Type == tea.KeyBackspace:
			f.state.Seed /= 10
		case msg.Type == tea.KeyRunes:
			for _, ch := range msg.Runes {
				if ch >= '0' && ch <= '9' {
					f.state.Seed = appendDigit(f.state.Seed, ch)
				}
			}
		}

	case rowVideo:
		if key.Matches(msg, keys.Toggle) {
			f.state.Video = !f.state.Video
		}

	case rowAddSuffix:
		if key.Matches(msg, keys.Add) {
			f.state.AddSuffix("")
			f.setFocus(row{kind: rowSuffix, index: len(f.state.Suffixes) - 1})
		}

	case rowCopyOnChange:
		if key.Matches(msg, keys.Toggle) {
			f.state.CopyOnChange = !f.state.CopyOnChange
		}
	}
	return nil
}

// edit feeds msg to the editor and stores the resulting text
func (f *Form) edit(msg tea.KeyMsg, set func(string)) tea.Cmd {
	var cmd tea.Cmd
	f.editor, cmd = f.editor.Update(msg)
	set(f.editor.Value())
	return cmd
}

func (f *Form) quit() {
	f.quitting = true
	f.logger.Debug().Msg("closing form")
	f.store.SaveQuietly(f.state)
}

// appendDigit shifts d into seed, saturating at the uint32 maximum
func appendDigit(seed uint32, d rune) uint32 {
	v := uint64(seed)*10 + uint64(d-'0')
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
