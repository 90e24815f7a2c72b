package template

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"imagine-cli/internal/interfaces"
)

// Default status formats
const (
	DefaultCopiedFormat = "copied command:\n{{ .Command }}"
	DefaultErrorFormat  = "error copying command: {{ .Error }}"
)

// Processor implements the TemplateProcessor interface
type Processor struct{}

// NewProcessor creates a new template processor
func NewProcessor() *Processor {
	return &Processor{}
}

// Parse parses template text with sprig and custom helpers registered
func (p *Processor) Parse(name, text string) (*template.Template, error) {
	tmpl := template.New(name)

	// Register helper functions before parsing
	p.registerHelpersToTemplate(tmpl)

	tmpl, err := tmpl.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	return tmpl, nil
}

// Execute executes a template with the provided data
func (p *Processor) Execute(tmpl *template.Template, data interfaces.StatusData) (string, error) {
	var buf strings.Builder

	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// registerHelpersToTemplate registers both sprig and custom helper functions to a template
func (p *Processor) registerHelpersToTemplate(tmpl *template.Template) {
	funcMap := sprig.TxtFuncMap()

	customFuncs := template.FuncMap{
		"truncate": truncateFunc,
		"indent":   indentFunc,
	}

	for name, fn := range customFuncs {
		funcMap[name] = fn
	}

	tmpl.Funcs(funcMap)
}

// truncateFunc truncates a string to a specified number of characters
func truncateFunc(length int, text string) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	if length < 0 {
		length = 0
	}

	if length <= 3 {
		return string(runes[:length])
	}

	return string(runes[:length-3]) + "..."
}

// indentFunc indents each non-empty line of text by the specified number of spaces
func indentFunc(spaces int, text string) string {
	if spaces <= 0 {
		return text
	}

	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = indent + line
		}
	}

	return strings.Join(lines, "\n")
}

// Status renders the text shown after a copy attempt
type Status struct {
	processor interfaces.TemplateProcessor
	copied    *template.Template
	failed    *template.Template
	now       func() time.Time
}

// NewStatus parses the copied and error formats. Empty formats select the defaults.
func NewStatus(processor interfaces.TemplateProcessor, copiedFormat, errorFormat string) (*Status, error) {
	if copiedFormat == "" {
		copiedFormat = DefaultCopiedFormat
	}
	if errorFormat == "" {
		errorFormat = DefaultErrorFormat
	}

	copied, err := processor.Parse("copied_format", copiedFormat)
	if err != nil {
		return nil, err
	}
	failed, err := processor.Parse("error_format", errorFormat)
	if err != nil {
		return nil, err
	}

	return &Status{
		processor: processor,
		copied:    copied,
		failed:    failed,
		now:       time.Now,
	}, nil
}

// Copied returns the status for a successful copy of command
func (s *Status) Copied(command string) string {
	out, err := s.processor.Execute(s.copied, interfaces.StatusData{Command: command, Now: s.now()})
	if err != nil {
		return "copied command:\n" + command
	}
	return out
}

// Failed returns the status for a copy that failed with cause
func (s *Status) Failed(command string, cause error) string {
	data := interfaces.StatusData{Command: command, Error: cause.Error(), Now: s.now()}
	out, err := s.processor.Execute(s.failed, data)
	if err != nil {
		return "error copying command: " + cause.Error()
	}
	return out
}
