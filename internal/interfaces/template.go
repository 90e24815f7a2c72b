package interfaces

import (
	"text/template"
	"time"
)

// StatusData contains the variables available to status templates
type StatusData struct {
	Command string    `json:"command"`
	Error   string    `json:"error"`
	Now     time.Time `json:"now"`
}

// TemplateProcessor parses and executes the status line templates
type TemplateProcessor interface {
	// Parse parses template text under the given name
	Parse(name, text string) (*template.Template, error)

	// Execute executes a template with the provided data
	Execute(tmpl *template.Template, data StatusData) (string, error)
}
