// Package templates provides loading, saving and rendering of named text
// templates stored as YAML files.
package templates

import (
	"github.com/rs/zerolog"

	"github.com/opencode-ai/textplate/internal/cfgtree"
	"github.com/opencode-ai/textplate/internal/texttemplate"
)

// Template is a named text template definition.
type Template struct {
	Name        string
	Description string
	Variables   []TemplateVar
	Tags        []string
	Body        *texttemplate.Template
	Source      string // file path or SourceBuiltin
	Scope       string // search path scope, set when loaded from search paths
}

// TemplateVar documents one argument of the template body.
type TemplateVar struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
}

// Required reports whether the body needs a value for name.
func (t *Template) Required(name string) bool {
	arg, ok := t.Body.Arguments()[name]
	return ok && !arg.Optional()
}

// Loader reads and writes template definitions. The body is stored under the
// "template" key by the injected serializer.
type Loader struct {
	serializer cfgtree.Serializer[*texttemplate.Template]
	logger     zerolog.Logger
}

// NewLoader returns a loader using serializer for template bodies.
func NewLoader(serializer cfgtree.Serializer[*texttemplate.Template], logger zerolog.Logger) *Loader {
	return &Loader{serializer: serializer, logger: logger}
}
