package templates

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinTemplates returns the templates bundled with textplate.
func (l *Loader) LoadBuiltinTemplates() ([]*Template, error) {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("open builtin templates: %w", err)
	}
	templates, err := l.loadFS(sub, func(string) string { return SourceBuiltin })
	if err != nil {
		return nil, fmt.Errorf("builtin templates: %w", err)
	}
	for _, tmpl := range templates {
		tmpl.Scope = ScopeBuiltin
	}
	return templates, nil
}
