package templates

import (
	"os"
	"path/filepath"
)

// SourceBuiltin is the Source of templates embedded in the binary.
const SourceBuiltin = "builtin"

// Scopes of a loaded template, from highest to lowest precedence.
const (
	ScopeExtra   = "extra"
	ScopeProject = "project"
	ScopeUser    = "user"
	ScopeSystem  = "system"
	ScopeBuiltin = "builtin"
)

// SearchPath is a template directory and the scope it stands for.
type SearchPath struct {
	Scope string
	Dir   string
}

// TemplateSearchPaths returns the standard search directories in precedence
// order: project, user, system. The project entry is omitted without a
// project directory.
func TemplateSearchPaths(projectDir string) []SearchPath {
	paths := make([]SearchPath, 0, 3)
	if projectDir != "" {
		paths = append(paths, SearchPath{ScopeProject, filepath.Join(projectDir, ".textplate", "templates")})
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, SearchPath{ScopeUser, filepath.Join(home, ".config", "textplate", "templates")})
	}
	paths = append(paths, SearchPath{ScopeSystem, filepath.Join(string(filepath.Separator), "usr", "share", "textplate", "templates")})
	return paths
}

// LoadTemplatesFromSearchPaths resolves the template catalog. extraDirs are
// searched before the standard paths and builtins come last; the first
// template seen for a name wins.
func (l *Loader) LoadTemplatesFromSearchPaths(projectDir string, extraDirs ...string) ([]*Template, error) {
	paths := make([]SearchPath, 0, len(extraDirs)+3)
	for _, dir := range extraDirs {
		paths = append(paths, SearchPath{ScopeExtra, dir})
	}
	paths = append(paths, TemplateSearchPaths(projectDir)...)

	var catalog []*Template
	byName := make(map[string]*Template)
	add := func(tmpl *Template) {
		if prev, ok := byName[tmpl.Name]; ok {
			l.logger.Debug().
				Str("template", tmpl.Name).
				Str("source", tmpl.Source).
				Str("shadowed_by", prev.Source).
				Msg("template shadowed")
			return
		}
		byName[tmpl.Name] = tmpl
		catalog = append(catalog, tmpl)
	}

	for _, path := range paths {
		loaded, err := l.LoadTemplatesFromDir(path.Dir)
		if err != nil {
			return nil, err
		}
		for _, tmpl := range loaded {
			tmpl.Scope = path.Scope
			add(tmpl)
		}
	}

	builtins, err := l.LoadBuiltinTemplates()
	if err != nil {
		return nil, err
	}
	for _, tmpl := range builtins {
		add(tmpl)
	}
	return catalog, nil
}
