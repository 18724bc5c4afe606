package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/textplate/internal/cfgtree"
)

type templateFile struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Tags        []string      `yaml:"tags,omitempty"`
	Variables   []TemplateVar `yaml:"variables,omitempty"`
	Template    *cfgtree.Node `yaml:"template"`
}

// LoadTemplate reads a single template from disk.
func (l *Loader) LoadTemplate(path string) (*Template, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("template path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	tmpl, err := l.parseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	tmpl.Source = path
	return tmpl, nil
}

// LoadTemplatesFromDir loads every .yaml/.yml file in dir, sorted by name.
// A missing directory yields no templates.
func (l *Loader) LoadTemplatesFromDir(dir string) ([]*Template, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Template{}, nil
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*Template{}, nil
		}
		return nil, fmt.Errorf("read templates dir %s: %w", dir, err)
	}

	templates, err := l.loadFS(os.DirFS(dir), func(name string) string {
		return filepath.Join(dir, name)
	})
	if err != nil {
		return nil, err
	}
	l.logger.Debug().Str("dir", dir).Int("count", len(templates)).Msg("loaded templates")
	return templates, nil
}

// loadFS parses the template files at the root of fsys. source maps a file
// name to the Source recorded on its template.
func (l *Loader) loadFS(fsys fs.FS, source func(name string) string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	templates := make([]*Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isTemplateFile(entry.Name()) {
			continue
		}
		origin := source(entry.Name())
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", origin, err)
		}
		tmpl, err := l.parseTemplate(data)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", origin, err)
		}
		tmpl.Source = origin
		templates = append(templates, tmpl)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates, nil
}

func isTemplateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func (l *Loader) parseTemplate(data []byte) (*Template, error) {
	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(file.Name)
	if name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if file.Template == nil {
		return nil, fmt.Errorf("template body is required")
	}

	body, err := l.serializer.Deserialize(file.Template)
	if err != nil {
		return nil, fmt.Errorf("template body: %w", err)
	}

	tmpl := &Template{
		Name:        name,
		Description: strings.TrimSpace(file.Description),
		Tags:        file.Tags,
		Body:        body,
	}

	args := body.Arguments()
	seen := make(map[string]struct{})
	for _, variable := range file.Variables {
		variable.Name = strings.TrimSpace(variable.Name)
		if variable.Name == "" {
			return nil, fmt.Errorf("template variable name is required")
		}
		if _, exists := seen[variable.Name]; exists {
			return nil, fmt.Errorf("duplicate template variable %q", variable.Name)
		}
		if _, ok := args[variable.Name]; !ok {
			return nil, fmt.Errorf("variable %q is not an argument of the template", variable.Name)
		}
		seen[variable.Name] = struct{}{}
		tmpl.Variables = append(tmpl.Variables, variable)
	}

	return tmpl, nil
}
