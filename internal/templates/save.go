package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/textplate/internal/cfgtree"
)

// Encode builds the config tree stored in a template file.
func (l *Loader) Encode(tmpl *Template) (*cfgtree.Node, error) {
	if tmpl == nil || tmpl.Body == nil {
		return nil, fmt.Errorf("template is required")
	}
	if strings.TrimSpace(tmpl.Name) == "" {
		return nil, fmt.Errorf("template name is required")
	}

	root := cfgtree.New()
	if err := root.Node("name").SetValue(tmpl.Name); err != nil {
		return nil, err
	}
	if tmpl.Description != "" {
		if err := root.Node("description").SetValue(tmpl.Description); err != nil {
			return nil, err
		}
	}
	if len(tmpl.Tags) > 0 {
		tags := make([]any, 0, len(tmpl.Tags))
		for _, tag := range tmpl.Tags {
			tags = append(tags, tag)
		}
		if err := root.Node("tags").SetValue(tags); err != nil {
			return nil, err
		}
	}
	if len(tmpl.Variables) > 0 {
		list := root.Node("variables")
		for _, variable := range tmpl.Variables {
			item := list.AppendListItem()
			if err := item.Node("name").SetValue(variable.Name); err != nil {
				return nil, err
			}
			if err := item.Node("description").SetValue(variable.Description); err != nil {
				return nil, err
			}
			if variable.Default != "" {
				if err := item.Node("default").SetValue(variable.Default); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := l.serializer.Serialize(tmpl.Body, root.Node("template")); err != nil {
		return nil, fmt.Errorf("serialize template %q: %w", tmpl.Name, err)
	}
	return root, nil
}

// Marshal encodes tmpl as YAML.
func (l *Loader) Marshal(tmpl *Template) ([]byte, error) {
	root, err := l.Encode(tmpl)
	if err != nil {
		return nil, err
	}
	return root.Marshal()
}

// SaveTemplate writes tmpl to path, creating parent directories.
func (l *Loader) SaveTemplate(path string, tmpl *Template) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("template path is required")
	}
	data, err := l.Marshal(tmpl)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create template dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write template %s: %w", path, err)
	}
	l.logger.Debug().Str("path", path).Str("template", tmpl.Name).Msg("saved template")
	return nil
}
