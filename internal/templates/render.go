package templates

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/textplate/internal/text"
)

// RenderTemplate applies string variables to the template body. Blank values
// count as absent and fall back to the variable's default.
func RenderTemplate(tmpl *Template, vars map[string]string) (text.Node, error) {
	if tmpl == nil || tmpl.Body == nil {
		return text.Node{}, fmt.Errorf("template is required")
	}

	data := make(map[string]string, len(vars))
	for key, value := range vars {
		if strings.TrimSpace(value) == "" {
			continue
		}
		data[key] = value
	}

	for _, variable := range tmpl.Variables {
		if _, ok := data[variable.Name]; !ok && variable.Default != "" {
			data[variable.Name] = variable.Default
		}
	}

	params := make(map[string]text.Element, len(data))
	for key, value := range data {
		params[key] = text.Of(value)
	}

	node, err := tmpl.Body.Apply(params)
	if err != nil {
		return text.Node{}, fmt.Errorf("render template %q: %w", tmpl.Name, err)
	}
	return node, nil
}

// FindTemplate returns the template called name, ignoring case.
func FindTemplate(items []*Template, name string) *Template {
	name = strings.TrimSpace(name)
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}
	return nil
}

// FilterTemplates keeps templates carrying any of tags. No tags keeps all.
func FilterTemplates(items []*Template, tags []string) []*Template {
	if len(tags) == 0 {
		return items
	}
	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	out := make([]*Template, 0, len(items))
	for _, item := range items {
		for _, tag := range item.Tags {
			if _, ok := wanted[strings.ToLower(tag)]; ok {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
