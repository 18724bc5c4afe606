// Package texttemplate implements reusable formatted text templates with
// named placeholders.
//
// A Template is an ordered list of literals, text elements and Args built
// once with Of and applied many times with different parameters:
//
//	greeting := texttemplate.MustOf("Hello, ", texttemplate.NewArg("name").Color(text.Aqua), "!")
//	node, err := greeting.Apply(map[string]text.Element{"name": text.Of("World")})
//
// Templates and Args are immutable and safe for concurrent use. Serializer
// stores a template in a cfgtree by rendering it with ToText and recovers the
// placeholders from that rendering when loading.
package texttemplate

import (
	"fmt"
	"maps"
	"strings"

	"github.com/opencode-ai/textplate/internal/text"
)

// Default placeholder delimiters.
const (
	DefaultOpenArg  = "{"
	DefaultCloseArg = "}"
)

// Empty is the template with no elements. Of returns it for an empty list.
var Empty = &Template{
	arguments: map[string]Arg{},
	openArg:   DefaultOpenArg,
	closeArg:  DefaultCloseArg,
}

// Template is an immutable ordered sequence of elements.
type Template struct {
	elements  []Element
	arguments map[string]Arg
	openArg   string
	closeArg  string
}

// Of builds a template with the default delimiters. Elements are applied in
// the given order; see OfDelimited for accepted element types.
func Of(elements ...any) (*Template, error) {
	return OfDelimited(DefaultOpenArg, DefaultCloseArg, elements...)
}

// OfDelimited builds a template whose placeholders render as
// openArg + name + closeArg. Each element may be an Element, an Arg, an
// *ArgBuilder (built now), a text.Element, a string, a fmt.Stringer or any
// other value rendered with fmt.Sprint.
func OfDelimited(openArg, closeArg string, elements ...any) (*Template, error) {
	if openArg == "" || closeArg == "" {
		return nil, fmt.Errorf("%w: delimiters must not be empty", ErrTemplateArgument)
	}
	if len(elements) == 0 && openArg == DefaultOpenArg && closeArg == DefaultCloseArg {
		return Empty, nil
	}

	t := &Template{
		elements:  make([]Element, 0, len(elements)),
		arguments: make(map[string]Arg),
		openArg:   openArg,
		closeArg:  closeArg,
	}
	for i, raw := range elements {
		element, err := toElement(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if element.kind == KindArg {
			arg := element.arg
			if strings.TrimSpace(arg.name) == "" {
				return nil, fmt.Errorf("element %d: %w: argument name is required", i, ErrTemplateArgument)
			}
			if prev, ok := t.arguments[arg.name]; ok && !prev.Equal(arg) {
				return nil, &ArgumentConflictError{Name: arg.name}
			}
			t.arguments[arg.name] = arg
		}
		t.elements = append(t.elements, element)
	}
	return t, nil
}

// MustOf is Of that panics on error, for templates declared in code.
func MustOf(elements ...any) *Template {
	t, err := Of(elements...)
	if err != nil {
		panic(err)
	}
	return t
}

func toElement(raw any) (Element, error) {
	switch v := raw.(type) {
	case nil:
		return Element{}, fmt.Errorf("%w: nil element", ErrTemplateArgument)
	case Element:
		return v, nil
	case Arg:
		return ArgElement(v), nil
	case *ArgBuilder:
		if v == nil {
			return Element{}, fmt.Errorf("%w: nil argument builder", ErrTemplateArgument)
		}
		return ArgElement(v.Build()), nil
	case text.Element:
		return NodeElement(v), nil
	case string:
		return Literal(v), nil
	case fmt.Stringer:
		return Literal(v.String()), nil
	default:
		return Literal(fmt.Sprint(v)), nil
	}
}

// Elements returns a copy of the ordered elements.
func (t *Template) Elements() []Element {
	out := make([]Element, len(t.elements))
	copy(out, t.elements)
	return out
}

// Arguments returns a copy of the canonical name to Arg mapping.
func (t *Template) Arguments() map[string]Arg {
	return maps.Clone(t.arguments)
}

// OpenArg returns the opening placeholder delimiter.
func (t *Template) OpenArg() string {
	return t.openArg
}

// CloseArg returns the closing placeholder delimiter.
func (t *Template) CloseArg() string {
	return t.closeArg
}
