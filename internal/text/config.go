package text

import (
	"fmt"

	"github.com/opencode-ai/textplate/internal/cfgtree"
)

const (
	keyText          = "text"
	keyColor         = "color"
	keyBold          = "bold"
	keyItalic        = "italic"
	keyUnderline     = "underline"
	keyStrikethrough = "strikethrough"
	keyObfuscated    = "obfuscated"
	keyChildren      = "children"
)

// NodeSerializer stores nodes in a config tree. A node without format or
// children is written as a bare string.
type NodeSerializer struct{}

var _ cfgtree.Serializer[Node] = NodeSerializer{}

// Serialize writes n into dst.
func (NodeSerializer) Serialize(n Node, dst *cfgtree.Node) error {
	if n.format.IsEmpty() && len(n.children) == 0 {
		return dst.SetValue(n.content)
	}

	dst.EnsureMap()
	if err := dst.Node(keyText).SetValue(n.content); err != nil {
		return err
	}
	if n.format.Color != ColorNone {
		if err := dst.Node(keyColor).SetValue(string(n.format.Color)); err != nil {
			return err
		}
	}
	for _, toggle := range styleFields(n.format.Style) {
		if !toggle.value.IsSet() {
			continue
		}
		if err := dst.Node(toggle.key).SetValue(toggle.value.Enabled()); err != nil {
			return err
		}
	}
	if len(n.children) > 0 {
		list := dst.Node(keyChildren)
		for _, child := range n.children {
			if err := (NodeSerializer{}).Serialize(child, list.AppendListItem()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Deserialize reads a node from src.
func (NodeSerializer) Deserialize(src *cfgtree.Node) (Node, error) {
	if src.IsVirtual() {
		_, err := src.RequireString()
		return Node{}, err
	}

	switch src.Kind() {
	case cfgtree.KindScalar:
		content, err := src.RequireString()
		if err != nil {
			return Node{}, err
		}
		return Of(content), nil
	case cfgtree.KindMap:
	default:
		return Node{}, &cfgtree.TypeError{Path: src.Path(), Want: "text", Got: src.Kind().String()}
	}

	b := NewBuilder("")
	if textNode := src.Node(keyText); !textNode.IsVirtual() {
		content, err := textNode.RequireString()
		if err != nil {
			return Node{}, err
		}
		b.Content(content)
	}

	var format Format
	if colorNode := src.Node(keyColor); !colorNode.IsVirtual() {
		raw, err := colorNode.RequireString()
		if err != nil {
			return Node{}, err
		}
		color, err := ParseColor(raw)
		if err != nil {
			return Node{}, fmt.Errorf("%s: %w", colorNode.Path(), err)
		}
		format.Color = color
	}
	for _, field := range styleFieldRefs(&format.Style) {
		node := src.Node(field.key)
		if node.IsVirtual() {
			continue
		}
		enabled, err := node.RequireBool()
		if err != nil {
			return Node{}, err
		}
		*field.value = ToggleOf(enabled)
	}
	b.Format(format)

	if childrenNode := src.Node(keyChildren); !childrenNode.IsVirtual() {
		if err := childrenNode.RequireList(); err != nil {
			return Node{}, err
		}
		for _, item := range childrenNode.List() {
			child, err := (NodeSerializer{}).Deserialize(item)
			if err != nil {
				return Node{}, err
			}
			b.Append(child)
		}
	}
	return b.Build(), nil
}

type styleField struct {
	key   string
	value Toggle
}

func styleFields(s Style) []styleField {
	return []styleField{
		{keyBold, s.Bold},
		{keyItalic, s.Italic},
		{keyUnderline, s.Underline},
		{keyStrikethrough, s.Strikethrough},
		{keyObfuscated, s.Obfuscated},
	}
}

type styleFieldRef struct {
	key   string
	value *Toggle
}

func styleFieldRefs(s *Style) []styleFieldRef {
	return []styleFieldRef{
		{keyBold, &s.Bold},
		{keyItalic, &s.Italic},
		{keyUnderline, &s.Underline},
		{keyStrikethrough, &s.Strikethrough},
		{keyObfuscated, &s.Obfuscated},
	}
}
