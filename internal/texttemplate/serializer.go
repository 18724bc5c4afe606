package texttemplate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opencode-ai/textplate/internal/cfgtree"
	"github.com/opencode-ai/textplate/internal/text"
)

const (
	nodeContent  = "content"
	nodeArgs     = "arguments"
	nodeOptional = "optional"
	nodeOpenArg  = "openArg"
	nodeCloseArg = "closeArg"
)

// Serializer stores templates in a config tree in two parts: the argument
// definitions under "arguments" and the ToText rendering under "content".
//
// Loading walks the content tree in pre-order. A node whose own content is
// wrapped in the delimiters around a name defined under "arguments" becomes
// an Arg carrying that node's format; every other node becomes a node element
// with its children removed. Children are always visited afterwards and
// appended to the same flat element list, including the children of a
// placeholder node, so text nested under a placeholder is not kept attached
// to its Arg.
//
// Serializer keeps no per-call state and may be shared.
type Serializer struct {
	nodes cfgtree.Serializer[text.Node]
}

var _ cfgtree.Serializer[*Template] = Serializer{}

// NewSerializer returns a template serializer storing content with nodes.
func NewSerializer(nodes cfgtree.Serializer[text.Node]) Serializer {
	return Serializer{nodes: nodes}
}

// DefaultSerializer uses text.NodeSerializer for content.
func DefaultSerializer() Serializer {
	return NewSerializer(text.NodeSerializer{})
}

// Serialize writes t into dst.
func (s Serializer) Serialize(t *Template, dst *cfgtree.Node) error {
	if t == nil {
		return fmt.Errorf("template is required")
	}
	if t.openArg != DefaultOpenArg || t.closeArg != DefaultCloseArg {
		if err := dst.Node(nodeOpenArg).SetValue(t.openArg); err != nil {
			return err
		}
		if err := dst.Node(nodeCloseArg).SetValue(t.closeArg); err != nil {
			return err
		}
	}

	args := dst.Node(nodeArgs).EnsureMap()
	names := make([]string, 0, len(t.arguments))
	for name := range t.arguments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := args.Node(name, nodeOptional).SetValue(t.arguments[name].optional); err != nil {
			return err
		}
	}

	if err := s.nodes.Serialize(t.ToText(), dst.Node(nodeContent)); err != nil {
		return fmt.Errorf("serialize %s: %w", nodeContent, err)
	}
	return nil
}

// Deserialize reads a template from src.
func (s Serializer) Deserialize(src *cfgtree.Node) (*Template, error) {
	p := parser{
		args:     src.Node(nodeArgs),
		openArg:  src.Node(nodeOpenArg).String(DefaultOpenArg),
		closeArg: src.Node(nodeCloseArg).String(DefaultCloseArg),
	}
	content, err := s.nodes.Deserialize(src.Node(nodeContent))
	if err != nil {
		return nil, fmt.Errorf("deserialize %s: %w", nodeContent, err)
	}

	var elements []any
	if err := p.parse(&elements, content); err != nil {
		return nil, err
	}
	return OfDelimited(p.openArg, p.closeArg, elements...)
}

type parser struct {
	args     *cfgtree.Node
	openArg  string
	closeArg string
}

func (p parser) parse(into *[]any, content text.Node) error {
	if name, ok := p.argName(content); ok {
		var optional bool
		if flag := p.args.Node(name, nodeOptional); !flag.IsVirtual() {
			value, err := flag.RequireBool()
			if err != nil {
				return fmt.Errorf("argument %q: %w", name, err)
			}
			optional = value
		}
		*into = append(*into, NewArg(name).Optional(optional).Format(content.Format()).Build())
	} else {
		*into = append(*into, content.ToBuilder().RemoveAll().Build())
	}
	for _, child := range content.Children() {
		if err := p.parse(into, child); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) argName(content text.Node) (string, bool) {
	literal := content.Content()
	if len(literal) < len(p.openArg)+len(p.closeArg) {
		return "", false
	}
	if !strings.HasPrefix(literal, p.openArg) || !strings.HasSuffix(literal, p.closeArg) {
		return "", false
	}
	name := literal[len(p.openArg) : len(literal)-len(p.closeArg)]
	if strings.TrimSpace(name) == "" || p.args.Node(name).IsVirtual() {
		return "", false
	}
	return name, true
}
