package texttemplate

import "github.com/opencode-ai/textplate/internal/text"

// Kind identifies the variant held by an Element.
type Kind int

const (
	KindLiteral Kind = iota
	KindNode
	KindArg
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindNode:
		return "node"
	case KindArg:
		return "arg"
	default:
		return "unknown"
	}
}

// Element is one entry of a template: a literal string, a text element or
// an Arg.
type Element struct {
	kind    Kind
	literal string
	node    text.Element
	arg     Arg
}

// Literal returns a literal element rendered as plain text.
func Literal(value string) Element {
	return Element{kind: KindLiteral, literal: value}
}

// NodeElement returns an element that applies itself to the result.
func NodeElement(node text.Element) Element {
	return Element{kind: KindNode, node: node}
}

// ArgElement returns a placeholder element.
func ArgElement(arg Arg) Element {
	return Element{kind: KindArg, arg: arg}
}

// Kind returns the variant.
func (e Element) Kind() Kind {
	return e.kind
}

// Literal returns the literal value of a KindLiteral element.
func (e Element) Literal() string {
	return e.literal
}

// Node returns the text element of a KindNode element.
func (e Element) Node() text.Element {
	return e.node
}

// Arg returns the Arg of a KindArg element.
func (e Element) Arg() Arg {
	return e.arg
}
