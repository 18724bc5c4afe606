package text

import "strings"

// Element is anything that can write itself into a Builder.
type Element interface {
	ApplyTo(b *Builder)
}

// Node is an immutable formatted text tree.
type Node struct {
	content  string
	format   Format
	children []Node
}

// Empty is the node with no content, format or children.
var Empty = Node{}

// Of returns an unformatted node holding content.
func Of(content string) Node {
	return Node{content: content}
}

// Content returns the node's own literal content, ignoring children.
func (n Node) Content() string {
	return n.content
}

// Format returns the node's own format.
func (n Node) Format() Format {
	return n.format
}

// Children returns a copy of the ordered children.
func (n Node) Children() []Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

// IsEmpty reports whether the node renders nothing and carries no format.
func (n Node) IsEmpty() bool {
	return n.content == "" && n.format.IsEmpty() && len(n.children) == 0
}

// Plain returns the concatenated content of the tree in pre-order.
func (n Node) Plain() string {
	var sb strings.Builder
	n.writePlain(&sb)
	return sb.String()
}

func (n Node) writePlain(sb *strings.Builder) {
	sb.WriteString(n.content)
	for _, child := range n.children {
		child.writePlain(sb)
	}
}

// String implements fmt.Stringer with the plain rendering.
func (n Node) String() string {
	return n.Plain()
}

// ApplyTo appends n as a child of b.
func (n Node) ApplyTo(b *Builder) {
	b.Append(n)
}

// Walk visits the tree in pre-order with the effective format of each node.
func (n Node) Walk(parent Format, fn func(node Node, effective Format)) {
	effective := n.format.Merge(parent)
	fn(n, effective)
	for _, child := range n.children {
		child.Walk(effective, fn)
	}
}

// ToBuilder returns a builder seeded with a copy of n.
func (n Node) ToBuilder() *Builder {
	return &Builder{
		content:  n.content,
		format:   n.format,
		children: n.Children(),
	}
}

// Builder assembles a Node. A Builder must not be shared between goroutines.
type Builder struct {
	content  string
	format   Format
	children []Node
}

// NewBuilder returns a builder with the given content.
func NewBuilder(content string) *Builder {
	return &Builder{content: content}
}

// Content replaces the builder's literal content.
func (b *Builder) Content(content string) *Builder {
	b.content = content
	return b
}

// Format replaces the builder's format.
func (b *Builder) Format(format Format) *Builder {
	b.format = format
	return b
}

// Color sets the builder's color.
func (b *Builder) Color(color Color) *Builder {
	b.format = b.format.WithColor(color)
	return b
}

// Style layers style over the builder's current style.
func (b *Builder) Style(style Style) *Builder {
	b.format = b.format.WithStyle(style)
	return b
}

// Append adds children in order.
func (b *Builder) Append(children ...Node) *Builder {
	b.children = append(b.children, children...)
	return b
}

// RemoveAll drops every child.
func (b *Builder) RemoveAll() *Builder {
	b.children = nil
	return b
}

// Build returns the immutable node. The builder may keep being used.
func (b *Builder) Build() Node {
	n := Node{content: b.content, format: b.format}
	if len(b.children) > 0 {
		n.children = make([]Node, len(b.children))
		copy(n.children, b.children)
	}
	return n
}
