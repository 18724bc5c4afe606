// Package cfgtree provides a path-addressed configuration tree with
// virtual-node detection, typed access and YAML/JSON encoding.
package cfgtree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissing is returned by strict getters on a virtual node.
var ErrMissing = errors.New("missing value")

// Kind classifies the value held by a node.
type Kind int

const (
	KindNone Kind = iota
	KindScalar
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "none"
	}
}

// TypeError reports a value that cannot be read as the requested type.
type TypeError struct {
	Path string
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Want, e.Got)
}

// Serializer converts values of type T to and from a config tree.
type Serializer[T any] interface {
	Serialize(value T, dst *Node) error
	Deserialize(src *Node) (T, error)
}

// Node is one position in a config tree. Nodes obtained for paths that hold
// nothing are virtual: they remember where they would live and attach to the
// tree as soon as a value is stored in them.
type Node struct {
	parent   *Node
	key      string
	index    int
	attached bool

	kind   Kind
	value  any
	keys   []string
	fields map[string]*Node
	items  []*Node
}

// New returns an empty attached root.
func New() *Node {
	return &Node{index: -1, attached: true}
}

// Node returns the node at path relative to n. Missing segments yield
// virtual nodes.
func (n *Node) Node(path ...string) *Node {
	cur := n
	for _, key := range path {
		if cur.attached && cur.kind == KindMap {
			if child, ok := cur.fields[key]; ok {
				cur = child
				continue
			}
		}
		cur = &Node{parent: cur, key: key, index: -1}
	}
	return cur
}

// IsVirtual reports whether nothing is stored at this node's position.
func (n *Node) IsVirtual() bool {
	return !n.attached
}

// Kind returns the kind of value held.
func (n *Node) Kind() Kind {
	return n.kind
}

// Key returns the node's key in its parent mapping.
func (n *Node) Key() string {
	return n.key
}

// Path returns a dotted path from the root, used in error messages.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		if cur.index >= 0 {
			parts = append(parts, "["+strconv.Itoa(cur.index)+"]")
			continue
		}
		parts = append(parts, cur.key)
	}
	if len(parts) == 0 {
		return "<root>"
	}
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		if sb.Len() > 0 && !strings.HasPrefix(parts[i], "[") {
			sb.WriteByte('.')
		}
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// Keys returns mapping keys in insertion order.
func (n *Node) Keys() []string {
	if n.kind != KindMap {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Children returns mapping children in insertion order.
func (n *Node) Children() []*Node {
	if n.kind != KindMap {
		return nil
	}
	out := make([]*Node, 0, len(n.keys))
	for _, key := range n.keys {
		out = append(out, n.fields[key])
	}
	return out
}

// List returns list items in order.
func (n *Node) List() []*Node {
	if n.kind != KindList {
		return nil
	}
	out := make([]*Node, len(n.items))
	copy(out, n.items)
	return out
}

// Value returns the raw scalar value, or nil.
func (n *Node) Value() any {
	if n.kind != KindScalar {
		return nil
	}
	return n.value
}

// SetValue stores a scalar, a map[string]any or a []any at n, attaching it
// to the tree. A nil value removes the node.
func (n *Node) SetValue(value any) error {
	switch v := value.(type) {
	case nil:
		n.detach()
		return nil
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		n.reset(KindScalar)
		n.value = v
	case map[string]any:
		n.EnsureMap()
		for key, item := range v {
			if err := n.Node(key).SetValue(item); err != nil {
				return err
			}
		}
		return nil
	case []any:
		n.reset(KindList)
		n.attach()
		for _, item := range v {
			if err := n.AppendListItem().SetValue(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%s: unsupported value type %T", n.Path(), value)
	}
	n.attach()
	return nil
}

// EnsureMap turns n into an attached mapping, keeping existing entries.
func (n *Node) EnsureMap() *Node {
	if n.kind != KindMap {
		n.reset(KindMap)
	}
	n.attach()
	return n
}

// AppendListItem turns n into a list if needed and returns a new attached
// item at its end.
func (n *Node) AppendListItem() *Node {
	if n.kind != KindList {
		n.reset(KindList)
	}
	n.attach()
	item := &Node{parent: n, index: len(n.items), attached: true}
	n.items = append(n.items, item)
	return item
}

func (n *Node) reset(kind Kind) {
	n.kind = kind
	n.value = nil
	n.keys = nil
	n.fields = nil
	n.items = nil
	if kind == KindMap {
		n.fields = make(map[string]*Node)
	}
}

func (n *Node) attach() {
	if n.attached {
		return
	}
	parent := n.parent
	if parent == nil {
		n.attached = true
		return
	}
	parent.attach()
	if parent.kind != KindMap {
		parent.reset(KindMap)
	}
	if _, exists := parent.fields[n.key]; !exists {
		parent.keys = append(parent.keys, n.key)
	}
	parent.fields[n.key] = n
	n.attached = true
}

func (n *Node) detach() {
	n.reset(KindNone)
	if !n.attached || n.parent == nil {
		return
	}
	parent := n.parent
	n.attached = false
	if parent.kind != KindMap || n.index >= 0 {
		return
	}
	delete(parent.fields, n.key)
	for i, key := range parent.keys {
		if key == n.key {
			parent.keys = append(parent.keys[:i], parent.keys[i+1:]...)
			break
		}
	}
}

// String returns the scalar as a string, or def when absent or not a scalar.
func (n *Node) String(def string) string {
	value, err := n.RequireString()
	if err != nil {
		return def
	}
	return value
}

// Bool returns the scalar as a bool, or def when absent or not coercible.
func (n *Node) Bool(def bool) bool {
	value, err := n.RequireBool()
	if err != nil {
		return def
	}
	return value
}

// RequireString returns the scalar in its string form.
func (n *Node) RequireString() (string, error) {
	if n.IsVirtual() {
		return "", fmt.Errorf("%s: %w", n.Path(), ErrMissing)
	}
	if n.kind != KindScalar {
		return "", &TypeError{Path: n.Path(), Want: "string", Got: n.kind.String()}
	}
	if s, ok := n.value.(string); ok {
		return s, nil
	}
	return fmt.Sprint(n.value), nil
}

// RequireBool returns the scalar as a bool, accepting "true"/"false" strings.
func (n *Node) RequireBool() (bool, error) {
	if n.IsVirtual() {
		return false, fmt.Errorf("%s: %w", n.Path(), ErrMissing)
	}
	if n.kind != KindScalar {
		return false, &TypeError{Path: n.Path(), Want: "bool", Got: n.kind.String()}
	}
	switch v := n.value.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, &TypeError{Path: n.Path(), Want: "bool", Got: strconv.Quote(v)}
		}
		return parsed, nil
	default:
		return false, &TypeError{Path: n.Path(), Want: "bool", Got: fmt.Sprintf("%T", v)}
	}
}

// RequireMap fails unless n is an attached mapping.
func (n *Node) RequireMap() error {
	if n.IsVirtual() {
		return fmt.Errorf("%s: %w", n.Path(), ErrMissing)
	}
	if n.kind != KindMap {
		return &TypeError{Path: n.Path(), Want: "map", Got: n.kind.String()}
	}
	return nil
}

// RequireList fails unless n is an attached list.
func (n *Node) RequireList() error {
	if n.IsVirtual() {
		return fmt.Errorf("%s: %w", n.Path(), ErrMissing)
	}
	if n.kind != KindList {
		return &TypeError{Path: n.Path(), Want: "list", Got: n.kind.String()}
	}
	return nil
}
