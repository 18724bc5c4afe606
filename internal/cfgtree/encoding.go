package cfgtree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML (or JSON) document into a new tree.
func Parse(data []byte) (*Node, error) {
	root := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return root, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := root.UnmarshalYAML(&doc); err != nil {
		return nil, err
	}
	return root, nil
}

// Marshal encodes the tree rooted at n as YAML.
func (n *Node) Marshal() ([]byte, error) {
	return yaml.Marshal(n.toYAML())
}

// MarshalYAML implements yaml.Marshaler preserving mapping order.
func (n *Node) MarshalYAML() (any, error) {
	return n.toYAML(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.DocumentNode:
		if len(value.Content) == 0 {
			return nil
		}
		return n.UnmarshalYAML(value.Content[0])
	case yaml.AliasNode:
		return n.UnmarshalYAML(value.Alias)
	case yaml.MappingNode:
		n.EnsureMap()
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i].Value
			child := n.Node(key)
			if value.Content[i+1].ShortTag() == "!!null" {
				continue
			}
			if err := child.UnmarshalYAML(value.Content[i+1]); err != nil {
				return err
			}
		}
		return nil
	case yaml.SequenceNode:
		n.reset(KindList)
		n.attach()
		for _, item := range value.Content {
			if err := n.AppendListItem().UnmarshalYAML(item); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		scalar, err := decodeScalar(value)
		if err != nil {
			return fmt.Errorf("%s: %w", n.Path(), err)
		}
		return n.SetValue(scalar)
	default:
		return fmt.Errorf("%s: unsupported yaml node kind %d", n.Path(), value.Kind)
	}
}

func decodeScalar(value *yaml.Node) (any, error) {
	switch value.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := value.Decode(&b)
		return b, err
	case "!!int":
		var i int64
		err := value.Decode(&i)
		return i, err
	case "!!float":
		var f float64
		err := value.Decode(&f)
		return f, err
	default:
		return value.Value, nil
	}
}

func (n *Node) toYAML() *yaml.Node {
	switch n.kind {
	case KindMap:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range n.keys {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				n.fields[key].toYAML(),
			)
		}
		return out
	case KindList:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.items {
			out.Content = append(out.Content, item.toYAML())
		}
		return out
	case KindScalar:
		out := &yaml.Node{}
		if err := out.Encode(n.value); err != nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(n.value)}
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// MarshalJSON implements json.Marshaler preserving mapping order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	switch n.kind {
	case KindMap:
		buf.WriteByte('{')
		for i, key := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encoded, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(encoded)
			buf.WriteByte(':')
			if err := n.fields[key].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindScalar:
		encoded, err := json.Marshal(n.value)
		if err != nil {
			return fmt.Errorf("%s: %w", n.Path(), err)
		}
		buf.Write(encoded)
	default:
		buf.WriteString("null")
	}
	return nil
}
