package texttemplate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/textplate/internal/cfgtree"
	"github.com/opencode-ai/textplate/internal/text"
)

func argSignature(tmpl *Template) []string {
	var out []string
	for _, element := range tmpl.Elements() {
		if element.Kind() == KindArg {
			arg := element.Arg()
			out = append(out, fmt.Sprintf("%s:%t", arg.Name(), arg.Optional()))
		}
	}
	return out
}

func roundTrip(t *testing.T, tmpl *Template) (*cfgtree.Node, *Template) {
	t.Helper()
	serializer := DefaultSerializer()
	tree := cfgtree.New()
	require.NoError(t, serializer.Serialize(tmpl, tree))
	restored, err := serializer.Deserialize(tree)
	require.NoError(t, err)
	return tree, restored
}

func TestSerializeLayout(t *testing.T) {
	tmpl := MustOf("A", NewArg("b").Optional(true))
	tree, restored := roundTrip(t, tmpl)

	require.True(t, tree.Node("openArg").IsVirtual())
	require.True(t, tree.Node("closeArg").IsVirtual())
	require.Equal(t, []string{"b"}, tree.Node("arguments").Keys())
	require.True(t, tree.Node("arguments", "b", "optional").Bool(false))

	content := tree.Node("content")
	require.Equal(t, "A", content.Node("text").String(""))
	children := content.Node("children").List()
	require.Len(t, children, 1)
	require.Equal(t, "{b}", children[0].String(""))

	require.Equal(t, []string{"b:true"}, argSignature(restored))
	require.Equal(t, tmpl.ToText().Plain(), restored.ToText().Plain())

	elements := restored.Elements()
	require.Len(t, elements, 2)
	require.Equal(t, KindNode, elements[0].Kind())
	require.Equal(t, KindArg, elements[1].Kind())

	params := map[string]text.Element{"b": text.Of("!")}
	want, err := tmpl.Apply(params)
	require.NoError(t, err)
	got, err := restored.Apply(params)
	require.NoError(t, err)
	require.Equal(t, want.Plain(), got.Plain())

	_, err = restored.Apply(nil)
	require.NoError(t, err)
}

func TestSerializeRoundTripFlatTemplates(t *testing.T) {
	tests := []struct {
		name     string
		elements []any
	}{
		{"greeting", []any{"Hello, ", NewArg("name"), "!"}},
		{"leading arg", []any{NewArg("who").Color(text.Green), " joined"}},
		{"mixed optional", []any{NewArg("a"), " ", NewArg("b").MarkOptional(), " ", NewArg("a")}},
		{"formatted literal", []any{text.NewBuilder("[").Color(text.Gray).Build(), NewArg("tag"), "]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := MustOf(tt.elements...)
			_, restored := roundTrip(t, tmpl)

			require.Equal(t, argSignature(tmpl), argSignature(restored))
			require.Equal(t, tmpl.Arguments()["a"], restored.Arguments()["a"])
			require.Equal(t, tmpl.ToText().Plain(), restored.ToText().Plain())
		})
	}
}

func TestSerializeKeepsArgFormat(t *testing.T) {
	format := text.Format{Color: text.Aqua, Style: text.StyleUnderline}
	tmpl := MustOf("x", NewArg("y").Format(format))
	_, restored := roundTrip(t, tmpl)

	require.Equal(t, format, restored.Arguments()["y"].Format())
}

func TestSerializeCustomDelimiters(t *testing.T) {
	tmpl, err := OfDelimited("<", ">", "Hi ", NewArg("who"))
	require.NoError(t, err)

	tree, restored := roundTrip(t, tmpl)
	require.Equal(t, "<", tree.Node("openArg").String(""))
	require.Equal(t, ">", tree.Node("closeArg").String(""))
	require.Equal(t, "<", restored.OpenArg())
	require.Equal(t, ">", restored.CloseArg())
	require.Equal(t, []string{"who:false"}, argSignature(restored))
}

func TestSerializeEmptyTemplate(t *testing.T) {
	tree, restored := roundTrip(t, Empty)
	require.Empty(t, tree.Node("arguments").Keys())
	require.Equal(t, "", tree.Node("content").String("x"))
	require.Empty(t, restored.Arguments())
	require.Equal(t, "", restored.ToText().Plain())
}

func TestDeserializeUndefinedPlaceholderStaysText(t *testing.T) {
	tree, err := cfgtree.Parse([]byte(`
arguments:
  known:
    optional: false
content:
  text: "{unknown}"
  children:
    - "{known}"
`))
	require.NoError(t, err)

	tmpl, err := DefaultSerializer().Deserialize(tree)
	require.NoError(t, err)
	require.Equal(t, []string{"known:false"}, argSignature(tmpl))
	require.Equal(t, KindNode, tmpl.Elements()[0].Kind())
}

func TestDeserializeEmptyPlaceholderNameStaysText(t *testing.T) {
	tree, err := cfgtree.Parse([]byte(`
arguments:
  "":
    optional: true
  x:
    optional: false
content:
  text: "{}"
  children:
    - "{x}"
`))
	require.NoError(t, err)

	tmpl, err := DefaultSerializer().Deserialize(tree)
	require.NoError(t, err)
	require.Equal(t, []string{"x:false"}, argSignature(tmpl))
	require.Equal(t, KindNode, tmpl.Elements()[0].Kind())
	require.Equal(t, "{}{x}", tmpl.ToText().Plain())
}

func TestDeserializeFlattensPlaceholderChildren(t *testing.T) {
	tree, err := cfgtree.Parse([]byte(`
arguments:
  b:
    optional: true
content:
  text: "A"
  children:
    - text: "{b}"
      color: red
      children:
        - nested
    - tail
`))
	require.NoError(t, err)

	tmpl, err := DefaultSerializer().Deserialize(tree)
	require.NoError(t, err)

	var kinds []Kind
	var texts []string
	for _, element := range tmpl.Elements() {
		kinds = append(kinds, element.Kind())
		switch element.Kind() {
		case KindArg:
			texts = append(texts, element.Arg().Name())
		case KindNode:
			texts = append(texts, element.Node().(text.Node).Plain())
		}
	}
	want := []Kind{KindNode, KindArg, KindNode, KindNode}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("element kinds mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"A", "b", "nested", "tail"}, texts)
	require.Equal(t, text.Red, tmpl.Arguments()["b"].Format().Color)
}

func TestDeserializeMissingOptionalDefaultsToRequired(t *testing.T) {
	tree, err := cfgtree.Parse([]byte(`
arguments:
  x: {}
content: "{x}"
`))
	require.NoError(t, err)

	tmpl, err := DefaultSerializer().Deserialize(tree)
	require.NoError(t, err)
	require.False(t, tmpl.Arguments()["x"].Optional())
}

func TestDeserializeErrors(t *testing.T) {
	t.Run("missing content", func(t *testing.T) {
		tree, err := cfgtree.Parse([]byte("arguments: {}\n"))
		require.NoError(t, err)
		_, err = DefaultSerializer().Deserialize(tree)
		require.ErrorIs(t, err, cfgtree.ErrMissing)
	})

	t.Run("bad optional flag", func(t *testing.T) {
		tree, err := cfgtree.Parse([]byte(`
arguments:
  x:
    optional: sometimes
content: "{x}"
`))
		require.NoError(t, err)
		_, err = DefaultSerializer().Deserialize(tree)
		var typeErr *cfgtree.TypeError
		require.True(t, errors.As(err, &typeErr))
		require.Equal(t, "arguments.x.optional", typeErr.Path)
	})

	t.Run("repeated placeholder keeps last format", func(t *testing.T) {
		tree, err := cfgtree.Parse([]byte(`
arguments:
  x:
    optional: true
content:
  text: "{x}"
  color: red
  children:
    - "{x}"
`))
		require.NoError(t, err)
		tmpl, err := DefaultSerializer().Deserialize(tree)
		require.NoError(t, err)
		require.Equal(t, text.ColorNone, tmpl.Arguments()["x"].Format().Color)
	})
}

type countingNodes struct {
	text.NodeSerializer
	serialized   int
	deserialized int
}

func (c *countingNodes) Serialize(n text.Node, dst *cfgtree.Node) error {
	c.serialized++
	return c.NodeSerializer.Serialize(n, dst)
}

func (c *countingNodes) Deserialize(src *cfgtree.Node) (text.Node, error) {
	c.deserialized++
	return c.NodeSerializer.Deserialize(src)
}

func TestSerializerUsesInjectedNodeSerializer(t *testing.T) {
	nodes := &countingNodes{}
	serializer := NewSerializer(nodes)
	tree := cfgtree.New()

	require.NoError(t, serializer.Serialize(MustOf("a", NewArg("b")), tree))
	_, err := serializer.Deserialize(tree)
	require.NoError(t, err)
	require.Equal(t, 1, nodes.serialized)
	require.Equal(t, 1, nodes.deserialized)
}
