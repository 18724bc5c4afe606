package texttemplate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/textplate/internal/text"
)

func TestApplyGreeting(t *testing.T) {
	tmpl := MustOf("Hello, ", NewArg("name").Optional(false), "!")

	out, err := tmpl.Apply(map[string]text.Element{"name": text.Of("World")})
	require.NoError(t, err)
	require.Equal(t, "Hello, World!", out.Plain())

	_, err = tmpl.Apply(map[string]text.Element{})
	var missing *MissingArgumentError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "name", missing.Name)
	require.ErrorIs(t, err, ErrTemplateArgument)
}

func TestApplyNilParams(t *testing.T) {
	_, err := MustOf(NewArg("x")).Apply(nil)
	var missing *MissingArgumentError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "x", missing.Name)
}

func TestApplyOptionalSuffix(t *testing.T) {
	base := text.Format{Color: text.Gold, Style: text.StyleItalic}
	tmpl := MustOf(NewArg("suffix").Optional(true).Format(base))

	out, err := tmpl.Apply(nil)
	require.NoError(t, err)
	require.True(t, out.IsEmpty())

	out, err = tmpl.Apply(map[string]text.Element{"suffix": text.Of("!")})
	require.NoError(t, err)
	require.Equal(t, "!", out.Plain())
	require.Equal(t, base, out.Format())
}

func TestApplyAllOptionalOmitsPlaceholders(t *testing.T) {
	tmpl := MustOf("[", NewArg("a").MarkOptional(), NewArg("b").MarkOptional(), "]")

	out, err := tmpl.Apply(map[string]text.Element{})
	require.NoError(t, err)
	require.Equal(t, "[]", out.Plain())
}

func TestApplyWrapsParamInArgFormat(t *testing.T) {
	tmpl := MustOf("Hi ", NewArg("who").Color(text.Aqua))
	param := text.NewBuilder("Steve").Style(text.StyleBold).Build()

	out, err := tmpl.Apply(map[string]text.Element{"who": param})
	require.NoError(t, err)

	want := nodeView{
		Content: "Hi ",
		Children: []nodeView{
			{
				Format: text.Format{Color: text.Aqua},
				Children: []nodeView{
					{Content: "Steve", Format: text.Format{Style: text.StyleBold}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, viewOf(out)); diff != "" {
		t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
	}

	var effective []text.Format
	out.Walk(text.FormatNone, func(node text.Node, format text.Format) {
		if node.Content() == "Steve" {
			effective = append(effective, format)
		}
	})
	require.Equal(t, []text.Format{{Color: text.Aqua, Style: text.StyleBold}}, effective)
}

func TestApplyRepeatedArg(t *testing.T) {
	tmpl := MustOf(NewArg("x"), "-", NewArg("x"))

	out, err := tmpl.Apply(map[string]text.Element{"x": text.Of("o")})
	require.NoError(t, err)
	require.Equal(t, "o-o", out.Plain())
}

func TestApplyIgnoresUnknownParams(t *testing.T) {
	out, err := MustOf("static").Apply(map[string]text.Element{"extra": text.Of("?")})
	require.NoError(t, err)
	require.Equal(t, "static", out.Plain())
	require.Empty(t, out.Children())
}

func TestApplyEmptyTemplate(t *testing.T) {
	out, err := Empty.Apply(nil)
	require.NoError(t, err)
	require.True(t, out.IsEmpty())
}

func TestApplyIsRepeatable(t *testing.T) {
	tmpl := MustOf("n=", NewArg("n"))
	for _, value := range []string{"1", "2", "3"} {
		out, err := tmpl.Apply(map[string]text.Element{"n": text.Of(value)})
		require.NoError(t, err)
		require.Equal(t, "n="+value, out.Plain())
	}
}
