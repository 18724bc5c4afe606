package texttemplate

import "github.com/opencode-ai/textplate/internal/text"

// Arg is a named placeholder replaced by a parameter in Template.Apply.
type Arg struct {
	name     string
	optional bool
	format   text.Format
}

// Name returns the name matched against incoming parameters.
func (a Arg) Name() string {
	return a.name
}

// Optional reports whether a missing parameter is allowed.
func (a Arg) Optional() bool {
	return a.optional
}

// Format returns the base format applied under the parameter.
func (a Arg) Format() text.Format {
	return a.format
}

// Equal compares name and optional flag. Format is not part of identity.
func (a Arg) Equal(other Arg) bool {
	return a.name == other.name && a.optional == other.optional
}

// ToText renders the placeholder with the default delimiters.
func (a Arg) ToText() text.Node {
	return a.placeholder(DefaultOpenArg, DefaultCloseArg)
}

func (a Arg) placeholder(openArg, closeArg string) text.Node {
	return text.NewBuilder(openArg + a.name + closeArg).Format(a.format).Build()
}

// ArgBuilder accumulates the attributes of an Arg.
type ArgBuilder struct {
	name     string
	optional bool
	format   text.Format
}

// NewArg starts a required, unformatted Arg called name.
func NewArg(name string) *ArgBuilder {
	return &ArgBuilder{name: name}
}

// Optional sets whether the Arg may be missing (false by default).
func (b *ArgBuilder) Optional(optional bool) *ArgBuilder {
	b.optional = optional
	return b
}

// MarkOptional is Optional(true).
func (b *ArgBuilder) MarkOptional() *ArgBuilder {
	return b.Optional(true)
}

// Format sets the base format used when the parameter brings none.
func (b *ArgBuilder) Format(format text.Format) *ArgBuilder {
	b.format = format
	return b
}

// Color sets the base color.
func (b *ArgBuilder) Color(color text.Color) *ArgBuilder {
	b.format = b.format.WithColor(color)
	return b
}

// Style layers style over the base style.
func (b *ArgBuilder) Style(style text.Style) *ArgBuilder {
	b.format = b.format.WithStyle(style)
	return b
}

// Build returns the Arg. Templates build any ArgBuilder they are given, so
// calling this is only needed to keep the Arg around.
func (b *ArgBuilder) Build() Arg {
	return Arg{name: b.name, optional: b.optional, format: b.format}
}
