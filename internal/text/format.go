// Package text provides an immutable formatted text tree and its builder.
package text

import (
	"fmt"
	"strings"
)

// Color is a named color, a #RRGGBB literal, or ColorNone to inherit.
type Color string

// ColorNone leaves the color unset so it is inherited from the parent node.
const ColorNone Color = ""

const (
	Black       Color = "black"
	DarkBlue    Color = "dark_blue"
	DarkGreen   Color = "dark_green"
	DarkAqua    Color = "dark_aqua"
	DarkRed     Color = "dark_red"
	DarkPurple  Color = "dark_purple"
	Gold        Color = "gold"
	Gray        Color = "gray"
	DarkGray    Color = "dark_gray"
	Blue        Color = "blue"
	Green       Color = "green"
	Aqua        Color = "aqua"
	Red         Color = "red"
	LightPurple Color = "light_purple"
	Yellow      Color = "yellow"
	White       Color = "white"
)

// NamedColors lists the named colors in palette order.
var NamedColors = []Color{
	Black, DarkBlue, DarkGreen, DarkAqua, DarkRed, DarkPurple, Gold, Gray,
	DarkGray, Blue, Green, Aqua, Red, LightPurple, Yellow, White,
}

// ParseColor validates a color name or hex literal.
func ParseColor(value string) (Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ColorNone, nil
	}
	if strings.HasPrefix(value, "#") {
		if !isHexColor(value) {
			return ColorNone, fmt.Errorf("invalid hex color %q", value)
		}
		return Color(value), nil
	}
	for _, named := range NamedColors {
		if string(named) == value {
			return named, nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", value)
}

func isHexColor(value string) bool {
	if len(value) != 7 {
		return false
	}
	for _, r := range value[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}

// Toggle is a tri-state style flag.
type Toggle int8

const (
	Unset Toggle = iota
	On
	Off
)

// ToggleOf converts a bool into a set toggle.
func ToggleOf(value bool) Toggle {
	if value {
		return On
	}
	return Off
}

// IsSet reports whether the toggle carries a value.
func (t Toggle) IsSet() bool {
	return t != Unset
}

// Enabled reports whether the toggle is explicitly on.
func (t Toggle) Enabled() bool {
	return t == On
}

func (t Toggle) or(parent Toggle) Toggle {
	if t.IsSet() {
		return t
	}
	return parent
}

// Style holds the text decorations of a node.
type Style struct {
	Bold          Toggle
	Italic        Toggle
	Underline     Toggle
	Strikethrough Toggle
	Obfuscated    Toggle
}

// StyleNone leaves every decoration unset.
var StyleNone = Style{}

// Bold, Italic and friends are single-decoration styles usable with Builder.Style.
var (
	StyleBold          = Style{Bold: On}
	StyleItalic        = Style{Italic: On}
	StyleUnderline     = Style{Underline: On}
	StyleStrikethrough = Style{Strikethrough: On}
	StyleObfuscated    = Style{Obfuscated: On}
	StyleReset         = Style{Bold: Off, Italic: Off, Underline: Off, Strikethrough: Off, Obfuscated: Off}
)

// And layers other over s; set toggles in other win.
func (s Style) And(other Style) Style {
	return other.Merge(s)
}

// Merge fills unset toggles of s from parent.
func (s Style) Merge(parent Style) Style {
	return Style{
		Bold:          s.Bold.or(parent.Bold),
		Italic:        s.Italic.or(parent.Italic),
		Underline:     s.Underline.or(parent.Underline),
		Strikethrough: s.Strikethrough.or(parent.Strikethrough),
		Obfuscated:    s.Obfuscated.or(parent.Obfuscated),
	}
}

// IsEmpty reports whether no toggle is set.
func (s Style) IsEmpty() bool {
	return s == StyleNone
}

// Format is the color and style of a node.
type Format struct {
	Color Color
	Style Style
}

// FormatNone is the format with nothing set.
var FormatNone = Format{}

// WithColor returns a copy of f using color.
func (f Format) WithColor(color Color) Format {
	f.Color = color
	return f
}

// WithStyle returns a copy of f with style layered over its current style.
func (f Format) WithStyle(style Style) Format {
	f.Style = f.Style.And(style)
	return f
}

// Merge fills every unset attribute of f from parent.
func (f Format) Merge(parent Format) Format {
	color := f.Color
	if color == ColorNone {
		color = parent.Color
	}
	return Format{Color: color, Style: f.Style.Merge(parent.Style)}
}

// IsEmpty reports whether nothing is set.
func (f Format) IsEmpty() bool {
	return f == FormatNone
}
