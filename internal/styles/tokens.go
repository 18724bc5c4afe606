// Package styles maps text formats onto terminal styles.
package styles

import (
	"strings"

	"github.com/opencode-ai/textplate/internal/text"
)

// ThemeTokens defines the semantic color roles used by CLI chrome.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Accent    string
	Error     string
}

// Theme bundles UI tokens with the hex value of every named text color.
type Theme struct {
	Name    string
	Tokens  ThemeTokens
	Palette map[text.Color]string
}

// Hex resolves a text color to a hex value. Hex literals pass through;
// ColorNone and unknown names resolve to "".
func (t Theme) Hex(color text.Color) string {
	if color == text.ColorNone {
		return ""
	}
	if strings.HasPrefix(string(color), "#") {
		return string(color)
	}
	return t.Palette[color]
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// LookupTheme returns the named theme.
func LookupTheme(name string) (Theme, bool) {
	theme, ok := Themes[strings.ToLower(strings.TrimSpace(name))]
	return theme, ok
}
