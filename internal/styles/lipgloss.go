package styles

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/opencode-ai/textplate/internal/text"
)

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme   Theme
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
	Error  lipgloss.Style
}

// Renderer turns text nodes into terminal output.
type Renderer struct {
	theme  Theme
	color  bool
	lg     *lipgloss.Renderer
	styles Styles
}

// NewRenderer returns a renderer for theme. With color disabled every
// rendering is plain text.
func NewRenderer(theme Theme, color bool) *Renderer {
	lg := lipgloss.NewRenderer(io.Discard)
	if color {
		lg.SetColorProfile(termenv.TrueColor)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		theme:  theme,
		color:  color,
		lg:     lg,
		styles: buildStyles(lg, theme),
	}
}

// Styles returns the UI styles bound to this renderer.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render writes each content run of node with its effective format.
func (r *Renderer) Render(node text.Node) string {
	if !r.color {
		return node.Plain()
	}
	var sb strings.Builder
	node.Walk(text.FormatNone, func(n text.Node, format text.Format) {
		if n.Content() == "" {
			return
		}
		sb.WriteString(r.Style(format).Render(n.Content()))
	})
	return sb.String()
}

// Style converts a text format into a lipgloss style.
func (r *Renderer) Style(format text.Format) lipgloss.Style {
	style := r.lg.NewStyle()
	if hex := r.theme.Hex(format.Color); hex != "" {
		style = style.Foreground(lipgloss.Color(hex))
	}
	if format.Style.Bold.Enabled() {
		style = style.Bold(true)
	}
	if format.Style.Italic.Enabled() {
		style = style.Italic(true)
	}
	if format.Style.Underline.Enabled() {
		style = style.Underline(true)
	}
	if format.Style.Strikethrough.Enabled() {
		style = style.Strikethrough(true)
	}
	if format.Style.Obfuscated.Enabled() {
		style = style.Blink(true)
	}
	return style
}

func buildStyles(lg *lipgloss.Renderer, theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:  theme,
		Title:  lg.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Muted:  lg.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent: lg.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Error:  lg.NewStyle().Foreground(lipgloss.Color(tokens.Error)).Bold(true),
	}
}
