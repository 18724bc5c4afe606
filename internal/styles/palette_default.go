package styles

import "github.com/opencode-ai/textplate/internal/text"

// DefaultTheme is the baseline palette.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Text:      "#E6EDF3",
		TextMuted: "#8B9AAE",
		Accent:    "#5B8DEF",
		Error:     "#F85149",
	},
	Palette: map[text.Color]string{
		text.Black:       "#000000",
		text.DarkBlue:    "#0000AA",
		text.DarkGreen:   "#00AA00",
		text.DarkAqua:    "#00AAAA",
		text.DarkRed:     "#AA0000",
		text.DarkPurple:  "#AA00AA",
		text.Gold:        "#FFAA00",
		text.Gray:        "#AAAAAA",
		text.DarkGray:    "#555555",
		text.Blue:        "#5555FF",
		text.Green:       "#55FF55",
		text.Aqua:        "#55FFFF",
		text.Red:         "#FF5555",
		text.LightPurple: "#FF55FF",
		text.Yellow:      "#FFFF55",
		text.White:       "#FFFFFF",
	},
}
