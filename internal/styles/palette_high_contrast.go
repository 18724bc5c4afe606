package styles

import "github.com/opencode-ai/textplate/internal/text"

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Text:      "#FFFFFF",
		TextMuted: "#C0C0C0",
		Accent:    "#00A2FF",
		Error:     "#FF4040",
	},
	Palette: map[text.Color]string{
		text.Black:       "#000000",
		text.DarkBlue:    "#3366FF",
		text.DarkGreen:   "#00CC44",
		text.DarkAqua:    "#00CCCC",
		text.DarkRed:     "#FF2020",
		text.DarkPurple:  "#CC44FF",
		text.Gold:        "#FFD400",
		text.Gray:        "#D0D0D0",
		text.DarkGray:    "#A0A0A0",
		text.Blue:        "#66A3FF",
		text.Green:       "#00FF5A",
		text.Aqua:        "#66FFFF",
		text.Red:         "#FF4040",
		text.LightPurple: "#FF80FF",
		text.Yellow:      "#FFFF00",
		text.White:       "#FFFFFF",
	},
}
