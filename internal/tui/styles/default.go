package styles

// NewDefaultTheme creates the dark theme vela ships with.
func NewDefaultTheme() *Theme {
	return &Theme{
		Name:   "default",
		IsDark: true,

		// Teal/blue tones
		Primary:   ParseHex("#56b6c2"), // Cyan
		Secondary: ParseHex("#61afef"), // Soft blue
		Tertiary:  ParseHex("#3e4451"), // Dark gray-blue
		Accent:    ParseHex("#c678dd"), // Purple accent

		// Dark backgrounds
		BgBase:    ParseHex("#1e1e1e"),
		BgSubtle:  ParseHex("#252526"),
		BgOverlay: ParseHex("#2d2d30"),

		// Light foregrounds
		FgBase:   ParseHex("#abb2bf"),
		FgMuted:  ParseHex("#7f848e"),
		FgSubtle: ParseHex("#5c6370"),

		// Borders
		Border:      ParseHex("#3e4451"),
		BorderFocus: ParseHex("#56b6c2"),

		// Status colors
		Success: ParseHex("#98c379"), // Green
		Error:   ParseHex("#e06c75"), // Red
		Warning: ParseHex("#e5c07b"), // Yellow
		Info:    ParseHex("#61afef"), // Blue
	}
}
