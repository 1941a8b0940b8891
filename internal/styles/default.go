package styles

// NewDefaultTheme creates the dark theme used by chatlog.
func NewDefaultTheme() *Theme {
	return &Theme{
		Name:   "default",
		IsDark: true,

		Primary:   ParseHex("#61afef"), // Soft blue
		Secondary: ParseHex("#56b6c2"), // Cyan
		Accent:    ParseHex("#e5c07b"), // Warm yellow, used for bold fragments

		FgBase:   ParseHex("#abb2bf"),
		FgMuted:  ParseHex("#7f848e"),
		FgSubtle: ParseHex("#5c6370"),

		Border: ParseHex("#3e4451"),

		Success: ParseHex("#98c379"),
		Error:   ParseHex("#e06c75"),
		Warning: ParseHex("#d19a66"),
		Info:    ParseHex("#61afef"),
	}
}

// NewLightTheme creates a theme for light terminal backgrounds.
func NewLightTheme() *Theme {
	return &Theme{
		Name:   "light",
		IsDark: false,

		Primary:   ParseHex("#0184bc"),
		Secondary: ParseHex("#0997b3"),
		Accent:    ParseHex("#a626a4"),

		FgBase:   ParseHex("#383a42"),
		FgMuted:  ParseHex("#696c77"),
		FgSubtle: ParseHex("#a0a1a7"),

		Border: ParseHex("#d4d4d4"),

		Success: ParseHex("#50a14f"),
		Error:   ParseHex("#e45649"),
		Warning: ParseHex("#c18401"),
		Info:    ParseHex("#4078f2"),
	}
}
