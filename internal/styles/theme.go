// Package styles provides the color theme and lipgloss styles for chatlog output.
package styles

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the palette used across the CLI.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color
}

var current = NewDefaultTheme()

// CurrentTheme returns the active theme.
func CurrentTheme() *Theme {
	return current
}

// SetTheme switches the active theme by name. Unknown names keep the default.
func SetTheme(name string) *Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		current = NewLightTheme()
	default:
		current = NewDefaultTheme()
	}
	return current
}

// ParseHex converts a "#rrggbb" string to a color. Invalid input yields black.
func ParseHex(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Styles is the set of lipgloss styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Box     lipgloss.Style
	MenuKey lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Prompt  lipgloss.Style
	ID      lipgloss.Style

	// Inline emphasis used by the message renderer.
	Bold       lipgloss.Style
	Italic     lipgloss.Style
	BoldItalic lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t *Theme) *Styles {
	base := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	bold := base.Bold(true).Foreground(t.Accent)
	return &Styles{
		Title:      base.Bold(true).Foreground(t.Primary),
		Box:        base.Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		MenuKey:    base.Bold(true).Foreground(t.Secondary),
		Text:       base.Foreground(t.FgBase),
		Muted:      base.Foreground(t.FgMuted),
		Label:      base.Foreground(t.FgMuted).Width(30),
		Success:    base.Bold(true).Foreground(t.Success),
		Error:      base.Bold(true).Foreground(t.Error),
		Warning:    base.Foreground(t.Warning),
		Prompt:     base.Bold(true).Foreground(t.Info),
		ID:         base.Foreground(t.FgSubtle),
		Bold:       bold,
		Italic:     base.Italic(true),
		BoldItalic: bold.Italic(true),
	}
}

// Plain removes every escape sequence from s.
func Plain(s string) string {
	return ansi.Strip(s)
}
