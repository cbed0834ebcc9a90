// Package theme provides color themes for the TUI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string
	Bg          string // Base background
	BgHighlight string // Panels
	BgSelection string // Selected option
	Fg          string // Primary foreground
	FgMuted     string // Help text, breaks
	Accent      string // Title, borders
	Movie       string // Movie titles
	Break       string // Break lines
	Mandatory   string // Mandatory markers, confirmations
	Warning     string // Truncation notes, errors
}

// Catppuccin flavours.
var builtin = map[string]Theme{
	"mocha": {
		Name:        "mocha",
		Bg:          "#1e1e2e",
		BgHighlight: "#313244",
		BgSelection: "#45475a",
		Fg:          "#cdd6f4",
		FgMuted:     "#7f849c",
		Accent:      "#cba6f7",
		Movie:       "#89b4fa",
		Break:       "#fab387",
		Mandatory:   "#a6e3a1",
		Warning:     "#f9e2af",
	},
	"macchiato": {
		Name:        "macchiato",
		Bg:          "#24273a",
		BgHighlight: "#363a4f",
		BgSelection: "#494d64",
		Fg:          "#cad3f5",
		FgMuted:     "#8087a2",
		Accent:      "#c6a0f6",
		Movie:       "#8aadf4",
		Break:       "#f5a97f",
		Mandatory:   "#a6da95",
		Warning:     "#eed49f",
	},
	"frappe": {
		Name:        "frappe",
		Bg:          "#303446",
		BgHighlight: "#414559",
		BgSelection: "#51576d",
		Fg:          "#c6d0f5",
		FgMuted:     "#838ba7",
		Accent:      "#ca9ee6",
		Movie:       "#8caaee",
		Break:       "#ef9f76",
		Mandatory:   "#a6d189",
		Warning:     "#e5c890",
	},
	"latte": {
		Name:        "latte",
		Bg:          "#eff1f5",
		BgHighlight: "#ccd0da",
		BgSelection: "#bcc0cc",
		Fg:          "#4c4f69",
		FgMuted:     "#8c8fa1",
		Accent:      "#8839ef",
		Movie:       "#1e66f5",
		Break:       "#fe640b",
		Mandatory:   "#40a02b",
		Warning:     "#df8e1d",
	},
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load returns a theme by name.
// Falls back to mocha if the theme is not found.
func Load(name string) *Theme {
	t, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		t = builtin["mocha"]
	}
	return &t
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	_, ok := builtin[strings.ToLower(name)]
	return ok
}

// IsLight reports whether the theme has a light background.
func (t *Theme) IsLight() bool {
	c, err := colorful.Hex(t.Bg)
	if err != nil {
		return false
	}
	l, _, _ := c.Lab()
	return l > 0.5
}
