package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Option labels: bold cyan
	colorLabel = color.New(color.FgCyan, color.Bold)

	// Breaks between movies: dim
	colorBreak = color.New(color.FgWhite, color.Faint)

	// Notes about truncation or limits: yellow to make it pop
	colorNote = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Mandatory markers and confirmations: green
	colorSuccess = color.New(color.FgGreen)

	// Errors: red
	colorError = color.New(color.FgRed)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// separator returns a rule no wider than the terminal.
func separator() string {
	return strings.Repeat("─", min(termWidth(), 60))
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func styleLine(l Line) string {
	switch l.Kind {
	case LineLabel:
		return colorLabel.Sprint(l.Text)
	case LineBreak:
		return colorBreak.Sprint(l.Text)
	case LineNote:
		return colorNote.Sprint(l.Text)
	case LineHeader:
		return colorHeader.Sprint(l.Text)
	default:
		return l.Text
	}
}

// printLines writes lines to w with per-kind colouring.
func printLines(w io.Writer, lines []Line) {
	for _, l := range lines {
		fmt.Fprintln(w, styleLine(l))
	}
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatSuccess(s string) string {
	return colorSuccess.Sprint(s)
}

func formatError(s string) string {
	return colorError.Sprint(s)
}
