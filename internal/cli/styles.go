// Package cli holds the terminal styling shared by cantrip commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#8E44AD")
	accentColor  = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintTitle writes a styled title line.
func PrintTitle(w io.Writer, title string) {
	fmt.Fprintln(w, TitleStyle.Render(title))
}

// PrintKeyValue writes one "key: value" line.
func PrintKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	PrintTitle(w, "cantrip")
	PrintKeyValue(w, "Version", version)
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	FprintError(os.Stderr, message)
}

// FprintError writes a styled error message to w.
func FprintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}
