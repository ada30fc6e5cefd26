// Package output provides colored terminal output helpers for iconkit.
package output

import (
	"os"

	"github.com/fatih/color"
)

var (
	// Entry status colors
	Added    = color.New(color.FgGreen)
	Matched  = color.New(color.FgCyan)
	Skipped  = color.New(color.FgYellow)
	Conflict = color.New(color.FgMagenta)
	Invalid  = color.New(color.FgRed)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header   = color.New(color.FgWhite, color.Bold)
	Drawable = color.New(color.FgBlue, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// StatusColor returns the appropriate color for an entry status
func StatusColor(status string) *color.Color {
	switch status {
	case "Added":
		return Added
	case "Matched":
		return Matched
	case "Skipped":
		return Skipped
	case "Conflict":
		return Conflict
	case "Invalid":
		return Invalid
	default:
		return color.New(color.Reset)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Printf("⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Printf("→ "+format+"\n", args...)
}

// Sprintf returns a colored string without printing
func Sprintf(c *color.Color, format string, args ...interface{}) string {
	return c.Sprintf(format, args...)
}

// Sprint returns a colored string without printing
func Sprint(c *color.Color, a ...interface{}) string {
	return c.Sprint(a...)
}

// Printf prints with color
func Printf(c *color.Color, format string, args ...interface{}) {
	c.Printf(format, args...)
}

// Println prints with color and newline
func Println(c *color.Color, a ...interface{}) {
	c.Println(a...)
}

// FormatStatus formats an entry status with appropriate color
func FormatStatus(status string) string {
	c := StatusColor(status)
	return c.Sprintf("[%s]", status)
}

// FormatDrawable formats a drawable name with color
func FormatDrawable(name string) string {
	return Drawable.Sprint(name)
}
