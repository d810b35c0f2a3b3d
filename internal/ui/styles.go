package ui

import "fmt"

// ANSI256 color codes for the CLI's output vocabulary.
const (
	colorAccent  = 74  // blue: campaign and category names
	colorSuccess = 114 // green: applied transitions
	colorWarn    = 179 // amber: pending state
	colorErr     = 167 // red
	colorMuted   = 245 // medium gray: timestamps, hints
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// Accent returns s in the accent (blue) color.
func Accent(s string) string { return render(colorAccent, s) }

// Success returns s in green, for applied transitions.
func Success(s string) string { return render(colorSuccess, s) }

// Warn returns s in amber, for pending or degraded state.
func Warn(s string) string { return render(colorWarn, s) }

// Error returns s in red.
func Error(s string) string { return render(colorErr, s) }

// Muted returns s in the muted (gray) color.
func Muted(s string) string { return render(colorMuted, s) }

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
