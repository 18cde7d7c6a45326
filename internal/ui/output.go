package ui

import (
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// SetPlain disables colored output, e.g. for --plain.
func SetPlain(plain bool) {
	if plain {
		color.NoColor = true
	}
}

// Success prints a green status line to w.
func Success(w io.Writer, format string, args ...interface{}) {
	successColor.Fprintf(w, format+"\n", args...)
}

// Warning prints a yellow status line to w.
func Warning(w io.Writer, format string, args ...interface{}) {
	warningColor.Fprintf(w, format+"\n", args...)
}

// Error prints a red status line to w.
func Error(w io.Writer, format string, args ...interface{}) {
	errorColor.Fprintf(w, format+"\n", args...)
}
