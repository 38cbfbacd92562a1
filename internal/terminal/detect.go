// Package terminal provides terminal detection utilities.
package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

var isTerminal = term.IsTerminal

// SupportsColor reports whether w is a terminal that should receive ANSI colors.
// NO_COLOR disables color regardless of the writer.
func SupportsColor(w io.Writer) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}
