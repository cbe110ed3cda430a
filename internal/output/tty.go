package output

import (
	"os"

	"golang.org/x/term"
)

// IsStderrTTY reports whether stderr is a terminal.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
