// Package terminal provides the line readers behind the interactive loop.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/bnema/dx/internal/ports"
	"github.com/mattn/go-isatty"
)

// TTYPath is opened for interactive input when stdin carries piped data.
var TTYPath = "/dev/tty"

type Options struct {
	// HistoryPath stores line editing history between sessions. Empty
	// disables it.
	HistoryPath string
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Open returns the reader for an interactive session.
//
// A terminal on stdin gets full line editing. A piped stdin has already been
// consumed as input, so prompts are read from the controlling terminal
// instead. Any other reader is read line by line until it runs dry.
func Open(stdin io.Reader, stdout io.Writer, opts Options) (ports.LineReader, error) {
	if IsTerminal(stdin) {
		return NewLinerReader(opts.HistoryPath), nil
	}

	if _, isFile := stdin.(*os.File); isFile {
		tty, err := os.Open(TTYPath)
		if err != nil {
			return nil, fmt.Errorf("open %s for interactive input: %w", TTYPath, err)
		}
		return NewTTYReader(tty, stdout), nil
	}

	return NewStreamReader(stdin, stdout), nil
}
