package ports

import "errors"

var (
	// ErrInterrupted is returned by ReadLine when the user cancels the
	// current line.
	ErrInterrupted = errors.New("interrupted")
	// ErrInputClosed is returned once the underlying input can never yield
	// another line. A recoverable end-of-input is reported as io.EOF instead.
	ErrInputClosed = errors.New("input closed")
)

type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}
