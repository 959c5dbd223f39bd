package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/bnema/dx/internal/ports"
)

type readResult struct {
	line string
	err  error
}

// StreamReader reads lines from a plain stream without line editing.
//
// A TTY stream survives end-of-input (Ctrl-D on an empty line) and turns
// SIGINT into ports.ErrInterrupted. Any other stream reports
// ports.ErrInputClosed once it is exhausted.
type StreamReader struct {
	out         io.Writer
	closer      io.Closer
	interactive bool
	results     chan readResult
	interrupts  chan os.Signal
	done        chan struct{}
	closeOnce   sync.Once
	closeErr    error
}

// NewTTYReader reads prompts from tty and owns it: Close closes tty.
func NewTTYReader(tty *os.File, out io.Writer) *StreamReader {
	r := newStreamReader(tty, out, true)
	r.closer = tty
	r.interrupts = make(chan os.Signal, 1)
	signal.Notify(r.interrupts, os.Interrupt)

	return r
}

func NewStreamReader(in io.Reader, out io.Writer) *StreamReader {
	return newStreamReader(in, out, false)
}

func newStreamReader(in io.Reader, out io.Writer, interactive bool) *StreamReader {
	r := &StreamReader{
		out:         out,
		interactive: interactive,
		results:     make(chan readResult),
		done:        make(chan struct{}),
	}
	go r.pump(bufio.NewReader(in))

	return r
}

func (r *StreamReader) pump(in *bufio.Reader) {
	for {
		line, err := in.ReadString('\n')
		result := readResult{line: strings.TrimRight(line, "\r\n")}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && line != "":
			// The final unterminated line comes first; the EOF is seen on the
			// next read.
		case errors.Is(err, io.EOF) && r.interactive:
			result.err = io.EOF
		case errors.Is(err, io.EOF):
			result.err = ports.ErrInputClosed
		default:
			result.err = err
		}

		if result.err != nil && !errors.Is(result.err, io.EOF) {
			// Terminal errors are repeated to every later read.
			for {
				select {
				case r.results <- result:
				case <-r.done:
					return
				}
			}
		}

		select {
		case r.results <- result:
		case <-r.done:
			return
		}
	}
}

func (r *StreamReader) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(r.out, prompt); err != nil {
		return "", err
	}

	select {
	case <-r.done:
		return "", ports.ErrInputClosed
	case result := <-r.results:
		return result.line, result.err
	case <-r.interrupts:
		fmt.Fprintln(r.out)
		return "", ports.ErrInterrupted
	}
}

// Close is safe to call more than once and from another goroutine.
func (r *StreamReader) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		if r.interrupts != nil {
			signal.Stop(r.interrupts)
		}
		if r.closer != nil {
			r.closeErr = r.closer.Close()
		}
	})

	return r.closeErr
}
