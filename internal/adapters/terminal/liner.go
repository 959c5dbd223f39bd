package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/dx/internal/ports"
	"github.com/peterh/liner"
)

// LinerReader reads from a terminal stdin with line editing and history.
type LinerReader struct {
	state       *liner.State
	historyPath string
}

func NewLinerReader(historyPath string) *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}

	return &LinerReader{state: state, historyPath: historyPath}
}

func (r *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ports.ErrInterrupted
	case errors.Is(err, io.EOF):
		return "", io.EOF
	case err != nil:
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}

	return line, nil
}

// Close restores the terminal and writes the history file.
func (r *LinerReader) Close() error {
	var errs []error
	if r.historyPath != "" {
		errs = append(errs, r.writeHistory())
	}
	errs = append(errs, r.state.Close())

	return errors.Join(errs...)
}

func (r *LinerReader) writeHistory() error {
	if err := os.MkdirAll(filepath.Dir(r.historyPath), 0o700); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	f, err := os.OpenFile(r.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	if _, err := r.state.WriteHistory(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write history file: %w", err)
	}

	return f.Close()
}
