package application

import (
	"context"

	"github.com/bnema/dx/internal/ports"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type recordingPresenter struct {
	notices   []string
	warnings  []string
	results   []string
	errors    []error
	lines     [][]string
	histories []HistoryView
	contexts  []ContextView
	busy      []string
	helps     int
	clears    int
	blanks    int
}

func (p *recordingPresenter) Notice(msg string)        { p.notices = append(p.notices, msg) }
func (p *recordingPresenter) Warn(msg string)          { p.warnings = append(p.warnings, msg) }
func (p *recordingPresenter) Error(err error)          { p.errors = append(p.errors, err) }
func (p *recordingPresenter) Result(display string)    { p.results = append(p.results, display) }
func (p *recordingPresenter) Lines(lines []string)     { p.lines = append(p.lines, lines) }
func (p *recordingPresenter) History(view HistoryView) { p.histories = append(p.histories, view) }
func (p *recordingPresenter) Help([]HelpEntry)         { p.helps++ }
func (p *recordingPresenter) Context(view ContextView) { p.contexts = append(p.contexts, view) }
func (p *recordingPresenter) Clear()                   { p.clears++ }
func (p *recordingPresenter) Blank()                   { p.blanks++ }

func (p *recordingPresenter) Busy(ctx context.Context, label string, fn func(context.Context) error) error {
	p.busy = append(p.busy, label)
	return fn(ctx)
}

type readStep struct {
	line string
	err  error
}

// scriptedReader replays steps and reports ErrInputClosed once they run out.
type scriptedReader struct {
	steps   []readStep
	prompts []string
	closed  bool
}

func (r *scriptedReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.steps) == 0 {
		return "", ports.ErrInputClosed
	}

	step := r.steps[0]
	r.steps = r.steps[1:]
	return step.line, step.err
}

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

func lines(values ...string) []readStep {
	steps := make([]readStep, 0, len(values))
	for _, value := range values {
		steps = append(steps, readStep{line: value})
	}
	return steps
}
