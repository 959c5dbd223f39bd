package application

import (
	"context"

	"github.com/bnema/dx/internal/domain"
)

type ContextView struct {
	Input      any
	HasInput   bool
	Imports    []string
	Session    domain.ModuleMap
	Persistent domain.ModuleMap
}

type HistoryView struct {
	Entries [][]string
	Pointer int
}

// Presenter renders everything the REPL shows to the user.
type Presenter interface {
	Notice(msg string)
	Warn(msg string)
	Error(err error)
	Result(display string)
	Lines(lines []string)
	History(view HistoryView)
	Help(entries []HelpEntry)
	Context(view ContextView)
	Clear()
	Blank()
	// Busy runs fn while showing label as progress.
	Busy(ctx context.Context, label string, fn func(context.Context) error) error
}
