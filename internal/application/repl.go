package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
)

const (
	PromptLive     = "dx> "
	PromptContinue = "... "
)

type ReplOptions struct {
	Reader    ports.LineReader
	Presenter Presenter
	Evaluator ports.Evaluator
	Importer  *Importer
	Modules   *ModuleService
	Namespace *domain.Namespace
	Buffer    *domain.Buffer
	ReadFile  func(string) ([]byte, error)
}

// Repl is the interactive loop. It is driven from a single goroutine; no
// step starts before the previous one has returned.
type Repl struct {
	reader    ports.LineReader
	presenter Presenter
	evaluator ports.Evaluator
	importer  *Importer
	modules   *ModuleService
	ns        *domain.Namespace
	buffer    *domain.Buffer
	readFile  func(string) ([]byte, error)
}

func NewRepl(opts ReplOptions) *Repl {
	if opts.Buffer == nil {
		opts.Buffer = domain.NewBuffer()
	}
	if opts.Namespace == nil {
		opts.Namespace = domain.NewNamespace(nil)
	}
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}

	return &Repl{
		reader:    opts.Reader,
		presenter: opts.Presenter,
		evaluator: opts.Evaluator,
		importer:  opts.Importer,
		modules:   opts.Modules,
		ns:        opts.Namespace,
		buffer:    opts.Buffer,
		readFile:  opts.ReadFile,
	}
}

// Run loads the mapped modules, then reads and handles lines until .exit or
// until the reader is closed for good. Interrupts and recoverable
// end-of-input never end the loop.
func (r *Repl) Run(ctx context.Context) error {
	if err := r.importer.BindAll(ctx, r.ns); err != nil {
		r.presenter.Error(err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.reader.ReadLine(r.Prompt())
		switch {
		case errors.Is(err, ports.ErrInterrupted):
			r.Interrupt()
			continue
		case errors.Is(err, ports.ErrInputClosed):
			r.EndOfInput()
			return nil
		case errors.Is(err, io.EOF):
			r.EndOfInput()
			continue
		case err != nil:
			return fmt.Errorf("read line: %w", err)
		}

		if exit := r.HandleLine(ctx, line); exit {
			return nil
		}
	}
}

func (r *Repl) Prompt() string {
	switch {
	case r.buffer.ViewingHistory():
		return fmt.Sprintf("[%d/%d]> ", r.buffer.Pointer()+1, r.buffer.HistoryLen())
	case r.buffer.Len() > 0:
		return PromptContinue
	default:
		return PromptLive
	}
}

func (r *Repl) Buffer() *domain.Buffer {
	return r.buffer
}

func (r *Repl) Interrupt() {
	if r.buffer.Len() > 0 || r.buffer.ViewingHistory() {
		r.buffer.Clear()
		r.presenter.Notice("Buffer cleared.")
		return
	}

	r.presenter.Blank()
}

func (r *Repl) EndOfInput() {
	if r.buffer.Len() > 0 {
		r.buffer.Clear()
		r.presenter.Notice("Buffer cleared.")
		return
	}

	r.presenter.Blank()
}

// HandleLine processes one line of input and reports whether the loop should
// end.
func (r *Repl) HandleLine(ctx context.Context, line string) (exit bool) {
	if strings.TrimSpace(line) == "" {
		if r.buffer.Len() > 0 {
			r.run(ctx)
		}
		return false
	}

	cmd, isCommand, err := ParseCommand(line)
	if err != nil {
		r.presenter.Error(err)
		return false
	}
	if !isCommand {
		if leftHistory := r.buffer.AppendLine(line); leftHistory {
			r.presenter.Notice("Left history view; editing a new buffer.")
		}
		return false
	}

	return r.dispatch(ctx, cmd)
}

func (r *Repl) dispatch(ctx context.Context, cmd Command) (exit bool) {
	switch cmd.Kind {
	case CommandExit:
		return true
	case CommandHelp:
		r.presenter.Help(HelpEntries())
	case CommandRun:
		r.run(ctx)
	case CommandDo:
		r.doFile(ctx, cmd.Args)
	case CommandImport:
		r.importModule(ctx, cmd.Args)
	case CommandClear:
		r.presenter.Clear()
	case CommandContext:
		r.presenter.Context(r.contextView(ctx))
	case CommandPrev:
		if err := r.buffer.NavigatePrev(); err != nil {
			r.presenter.Notice(noticeText(err))
			return false
		}
		r.showBuffer()
	case CommandNext:
		backToLive, err := r.buffer.NavigateNext()
		if err != nil {
			r.presenter.Notice(noticeText(err) + "; use .prev first")
			return false
		}
		if backToLive {
			r.presenter.Notice("Back to an empty live buffer.")
			return false
		}
		r.showBuffer()
	case CommandLoad:
		r.loadEntry(cmd.Args)
	case CommandReset:
		r.buffer.Clear()
		r.presenter.Notice("Buffer cleared.")
	case CommandHistory:
		r.presenter.History(r.historyView())
	case CommandClearHistory:
		r.buffer.ClearHistory()
		r.presenter.Notice("History cleared.")
	case CommandShow:
		r.showBuffer()
	default:
		r.presenter.Error(fmt.Errorf("%w .%s", ErrUnknownCommand, cmd.Name))
	}

	return false
}

func (r *Repl) run(ctx context.Context) {
	code, err := r.buffer.Execute()
	if err != nil {
		r.presenter.Notice(noticeText(err) + "; nothing to run")
		return
	}

	r.evaluate(ctx, code)
}

func (r *Repl) evaluate(ctx context.Context, code string) {
	result, err := r.evaluator.Evaluate(ctx, code, r.ns)
	if err != nil {
		r.presenter.Error(err)
		return
	}

	if result.Display != "" {
		r.presenter.Result(result.Display)
	}
}

func (r *Repl) doFile(ctx context.Context, args string) {
	path := strings.Trim(args, `"'`)
	if path == "" {
		r.presenter.Error(usageError("do", "<path>"))
		return
	}

	data, err := r.readFile(path)
	if err != nil {
		r.presenter.Error(fileAccessError(path, err))
		return
	}

	r.evaluate(ctx, string(data))
}

func (r *Repl) importModule(ctx context.Context, args string) {
	req, err := ParseImportArgs(args)
	if err != nil {
		r.presenter.Error(err)
		return
	}

	var result AddResult
	err = r.presenter.Busy(ctx, fmt.Sprintf("Importing %s...", req.Specifier), func(ctx context.Context) error {
		var importErr error
		result, importErr = r.importer.Import(ctx, r.ns, req)
		return importErr
	})

	if result.Replaced {
		r.presenter.Warn(fmt.Sprintf("%s was mapped to %s; now %s", result.Entry.Name, result.Previous.URL, result.Entry.URL))
	}
	if req.Persist && result.Entry.Name != "" && !result.Saved {
		r.presenter.Warn("Module map could not be saved; the mapping lasts for this session only.")
	}
	if err != nil {
		r.presenter.Error(err)
		return
	}

	r.presenter.Notice(fmt.Sprintf("Imported %s as imports.%s", result.Entry.URL, result.Entry.Name))
}

func (r *Repl) loadEntry(args string) {
	index, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		r.presenter.Error(usageError("load", "<n>"))
		return
	}

	if err := r.buffer.LoadByIndex(index); err != nil {
		r.presenter.Error(fmt.Errorf("%w: %d (history holds %d entries)", err, index, r.buffer.HistoryLen()))
		return
	}

	r.showBuffer()
}

func (r *Repl) showBuffer() {
	r.presenter.Lines(r.buffer.Lines())
}

func (r *Repl) historyView() HistoryView {
	entries := make([][]string, 0, r.buffer.HistoryLen())
	for i := 0; i < r.buffer.HistoryLen(); i++ {
		entry, _ := r.buffer.HistoryEntry(i)
		entries = append(entries, entry)
	}

	return HistoryView{Entries: entries, Pointer: r.buffer.Pointer()}
}

func (r *Repl) contextView(ctx context.Context) ContextView {
	return ContextView{
		Input:      r.ns.Input(),
		HasInput:   r.ns.HasInput(),
		Imports:    r.ns.ImportNames(),
		Session:    r.modules.Session(),
		Persistent: r.modules.LoadPersistent(ctx),
	}
}

func noticeText(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}

	return strings.ToUpper(msg[:1]) + msg[1:]
}
