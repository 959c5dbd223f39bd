// Package console renders REPL and CLI output for a terminal.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/dx/internal/application"
	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

const clearScreen = "\x1b[2J\x1b[H"

type Options struct {
	// Spinner shows progress for Busy work on the error stream.
	Spinner bool
}

// Presenter writes results to out and notices, warnings and errors to errOut.
// Each stream has its own renderer so colour follows the stream it lands on.
type Presenter struct {
	out       io.Writer
	errOut    io.Writer
	styles    styles
	errStyles styles
	spinner   bool
}

var _ application.Presenter = (*Presenter)(nil)

func New(out, errOut io.Writer, opts Options) *Presenter {
	return newPresenter(out, errOut, lipgloss.NewRenderer(out), lipgloss.NewRenderer(errOut), opts)
}

func newPresenter(out, errOut io.Writer, outRenderer, errRenderer *lipgloss.Renderer, opts Options) *Presenter {
	return &Presenter{
		out:       out,
		errOut:    errOut,
		styles:    newStyles(outRenderer),
		errStyles: newStyles(errRenderer),
		spinner:   opts.Spinner,
	}
}

func (p *Presenter) Notice(msg string) {
	fmt.Fprintln(p.errOut, p.errStyles.notice.Render(msg))
}

// renderLines styles each line on its own; lipgloss pads multi-line blocks
// to a common width.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}

	return strings.Join(lines, "\n")
}

func (p *Presenter) Warn(msg string) {
	fmt.Fprintln(p.errOut, p.errStyles.warning.Render("warning:")+" "+msg)
}

func (p *Presenter) Error(err error) {
	var evalErr *ports.EvalError
	if errors.As(err, &evalErr) && evalErr.Kind != "" {
		prefix := strings.TrimSuffix(err.Error(), evalErr.Error())
		fmt.Fprintln(p.errOut, prefix+p.errStyles.errKind.Render(evalErr.Kind+":")+" "+renderLines(p.errStyles.err, evalErr.Message))
		return
	}

	fmt.Fprintln(p.errOut, p.errStyles.errKind.Render("error:")+" "+renderLines(p.errStyles.err, err.Error()))
}

func (p *Presenter) Result(display string) {
	fmt.Fprintln(p.out, renderLines(p.styles.result, display))
}

func (p *Presenter) Lines(lines []string) {
	if len(lines) == 0 {
		fmt.Fprintln(p.out, p.styles.empty.Render("(empty buffer)"))
		return
	}

	fmt.Fprintln(p.out, p.numbered(lines))
}

func (p *Presenter) History(view application.HistoryView) {
	if len(view.Entries) == 0 {
		fmt.Fprintln(p.out, p.styles.empty.Render("No executed buffers yet."))
		return
	}

	blocks := make([]string, 0, len(view.Entries))
	for i, entry := range view.Entries {
		label := fmt.Sprintf("[%d/%d]", i+1, len(view.Entries))
		if i == view.Pointer {
			label = p.styles.current.Render(label + " *")
		} else {
			label = p.styles.header.Render(label)
		}
		blocks = append(blocks, label+"\n"+p.numbered(entry))
	}

	fmt.Fprintln(p.out, strings.Join(blocks, "\n"))
}

func (p *Presenter) Help(entries []application.HelpEntry) {
	width := 0
	for _, entry := range entries {
		width = max(width, len(commandLabel(entry)))
	}

	lines := []string{
		p.styles.title.Render("dx commands"),
		p.styles.header.Render("Lines not starting with a command are added to the buffer; an empty line runs it."),
		"",
	}
	for _, entry := range entries {
		label := commandLabel(entry)
		padding := strings.Repeat(" ", width-len(label)+2)
		lines = append(lines, "  "+p.styles.command.Render(label)+padding+p.styles.usage.Render(entry.Summary))
	}
	lines = append(lines,
		"",
		p.styles.header.Render("Scripts see the piped data as input and loaded modules as imports.<name>."),
	)

	fmt.Fprintln(p.out, strings.Join(lines, "\n"))
}

func commandLabel(entry application.HelpEntry) string {
	label := "." + entry.Name
	if entry.Usage != "" {
		label += " " + entry.Usage
	}

	return label + " (." + entry.Alias + ")"
}

func (p *Presenter) Context(view application.ContextView) {
	sections := []string{
		p.styles.title.Render("input"),
		p.inputText(view),
		"",
		p.styles.title.Render("imports"),
	}

	if len(view.Imports) == 0 {
		sections = append(sections, p.styles.empty.Render("none"))
	} else {
		sections = append(sections, strings.Join(view.Imports, ", "))
	}

	sections = append(sections,
		"",
		p.styles.title.Render("session modules"),
		p.moduleLines(view.Session),
		"",
		p.styles.title.Render("saved modules"),
		p.moduleLines(view.Persistent),
	)

	fmt.Fprintln(p.out, strings.Join(sections, "\n"))
}

func (p *Presenter) inputText(view application.ContextView) string {
	if !view.HasInput {
		return p.styles.empty.Render("no piped input")
	}

	data, err := json.MarshalIndent(view.Input, "", "  ")
	if err != nil {
		return fmt.Sprint(view.Input)
	}

	return string(data)
}

// Modules prints a module map sorted by name.
func (p *Presenter) Modules(modules domain.ModuleMap) {
	fmt.Fprintln(p.out, p.moduleLines(modules))
}

func (p *Presenter) moduleLines(modules domain.ModuleMap) string {
	if len(modules) == 0 {
		return p.styles.empty.Render("none")
	}

	names := modules.Names()
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		padding := strings.Repeat(" ", width-len(name)+2)
		lines = append(lines, p.styles.name.Render(name)+padding+p.styles.url.Render(modules[name].URL))
	}

	return strings.Join(lines, "\n")
}

func (p *Presenter) Clear() {
	fmt.Fprint(p.out, clearScreen)
}

func (p *Presenter) Blank() {
	fmt.Fprintln(p.out)
}

func (p *Presenter) Busy(ctx context.Context, label string, fn func(context.Context) error) error {
	if !p.spinner {
		return fn(ctx)
	}

	return runBusySpinner(ctx, p.errOut, label, p.errStyles.spinner, fn)
}

func (p *Presenter) numbered(lines []string) string {
	width := len(fmt.Sprint(len(lines)))
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = p.styles.lineNo.Render(fmt.Sprintf("%*d", width, i+1)) + " " + line
	}

	return strings.Join(out, "\n")
}
