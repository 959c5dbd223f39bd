package goja

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
	goja "github.com/dop251/goja"
)

type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Fetcher *Fetcher
	// LoadTimeout bounds fetching and initialising one module. Zero means no
	// limit beyond the caller's context.
	LoadTimeout time.Duration
}

// Engine evaluates JavaScript in one long-lived goja runtime, so bindings
// made by one evaluation are visible to the next. It is not safe for
// concurrent use.
type Engine struct {
	vm      *goja.Runtime
	stdout  io.Writer
	stderr  io.Writer
	fetcher *Fetcher
	timeout time.Duration
	modules map[string]goja.Value
	ns      *domain.Namespace
}

var (
	_ ports.Evaluator    = (*Engine)(nil)
	_ ports.ModuleLoader = (*Engine)(nil)
)

func NewEngine(opts Options) (*Engine, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Fetcher == nil {
		opts.Fetcher = NewFetcher(nil, Registries{})
	}

	e := &Engine{
		vm:      goja.New(),
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
		fetcher: opts.Fetcher,
		timeout: opts.LoadTimeout,
		modules: map[string]goja.Value{},
	}
	if err := e.setupGlobals(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) setupGlobals() error {
	stdout := e.printer(e.stdout)
	stderr := e.printer(e.stderr)

	if err := e.vm.Set("print", stdout); err != nil {
		return fmt.Errorf("failed to set print: %w", err)
	}

	console := e.vm.NewObject()
	for name, fn := range map[string]func(goja.FunctionCall) goja.Value{
		"log":   stdout,
		"info":  stdout,
		"debug": stdout,
		"warn":  stderr,
		"error": stderr,
	} {
		if err := console.Set(name, fn); err != nil {
			return fmt.Errorf("failed to set console.%s: %w", name, err)
		}
	}
	if err := e.vm.Set("console", console); err != nil {
		return fmt.Errorf("failed to set console: %w", err)
	}

	return e.vm.Set("input", goja.Undefined())
}

func (e *Engine) printer(w io.Writer) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			if s, ok := arg.Export().(string); ok {
				args[i] = s
				continue
			}
			args[i] = e.display(arg)
		}
		fmt.Fprintln(w, strings.Join(args, " "))
		return goja.Undefined()
	}
}

func (e *Engine) Evaluate(ctx context.Context, code string, ns *domain.Namespace) (ports.EvalResult, error) {
	if err := e.bindNamespace(ns); err != nil {
		return ports.EvalResult{}, err
	}

	stop := e.watch(ctx)
	val, err := e.vm.RunString(code)
	stop()
	if err != nil {
		return ports.EvalResult{}, toEvalError(err)
	}

	if val == nil || goja.IsUndefined(val) {
		return ports.EvalResult{}, nil
	}

	return ports.EvalResult{
		Value:   val.Export(),
		Display: e.display(val),
	}, nil
}

// bindNamespace exposes ns as the input and imports globals. Input is bound
// once per namespace; imports are rebuilt on every call.
func (e *Engine) bindNamespace(ns *domain.Namespace) error {
	if ns == nil {
		ns = domain.NewNamespace(nil)
	}

	if ns != e.ns {
		input := goja.Undefined()
		if ns.HasInput() {
			input = e.vm.ToValue(ns.Input())
		}
		if err := e.vm.Set("input", input); err != nil {
			return fmt.Errorf("failed to set input: %w", err)
		}
		e.ns = ns
	}

	imports := e.vm.NewObject()
	for name, module := range ns.Imports() {
		if err := imports.Set(name, module); err != nil {
			return fmt.Errorf("failed to set imports.%s: %w", name, err)
		}
	}
	if err := e.vm.Set("imports", imports); err != nil {
		return fmt.Errorf("failed to set imports: %w", err)
	}

	return nil
}

// watch interrupts the runtime when ctx ends. The returned stop func must be
// called once the script returns; it clears any pending interrupt.
func (e *Engine) watch(ctx context.Context) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	return func() {
		close(done)
		<-exited
		e.vm.ClearInterrupt()
	}
}

func toEvalError(err error) *ports.EvalError {
	switch x := err.(type) {
	case *goja.InterruptedError:
		return &ports.EvalError{Kind: "Interrupted", Message: fmt.Sprint(x.Value())}
	case *goja.Exception:
		return exceptionError(x)
	default:
		return &ports.EvalError{Kind: "Error", Message: err.Error()}
	}
}

func exceptionError(ex *goja.Exception) *ports.EvalError {
	obj, ok := ex.Value().(*goja.Object)
	if !ok {
		value := ex.Value()
		if value == nil {
			return &ports.EvalError{Kind: "Uncaught", Message: ex.Error()}
		}
		return &ports.EvalError{Kind: "Uncaught", Message: value.String()}
	}

	kind := "Error"
	if name := obj.Get("name"); name != nil && !goja.IsUndefined(name) {
		kind = name.String()
	}
	message := ""
	if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
		message = msg.String()
	}
	// Compile errors carry their kind inside the message as well.
	message = strings.TrimPrefix(message, kind+": ")

	return &ports.EvalError{Kind: kind, Message: message}
}
