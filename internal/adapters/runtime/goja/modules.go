package goja

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/bnema/dx/internal/ports"
	goja "github.com/dop251/goja"
)

// ErrESMUnsupported is returned when a module source is an ES module. Only
// CommonJS and UMD sources can be evaluated.
var ErrESMUnsupported = errors.New("ES modules are not supported")

var esmStatement = regexp.MustCompile(`(?m)^\s*(?:import(?:\s+[\w$*{]|\s*[{*"'])|export(?:\s*[*{]|\s+(?:default|const|let|var|function|class|async)\b))`)

// Load fetches specifier and evaluates it as a CommonJS module, returning its
// module.exports. Modules are cached per resolved location for the lifetime of
// the engine. Only self-contained CommonJS or UMD sources are supported.
func (e *Engine) Load(ctx context.Context, specifier string) (any, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	stop := e.watch(ctx)
	defer stop()

	exports, err := e.require(ctx, specifier)
	if err != nil {
		return nil, err
	}

	return exports, nil
}

func (e *Engine) require(ctx context.Context, specifier string) (goja.Value, error) {
	location, err := e.fetcher.Location(specifier)
	if err != nil {
		return nil, err
	}

	if cached, ok := e.modules[location]; ok {
		return cached, nil
	}

	source, err := e.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	module := e.vm.NewObject()
	exports := e.vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, err
	}
	// Cycles see the partially initialised exports, as in Node.
	e.modules[location] = exports

	exported, err := e.runModule(ctx, location, source, module, exports)
	if err != nil {
		delete(e.modules, location)
		if isESMSource(err, source) {
			return nil, esmError(specifier, location)
		}
		return nil, fmt.Errorf("evaluate module %s: %w", location, err)
	}

	e.modules[location] = exported
	return exported, nil
}

func (e *Engine) runModule(ctx context.Context, location, source string, module, exports *goja.Object) (goja.Value, error) {
	wrapped := "(function (exports, module, require) {\n" + source + "\n})"
	fnValue, err := e.vm.RunScript(location, wrapped)
	if err != nil {
		return nil, toEvalError(err)
	}

	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return nil, fmt.Errorf("module wrapper is not callable")
	}

	requireFn := func(call goja.FunctionCall) goja.Value {
		target := call.Argument(0).String()
		value, err := e.require(ctx, relativeTo(location, target))
		if err != nil {
			panic(e.vm.NewGoError(err))
		}
		return value
	}

	if _, err := fn(goja.Undefined(), exports, module, e.vm.ToValue(requireFn)); err != nil {
		return nil, toEvalError(err)
	}

	return module.Get("exports"), nil
}

func isESMSource(err error, source string) bool {
	var evalErr *ports.EvalError
	if !errors.As(err, &evalErr) || evalErr.Kind != "SyntaxError" {
		return false
	}

	return esmStatement.MatchString(source)
}

func esmError(specifier, location string) error {
	var hint string
	switch {
	case strings.HasPrefix(specifier, "jsr:"):
		hint = "; set registry.jsr to an endpoint that serves CommonJS or UMD bundles"
	case strings.HasPrefix(specifier, "npm:"):
		hint = "; set registry.npm to an endpoint that serves CommonJS or UMD bundles"
	}

	if specifier == location {
		return fmt.Errorf("%w: %s is an ES module%s", ErrESMUnsupported, specifier, hint)
	}
	return fmt.Errorf("%w: %s (%s) is an ES module%s", ErrESMUnsupported, specifier, location, hint)
}

// relativeTo resolves "./x" and "../x" against the URL of the requiring
// module. Anything else is returned unchanged.
func relativeTo(parent, target string) string {
	if !strings.HasPrefix(target, "./") && !strings.HasPrefix(target, "../") {
		return target
	}

	base, err := url.Parse(parent)
	if err != nil {
		return target
	}
	ref, err := url.Parse(target)
	if err != nil {
		return target
	}

	return base.ResolveReference(ref).String()
}
