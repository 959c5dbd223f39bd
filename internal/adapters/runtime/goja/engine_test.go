package goja

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, registries Registries) (*Engine, *bytes.Buffer) {
	t.Helper()

	var stdout bytes.Buffer
	engine, err := NewEngine(Options{
		Stdout:  &stdout,
		Stderr:  &stdout,
		Fetcher: NewFetcher(nil, registries),
	})
	require.NoError(t, err)

	return engine, &stdout
}

func evaluate(t *testing.T, engine *Engine, ns *domain.Namespace, code string) ports.EvalResult {
	t.Helper()

	result, err := engine.Evaluate(context.Background(), code, ns)
	require.NoError(t, err)
	return result
}

func TestEngineDisplaysResults(t *testing.T) {
	engine, _ := newTestEngine(t, Registries{})
	ns := domain.NewNamespace(nil)

	tests := []struct {
		code string
		want string
	}{
		{code: "1 + 2", want: "3"},
		{code: "'dx'", want: `"dx"`},
		{code: "true && null", want: "null"},
		{code: "undefined", want: ""},
		{code: "({a: 1})", want: "{\n  \"a\": 1\n}"},
		{code: "[1, 'two']", want: "[\n  1,\n  \"two\"\n]"},
		{code: "function named() {}; named", want: "[Function: named]"},
		{code: "new RangeError('too far')", want: "RangeError: too far"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, engine, ns, tt.code).Display)
		})
	}
}

func TestEngineKeepsStateBetweenEvaluations(t *testing.T) {
	engine, _ := newTestEngine(t, Registries{})
	ns := domain.NewNamespace(nil)

	evaluate(t, engine, ns, "var total = 40")
	result := evaluate(t, engine, ns, "total + 2")

	assert.Equal(t, int64(42), result.Value)
}

func TestEngineExposesInput(t *testing.T) {
	engine, _ := newTestEngine(t, Registries{})

	withInput := domain.NewNamespace(map[string]any{"name": "dx", "tags": []any{"a", "b"}})
	assert.Equal(t, `"dx"`, evaluate(t, engine, withInput, "input.name").Display)
	assert.Equal(t, "2", evaluate(t, engine, withInput, "input.tags.length").Display)

	withoutInput := domain.NewNamespace(nil)
	assert.Equal(t, `"undefined"`, evaluate(t, engine, withoutInput, "typeof input").Display)
}

func TestEngineExposesImports(t *testing.T) {
	engine, _ := newTestEngine(t, Registries{})
	ns := domain.NewNamespace(nil)
	ns.BindImport("util", map[string]any{"version": "1.2.3"})

	assert.Equal(t, `"1.2.3"`, evaluate(t, engine, ns, "imports.util.version").Display)

	ns.BindImport("later", 7)
	assert.Equal(t, "7", evaluate(t, engine, ns, "imports.later").Display)
}

func TestEngineConsoleWritesToStdout(t *testing.T) {
	engine, stdout := newTestEngine(t, Registries{})

	result := evaluate(t, engine, domain.NewNamespace(nil), "console.log('hello', {n: 1}); print(2)")

	assert.Empty(t, result.Display)
	assert.Equal(t, "hello {\n  \"n\": 1\n}\n2\n", stdout.String())
}

func TestEngineReportsErrorKinds(t *testing.T) {
	engine, _ := newTestEngine(t, Registries{})
	ns := domain.NewNamespace(nil)

	tests := []struct {
		code          string
		kind          string
		message       string
		messagePrefix string
	}{
		{code: "throw new TypeError('bad input')", kind: "TypeError", message: "bad input"},
		{code: "missingFunction()", kind: "ReferenceError", message: "missingFunction is not defined"},
		{code: "throw 'plain'", kind: "Uncaught", message: "plain"},
		{code: "let = = 1", kind: "SyntaxError", messagePrefix: "(anonymous): Line 1:"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := engine.Evaluate(context.Background(), tt.code, ns)

			var evalErr *ports.EvalError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, tt.kind, evalErr.Kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, evalErr.Message)
			}
			if tt.messagePrefix != "" {
				assert.True(t, strings.HasPrefix(evalErr.Message, tt.messagePrefix), evalErr.Message)
			}
			assert.NotContains(t, evalErr.Error(), tt.kind+": "+tt.kind)
		})
	}
}

func TestEngineInterruptsOnContextDeadline(t *testing.T) {
	engine, _ := newTestEngine(t, Registries{})
	ns := domain.NewNamespace(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := engine.Evaluate(ctx, "for (;;) {}", ns)

	var evalErr *ports.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "Interrupted", evalErr.Kind)

	assert.Equal(t, "2", evaluate(t, engine, ns, "1 + 1").Display)
}

func TestEngineLoadsRegistryModule(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/npm/calc@1" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("module.exports = { add: function (a, b) { return a + b } }"))
	}))
	t.Cleanup(srv.Close)

	engine, _ := newTestEngine(t, Registries{NPM: srv.URL + "/npm/"})
	ns := domain.NewNamespace(nil)

	module, err := engine.Load(context.Background(), "npm:calc@1")
	require.NoError(t, err)
	_, err = engine.Load(context.Background(), "npm:calc@1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	ns.BindImport("calc", module)
	assert.Equal(t, "5", evaluate(t, engine, ns, "imports.calc.add(2, 3)").Display)
}

func TestEngineLoadResolvesRelativeRequire(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/lib/main.js", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("var helper = require('./helper.js'); module.exports = helper.value * 2;"))
	})
	mux.HandleFunc("/lib/helper.js", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("exports.value = 21;"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	engine, _ := newTestEngine(t, Registries{})

	module, err := engine.Load(context.Background(), srv.URL+"/lib/main.js")
	require.NoError(t, err)

	ns := domain.NewNamespace(nil)
	ns.BindImport("main", module)
	assert.Equal(t, "42", evaluate(t, engine, ns, "imports.main").Display)
}

func TestEngineLoadReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	engine, _ := newTestEngine(t, Registries{NPM: srv.URL + "/"})

	_, err := engine.Load(context.Background(), "npm:missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 404")
}

func TestEngineLoadRejectsESModuleSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte("/* esm.sh - @std/fs@1.0.19 */\nexport * from \"/jsr/@std/fs@1.0.19/es2022/fs.mjs\";\n"))
	}))
	t.Cleanup(srv.Close)

	engine, _ := newTestEngine(t, Registries{JSR: srv.URL + "/jsr/"})

	_, err := engine.Load(context.Background(), "jsr:@std/fs")

	require.ErrorIs(t, err, ErrESMUnsupported)
	assert.Contains(t, err.Error(), "jsr:@std/fs")
	assert.Contains(t, err.Error(), "registry.jsr")
	assert.NotContains(t, err.Error(), "SyntaxError")
	assert.Empty(t, engine.modules)
}

func TestEngineLoadKeepsSyntaxErrorsForCommonJS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.js")
	require.NoError(t, os.WriteFile(path, []byte("module.exports = {;"), 0o600))

	engine, _ := newTestEngine(t, Registries{})

	_, err := engine.Load(context.Background(), "file://"+path)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrESMUnsupported)
	var evalErr *ports.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "SyntaxError", evalErr.Kind)
}

func TestEngineLoadReportsModuleErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.js")
	require.NoError(t, os.WriteFile(path, []byte("throw new Error('init failed')"), 0o600))

	engine, _ := newTestEngine(t, Registries{})

	_, err := engine.Load(context.Background(), "file://"+path)

	var evalErr *ports.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "init failed", evalErr.Message)
	assert.Empty(t, engine.modules)
}

func TestEngineLoadsFileModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.js")
	require.NoError(t, os.WriteFile(path, []byte("exports.answer = 42;"), 0o600))

	engine, _ := newTestEngine(t, Registries{})

	module, err := engine.Load(context.Background(), "file://"+path)
	require.NoError(t, err)

	ns := domain.NewNamespace(nil)
	ns.BindImport("answer", module)
	assert.Equal(t, "42", evaluate(t, engine, ns, "imports.answer.answer").Display)
}

func TestEngineLoadTimeoutInterruptsSlowModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slow.js")
	require.NoError(t, os.WriteFile(path, []byte("for (;;) {}"), 0o600))

	engine, err := NewEngine(Options{LoadTimeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = engine.Load(context.Background(), "file://"+path)

	var evalErr *ports.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "Interrupted", evalErr.Kind)
}
