package goja

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherLocation(t *testing.T) {
	fetcher := NewFetcher(nil, Registries{
		NPM: "https://cdn.example.com/npm/",
		JSR: "https://esm.example.com/jsr",
	})

	tests := []struct {
		specifier string
		want      string
		wantErr   error
	}{
		{specifier: "npm:zod@3", want: "https://cdn.example.com/npm/zod@3"},
		{specifier: "npm:@scope/pkg/sub.js", want: "https://cdn.example.com/npm/@scope/pkg/sub.js"},
		{specifier: "jsr:@std/fs", want: "https://esm.example.com/jsr/@std/fs"},
		{specifier: "https://example.com/mod.js?v=1", want: "https://example.com/mod.js?v=1"},
		{specifier: "file:///tmp/mod.js", want: "file:///tmp/mod.js"},
		{specifier: "ftp://example.com/mod.js", wantErr: ErrUnsupportedScheme},
	}

	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			got, err := fetcher.Location(tt.specifier)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetcherLocationRequiresRegistry(t *testing.T) {
	_, err := NewFetcher(nil, Registries{}).Location("npm:zod")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no npm registry configured")
}

func TestRelativeTo(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/lib/b.js", relativeTo("https://cdn.example.com/lib/a.js", "./b.js"))
	assert.Equal(t, "https://cdn.example.com/c.js", relativeTo("https://cdn.example.com/lib/a.js", "../c.js"))
	assert.Equal(t, "npm:left-pad", relativeTo("https://cdn.example.com/lib/a.js", "npm:left-pad"))
}

func TestESMStatementDetection(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{source: `export * from "/jsr/@std/fs@1.0.19/es2022/fs.mjs";`, want: true},
		{source: "import { join } from './path.js'\nexport default join", want: true},
		{source: "/* banner */\n  export const answer = 42", want: true},
		{source: `import "./side-effect.js"`, want: true},
		{source: "module.exports = { exported: true }", want: false},
		{source: "var important = 1;\nexports.x = important", want: false},
		{source: "exports.value = 'export default x'", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, esmStatement.MatchString(tt.source))
		})
	}
}
