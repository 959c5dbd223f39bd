package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		isCommand bool
		want      Command
		wantErr   error
	}{
		{name: "full name", line: ".run", isCommand: true, want: Command{Kind: CommandRun, Name: "run"}},
		{name: "alias", line: ".r", isCommand: true, want: Command{Kind: CommandRun, Name: "run"}},
		{name: "surrounding whitespace", line: "   .exit  ", isCommand: true, want: Command{Kind: CommandExit, Name: "exit"}},
		{name: "arguments trimmed", line: ".import  zod   npm:zod --save ", isCommand: true, want: Command{Kind: CommandImport, Name: "import", Args: "zod   npm:zod --save"}},
		{name: "two letter alias", line: ".ch", isCommand: true, want: Command{Kind: CommandClearHistory, Name: "clearhistory"}},
		{name: "context alias", line: ".ctx", isCommand: true, want: Command{Kind: CommandContext, Name: "context"}},
		{name: "load with index", line: ".l 3", isCommand: true, want: Command{Kind: CommandLoad, Name: "load", Args: "3"}},
		{name: "code line", line: "const x = 1", isCommand: false},
		{name: "method chain", line: ".map(x => x + 1)", isCommand: false},
		{name: "bare dot", line: ".", isCommand: false},
		{name: "leading decimal literal", line: ".5 + 1", isCommand: true, wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, isCommand, err := ParseCommand(tt.line)
			assert.Equal(t, tt.isCommand, isCommand)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParseCommandUnknownToken(t *testing.T) {
	_, isCommand, err := ParseCommand(".frobnicate")

	assert.True(t, isCommand)
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), ".frobnicate")
}

func TestParseCommandIsCaseSensitive(t *testing.T) {
	_, _, err := ParseCommand(".RUN")

	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestHelpEntriesCoverEveryCommand(t *testing.T) {
	entries := HelpEntries()
	require.Len(t, entries, len(commandSpecs))

	seen := map[string]bool{}
	for _, entry := range entries {
		assert.NotEmpty(t, entry.Summary, entry.Name)

		for _, token := range []string{entry.Name, entry.Alias} {
			assert.False(t, seen[token], "token %q used twice", token)
			seen[token] = true

			cmd, ok, err := ParseCommand("." + token)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, entry.Name, cmd.Name)
		}
	}
}

func TestParseImportArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    ImportRequest
		wantErr bool
	}{
		{name: "session", args: "zod npm:zod", want: ImportRequest{Name: "zod", Specifier: "npm:zod"}},
		{name: "save after", args: "zod npm:zod --save", want: ImportRequest{Name: "zod", Specifier: "npm:zod", Persist: true}},
		{name: "short save before", args: "-s fs @std/fs", want: ImportRequest{Name: "fs", Specifier: "@std/fs", Persist: true}},
		{name: "missing specifier", args: "zod", wantErr: true},
		{name: "extra positional", args: "zod npm:zod extra", wantErr: true},
		{name: "empty", args: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseImportArgs(tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUsage)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
