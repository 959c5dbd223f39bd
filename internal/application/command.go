package application

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

var commandPattern = regexp.MustCompile(`^\.(\w+)(\s+.*)?$`)

type CommandKind int

const (
	CommandExit CommandKind = iota + 1
	CommandHelp
	CommandRun
	CommandDo
	CommandImport
	CommandClear
	CommandContext
	CommandPrev
	CommandNext
	CommandLoad
	CommandReset
	CommandHistory
	CommandClearHistory
	CommandShow
)

type Command struct {
	Kind CommandKind
	Name string
	Args string
}

type commandSpec struct {
	kind    CommandKind
	name    string
	alias   string
	usage   string
	summary string
}

var commandSpecs = []commandSpec{
	{kind: CommandRun, name: "run", alias: "r", summary: "Run the buffer (an empty line does the same)"},
	{kind: CommandShow, name: "show", alias: "s", summary: "Print the current buffer"},
	{kind: CommandReset, name: "reset", alias: "rs", summary: "Discard the current buffer"},
	{kind: CommandPrev, name: "prev", alias: "p", summary: "Load the previous executed buffer"},
	{kind: CommandNext, name: "next", alias: "n", summary: "Load the next executed buffer"},
	{kind: CommandLoad, name: "load", alias: "l", usage: "<n>", summary: "Load executed buffer n from history"},
	{kind: CommandHistory, name: "history", alias: "hi", summary: "List executed buffers"},
	{kind: CommandClearHistory, name: "clearhistory", alias: "ch", summary: "Forget all executed buffers"},
	{kind: CommandDo, name: "do", alias: "d", usage: "<path>", summary: "Evaluate a file without touching the buffer"},
	{kind: CommandImport, name: "import", alias: "i", usage: "<name> <specifier> [--save]", summary: "Import a module into imports.<name>"},
	{kind: CommandContext, name: "context", alias: "ctx", summary: "Show input, imports and module maps"},
	{kind: CommandClear, name: "clear", alias: "c", summary: "Clear the terminal"},
	{kind: CommandHelp, name: "help", alias: "h", summary: "Show this help"},
	{kind: CommandExit, name: "exit", alias: "q", summary: "Leave dx"},
}

var commandsByToken = func() map[string]commandSpec {
	byToken := make(map[string]commandSpec, len(commandSpecs)*2)
	for _, spec := range commandSpecs {
		byToken[spec.name] = spec
		byToken[spec.alias] = spec
	}
	return byToken
}()

// ParseCommand recognises dot-prefixed lines. ok is false for lines that are
// not commands and belong in the buffer.
func ParseCommand(line string) (cmd Command, ok bool, err error) {
	match := commandPattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return Command{}, false, nil
	}

	spec, known := commandsByToken[match[1]]
	if !known {
		return Command{}, true, fmt.Errorf("%w .%s (try .help)", ErrUnknownCommand, match[1])
	}

	return Command{
		Kind: spec.kind,
		Name: spec.name,
		Args: strings.TrimSpace(match[2]),
	}, true, nil
}

type HelpEntry struct {
	Name    string
	Alias   string
	Usage   string
	Summary string
}

func HelpEntries() []HelpEntry {
	entries := make([]HelpEntry, 0, len(commandSpecs))
	for _, spec := range commandSpecs {
		entries = append(entries, HelpEntry{
			Name:    spec.name,
			Alias:   spec.alias,
			Usage:   spec.usage,
			Summary: spec.summary,
		})
	}

	return entries
}

func usageError(name, usage string) error {
	return fmt.Errorf("%w: .%s %s", ErrUsage, name, usage)
}
