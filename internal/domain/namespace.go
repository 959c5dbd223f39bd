package domain

import "sort"

type noInput struct{}

func (noInput) String() string { return "<no input>" }

// NoInput marks a process that received nothing on stdin.
var NoInput any = noInput{}

// Namespace is the state visible to evaluated code: the decoded piped input
// and the modules imported so far.
type Namespace struct {
	input   any
	imports map[string]any
}

func NewNamespace(input any) *Namespace {
	if input == nil {
		input = NoInput
	}

	return &Namespace{
		input:   input,
		imports: map[string]any{},
	}
}

func (n *Namespace) Input() any {
	return n.input
}

func (n *Namespace) HasInput() bool {
	return n.input != NoInput
}

func (n *Namespace) BindImport(name string, module any) {
	n.imports[name] = module
}

func (n *Namespace) Import(name string) (any, bool) {
	module, ok := n.imports[name]
	return module, ok
}

// Imports returns a shallow copy of the bound modules.
func (n *Namespace) Imports() map[string]any {
	imports := make(map[string]any, len(n.imports))
	for name, module := range n.imports {
		imports[name] = module
	}

	return imports
}

func (n *Namespace) ImportNames() []string {
	names := make([]string, 0, len(n.imports))
	for name := range n.imports {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
