package ports

import (
	"context"

	"github.com/bnema/dx/internal/domain"
)

type EvalResult struct {
	Value any
	// Display is the printable form of Value; empty when there is nothing to
	// show (undefined).
	Display string
}

// EvalError is a failure raised by evaluated code.
type EvalError struct {
	Kind    string
	Message string
}

func (e *EvalError) Error() string {
	if e.Kind == "" {
		return e.Message
	}

	return e.Kind + ": " + e.Message
}

type Evaluator interface {
	Evaluate(ctx context.Context, code string, ns *domain.Namespace) (EvalResult, error)
}

// ModuleLoader loads a resolved specifier into a module object that can be
// bound into a namespace.
type ModuleLoader interface {
	Load(ctx context.Context, specifier string) (any, error)
}
