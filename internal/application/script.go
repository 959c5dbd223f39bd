package application

import (
	"context"
	"os"

	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
)

type ScriptOptions struct {
	Presenter Presenter
	Evaluator ports.Evaluator
	Importer  *Importer
	Namespace *domain.Namespace
	ReadFile  func(string) ([]byte, error)
}

// ScriptRunner evaluates code once outside the interactive loop. Every
// failure is returned so the caller can exit non-zero.
type ScriptRunner struct {
	presenter Presenter
	evaluator ports.Evaluator
	importer  *Importer
	ns        *domain.Namespace
	readFile  func(string) ([]byte, error)
}

func NewScriptRunner(opts ScriptOptions) *ScriptRunner {
	if opts.Namespace == nil {
		opts.Namespace = domain.NewNamespace(nil)
	}
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}

	return &ScriptRunner{
		presenter: opts.Presenter,
		evaluator: opts.Evaluator,
		importer:  opts.Importer,
		ns:        opts.Namespace,
		readFile:  opts.ReadFile,
	}
}

func (s *ScriptRunner) RunCode(ctx context.Context, code string) error {
	if err := s.importer.BindAll(ctx, s.ns); err != nil {
		return err
	}

	result, err := s.evaluator.Evaluate(ctx, code, s.ns)
	if err != nil {
		return err
	}

	if result.Display != "" {
		s.presenter.Result(result.Display)
	}

	return nil
}

func (s *ScriptRunner) RunFile(ctx context.Context, path string) error {
	data, err := s.readFile(path)
	if err != nil {
		return fileAccessError(path, err)
	}

	return s.RunCode(ctx, string(data))
}
