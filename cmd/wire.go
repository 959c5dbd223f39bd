package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bnema/dx/internal/adapters/importmap"
	"github.com/bnema/dx/internal/adapters/render/console"
	tomlrepo "github.com/bnema/dx/internal/adapters/repo/toml"
	jsruntime "github.com/bnema/dx/internal/adapters/runtime/goja"
	"github.com/bnema/dx/internal/adapters/terminal"
	"github.com/bnema/dx/internal/application"
	"github.com/bnema/dx/internal/config"
	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openLineReader is replaced in tests to script the interactive loop.
var openLineReader = func(stdin io.Reader, stdout io.Writer, opts terminal.Options) (ports.LineReader, error) {
	return terminal.Open(stdin, stdout, opts)
}

type app struct {
	config config.Config
	repo   ports.ModuleMapRepository
	getwd  func() (string, error)
}

func wireApp() (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire module map repository: %w", err)
	}

	return &app{
		config: cfg,
		repo:   repo,
		getwd:  os.Getwd,
	}, nil
}

func (a *app) logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: a.config.LogLevel}))
}

func (a *app) moduleService(cmd *cobra.Command) *application.ModuleService {
	return application.NewModuleService(a.repo, a.logger(cmd.ErrOrStderr()))
}

func (a *app) presenter(cmd *cobra.Command) *console.Presenter {
	return console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), console.Options{
		Spinner: terminal.IsTerminal(cmd.ErrOrStderr()),
	})
}

// importMap loads the explicit path, then the configured one, then whatever
// the working directory provides.
func (a *app) importMap(explicit string) (domain.ImportMap, error) {
	path := explicit
	if path == "" {
		path = a.config.ImportMapPath
	}
	if path != "" {
		return importmap.Load(path)
	}

	dir, err := a.getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	imports, _, err := importmap.Discover(dir)
	return imports, err
}

type session struct {
	presenter *console.Presenter
	engine    *jsruntime.Engine
	modules   *application.ModuleService
	importer  *application.Importer
	namespace *domain.Namespace
}

func (a *app) newSession(cmd *cobra.Command, importMapPath string, input any) (*session, error) {
	imports, err := a.importMap(importMapPath)
	if err != nil {
		return nil, err
	}

	engine, err := jsruntime.NewEngine(jsruntime.Options{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Fetcher: jsruntime.NewFetcher(nil, jsruntime.Registries{
			NPM: a.config.Registries.NPM,
			JSR: a.config.Registries.JSR,
		}),
		LoadTimeout: a.config.ImportTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("start script engine: %w", err)
	}

	modules := a.moduleService(cmd)

	return &session{
		presenter: a.presenter(cmd),
		engine:    engine,
		modules:   modules,
		importer:  application.NewImporter(modules, engine, imports),
		namespace: domain.NewNamespace(input),
	}, nil
}
