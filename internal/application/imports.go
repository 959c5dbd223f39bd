package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
)

type ImportRequest struct {
	Name      string
	Specifier string
	Persist   bool
}

// ParseImportArgs parses "<name> <specifier> [--save]".
func ParseImportArgs(args string) (ImportRequest, error) {
	var req ImportRequest
	positional := make([]string, 0, 2)
	for _, field := range strings.Fields(args) {
		switch field {
		case "--save", "-s":
			req.Persist = true
		default:
			positional = append(positional, field)
		}
	}

	if len(positional) != 2 {
		return ImportRequest{}, usageError("import", "<name> <specifier> [--save]")
	}

	req.Name = positional[0]
	req.Specifier = positional[1]
	return req, nil
}

// Importer records module mappings and binds loaded modules into a
// namespace.
type Importer struct {
	modules   *ModuleService
	loader    ports.ModuleLoader
	importMap domain.ImportMap
}

func NewImporter(modules *ModuleService, loader ports.ModuleLoader, importMap domain.ImportMap) *Importer {
	return &Importer{
		modules:   modules,
		loader:    loader,
		importMap: importMap,
	}
}

func (i *Importer) Import(ctx context.Context, ns *domain.Namespace, req ImportRequest) (AddResult, error) {
	var (
		result AddResult
		err    error
	)
	if req.Persist {
		result, err = i.modules.AddPersistent(ctx, req.Name, req.Specifier, i.importMap)
	} else {
		result, err = i.modules.AddSession(req.Name, req.Specifier, i.importMap)
	}
	if err != nil {
		return AddResult{}, err
	}

	module, err := i.loader.Load(ctx, result.Entry.URL)
	if err != nil {
		return result, fmt.Errorf("load module %s from %s: %w", result.Entry.Name, result.Entry.URL, err)
	}

	ns.BindImport(result.Entry.Name, module)
	return result, nil
}

// BindAll loads every module of the effective map into ns. Modules that fail
// to load are skipped and reported together.
func (i *Importer) BindAll(ctx context.Context, ns *domain.Namespace) error {
	modules := i.modules.EffectiveMap(ctx)

	var errs []error
	for _, name := range modules.Names() {
		entry := modules[name]
		module, err := i.loader.Load(ctx, entry.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("load module %s from %s: %w", name, entry.URL, err))
			continue
		}
		ns.BindImport(name, module)
	}

	return errors.Join(errs...)
}
