package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
)

// ModuleService owns the persistent module map and the session overlay.
// Reads for listing degrade to an empty map and write failures are logged.
// Updates never write over a file that could not be read.
type ModuleService struct {
	repo    ports.ModuleMapRepository
	logger  *slog.Logger
	session domain.ModuleMap
}

type AddResult struct {
	Entry    domain.ModuleEntry
	Previous domain.ModuleEntry
	Replaced bool
	// Saved is false when a persistent add could not be written.
	Saved bool
}

func NewModuleService(repo ports.ModuleMapRepository, logger *slog.Logger) *ModuleService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ModuleService{
		repo:    repo,
		logger:  logger,
		session: domain.ModuleMap{},
	}
}

func (s *ModuleService) LoadPersistent(ctx context.Context) domain.ModuleMap {
	modules, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("ignoring unreadable module map", "error", err)
		return domain.ModuleMap{}
	}
	if modules == nil {
		return domain.ModuleMap{}
	}

	return modules
}

func (s *ModuleService) SavePersistent(ctx context.Context, modules domain.ModuleMap) bool {
	if err := s.repo.Save(ctx, modules); err != nil {
		s.logger.Error("failed to save module map", "error", err)
		return false
	}

	return true
}

// Lookup checks the session overlay before the persistent map.
func (s *ModuleService) Lookup(ctx context.Context, name string) (domain.ModuleEntry, bool) {
	if entry, ok := s.session[name]; ok {
		return entry, true
	}

	entry, ok := s.LoadPersistent(ctx)[name]
	return entry, ok
}

func (s *ModuleService) EffectiveMap(ctx context.Context) domain.ModuleMap {
	return domain.Overlay(s.LoadPersistent(ctx), s.session)
}

func (s *ModuleService) List(ctx context.Context) domain.ModuleMap {
	return s.EffectiveMap(ctx)
}

func (s *ModuleService) Session() domain.ModuleMap {
	return s.session.Clone()
}

func (s *ModuleService) AddPersistent(ctx context.Context, name, specifier string, importMap domain.ImportMap) (AddResult, error) {
	entry, err := newModuleEntry(name, specifier, importMap)
	if err != nil {
		return AddResult{}, err
	}

	modules, err := s.loadForUpdate(ctx)
	if err != nil {
		return AddResult{}, err
	}
	result := s.replaceEntry(modules, entry, "persistent")
	result.Saved = s.SavePersistent(ctx, modules)

	return result, nil
}

func (s *ModuleService) AddSession(name, specifier string, importMap domain.ImportMap) (AddResult, error) {
	entry, err := newModuleEntry(name, specifier, importMap)
	if err != nil {
		return AddResult{}, err
	}

	return s.replaceEntry(s.session, entry, "session"), nil
}

// Remove deletes name from the persistent map only. A session entry of the
// same name stays visible through List and Lookup.
func (s *ModuleService) Remove(ctx context.Context, name string) (bool, error) {
	modules, err := s.loadForUpdate(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := modules[name]; !ok {
		return false, nil
	}

	delete(modules, name)
	if err := s.repo.Save(ctx, modules); err != nil {
		return false, fmt.Errorf("save module map: %w", err)
	}
	return true, nil
}

func (s *ModuleService) RemoveSession(name string) bool {
	if _, ok := s.session[name]; !ok {
		return false
	}

	delete(s.session, name)
	return true
}

func (s *ModuleService) ClearSession() {
	s.session = domain.ModuleMap{}
}

// loadForUpdate reads the persistent map for a load-mutate-save cycle. Missing
// and empty files load as an empty map; anything else is returned so the
// caller leaves the file alone.
func (s *ModuleService) loadForUpdate(ctx context.Context) (domain.ModuleMap, error) {
	modules, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read module map: %w", err)
	}
	if modules == nil {
		modules = domain.ModuleMap{}
	}

	return modules, nil
}

func (s *ModuleService) replaceEntry(modules domain.ModuleMap, entry domain.ModuleEntry, layer string) AddResult {
	result := AddResult{Entry: entry, Saved: true}
	if previous, ok := modules[entry.Name]; ok {
		s.logger.Warn("overwriting module mapping",
			"layer", layer,
			"name", entry.Name,
			"previous", previous.URL,
			"url", entry.URL,
		)
		result.Previous = previous
		result.Replaced = true
	}

	modules[entry.Name] = entry
	return result
}

func newModuleEntry(name, specifier string, importMap domain.ImportMap) (domain.ModuleEntry, error) {
	if err := domain.ValidateModuleName(name); err != nil {
		return domain.ModuleEntry{}, err
	}

	resolved, err := domain.ResolveSpecifier(specifier, importMap)
	if err != nil {
		return domain.ModuleEntry{}, err
	}

	return domain.ModuleEntry{Name: name, URL: resolved}, nil
}
