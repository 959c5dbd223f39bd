package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/dx/internal/domain"
	"github.com/bnema/dx/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ModulesPathKey = "modules.path"

	moduleMapFileMode = 0o600
	moduleMapDirMode  = 0o700
	appConfigDir      = "dx"
	moduleMapFile     = "module_map.toml"
	tempFilePattern   = ".module_map-*.toml.tmp"
)

type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ModuleMapRepository = (*Repository)(nil)

// DefaultPath is <user config dir>/dx/module_map.toml.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}

	return filepath.Join(configDir, appConfigDir, moduleMapFile), nil
}

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(ModulesPathKey)
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// Load returns an empty map when the file is missing or empty. Malformed
// content is reported as an error; callers decide how to degrade.
func (r *Repository) Load(ctx context.Context) (domain.ModuleMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	return fromSchema(file), nil
}

func (r *Repository) Save(ctx context.Context, modules domain.ModuleMap) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(modules))
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read module map file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode module map file %s: %w", r.path, err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve module map path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), moduleMapDirMode); err != nil {
		return fmt.Errorf("create module map directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode module map file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp module map file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp module map file: %w", err)
	}

	if err := tempFile.Chmod(moduleMapFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp module map file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp module map file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace module map file: %w", err)
	}

	cleanup = false

	return nil
}

func toSchema(modules domain.ModuleMap) fileSchema {
	file := fileSchema{
		Version: currentSchemaVersion,
		Modules: make(map[string]moduleSchema, len(modules)),
	}
	for name, entry := range modules {
		file.Modules[name] = moduleSchema{Name: name, URL: entry.URL}
	}

	return file
}

// fromSchema keys entries by their table name; a stale name field inside the
// table is ignored.
func fromSchema(file fileSchema) domain.ModuleMap {
	modules := make(domain.ModuleMap, len(file.Modules))
	for name, entry := range file.Modules {
		if entry.URL == "" {
			continue
		}
		modules[name] = domain.ModuleEntry{Name: name, URL: entry.URL}
	}

	return modules
}
