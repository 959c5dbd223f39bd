package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int                     `toml:"version"`
	Modules map[string]moduleSchema `toml:"modules"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Modules == nil {
		s.Modules = map[string]moduleSchema{}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported module map schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type moduleSchema struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}
