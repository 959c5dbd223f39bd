package domain

import (
	"fmt"
	"regexp"
	"sort"
)

var moduleNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

type ModuleEntry struct {
	Name string
	URL  string
}

// ModuleMap is keyed by ModuleEntry.Name.
type ModuleMap map[string]ModuleEntry

func ValidateModuleName(name string) error {
	if !moduleNamePattern.MatchString(name) {
		return fmt.Errorf("%w %q: must be a valid identifier", ErrInvalidModuleName, name)
	}

	return nil
}

func (m ModuleMap) Clone() ModuleMap {
	clone := make(ModuleMap, len(m))
	for name, entry := range m {
		clone[name] = entry
	}

	return clone
}

// Names returns the keys in sorted order.
func (m ModuleMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Overlay returns a new map holding base entries replaced by overlay entries
// on name collision.
func Overlay(base, overlay ModuleMap) ModuleMap {
	merged := make(ModuleMap, len(base)+len(overlay))
	for name, entry := range base {
		merged[name] = entry
	}
	for name, entry := range overlay {
		merged[name] = entry
	}

	return merged
}
