package domain

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	StdShorthandPrefix = "@std/"
	JSRScheme          = "jsr:"
	NPMScheme          = "npm:"
)

// ImportMap maps bare keys to specifiers. It is read-only input to
// ResolveSpecifier.
type ImportMap map[string]string

// ResolveSpecifier turns a user supplied specifier into a loadable one.
// The import map is consulted once; its values are never re-resolved
// through the map.
func ResolveSpecifier(specifier string, importMap ImportMap) (string, error) {
	candidate := specifier
	if mapped, ok := importMap[specifier]; ok {
		candidate = mapped
	}

	if isAbsoluteURL(candidate) {
		return candidate, nil
	}

	if strings.HasPrefix(candidate, StdShorthandPrefix) {
		return JSRScheme + candidate, nil
	}

	if strings.HasPrefix(candidate, JSRScheme) || strings.HasPrefix(candidate, NPMScheme) {
		return candidate, nil
	}

	return "", fmt.Errorf("%w %q: expected a URL, %s..., %s... or %s... specifier", ErrUnresolvableSpecifier, specifier, StdShorthandPrefix, JSRScheme, NPMScheme)
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return parsed.IsAbs()
}
