package importmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/dx/internal/domain"
)

// Candidates are looked up in order in the working directory.
var Candidates = []string{"deno.json", "import_map.json"}

type document struct {
	Imports   map[string]string `json:"imports"`
	ImportMap string            `json:"importMap"`
}

// Load reads the imports object of the JSON document at path. A deno.json
// that names a separate importMap file is followed once.
func Load(path string) (domain.ImportMap, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	if len(doc.Imports) == 0 && doc.ImportMap != "" {
		target := doc.ImportMap
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		doc, err = readDocument(target)
		if err != nil {
			return nil, err
		}
	}

	imports := make(domain.ImportMap, len(doc.Imports))
	for key, value := range doc.Imports {
		imports[key] = value
	}

	return imports, nil
}

// Discover loads the first candidate present in dir. It returns an empty map
// and an empty path when there is none.
func Discover(dir string) (domain.ImportMap, string, error) {
	for _, name := range Candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("stat import map %s: %w", path, err)
		}

		imports, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return imports, path, nil
	}

	return domain.ImportMap{}, "", nil
}

func readDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, fmt.Errorf("read import map %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("decode import map %s: %w", path, err)
	}

	return doc, nil
}
