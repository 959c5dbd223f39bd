// Package input turns piped standard input into the value exposed to
// scripts as input.
package input

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/bnema/dx/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatNone Format = "none"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Read decodes everything r yields. See Decode.
func Read(r io.Reader) (any, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, FormatNone, err
	}

	value, format := Decode(data)
	return value, format, nil
}

// Decode tries JSON, TOML and YAML in that order and falls back to the raw
// text. TOML and YAML only win when they produce a table or a sequence, so a
// plain line of text is never mistaken for a YAML scalar. Blank input yields
// domain.NoInput.
func Decode(data []byte) (any, Format) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return domain.NoInput, FormatNone
	}

	var jsonValue any
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	if err := decoder.Decode(&jsonValue); err == nil && !decoder.More() {
		return normalizeJSON(jsonValue), FormatJSON
	}

	var tomlValue map[string]any
	if err := toml.Unmarshal(trimmed, &tomlValue); err == nil && len(tomlValue) > 0 {
		return tomlValue, FormatTOML
	}

	var yamlValue any
	if err := yaml.Unmarshal(trimmed, &yamlValue); err == nil {
		switch yamlValue.(type) {
		case map[string]any, []any:
			return yamlValue, FormatYAML
		}
	}

	return strings.TrimRight(string(data), "\r\n"), FormatText
}

// normalizeJSON turns json.Number into int64 where it fits and float64
// otherwise.
func normalizeJSON(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		for key, item := range v {
			v[key] = normalizeJSON(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeJSON(item)
		}
		return v
	default:
		return v
	}
}
