// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/benjaminhottell/odcsv/internal/uno"
	"github.com/benjaminhottell/odcsv/pkg/types"
)

// importFilters maps lower-cased file extensions to the import filter
// the server must apply when loading. Most formats are auto-detected;
// only formats whose filter needs explicit options are listed. The map
// is never mutated; per-run overrides are merged into a copy.
var importFilters = map[string]types.FilterSpec{
	"txt": {
		Name:    "Text (encoded)",
		Options: "utf8",
	},
	"csv": {
		Name:    "Text - txt - csv (StarCalc)",
		Options: "44,34,0",
	},
}

// csvExport is the fixed filter serializing the active sheet to
// comma-delimited, double-quoted, system-encoded text.
var csvExport = types.FilterSpec{
	Name:    "Text - txt - csv (StarCalc)",
	Options: "44,34,0",
}

// fileExt returns the lower-cased extension of path without the dot, or
// "" when the path has none.
func fileExt(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// importFilterFor returns the load properties for the input path: the
// registered filter for its extension, overrides taking precedence, or
// nil when the server should auto-detect the format.
func importFilterFor(path string, overrides map[string]types.FilterSpec) []uno.Property {
	ext := fileExt(path)
	if f, ok := overrides[ext]; ok {
		return filterProps(f)
	}
	if f, ok := importFilters[ext]; ok {
		return filterProps(f)
	}
	return nil
}

// filterProps renders a filter spec as the property list the server
// expects.
func filterProps(f types.FilterSpec) []uno.Property {
	props := []uno.Property{{Name: "FilterName", Value: f.Name}}
	if f.Options != "" {
		props = append(props, uno.Property{Name: "FilterOptions", Value: f.Options})
	}
	return props
}

// LoadFilterOverrides reads a YAML file mapping file extensions to
// import filter specs, e.g.:
//
//	tsv:
//	  filter_name: Text - txt - csv (StarCalc)
//	  filter_options: "9,34,0"
//
// Extensions are lower-cased. Overrides shadow the built-in table for
// the run they are passed to; the built-ins themselves never change.
func LoadFilterOverrides(path string) (map[string]types.FilterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter overrides: %w", err)
	}

	raw := make(map[string]types.FilterSpec)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing filter overrides %s: %w", path, err)
	}

	overrides := make(map[string]types.FilterSpec, len(raw))
	for ext, f := range raw {
		if f.Name == "" {
			return nil, fmt.Errorf("filter override for %q has no filter_name", ext)
		}
		overrides[strings.ToLower(strings.TrimPrefix(ext, "."))] = f
	}
	return overrides, nil
}
