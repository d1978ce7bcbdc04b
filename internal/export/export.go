// Package export reads and writes the portable settings blob: the
// shared generation parameters plus all three entry tables, as a single
// TOML document that can be shared between machines or checked into a
// project.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/fluidcss/internal/cssgen"
	"github.com/pders01/fluidcss/internal/scale"
	"github.com/pders01/fluidcss/internal/table"
	"github.com/pders01/fluidcss/internal/validation"
)

// Document is the on-disk shape of an exported configuration.
type Document struct {
	Parameters scale.Parameters       `toml:"parameters"`
	Tables     map[string]table.State `toml:"tables"`
}

// Export writes the parameters and tables to path as TOML.
func Export(path string, params scale.Parameters, tables map[cssgen.Kind]*table.Table) error {
	validated, err := validation.NewOutputPathValidator().ValidateFile(path)
	if err != nil {
		return fmt.Errorf("invalid export path: %w", err)
	}

	doc := Document{
		Parameters: params,
		Tables:     make(map[string]table.State, len(tables)),
	}
	for kind, t := range tables {
		doc.Tables[kind.String()] = t.State()
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(validated), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(validated, data, 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// Import reads a settings blob, re-validating the parameter ranges and
// the table invariants before anything is applied. Kinds absent from
// the document come back seeded with defaults.
func Import(path string) (scale.Parameters, map[cssgen.Kind]*table.Table, error) {
	validated, err := validation.NewOutputPathValidator().ValidateFile(path)
	if err != nil {
		return scale.Parameters{}, nil, fmt.Errorf("invalid import path: %w", err)
	}

	data, err := os.ReadFile(validated)
	if err != nil {
		return scale.Parameters{}, nil, fmt.Errorf("reading import file: %w", err)
	}

	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return scale.Parameters{}, nil, fmt.Errorf("decoding settings: %w", err)
	}

	params := doc.Parameters
	params.Normalize()

	tables := make(map[cssgen.Kind]*table.Table, 3)
	for _, kind := range cssgen.Kinds() {
		st, ok := doc.Tables[kind.String()]
		if !ok {
			tables[kind] = table.NewWithDefaults()
			continue
		}
		t, err := table.FromState(st)
		if err != nil {
			return scale.Parameters{}, nil, fmt.Errorf("%s table: %w", kind, err)
		}
		tables[kind] = t
	}
	return params, tables, nil
}
