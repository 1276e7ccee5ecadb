// Package loader reads schema definition files into a single catalog.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/polyquery/polyquery/internal/catalog"
	"github.com/polyquery/polyquery/internal/dialect"
	"github.com/polyquery/polyquery/internal/ident"
	"github.com/polyquery/polyquery/internal/logging"
)

// Options configures schema loading.
type Options struct {
	Dialect dialect.Dialect
	Logger  logging.Logger
}

// Load parses each YAML/JSON schema file and merges the results into one
// catalog. All files must agree on nesting depth; later files may add
// tables or replace the column mappings of earlier ones.
func Load(paths []string, opts Options) (*catalog.Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	combined := catalog.New(opts.Dialect)
	for _, path := range paths {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", path, err)
		}

		parsed, err := catalog.FromYAML(data, opts.Dialect)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		tables := parsed.Tables()
		for _, table := range tables {
			ref := exactReference(table)
			cols, err := parsed.Columns(ref)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			// Re-quote stored names so merging never folds them twice.
			for i := range cols {
				cols[i].Name = ident.New(cols[i].Name, true).String()
			}
			if err := combined.AddTable(ref, cols); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}

		logger.Debug("loaded schema file", "path", path, "tables", len(tables))
	}
	return combined, nil
}

// exactReference wraps already-normalized name parts as quoted identifiers
// so they round-trip byte for byte.
func exactReference(parts []string) ident.Reference {
	ref := make(ident.Reference, len(parts))
	for i, part := range parts {
		ref[i] = ident.New(part, true)
	}
	return ref
}
