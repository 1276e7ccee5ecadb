// Package config loads and validates the polyquery configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/polyquery/polyquery/internal/dialect"
)

// AdapterConfig selects an introspection adapter used to populate the
// catalog from a live database.
type AdapterConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

// Config mirrors the expected polyquery TOML schema.
type Config struct {
	Dialect string        `toml:"dialect"`
	Schemas []string      `toml:"schemas"`
	Adapter AdapterConfig `toml:"adapter"`
}

// Plan is the fully-resolved configuration used by downstream stages.
type Plan struct {
	Dialect dialect.Dialect
	// Schemas holds the resolved schema file paths, absolute and sorted.
	Schemas []string
	Adapter AdapterConfig
}

// LoadOptions tunes config loading behavior.
type LoadOptions struct {
	// Strict treats configuration warnings as errors.
	Strict bool
}

// Result wraps a loaded plan alongside any non-fatal warnings.
type Result struct {
	Plan     Plan
	Warnings []string
}

// NoMatchError describes schema patterns that yielded no files.
type NoMatchError struct {
	Patterns []string
}

// Error implements the error interface.
func (e NoMatchError) Error() string {
	return "schema patterns matched no files: " + strings.Join(e.Patterns, ", ")
}

// Load reads, validates, and resolves a polyquery configuration file.
func Load(path string, opts LoadOptions) (Result, error) {
	var res Result

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	unknown, err := collectUnknownKeys(data)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		message := fmt.Sprintf("%s: unknown configuration keys: %s", path, strings.Join(unknown, ", "))
		if opts.Strict {
			return res, errors.New(message)
		}
		res.Warnings = append(res.Warnings, message)
	}

	d, err := dialect.Parse(cfg.Dialect)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	if len(cfg.Schemas) == 0 && cfg.Adapter.Driver == "" {
		return res, fmt.Errorf("%s: configure schemas patterns or an adapter", path)
	}
	if cfg.Adapter.Driver != "" && cfg.Adapter.DSN == "" {
		return res, fmt.Errorf("%s: adapter.dsn is required with adapter.driver", path)
	}

	schemas, err := resolveSchemas(filepath.Dir(path), cfg.Schemas)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	res.Plan = Plan{
		Dialect: d,
		Schemas: schemas,
		Adapter: cfg.Adapter,
	}
	return res, nil
}

// resolveSchemas expands schema globs relative to the config directory
// into a sorted, de-duplicated absolute path list.
func resolveSchemas(baseDir string, patterns []string) ([]string, error) {
	combined := make([]string, 0)
	missing := make([]string, 0)

	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(full) {
			full = filepath.Join(baseDir, pattern)
		}
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			missing = append(missing, pattern)
			continue
		}
		for _, match := range matches {
			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, fmt.Errorf("resolve %q: %w", match, err)
			}
			combined = append(combined, abs)
		}
	}

	if len(missing) > 0 {
		return nil, NoMatchError{Patterns: missing}
	}

	slices.Sort(combined)
	return slices.Compact(combined), nil
}

func collectUnknownKeys(data []byte) ([]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	known := map[string]struct{}{
		"dialect": {},
		"schemas": {},
		"adapter": {},
	}

	unknown := make([]string, 0)
	for key := range raw {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	return unknown, nil
}
