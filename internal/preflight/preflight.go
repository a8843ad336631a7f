package preflight

import (
	"fmt"
	"path/filepath"
	"strings"

	"biblioteca/internal/config"
)

// Result is the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	Cause  error
}

// Err converts a failed result into an error that wraps its cause.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	if r.Cause != nil {
		return fmt.Errorf("%s: %s: %w", r.Name, r.Detail, r.Cause)
	}
	return fmt.Errorf("%s: %s", r.Name, r.Detail)
}

// FirstFailure returns the error of the first failed result, or nil.
func FirstFailure(results []Result) error {
	for _, r := range results {
		if err := r.Err(); err != nil {
			return err
		}
	}
	return nil
}

// ForFilter checks that source can be read and that its directory accepts
// the temporary file that replaces it.
func ForFilter(source string) []Result {
	return []Result{
		CheckFileReadable("Filter source", source),
		CheckDirectoryAccess("Filter directory", filepath.Dir(source)),
	}
}

// ForDatabase checks the database directory and, when configured, the schema
// script used by `db init`.
func ForDatabase(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{CheckDirectoryAccess("Database directory", filepath.Dir(cfg.Paths.Database))}
	if strings.TrimSpace(cfg.Paths.SchemaFile) != "" {
		results = append(results, CheckFileReadable("Schema file", cfg.Paths.SchemaFile))
	}
	return results
}
