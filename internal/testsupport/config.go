package testsupport

import (
	"path/filepath"
	"testing"

	"biblioteca/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = base
	cfgVal.Paths.Database = filepath.Join(base, "biblioteca.db")
	cfgVal.Paths.LogDir = ""
	cfgVal.Filter.Source = filepath.Join(base, "books.json")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAllowedLanguages replaces the filter allow-list.
func WithAllowedLanguages(tags ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Filter.AllowedLanguages = append([]string(nil), tags...)
	}
}

// WithDataset registers a dataset, replacing any default of the same name.
// A relative file resolves against the temp data dir.
func WithDataset(name, table, file string) ConfigOption {
	return func(b *configBuilder) {
		ds := config.Dataset{Name: name, Table: table, File: file}
		for i := range b.cfg.Load.Datasets {
			if b.cfg.Load.Datasets[i].Name == name {
				b.cfg.Load.Datasets[i] = ds
				return
			}
		}
		b.cfg.Load.Datasets = append(b.cfg.Load.Datasets, ds)
	}
}

// WithLogDir enables file logging under the temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.DataDir
}
