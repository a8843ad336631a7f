package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"biblioteca/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("BIBLIOTECA_DATABASE", "")
	os.Unsetenv("BIBLIOTECA_DATABASE")
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "biblioteca", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}

	wantDataDir, _ := filepath.Abs(workDir)
	if cfg.Paths.DataDir != wantDataDir {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantDataDir)
	}
	if cfg.Paths.Database != filepath.Join(wantDataDir, "biblioteca.db") {
		t.Fatalf("unexpected database path: %q", cfg.Paths.Database)
	}
	if cfg.Filter.Source != filepath.Join(wantDataDir, "books.json") {
		t.Fatalf("unexpected filter source: %q", cfg.Filter.Source)
	}
	if cfg.Filter.Field != "language" {
		t.Fatalf("unexpected filter field: %q", cfg.Filter.Field)
	}
	if got := strings.Join(cfg.Filter.AllowedLanguages, ","); got != "es-MX,spa" {
		t.Fatalf("unexpected allowed languages: %q", got)
	}
	if got := strings.Join(cfg.DatasetNames(), ","); got != "books,authors,list" {
		t.Fatalf("unexpected datasets: %q", got)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "biblioteca.toml")
	dataDir := filepath.Join(tempDir, "data")

	type dataset struct {
		Name string `toml:"name"`
		File string `toml:"file"`
	}
	type payload struct {
		Paths struct {
			DataDir  string `toml:"data_dir"`
			Database string `toml:"database"`
		} `toml:"paths"`
		Filter struct {
			Source           string   `toml:"source"`
			AllowedLanguages []string `toml:"allowed_languages"`
		} `toml:"filter"`
		Load struct {
			Datasets []dataset `toml:"datasets"`
		} `toml:"load"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = dataDir
	custom.Paths.Database = "library.db"
	custom.Filter.Source = "libros.jsonl"
	custom.Filter.AllowedLanguages = []string{" pt-BR ", "por", "por"}
	custom.Load.Datasets = []dataset{{Name: "series", File: "series.json"}}
	custom.Logging.Level = "WARNING"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.Database != filepath.Join(dataDir, "library.db") {
		t.Fatalf("expected database relative to data dir, got %q", cfg.Paths.Database)
	}
	if cfg.Filter.Source != filepath.Join(dataDir, "libros.jsonl") {
		t.Fatalf("expected filter source relative to data dir, got %q", cfg.Filter.Source)
	}
	if got := strings.Join(cfg.Filter.AllowedLanguages, ","); got != "pt-BR,por" {
		t.Fatalf("expected trimmed, deduplicated languages, got %q", got)
	}
	if got := strings.Join(cfg.DatasetNames(), ","); got != "series" {
		t.Fatalf("expected file datasets to replace defaults, got %q", got)
	}
	ds, ok := cfg.Dataset("series")
	if !ok || ds.Table != "series" {
		t.Fatalf("expected table to default to dataset name, got %+v ok=%v", ds, ok)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected level normalized to warn, got %q", cfg.Logging.Level)
	}
}

func TestDatabaseEnvFallback(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("BIBLIOTECA_DATABASE", dbPath)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Database != dbPath {
		t.Fatalf("expected database from env, got %q", cfg.Paths.Database)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad language tag",
			content: "[filter]\nallowed_languages = [\"not a tag\"]\n",
			wantErr: "filter.allowed_languages",
		},
		{
			name:    "empty allow list",
			content: "[filter]\nallowed_languages = []\n",
			wantErr: "at least one language tag",
		},
		{
			name:    "bad table name",
			content: "[[load.datasets]]\nname = \"books\"\ntable = \"books; DROP\"\nfile = \"books.json\"\n",
			wantErr: "load.datasets[0].table",
		},
		{
			name:    "duplicate dataset",
			content: "[[load.datasets]]\nname = \"a\"\nfile = \"a.json\"\n[[load.datasets]]\nname = \"a\"\nfile = \"b.json\"\n",
			wantErr: "duplicate name",
		},
		{
			name:    "missing dataset file",
			content: "[[load.datasets]]\nname = \"a\"\n",
			wantErr: "load.datasets[0].file",
		},
		{
			name:    "bad log format",
			content: "[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "unknown key",
			content: "[filter]\nlanguages = [\"spa\"]\n",
			wantErr: "parse config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveDataPath(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = "/srv/data"

	got, err := cfg.ResolveDataPath("books.json")
	if err != nil {
		t.Fatalf("ResolveDataPath: %v", err)
	}
	if got != filepath.Join("/srv/data", "books.json") {
		t.Fatalf("unexpected relative resolution: %q", got)
	}

	got, err = cfg.ResolveDataPath("/tmp/other.json")
	if err != nil {
		t.Fatalf("ResolveDataPath: %v", err)
	}
	if got != "/tmp/other.json" {
		t.Fatalf("absolute path should pass through, got %q", got)
	}

	if _, err := cfg.ResolveDataPath("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if got := strings.Join(cfg.DatasetNames(), ","); got != "books,authors,list" {
		t.Fatalf("unexpected sample datasets: %q", got)
	}
}

func TestLoadReadsMarshaledConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = dir
	cfg.Load = config.LoadSection{Datasets: []config.Dataset{
		{Name: "reviews", Table: "resenas", File: "reviews.ndjson"},
	}}
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	ds, ok := loaded.Dataset("reviews")
	if !ok || ds.Table != "resenas" || len(loaded.Load.Datasets) != 1 {
		t.Fatalf("unexpected datasets: %+v", loaded.Load.Datasets)
	}
	if want := filepath.Join(dir, "biblioteca.db"); loaded.Paths.Database != want {
		t.Fatalf("database = %q, want %q", loaded.Paths.Database, want)
	}
}
