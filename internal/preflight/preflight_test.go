package preflight

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"biblioteca/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if result.Err() != nil {
		t.Fatalf("passed result should have nil Err, got %v", result.Err())
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !errors.Is(result.Err(), fs.ErrNotExist) {
		t.Fatalf("expected Err to wrap fs.ErrNotExist, got %v", result.Err())
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
	if !strings.Contains(result.Err().Error(), "is not a directory") {
		t.Fatalf("unexpected error: %v", result.Err())
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "books.json")
	if err := os.WriteFile(f, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if r := CheckFileReadable("source", f); !r.Passed {
		t.Fatalf("expected readable file to pass: %s", r.Detail)
	}
	if r := CheckFileReadable("source", dir); r.Passed {
		t.Fatal("expected directory to fail the file check")
	}
	r := CheckFileReadable("source", filepath.Join(dir, "missing.json"))
	if r.Passed {
		t.Fatal("expected missing file to fail")
	}
	if !errors.Is(r.Err(), fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", r.Err())
	}
}

func TestForFilterReportsFirstFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "books.json")
	err := FirstFailure(ForFilter(missing))
	if err == nil {
		t.Fatal("expected failure for missing source")
	}
	if !strings.HasPrefix(err.Error(), "Filter source") {
		t.Fatalf("expected source check to fail first, got %v", err)
	}
}

func TestForDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Database = filepath.Join(dir, "biblioteca.db")

	results := ForDatabase(&cfg)
	if len(results) != 1 {
		t.Fatalf("expected only the directory check, got %d results", len(results))
	}
	if err := FirstFailure(results); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}

	cfg.Paths.SchemaFile = filepath.Join(dir, "create_tables.sql")
	if err := FirstFailure(ForDatabase(&cfg)); err == nil {
		t.Fatal("expected missing schema file to fail")
	}
	if ForDatabase(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
