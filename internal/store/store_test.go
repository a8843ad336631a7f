package store_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"biblioteca/internal/store"
	"biblioteca/internal/testsupport"
)

func openReader(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDefaultSchemaIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := st.ExecScript(ctx, store.DefaultSchema()); err != nil {
			t.Fatalf("ExecScript run %d: %v", i+1, err)
		}
	}

	tables, err := st.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected one table, got %#v", tables)
	}
	if got := tables[0]; got.Name != "guardados" || got.Columns != 3 || got.Rows != 0 {
		t.Fatalf("unexpected table info: %#v", got)
	}
}

func TestExecScriptRejectsEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if err := st.ExecScript(context.Background(), "  \n\t"); !errors.Is(err, store.ErrEmptyScript) {
		t.Fatalf("expected ErrEmptyScript, got %v", err)
	}
}

func TestExecScriptRollsBackOnFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	script := "CREATE TABLE partial (x INTEGER);\nINSERT INTO missing VALUES (1);"
	if err := st.ExecScript(ctx, script); err == nil {
		t.Fatal("expected script error")
	}
	tables, err := st.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if len(tables) != 0 {
		t.Fatalf("expected failed script to leave no tables, got %#v", tables)
	}
}

func TestExecFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	path := filepath.Join(testsupport.BaseDir(cfg), "create_tables.sql")
	testsupport.WriteFile(t, path, `
CREATE TABLE shelves (id INTEGER PRIMARY KEY, name TEXT);
INSERT INTO shelves (name) VALUES ('leidos'), ('pendientes');
`)
	if err := st.ExecFile(ctx, path); err != nil {
		t.Fatalf("ExecFile: %v", err)
	}
	tables, err := st.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if len(tables) != 1 || tables[0].Name != "shelves" || tables[0].Rows != 2 {
		t.Fatalf("unexpected tables: %#v", tables)
	}

	if err := st.ExecFile(ctx, filepath.Join(testsupport.BaseDir(cfg), "absent.sql")); err == nil {
		t.Fatal("expected error for missing schema file")
	}
}

func TestTablesSortedByName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := st.ExecScript(ctx, "CREATE TABLE zeta (a); CREATE TABLE alpha (a, b); CREATE TABLE mid (a);"); err != nil {
		t.Fatalf("ExecScript: %v", err)
	}
	tables, err := st.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	var names []string
	for _, info := range tables {
		names = append(names, info.Name)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if tables[0].Columns != 2 {
		t.Fatalf("alpha columns = %d, want 2", tables[0].Columns)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := store.Open(context.Background(), " ", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}
