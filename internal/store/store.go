package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"biblioteca/internal/logging"
)

//go:embed schema.sql
var defaultSchema string

// DefaultSchema returns the built-in schema script used when no schema file
// is configured. It is safe to run repeatedly.
func DefaultSchema() string {
	return defaultSchema
}

// Store manages the catalog database.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// TableInfo describes one user table.
type TableInfo struct {
	Name    string
	Columns int
	Rows    int64
}

// Open creates or connects to the database file at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("open sqlite db: empty path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps per-connection pragmas in effect for every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	logger = logging.NewComponentLogger(logger, "store")
	logger.Debug("database opened", logging.String(logging.FieldPath, path))
	return &Store{db: db, path: path, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// ExecScript runs a possibly multi-statement SQL script in one transaction.
func (s *Store) ExecScript(ctx context.Context, script string) error {
	if strings.TrimSpace(script) == "" {
		return ErrEmptyScript
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin script tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("execute script: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit script: %w", err)
	}
	return nil
}

// ExecFile reads path and runs it with ExecScript.
func (s *Store) ExecFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema file: %w", err)
	}
	if err := s.ExecScript(ctx, string(data)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Info("schema applied", logging.String(logging.FieldPath, path))
	return nil
}

// Tables lists user tables sorted by name with their column and row counts.
func (s *Store) Tables(ctx context.Context) ([]TableInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list tables: %w", err)
	}
	_ = rows.Close()

	infos := make([]TableInfo, 0, len(names))
	for _, name := range names {
		info := TableInfo{Name: name}
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info(?)`, name).Scan(&info.Columns); err != nil {
			return nil, fmt.Errorf("count columns of %s: %w", name, err)
		}
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+quoteIdent(name)).Scan(&info.Rows); err != nil {
			return nil, fmt.Errorf("count rows of %s: %w", name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *Store) tableExists(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, table string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ? COLLATE NOCASE`, table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return count > 0, nil
}
