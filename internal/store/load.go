package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"biblioteca/internal/logging"
)

// LoadOptions controls LoadJSON.
type LoadOptions struct {
	// Replace drops an existing table of the same name before loading.
	Replace bool
}

// LoadResult summarizes a completed load.
type LoadResult struct {
	Table   string
	Rows    int64
	Columns []Column
	Elapsed time.Duration
}

// LoadJSON creates table from the JSON dataset at path. The column set is
// inferred from every record before any row is written, and all rows are
// inserted in one transaction.
func (s *Store) LoadJSON(ctx context.Context, table, path string, opts LoadOptions) (LoadResult, error) {
	start := time.Now()
	result := LoadResult{Table: table}
	if err := ValidateTableName(table); err != nil {
		return result, err
	}

	if !opts.Replace {
		exists, err := s.tableExists(ctx, s.db, table)
		if err != nil {
			return result, err
		}
		if exists {
			return result, fmt.Errorf("%s: %w", table, ErrTableExists)
		}
	}

	columns, err := inferColumns(ctx, path)
	if err != nil {
		return result, err
	}
	if len(columns) == 0 {
		return result, fmt.Errorf("%s: %w", path, ErrNoColumns)
	}
	result.Columns = columns

	rows, err := s.insertDataset(ctx, table, path, columns, opts.Replace)
	if err != nil {
		return result, err
	}
	result.Rows = rows
	result.Elapsed = time.Since(start)

	s.logger.Info("dataset loaded",
		logging.String(logging.FieldTable, table),
		logging.String(logging.FieldPath, path),
		logging.Int64("rows", rows),
		logging.Int("columns", len(columns)),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func inferColumns(ctx context.Context, path string) ([]Column, error) {
	builder := newSchemaBuilder()
	err := eachRecord(ctx, path, func(rec record) error {
		builder.observe(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return builder.columns(), nil
}

func (s *Store) insertDataset(ctx context.Context, table, path string, columns []Column, replace bool) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin load tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if replace {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
			return 0, fmt.Errorf("drop table %s: %w", table, err)
		}
	} else {
		exists, err := s.tableExists(ctx, tx, table)
		if err != nil {
			return 0, err
		}
		if exists {
			return 0, fmt.Errorf("%s: %w", table, ErrTableExists)
		}
	}

	if _, err := tx.ExecContext(ctx, createTableSQL(table, columns)); err != nil {
		return 0, fmt.Errorf("create table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	position := make(map[string]int, len(columns))
	for i, col := range columns {
		position[col.Name] = i
	}

	var rows int64
	err = eachRecord(ctx, path, func(rec record) error {
		args := make([]any, len(columns))
		for _, f := range rec {
			i, ok := position[f.key]
			if !ok {
				return &RecordError{Record: int(rows) + 1, Err: fmt.Errorf("key %q changed during load", f.key)}
			}
			value, err := convertValue(f.value, columns[i].Type)
			if err != nil {
				return &RecordError{Record: int(rows) + 1, Err: fmt.Errorf("column %s: %w", f.key, err)}
			}
			args[i] = value
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return &RecordError{Record: int(rows) + 1, Err: err}
		}
		rows++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit load: %w", err)
	}
	return rows, nil
}

// eachRecord streams the records of the dataset at path into fn.
func eachRecord(ctx context.Context, path string, fn func(record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader, err := newRecordReader(f)
	if err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := fn(rec); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
}

func createTableSQL(table string, columns []Column) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col.Name) + " " + string(col.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

func insertSQL(table string, columns []Column) string {
	names := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		names[i] = quoteIdent(col.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "))
}
