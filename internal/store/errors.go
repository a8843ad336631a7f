package store

import "errors"

var (
	// ErrTableExists is returned by LoadJSON when the target table already
	// exists and LoadOptions.Replace is false.
	ErrTableExists = errors.New("table already exists")
	// ErrInvalidIdentifier is returned for table names that are not plain
	// SQL identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrEmptyScript is returned when a schema script has no statements.
	ErrEmptyScript = errors.New("schema script is empty")
	// ErrNoColumns is returned when a dataset has no object keys to build
	// columns from.
	ErrNoColumns = errors.New("dataset has no columns")
)
