// Package store wraps the embedded SQLite database that holds the library
// catalog.
//
// It runs schema scripts, loads JSON datasets into tables whose columns are
// inferred from the data, and reports the tables it holds. A dataset may be a
// top-level JSON array of objects or newline-delimited objects; the format is
// detected from the first non-whitespace byte. Loading reads the file twice:
// once to infer the column set and types, once to insert rows inside a single
// transaction, so a bad record leaves no partial table behind.
//
// Unlike the line filter, loading has no best-effort mode. A malformed record
// aborts the load and reports its position.
package store
