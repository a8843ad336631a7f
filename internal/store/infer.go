package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ColumnType is the storage type chosen for a loaded column.
type ColumnType string

const (
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
	TypeBoolean ColumnType = "BOOLEAN"
	TypeJSON    ColumnType = "JSON"
	TypeText    ColumnType = "TEXT"
)

// Column is an inferred dataset column.
type Column struct {
	Name string
	Type ColumnType
}

// valueKind classifies a single JSON value. kindNull carries no type
// information and never narrows a column.
type valueKind int

const (
	kindNull valueKind = iota
	kindInteger
	kindReal
	kindBoolean
	kindJSON
	kindText
)

func kindOf(raw json.RawMessage) valueKind {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return kindNull
	}
	switch raw[0] {
	case 'n':
		return kindNull
	case 't', 'f':
		return kindBoolean
	case '"':
		return kindText
	case '{', '[':
		return kindJSON
	}
	if _, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return kindInteger
	}
	// Numbers that do not fit int64 or float64 keep their literal as text.
	if !bytes.ContainsAny(raw, ".eE") {
		return kindText
	}
	if _, err := strconv.ParseFloat(string(raw), 64); err != nil {
		return kindText
	}
	return kindReal
}

func mergeKinds(a, b valueKind) valueKind {
	switch {
	case a == kindNull:
		return b
	case b == kindNull, a == b:
		return a
	case (a == kindInteger && b == kindReal) || (a == kindReal && b == kindInteger):
		return kindReal
	default:
		return kindText
	}
}

func (k valueKind) columnType() ColumnType {
	switch k {
	case kindInteger:
		return TypeInteger
	case kindReal:
		return TypeReal
	case kindBoolean:
		return TypeBoolean
	case kindJSON:
		return TypeJSON
	default:
		return TypeText
	}
}

// schemaBuilder accumulates the column union across records.
type schemaBuilder struct {
	names []string
	kinds map[string]valueKind
}

func newSchemaBuilder() *schemaBuilder {
	return &schemaBuilder{kinds: make(map[string]valueKind)}
}

func (b *schemaBuilder) observe(rec record) {
	for _, f := range rec {
		kind, seen := b.kinds[f.key]
		if !seen {
			b.names = append(b.names, f.key)
		}
		b.kinds[f.key] = mergeKinds(kind, kindOf(f.value))
	}
}

func (b *schemaBuilder) columns() []Column {
	cols := make([]Column, 0, len(b.names))
	for _, name := range b.names {
		cols = append(cols, Column{Name: name, Type: b.kinds[name].columnType()})
	}
	return cols
}

// convertValue maps a raw JSON value onto the driver value stored in a
// column of type typ.
func convertValue(raw json.RawMessage, typ ColumnType) (any, error) {
	raw = bytes.TrimSpace(raw)
	kind := kindOf(raw)
	if kind == kindNull {
		return nil, nil
	}
	switch typ {
	case TypeInteger:
		return strconv.ParseInt(string(raw), 10, 64)
	case TypeReal:
		return strconv.ParseFloat(string(raw), 64)
	case TypeBoolean:
		if raw[0] == 't' {
			return int64(1), nil
		}
		return int64(0), nil
	case TypeJSON:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.String(), nil
	case TypeText:
		if raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, err
			}
			return s, nil
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.String(), nil
	}
	return nil, fmt.Errorf("unsupported column type %q", typ)
}
