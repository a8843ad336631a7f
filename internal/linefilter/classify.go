package linefilter

import (
	"bytes"
	"encoding/json"

	"biblioteca/internal/language"
)

type outcome int

const (
	outcomeKept outcome = iota
	outcomeMalformed
	outcomeUnmatched
)

// matcher decides the fate of a single line.
type matcher struct {
	field   string
	allowed language.Set
}

func (m matcher) classify(line []byte) (outcome, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return outcomeMalformed, errEmptyLine
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return outcomeMalformed, err
	}
	// "null" decodes into a nil map without error.
	if record == nil {
		return outcomeMalformed, errNotObject
	}

	raw, ok := record[m.field]
	if !ok || len(raw) == 0 || raw[0] != '"' {
		return outcomeUnmatched, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return outcomeUnmatched, nil
	}
	if !m.allowed.Contains(value) {
		return outcomeUnmatched, nil
	}
	return outcomeKept, nil
}
