package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// field is one key/value pair of a record, value left as raw JSON.
type field struct {
	key   string
	value json.RawMessage
}

// record keeps object keys in document order. A repeated key keeps its
// first position and its last value.
type record []field

// recordReader yields objects from a JSON array or an NDJSON stream.
type recordReader struct {
	dec     *json.Decoder
	array   bool
	started bool
	done    bool
	n       int
}

// RecordError reports a malformed record and its 1-based position.
type RecordError struct {
	Record int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Record, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

var errNotObject = errors.New("not a JSON object")

func newRecordReader(r io.Reader) (*recordReader, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	dec := json.NewDecoder(br)
	return &recordReader{dec: dec, array: first == '[', done: errors.Is(err, io.EOF)}, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for i := 1; ; i++ {
		buf, err := br.Peek(i)
		if len(buf) < i {
			return 0, err
		}
		c := buf[i-1]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return c, nil
		}
	}
}

// Next returns the next record or io.EOF.
func (rr *recordReader) Next() (record, error) {
	if rr.done {
		return nil, io.EOF
	}
	if rr.array && !rr.started {
		if _, err := rr.dec.Token(); err != nil {
			return nil, &RecordError{Record: 1, Err: err}
		}
		rr.started = true
	}
	if rr.array && !rr.dec.More() {
		if _, err := rr.dec.Token(); err != nil {
			return nil, &RecordError{Record: rr.n + 1, Err: err}
		}
		if _, err := rr.dec.Token(); !errors.Is(err, io.EOF) {
			return nil, &RecordError{Record: rr.n + 1, Err: errors.New("unexpected data after array")}
		}
		rr.done = true
		return nil, io.EOF
	}

	var raw json.RawMessage
	if err := rr.dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) && !rr.array {
			rr.done = true
			return nil, io.EOF
		}
		return nil, &RecordError{Record: rr.n + 1, Err: err}
	}
	rr.n++
	rec, err := parseRecord(raw)
	if err != nil {
		return nil, &RecordError{Record: rr.n, Err: err}
	}
	return rec, nil
}

func parseRecord(raw json.RawMessage) (record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}
	var rec record
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		if key == "" {
			return nil, errors.New("empty object key")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if i, ok := index[key]; ok {
			rec[i].value = value
			continue
		}
		index[key] = len(rec)
		rec = append(rec, field{key: key, value: value})
	}
	return rec, nil
}
