// Package record holds the ordered field map produced by the table parser.
package record

import (
	"bytes"
	"encoding/json"
	"iter"
)

// Record maps field names to values in header order (immutable value object).
// Missing values read as "".
type Record struct {
	fields []string
	values map[string]string
}

// New builds a Record from header names and one row of values.
// Duplicate names keep their first position; the later value wins.
// Missing trailing values become "", extra values are dropped.
func New(header, row []string) Record {
	fields := make([]string, 0, len(header))
	values := make(map[string]string, len(header))
	for i, name := range header {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		if _, dup := values[name]; !dup {
			fields = append(fields, name)
		}
		values[name] = v
	}
	return Record{fields: fields, values: values}
}

// Get returns the value of a field, or "" if the field is absent.
func (r Record) Get(name string) string { return r.values[name] }

// Fields returns the field names in header order.
func (r Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// All yields name/value pairs in header order.
func (r Record) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, f := range r.fields {
			if !yield(f, r.values[f]) {
				return
			}
		}
	}
}

// Map returns a copy of the values keyed by field name.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the record as a JSON object preserving header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[f])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
