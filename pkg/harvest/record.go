package harvest

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Record is a flat record with ordered keys. Column order of CSV files
// follows the keys of the first record.
type Record struct {
	keys []string
	vals map[string]string
}

// NewRecord creates an empty Record.
func NewRecord() Record {
	return Record{vals: make(map[string]string)}
}

// Set adds or replaces a value. New keys are appended to the end.
func (r *Record) Set(key, val string) {
	if r.vals == nil {
		r.vals = make(map[string]string)
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = val
}

// Get returns the value of the key.
func (r Record) Get(key string) string {
	return r.vals[key]
}

// Has returns true if the key was set.
func (r Record) Has(key string) bool {
	_, ok := r.vals[key]
	return ok
}

// Keys returns keys in insertion order.
func (r Record) Keys() []string {
	return slices.Clone(r.keys)
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.keys)
}

// Map returns a copy of values.
func (r Record) Map() map[string]string {
	res := make(map[string]string, len(r.vals))
	for k, v := range r.vals {
		res[k] = v
	}
	return res
}

// Values returns values for the given keys; missing keys give "".
func (r Record) Values(keys []string) []string {
	res := make([]string, len(keys))
	for i, k := range keys {
		res[i] = r.vals[k]
	}
	return res
}

// MarshalJSON renders the record as an object with ordered keys.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
