// Copyright 2025 Certen Protocol

package httpmodel

import "strings"

// HeaderField is an ordered (name, value) pair. Names are case-insensitive
// on lookup but preserved verbatim on the wire; duplicate names are
// permitted and order is semantically significant for hashing.
type HeaderField struct {
	Name  string
	Value string
}

// HeaderFields is an ordered list of HeaderField, with case-insensitive
// lookup helpers.
type HeaderFields []HeaderField

// Get returns the value of the first header matching name case-insensitively,
// and whether it was found.
func (h HeaderFields) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// GetAll returns the values of every header matching name case-insensitively,
// in their original order.
func (h HeaderFields) GetAll(name string) []string {
	var out []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			out = append(out, f.Value)
		}
	}
	return out
}

// With returns a copy of h with an additional header appended.
func (h HeaderFields) With(name, value string) HeaderFields {
	out := make(HeaderFields, len(h), len(h)+1)
	copy(out, h)
	return append(out, HeaderField{Name: name, Value: value})
}
