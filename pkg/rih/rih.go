// Copyright 2025 Certen Protocol
//
// Representation-Independent Hash (RIH)
//
// Hashes an ordered sequence of (name, value) fields in a way that does not
// depend on how the fields were encoded on the wire. This is the primitive
// every other certified hash in this module is built on: request hashing,
// response header hashing, and certification-expression hashing all reduce
// to an RIH call over a canonically ordered field list.
package rih

import (
	"crypto/sha256"

	"github.com/certen/http-certification/internal/leb128"
)

// Value is the value half of a (name, value) field. Exactly one of its
// fields is meaningful for a given Value; construct with the matching
// helper (Bytes, String, Uint, Array) rather than the struct literal.
type Value struct {
	kind  valueKind
	bytes []byte
	uint  uint64
	array []Value
}

type valueKind int

const (
	kindBytes valueKind = iota
	kindUint
	kindArray
)

// Bytes wraps a byte string value. Strings should be passed as their UTF-8
// bytes.
func Bytes(b []byte) Value { return Value{kind: kindBytes, bytes: b} }

// String wraps a UTF-8 string value.
func String(s string) Value { return Value{kind: kindBytes, bytes: []byte(s)} }

// Uint wraps an unsigned integer value, hashed as its minimal LEB128 encoding.
func Uint(v uint64) Value { return Value{kind: kindUint, uint: v} }

// Array wraps a nested list of values, hashed as H(concat_i H(element_i)).
func Array(vs []Value) Value { return Value{kind: kindArray, array: vs} }

// Field is a single ordered (name, value) pair. Duplicate names are
// permitted; order is semantically significant.
type Field struct {
	Name  string
	Value Value
}

// Pair is a convenience constructor for a byte-string field.
func Pair(name string, value []byte) Field {
	return Field{Name: name, Value: Bytes(value)}
}

// StringPair is a convenience constructor for a UTF-8 string field.
func StringPair(name, value string) Field {
	return Field{Name: name, Value: String(value)}
}

// hashValue computes value_encoded per the RIH contract:
//   - byte strings hash as themselves
//   - unsigned integers hash as their minimal LEB128 encoding
//   - arrays hash as H(concat_i H(element_i))
func hashValue(v Value) [32]byte {
	switch v.kind {
	case kindUint:
		return sha256.Sum256(leb128.EncodeUvarint(v.uint))
	case kindArray:
		var concat []byte
		for _, el := range v.array {
			h := hashValue(el)
			concat = append(concat, h[:]...)
		}
		return sha256.Sum256(concat)
	default:
		return sha256.Sum256(v.bytes)
	}
}

// Hash computes the representation-independent hash of an ordered field
// sequence: SHA-256(concat_i (H(name_i) || H(value_i))), pairs taken in the
// given order. This is a total function on well-formed input; there are no
// error conditions.
func Hash(fields []Field) [32]byte {
	h := sha256.New()
	for _, f := range fields {
		nameHash := sha256.Sum256([]byte(f.Name))
		valueHash := hashValue(f.Value)
		h.Write(nameHash[:])
		h.Write(valueHash[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
