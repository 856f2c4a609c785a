// Copyright 2025 Certen Protocol
//
// CBOR wire encoding for hash trees, per the array-tagged representation
// used throughout the IC stack: [0] Empty, [1,L,R] Fork, [2,label,sub]
// Labeled, [3,value] Leaf, [4,hash] Pruned.
package hashtree

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const (
	tagEmpty   = 0
	tagFork    = 1
	tagLabeled = 2
	tagLeaf    = 3
	tagPruned  = 4
)

// Decode parses a CBOR-encoded hash tree.
func Decode(data []byte) (*Node, error) {
	var raw interface{}
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("hashtree: cbor decode: %w", err)
	}
	return decodeNode(raw)
}

func decodeNode(raw interface{}) (*Node, error) {
	items, ok := raw.([]interface{})
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("hashtree: expected non-empty array node, got %T", raw)
	}

	tag, ok := asUint(items[0])
	if !ok {
		return nil, fmt.Errorf("hashtree: node tag is not an integer")
	}

	switch tag {
	case tagEmpty:
		return NewEmpty(), nil
	case tagFork:
		if len(items) != 3 {
			return nil, fmt.Errorf("hashtree: fork node needs 2 children, got %d", len(items)-1)
		}
		left, err := decodeNode(items[1])
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(items[2])
		if err != nil {
			return nil, err
		}
		return NewFork(left, right), nil
	case tagLabeled:
		if len(items) != 3 {
			return nil, fmt.Errorf("hashtree: labeled node needs label+child, got %d", len(items)-1)
		}
		label, ok := asBytes(items[1])
		if !ok {
			return nil, fmt.Errorf("hashtree: labeled node label is not bytes")
		}
		child, err := decodeNode(items[2])
		if err != nil {
			return nil, err
		}
		return NewLabeled(label, child), nil
	case tagLeaf:
		if len(items) != 2 {
			return nil, fmt.Errorf("hashtree: leaf node needs 1 value, got %d", len(items)-1)
		}
		value, ok := asBytes(items[1])
		if !ok {
			return nil, fmt.Errorf("hashtree: leaf value is not bytes")
		}
		return NewLeaf(value), nil
	case tagPruned:
		if len(items) != 2 {
			return nil, fmt.Errorf("hashtree: pruned node needs 1 hash, got %d", len(items)-1)
		}
		raw, ok := asBytes(items[1])
		if !ok || len(raw) != 32 {
			return nil, fmt.Errorf("hashtree: pruned hash must be 32 bytes")
		}
		var h [32]byte
		copy(h[:], raw)
		return NewPruned(h), nil
	default:
		return nil, fmt.Errorf("hashtree: unknown node tag %d", tag)
	}
}

func asUint(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

func asBytes(v interface{}) ([]byte, bool) {
	b, ok := v.([]byte)
	return b, ok
}

// Encode serializes a hash tree to its CBOR array-tagged representation,
// primarily useful for building fixtures in tests.
func Encode(n *Node) ([]byte, error) {
	return cbor.Marshal(encodeValue(n))
}

func encodeValue(n *Node) interface{} {
	if n == nil {
		return []interface{}{tagEmpty}
	}
	switch n.kind {
	case Empty:
		return []interface{}{tagEmpty}
	case Fork:
		return []interface{}{tagFork, encodeValue(n.left), encodeValue(n.right)}
	case Labeled:
		return []interface{}{tagLabeled, n.label, encodeValue(n.child)}
	case Leaf:
		value := n.value
		if value == nil {
			// A nil slice would encode as CBOR null, which Decode rejects.
			value = []byte{}
		}
		return []interface{}{tagLeaf, value}
	case Pruned:
		return []interface{}{tagPruned, n.prunedHash[:]}
	default:
		return []interface{}{tagEmpty}
	}
}
