// Copyright 2025 Certen Protocol
//
// Certified hash tree (spec §4.4): a labeled Merkle tree with five node
// kinds — Empty, Fork, Labeled, Leaf, Pruned — whose root digest is signed
// by the subnet and delivered to the client as a witness. Verifying a
// witness means re-deriving this digest from the disclosed nodes and
// comparing it, in constant time, against the digest bound into the
// certificate.
package hashtree

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Kind identifies which of the five canonical node shapes a Node holds.
type Kind int

const (
	// Empty is the zero-information node: digest is a fixed domain-separated
	// constant, independent of any data.
	Empty Kind = iota
	// Fork combines two subtrees into one.
	Fork
	// Labeled attaches a byte-string label to a single child subtree; forks
	// of labeled children are expected to carry strictly increasing labels.
	Labeled
	// Leaf carries an opaque value; its digest binds that value directly.
	Leaf
	// Pruned replaces a subtree the verifier does not need with the
	// precomputed digest of what was pruned, keeping the witness small.
	Pruned
)

// Node is a hash tree node. Exactly one field group is meaningful per Kind;
// build with the constructors below rather than the struct literal.
type Node struct {
	kind        Kind
	left, right *Node    // Fork
	label       []byte   // Labeled
	child       *Node    // Labeled
	value       []byte   // Leaf
	prunedHash  [32]byte // Pruned
}

// NewEmpty constructs an Empty node.
func NewEmpty() *Node { return &Node{kind: Empty} }

// NewFork constructs a Fork of two subtrees.
func NewFork(left, right *Node) *Node { return &Node{kind: Fork, left: left, right: right} }

// NewLabeled constructs a Labeled node binding label to child.
func NewLabeled(label []byte, child *Node) *Node {
	return &Node{kind: Labeled, label: label, child: child}
}

// NewLeaf constructs a Leaf node carrying value.
func NewLeaf(value []byte) *Node { return &Node{kind: Leaf, value: value} }

// NewPruned constructs a Pruned node standing in for a subtree whose digest
// is already known.
func NewPruned(hash [32]byte) *Node { return &Node{kind: Pruned, prunedHash: hash} }

// Kind reports which canonical shape this node holds.
func (n *Node) Kind() Kind { return n.kind }

// Domain separation prefixes, per the hash tree construction this module
// implements: every digest is computed over a constant tag identifying the
// node kind, so a Leaf digest can never collide with a Labeled or Fork
// digest over the same bytes.
var (
	domainEmpty   = []byte("ic-hashtree-empty")
	domainFork    = []byte("ic-hashtree-fork")
	domainLabeled = []byte("ic-hashtree-labeled")
	domainLeaf    = []byte("ic-hashtree-leaf")
)

// Digest computes the root digest of a hash tree node, recursively hashing
// subtrees and substituting a Pruned node's stored digest directly.
func Digest(n *Node) [32]byte {
	if n == nil {
		return sha256.Sum256(domainEmpty)
	}

	switch n.kind {
	case Empty:
		return sha256.Sum256(domainEmpty)
	case Pruned:
		return n.prunedHash
	case Leaf:
		h := sha256.New()
		h.Write(domainLeaf)
		h.Write(n.value)
		return sum(h)
	case Labeled:
		childDigest := Digest(n.child)
		h := sha256.New()
		h.Write(domainLabeled)
		h.Write(n.label)
		h.Write(childDigest[:])
		return sum(h)
	case Fork:
		leftDigest := Digest(n.left)
		rightDigest := Digest(n.right)
		h := sha256.New()
		h.Write(domainFork)
		h.Write(leftDigest[:])
		h.Write(rightDigest[:])
		return sum(h)
	default:
		return sha256.Sum256(nil)
	}
}

func sum(h interface{ Sum([]byte) []byte }) [32]byte {
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// MatchesRoot reports whether n's digest equals expectedRoot, compared in
// constant time to avoid leaking timing information about where a mismatch
// occurs.
func MatchesRoot(n *Node, expectedRoot [32]byte) bool {
	digest := Digest(n)
	return subtle.ConstantTimeCompare(digest[:], expectedRoot[:]) == 1
}
