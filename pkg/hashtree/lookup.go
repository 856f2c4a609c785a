// Copyright 2025 Certen Protocol

package hashtree

// LookupStatus classifies the outcome of looking up a label path in a hash
// tree witness.
type LookupStatus int

const (
	// Found means the path terminated at a Leaf and Value holds its bytes.
	Found LookupStatus = iota
	// Absent means every sibling at some level was disclosed and none
	// matched the next path label: the tree proves the path does not exist.
	Absent
	// Unknown means a Pruned node stood where the next path label might
	// have been, so the witness cannot prove presence or absence.
	Unknown
	// Malformed means the witness shape itself is invalid for a lookup:
	// a Fork or Labeled node at the end of the path.
	Malformed
)

// Result is the outcome of Lookup.
type Result struct {
	Status LookupStatus
	Value  []byte
}

// Lookup walks a hash tree along an ordered label path, per spec §4.4's
// witness-path resolution rule: each path segment selects the Labeled
// sibling with a matching label among the Fork-separated children at that
// level; a Pruned sibling anywhere in that sibling set makes the outcome
// Unknown rather than Absent, since the witness author may have pruned the
// very label being searched for.
func Lookup(root *Node, path [][]byte) Result {
	node := root
	for _, label := range path {
		siblings := flatten(node)

		var next *Node
		sawPruned := false
		for _, s := range siblings {
			switch s.kind {
			case Labeled:
				if bytesEqual(s.label, label) {
					next = s.child
				}
			case Pruned:
				sawPruned = true
			}
		}

		if next != nil {
			node = next
			continue
		}
		if sawPruned {
			return Result{Status: Unknown}
		}
		return Result{Status: Absent}
	}

	if node == nil {
		return Result{Status: Absent}
	}
	switch node.kind {
	case Leaf:
		return Result{Status: Found, Value: node.value}
	case Pruned:
		return Result{Status: Unknown}
	case Empty:
		return Result{Status: Absent}
	default:
		return Result{Status: Malformed}
	}
}

// flatten expands nested Forks into the flat list of direct children they
// combine, so label lookup can scan a sibling set irrespective of how it was
// balanced into Forks.
func flatten(n *Node) []*Node {
	if n == nil {
		return nil
	}
	if n.kind != Fork {
		return []*Node{n}
	}
	return append(flatten(n.left), flatten(n.right)...)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
