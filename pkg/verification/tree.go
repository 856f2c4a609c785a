// Copyright 2025 Certen Protocol
//
// Applies spec §4.4's domain semantics — v1 asset paths and v2 expr_path
// witness shapes — on top of pkg/hashtree's generic Lookup/Digest
// primitives.
package verification

import (
	"bytes"

	"github.com/certen/http-certification/pkg/certheader"
	"github.com/certen/http-certification/pkg/hashtree"
)

// absentRequestSentinel is the witness-path label standing in for a request
// hash when the certification does not bind the request (ResponseOnly).
var absentRequestSentinel = []byte("<>")

func toByteSegments(segments []string) [][]byte {
	out := make([][]byte, len(segments))
	for i, s := range segments {
		out[i] = []byte(s)
	}
	return out
}

// validateV1Body checks the v1 witness: the tree's root digest must equal
// certifiedData, and ["http_assets", requestPath] must resolve to a Leaf
// carrying bodyHash.
func validateV1Body(tree *hashtree.Node, certifiedData [32]byte, requestPath string, bodyHash [32]byte) error {
	if !hashtree.MatchesRoot(tree, certifiedData) {
		return &TreeMismatchError{}
	}

	path := toByteSegments(certheader.AssetPathSegments(requestPath))
	res := hashtree.Lookup(tree, path)
	if res.Status != hashtree.Found {
		return &LeafMissingError{Path: "/http_assets" + requestPath}
	}
	if !bytes.Equal(res.Value, bodyHash[:]) {
		return &LeafMissingError{Path: "/http_assets" + requestPath}
	}
	return nil
}

// validateExprPathShape checks that the disclosed expr_path ends at the
// canonical "<$>" terminator.
func validateExprPathShape(exprPath []string) error {
	if len(exprPath) == 0 || exprPath[len(exprPath)-1] != certheader.TerminalSentinel {
		return &PathShapeInvalidError{Reason: "expr_path must end with the \"<$>\" terminator"}
	}
	return nil
}

// validateV2Skip checks the Skip witness shape: at the terminus, a Leaf
// carrying exprHash must exist one hop below "<$>", keyed by exprHash
// itself.
func validateV2Skip(tree *hashtree.Node, certifiedData [32]byte, exprPath []string, exprHash [32]byte) error {
	if !hashtree.MatchesRoot(tree, certifiedData) {
		return &TreeMismatchError{}
	}
	if err := validateExprPathShape(exprPath); err != nil {
		return err
	}

	path := append(toByteSegments(exprPath), exprHash[:])
	res := hashtree.Lookup(tree, path)
	if res.Status != hashtree.Found {
		return &ExprHashMismatchError{}
	}
	if !bytes.Equal(res.Value, exprHash[:]) {
		return &ExprHashMismatchError{}
	}
	return nil
}

// validateV2Hashes checks the Full/ResponseOnly witness shape: below "<$>",
// a Leaf must exist at [exprHash, requestHashOrSentinel, responseHash].
func validateV2Hashes(
	tree *hashtree.Node,
	certifiedData [32]byte,
	exprPath []string,
	exprHash, requestHash, responseHash [32]byte,
	hasRequest bool,
) error {
	if !hashtree.MatchesRoot(tree, certifiedData) {
		return &TreeMismatchError{}
	}
	if err := validateExprPathShape(exprPath); err != nil {
		return err
	}

	requestSegment := absentRequestSentinel
	if hasRequest {
		requestSegment = requestHash[:]
	}

	path := append(toByteSegments(exprPath), exprHash[:], requestSegment, responseHash[:])
	res := hashtree.Lookup(tree, path)
	if res.Status != hashtree.Found {
		if hasRequest {
			return &RequestHashMismatchError{}
		}
		return &ResponseHashMismatchError{}
	}
	if len(res.Value) != 0 {
		return &ResponseHashMismatchError{}
	}
	return nil
}
