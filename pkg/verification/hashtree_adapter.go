// Copyright 2025 Certen Protocol

package verification

import "github.com/certen/http-certification/pkg/hashtree"

func decodeHashTree(cborTree []byte) (*hashtree.Node, error) {
	return hashtree.Decode(cborTree)
}
