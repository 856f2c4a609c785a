// Copyright 2025 Certen Protocol

package certheader

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Render serializes a Header back to its wire form, the inverse of Parse.
// Used by the v2 verification path to reattach the certificate header to a
// VerifiedResponse.
func Render(h Header) string {
	var b strings.Builder
	fmt.Fprintf(&b, "certificate=%s", encodeColonValue(h.Certificate))
	if len(h.Tree) > 0 {
		fmt.Fprintf(&b, ", tree=%s", encodeColonValue(h.Tree))
	}
	fmt.Fprintf(&b, ", version=%s", strconv.FormatUint(uint64(h.Version), 10))
	if len(h.ExprPath) > 0 {
		b.WriteString(", expr_path=[")
		for i, seg := range h.ExprPath {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(encodeColonValue([]byte(seg)))
		}
		b.WriteString("]")
	}
	return b.String()
}

func encodeColonValue(b []byte) string {
	return ":" + base64.StdEncoding.EncodeToString(b) + ":"
}
