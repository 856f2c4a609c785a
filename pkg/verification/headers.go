// Copyright 2025 Certen Protocol

package verification

import (
	"strings"

	"github.com/certen/http-certification/pkg/cel"
	"github.com/certen/http-certification/pkg/httpmodel"
)

// filterResponseHeaders returns the subset of resp.Headers the certification
// binds, preserving their original order — order is significant because the
// certified hash depends on it.
func filterResponseHeaders(resp httpmodel.HttpResponse, cert cel.ResponseCertification) httpmodel.HeaderFields {
	present := make(map[string]bool, len(resp.Headers))
	for _, hf := range resp.Headers {
		present[strings.ToLower(hf.Name)] = true
	}

	var out httpmodel.HeaderFields
	for _, hf := range resp.Headers {
		if cert.Headers.Includes(strings.ToLower(hf.Name), present) {
			out = append(out, hf)
		}
	}
	return out
}
