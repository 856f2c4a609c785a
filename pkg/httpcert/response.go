// Copyright 2025 Certen Protocol
//
// Builds the response headers hash and response hash of a certified
// exchange, per spec §4.3.
package httpcert

import (
	"crypto/sha256"
	"strings"

	"github.com/certen/http-certification/pkg/cel"
	"github.com/certen/http-certification/pkg/httpmodel"
	"github.com/certen/http-certification/pkg/rih"
)

// ResponseHeadersHash computes the RIH of the certified response header
// fields: [(":ic-cert-status", status_code)] ++ certified_headers_in_order,
// with the status entry present iff the certification does not opt out of
// it via ExcludeStatus.
func ResponseHeadersHash(resp httpmodel.HttpResponse, cert cel.ResponseCertification) [32]byte {
	var fields []rih.Field

	if !cert.ExcludeStatus {
		fields = append(fields, rih.Field{
			Name:  ":ic-cert-status",
			Value: rih.Uint(uint64(resp.StatusCode)),
		})
	}

	present := make(map[string]bool, len(resp.Headers))
	for _, hf := range resp.Headers {
		present[strings.ToLower(hf.Name)] = true
	}

	for _, hf := range resp.Headers {
		name := strings.ToLower(hf.Name)
		if cert.Headers.Includes(name, present) {
			fields = append(fields, rih.StringPair(name, hf.Value))
		}
	}

	return rih.Hash(fields)
}

// ResponseHash combines the headers hash with the body hash:
// SHA-256(headers_hash || SHA-256(body)).
func ResponseHash(headersHash [32]byte, body []byte) [32]byte {
	bodyHash := sha256.Sum256(body)
	h := sha256.New()
	h.Write(headersHash[:])
	h.Write(bodyHash[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
