// Copyright 2025 Certen Protocol
//
// Builds the request leaf hash of a Full certification: RIH of
// [("request_certification", RIH(fields))], where fields are :method,
// :scheme, :host, :path, :query, and each certified header.
package httpcert

import (
	"net/url"
	"strings"

	"github.com/certen/http-certification/pkg/cel"
	"github.com/certen/http-certification/pkg/httpmodel"
	"github.com/certen/http-certification/pkg/rih"
)

// RequestHash computes the request hash of a Full certification over the
// given exchange and request certification fields.
func RequestHash(req httpmodel.HttpRequest, cert cel.RequestCertification) ([32]byte, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return [32]byte{}, &MalformedURLError{URL: req.URL, Err: err}
	}

	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}

	path, err := url.PathUnescape(u.Path)
	if err != nil {
		return [32]byte{}, &MalformedURLError{URL: req.URL, Err: err}
	}

	var fields []rih.Field
	fields = append(fields, rih.StringPair(":method", strings.ToUpper(req.Method)))
	fields = append(fields, rih.StringPair(":scheme", scheme))
	fields = append(fields, rih.StringPair(":host", u.Host))
	fields = append(fields, rih.StringPair(":path", path))
	fields = append(fields, rih.StringPair(":query", certifiedQuery(u.RawQuery, cert.QueryParams)))

	for _, name := range cert.Headers {
		if value, ok := req.Headers.Get(name); ok {
			fields = append(fields, rih.StringPair(name, value))
		}
		// Headers listed but absent on the exchange contribute nothing,
		// per spec: "missing headers enumerated in the CEL expression are
		// hashed as absent."
	}

	inner := rih.Hash(fields)
	outer := rih.Hash([]rih.Field{rih.Pair("request_certification", inner[:])})
	return outer, nil
}

// certifiedQuery concatenates the query parameters named in params, in the
// order they appear in rawQuery, preserving their original "k=v" encoding.
func certifiedQuery(rawQuery string, params []string) string {
	if rawQuery == "" || len(params) == 0 {
		return ""
	}

	wanted := make(map[string]bool, len(params))
	for _, p := range params {
		wanted[p] = true
	}

	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		key := pair
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			key = pair[:idx]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if wanted[key] {
			kept = append(kept, pair)
		}
	}

	return strings.Join(kept, "&")
}
