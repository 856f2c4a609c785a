// Copyright 2025 Certen Protocol

package cel

import "strings"

// normalize reduces a rawExpr to one of the three canonical Expression
// variants: lower-casing and deduplicating header/query-param names, and
// collapsing a Full expression with an empty request block down to
// ResponseOnly (spec §9 Open Question #2).
func normalize(raw *rawExpr) (Expression, error) {
	if raw.skip {
		return Skip(), nil
	}

	resp, err := normalizeResponse(raw.response)
	if err != nil {
		return Expression{}, err
	}

	if raw.request == nil || isEmptyRequestCert(raw.request) {
		return ResponseOnly(resp), nil
	}

	req := RequestCertification{
		Headers:     lowerDedup(raw.request.certifiedHeaders),
		QueryParams: dedup(raw.request.certifiedQueryParams),
		Method:      true,
	}
	return Full(req, resp), nil
}

func isEmptyRequestCert(r *rawRequestCert) bool {
	return len(r.certifiedHeaders) == 0 && len(r.certifiedQueryParams) == 0
}

func normalizeResponse(raw *rawResponseCert) (ResponseCertification, error) {
	selector := HeaderSelector{ExcludeMode: raw.excludeHeaders}
	if raw.excludeHeaders {
		selector.Names = lowerDedup(raw.headersToExclude)
	} else {
		selector.Names = lowerDedup(raw.certifiedHeaders)
	}

	return ResponseCertification{
		Headers:       selector,
		ExcludeStatus: raw.excludeStatus,
	}, nil
}

func lowerDedup(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		lower := strings.ToLower(n)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, lower)
	}
	return out
}

func dedup(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Parse parses and normalizes a textual certification expression in one
// step, the entry point most callers use.
func Parse(src string) (Expression, error) {
	raw, err := parseExpr(src)
	if err != nil {
		return Expression{}, err
	}
	return normalize(raw)
}
