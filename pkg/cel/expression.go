// Copyright 2025 Certen Protocol

package cel

// Kind identifies which of the three canonical certification-expression
// variants an Expression carries.
type Kind int

const (
	// KindSkip certifies only the expression's presence at its tree path;
	// no header or body is bound.
	KindSkip Kind = iota
	// KindResponseOnly certifies a subset of response headers and the body;
	// the request is not bound.
	KindResponseOnly
	// KindFull certifies request fields in addition to everything
	// KindResponseOnly certifies.
	KindFull
)

// HeaderSelector names the response headers a certification binds, either by
// an explicit include list or by excluding a list from the full response
// header set observed at hashing time. ExcludeMode selects whether Names is
// read as the include list or the exclude list.
type HeaderSelector struct {
	// Names is the set of header names to certify (ExcludeMode == false) or
	// to exclude from certification (ExcludeMode == true). Always
	// lower-cased and deduplicated by normalize.
	Names []string
	// ExcludeMode selects exclude-list semantics over include-list.
	ExcludeMode bool
}

// Includes reports whether name should be certified, given the actual set of
// header names present on the exchange (needed only for ExcludeMode, where
// the certified set is "everything except Names").
func (s HeaderSelector) Includes(name string, present map[string]bool) bool {
	if !s.ExcludeMode {
		for _, n := range s.Names {
			if n == name {
				return true
			}
		}
		return false
	}
	for _, n := range s.Names {
		if n == name {
			return false
		}
	}
	return present[name]
}

// RequestCertification is the request-binding portion of a Full expression.
// Method is always true per the invariant that Full always certifies method.
type RequestCertification struct {
	Headers      []string
	QueryParams  []string
	Method       bool
}

// ResponseCertification is the response-binding portion of a ResponseOnly or
// Full expression.
type ResponseCertification struct {
	Headers       HeaderSelector
	ExcludeStatus bool
}

// Expression is a normalized certification expression: exactly one of the
// three canonical forms described in spec §3. Construct via Parse, not
// directly — the zero value is not a valid Expression.
type Expression struct {
	kind     Kind
	request  *RequestCertification // nil unless kind == KindFull
	response *ResponseCertification // nil iff kind == KindSkip
}

// Kind reports which canonical variant this expression holds.
func (e Expression) Kind() Kind { return e.kind }

// Request returns the request certification of a Full expression, or nil for
// Skip/ResponseOnly.
func (e Expression) Request() *RequestCertification { return e.request }

// Response returns the response certification of a ResponseOnly or Full
// expression, or nil for Skip.
func (e Expression) Response() *ResponseCertification { return e.response }

// Skip constructs the Skip expression.
func Skip() Expression {
	return Expression{kind: KindSkip}
}

// ResponseOnly constructs a ResponseOnly expression.
func ResponseOnly(resp ResponseCertification) Expression {
	r := resp
	return Expression{kind: KindResponseOnly, response: &r}
}

// Full constructs a Full expression. Method is forced true, per invariant.
func Full(req RequestCertification, resp ResponseCertification) Expression {
	req.Method = true
	r, q := req, resp
	return Expression{kind: KindFull, request: &r, response: &q}
}
