// Copyright 2025 Certen Protocol
//
// HTTP request data model, grounded on the original http_request.rs builder
// shape: a value type plus a fluent builder that produces it.
package httpmodel

import (
	"fmt"
	"net/url"
)

// HttpRequest is the inbound half of an HTTP exchange the core certifies or
// verifies. URL may include scheme/host/path/query; CertificateVersion is the
// client's requested minimum protocol version, absent meaning 1.
type HttpRequest struct {
	Method             string
	URL                string
	Headers            HeaderFields
	Body               []byte
	CertificateVersion *uint16
}

// Path returns the decoded path component of the request URL, without
// domain, query parameters, or fragment.
func (r HttpRequest) Path() (string, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", fmt.Errorf("malformed url %q: %w", r.URL, err)
	}
	return u.Path, nil
}

// Query returns the raw query string of the request URL, if any.
func (r HttpRequest) Query() (string, bool, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", false, fmt.Errorf("malformed url %q: %w", r.URL, err)
	}
	if u.RawQuery == "" {
		return "", false, nil
	}
	return u.RawQuery, true, nil
}

// QueryValues parses the request URL's query parameters.
func (r HttpRequest) QueryValues() (url.Values, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return nil, fmt.Errorf("malformed url %q: %w", r.URL, err)
	}
	return u.Query(), nil
}

// RequestBuilder constructs an HttpRequest fluently.
type RequestBuilder struct {
	req HttpRequest
}

// NewRequestBuilder starts a builder for the given method and URL.
func NewRequestBuilder(method, url string) *RequestBuilder {
	return &RequestBuilder{req: HttpRequest{Method: method, URL: url}}
}

// WithHeader appends a header field.
func (b *RequestBuilder) WithHeader(name, value string) *RequestBuilder {
	b.req.Headers = append(b.req.Headers, HeaderField{Name: name, Value: value})
	return b
}

// WithBody sets the request body.
func (b *RequestBuilder) WithBody(body []byte) *RequestBuilder {
	b.req.Body = body
	return b
}

// WithCertificateVersion sets the client's requested minimum protocol version.
func (b *RequestBuilder) WithCertificateVersion(version uint16) *RequestBuilder {
	b.req.CertificateVersion = &version
	return b
}

// Build returns the constructed HttpRequest.
func (b *RequestBuilder) Build() HttpRequest {
	return b.req
}
