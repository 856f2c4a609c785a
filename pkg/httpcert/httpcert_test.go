// Copyright 2025 Certen Protocol

package httpcert

import (
	"testing"

	"github.com/certen/http-certification/pkg/cel"
	"github.com/certen/http-certification/pkg/httpmodel"
)

func TestRequestHash_Deterministic(t *testing.T) {
	req := httpmodel.NewRequestBuilder("GET", "https://example.com/a?q=1&unwanted=2").
		WithHeader("Accept", "text/html").
		Build()
	cert := cel.RequestCertification{Headers: []string{"accept"}, QueryParams: []string{"q"}, Method: true}

	h1, err := RequestHash(req, cert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := RequestHash(req, cert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 != h2 {
		t.Errorf("expected deterministic hash")
	}
}

func TestRequestHash_MissingHeaderOmitted(t *testing.T) {
	withHeader := httpmodel.NewRequestBuilder("GET", "https://example.com/a").
		WithHeader("Accept", "text/html").
		Build()
	withoutHeader := httpmodel.NewRequestBuilder("GET", "https://example.com/a").Build()

	cert := cel.RequestCertification{Headers: []string{"accept"}, Method: true}

	hWith, err := RequestHash(withHeader, cert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hWithout, err := RequestHash(withoutHeader, cert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hWith == hWithout {
		t.Errorf("expected a header present vs absent to hash differently")
	}
}

func TestRequestHash_QueryFiltersUncertifiedParams(t *testing.T) {
	cert := cel.RequestCertification{QueryParams: []string{"q"}, Method: true}

	a := httpmodel.NewRequestBuilder("GET", "https://example.com/a?q=1&unwanted=2").Build()
	b := httpmodel.NewRequestBuilder("GET", "https://example.com/a?q=1&unwanted=999").Build()

	ha, err := RequestHash(a, cert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hb, err := RequestHash(b, cert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ha != hb {
		t.Errorf("expected uncertified query params to not affect the hash")
	}
}

func TestRequestHash_MalformedURL(t *testing.T) {
	req := httpmodel.HttpRequest{Method: "GET", URL: "http://[::1"}
	_, err := RequestHash(req, cel.RequestCertification{})
	if _, ok := err.(*MalformedURLError); !ok {
		t.Fatalf("expected MalformedURLError, got %v", err)
	}
}

func TestResponseHeadersHash_StatusOptOut(t *testing.T) {
	resp := httpmodel.NewResponseBuilder(httpmodel.StatusOK).
		WithHeader("Content-Type", "text/html").
		Build()
	sel := cel.HeaderSelector{Names: []string{"content-type"}}

	included := ResponseHeadersHash(resp, cel.ResponseCertification{Headers: sel})
	excluded := ResponseHeadersHash(resp, cel.ResponseCertification{Headers: sel, ExcludeStatus: true})

	if included == excluded {
		t.Errorf("expected opting out of the status entry to change the hash")
	}
}

func TestResponseHeadersHash_ExcludeMode(t *testing.T) {
	resp := httpmodel.NewResponseBuilder(httpmodel.StatusOK).
		WithHeader("Content-Type", "text/html").
		WithHeader("Set-Cookie", "session=secret").
		Build()

	includeOnlyContentType := cel.ResponseCertification{
		Headers: cel.HeaderSelector{Names: []string{"content-type"}},
	}
	excludeSetCookie := cel.ResponseCertification{
		Headers: cel.HeaderSelector{ExcludeMode: true, Names: []string{"set-cookie"}},
	}

	if ResponseHeadersHash(resp, includeOnlyContentType) != ResponseHeadersHash(resp, excludeSetCookie) {
		t.Errorf("expected include-only content-type and exclude-only set-cookie to certify the same header set")
	}
}

func TestResponseHash_BindsBody(t *testing.T) {
	headersHash := ResponseHeadersHash(
		httpmodel.NewResponseBuilder(httpmodel.StatusOK).Build(),
		cel.ResponseCertification{},
	)

	h1 := ResponseHash(headersHash, []byte("hello"))
	h2 := ResponseHash(headersHash, []byte("world"))
	if h1 == h2 {
		t.Errorf("expected different bodies to produce different response hashes")
	}
}

