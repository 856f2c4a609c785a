// Copyright 2025 Certen Protocol
package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certen/http-certification/pkg/httpmodel"
)

func TestRouter_ExactAsset(t *testing.T) {
	r := NewRouter(nil)
	_, err := r.RegisterAssets([]AssetConfig{NewFile("/index.html", []byte("hello"))})
	require.NoError(t, err)

	req := httpmodel.NewRequestBuilder("GET", "https://example.com/index.html").Build()
	decision := r.Resolve(req)
	require.False(t, decision.NotFound)
	assert.Equal(t, "hello", string(decision.Response.Body))
}

func TestRouter_Alias(t *testing.T) {
	r := NewRouter(nil)
	cfg := NewFile("/index.html", []byte("hello"))
	cfg.AliasedBy = []string{"/"}
	_, err := r.RegisterAssets([]AssetConfig{cfg})
	require.NoError(t, err)

	req := httpmodel.NewRequestBuilder("GET", "https://example.com/").Build()
	decision := r.Resolve(req)
	require.False(t, decision.NotFound)
	assert.Equal(t, "hello", string(decision.Response.Body))
}

func TestRouter_LongestPrefixFallback(t *testing.T) {
	r := NewRouter(nil)
	rootFallback := NewFile("/index.html", []byte("root"))
	rootFallback.FallbackFor = []FallbackScope{{Scope: "/", StatusCode: 200}}
	appFallback := NewFile("/app/index.html", []byte("app"))
	appFallback.FallbackFor = []FallbackScope{{Scope: "/app/", StatusCode: 200}}

	_, err := r.RegisterAssets([]AssetConfig{rootFallback, appFallback})
	require.NoError(t, err)

	req := httpmodel.NewRequestBuilder("GET", "https://example.com/app/settings").Build()
	decision := r.Resolve(req)
	require.False(t, decision.NotFound)
	assert.Equal(t, "app", string(decision.Response.Body), "expected longest-prefix fallback to win")
}

func TestRouter_FallbackUsesConfiguredStatusCode(t *testing.T) {
	r := NewRouter(nil)
	notFound := NewFile("/404.html", []byte("not found"))
	notFound.FallbackFor = []FallbackScope{{Scope: "/", StatusCode: 404}}

	_, err := r.RegisterAssets([]AssetConfig{notFound})
	require.NoError(t, err)

	req := httpmodel.NewRequestBuilder("GET", "https://example.com/missing").Build()
	decision := r.Resolve(req)
	require.False(t, decision.NotFound)
	assert.Equal(t, httpmodel.StatusCode(404), decision.Response.StatusCode)
	assert.Equal(t, "not found", string(decision.Response.Body))
}

func TestRouter_PermanentRedirect(t *testing.T) {
	r := NewRouter(nil)
	_, err := r.RegisterAssets([]AssetConfig{NewRedirect("/old", "/new", Permanent)})
	require.NoError(t, err)

	req := httpmodel.NewRequestBuilder("GET", "https://example.com/old").Build()
	decision := r.Resolve(req)
	require.NotNil(t, decision.Redirect)
	assert.Equal(t, &RedirectDecision{To: "/new", StatusCode: 301}, decision.Redirect)
}

func TestRouter_NotFound(t *testing.T) {
	r := NewRouter(nil)
	req := httpmodel.NewRequestBuilder("GET", "https://example.com/missing").Build()
	decision := r.Resolve(req)
	assert.True(t, decision.NotFound)
}

func TestRouter_DuplicatePathRejectsWholeBatch(t *testing.T) {
	r := NewRouter(nil)
	_, err := r.RegisterAssets([]AssetConfig{NewFile("/a", []byte("1"))})
	require.NoError(t, err)

	_, err = r.RegisterAssets([]AssetConfig{NewFile("/b", []byte("2")), NewFile("/a", []byte("3"))})
	require.IsType(t, &DuplicatePathError{}, err)

	req := httpmodel.NewRequestBuilder("GET", "https://example.com/b").Build()
	decision := r.Resolve(req)
	assert.True(t, decision.NotFound, "expected /b to not have been registered since the batch was rejected")
}

func TestRouter_EncodingNegotiation(t *testing.T) {
	r := NewRouter(nil)
	cfg := NewFile("/index.html", []byte("plain"))
	cfg.Encodings = map[AssetEncoding][]byte{
		Gzip: []byte("gzipped"),
		Zstd: []byte("zstded"),
	}
	_, err := r.RegisterAssets([]AssetConfig{cfg})
	require.NoError(t, err)

	req := httpmodel.NewRequestBuilder("GET", "https://example.com/index.html").
		WithHeader("Accept-Encoding", "gzip, zstd").
		Build()
	decision := r.Resolve(req)
	assert.Equal(t, "zstded", string(decision.Response.Body), "expected zstd to win over gzip")
	ce, ok := decision.Response.Headers.Get("Content-Encoding")
	assert.True(t, ok)
	assert.Equal(t, "zstd", ce)
}

func TestRouter_PatternDecoratesMatchingFiles(t *testing.T) {
	r := NewRouter(nil)
	configs := []AssetConfig{
		NewPattern("/*.html"),
		NewFile("/index.html", []byte("hello")),
	}
	configs[0].ContentType = "text/html"
	_, err := r.RegisterAssets(configs)
	require.NoError(t, err)

	req := httpmodel.NewRequestBuilder("GET", "https://example.com/index.html").Build()
	decision := r.Resolve(req)
	ct, ok := decision.Response.Headers.Get("Content-Type")
	assert.True(t, ok)
	assert.Equal(t, "text/html", ct)
}

func TestWithLocationHeader_CallerHeaderWins(t *testing.T) {
	headers := httpmodel.HeaderFields{}.With("Location", "/custom")
	out := WithLocationHeader(headers, "/auto")
	v, _ := out.Get("Location")
	assert.Equal(t, "/custom", v)
}

func TestWithLocationHeader_AppendsWhenAbsent(t *testing.T) {
	out := WithLocationHeader(httpmodel.HeaderFields{}, "/auto")
	v, ok := out.Get("Location")
	assert.True(t, ok)
	assert.Equal(t, "/auto", v)
}
