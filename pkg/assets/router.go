// Copyright 2025 Certen Protocol
//
// Asset router and config resolver (spec §4.6): holds the registered File,
// Pattern, and Redirect configs as an immutable snapshot, swapped atomically
// on registration. Readers never block behind a writer and never observe a
// partially-applied batch, the same reader/writer discipline as
// pkg/merkle.Tree's RLock-guarded lookups against a root swapped under Lock.
package assets

import (
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/certen/http-certification/pkg/certmetrics"
	"github.com/certen/http-certification/pkg/httpmodel"
)

type patternDecoration struct {
	pattern     string
	contentType string
	headers     [][2]string
}

type fileEntry struct {
	path        string
	body        []byte
	contentType string
	headers     [][2]string
	encodings   map[AssetEncoding][]byte
}

type redirectEntry struct {
	from   string
	to     string
	status RedirectKind
}

// fallbackEntry binds a fallback scope to the file that serves it and the
// status code the scope was registered with.
type fallbackEntry struct {
	file       *fileEntry
	statusCode int
}

type snapshot struct {
	files     map[string]*fileEntry
	aliases   map[string]*fileEntry
	fallbacks map[string]*fallbackEntry // scope -> fallback
	redirects map[string]*redirectEntry
	patterns  []patternDecoration
}

func emptySnapshot() *snapshot {
	return &snapshot{
		files:     make(map[string]*fileEntry),
		aliases:   make(map[string]*fileEntry),
		fallbacks: make(map[string]*fallbackEntry),
		redirects: make(map[string]*redirectEntry),
	}
}

// Router resolves requests against a registered set of assets, aliases,
// fallbacks, and redirects. Zero value is not usable; use NewRouter.
type Router struct {
	mu     sync.RWMutex
	snap   *snapshot
	logger *log.Logger
}

// NewRouter constructs an empty Router. A nil logger defaults to one tagged
// "[AssetRouter]", matching the teacher's per-component logger convention.
func NewRouter(logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(log.Writer(), "[AssetRouter] ", log.LstdFlags)
	}
	return &Router{snap: emptySnapshot(), logger: logger}
}

// RegisterAssets ingests a batch of configs atomically: either the whole
// batch applies, replacing the current snapshot, or none of it does. Returns
// the batch ID assigned for log/metric correlation.
func (r *Router) RegisterAssets(configs []AssetConfig) (uuid.UUID, error) {
	batchID := uuid.New()
	if err := r.registerAssets(configs); err != nil {
		r.logger.Printf("batch %s rejected: %v", batchID, err)
		return batchID, err
	}
	r.logger.Printf("batch %s applied: %d configs", batchID, len(configs))
	return batchID, nil
}

func (r *Router) registerAssets(configs []AssetConfig) error {
	r.mu.RLock()
	base := r.snap
	r.mu.RUnlock()

	next := &snapshot{
		files:     cloneFiles(base.files),
		aliases:   cloneFiles(base.aliases),
		fallbacks: cloneFallbacks(base.fallbacks),
		redirects: cloneRedirects(base.redirects),
		patterns:  append([]patternDecoration(nil), base.patterns...),
	}

	claimed := make(map[string]bool)
	for k := range next.files {
		claimed[k] = true
	}
	for k := range next.aliases {
		claimed[k] = true
	}
	for k := range next.redirects {
		claimed[k] = true
	}

	var pendingFiles []*fileEntry

	for _, cfg := range configs {
		switch cfg.Kind {
		case KindFile:
			if claimed[cfg.Path] {
				return &DuplicatePathError{Path: cfg.Path}
			}
			claimed[cfg.Path] = true
			fe := &fileEntry{
				path:        cfg.Path,
				body:        cfg.Body,
				contentType: cfg.ContentType,
				headers:     cfg.Headers,
				encodings:   cfg.Encodings,
			}
			for _, alias := range cfg.AliasedBy {
				if claimed[alias] {
					return &AliasCollidesError{Alias: alias}
				}
				claimed[alias] = true
			}
			pendingFiles = append(pendingFiles, fe)
			next.files[cfg.Path] = fe
			for _, alias := range cfg.AliasedBy {
				next.aliases[alias] = fe
			}
			for _, fb := range cfg.FallbackFor {
				statusCode := fb.StatusCode
				if statusCode == 0 {
					statusCode = int(httpmodel.StatusOK)
				}
				next.fallbacks[fb.Scope] = &fallbackEntry{file: fe, statusCode: statusCode}
			}
		case KindPattern:
			if _, err := compileGlobCheck(cfg.Pattern); err != nil {
				return &InvalidGlobError{Pattern: cfg.Pattern, Reason: err.Error()}
			}
			next.patterns = append(next.patterns, patternDecoration{
				pattern:     cfg.Pattern,
				contentType: cfg.ContentType,
				headers:     cfg.Headers,
			})
		case KindRedirect:
			if claimed[cfg.From] {
				return &RedirectCollidesError{From: cfg.From}
			}
			claimed[cfg.From] = true
			next.redirects[cfg.From] = &redirectEntry{from: cfg.From, to: cfg.To, status: cfg.RedirectStatus}
		}
	}

	applyPatternDecorations(next, pendingFiles)

	r.mu.Lock()
	r.snap = next
	r.mu.Unlock()
	return nil
}

func cloneFiles(m map[string]*fileEntry) map[string]*fileEntry {
	out := make(map[string]*fileEntry, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneRedirects(m map[string]*redirectEntry) map[string]*redirectEntry {
	out := make(map[string]*redirectEntry, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFallbacks(m map[string]*fallbackEntry) map[string]*fallbackEntry {
	out := make(map[string]*fallbackEntry, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func compileGlobCheck(pattern string) (string, error) {
	if pattern == "" {
		return "", errEmptyPattern
	}
	return pattern, nil
}

var errEmptyPattern = &InvalidGlobError{Pattern: "", Reason: "empty pattern"}

func applyPatternDecorations(snap *snapshot, files []*fileEntry) {
	for _, fe := range files {
		for _, deco := range snap.patterns {
			if !MatchGlob(deco.pattern, fe.path) {
				continue
			}
			if fe.contentType == "" {
				fe.contentType = deco.contentType
			}
			fe.headers = append(fe.headers, deco.headers...)
		}
	}
}

// RouteDecision is the outcome of resolving a request against the router.
type RouteDecision struct {
	NotFound bool
	Redirect *RedirectDecision
	Response httpmodel.HttpResponse
}

// RedirectDecision carries a redirect's target and status.
type RedirectDecision struct {
	To         string
	StatusCode int
}

// Resolve implements the five-step algorithm of spec §4.6: redirect match,
// exact asset, alias, longest-prefix fallback, not found.
func (r *Router) Resolve(req httpmodel.HttpRequest) RouteDecision {
	path, err := req.Path()
	if err != nil {
		return RouteDecision{NotFound: true}
	}

	r.mu.RLock()
	snap := r.snap
	r.mu.RUnlock()

	if rd, ok := snap.redirects[path]; ok {
		certmetrics.ObserveRouteResolution("redirect")
		return RouteDecision{Redirect: &RedirectDecision{To: rd.to, StatusCode: rd.status.StatusCode()}}
	}

	if fe, ok := snap.files[path]; ok {
		certmetrics.ObserveRouteResolution("exact")
		return r.buildResponse(fe, req, int(httpmodel.StatusOK))
	}

	if fe, ok := snap.aliases[path]; ok {
		certmetrics.ObserveRouteResolution("alias")
		return r.buildResponse(fe, req, int(httpmodel.StatusOK))
	}

	if fb := longestPrefixFallback(snap.fallbacks, path); fb != nil {
		certmetrics.ObserveRouteResolution("fallback")
		return r.buildResponse(fb.file, req, fb.statusCode)
	}

	certmetrics.ObserveRouteResolution("not_found")
	return RouteDecision{NotFound: true}
}

func longestPrefixFallback(fallbacks map[string]*fallbackEntry, path string) *fallbackEntry {
	var best *fallbackEntry
	bestLen := -1
	for scope, fb := range fallbacks {
		if !strings.HasPrefix(path, scope) {
			continue
		}
		if len(scope) > bestLen {
			best = fb
			bestLen = len(scope)
		}
	}
	return best
}

func (r *Router) buildResponse(fe *fileEntry, req httpmodel.HttpRequest, statusCode int) RouteDecision {
	body := fe.body
	contentEncoding := Identity

	accept, _ := req.Headers.Get("Accept-Encoding")
	accepted := parseAcceptEncoding(accept)
	for _, enc := range encodingPriority {
		if enc == Identity {
			continue
		}
		if !accepted[enc] {
			continue
		}
		if encoded, ok := fe.encodings[enc]; ok {
			body = encoded
			contentEncoding = enc
			break
		}
	}

	headers := httpmodel.HeaderFields{}
	if fe.contentType != "" {
		headers = headers.With("Content-Type", fe.contentType)
	}
	for _, h := range fe.headers {
		headers = headers.With(h[0], h[1])
	}
	if contentEncoding != Identity {
		headers = headers.With("Content-Encoding", contentEncoding.String())
	}

	return RouteDecision{
		Response: httpmodel.HttpResponse{
			StatusCode: httpmodel.StatusCode(statusCode),
			Headers:    headers,
			Body:       body,
		},
	}
}

func parseAcceptEncoding(header string) map[AssetEncoding]bool {
	out := make(map[AssetEncoding]bool)
	if header == "" {
		return out
	}
	for _, tok := range strings.Split(header, ",") {
		name := strings.TrimSpace(strings.SplitN(tok, ";", 2)[0])
		switch strings.ToLower(name) {
		case "br":
			out[Brotli] = true
		case "zstd":
			out[Zstd] = true
		case "gzip":
			out[Gzip] = true
		case "deflate":
			out[Deflate] = true
		case "identity", "*":
			out[Identity] = true
		}
	}
	return out
}

// WithLocationHeader appends a Location header to headers unless the caller
// already set one, so explicit configuration always wins over the router's
// auto-generated redirect target.
func WithLocationHeader(headers httpmodel.HeaderFields, location string) httpmodel.HeaderFields {
	if _, ok := headers.Get("Location"); ok {
		return headers
	}
	return headers.With("Location", location)
}
