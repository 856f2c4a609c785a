// Copyright 2025 Certen Protocol
//
// Asset configuration data model, per spec §3/§4.6: closed tagged variants
// for what a registration names (a concrete file, a pattern decorating
// matched files, or a redirect), modeled as Go sum types with exhaustive
// switches rather than open interfaces — new variants require a
// coordinated protocol version bump, not a new implementer.
package assets

// AssetEncoding identifies a content-encoding variant an asset may be served
// under. Priority order for negotiation is Brotli > Zstd > Gzip > Deflate >
// Identity.
type AssetEncoding int

const (
	Identity AssetEncoding = iota
	Deflate
	Gzip
	Zstd
	Brotli
)

// String renders the encoding's HTTP token.
func (e AssetEncoding) String() string {
	switch e {
	case Identity:
		return "identity"
	case Deflate:
		return "deflate"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Brotli:
		return "br"
	default:
		return "identity"
	}
}

// DefaultSuffix is the default file-suffix convention used to look up an
// encoded variant of a base path.
func (e AssetEncoding) DefaultSuffix() string {
	switch e {
	case Deflate:
		return ".zz"
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case Brotli:
		return ".br"
	default:
		return ""
	}
}

// encodingPriority lists encodings from most to least preferred, per spec
// §4.6's negotiation rule.
var encodingPriority = []AssetEncoding{Brotli, Zstd, Gzip, Deflate, Identity}

// RedirectKind distinguishes a permanent from a temporary redirect.
type RedirectKind int

const (
	// Permanent redirects with HTTP 301.
	Permanent RedirectKind = iota
	// Temporary redirects with HTTP 307.
	Temporary
)

// StatusCode returns the HTTP status code this redirect kind uses.
func (k RedirectKind) StatusCode() int {
	if k == Temporary {
		return 307
	}
	return 301
}

// FallbackScope binds a File asset as the fallback response for any
// unmatched path under scope, with the given status code.
type FallbackScope struct {
	Scope      string
	StatusCode int
}

// ConfigKind identifies which of the three AssetConfig variants a value
// holds.
type ConfigKind int

const (
	// KindFile registers a concrete, directly servable asset.
	KindFile ConfigKind = iota
	// KindPattern decorates assets matching a glob with shared headers and
	// content-type, but never itself satisfies a request. Encodings set on a
	// Pattern config are not applied. A pattern decorates files registered
	// in the same or a later batch; files already registered before the
	// pattern's batch are not decorated.
	KindPattern
	// KindRedirect registers a redirect from one path to another.
	KindRedirect
)

// AssetConfig is a single registration batch entry. Exactly one field group
// applies, selected by Kind.
type AssetConfig struct {
	Kind ConfigKind

	// File fields.
	Path         string
	Body         []byte
	AliasedBy    []string
	FallbackFor  []FallbackScope
	ContentType  string
	Headers      [][2]string
	Encodings    map[AssetEncoding][]byte // encoded body variants, keyed by encoding

	// Pattern fields (also uses ContentType, Headers above).
	Pattern string

	// Redirect fields.
	From           string
	To             string
	RedirectStatus RedirectKind
}

// NewFile constructs a File AssetConfig.
func NewFile(path string, body []byte) AssetConfig {
	return AssetConfig{Kind: KindFile, Path: path, Body: body}
}

// NewPattern constructs a Pattern AssetConfig decorating assets matching
// pattern.
func NewPattern(pattern string) AssetConfig {
	return AssetConfig{Kind: KindPattern, Pattern: pattern}
}

// NewRedirect constructs a Redirect AssetConfig.
func NewRedirect(from, to string, kind RedirectKind) AssetConfig {
	return AssetConfig{Kind: KindRedirect, From: from, To: to, RedirectStatus: kind}
}
