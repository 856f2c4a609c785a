// Copyright 2025 Certen Protocol
//
// Verification engine state machine (spec §4.5): parse the certificate
// header, verify the underlying certificate, branch on protocol version,
// and validate the disclosed witness against the recomputed exchange
// hashes. Pure given its inputs and the injected Verifier/Clock — no
// package-level state, safe for concurrent use.
package verification

import (
	"context"
	"crypto/sha256"
	"time"

	"github.com/google/uuid"

	"github.com/certen/http-certification/pkg/cel"
	"github.com/certen/http-certification/pkg/certheader"
	"github.com/certen/http-certification/pkg/certmetrics"
	"github.com/certen/http-certification/pkg/certverify"
	"github.com/certen/http-certification/pkg/httpcert"
	"github.com/certen/http-certification/pkg/httpmodel"
)

// Clock supplies the current time to the engine, in place of a package-level
// call to time.Now — keeps Verify a pure function of its arguments and
// deterministic under test.
type Clock func() time.Time

// Options configures a single Verify call.
type Options struct {
	CanisterID          []byte
	RootKey             []byte
	MaxSkew             time.Duration
	MinRequestedVersion uint16
}

// VerificationInfo is the outcome of a successful Verify call.
type VerificationInfo struct {
	Version  uint16
	Response *httpmodel.HttpResponse // nil for Skip
	TraceID  uuid.UUID                // correlates this call across logs and metrics
}

// Engine runs the verification state machine against an injected
// certificate verifier and clock.
type Engine struct {
	Verifier certverify.Verifier
	Clock    Clock
}

// New constructs an Engine. A nil clock defaults to time.Now.
func New(verifier certverify.Verifier, clock Clock) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{Verifier: verifier, Clock: clock}
}

const (
	minSupportedVersion uint16 = 1
	maxSupportedVersion uint16 = 2
)

// Verify runs the S0-S4 state machine described in spec §4.5 against req and
// resp, using the IC-Certificate (and, for v2, IC-CertificateExpression)
// headers carried on resp.
func (e *Engine) Verify(ctx context.Context, req httpmodel.HttpRequest, resp httpmodel.HttpResponse, opts Options) (*VerificationInfo, error) {
	start := e.Clock()
	info, err := e.verify(req, resp, opts)
	outcome := "ok"
	version := uint16(0)
	if err != nil {
		outcome = "error"
	} else {
		version = info.Version
		info.TraceID = uuid.New()
	}
	certmetrics.ObserveVerification(version, outcome, e.Clock().Sub(start))
	return info, err
}

func (e *Engine) verify(req httpmodel.HttpRequest, resp httpmodel.HttpResponse, opts Options) (*VerificationInfo, error) {
	// S0 -> S1: parse certificate header.
	raw, ok := resp.Headers.Get("IC-Certificate")
	if !ok {
		return nil, &HeaderMissingError{Name: "IC-Certificate"}
	}
	header, err := certheader.Parse(raw)
	if err != nil {
		return nil, &MalformedHeaderError{Name: "IC-Certificate", Reason: err.Error()}
	}

	// S1 -> S2: verify certificate signature and time.
	certified, err := e.Verifier.VerifyCertificate(header.Certificate, opts.CanisterID, opts.RootKey, e.Clock(), opts.MaxSkew)
	if err != nil {
		return nil, &CertificateInvalidError{Reason: err.Error()}
	}

	// S2: branch on version.
	if header.Version < opts.MinRequestedVersion {
		return nil, &VersionMismatchError{Requested: opts.MinRequestedVersion, Got: header.Version}
	}

	switch header.Version {
	case 1:
		return e.verifyV1(req, resp, header, certified)
	case 2:
		return e.verifyV2(req, resp, header, certified)
	default:
		return nil, &UnsupportedVersionError{Min: minSupportedVersion, Max: maxSupportedVersion, Got: header.Version}
	}
}

// verifyV1 implements S3v1: decode-first, raw-fallback body hash check
// against the ["http_assets", path] witness path.
func (e *Engine) verifyV1(req httpmodel.HttpRequest, resp httpmodel.HttpResponse, header certheader.Header, certified certverify.CertifiedData) (*VerificationInfo, error) {
	path, err := req.Path()
	if err != nil {
		return nil, &MalformedURLError{URL: req.URL}
	}

	tree, err := decodeHashTree(header.Tree)
	if err != nil {
		return nil, &PathShapeInvalidError{Reason: err.Error()}
	}

	contentEncoding, _ := resp.Headers.Get("Content-Encoding")

	decoded, decodeErr := decodeBody(resp.Body, contentEncoding)
	var treeErr error
	if decodeErr == nil {
		decodedHash := sha256.Sum256(decoded)
		treeErr = validateV1Body(tree, certified.RootHash, path, decodedHash)
	} else {
		treeErr = decodeErr
	}

	if treeErr != nil && contentEncoding != "" {
		rawHash := sha256.Sum256(resp.Body)
		treeErr = validateV1Body(tree, certified.RootHash, path, rawHash)
	}
	if treeErr != nil {
		return nil, treeErr
	}

	return &VerificationInfo{
		Version: 1,
		Response: &httpmodel.HttpResponse{
			Body: resp.Body,
		},
	}, nil
}

// verifyV2 implements S4v2: parse the certification expression, recompute
// its hash plus (for Full) the request hash and the response hash, and
// validate them against the disclosed witness.
func (e *Engine) verifyV2(req httpmodel.HttpRequest, resp httpmodel.HttpResponse, header certheader.Header, certified certverify.CertifiedData) (*VerificationInfo, error) {
	exprRaw, ok := resp.Headers.Get("IC-CertificateExpression")
	if !ok {
		return nil, &HeaderMissingError{Name: "IC-CertificateExpression"}
	}

	expr, err := cel.Parse(exprRaw)
	if err != nil {
		return nil, &CelParseError{Err: err}
	}

	tree, err := decodeHashTree(header.Tree)
	if err != nil {
		return nil, &PathShapeInvalidError{Reason: err.Error()}
	}

	exprHash := sha256.Sum256([]byte(exprRaw))

	if expr.Kind() == cel.KindSkip {
		if err := validateV2Skip(tree, certified.RootHash, header.ExprPath, exprHash); err != nil {
			return nil, err
		}
		return &VerificationInfo{Version: 2, Response: nil}, nil
	}

	respCert := *expr.Response()

	var requestHash [32]byte
	hasRequest := expr.Kind() == cel.KindFull
	if hasRequest {
		requestHash, err = httpcert.RequestHash(req, *expr.Request())
		if err != nil {
			return nil, err
		}
	}

	headersHash := httpcert.ResponseHeadersHash(resp, respCert)
	responseHash := httpcert.ResponseHash(headersHash, resp.Body)

	if err := validateV2Hashes(tree, certified.RootHash, header.ExprPath, exprHash, requestHash, responseHash, hasRequest); err != nil {
		return nil, err
	}

	// Re-attach the certificate header to the verified response, mirroring
	// the original's "add the certificate header back to the response" step.
	filtered := filterResponseHeaders(resp, respCert)
	filtered = filtered.With("IC-Certificate", certheader.Render(header))

	return &VerificationInfo{
		Version: 2,
		Response: &httpmodel.HttpResponse{
			StatusCode: resp.StatusCode,
			Headers:    filtered,
			Body:       resp.Body,
		},
	}, nil
}
