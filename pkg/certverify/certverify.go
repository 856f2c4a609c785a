// Copyright 2025 Certen Protocol
//
// Verifier abstracts the subnet certificate check (BLS signature over the
// root hash of a delegated or root public key) that sits below hash tree
// and expression verification. Production callers wire an implementation
// backed by the platform's consensus client; this module only defines the
// seam and exercises it with Noop and Func for unit tests that do not need
// a real certificate authority.
package certverify

import "time"

// CertifiedData is what a successful VerifyCertificate call discloses: the
// root hash the certificate commits to, and the certificate's declared
// time, used by callers to additionally bound certificate age.
type CertifiedData struct {
	RootHash  [32]byte
	Time      time.Time
	CanisterID []byte
}

// Verifier checks a raw CBOR certificate blob against a canister's
// authenticating root key and returns the root hash it commits to.
type Verifier interface {
	VerifyCertificate(certificate, canisterID, rootKey []byte, now time.Time, maxSkew time.Duration) (CertifiedData, error)
}

// Noop always succeeds, returning the zero CertifiedData. It exists for
// tests that exercise the hash-tree and expression layers above
// certificate verification without wiring a real signature check.
type Noop struct{}

// VerifyCertificate implements Verifier.
func (Noop) VerifyCertificate(_, _, _ []byte, _ time.Time, _ time.Duration) (CertifiedData, error) {
	return CertifiedData{}, nil
}

// Func adapts a plain function to Verifier, for tests that need to control
// or inspect each call's inputs and outputs.
type Func func(certificate, canisterID, rootKey []byte, now time.Time, maxSkew time.Duration) (CertifiedData, error)

// VerifyCertificate implements Verifier.
func (f Func) VerifyCertificate(certificate, canisterID, rootKey []byte, now time.Time, maxSkew time.Duration) (CertifiedData, error) {
	return f(certificate, canisterID, rootKey, now, maxSkew)
}
