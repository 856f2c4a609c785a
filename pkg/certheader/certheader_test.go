// Copyright 2025 Certen Protocol

package certheader

import (
	"encoding/base64"
	"testing"
)

func b64(s string) string {
	return ":" + base64.StdEncoding.EncodeToString([]byte(s)) + ":"
}

func TestParse_V1DefaultVersion(t *testing.T) {
	value := "certificate=" + b64("cert-bytes") + ", tree=" + b64("tree-bytes")
	h, err := Parse(value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Version != 1 {
		t.Errorf("expected default version 1, got %d", h.Version)
	}
	if string(h.Certificate) != "cert-bytes" {
		t.Errorf("unexpected certificate: %q", h.Certificate)
	}
	if string(h.Tree) != "tree-bytes" {
		t.Errorf("unexpected tree: %q", h.Tree)
	}
}

func TestParse_V2RequiresExprPath(t *testing.T) {
	value := "certificate=" + b64("cert-bytes") + ", version=2"
	_, err := Parse(value)
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected ParseError for missing expr_path, got %v", err)
	}
}

func TestParse_V2WithExprPath(t *testing.T) {
	value := "certificate=" + b64("cert-bytes") + ", version=2, expr_path=[" +
		b64("/index.html") + "," + b64(TerminalSentinel) + "]"

	h, err := Parse(value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Version != 2 {
		t.Errorf("expected version 2, got %d", h.Version)
	}
	if len(h.ExprPath) != 2 || h.ExprPath[0] != "/index.html" || h.ExprPath[1] != TerminalSentinel {
		t.Errorf("unexpected expr_path: %v", h.ExprPath)
	}
}

func TestParse_MissingCertificate(t *testing.T) {
	_, err := Parse("version=1")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected ParseError for missing certificate, got %v", err)
	}
}

func TestParse_MalformedBase64(t *testing.T) {
	_, err := Parse("certificate=:not-valid-base64!!:")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected ParseError for malformed base64, got %v", err)
	}
}
