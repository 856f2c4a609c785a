// Copyright 2025 Certen Protocol

package cel

import "testing"

func TestParse_Skip(t *testing.T) {
	e, err := Parse("skip_certification()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Kind() != KindSkip {
		t.Errorf("expected KindSkip, got %v", e.Kind())
	}
}

func TestParse_ResponseOnly(t *testing.T) {
	src := `default_certification(ValidationArgs{
		response_certification: ResponseCertification{certified_response_headers: ["Content-Type", "content-type"], exclude_status: false}
	})`

	e, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Kind() != KindResponseOnly {
		t.Fatalf("expected KindResponseOnly, got %v", e.Kind())
	}
	if got := e.Response().Headers.Names; len(got) != 1 || got[0] != "content-type" {
		t.Errorf("expected deduped lower-cased [content-type], got %v", got)
	}
}

func TestParse_Full(t *testing.T) {
	src := `default_certification(ValidationArgs{
		request_certification: RequestCertification{certified_request_headers: ["Accept"], certified_query_parameters: ["q"]},
		response_certification: ResponseCertification{certified_response_headers: ["content-type"]}
	})`

	e, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Kind() != KindFull {
		t.Fatalf("expected KindFull, got %v", e.Kind())
	}
	if !e.Request().Method {
		t.Errorf("Full.request must always certify method")
	}
	if got := e.Request().Headers; len(got) != 1 || got[0] != "accept" {
		t.Errorf("expected [accept], got %v", got)
	}
}

func TestParse_EmptyRequestBlockBecomesResponseOnly(t *testing.T) {
	// spec §9 Open Question #2: a Full with an empty request_certification
	// field block normalizes to ResponseOnly.
	src := `default_certification(ValidationArgs{
		request_certification: RequestCertification{},
		response_certification: ResponseCertification{certified_response_headers: ["content-type"]}
	})`

	e, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Kind() != KindResponseOnly {
		t.Errorf("expected empty request block to normalize to ResponseOnly, got %v", e.Kind())
	}
}

func TestParse_ConflictingHeaderSelection(t *testing.T) {
	src := `default_certification(ValidationArgs{
		response_certification: ResponseCertification{certified_response_headers: ["a"], response_headers_to_exclude: ["b"]}
	})`

	_, err := Parse(src)
	if _, ok := err.(*ConflictingHeaderSelectionError); !ok {
		t.Fatalf("expected ConflictingHeaderSelectionError, got %v", err)
	}
}

func TestParse_DuplicateField(t *testing.T) {
	src := `default_certification(ValidationArgs{
		response_certification: ResponseCertification{certified_response_headers: ["a"]},
		response_certification: ResponseCertification{certified_response_headers: ["b"]}
	})`

	_, err := Parse(src)
	if _, ok := err.(*DuplicateFieldError); !ok {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}
}

func TestParse_UnsupportedConstructor(t *testing.T) {
	_, err := Parse("full_certification()")
	if _, ok := err.(*UnsupportedConstructorError); !ok {
		t.Fatalf("expected UnsupportedConstructorError, got %v", err)
	}
}

func TestParse_MissingResponseCertification(t *testing.T) {
	src := `default_certification(ValidationArgs{})`
	_, err := Parse(src)
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestRoundTrip_Skip(t *testing.T) {
	original := Skip()
	text := Emit(original)
	reparsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reparsed.Kind() != original.Kind() {
		t.Errorf("round trip mismatch")
	}
}

func TestRoundTrip_ResponseOnly(t *testing.T) {
	original := ResponseOnly(ResponseCertification{
		Headers:       HeaderSelector{Names: []string{"content-type", "etag"}},
		ExcludeStatus: true,
	})

	reparsed, err := Parse(Emit(original))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Hash(reparsed) != Hash(original) {
		t.Errorf("round trip produced a different expression")
	}
}

func TestRoundTrip_Full(t *testing.T) {
	original := Full(
		RequestCertification{Headers: []string{"accept"}, QueryParams: []string{"q"}},
		ResponseCertification{Headers: HeaderSelector{Names: []string{"content-type"}}},
	)

	reparsed, err := Parse(Emit(original))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Hash(reparsed) != Hash(original) {
		t.Errorf("round trip produced a different expression")
	}
}

func TestRoundTrip_ExcludeHeaders(t *testing.T) {
	original := ResponseOnly(ResponseCertification{
		Headers: HeaderSelector{ExcludeMode: true, Names: []string{"set-cookie"}},
	})

	reparsed, err := Parse(Emit(original))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reparsed.Response().Headers.ExcludeMode {
		t.Errorf("expected exclude mode to survive round trip")
	}
	if Hash(reparsed) != Hash(original) {
		t.Errorf("round trip produced a different expression")
	}
}

func TestHash_Deterministic(t *testing.T) {
	e := Skip()
	if Hash(e) != Hash(e) {
		t.Errorf("hash must be deterministic")
	}
}

func TestHash_DifferentExpressionsDifferentHashes(t *testing.T) {
	a := ResponseOnly(ResponseCertification{Headers: HeaderSelector{Names: []string{"a"}}})
	b := ResponseOnly(ResponseCertification{Headers: HeaderSelector{Names: []string{"b"}}})
	if Hash(a) == Hash(b) {
		t.Errorf("expected different hashes for different header sets")
	}
}
