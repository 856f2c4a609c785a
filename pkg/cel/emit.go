// Copyright 2025 Certen Protocol

package cel

import (
	"fmt"
	"strconv"
	"strings"
)

// Emit renders a normalized Expression back to canonical CEL text. It is the
// inverse used by the round-trip law: normalize(parse(emit(e))) == e.
func Emit(e Expression) string {
	if e.kind == KindSkip {
		return "skip_certification()"
	}

	var b strings.Builder
	b.WriteString("default_certification(ValidationArgs{")

	if e.kind == KindFull {
		fmt.Fprintf(&b, "request_certification: %s, ", emitRequestCert(*e.request))
	}

	fmt.Fprintf(&b, "response_certification: %s", emitResponseCert(*e.response))
	b.WriteString("})")
	return b.String()
}

func emitRequestCert(r RequestCertification) string {
	var b strings.Builder
	b.WriteString("RequestCertification{")
	b.WriteString("certified_request_headers: ")
	b.WriteString(emitStringList(r.Headers))
	b.WriteString(", certified_query_parameters: ")
	b.WriteString(emitStringList(r.QueryParams))
	b.WriteString("}")
	return b.String()
}

func emitResponseCert(r ResponseCertification) string {
	var b strings.Builder
	b.WriteString("ResponseCertification{")
	if r.Headers.ExcludeMode {
		b.WriteString("response_headers_to_exclude: ")
	} else {
		b.WriteString("certified_response_headers: ")
	}
	b.WriteString(emitStringList(r.Headers.Names))
	fmt.Fprintf(&b, ", exclude_status: %s", strconv.FormatBool(r.ExcludeStatus))
	b.WriteString("}")
	return b.String()
}

func emitStringList(values []string) string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(v))
	}
	b.WriteString("]")
	return b.String()
}
