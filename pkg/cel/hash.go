// Copyright 2025 Certen Protocol

package cel

import "github.com/certen/http-certification/pkg/rih"

// Hash computes the representation-independent hash of a normalized
// expression's fields, in the fixed canonical field ordering below. Spec §8
// calls for "RIH over the normalized fields in a fixed canonical ordering
// documented in §8" without pinning that ordering down further; this is the
// canonicalization this module commits to, built the same way every other
// certified hash in this module is: a flat, ordered rih.Field list.
func Hash(e Expression) [32]byte {
	var fields []rih.Field

	switch e.kind {
	case KindSkip:
		fields = append(fields, rih.StringPair("kind", "skip"))
	case KindResponseOnly:
		fields = append(fields, rih.StringPair("kind", "response_only"))
		fields = appendResponseFields(fields, *e.response)
	case KindFull:
		fields = append(fields, rih.StringPair("kind", "full"))
		fields = appendRequestFields(fields, *e.request)
		fields = appendResponseFields(fields, *e.response)
	}

	return rih.Hash(fields)
}

func appendRequestFields(fields []rih.Field, r RequestCertification) []rih.Field {
	fields = append(fields, rih.Field{Name: "request.method", Value: boolValue(r.Method)})
	fields = append(fields, rih.Field{Name: "request.headers", Value: stringArray(r.Headers)})
	fields = append(fields, rih.Field{Name: "request.query_params", Value: stringArray(r.QueryParams)})
	return fields
}

func appendResponseFields(fields []rih.Field, r ResponseCertification) []rih.Field {
	fields = append(fields, rih.Field{Name: "response.exclude_mode", Value: boolValue(r.Headers.ExcludeMode)})
	fields = append(fields, rih.Field{Name: "response.headers", Value: stringArray(r.Headers.Names)})
	fields = append(fields, rih.Field{Name: "response.exclude_status", Value: boolValue(r.ExcludeStatus)})
	return fields
}

func boolValue(b bool) rih.Value {
	if b {
		return rih.Uint(1)
	}
	return rih.Uint(0)
}

func stringArray(values []string) rih.Value {
	vs := make([]rih.Value, len(values))
	for i, v := range values {
		vs[i] = rih.String(v)
	}
	return rih.Array(vs)
}
