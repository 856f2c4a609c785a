// Copyright 2025 Certen Protocol
//
// Body decompression for the v1 decode-first, raw-fallback retry policy.
// gzip and deflate decode with the standard library; zstd decodes with
// klauspost/compress, already present in the dependency graph this module
// grew from. Brotli has no decoder available anywhere in that graph, so it
// reports DecodeBodyError — which is exactly the signal that sends S3v1 to
// its raw-body retry, the same outcome a real decode failure would produce.
package verification

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

func decodeBody(body []byte, contentEncoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "", "identity":
		return body, nil
	case "gzip":
		r, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, &DecodeBodyError{Encoding: contentEncoding}
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, &DecodeBodyError{Encoding: contentEncoding}
		}
		return out, nil
	case "deflate":
		r := flate.NewReader(bytes.NewReader(body))
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, &DecodeBodyError{Encoding: contentEncoding}
		}
		return out, nil
	case "zstd":
		r, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, &DecodeBodyError{Encoding: contentEncoding}
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, &DecodeBodyError{Encoding: contentEncoding}
		}
		return out, nil
	default:
		return nil, &DecodeBodyError{Encoding: contentEncoding}
	}
}
