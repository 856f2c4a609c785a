// Copyright 2025 Certen Protocol

package cel

// rawExpr is the parsed-but-not-yet-normalized form of a certification
// expression: a direct reflection of the textual grammar in spec §4.2,
// before header names are lower-cased/deduped and the expression is reduced
// to one of the three canonical variants.
type rawExpr struct {
	skip     bool
	request  *rawRequestCert
	response *rawResponseCert
}

type rawRequestCert struct {
	certifiedHeaders     []string
	certifiedQueryParams []string
}

type rawResponseCert struct {
	certifiedHeaders []string
	headersToExclude []string
	excludeHeaders   bool // true iff headersToExclude form was used
	excludeStatus    bool
}
