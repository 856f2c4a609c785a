// Copyright 2025 Certen Protocol

package cel

// parser is a recursive-descent parser over the tiny CEL dialect described
// in spec §4.2. It produces a rawExpr; normalize then reduces that into one
// of the three canonical Expression variants.
type parser struct {
	lex  *lexer
	cur  token
	peek token
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	p.cur = p.peek
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.peek = t
	return nil
}

func (p *parser) expect(kind tokenKind, expected string) (token, error) {
	if p.cur.kind != kind {
		return token{}, &ParseError{Position: p.cur.pos, Expected: expected}
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

func (p *parser) expectIdent(name string) error {
	if p.cur.kind != tokIdent || p.cur.text != name {
		return &ParseError{Position: p.cur.pos, Expected: "identifier " + name}
	}
	return p.advance()
}

// parseExpr parses the top-level Skip | Certify production.
func parseExpr(src string) (*rawExpr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parseExpr()
}

func (p *parser) parseExpr() (*rawExpr, error) {
	if p.cur.kind != tokIdent {
		return nil, &ParseError{Position: p.cur.pos, Expected: "skip_certification or default_certification"}
	}

	switch p.cur.text {
	case "skip_certification":
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokLParen, "("); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return &rawExpr{skip: true}, nil

	case "default_certification":
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokLParen, "("); err != nil {
			return nil, err
		}
		if err := p.expectIdent("ValidationArgs"); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokLBrace, "{"); err != nil {
			return nil, err
		}

		expr, err := p.parseFields()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRBrace, "}"); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, &UnsupportedConstructorError{Name: p.cur.text}
	}
}

// parseFields parses the ValidationArgs struct body: an optional
// request_certification field followed by a required response_certification
// field, in either order, comma-separated with an optional trailing comma.
func (p *parser) parseFields() (*rawExpr, error) {
	expr := &rawExpr{}
	seen := map[string]bool{}

	for p.cur.kind == tokIdent {
		name := p.cur.text
		if seen[name] {
			return nil, &DuplicateFieldError{Field: name}
		}
		seen[name] = true

		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}

		switch name {
		case "request_certification":
			req, err := p.parseRequestCert()
			if err != nil {
				return nil, err
			}
			expr.request = req
		case "response_certification":
			resp, err := p.parseResponseCert()
			if err != nil {
				return nil, err
			}
			expr.response = resp
		default:
			return nil, &UnsupportedConstructorError{Name: name}
		}

		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if expr.response == nil {
		return nil, &ParseError{Position: p.cur.pos, Expected: "response_certification"}
	}

	return expr, nil
}

func (p *parser) parseRequestCert() (*rawRequestCert, error) {
	if err := p.expectIdent("RequestCertification"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nil, err
	}

	req := &rawRequestCert{}
	seen := map[string]bool{}

	for p.cur.kind == tokIdent {
		name := p.cur.text
		if seen[name] {
			return nil, &DuplicateFieldError{Field: name}
		}
		seen[name] = true

		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}

		switch name {
		case "certified_request_headers":
			list, err := p.parseStringList()
			if err != nil {
				return nil, err
			}
			req.certifiedHeaders = list
		case "certified_query_parameters":
			list, err := p.parseStringList()
			if err != nil {
				return nil, err
			}
			req.certifiedQueryParams = list
		default:
			return nil, &UnsupportedConstructorError{Name: name}
		}

		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nil, err
	}
	return req, nil
}

func (p *parser) parseResponseCert() (*rawResponseCert, error) {
	if err := p.expectIdent("ResponseCertification"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nil, err
	}

	resp := &rawResponseCert{}
	seen := map[string]bool{}
	haveInclude, haveExclude := false, false

	for p.cur.kind == tokIdent {
		name := p.cur.text
		if seen[name] {
			return nil, &DuplicateFieldError{Field: name}
		}
		seen[name] = true

		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}

		switch name {
		case "certified_response_headers":
			list, err := p.parseStringList()
			if err != nil {
				return nil, err
			}
			resp.certifiedHeaders = list
			haveInclude = true
		case "response_headers_to_exclude":
			list, err := p.parseStringList()
			if err != nil {
				return nil, err
			}
			resp.headersToExclude = list
			resp.excludeHeaders = true
			haveExclude = true
		case "exclude_status":
			b, err := p.parseBool()
			if err != nil {
				return nil, err
			}
			resp.excludeStatus = b
		default:
			return nil, &UnsupportedConstructorError{Name: name}
		}

		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nil, err
	}

	if haveInclude && haveExclude {
		return nil, &ConflictingHeaderSelectionError{Struct: "ResponseCertification"}
	}

	return resp, nil
}

func (p *parser) parseStringList() ([]string, error) {
	if _, err := p.expect(tokLBracket, "["); err != nil {
		return nil, err
	}

	var out []string
	for p.cur.kind == tokString {
		out = append(out, p.cur.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if _, err := p.expect(tokRBracket, "]"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseBool() (bool, error) {
	if p.cur.kind != tokBool {
		return false, &ParseError{Position: p.cur.pos, Expected: "boolean literal"}
	}
	v := p.cur.text == "true"
	if err := p.advance(); err != nil {
		return false, err
	}
	return v, nil
}
