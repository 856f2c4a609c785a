// Copyright 2025 Certen Protocol

package cel

import "fmt"

// ParseError reports a syntax error at a byte offset into the source text.
type ParseError struct {
	Position int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cel: parse error at byte %d: expected %s", e.Position, e.Expected)
}

// UnsupportedConstructorError reports a top-level or nested constructor name
// the grammar does not recognize.
type UnsupportedConstructorError struct {
	Name string
}

func (e *UnsupportedConstructorError) Error() string {
	return fmt.Sprintf("cel: unsupported constructor %q", e.Name)
}

// DuplicateFieldError reports the same field key appearing twice in one
// struct literal.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("cel: duplicate field %q", e.Field)
}

// ConflictingHeaderSelectionError reports both the include and exclude forms
// of a header selection appearing in the same struct literal.
type ConflictingHeaderSelectionError struct {
	Struct string
}

func (e *ConflictingHeaderSelectionError) Error() string {
	return fmt.Sprintf("cel: %s specifies both an include and an exclude header list", e.Struct)
}
