// Released under an MIT license. See LICENSE.

// Package token is shared by the ply lexer and parser.
package token

import (
	"strconv"
	"unicode"

	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
)

// Class is a token's type. Punctuation is its own class.
type Class rune

// T (token) is a lexical item returned by the scanner.
type T struct {
	class  Class
	source loc.T
	value  string
}

type token = T

// Token classes.
const (
	EOF Class = iota

	SetOpen Class = unicode.MaxRune + iota
	Splice
	String
	Symbol
	Unterminated
)

// New creates a new token.
func New(class Class, value string, source loc.T) *token {
	return &token{
		class:  class,
		source: source,
		value:  value,
	}
}

// String returns a string representation of Class. Useful for debugging.
func (c Class) String() string {
	switch c {
	case EOF:
		return "EOF"
	case SetOpen:
		return "SetOpen"
	case Splice:
		return "Splice"
	case String:
		return "String"
	case Symbol:
		return "Symbol"
	case Unterminated:
		return "Unterminated"
	}

	return strconv.QuoteRune(rune(c))
}

// Is returns true if the token t is any of the classes in cs.
func (t *token) Is(cs ...Class) bool {
	if t == nil {
		return false
	}

	for _, c := range cs {
		if t.class == c {
			return true
		}
	}

	return false
}

// Source returns the source location for this token.
func (t *token) Source() loc.T {
	return t.source
}

// String returns the token's string representation. Useful for debugging.
func (t *token) String() string {
	return strconv.Quote(t.value) + "(" +
		t.class.String() + "," +
		t.source.String() + ")"
}

// Value returns the token's string value.
func (t *token) Value() string {
	return t.value
}
