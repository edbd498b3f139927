// Released under an MIT license. See LICENSE.

// Package reader encapsulates the ply lexer and parser.
package reader

import (
	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/reader/lexer"
	"github.com/michaelmacinnis/ply/internal/reader/parser"
)

// Read returns every expression in text. Name labels locations.
func Read(name, text string) ([]ast.Expr, error) {
	return New(name, text).Parse()
}

// New creates a parser reading from text.
func New(name, text string) *parser.T {
	return parser.New(lexer.New(name, text).Token)
}

// Complete returns false if text ends inside an expression.
func Complete(text string) bool {
	_, err := Read("", text)

	return !parser.Incomplete(err)
}
