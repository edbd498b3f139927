// Released under an MIT license. See LICENSE.

// Package literal defines the interface for ply types that can be expressed as literals.
package literal

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

// I (literal) is any type that can be expressed as a literal.
type I interface {
	Literal() string
}

// String returns the literal string representation for a cell. Types
// without a literal form (functions, channels, ...) print as #<name>.
func String(c cell.I) string {
	if c == nil {
		return "nil"
	}

	l, ok := c.(I)
	if !ok {
		return "#<" + c.Name() + ">"
	}

	return l.Literal()
}
