// Released under an MIT license. See LICENSE.

// Package truth defines the interface for ply types that have a truth value.
package truth

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

// I (truth) is anything that evaluates to a true or false value.
type I interface {
	Bool() bool
}

// Value returns the truth value for a cell. Only nil and false are false.
// Everything else, including 0 and the empty string, is true.
func Value(c cell.I) bool {
	if c == nil {
		return false
	}

	b, ok := c.(I)
	if !ok {
		return true
	}

	return b.Bool()
}
