// Released under an MIT license. See LICENSE.

// Package seq defines the interface for ply's ordered collections.
package seq

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

// I (seq) is any collection whose elements can be visited in order.
type I interface {
	cell.I

	Slice() []cell.I
}

// Is returns true if c is a seq.
func Is(c cell.I) bool {
	_, ok := c.(I)

	return ok
}

// Items returns the elements of c if c is a seq.
func Items(c cell.I) ([]cell.I, bool) {
	s, ok := c.(I)
	if !ok {
		return nil, false
	}

	return s.Slice(), true
}

// Equal returns true if a and b hold equal elements in the same order.
func Equal(a []cell.I, b cell.I) bool {
	other, ok := Items(b)
	if !ok || len(a) != len(other) {
		return false
	}

	for i, v := range a {
		if !v.Equal(other[i]) {
			return false
		}
	}

	return true
}
