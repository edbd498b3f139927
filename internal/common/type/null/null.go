// Released under an MIT license. See LICENSE.

// Package null provides ply's nil value.
package null

import (
	"github.com/michaelmacinnis/ply/internal/common"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/interface/truth"
)

const name = "nil"

// T (null) is the type of ply's single nil value.
type T struct{}

type null = T

// Nil is the only value of type null.
var Nil cell.I = &null{} //nolint:gochecknoglobals

// Bool returns false. Nil is always false.
func (*null) Bool() bool {
	return false
}

// Equal returns true if c is nil.
func (*null) Equal(c cell.I) bool {
	return Is(c)
}

// Literal returns the literal representation of nil.
func (*null) Literal() string {
	return name
}

// Name returns the type name for nil.
func (*null) Name() string {
	return name
}

// String returns the text of nil.
func (*null) String() string {
	return name
}

// Is returns true if c is nil. A Go nil is treated as ply's nil.
func Is(c cell.I) bool {
	if c == nil {
		return true
	}

	_, ok := c.(*null)

	return ok
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t null

	// The null type is a cell.
	_ = cell.I(&t)

	// The null type has a literal representation.
	_ = literal.I(&t)

	// The null type is a stringer.
	_ = common.Stringer(&t)

	// The null type has a truth value.
	_ = truth.I(&t)
}
