// Released under an MIT license. See LICENSE.

// Package vec provides ply's vector type.
package vec

import (
	"strings"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/interface/seq"
)

const name = "vector"

// T (vec) is an immutable, indexed sequence.
type T struct {
	items []cell.I
}

type vec = T

// New creates a vector holding items. The slice is owned by the vector.
func New(items ...cell.I) cell.I {
	return &vec{items: items}
}

// Append returns a new vector with elements added to the end of v.
func (v *vec) Append(elements ...cell.I) cell.I {
	items := make([]cell.I, 0, len(v.items)+len(elements))
	items = append(items, v.items...)

	return New(append(items, elements...)...)
}

// Equal returns true if c is a sequence with the same elements as v.
func (v *vec) Equal(c cell.I) bool {
	return seq.Equal(v.items, c)
}

// Get returns the element at index i, if it exists.
func (v *vec) Get(i int64) (cell.I, bool) {
	if i < 0 || i >= int64(len(v.items)) {
		return nil, false
	}

	return v.items[i], true
}

// Len returns the number of elements in v.
func (v *vec) Len() int {
	return len(v.items)
}

// Literal returns the literal representation of the vector v.
func (v *vec) Literal() string {
	var b strings.Builder

	b.WriteByte('[')

	for i, c := range v.items {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(literal.String(c))
	}

	b.WriteByte(']')

	return b.String()
}

// Name returns the name of the vector type.
func (*vec) Name() string {
	return name
}

// Slice returns a copy of the elements of v.
func (v *vec) Slice() []cell.I {
	return append([]cell.I(nil), v.items...)
}

func (v *vec) String() string {
	return v.Literal()
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*vec)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*vec); ok {
		return t
	}

	panic("not a " + name)
}
