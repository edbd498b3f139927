// Released under an MIT license. See LICENSE.

// Package set provides ply's set type.
package set

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
)

const name = "set"

// T (set) is an immutable collection of distinct values in insertion order.
type T struct {
	m *linkedhashmap.Map
}

type set = T

// New creates a set holding the distinct elements of items.
func New(items ...cell.I) *T {
	s := &set{m: linkedhashmap.New()}

	for _, c := range items {
		s.m.Put(key(c), c)
	}

	return s
}

// Conj returns a new set that also holds items.
func (s *set) Conj(items ...cell.I) *T {
	return New(append(s.Elements(), items...)...)
}

// Contains returns true if c is an element of s.
func (s *set) Contains(c cell.I) bool {
	_, ok := s.m.Get(key(c))

	return ok
}

// Disj returns a new set without c.
func (s *set) Disj(c cell.I) *T {
	n := New(s.Elements()...)
	n.m.Remove(key(c))

	return n
}

// Equal returns true if c is a set with the same elements as s.
func (s *set) Equal(c cell.I) bool {
	o, ok := c.(*set)
	if !ok || o.m.Size() != s.m.Size() {
		return false
	}

	for _, k := range s.m.Keys() {
		if _, found := o.m.Get(k); !found {
			return false
		}
	}

	return true
}

// Len returns the number of elements in s.
func (s *set) Len() int {
	return s.m.Size()
}

// Literal returns the literal representation of the set s.
func (s *set) Literal() string {
	var b strings.Builder

	b.WriteString("#{")

	for i, c := range s.Elements() {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(literal.String(c))
	}

	b.WriteByte('}')

	return b.String()
}

// Name returns the name of the set type.
func (*set) Name() string {
	return name
}

// Elements returns the elements of s in insertion order.
// Sets are not sequences: they never compare equal to lists or vectors.
func (s *set) Elements() []cell.I {
	values := s.m.Values()

	items := make([]cell.I, len(values))
	for i, v := range values {
		items[i] = v.(cell.I)
	}

	return items
}

func (s *set) String() string {
	return s.Literal()
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*set)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*set); ok {
		return t
	}

	panic("not a " + name)
}

func key(c cell.I) string {
	return c.Name() + "\x00" + literal.String(c)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t set

	// The set type is a cell.
	_ = cell.I(&t)

	// The set type has a literal representation.
	_ = literal.I(&t)
}
