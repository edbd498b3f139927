// Released under an MIT license. See LICENSE.

// Package atom provides ply's mutable cell type.
package atom

import (
	"sync"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
)

const name = "atom"

// T (atom) is a thread-safe mutable cell.
//
// Updates (Reset and Swap) are serialized by one lock. Reads take a
// separate read lock so an update function may deref the atom it is
// updating. An update function must not update its own atom.
type T struct {
	update sync.Mutex
	value  sync.RWMutex
	v      cell.I
}

type atom = T

// New creates an atom holding v.
func New(v cell.I) *T {
	return &atom{v: v}
}

// Deref returns the current value of a.
func (a *atom) Deref() cell.I {
	a.value.RLock()
	defer a.value.RUnlock()

	return a.v
}

// Equal returns true if c is the same atom.
func (a *atom) Equal(c cell.I) bool {
	o, ok := c.(*atom)

	return ok && o == a
}

// Literal returns the literal representation of a.
func (a *atom) Literal() string {
	return "#<atom " + literal.String(a.Deref()) + ">"
}

// Name returns the name of the atom type.
func (*atom) Name() string {
	return name
}

// Reset replaces the value of a with v.
func (a *atom) Reset(v cell.I) cell.I {
	a.update.Lock()
	defer a.update.Unlock()

	a.set(v)

	return v
}

// Swap replaces the value of a with the result of f applied to it.
// No other update can interleave between the read and the write.
func (a *atom) Swap(f func(cell.I) (cell.I, error)) (cell.I, error) {
	a.update.Lock()
	defer a.update.Unlock()

	v, err := f(a.Deref())
	if err != nil {
		return nil, err
	}

	a.set(v)

	return v, nil
}

func (a *atom) set(v cell.I) {
	a.value.Lock()
	defer a.value.Unlock()

	a.v = v
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*atom)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*atom); ok {
		return t
	}

	panic("not an " + name)
}
