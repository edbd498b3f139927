// Released under an MIT license. See LICENSE.

// Package kw provides ply's keyword type.
package kw

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

const name = "keyword"

// T (kw) is a keyword. The leading colon is not part of its text.
type T string

type kw = T

// New creates a keyword named v. A leading colon is ignored.
func New(v string) cell.I {
	if len(v) > 0 && v[0] == ':' {
		v = v[1:]
	}

	k := kw(v)

	return &k
}

// Equal returns true if c is a keyword with the same text.
func (k *kw) Equal(c cell.I) bool {
	return Is(c) && *k == *To(c)
}

// Literal returns the literal representation of the keyword k.
func (k *kw) Literal() string {
	return ":" + string(*k)
}

// Name returns the type name for keywords.
func (*kw) Name() string {
	return name
}

// String returns the text of the keyword k, colon included.
func (k *kw) String() string {
	return k.Literal()
}

// Text returns the text of the keyword k without the colon.
func (k *kw) Text() string {
	return string(*k)
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*kw)

	return ok
}

// Named returns true if c is the keyword :s.
func Named(c cell.I, s string) bool {
	k, ok := c.(*kw)

	return ok && string(*k) == s
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*kw); ok {
		return t
	}

	panic("not a " + name)
}
