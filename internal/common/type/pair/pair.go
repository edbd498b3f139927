// Released under an MIT license. See LICENSE.

// Package pair provides ply's cons cell type.
package pair

import (
	"strings"

	"github.com/michaelmacinnis/ply/internal/common"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/interface/seq"
)

const name = "list"

//nolint:gochecknoglobals
var (
	// Null is the empty list. It is also used to mark the end of a list.
	Null cell.I
)

// T (pair) is a cons cell.
type T struct {
	car cell.I
	cdr cell.I
}

type pair = T

// Equal returns true if c is a sequence with elements that are equal to p's.
func (p *pair) Equal(c cell.I) bool {
	if p == Null {
		items, ok := seq.Items(c)

		return ok && len(items) == 0
	}

	return seq.Equal(p.Slice(), c)
}

// Literal returns the literal representation of the pair p.
func (p *pair) Literal() string {
	var b strings.Builder

	b.WriteByte('(')

	var c cell.I = p
	for ; Is(c) && c != Null; c = Cdr(c) {
		if c != cell.I(p) {
			b.WriteByte(' ')
		}

		b.WriteString(literal.String(Car(c)))
	}

	if c != Null {
		b.WriteString(" . ")
		b.WriteString(literal.String(c))
	}

	b.WriteByte(')')

	return b.String()
}

// Name returns the name for a pair type.
func (p *pair) Name() string {
	return name
}

// Slice returns the elements of the list starting at p.
func (p *pair) Slice() []cell.I {
	var items []cell.I

	var c cell.I = p
	for ; c != Null; c = Cdr(c) {
		cp, ok := c.(*pair)
		if !ok {
			break
		}

		items = append(items, cp.car)
	}

	return items
}

// String returns the text representation of the pair p.
func (p *pair) String() string {
	return p.Literal()
}

// Functions specific to pair.

// Car returns the car/head/first member of the pair c.
// If c is not a pair, this function will panic.
func Car(c cell.I) cell.I {
	return To(c).car
}

// Cdr returns the cdr/tail/rest member of the pair c.
// If c is not a pair, this function will panic.
func Cdr(c cell.I) cell.I {
	return To(c).cdr
}

// Cadr returns the car of the cdr of the pair c.
// A non-pair value where a pair is expected will cause a panic.
func Cadr(c cell.I) cell.I {
	return To(To(c).cdr).car
}

// Cons conses h and t together to form a new pair.
func Cons(h, t cell.I) cell.I {
	return &pair{car: h, cdr: t}
}

// SetCdr sets the cdr/tail/rest of the pair c to value.
// Only used while building fresh lists; lists are immutable once shared.
func SetCdr(c, value cell.I) {
	To(c).cdr = value
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*pair)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*pair); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t pair

	// The pair type is a cell.
	_ = cell.I(&t)

	// The pair type has a literal representation.
	_ = literal.I(&t)

	// The pair type is a stringer.
	_ = common.Stringer(&t)

	// The pair type is a sequence.
	_ = seq.I(&t)
}

func init() { //nolint:gochecknoinits
	pair := &pair{}
	pair.car = pair
	pair.cdr = pair

	Null = cell.I(pair)
}
