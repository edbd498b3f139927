// Released under an MIT license. See LICENSE.

// Package validate is the contract-checking shim used at the native
// registry boundary.
//
// Arity is checked once, before a native runs. Type accessors panic with a
// mismatch when handed the wrong kind of value; Recover, deferred by the
// registry, turns that panic into a type fault naming the native.
package validate

import (
	"fmt"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/seq"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/set"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/type/sym"
)

type mismatch struct {
	expected string
	actual   cell.I
}

// Arity checks that n arguments satisfy min and max. A negative max means
// there is no upper bound.
func Arity(fn string, n, min, max int) error {
	if n >= min && (max < 0 || n <= max) {
		return nil
	}

	var s string

	switch {
	case min == max:
		s = Count(min, "argument", "s")
	case max < 0:
		s = "at least " + Count(min, "argument", "s")
	case n < min:
		s = "at least " + Count(min, "argument", "s")
	default:
		s = "at most " + Count(max, "argument", "s")
	}

	return fault.Arity(fn, s, n)
}

// Count returns n followed by label, pluralized with p unless n is one.
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}

// Recover converts a type mismatch raised by an accessor into a fault
// attributed to fn. Other panics are re-raised.
func Recover(fn string, err *error) {
	r := recover()
	if r == nil {
		return
	}

	m, ok := r.(*mismatch)
	if !ok {
		panic(r)
	}

	*err = fault.Type(fn, m.expected, m.actual)
}

// Expect raises a type mismatch unless ok.
func Expect(ok bool, expected string, actual cell.I) {
	if !ok {
		panic(&mismatch{expected: expected, actual: actual})
	}
}

// Dict returns c as a map.
func Dict(c cell.I) *dict.T {
	Expect(dict.Is(c), "map", c)

	return dict.To(c)
}

// Float returns the number c as a float64.
func Float(c cell.I) float64 {
	Expect(num.Is(c), "number", c)

	return num.ToFloat(c)
}

// Int returns the integer c.
func Int(c cell.I) int64 {
	Expect(num.IsInt(c), "integer", c)

	return num.ToInt(c)
}

// Items returns the elements of any collection. Maps yield [k v] entries
// supplied by entry and nil yields no elements.
func Items(c cell.I, entry func(k, v cell.I) cell.I) []cell.I {
	if null.Is(c) {
		return nil
	}

	if items, ok := seq.Items(c); ok {
		return items
	}

	if set.Is(c) {
		return set.To(c).Elements()
	}

	if dict.Is(c) && entry != nil {
		d := dict.To(c)
		items := make([]cell.I, 0, d.Len())

		d.Each(func(k, v cell.I) {
			items = append(items, entry(k, v))
		})

		return items
	}

	Expect(false, "collection", c)

	return nil
}

// Name returns the text of a string, symbol or keyword.
func Name(c cell.I) string {
	switch {
	case str.Is(c):
		return str.To(c).String()
	case sym.Is(c):
		return sym.To(c).String()
	case kw.Is(c):
		return kw.To(c).Text()
	}

	Expect(false, "string, symbol or keyword", c)

	return ""
}

// Number returns c if it is a number.
func Number(c cell.I) cell.I {
	Expect(num.Is(c), "number", c)

	return c
}

// Seq returns the elements of a list or vector. Nil is the empty sequence.
func Seq(c cell.I) []cell.I {
	if null.Is(c) {
		return nil
	}

	items, ok := seq.Items(c)
	Expect(ok, "list or vector", c)

	return items
}

// String returns the text of the string c.
func String(c cell.I) string {
	Expect(str.Is(c), "string", c)

	return str.To(c).String()
}
