// Released under an MIT license. See LICENSE.

package ast

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/list"
	"github.com/michaelmacinnis/ply/internal/common/type/pair"
	"github.com/michaelmacinnis/ply/internal/common/type/set"
	"github.com/michaelmacinnis/ply/internal/common/type/sym"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
)

// FromValue converts a value back into an expression. Quoted code and
// macro expansions come through here. Every node created is attributed to l.
func FromValue(c cell.I, l loc.T) Expr {
	switch {
	case sym.Is(c):
		return &Sym{Loc: l, Name: sym.To(c).String()}

	case pair.Is(c) && c != pair.Null:
		return NewList(l, fromValues(pair.To(c).Slice(), l))

	case c == pair.Null:
		return &List{Loc: l}

	case vec.Is(c):
		return &Vec{Loc: l, Items: fromValues(vec.To(c).Slice(), l)}

	case dict.Is(c):
		d := dict.To(c)
		items := make([]Expr, 0, 2*d.Len())

		d.Each(func(k, v cell.I) {
			items = append(items, FromValue(k, l), FromValue(v, l))
		})

		return &Map{Loc: l, Items: items}

	case set.Is(c):
		return &Set{Loc: l, Items: fromValues(set.To(c).Elements(), l)}
	}

	return &Lit{Loc: l, Value: c}
}

// ToValue converts an expression into the value that quoting it produces.
// Collection constructors become collections of unevaluated parts.
func ToValue(e Expr) cell.I {
	switch e := e.(type) {
	case *Lit:
		return e.Value

	case *Sym:
		return sym.New(e.Name)

	case *List:
		return list.New(toValues(e.Items)...)

	case *Pipeline:
		return list.New(toValues(e.Flatten())...)

	case *Vec:
		return vec.New(toValues(e.Items)...)

	case *Map:
		return dict.New(toValues(e.Items)...)

	case *Set:
		return set.New(toValues(e.Items)...)
	}

	panic("unknown expression")
}

func fromValues(cs []cell.I, l loc.T) []Expr {
	es := make([]Expr, len(cs))
	for i, c := range cs {
		es[i] = FromValue(c, l)
	}

	return es
}

func toValues(es []Expr) []cell.I {
	cs := make([]cell.I, len(es))
	for i, e := range es {
		cs[i] = ToValue(e)
	}

	return cs
}
