// Released under an MIT license. See LICENSE.

// Package ast defines the expression trees consumed by the ply evaluator.
//
// The evaluator never sees tokens or raw text. Every node carries the
// location it was read from so that faults can be reported against source.
package ast

import (
	"strings"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
)

// Expr is an expression tree node.
type Expr interface {
	Where() loc.T
	String() string
}

// Lit is a self-evaluating value: nil, a boolean, number, string or keyword.
type Lit struct {
	Loc   loc.T
	Value cell.I
}

// Sym is a reference to a name.
type Sym struct {
	Loc  loc.T
	Name string
}

// List is a call or special form. The evaluator dispatches on its head.
type List struct {
	Loc   loc.T
	Items []Expr
}

// Vec is a vector constructor.
type Vec struct {
	Loc   loc.T
	Items []Expr
}

// Map is a map constructor. Items alternate between keys and values.
type Map struct {
	Loc   loc.T
	Items []Expr
}

// Set is a set constructor.
type Set struct {
	Loc   loc.T
	Items []Expr
}

// Stage is a single step in a pipeline.
type Stage struct {
	Op string
	Fn Expr
}

// Pipeline threads Head through each stage in turn.
type Pipeline struct {
	Loc    loc.T
	Head   Expr
	Stages []Stage
}

// Pipeline operators.
const (
	Pipe     = "|>"
	Railway  = "|>?"
	Parallel = "||>"
)

// IsPipe returns true if s names a pipeline operator.
func IsPipe(s string) bool {
	return s == Pipe || s == Railway || s == Parallel
}

// NewList creates a list or, when the items are an infix pipeline of the
// form (x op f op g ...), a pipeline.
func NewList(l loc.T, items []Expr) Expr {
	n := len(items)
	if n < 3 || n%2 == 0 {
		return &List{Loc: l, Items: items}
	}

	stages := make([]Stage, 0, n/2)

	for i := 1; i < n; i += 2 {
		s, ok := items[i].(*Sym)
		if !ok || !IsPipe(s.Name) {
			return &List{Loc: l, Items: items}
		}

		stages = append(stages, Stage{Op: s.Name, Fn: items[i+1]})
	}

	return &Pipeline{Loc: l, Head: items[0], Stages: stages}
}

// Head returns the name at the head of the list l, if it is a symbol.
func (l *List) Head() (string, bool) {
	if len(l.Items) == 0 {
		return "", false
	}

	s, ok := l.Items[0].(*Sym)
	if !ok {
		return "", false
	}

	return s.Name, true
}

func (e *Lit) String() string      { return literal.String(e.Value) }
func (e *List) String() string     { return join("(", e.Items, ")") }
func (e *Map) String() string      { return join("{", e.Items, "}") }
func (e *Set) String() string      { return join("#{", e.Items, "}") }
func (e *Sym) String() string      { return e.Name }
func (e *Vec) String() string      { return join("[", e.Items, "]") }
func (e *Pipeline) String() string { return join("(", e.Flatten(), ")") }

func (e *Lit) Where() loc.T      { return e.Loc }
func (e *List) Where() loc.T     { return e.Loc }
func (e *Map) Where() loc.T      { return e.Loc }
func (e *Pipeline) Where() loc.T { return e.Loc }
func (e *Set) Where() loc.T      { return e.Loc }
func (e *Sym) Where() loc.T      { return e.Loc }
func (e *Vec) Where() loc.T      { return e.Loc }

// Flatten returns the pipeline in its infix list form.
func (e *Pipeline) Flatten() []Expr {
	items := make([]Expr, 0, 1+2*len(e.Stages))
	items = append(items, e.Head)

	for _, s := range e.Stages {
		items = append(items, &Sym{Loc: e.Loc, Name: s.Op}, s.Fn)
	}

	return items
}

func join(open string, items []Expr, close string) string {
	s := make([]string, len(items))
	for i, e := range items {
		s[i] = e.String()
	}

	return open + strings.Join(s, " ") + close
}
