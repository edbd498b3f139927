// Released under an MIT license. See LICENSE.

// Package macro expands ply macro calls.
//
// Hygiene comes from fresh symbols rather than scope tracking. Inside a
// template, a name ending in '#' is replaced by a symbol that is unique to
// one expansion; gensym is available for anything more elaborate.
package macro

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/closure"
	"github.com/michaelmacinnis/ply/internal/common/type/env"
	"github.com/michaelmacinnis/ply/internal/common/type/list"
	"github.com/michaelmacinnis/ply/internal/common/validate"
	"github.com/michaelmacinnis/ply/internal/engine/match"
)

// DefaultDepth is the expansion depth limit used when none is configured.
const DefaultDepth = 1000

// Counter produces fresh symbol names. It is safe for concurrent use.
type Counter struct {
	n atomic.Uint64
}

// Evaluator is what the expander needs from the evaluator.
type Evaluator interface {
	Eval(e ast.Expr, scope *env.T) (cell.I, error)
	Transformer(scope *env.T) match.Context
}

// Expander expands macro calls.
type Expander struct {
	Depth int // Maximum nested expansions.
	Eval  Evaluator
	Fresh *Counter
}

// Gensym returns a name, starting with prefix, that no other call returns.
func (c *Counter) Gensym(prefix string) string {
	if prefix == "" {
		prefix = "G"
	}

	return prefix + "__" + strconv.FormatUint(c.n.Add(1), 10)
}

// Expand repeatedly expands e while it is a macro call.
func (x *Expander) Expand(e ast.Expr, scope *env.T) (ast.Expr, error) {
	e, _, err := x.expand(e, scope, 0)

	return e, err
}

// ExpandAll expands every macro call in e, including those in subforms.
// Quoted forms and macro definitions are left alone.
func (x *Expander) ExpandAll(e ast.Expr, scope *env.T) (ast.Expr, error) {
	return x.all(e, scope, 0)
}

// Expand1 expands e once if it is a macro call.
func (x *Expander) Expand1(e ast.Expr, scope *env.T) (ast.Expr, bool, error) {
	l, ok := e.(*ast.List)
	if !ok {
		return e, false, nil
	}

	m := x.lookup(l, scope)
	if m == nil {
		return e, false, nil
	}

	r, err := x.apply(m, l)
	if err != nil {
		return nil, false, err
	}

	return r, true, nil
}

// Lookup returns the macro named by the head of l, if there is one.
func (x *Expander) Lookup(l *ast.List, scope *env.T) *closure.Macro {
	return x.lookup(l, scope)
}

func (x *Expander) all(e ast.Expr, scope *env.T, depth int) (ast.Expr, error) {
	e, depth, err := x.expand(e, scope, depth)
	if err != nil {
		return nil, err
	}

	switch e := e.(type) {
	case *ast.List:
		if head, ok := e.Head(); ok {
			switch head {
			case "quote", "quasiquote", "defmacro":
				return e, nil
			}
		}

		items, err := x.each(e.Items, scope, depth)
		if err != nil {
			return nil, err
		}

		return ast.NewList(e.Loc, items), nil

	case *ast.Pipeline:
		head, err := x.all(e.Head, scope, depth)
		if err != nil {
			return nil, err
		}

		stages := make([]ast.Stage, len(e.Stages))

		for i, s := range e.Stages {
			fn, err := x.all(s.Fn, scope, depth)
			if err != nil {
				return nil, err
			}

			stages[i] = ast.Stage{Op: s.Op, Fn: fn}
		}

		return &ast.Pipeline{Loc: e.Loc, Head: head, Stages: stages}, nil

	case *ast.Vec:
		items, err := x.each(e.Items, scope, depth)

		return &ast.Vec{Loc: e.Loc, Items: items}, err

	case *ast.Map:
		items, err := x.each(e.Items, scope, depth)

		return &ast.Map{Loc: e.Loc, Items: items}, err

	case *ast.Set:
		items, err := x.each(e.Items, scope, depth)

		return &ast.Set{Loc: e.Loc, Items: items}, err
	}

	return e, nil
}

func (x *Expander) apply(m *closure.Macro, l *ast.List) (ast.Expr, error) {
	args := make([]cell.I, len(l.Items)-1)
	for i, a := range l.Items[1:] {
		args[i] = ast.ToValue(a)
	}

	local := env.New(m.Env)

	var b match.Bindings

	ok, err := m.Params.MatchItems(x.Eval.Transformer(m.Env), list.New(args...), args, &b)
	if err != nil {
		return nil, fault.At(err, l.Loc)
	}

	if !ok {
		n, variadic := m.Params.Arity()

		expected := validate.Count(n, "argument", "s")
		if variadic {
			expected = "at least " + expected
		}

		return nil, fault.At(fault.Arity(m.Label, expected, len(args)), l.Loc)
	}

	for _, v := range b {
		local.Define(v.Name, v.Value)
	}

	v, err := newQuasi(x.Eval, x.Fresh, local).value(Template(m.Body))
	if err != nil {
		return nil, fault.At(err, l.Loc)
	}

	return ast.FromValue(v, l.Loc), nil
}

func (x *Expander) each(es []ast.Expr, scope *env.T, depth int) ([]ast.Expr, error) {
	r := make([]ast.Expr, len(es))

	for i, e := range es {
		var err error

		r[i], err = x.all(e, scope, depth)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (x *Expander) expand(e ast.Expr, scope *env.T, depth int) (ast.Expr, int, error) {
	limit := x.Depth
	if limit <= 0 {
		limit = DefaultDepth
	}

	for {
		r, ok, err := x.Expand1(e, scope)
		if err != nil || !ok {
			return r, depth, err
		}

		depth++
		if depth > limit {
			return nil, depth, fault.At(fault.New(
				fault.KindExpansion,
				"macro expansion exceeded depth %d", limit,
			), e.Where())
		}

		e = r
	}
}

func (x *Expander) lookup(l *ast.List, scope *env.T) *closure.Macro {
	name, ok := l.Head()
	if !ok || scope == nil {
		return nil
	}

	v, ok := scope.Lookup(name)
	if !ok {
		return nil
	}

	m, _ := v.(*closure.Macro)

	return m
}

// Template returns the template for a macro body. A body that is a single
// quasiquoted form is unwrapped, since the body is quasiquoted anyway.
func Template(body []ast.Expr) ast.Expr {
	var t ast.Expr

	if len(body) == 1 {
		t = body[0]
	} else {
		items := make([]ast.Expr, 0, len(body)+1)
		items = append(items, &ast.Sym{Name: "do"})
		t = &ast.List{Items: append(items, body...)}
	}

	if l, ok := t.(*ast.List); ok && len(l.Items) == 2 { //nolint:gomnd
		if head, _ := l.Head(); head == "quasiquote" {
			return l.Items[1]
		}
	}

	return t
}

// Fresh reports whether name asks for a fresh symbol.
func Fresh(name string) bool {
	return len(name) > 1 && strings.HasSuffix(name, "#")
}
