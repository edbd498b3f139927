// Released under an MIT license. See LICENSE.

package engine

import (
	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/env"
	"github.com/michaelmacinnis/ply/internal/common/type/errmap"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

// pipeline threads a value through each stage, left to right.
//
//	x |> f        (f x)
//	x |> (f a b)  (f a b x)
//	x |>? f       x if x is a structured error, otherwise (f x)
//	x ||> f       (pmap f x)
func (s *state) pipeline(p *ast.Pipeline, scope *env.T) (cell.I, error) {
	v, err := s.eval(p.Head, scope, false)
	if err != nil {
		return nil, err
	}

	for _, st := range p.Stages {
		if st.Op == ast.Railway && errmap.Is(v) {
			continue
		}

		f, err := s.stage(st.Fn, scope)
		if err != nil {
			return nil, err
		}

		if st.Op == ast.Parallel {
			vs, err := items(ast.Parallel, v)
			if err == nil {
				vs, err = s.tasks.Map(s, f, vs)
			}

			if err != nil {
				return nil, fault.At(err, st.Fn.Where())
			}

			v = vec.New(vs...)

			continue
		}

		v, err = s.call(f, []cell.I{v})
		if err != nil {
			return nil, fault.At(err, st.Fn.Where())
		}
	}

	return v, nil
}

// stage returns the function for a pipeline stage. A call form supplies
// leading arguments; the piped value is appended to them.
func (s *state) stage(e ast.Expr, scope *env.T) (cell.I, error) {
	l, ok := e.(*ast.List)
	if !ok || len(l.Items) == 0 {
		return s.eval(e, scope, false)
	}

	if head, ok := l.Head(); ok {
		if specials[head] {
			return s.eval(e, scope, false)
		}

		if s.expander().Lookup(l, scope) != nil {
			return s.macroStage(l, scope)
		}
	}

	vs, err := s.each(l.Items, scope)
	if err != nil {
		return nil, err
	}

	f, fixed := vs[0], vs[1:]
	if len(fixed) == 0 {
		return f, nil
	}

	return native.New("partial", 1, 1, func(c native.Caller, args []cell.I) (cell.I, error) {
		return c.Call(f, append(fixed[:len(fixed):len(fixed)], args[0])...)
	}), nil
}

// macroStage returns a function that expands and evaluates the macro call
// l with the piped value, quoted, as its last argument.
func (s *state) macroStage(l *ast.List, scope *env.T) (cell.I, error) {
	return native.New("partial", 1, 1, func(c native.Caller, args []cell.I) (cell.I, error) {
		q := &ast.List{Loc: l.Loc, Items: []ast.Expr{
			&ast.Sym{Loc: l.Loc, Name: "quote"},
			ast.FromValue(args[0], l.Loc),
		}}

		items := make([]ast.Expr, 0, len(l.Items)+1)
		items = append(items, l.Items...)

		return s.eval(&ast.List{Loc: l.Loc, Items: append(items, q)}, scope, false)
	}), nil
}

// items returns the elements of a collection. The entries of a map are
// [key value] vectors.
func items(fn string, c cell.I) (vs []cell.I, err error) {
	defer validate.Recover(fn, &err)

	return validate.Items(c, func(k, v cell.I) cell.I {
		return vec.New(k, v)
	}), nil
}
