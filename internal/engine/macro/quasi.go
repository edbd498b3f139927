// Released under an MIT license. See LICENSE.

package macro

import (
	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/env"
	"github.com/michaelmacinnis/ply/internal/common/type/list"
	"github.com/michaelmacinnis/ply/internal/common/type/set"
	"github.com/michaelmacinnis/ply/internal/common/type/sym"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

type quasi struct {
	counter *Counter
	eval    Evaluator
	fresh   map[string]string
	scope   *env.T
}

// Quasiquote builds the value described by the template e. Unquoted parts
// are evaluated in scope and each name# is replaced by a fresh symbol.
func Quasiquote(ev Evaluator, c *Counter, e ast.Expr, scope *env.T) (cell.I, error) {
	return newQuasi(ev, c, scope).value(e)
}

func newQuasi(ev Evaluator, c *Counter, scope *env.T) *quasi {
	return &quasi{counter: c, eval: ev, fresh: map[string]string{}, scope: scope}
}

func (q *quasi) items(es []ast.Expr) ([]cell.I, error) {
	r := make([]cell.I, 0, len(es))

	for _, e := range es {
		if arg, ok := unquoted(e, "unquote-splice"); ok {
			v, err := q.eval.Eval(arg, q.scope)
			if err != nil {
				return nil, err
			}

			spliced, err := splice(v)
			if err != nil {
				return nil, fault.At(err, e.Where())
			}

			r = append(r, spliced...)

			continue
		}

		v, err := q.value(e)
		if err != nil {
			return nil, err
		}

		r = append(r, v)
	}

	return r, nil
}

func (q *quasi) value(e ast.Expr) (cell.I, error) {
	if arg, ok := unquoted(e, "unquote"); ok {
		return q.eval.Eval(arg, q.scope)
	}

	if _, ok := unquoted(e, "unquote-splice"); ok {
		return nil, fault.At(fault.New(fault.KindRuntime, "unquote-splice outside of a collection"), e.Where())
	}

	switch e := e.(type) {
	case *ast.Sym:
		if Fresh(e.Name) {
			name, ok := q.fresh[e.Name]
			if !ok {
				name = q.counter.Gensym(e.Name[:len(e.Name)-1])
				q.fresh[e.Name] = name
			}

			return sym.New(name), nil
		}

	case *ast.List:
		items, err := q.items(e.Items)
		if err != nil {
			return nil, err
		}

		return list.New(items...), nil

	case *ast.Pipeline:
		return q.value(&ast.List{Loc: e.Loc, Items: e.Flatten()})

	case *ast.Vec:
		items, err := q.items(e.Items)
		if err != nil {
			return nil, err
		}

		return vec.New(items...), nil

	case *ast.Map:
		items, err := q.items(e.Items)
		if err != nil {
			return nil, err
		}

		return dict.New(items...), nil

	case *ast.Set:
		items, err := q.items(e.Items)
		if err != nil {
			return nil, err
		}

		return set.New(items...), nil
	}

	return ast.ToValue(e), nil
}

func splice(v cell.I) (r []cell.I, err error) {
	defer validate.Recover("unquote-splice", &err)

	return validate.Items(v, nil), nil
}

func unquoted(e ast.Expr, form string) (ast.Expr, bool) {
	l, ok := e.(*ast.List)
	if !ok || len(l.Items) != 2 { //nolint:gomnd
		return nil, false
	}

	if head, _ := l.Head(); head != form {
		return nil, false
	}

	return l.Items[1], true
}
