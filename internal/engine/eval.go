// Released under an MIT license. See LICENSE.

package engine

import (
	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/env"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/pair"
	"github.com/michaelmacinnis/ply/internal/common/type/set"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
)

// Special form names. A special form cannot be shadowed.
//
//nolint:gochecknoglobals
var specials = map[string]bool{
	"and":            true,
	"def":            true,
	"defer":          true,
	"defmacro":       true,
	"defn":           true,
	"do":             true,
	"fn":             true,
	"go":             true,
	"if":             true,
	"let":            true,
	"loop":           true,
	"match":          true,
	"or":             true,
	"quasiquote":     true,
	"quote":          true,
	"recur":          true,
	"scope-go":       true,
	"try":            true,
	"unquote":        true,
	"unquote-splice": true,
}

// eval evaluates e in scope. When tail is true e is in tail position with
// respect to the innermost loop body, if there is one.
func (s *state) eval(e ast.Expr, scope *env.T, tail bool) (cell.I, error) {
	switch e := e.(type) {
	case *ast.Lit:
		return e.Value, nil

	case *ast.Sym:
		return s.lookup(e, scope)

	case *ast.List:
		return s.list(e, scope, tail)

	case *ast.Pipeline:
		return s.pipeline(e, scope)

	case *ast.Vec:
		items, err := s.each(e.Items, scope)
		if err != nil {
			return nil, err
		}

		return vec.New(items...), nil

	case *ast.Map:
		if len(e.Items)%2 != 0 {
			return nil, syntax(e, "map literal needs an even number of forms")
		}

		items, err := s.each(e.Items, scope)
		if err != nil {
			return nil, err
		}

		return dict.New(items...), nil

	case *ast.Set:
		items, err := s.each(e.Items, scope)
		if err != nil {
			return nil, err
		}

		return set.New(items...), nil
	}

	return nil, fault.New(fault.KindRuntime, "cannot evaluate %T", e)
}

func (s *state) each(es []ast.Expr, scope *env.T) ([]cell.I, error) {
	vs := make([]cell.I, len(es))

	for i, e := range es {
		v, err := s.eval(e, scope, false)
		if err != nil {
			return nil, err
		}

		vs[i] = v
	}

	return vs, nil
}

func (s *state) list(l *ast.List, scope *env.T, tail bool) (cell.I, error) {
	if len(l.Items) == 0 {
		return pair.Null, nil
	}

	if head, ok := l.Head(); ok && specials[head] {
		v, err := s.special(head, l, scope, tail)

		return v, fault.At(err, l.Loc)
	}

	x := s.expander()
	if m := x.Lookup(l, scope); m != nil {
		if s.expanding >= s.maxExpand {
			return nil, fault.At(fault.New(
				fault.KindExpansion, "macro expansion exceeded depth %d", s.maxExpand,
			), l.Loc)
		}

		r, _, err := x.Expand1(l, scope)
		if err != nil {
			return nil, err
		}

		inner := *s
		inner.expanding++

		return inner.eval(r, scope, tail)
	}

	f, err := s.eval(l.Items[0], scope, false)
	if err != nil {
		return nil, err
	}

	args, err := s.each(l.Items[1:], scope)
	if err != nil {
		return nil, err
	}

	v, err := s.call(f, args)

	return v, fault.At(err, l.Loc)
}

func (s *state) lookup(e *ast.Sym, scope *env.T) (cell.I, error) {
	if v, ok := scope.Lookup(e.Name); ok {
		return v, nil
	}

	return nil, fault.At(fault.Undefined(e.Name, suggest(e.Name, scope.Visible())), e.Loc)
}

func (s *state) special(head string, l *ast.List, scope *env.T, tail bool) (cell.I, error) {
	switch head {
	case "and":
		return s.and(l.Items[1:], scope)
	case "def":
		return s.def(l, scope)
	case "defer":
		s.register(l, scope)

		return null.Nil, nil
	case "defmacro":
		return s.defmacro(l, scope)
	case "defn":
		return s.defn(l, scope)
	case "do":
		return s.body(l.Items[1:], scope, tail)
	case "fn":
		return s.fn(l, scope)
	case "go":
		return s.spawn(l.Items[1:], scope), nil
	case "if":
		return s.conditional(l, scope, tail)
	case "let":
		return s.let(l, scope, tail)
	case "loop":
		return s.iterate(l, scope)
	case "match":
		return s.choose(l, scope, tail)
	case "or":
		return s.or(l.Items[1:], scope)
	case "quasiquote", "quote":
		return s.quote(head, l, scope)
	case "recur":
		return s.recur(l, scope, tail)
	case "scope-go":
		return s.scoped(l, scope)
	case "try":
		return s.try(l.Items[1:], scope)
	}

	return nil, syntax(l, head+" outside quasiquote")
}

func syntax(e ast.Expr, msg string) error {
	return fault.At(fault.New(fault.KindSyntax, "%s", msg), e.Where())
}
