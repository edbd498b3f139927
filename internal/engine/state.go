// Released under an MIT license. See LICENSE.

package engine

import (
	"context"
	"sync"

	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/closure"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/env"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/list"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/validate"
	"github.com/michaelmacinnis/ply/internal/engine/macro"
	"github.com/michaelmacinnis/ply/internal/engine/match"
)

// A state is the evaluation state of one function body. States are never
// modified once created; entering a function or a loop creates a new one.
// A state may be used by many goroutines at once.
type state struct {
	*T
	ctx       context.Context
	depth     int    // Nested function applications.
	expanding int    // Nested macro expansions within this body.
	frame     *frame // Defers for this body.
	loop      bool   // Inside the body of a loop, where recur is allowed.
}

// A frame holds the defers registered by a function body. Each defer form
// registers at most once per frame, so a defer inside a loop runs once per
// function call rather than once per iteration.
type frame struct {
	sync.Mutex
	deferred []deferred
	sites    map[*ast.List]bool
}

type deferred struct {
	body  []ast.Expr
	scope *env.T
}

type transformer struct {
	s     *state
	scope *env.T
}

// Background returns a caller for work that outlives the current
// evaluation. Its context carries the same values but is never cancelled.
func (s *state) Background() native.Caller {
	return s.detached()
}

// Call calls fn with args. It satisfies native.Caller.
func (s *state) Call(fn cell.I, args ...cell.I) (cell.I, error) {
	return s.call(fn, args)
}

// Context returns the context for blocking operations.
func (s *state) Context() context.Context {
	return s.ctx
}

// Eval evaluates e in scope. It is used by the macro expander.
func (s *state) Eval(e ast.Expr, scope *env.T) (cell.I, error) {
	return s.eval(e, scope, false)
}

// Transformer returns the context for pattern transforms in scope.
func (s *state) Transformer(scope *env.T) match.Context {
	return transformer{s: s, scope: scope}
}

func (s *state) apply(f *closure.Function, args []cell.I) (cell.I, error) {
	c := f.Closure()

	if s.depth >= MaxCallDepth {
		return nil, fault.New(fault.KindRuntime, "call depth exceeded %d", MaxCallDepth)
	}

	local := env.New(c.Env)

	err := s.bind(c.Label, c.Params, c.Env, local, args)
	if err != nil {
		return nil, err
	}

	inner := &state{T: s.T, ctx: s.ctx, depth: s.depth + 1, frame: &frame{}}

	v, err := inner.body(c.Body, local, false)

	return inner.unwind(v, err)
}

// bind matches args against params and defines the bindings in local.
func (s *state) bind(label string, params *match.Vector, captured, local *env.T, args []cell.I) error {
	n, variadic := params.Arity()
	if len(args) < n || (!variadic && len(args) > n) {
		expected := validate.Count(n, "argument", "s")
		if variadic {
			expected = "at least " + expected
		}

		return fault.Arity(label, expected, len(args))
	}

	var b match.Bindings

	ok, err := params.MatchItems(s.Transformer(captured), list.New(args...), args, &b)
	if err != nil {
		return err
	}

	if !ok {
		f := fault.New(fault.KindMatch, "arguments do not match parameters")
		f.Fn = label

		return f
	}

	for _, v := range b {
		local.Define(v.Name, v.Value)
	}

	return nil
}

func (s *state) body(es []ast.Expr, scope *env.T, tail bool) (cell.I, error) {
	var v cell.I = null.Nil

	for i, e := range es {
		var err error

		v, err = s.eval(e, scope, tail && i == len(es)-1)
		if err != nil {
			return nil, err
		}
	}

	return v, nil
}

func (s *state) call(fn cell.I, args []cell.I) (cell.I, error) {
	switch f := fn.(type) {
	case *closure.Function:
		return s.apply(f, args)

	case *native.T:
		return f.Apply(s, args)

	case *closure.Macro:
		return nil, fault.New(fault.KindRuntime, "macro %s used as a function", f.Label)
	}

	// A keyword looks itself up in a map.
	if kw.Is(fn) {
		if len(args) < 1 || len(args) > 2 { //nolint:gomnd
			return nil, fault.Arity(kw.To(fn).Literal(), "1 or 2 arguments", len(args))
		}

		if dict.Is(args[0]) {
			if v, ok := dict.To(args[0]).Get(fn); ok {
				return v, nil
			}
		}

		if len(args) == 2 { //nolint:gomnd
			return args[1], nil
		}

		return null.Nil, nil
	}

	return nil, fault.Type("call", "function", fn)
}

func (s *state) register(l *ast.List, scope *env.T) {
	s.frame.Lock()
	defer s.frame.Unlock()

	if s.frame.sites[l] {
		return
	}

	if s.frame.sites == nil {
		s.frame.sites = map[*ast.List]bool{}
	}

	s.frame.sites[l] = true
	s.frame.deferred = append(s.frame.deferred, deferred{body: l.Items[1:], scope: scope})
}

func (s *state) detached() *state {
	return &state{T: s.T, ctx: context.WithoutCancel(s.ctx), frame: &frame{}}
}

func (s *state) expander() *macro.Expander {
	return &macro.Expander{Depth: s.maxExpand, Eval: s, Fresh: s.counter}
}

// unwind runs the defers for this body, most recent first. Every defer
// runs even if the body or an earlier defer failed. The first error wins.
func (s *state) unwind(v cell.I, err error) (cell.I, error) {
	for {
		s.frame.Lock()

		n := len(s.frame.deferred)
		if n == 0 {
			s.frame.Unlock()

			return v, err
		}

		d := s.frame.deferred[n-1]
		s.frame.deferred = s.frame.deferred[:n-1]
		s.frame.Unlock()

		if _, derr := s.body(d.body, d.scope, false); derr != nil && err == nil {
			v, err = nil, derr
		}
	}
}

// Transform evaluates fn and applies the result to v.
func (t transformer) Transform(fn ast.Expr, v cell.I) (cell.I, error) {
	f, err := t.s.eval(fn, t.scope, false)
	if err != nil {
		return nil, err
	}

	return t.s.call(f, []cell.I{v})
}

func implements() { //nolint:deadcode,unused
	var s state

	// The state type is a native.Caller.
	_ = native.Caller(&s)

	// The state type is a macro.Evaluator.
	_ = macro.Evaluator(&s)
}
