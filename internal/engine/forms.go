// Released under an MIT license. See LICENSE.

package engine

import (
	"log/slog"

	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/truth"
	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/closure"
	"github.com/michaelmacinnis/ply/internal/common/type/env"
	"github.com/michaelmacinnis/ply/internal/common/type/errmap"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/promise"
	"github.com/michaelmacinnis/ply/internal/common/type/scope"
	"github.com/michaelmacinnis/ply/internal/common/validate"
	"github.com/michaelmacinnis/ply/internal/engine/macro"
	"github.com/michaelmacinnis/ply/internal/engine/match"
)

// A recurPoint carries the values passed to recur back to its loop.
type recurPoint struct {
	args []cell.I
}

type arm struct {
	pattern match.P
	guard   ast.Expr
	body    ast.Expr
}

type binding struct {
	pattern match.P
	init    ast.Expr
}

func (r *recurPoint) Equal(c cell.I) bool {
	return c == r
}

func (*recurPoint) Name() string {
	return "recur"
}

func (s *state) and(es []ast.Expr, scope *env.T) (cell.I, error) {
	var v cell.I = boolean.True

	for _, e := range es {
		var err error

		v, err = s.eval(e, scope, false)
		if err != nil || !truth.Value(v) {
			return v, err
		}
	}

	return v, nil
}

// bindings compiles the binding vector of a let or loop.
func (s *state) bindings(form string, e ast.Expr) ([]binding, error) {
	if v, ok := s.patterns.Load(e); ok {
		return v.([]binding), nil
	}

	v, ok := e.(*ast.Vec)
	if !ok || len(v.Items)%2 != 0 {
		return nil, syntax(e, form+" needs a vector of pattern, value pairs")
	}

	bs := make([]binding, 0, len(v.Items)/2)

	for i := 0; i < len(v.Items); i += 2 {
		p, err := match.Compile(v.Items[i])
		if err != nil {
			return nil, err
		}

		bs = append(bs, binding{pattern: p, init: v.Items[i+1]})
	}

	s.patterns.Store(e, bs)

	return bs, nil
}

func (s *state) conditional(l *ast.List, scope *env.T, tail bool) (cell.I, error) {
	if n := len(l.Items); n < 3 || n > 4 {
		return nil, syntax(l, "if needs a condition, a consequent and an optional alternative")
	}

	c, err := s.eval(l.Items[1], scope, false)
	if err != nil {
		return nil, err
	}

	if truth.Value(c) {
		return s.eval(l.Items[2], scope, tail)
	}

	if len(l.Items) == 4 { //nolint:gomnd
		return s.eval(l.Items[3], scope, tail)
	}

	return null.Nil, nil
}

// choose evaluates a match form.
//
//	(match v pattern body  pattern | pattern body  pattern :when guard body)
func (s *state) choose(l *ast.List, scope *env.T, tail bool) (cell.I, error) {
	if len(l.Items) < 2 { //nolint:gomnd
		return nil, syntax(l, "match needs a value")
	}

	arms, err := s.arms(l)
	if err != nil {
		return nil, err
	}

	v, err := s.eval(l.Items[1], scope, false)
	if err != nil {
		return nil, err
	}

	tr := s.Transformer(scope)

	for _, a := range arms {
		var b match.Bindings

		ok, err := a.pattern.Match(tr, v, &b)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		local := scope
		if len(b) > 0 {
			local = env.New(scope)

			for _, v := range b {
				local.Define(v.Name, v.Value)
			}
		}

		if a.guard != nil {
			g, err := s.eval(a.guard, local, false)
			if err != nil {
				return nil, err
			}

			if !truth.Value(g) {
				continue
			}
		}

		return s.eval(a.body, local, tail)
	}

	return nil, fault.New(fault.KindMatch, "no matching pattern for %s value", describe(v))
}

func (s *state) arms(l *ast.List) ([]arm, error) {
	if v, ok := s.patterns.Load(l); ok {
		return v.([]arm), nil
	}

	var arms []arm

	items := l.Items[2:]
	for len(items) > 0 {
		alts := []match.P{}

		for {
			p, err := match.Compile(items[0])
			if err != nil {
				return nil, err
			}

			alts = append(alts, p)
			items = items[1:]

			if len(items) < 2 || !isSym(items[0], "|") { //nolint:gomnd
				break
			}

			items = items[1:]
		}

		p, err := match.Any(l, alts...)
		if err != nil {
			return nil, err
		}

		a := arm{pattern: p}

		if len(items) > 0 && isKeyword(items[0], "when") {
			if len(items) < 2 { //nolint:gomnd
				return nil, syntax(l, ":when needs a guard")
			}

			a.guard, items = items[1], items[2:]
		}

		if len(items) == 0 {
			return nil, syntax(l, "match arm needs a body")
		}

		a.body, items = items[0], items[1:]
		arms = append(arms, a)
	}

	s.patterns.Store(l, arms)

	return arms, nil
}

func (s *state) def(l *ast.List, scope *env.T) (cell.I, error) {
	if len(l.Items) != 3 { //nolint:gomnd
		return nil, syntax(l, "def needs a name and a value")
	}

	name, ok := l.Items[1].(*ast.Sym)
	if !ok {
		return nil, syntax(l.Items[1], "def needs a name")
	}

	v, err := s.eval(l.Items[2], scope, false)
	if err != nil {
		return nil, err
	}

	if f, ok := v.(*closure.Function); ok && f.Label == "" {
		c := *f
		c.Label = name.Name
		v = &c
	}

	s.define(name.Name, v, scope, l.Loc)

	return v, nil
}

func (s *state) defmacro(l *ast.List, scope *env.T) (cell.I, error) {
	if len(l.Items) < 3 { //nolint:gomnd
		return nil, syntax(l, "defmacro needs a name, parameters and a template")
	}

	name, ok := l.Items[1].(*ast.Sym)
	if !ok {
		return nil, syntax(l.Items[1], "defmacro needs a name")
	}

	c, err := s.closure(name.Name, l.Items[2], l.Items[3:], scope, l.Loc)
	if err != nil {
		return nil, err
	}

	m := (*closure.Macro)(c)
	s.define(name.Name, m, scope, l.Loc)

	return m, nil
}

// define binds name in the global environment. Rebinding is allowed but,
// unless warnings are suppressed, reported.
func (s *state) define(name string, v cell.I, scope *env.T, at loc.T) {
	prev, ok := scope.Global().Replace(name, v)
	if !ok || s.quiet {
		return
	}

	reason := "redefines variable"
	label := name

	switch p := prev.(type) {
	case *native.T:
		reason = "shadows native"

		if p.Label() != name {
			label = name + " (native " + p.Label() + ")"
		}
	case *closure.Function, *closure.Macro:
		reason = "redefines function"
	}

	msg := reason + " " + label
	if at.Known() {
		msg = at.String() + ": " + msg
	}

	s.log.Warn(reason, slog.String("name", name), slog.String("at", at.String()))

	if s.warn != nil {
		s.warn(msg)
	}
}

func (s *state) defn(l *ast.List, scope *env.T) (cell.I, error) {
	if len(l.Items) < 3 { //nolint:gomnd
		return nil, syntax(l, "defn needs a name, parameters and a body")
	}

	name, ok := l.Items[1].(*ast.Sym)
	if !ok {
		return nil, syntax(l.Items[1], "defn needs a name")
	}

	c, err := s.closure(name.Name, l.Items[2], l.Items[3:], scope, l.Loc)
	if err != nil {
		return nil, err
	}

	f := (*closure.Function)(c)
	s.define(name.Name, f, scope, l.Loc)

	return f, nil
}

func (s *state) closure(
	label string, params ast.Expr, body []ast.Expr, scope *env.T, at loc.T,
) (*closure.Closure, error) {
	p, err := s.params(params)
	if err != nil {
		return nil, err
	}

	return &closure.Closure{Body: body, Env: scope, Label: label, Loc: at, Params: p}, nil
}

// fn creates a function. A name, if given, is bound in the function's own
// environment so the function can call itself.
func (s *state) fn(l *ast.List, scope *env.T) (cell.I, error) {
	items := l.Items[1:]

	name := ""
	if len(items) > 0 {
		if sym, ok := items[0].(*ast.Sym); ok {
			name, items = sym.Name, items[1:]
		}
	}

	if len(items) == 0 {
		return nil, syntax(l, "fn needs parameters")
	}

	captured := scope
	if name != "" {
		captured = env.New(scope)
	}

	c, err := s.closure(name, items[0], items[1:], captured, l.Loc)
	if err != nil {
		return nil, err
	}

	f := (*closure.Function)(c)
	if name != "" {
		captured.Define(name, f)
	}

	return f, nil
}

// iterate evaluates a loop form. Each iteration binds the loop patterns in
// a new environment and evaluates the body as the tail of a loop body.
func (s *state) iterate(l *ast.List, scope *env.T) (cell.I, error) {
	if len(l.Items) < 2 { //nolint:gomnd
		return nil, syntax(l, "loop needs a binding vector")
	}

	bs, err := s.bindings("loop", l.Items[1])
	if err != nil {
		return nil, err
	}

	local, err := s.sequential(bs, scope)
	if err != nil {
		return nil, err
	}

	inner := *s
	inner.loop = true

	for {
		v, err := inner.body(l.Items[2:], local, true)
		if err != nil {
			return nil, err
		}

		r, ok := v.(*recurPoint)
		if !ok {
			return v, nil
		}

		if len(r.args) != len(bs) {
			return nil, fault.Arity("recur", validate.Count(len(bs), "argument", "s"), len(r.args))
		}

		if err := s.ctx.Err(); err != nil {
			return nil, err
		}

		local = env.New(scope)
		tr := s.Transformer(local)

		for i, b := range bs {
			if err := bindTo(tr, local, b.pattern, r.args[i], "loop"); err != nil {
				return nil, err
			}
		}
	}
}

func (s *state) let(l *ast.List, scope *env.T, tail bool) (cell.I, error) {
	if len(l.Items) < 2 { //nolint:gomnd
		return nil, syntax(l, "let needs a binding vector")
	}

	bs, err := s.bindings("let", l.Items[1])
	if err != nil {
		return nil, err
	}

	local, err := s.sequential(bs, scope)
	if err != nil {
		return nil, err
	}

	return s.body(l.Items[2:], local, tail)
}

func (s *state) or(es []ast.Expr, scope *env.T) (cell.I, error) {
	var v cell.I = null.Nil

	for _, e := range es {
		var err error

		v, err = s.eval(e, scope, false)
		if err != nil || truth.Value(v) {
			return v, err
		}
	}

	return v, nil
}

func (s *state) params(e ast.Expr) (*match.Vector, error) {
	if v, ok := s.patterns.Load(e); ok {
		return v.(*match.Vector), nil
	}

	v, ok := e.(*ast.Vec)
	if !ok {
		return nil, syntax(e, "parameters must be a vector")
	}

	p, err := match.CompileVector(v.Items)
	if err != nil {
		return nil, err
	}

	s.patterns.Store(e, p)

	return p, nil
}

func (s *state) quote(head string, l *ast.List, scope *env.T) (cell.I, error) {
	if len(l.Items) != 2 { //nolint:gomnd
		return nil, syntax(l, head+" needs exactly one form")
	}

	if head == "quote" {
		return ast.ToValue(l.Items[1]), nil
	}

	return macro.Quasiquote(s, s.counter, l.Items[1], scope)
}

func (s *state) recur(l *ast.List, scope *env.T, tail bool) (cell.I, error) {
	if !s.loop || !tail {
		return nil, syntax(l, "recur must be in tail position in a loop")
	}

	args, err := s.each(l.Items[1:], scope)
	if err != nil {
		return nil, err
	}

	return &recurPoint{args: args}, nil
}

// scoped evaluates a scope-go form. The task is recorded against the scope
// but stopping it is left to the task.
func (s *state) scoped(l *ast.List, sc *env.T) (cell.I, error) {
	if len(l.Items) < 2 { //nolint:gomnd
		return nil, syntax(l, "scope-go needs a scope")
	}

	v, err := s.eval(l.Items[1], sc, false)
	if err != nil {
		return nil, err
	}

	if !scope.Is(v) {
		return nil, fault.Type("scope-go", "scope", v)
	}

	scope.To(v).Spawned()

	return s.spawn(l.Items[2:], sc), nil
}

// sequential binds each pattern in turn in a new environment. Each
// initializer sees the bindings before it.
func (s *state) sequential(bs []binding, scope *env.T) (*env.T, error) {
	local := env.New(scope)
	tr := s.Transformer(local)

	for _, b := range bs {
		v, err := s.eval(b.init, local, false)
		if err != nil {
			return nil, err
		}

		if err := bindTo(tr, local, b.pattern, v, "let"); err != nil {
			return nil, fault.At(err, b.init.Where())
		}
	}

	return local, nil
}

// spawn starts a task evaluating body in scope. The task shares scope
// with the code that started it but not its cancellation: a task outlives
// the evaluation that started it.
func (s *state) spawn(body []ast.Expr, scope *env.T) *promise.T {
	task := s.detached()

	return s.tasks.Spawn(func() (cell.I, error) {
		v, err := task.body(body, scope, false)

		return task.unwind(v, err)
	})
}

func (s *state) try(body []ast.Expr, scope *env.T) (cell.I, error) {
	v, err := s.body(body, scope, false)
	if err != nil {
		return errmap.From(err), nil
	}

	return v, nil
}

func bindTo(tr match.Context, local *env.T, p match.P, v cell.I, form string) error {
	var b match.Bindings

	ok, err := p.Match(tr, v, &b)
	if err != nil {
		return err
	}

	if !ok {
		return fault.New(fault.KindMatch, "%s pattern does not match %s value", form, describe(v))
	}

	for _, v := range b {
		local.Define(v.Name, v.Value)
	}

	return nil
}

func describe(v cell.I) string {
	if v == nil {
		return "nil"
	}

	return v.Name()
}

func isKeyword(e ast.Expr, name string) bool {
	l, ok := e.(*ast.Lit)

	return ok && kw.Named(l.Value, name)
}

func isSym(e ast.Expr, name string) bool {
	s, ok := e.(*ast.Sym)

	return ok && s.Name == name
}
