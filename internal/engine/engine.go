// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for parsed ply code.
//
// An engine is an interpreter instance. It owns the global environment, the
// native registry, the fresh symbol counter, the module cache and the task
// runtime. Engines share nothing so any number may coexist.
package engine

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
	"github.com/michaelmacinnis/ply/internal/common/type/env"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/engine/boot"
	"github.com/michaelmacinnis/ply/internal/engine/commands"
	"github.com/michaelmacinnis/ply/internal/engine/macro"
	"github.com/michaelmacinnis/ply/internal/engine/task"
	"github.com/michaelmacinnis/ply/internal/reader"
	"github.com/michaelmacinnis/ply/internal/system/modcache"
)

// MaxCallDepth limits nested function applications.
const MaxCallDepth = 10000

// Options configure an engine. The zero value is usable.
type Options struct {
	Logger    *slog.Logger
	MaxDepth  int // Macro expansion depth limit.
	Modules   int // Size of the module cache.
	NoPrelude bool
	Quiet     bool // Suppress redefinition warnings.
	Stdout    io.Writer
	Warn      func(msg string)
	Workers   int
}

// T (engine) is a facade in front of the machinery for evaluating ply code.
type T struct {
	counter   *macro.Counter
	global    *env.T
	log       *slog.Logger
	maxExpand int
	modules   *modcache.T
	natives   *native.Registry
	patterns  *cache
	quiet     bool
	stdout    io.Writer
	tasks     *task.T
	warn      func(msg string)
}

type engine = T

// New creates an engine. Unless told otherwise it evaluates the prelude.
func New(opts Options) (*T, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	depth := opts.MaxDepth
	if depth <= 0 {
		depth = macro.DefaultDepth
	}

	e := &engine{
		counter:   &macro.Counter{},
		global:    env.New(nil),
		log:       log,
		maxExpand: depth,
		modules:   modcache.New(opts.Modules),
		natives:   native.NewRegistry(),
		patterns:  newCache(),
		quiet:     opts.Quiet,
		stdout:    stdout,
		tasks:     task.New(log, opts.Workers),
		warn:      opts.Warn,
	}

	commands.Register(e.natives, e)
	e.tasks.Register(e.natives)

	for _, name := range e.natives.Names() {
		n, _ := e.natives.Lookup(name)
		e.global.Define(name, n)
	}

	if !opts.NoPrelude {
		if _, err := e.EvalString(context.Background(), "boot", boot.Script()); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Eval evaluates e in the global environment. Defers registered at the top
// level run before Eval returns.
func (e *engine) Eval(ctx context.Context, expr ast.Expr) (cell.I, error) {
	s := e.state(ctx)

	v, err := s.eval(expr, e.global, false)

	return s.unwind(v, err)
}

// EvalString reads and evaluates every expression in text and returns the
// value of the last one. Name labels locations in errors.
func (e *engine) EvalString(ctx context.Context, name, text string) (cell.I, error) {
	es, err := reader.Read(name, text)
	if err != nil {
		return nil, err
	}

	return e.evalAll(ctx, es)
}

// Expand expands the macro call v once or, if all is true, completely.
func (e *engine) Expand(ctx context.Context, v cell.I, all bool) (cell.I, error) {
	s := e.state(ctx)
	x := s.expander()
	expr := ast.FromValue(v, loc.T{})

	var err error
	if all {
		expr, err = x.ExpandAll(expr, e.global)
	} else {
		expr, err = x.Expand(expr, e.global)
	}

	if err != nil {
		return nil, err
	}

	return ast.ToValue(expr), nil
}

// Gensym returns a fresh symbol name starting with prefix.
func (e *engine) Gensym(prefix string) string {
	return e.counter.Gensym(prefix)
}

// Global returns the global environment.
func (e *engine) Global() *env.T {
	return e.global
}

// Load evaluates the file at path in the global environment.
func (e *engine) Load(ctx context.Context, path string) (cell.I, error) {
	es, err := e.modules.Load(path, reader.Read)
	if err != nil {
		return nil, err
	}

	return e.evalAll(ctx, es)
}

// Names returns the sorted names of every global binding.
func (e *engine) Names() []string {
	names := e.global.Visible()
	sort.Strings(names)

	return names
}

// Output returns where print and println write.
func (e *engine) Output() io.Writer {
	return e.stdout
}

// Registry returns the native registry.
func (e *engine) Registry() *native.Registry {
	return e.natives
}

// Value evaluates the value v, treated as code, in the global environment.
func (e *engine) Value(ctx context.Context, v cell.I) (cell.I, error) {
	return e.Eval(ctx, ast.FromValue(v, loc.T{}))
}

func (e *engine) evalAll(ctx context.Context, es []ast.Expr) (cell.I, error) {
	var v cell.I = null.Nil

	for _, expr := range es {
		var err error

		v, err = e.Eval(ctx, expr)
		if err != nil {
			return nil, err
		}
	}

	return v, nil
}

func (e *engine) state(ctx context.Context) *state {
	return &state{T: e, ctx: ctx, frame: &frame{}}
}
