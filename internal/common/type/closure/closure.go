// Released under an MIT license. See LICENSE.

// Package closure provides ply's user-defined function and macro types.
package closure

import (
	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
	"github.com/michaelmacinnis/ply/internal/common/type/env"
	"github.com/michaelmacinnis/ply/internal/engine/match"
)

// Closure underlies the function and macro types.
type Closure struct {
	Body   []ast.Expr    // Body of the routine.
	Env    *env.T        // Env where the routine was created.
	Label  string        // Name, if any, for messages.
	Loc    loc.T         // Where the routine was created.
	Params *match.Vector // Parameters, as a pattern.
}

// Function is ply's arguments-evaluated closure type.
type Function Closure

// Macro is ply's arguments-not-evaluated closure type.
type Macro Closure

// The function type is a cell.

// Equal returns true if the cell c is the same function as f.
func (f *Function) Equal(c cell.I) bool {
	p, ok := c.(*Function)

	return ok && p == f
}

// Literal returns the literal representation of the function f.
func (f *Function) Literal() string {
	return literal("fn", f.Label)
}

// Name returns the name of the function type.
func (*Function) Name() string {
	return "fn"
}

// Methods specific to function.

// Closure returns the function f's underlying closure.
func (f *Function) Closure() *Closure {
	return (*Closure)(f)
}

// The macro type is a cell.

// Equal returns true if the cell c is the same macro as m.
func (m *Macro) Equal(c cell.I) bool {
	p, ok := c.(*Macro)

	return ok && p == m
}

// Literal returns the literal representation of the macro m.
func (m *Macro) Literal() string {
	return literal("macro", m.Label)
}

// Name returns the name of the macro type.
func (*Macro) Name() string {
	return "macro"
}

// Methods specific to macro.

// Closure returns the macro m's underlying closure.
func (m *Macro) Closure() *Closure {
	return (*Closure)(m)
}

// Is returns true if c is a *Function.
func Is(c cell.I) bool {
	_, ok := c.(*Function)

	return ok
}

// IsMacro returns true if c is a *Macro.
func IsMacro(c cell.I) bool {
	_, ok := c.(*Macro)

	return ok
}

func literal(kind, label string) string {
	if label == "" {
		return "#<" + kind + ">"
	}

	return "#<" + kind + " " + label + ">"
}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	var f Function
	var m Macro

	// The function and macro types are cells.
	_ = cell.I(&f)
	_ = cell.I(&m)
}
