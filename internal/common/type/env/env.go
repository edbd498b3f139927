// Released under an MIT license. See LICENSE.

// Package env provides ply's environment type.
package env

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/struct/hash"
)

const name = "environment"

// T (env) maps names to values and defers to the enclosing env for names
// it does not bind. The enclosing env is fixed when an env is created, so
// the chain is always acyclic. An env may be shared by many closures and
// tasks; each frame guards its own bindings with a readers/writer lock.
type T struct {
	previous *T
	*bindings
}

type env = T

// We alias hash.T to bindings so that when embedded it is easy to refer to
// it by name. Embedding bindings also lets us access its methods directly.
type bindings = hash.T

// New creates a new env enclosed by previous.
func New(previous *T) *T {
	return &env{
		previous: previous,
		bindings: hash.New(),
	}
}

// Define associates the name k with the cell v in the env e.
func (e *env) Define(k string, v cell.I) {
	e.Set(k, v)
}

// Equal returns true if c is the same env as e.
func (e *env) Equal(c cell.I) bool {
	o, ok := c.(*env)

	return ok && o == e
}

// Global returns the outermost env in the chain that starts at e.
func (e *env) Global() *T {
	for e.previous != nil {
		e = e.previous
	}

	return e
}

// Lookup retrieves the value associated with the name k in the env e or
// any env enclosing it.
func (e *env) Lookup(k string) (cell.I, bool) {
	for ; e != nil; e = e.previous {
		if v, ok := e.Get(k); ok {
			return v, true
		}
	}

	return nil, false
}

// Name returns the type name for the env e.
func (e *env) Name() string {
	return name
}

// Visible returns every name visible from e. Shadowed names appear once.
func (e *env) Visible() []string {
	seen := map[string]bool{}
	names := []string{}

	for ; e != nil; e = e.previous {
		for _, k := range e.Names() {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}

	return names
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t env

	// The env type is a cell.
	_ = cell.I(&t)
}
