// Released under an MIT license. See LICENSE.

// Package native provides ply's native function type and the registry
// through which the standard library is installed.
package native

import (
	"context"
	"sort"
	"sync"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

const name = "native"

// Caller is the callback handed to evaluator-aware natives. It lets them
// invoke ply functions without knowing how the evaluator works.
type Caller interface {
	Background() Caller
	Call(fn cell.I, args ...cell.I) (cell.I, error)
	Context() context.Context
}

// Func is an evaluator-aware native.
type Func func(c Caller, args []cell.I) (cell.I, error)

// Simple is a native that only needs its evaluated arguments.
type Simple func(args []cell.I) (cell.I, error)

// T (native) is a function implemented in Go.
type T struct {
	name  string
	min   int
	max   int // Negative for variadic natives.
	fn    Func
}

type native = T

// New creates an evaluator-aware native named n accepting between min and
// max arguments.
func New(n string, min, max int, fn Func) *T {
	return &native{name: n, min: min, max: max, fn: fn}
}

// Plain creates a native that does not call back into the evaluator.
func Plain(n string, min, max int, fn Simple) *T {
	return &native{
		name: n,
		min:  min,
		max:  max,
		fn: func(_ Caller, args []cell.I) (cell.I, error) {
			return fn(args)
		},
	}
}

// Apply checks the arguments against the native's arity and invokes it.
// Type mismatches raised while it runs become faults naming the native.
func (n *native) Apply(c Caller, args []cell.I) (v cell.I, err error) {
	err = validate.Arity(n.name, len(args), n.min, n.max)
	if err != nil {
		return nil, err
	}

	defer validate.Recover(n.name, &err)

	v, err = n.fn(c, args)

	return v, fault.In(err, n.name)
}

// Equal returns true if c is the same native.
func (n *native) Equal(c cell.I) bool {
	o, ok := c.(*native)

	return ok && o == n
}

// Label returns the name the native was registered under.
func (n *native) Label() string {
	return n.name
}

// Literal returns the literal representation of the native n.
func (n *native) Literal() string {
	return "#<native " + n.name + ">"
}

// Name returns the name of the native type.
func (*native) Name() string {
	return name
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*native)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*native); ok {
		return t
	}

	panic("not a " + name)
}

// Registry maps unique, possibly namespaced, names to natives.
type Registry struct {
	sync.RWMutex
	entries map[string]*T
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]*T{}}
}

// Add registers n. Names are unique; registering a name twice panics.
func (r *Registry) Add(n *T) *T {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.entries[n.name]; ok {
		panic("native " + n.name + " registered twice")
	}

	r.entries[n.name] = n

	return n
}

// Aware registers an evaluator-aware native.
func (r *Registry) Aware(n string, min, max int, fn Func) *T {
	return r.Add(New(n, min, max, fn))
}

// Lookup returns the native registered as n.
func (r *Registry) Lookup(n string) (*T, bool) {
	r.RLock()
	defer r.RUnlock()

	t, ok := r.entries[n]

	return t, ok
}

// Names returns the sorted names of every registered native.
func (r *Registry) Names() []string {
	r.RLock()
	defer r.RUnlock()

	names := make([]string, 0, len(r.entries))
	for k := range r.entries {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// Plain registers a native that does not call back into the evaluator.
func (r *Registry) Plain(n string, min, max int, fn Simple) *T {
	return r.Add(Plain(n, min, max, fn))
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t native

	// The native type is a cell.
	_ = cell.I(&t)
}
