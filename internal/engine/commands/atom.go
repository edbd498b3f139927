// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/atom"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/promise"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

func atoms(r *native.Registry) {
	r.Plain("atom", 1, 1, func(args []cell.I) (cell.I, error) {
		return atom.New(args[0]), nil
	})
	r.Aware("deref", 1, 1, deref)
	r.Plain("reset!", 2, 2, func(args []cell.I) (cell.I, error) {
		return toAtom(args[0]).Reset(args[1]), nil
	})
	r.Aware("swap!", 2, -1, swap)
}

// deref returns the value of an atom or, after waiting for it to settle,
// a promise. A failed promise raises its error.
func deref(c native.Caller, args []cell.I) (cell.I, error) {
	if promise.Is(args[0]) {
		return promise.To(args[0]).AwaitContext(c.Context())
	}

	return toAtom(args[0]).Deref(), nil
}

// swap! replaces the value of an atom with (f value args...). Concurrent
// swaps are serialized so no update is lost.
func swap(c native.Caller, args []cell.I) (cell.I, error) {
	a, f, extra := toAtom(args[0]), args[1], args[2:]

	return a.Swap(func(old cell.I) (cell.I, error) {
		return c.Call(f, append([]cell.I{old}, extra...)...)
	})
}

func toAtom(c cell.I) *atom.T {
	validate.Expect(atom.Is(c), "atom", c)

	return atom.To(c)
}
