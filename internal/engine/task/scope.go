// Released under an MIT license. See LICENSE.

package task

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/scope"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

func cancel(args []cell.I) (cell.I, error) {
	toScope(args[0]).Cancel()

	return null.Nil, nil
}

func cancelled(args []cell.I) (cell.I, error) {
	return boolean.Bool(toScope(args[0]).Cancelled()), nil
}

// A scope made with make-scope lives until it is cancelled explicitly.
func makeScope(c native.Caller, _ []cell.I) (cell.I, error) {
	return scope.New(c.Background().Context()), nil
}

func toScope(c cell.I) *scope.T {
	validate.Expect(scope.Is(c), "scope", c)

	return scope.To(c)
}

// with-scope calls f with a new scope and cancels the scope when f returns,
// however it returns. Tasks started in the scope may still be running.
func withScope(c native.Caller, args []cell.I) (cell.I, error) {
	s := scope.New(c.Context())
	defer s.Cancel()

	return c.Call(args[0], s)
}
