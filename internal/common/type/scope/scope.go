// Released under an MIT license. See LICENSE.

// Package scope provides ply's cancellation token type.
package scope

import (
	"context"
	"sync/atomic"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

const name = "scope"

// T (scope) is a structured-concurrency cancellation token. Cancellation
// is cooperative: tasks observe it by checking Cancelled.
type T struct {
	ctx    context.Context
	cancel context.CancelFunc
	tasks  atomic.Int64
}

type scope = T

// New creates a scope that is cancelled when parent is done.
func New(parent context.Context) *T {
	ctx, cancel := context.WithCancel(parent)

	return &scope{ctx: ctx, cancel: cancel}
}

// Cancel flips the token. It is safe to call more than once.
func (s *scope) Cancel() {
	s.cancel()
}

// Cancelled returns true once Cancel has been called.
func (s *scope) Cancelled() bool {
	return s.ctx.Err() != nil
}

// Context returns the context underlying s.
func (s *scope) Context() context.Context {
	return s.ctx
}

// Equal returns true if c is the same scope.
func (s *scope) Equal(c cell.I) bool {
	o, ok := c.(*scope)

	return ok && o == s
}

// Name returns the name of the scope type.
func (*scope) Name() string {
	return name
}

// Spawned records that a task was started in s and returns the number of
// tasks started so far.
func (s *scope) Spawned() int64 {
	return s.tasks.Add(1)
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*scope)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*scope); ok {
		return t
	}

	panic("not a " + name)
}
