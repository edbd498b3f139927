// Released under an MIT license. See LICENSE.

// Package promise provides ply's task handle type.
package promise

import (
	"context"
	"sync"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

const name = "promise"

// T (promise) is the handle for a value computed by a concurrent task.
// It settles exactly once, either with a value or with an error.
type T struct {
	once  sync.Once
	done  chan struct{}
	value cell.I
	err   error
}

type promise = T

// New creates an unsettled promise.
func New() *T {
	return &promise{done: make(chan struct{})}
}

// Await blocks until p settles and returns its value or error.
func (p *promise) Await() (cell.I, error) {
	<-p.done

	return p.value, p.err
}

// AwaitContext is Await but gives up when ctx is done.
func (p *promise) AwaitContext(ctx context.Context) (cell.I, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel that is closed when p settles.
func (p *promise) Done() <-chan struct{} {
	return p.done
}

// Equal returns true if c is the same promise.
func (p *promise) Equal(c cell.I) bool {
	o, ok := c.(*promise)

	return ok && o == p
}

// Literal describes the state of p.
func (p *promise) Literal() string {
	select {
	case <-p.done:
		if p.err != nil {
			return "#<promise failed>"
		}

		return "#<promise resolved>"
	default:
		return "#<promise pending>"
	}
}

// Name returns the name of the promise type.
func (*promise) Name() string {
	return name
}

// Settle resolves p with v or, if err is not nil, rejects it with err.
// Only the first call has any effect.
func (p *promise) Settle(v cell.I, err error) {
	p.once.Do(func() {
		p.value, p.err = v, err
		close(p.done)
	})
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*promise)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*promise); ok {
		return t
	}

	panic("not a " + name)
}
