// Released under an MIT license. See LICENSE.

package task

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/errmap"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/promise"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

func promises(c cell.I) []*promise.T {
	items := validate.Seq(c)
	ps := make([]*promise.T, len(items))

	for i, v := range items {
		ps[i] = toPromise(v)
	}

	return ps
}

// all settles with a vector of results, in input order, once every promise
// resolves. It fails with the first failure observed.
func (t *task) all(c native.Caller, args []cell.I) (cell.I, error) {
	ps := promises(args[0])
	root := c.Background().Context()

	return t.Spawn(func() (cell.I, error) {
		g, ctx := errgroup.WithContext(root)
		out := make([]cell.I, len(ps))

		for i, p := range ps {
			g.Go(func() error {
				v, err := p.AwaitContext(ctx)
				out[i] = v

				return err
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		return vec.New(out...), nil
	}), nil
}

// catch calls f with the error, as a structured error value, if p fails.
// If p resolves the new promise resolves with the same value.
func (t *task) catch(c native.Caller, args []cell.I) (cell.I, error) {
	p, f := toPromise(args[0]), args[1]
	bg := c.Background()

	return t.continuation(bg.Context(), p, func(v cell.I, err error) (cell.I, error) {
		if err == nil {
			return v, nil
		}

		return bg.Call(f, errmap.From(err))
	}), nil
}

func (t *task) continuation(
	ctx context.Context, p *promise.T, next func(cell.I, error) (cell.I, error),
) *promise.T {
	return t.Spawn(func() (cell.I, error) {
		v, err := p.AwaitContext(ctx)
		if ctx.Err() != nil {
			return nil, err
		}

		return next(v, err)
	})
}

// race settles with the outcome of the first promise to settle. The tasks
// behind the other promises keep running.
func (t *task) race(_ native.Caller, args []cell.I) (cell.I, error) {
	ps := promises(args[0])
	if len(ps) == 0 {
		return nil, fault.New(fault.KindRuntime, "race needs at least one promise")
	}

	out := promise.New()

	for _, p := range ps {
		go func() {
			select {
			case <-p.Done():
				out.Settle(p.Await())
			case <-out.Done():
			}
		}()
	}

	return out, nil
}

// then calls f with the value of p if p resolves. If p fails the new
// promise fails with the same error.
func (t *task) then(c native.Caller, args []cell.I) (cell.I, error) {
	p, f := toPromise(args[0]), args[1]
	bg := c.Background()

	return t.continuation(bg.Context(), p, func(v cell.I, err error) (cell.I, error) {
		if err != nil {
			return nil, err
		}

		return bg.Call(f, v)
	}), nil
}
