// Released under an MIT license. See LICENSE.

package task

import (
	"golang.org/x/sync/errgroup"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/truth"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

// Map applies fn to every item using the worker pool. Results keep the
// order of items regardless of the order in which calls complete. The
// first error wins; items not yet started are skipped.
func (t *task) Map(c native.Caller, fn cell.I, items []cell.I) ([]cell.I, error) {
	return t.collect(c, len(items), func(i int) (cell.I, error) {
		return c.Call(fn, items[i])
	})
}

func (t *task) collect(c native.Caller, n int, f func(i int) (cell.I, error)) ([]cell.I, error) {
	out := make([]cell.I, n)

	err := t.chunks(c, n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			v, err := f(i)
			if err != nil {
				return err
			}

			out[i] = v
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// chunks splits n items into contiguous ranges and runs work on each range
// with at most t.workers ranges in flight.
func (t *task) chunks(c native.Caller, n int, work func(lo, hi int) error) error {
	if n == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(c.Context())
	g.SetLimit(t.workers)

	size := (n + t.workers - 1) / t.workers

	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			return work(lo, hi)
		})
	}

	return g.Wait()
}

func (t *task) parallelDo(c native.Caller, args []cell.I) (cell.I, error) {
	out, err := t.collect(c, len(args), func(i int) (cell.I, error) {
		return c.Call(args[i])
	})
	if err != nil {
		return nil, err
	}

	return vec.New(out...), nil
}

func (t *task) pfilter(c native.Caller, args []cell.I) (cell.I, error) {
	items := elements(args[1])
	keep := make([]bool, len(items))

	err := t.chunks(c, len(items), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			v, err := c.Call(args[0], items[i])
			if err != nil {
				return err
			}

			keep[i] = truth.Value(v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]cell.I, 0, len(items))

	for i, v := range items {
		if keep[i] {
			out = append(out, v)
		}
	}

	return vec.New(out...), nil
}

func (t *task) pmap(c native.Caller, args []cell.I) (cell.I, error) {
	out, err := t.Map(c, args[0], elements(args[1]))
	if err != nil {
		return nil, err
	}

	return vec.New(out...), nil
}

// preduce reduces each chunk starting from init and then combines the
// partial results, again starting from init. The result equals a
// sequential reduce when f is associative and init is its identity.
func (t *task) preduce(c native.Caller, args []cell.I) (cell.I, error) {
	f, init := args[0], args[1]
	items := elements(args[2])

	size := (len(items) + t.workers - 1) / t.workers
	if size == 0 {
		return init, nil
	}

	partials := make([]cell.I, (len(items)+size-1)/size)

	err := t.chunks(c, len(items), func(lo, hi int) error {
		acc := init

		for i := lo; i < hi; i++ {
			v, err := c.Call(f, acc, items[i])
			if err != nil {
				return err
			}

			acc = v
		}

		partials[lo/size] = acc

		return nil
	})
	if err != nil {
		return nil, err
	}

	acc := init

	for _, p := range partials {
		v, err := c.Call(f, acc, p)
		if err != nil {
			return nil, err
		}

		acc = v
	}

	return acc, nil
}

// elements returns the items of a collection. A map yields its entries as
// [key value] vectors, as it does when piped with ||>.
func elements(c cell.I) []cell.I {
	return validate.Items(c, func(k, v cell.I) cell.I {
		return vec.New(k, v)
	})
}
