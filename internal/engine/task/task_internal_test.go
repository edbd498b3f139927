// Released under an MIT license. See LICENSE.

package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/chn"
	"github.com/michaelmacinnis/ply/internal/common/type/errmap"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/promise"
	"github.com/michaelmacinnis/ply/internal/common/type/scope"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
)

type caller struct {
	ctx context.Context
}

func (c caller) Background() native.Caller {
	return caller{ctx: context.WithoutCancel(c.ctx)}
}

func (c caller) Call(fn cell.I, args ...cell.I) (cell.I, error) {
	return native.To(fn).Apply(c, args)
}

func (c caller) Context() context.Context {
	return c.ctx
}

func fn(f func(args []cell.I) (cell.I, error)) cell.I {
	return native.Plain("f", 0, -1, f)
}

func ints(ns ...int64) []cell.I {
	out := make([]cell.I, len(ns))
	for i, n := range ns {
		out[i] = num.NewInt(n)
	}

	return out
}

func setup(t *testing.T) (*T, caller) {
	t.Helper()

	return New(nil, 4), caller{ctx: context.Background()}
}

func TestChannelOrder(t *testing.T) {
	_, c := setup(t)

	ch, _ := makeChan(nil)
	for _, v := range ints(1, 2, 3) {
		if _, err := send(c, []cell.I{ch, v}); err != nil {
			t.Fatal(err)
		}
	}

	closeChan([]cell.I{ch})

	for want := int64(1); want <= 3; want++ {
		v, err := recv(c, []cell.I{ch})
		if err != nil || num.ToInt(v) != want {
			t.Fatalf("expected %d, got %v, %v", want, v, err)
		}
	}

	if v, _ := recv(c, []cell.I{ch}); v != null.Nil {
		t.Fatalf("closed, drained channel should yield nil, got %v", v)
	}

	if _, err := send(c, []cell.I{ch, num.NewInt(4)}); !errors.Is(err, chn.ErrClosed) {
		t.Fatalf("expected send on closed channel to fail, got %v", err)
	}
}

func TestMakeChanRejectsNonPositiveCapacity(t *testing.T) {
	if _, err := makeChan(ints(0)); err == nil {
		t.Fatal("expected an error for capacity 0")
	}
}

func TestRecvTimeout(t *testing.T) {
	_, c := setup(t)

	ch, _ := makeChan(nil)

	v, err := recv(c, []cell.I{ch, num.NewInt(10)})
	if err != nil || v != Timeout {
		t.Fatalf("expected :timeout, got %v, %v", v, err)
	}

	if v, _ := tryRecv([]cell.I{ch}); v != null.Nil {
		t.Fatalf("expected nil, got %v", v)
	}
}

func TestSelectTimeout(t *testing.T) {
	_, c := setup(t)

	ch, _ := makeChan(nil)

	var fired atomic.Int32

	handler := fn(func(_ []cell.I) (cell.I, error) {
		fired.Add(1)

		return num.NewInt(1), nil
	})
	timeout := fn(func(_ []cell.I) (cell.I, error) {
		return num.NewInt(2), nil
	})

	start := time.Now()

	v, err := selectClause(c, []cell.I{
		vec.New(ch, handler),
		vec.New(Timeout, num.NewInt(50), timeout),
	})
	if err != nil || num.ToInt(v) != 2 {
		t.Fatalf("expected timeout handler result, got %v, %v", v, err)
	}

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("select returned after %v", elapsed)
	}

	if fired.Load() != 0 {
		t.Fatal("channel handler should not fire")
	}
}

func TestSelectPicksReadyChannel(t *testing.T) {
	_, c := setup(t)

	a, _ := makeChan(nil)
	b, _ := makeChan(nil)

	which := func(n int64) cell.I {
		return fn(func(args []cell.I) (cell.I, error) {
			return vec.New(num.NewInt(n), args[0]), nil
		})
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = chn.To(b).Send(context.Background(), num.NewInt(42))
	}()

	v, err := selectClause(c, []cell.I{vec.New(a, which(1)), vec.New(b, which(2))})
	if err != nil {
		t.Fatal(err)
	}

	got := vec.To(v).Slice()
	if num.ToInt(got[0]) != 2 || num.ToInt(got[1]) != 42 {
		t.Fatalf("unexpected result %v", v)
	}
}

func TestPmapPreservesOrder(t *testing.T) {
	r, c := setup(t)

	slow := fn(func(args []cell.I) (cell.I, error) {
		n := num.ToInt(args[0])
		time.Sleep(time.Duration(10-n) * time.Millisecond)

		return num.NewInt(n * n), nil
	})

	v, err := r.pmap(c, []cell.I{slow, vec.New(ints(1, 2, 3, 4, 5, 6, 7, 8, 9)...)})
	if err != nil {
		t.Fatal(err)
	}

	for i, e := range vec.To(v).Slice() {
		if n := int64(i + 1); num.ToInt(e) != n*n {
			t.Fatalf("item %d: expected %d, got %v", i, n*n, e)
		}
	}
}

func TestPmapPropagatesError(t *testing.T) {
	r, c := setup(t)

	boom := fn(func(args []cell.I) (cell.I, error) {
		if num.ToInt(args[0]) == 3 {
			return nil, fault.User("boom", nil)
		}

		return args[0], nil
	})

	_, err := r.pmap(c, []cell.I{boom, vec.New(ints(1, 2, 3, 4)...)})
	if err == nil || fault.From(err).Kind != fault.KindUser {
		t.Fatalf("expected user fault, got %v", err)
	}
}

func TestPfilterAndPreduce(t *testing.T) {
	r, c := setup(t)

	even := fn(func(args []cell.I) (cell.I, error) {
		if num.ToInt(args[0])%2 == 0 {
			return num.NewInt(1), nil
		}

		return null.Nil, nil
	})

	v, err := r.pfilter(c, []cell.I{even, vec.New(ints(1, 2, 3, 4, 5, 6)...)})
	if err != nil || vec.To(v).Len() != 3 || num.ToInt(vec.To(v).Slice()[0]) != 2 {
		t.Fatalf("unexpected filter result %v, %v", v, err)
	}

	add := fn(func(args []cell.I) (cell.I, error) {
		return num.NewInt(num.ToInt(args[0]) + num.ToInt(args[1])), nil
	})

	items := make([]cell.I, 100)
	for i := range items {
		items[i] = num.NewInt(int64(i + 1))
	}

	v, err = r.preduce(c, []cell.I{add, num.NewInt(0), vec.New(items...)})
	if err != nil || num.ToInt(v) != 5050 {
		t.Fatalf("expected 5050, got %v, %v", v, err)
	}

	v, err = r.preduce(c, []cell.I{add, num.NewInt(7), vec.New()})
	if err != nil || num.ToInt(v) != 7 {
		t.Fatalf("empty reduce should return the seed, got %v, %v", v, err)
	}
}

func TestParallelDo(t *testing.T) {
	r, c := setup(t)

	thunk := func(n int64) cell.I {
		return fn(func(_ []cell.I) (cell.I, error) {
			return num.NewInt(n), nil
		})
	}

	v, err := r.parallelDo(c, []cell.I{thunk(1), thunk(2)})
	if err != nil || num.ToInt(vec.To(v).Slice()[1]) != 2 {
		t.Fatalf("unexpected result %v, %v", v, err)
	}
}

func TestSpawnRecoversPanic(t *testing.T) {
	r, _ := setup(t)

	p := r.Spawn(func() (cell.I, error) {
		panic("bad")
	})

	if _, err := p.Await(); err == nil {
		t.Fatal("expected panic to reject the promise")
	}
}

func TestPromiseCombinators(t *testing.T) {
	r, c := setup(t)

	value := func(n int64, delay time.Duration) *promise.T {
		return r.Spawn(func() (cell.I, error) {
			time.Sleep(delay)

			return num.NewInt(n), nil
		})
	}

	v, err := r.all(c, []cell.I{vec.New(value(1, 20*time.Millisecond), value(2, 0))})
	if err != nil {
		t.Fatal(err)
	}

	v, err = await(c, []cell.I{v})
	if err != nil || num.ToInt(vec.To(v).Slice()[0]) != 1 {
		t.Fatalf("all should keep input order, got %v, %v", v, err)
	}

	v, _ = r.race(c, []cell.I{vec.New(value(1, 50*time.Millisecond), value(2, 0))})
	if v, err = await(c, []cell.I{v}); err != nil || num.ToInt(v) != 2 {
		t.Fatalf("race should settle with the fastest, got %v, %v", v, err)
	}

	double := fn(func(args []cell.I) (cell.I, error) {
		return num.NewInt(num.ToInt(args[0]) * 2), nil
	})

	v, _ = r.then(c, []cell.I{value(21, 0), double})
	if v, err = await(c, []cell.I{v}); err != nil || num.ToInt(v) != 42 {
		t.Fatalf("then: got %v, %v", v, err)
	}

	failed := r.Spawn(func() (cell.I, error) {
		return nil, fault.User("nope", nil)
	})

	message := fn(func(args []cell.I) (cell.I, error) {
		return args[0], nil
	})

	v, _ = r.then(c, []cell.I{failed, double})
	v, _ = r.catch(c, []cell.I{v, message})

	v, err = await(c, []cell.I{v})
	if err != nil || !errmap.Is(v) || errmap.Message(v) != "nope" {
		t.Fatalf("catch: got %v, %v", v, err)
	}
}

func TestAllPropagatesFailure(t *testing.T) {
	r, c := setup(t)

	ok := r.Spawn(func() (cell.I, error) { return num.NewInt(1), nil })
	bad := r.Spawn(func() (cell.I, error) { return nil, fault.User("bad", nil) })

	v, _ := r.all(c, []cell.I{vec.New(ok, bad)})
	if _, err := await(c, []cell.I{v}); err == nil {
		t.Fatal("expected all to fail")
	}
}

func TestWithScopeCancelsOnExit(t *testing.T) {
	_, c := setup(t)

	var seen *scope.T

	body := native.New("body", 1, 1, func(_ native.Caller, args []cell.I) (cell.I, error) {
		seen = toScope(args[0])

		return nil, fault.User("fail", nil)
	})

	if _, err := withScope(c, []cell.I{body}); err == nil {
		t.Fatal("expected error to propagate")
	}

	if !seen.Cancelled() {
		t.Fatal("scope should be cancelled after with-scope returns")
	}

	s, _ := makeScope(c, nil)
	if v, _ := cancelled([]cell.I{s}); v != boolean.False {
		t.Fatal("new scope should not be cancelled")
	}

	cancel([]cell.I{s})

	if !scope.To(s).Cancelled() {
		t.Fatal("cancel! should flip the token")
	}
}
