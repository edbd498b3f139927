// Released under an MIT license. See LICENSE.

package task

import (
	"reflect"
	"time"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/chn"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

// Timeout is returned by recv! when no value arrives in time.
var Timeout = kw.New("timeout") //nolint:gochecknoglobals

type clause struct {
	ch *chn.T
	fn cell.I
}

func closeChan(args []cell.I) (cell.I, error) {
	toChan(args[0]).Close()

	return null.Nil, nil
}

func makeChan(args []cell.I) (cell.I, error) {
	if len(args) == 0 {
		return chn.New(0), nil
	}

	n := validate.Int(args[0])
	if n < 1 {
		return nil, fault.New(fault.KindRuntime, "capacity must be positive, got %d", n)
	}

	return chn.New(int(n)), nil
}

func millis(c cell.I) time.Duration {
	return time.Duration(validate.Float(c) * float64(time.Millisecond))
}

func recv(c native.Caller, args []cell.I) (cell.I, error) {
	timeout := time.Duration(-1)
	if len(args) > 1 {
		timeout = millis(args[1])
	}

	v, s, err := toChan(args[0]).Recv(c.Context(), timeout)
	if err != nil {
		return nil, err
	}

	switch s {
	case chn.Received:
		return v, nil
	case chn.TimedOut:
		return Timeout, nil
	}

	return null.Nil, nil
}

// select! takes clauses of the form [ch handler] and, optionally, one
// clause of the form [:timeout ms handler]. It blocks until one channel has
// something to receive and calls only that channel's handler with the value
// received. A closed, drained channel is always ready and yields nil.
func selectClause(c native.Caller, args []cell.I) (cell.I, error) {
	var (
		clauses   []clause
		expired   <-chan time.Time
		onTimeout cell.I
	)

	for _, arg := range args {
		items := validate.Seq(arg)

		switch {
		case len(items) == 3 && kw.Named(items[0], "timeout"): //nolint:gomnd
			if expired != nil {
				return nil, fault.New(fault.KindRuntime, "only one timeout clause is allowed")
			}

			t := time.NewTimer(millis(items[1]))
			defer t.Stop()

			expired, onTimeout = t.C, items[2]

		case len(items) == 2: //nolint:gomnd
			clauses = append(clauses, clause{ch: toChan(items[0]), fn: items[1]})

		default:
			return nil, fault.New(fault.KindRuntime, "expected [channel handler] or [:timeout ms handler]")
		}
	}

	ctx := c.Context()

	for {
		cases := make([]reflect.SelectCase, 0, len(clauses)+2) //nolint:gomnd

		for _, cl := range clauses {
			v, s, changed := cl.ch.Poll()

			switch s {
			case chn.Received:
				return c.Call(cl.fn, v)
			case chn.Closed:
				return c.Call(cl.fn, null.Nil)
			}

			cases = append(cases, receive(changed))
		}

		done := len(cases)
		cases = append(cases, receive(ctx.Done()))

		if expired != nil {
			cases = append(cases, receive(expired))
		}

		chosen, _, _ := reflect.Select(cases)

		switch {
		case chosen == done:
			return nil, ctx.Err()
		case chosen > done:
			return c.Call(onTimeout)
		}
	}
}

func receive(ch interface{}) reflect.SelectCase {
	return reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)}
}

func send(c native.Caller, args []cell.I) (cell.I, error) {
	err := toChan(args[0]).Send(c.Context(), args[1])
	if err != nil {
		return nil, err
	}

	return args[1], nil
}

func sleep(c native.Caller, args []cell.I) (cell.I, error) {
	t := time.NewTimer(millis(args[0]))
	defer t.Stop()

	select {
	case <-t.C:
		return null.Nil, nil
	case <-c.Context().Done():
		return nil, c.Context().Err()
	}
}

func toChan(c cell.I) *chn.T {
	validate.Expect(chn.Is(c), "chan", c)

	return chn.To(c)
}

func tryRecv(args []cell.I) (cell.I, error) {
	v, s := toChan(args[0]).TryRecv()
	if s != chn.Received {
		return null.Nil, nil
	}

	return v, nil
}
