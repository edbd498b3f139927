// Released under an MIT license. See LICENSE.

// Package task provides ply's concurrency runtime: tasks and promises,
// channels, cancellation scopes, and the worker pool behind the parallel
// collection operators.
//
// Every task is a goroutine. Cancellation is cooperative. The runtime never
// stops a task; a task stops when its body notices, via cancelled?, that
// its scope has been cancelled.
package task

import (
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/promise"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

// T (task) is the runtime shared by every task started by one interpreter.
type T struct {
	log     *slog.Logger
	started atomic.Int64
	workers int
}

type task = T

// New creates a runtime whose parallel operators use workers goroutines.
// Zero or fewer workers means one per CPU.
func New(log *slog.Logger, workers int) *T {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if log == nil {
		log = slog.Default()
	}

	return &task{log: log, workers: workers}
}

// Register adds the concurrency natives to r.
func (t *task) Register(r *native.Registry) {
	// Layer 1: tasks and channels.
	r.Plain("chan", 0, 1, makeChan)
	r.Plain("close!", 1, 1, closeChan)
	r.Aware("recv!", 1, 2, recv)
	r.Aware("select!", 0, -1, selectClause)
	r.Aware("send!", 2, 2, send)
	r.Aware("sleep", 1, 1, sleep)
	r.Plain("try-recv!", 1, 1, tryRecv)

	// Structured concurrency.
	r.Plain("cancel!", 1, 1, cancel)
	r.Plain("cancelled?", 1, 1, cancelled)
	r.Aware("make-scope", 0, 0, makeScope)
	r.Aware("with-scope", 1, 1, withScope)

	// Layer 2: data parallelism.
	r.Aware("parallel-do", 0, -1, t.parallelDo)
	r.Aware("pfilter", 2, 2, t.pfilter)
	r.Aware("pmap", 2, 2, t.pmap)
	r.Aware("preduce", 3, 3, t.preduce)

	// Layer 3: promises.
	r.Aware("all", 1, 1, t.all)
	r.Aware("await", 1, 1, await)
	r.Aware("catch", 2, 2, t.catch)
	r.Aware("race", 1, 1, t.race)
	r.Aware("then", 2, 2, t.then)
}

// Spawn runs body in a new task and returns the promise it will settle.
func (t *task) Spawn(body func() (cell.I, error)) *promise.T {
	p := promise.New()
	id := t.started.Add(1)

	go func() {
		var (
			v   cell.I
			err error
		)

		defer func() {
			if r := recover(); r != nil {
				v, err = nil, fault.New(fault.KindRuntime, "task panicked: %v", r)
			}

			if err != nil {
				t.log.Debug("task failed", slog.Int64("task", id), slog.String("error", err.Error()))
			}

			p.Settle(v, err)
		}()

		v, err = body()
	}()

	return p
}

// Workers returns the size of the worker pool.
func await(c native.Caller, args []cell.I) (cell.I, error) {
	return toPromise(args[0]).AwaitContext(c.Context())
}

func toPromise(c cell.I) *promise.T {
	validate.Expect(promise.Is(c), "promise", c)

	return promise.To(c)
}
