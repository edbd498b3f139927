// Released under an MIT license. See LICENSE.

// Package chn provides ply's channel type.
package chn

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

const name = "chan"

// Status describes the outcome of a receive.
type Status int

// Receive outcomes.
const (
	Received Status = iota
	Closed          // The channel is closed and drained.
	Empty           // Nothing was ready (non-blocking receive only).
	TimedOut
)

// ErrClosed is returned when sending on a closed channel.
var ErrClosed = errors.New("send on closed channel")

// T (chn) is a FIFO channel that may be bounded or unbounded and supports
// any number of concurrent producers and consumers.
type T struct {
	sync.Mutex
	buf     *linkedlistqueue.Queue
	cap     int // Zero means unbounded.
	changed chan struct{}
	closed  bool
}

type chn = T

// New creates a channel. A capacity of zero or less creates an unbounded channel.
func New(capacity int) *T {
	if capacity < 0 {
		capacity = 0
	}

	return &chn{
		buf:     linkedlistqueue.New(),
		cap:     capacity,
		changed: make(chan struct{}),
	}
}

// Close stops the channel accepting sends. Buffered values still drain.
func (c *chn) Close() {
	c.Lock()
	defer c.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.notify()
}

// Equal returns true if v is the same channel.
func (c *chn) Equal(v cell.I) bool {
	o, ok := v.(*chn)

	return ok && o == c
}

// Literal returns a description of the channel c.
func (c *chn) Literal() string {
	c.Lock()
	defer c.Unlock()

	s := "#<chan " + strconv.Itoa(c.buf.Size())
	if c.cap > 0 {
		s += "/" + strconv.Itoa(c.cap)
	}

	if c.closed {
		s += " closed"
	}

	return s + ">"
}

// Name returns the name of the chn type.
func (*chn) Name() string {
	return name
}

// Poll receives a value if one is ready. Otherwise it returns a channel
// that is closed the next time the state of c changes.
func (c *chn) Poll() (cell.I, Status, <-chan struct{}) {
	c.Lock()
	defer c.Unlock()

	v, s := c.take()

	return v, s, c.changed
}

// Recv receives a value, blocking until one is available, the channel is
// closed and drained, the timeout elapses, or ctx is done. A negative
// timeout waits forever.
func (c *chn) Recv(ctx context.Context, timeout time.Duration) (cell.I, Status, error) {
	var expired <-chan time.Time

	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()

		expired = t.C
	}

	for {
		v, s, changed := c.Poll()
		if s != Empty {
			return v, s, nil
		}

		select {
		case <-changed:
		case <-expired:
			return nil, TimedOut, nil
		case <-ctx.Done():
			return nil, Empty, ctx.Err()
		}
	}
}

// Send adds v to the channel, blocking while a bounded channel is full.
func (c *chn) Send(ctx context.Context, v cell.I) error {
	for {
		c.Lock()

		if c.closed {
			c.Unlock()

			return ErrClosed
		}

		if c.cap == 0 || c.buf.Size() < c.cap {
			c.buf.Enqueue(v)
			c.notify()
			c.Unlock()

			return nil
		}

		changed := c.changed
		c.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// TryRecv receives a value without blocking.
func (c *chn) TryRecv() (cell.I, Status) {
	c.Lock()
	defer c.Unlock()

	return c.take()
}

func (c *chn) notify() {
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *chn) take() (cell.I, Status) {
	v, ok := c.buf.Dequeue()
	if ok {
		c.notify()

		return v.(cell.I), Received
	}

	if c.closed {
		return nil, Closed
	}

	return nil, Empty
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*chn)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*chn); ok {
		return t
	}

	panic("not a " + name)
}
