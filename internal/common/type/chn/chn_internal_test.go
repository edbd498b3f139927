// Released under an MIT license. See LICENSE.

package chn

import (
	"context"
	"testing"
	"time"

	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
)

func TestWriteRead(t *testing.T) {
	p := New(1)

	sent := str.New("hello")

	if err := p.Send(context.Background(), sent); err != nil {
		t.Fatal(err)
	}

	received, s, err := p.Recv(context.Background(), -1)
	if err != nil || s != Received {
		t.Fatalf("unexpected status %d (%v)", s, err)
	}

	if !received.Equal(sent) {
		t.Fail()
	}
}

func TestSingleProducerOrder(t *testing.T) {
	p := New(0)
	ctx := context.Background()

	go func() {
		for i := int64(1); i <= 3; i++ {
			_ = p.Send(ctx, num.NewInt(i))
		}
	}()

	for i := int64(1); i <= 3; i++ {
		v, _, _ := p.Recv(ctx, -1)
		if num.ToInt(v) != i {
			t.Fatalf("expected %d, got %d", i, num.ToInt(v))
		}
	}
}

func TestCloseDrains(t *testing.T) {
	p := New(0)
	ctx := context.Background()

	_ = p.Send(ctx, num.NewInt(1))
	p.Close()

	if err := p.Send(ctx, num.NewInt(2)); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}

	if _, s := p.TryRecv(); s != Received {
		t.Fatalf("expected buffered value, got status %d", s)
	}

	if _, s := p.TryRecv(); s != Closed {
		t.Fatalf("expected closed, got status %d", s)
	}
}

func TestRecvTimeout(t *testing.T) {
	p := New(0)

	start := time.Now()

	_, s, err := p.Recv(context.Background(), 30*time.Millisecond)
	if err != nil || s != TimedOut {
		t.Fatalf("expected timeout, got %d (%v)", s, err)
	}

	if time.Since(start) < 30*time.Millisecond {
		t.Fatal("returned before the timeout elapsed")
	}
}

func TestBoundedSendBlocks(t *testing.T) {
	p := New(1)
	ctx := context.Background()

	_ = p.Send(ctx, num.NewInt(1))

	done := make(chan struct{})

	go func() {
		_ = p.Send(ctx, num.NewInt(2))
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("send on a full channel did not block")
	case <-time.After(20 * time.Millisecond):
	}

	if _, s := p.TryRecv(); s != Received {
		t.Fatal("expected a value")
	}

	<-done
}

func TestTryRecvEmpty(t *testing.T) {
	if _, s := New(0).TryRecv(); s != Empty {
		t.Fatalf("expected empty, got %d", s)
	}
}
