package camsim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// nullFactory returns an empty payload at negligible cost.
type nullFactory struct{}

func (nullFactory) Generate(width, height int) []byte { return nil }

func TestProducerPacing(t *testing.T) {
	q := NewFrameQueue(1000)
	p := &producer{
		queue:    q,
		factory:  nullFactory{},
		fps:      50,
		duration: 400 * time.Millisecond,
		width:    4,
		height:   4,
	}

	p.run(context.Background())

	// 50 fps over 400ms targets 20 frames. Allow slack for scheduler
	// jitter, but a busy loop (hundreds) or a stall (a handful) fails.
	s := p.stats.snapshot()
	assert.True(t, s.Generated >= 12 && s.Generated <= 28,
		"generated %d frames, want about 20", s.Generated)
	assert.Equal(t, s.Generated, uint64(q.Len()), "every generated frame was pushed")
	assert.Equal(t, uint64(0), s.Dropped)

	// Pushed in sequence order, starting at 0.
	for want := uint64(0); ; want++ {
		f, ok := q.Pop()
		if !ok {
			break
		}
		assert.Equal(t, want, f.Seq)
	}

	// The producer announced completion on exit.
	assert.Equal(t, Drained, q.Wait())
}

func TestProducerCancellation(t *testing.T) {
	q := NewFrameQueue(1000)
	p := &producer{
		queue:    q,
		factory:  nullFactory{},
		fps:      20,
		duration: time.Hour,
		width:    4,
		height:   4,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer did not stop after cancellation")
	}

	// Finish is announced even on the cancellation path, so consumers
	// blocked on an empty queue still wake.
	generated := p.stats.snapshot().Generated
	for i := uint64(0); i < generated; i++ {
		q.Pop()
	}
	assert.Equal(t, Drained, q.Wait())
}

func TestProducerCountsDrops(t *testing.T) {
	q := NewFrameQueue(2)
	p := &producer{
		queue:    q,
		factory:  nullFactory{},
		fps:      200,
		duration: 100 * time.Millisecond,
		width:    4,
		height:   4,
	}

	// No consumer drains, so all but the last two frames are shed.
	p.run(context.Background())

	s := p.stats.snapshot()
	if s.Generated < 3 {
		t.Fatalf("generated only %d frames, cannot exercise overflow", s.Generated)
	}
	assert.Equal(t, s.Generated-2, s.Dropped)
	assert.Equal(t, 2, q.Len())
}
