package scheduler

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mattjoyce/herald/internal/log"
)

func TestMain(m *testing.M) {
	log.Setup("ERROR")
	os.Exit(m.Run())
}

func TestSchedule_FiresOnce(t *testing.T) {
	s := New(5 * time.Millisecond)

	var fired atomic.Int32
	s.Schedule(10*time.Millisecond, func() { fired.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop()

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)

	// Fire-once: it never runs again.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestSchedule_OrderWithinTick(t *testing.T) {
	s := New(5 * time.Millisecond)

	var order []int
	done := make(chan struct{})
	s.Schedule(20*time.Millisecond, func() {
		order = append(order, 2)
		close(done)
	})
	s.Schedule(10*time.Millisecond, func() { order = append(order, 1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callbacks did not fire")
	}

	assert.Equal(t, []int{1, 2}, order)
}

func TestSchedule_PanicDoesNotKillLoop(t *testing.T) {
	s := New(5 * time.Millisecond)

	var fired atomic.Int32
	s.Schedule(5*time.Millisecond, func() { panic("boom") })
	s.Schedule(15*time.Millisecond, func() { fired.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop()

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestStop_DropsPending(t *testing.T) {
	s := New(5 * time.Millisecond)

	var fired atomic.Int32
	s.Schedule(10*time.Second, func() { fired.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	s.Stop()

	assert.Equal(t, int32(0), fired.Load())
}
