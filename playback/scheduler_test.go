package playback

import (
	"context"
	"sync"
	"testing"
	"time"

	"badc0de.net/pkg/go-sprited/ttesting"
)

func TestTickerSchedulerFiresUnderLock(t *testing.T) {
	var mu sync.Mutex
	s := NewTickerScheduler(time.Millisecond, &mu)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	fired := make(chan time.Duration, 1)
	mu.Lock()
	s.RequestFrame(func(now time.Duration) {
		// TryLock fails while fire holds the lock.
		if mu.TryLock() {
			mu.Unlock()
			t.Errorf("callback ran without the lock held")
		}
		fired <- now
	})
	mu.Unlock()

	select {
	case now := <-fired:
		if now <= 0 {
			t.Errorf("got now %v; want positive elapsed time", now)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("callback never fired")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestTickerSchedulerDrivesController(t *testing.T) {
	var mu sync.Mutex
	s := NewTickerScheduler(time.Millisecond, &mu)
	cnt := fixedCount(2)
	c := New(&cnt, s)

	advanced := make(chan int, 16)
	c.OnRedraw(func(index int) {
		if index == 1 {
			select {
			case advanced <- index:
			default:
			}
		}
	})
	if err := c.SetFrameRate(200); err != nil {
		t.Fatalf("failed to set frame rate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	mu.Lock()
	c.Play()
	mu.Unlock()

	select {
	case <-advanced:
	case <-time.After(5 * time.Second):
		t.Fatalf("preview index never advanced")
	}

	mu.Lock()
	c.Stop()
	idx := c.PreviewIndex()
	mu.Unlock()
	ttesting.AssertInRangeInt(t, "preview index after stop", idx, 0, 1)
}

func TestManualSchedulerDefersNestedRequests(t *testing.T) {
	s := &ManualScheduler{}
	calls := 0
	var cb func(time.Duration)
	cb = func(time.Duration) {
		calls++
		s.RequestFrame(cb)
	}
	s.RequestFrame(cb)
	s.Fire(time.Second)
	if calls != 1 {
		t.Errorf("got %d calls; want 1", calls)
	}
	if s.Now() != time.Second {
		t.Errorf("got now %v; want 1s", s.Now())
	}
	s.Step(time.Second)
	if calls != 2 || s.Now() != 2*time.Second {
		t.Errorf("after step: got %d calls at %v; want 2 at 2s", calls, s.Now())
	}
}
