package playback

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// ManualScheduler keeps requested callbacks until Fire is called. It drives
// the controller from tests and from scripted, non-interactive hosts.
type ManualScheduler struct {
	now     time.Duration
	pending []func(time.Duration)
}

func (s *ManualScheduler) RequestFrame(cb func(now time.Duration)) {
	s.pending = append(s.pending, cb)
}

func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of callbacks waiting for Fire.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// Fire sets the scheduler's clock to now and runs the callbacks requested
// so far. Callbacks requested while firing wait for the next Fire.
func (s *ManualScheduler) Fire(now time.Duration) {
	s.now = now
	cbs := s.pending
	s.pending = nil
	for _, cb := range cbs {
		cb(now)
	}
}

// Step advances the scheduler's clock by delta and fires.
func (s *ManualScheduler) Step(delta time.Duration) {
	s.Fire(s.now + delta)
}

// DefaultTickInterval approximates a 60 Hz display refresh.
const DefaultTickInterval = time.Second / 60

// TickerScheduler fires requested callbacks on a time.Ticker. It passes
// real elapsed time since the scheduler was created.
//
// Callbacks run while holding the Locker passed to NewTickerScheduler; the
// same lock must be held when calling RequestFrame (directly or through a
// Controller), so that ticks and other events never overlap.
type TickerScheduler struct {
	interval time.Duration
	mu       sync.Locker
	start    time.Time
	pending  []func(time.Duration)
}

// NewTickerScheduler creates a scheduler ticking every interval. Ticks are
// only delivered while Run is running.
func NewTickerScheduler(interval time.Duration, mu sync.Locker) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickerScheduler{
		interval: interval,
		mu:       mu,
		start:    time.Now(),
	}
}

func (s *TickerScheduler) RequestFrame(cb func(now time.Duration)) {
	s.pending = append(s.pending, cb)
}

func (s *TickerScheduler) Now() time.Duration {
	return time.Since(s.start)
}

// Run delivers ticks until ctx is done.
func (s *TickerScheduler) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	glog.Infof("playback: ticker scheduler running every %v", s.interval)
	for {
		select {
		case <-ctx.Done():
			glog.Infof("playback: ticker scheduler stopping: %v", ctx.Err())
			return nil
		case <-t.C:
			s.fire()
		}
	}
}

func (s *TickerScheduler) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return
	}
	cbs := s.pending
	s.pending = nil
	now := s.Now()
	for _, cb := range cbs {
		cb(now)
	}
}
