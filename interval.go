package rx

import (
	"fmt"
	"sync"
	"time"

	"github.com/AnatoleLucet/rx/internal"
)

type intervalConfig struct {
	unit      time.Duration
	scheduler Scheduler
}

type IntervalOption func(*intervalConfig)

// WithUnit sets the time unit of the period. Defaults to time.Millisecond.
func WithUnit(unit time.Duration) IntervalOption {
	return func(c *intervalConfig) {
		if unit > 0 {
			c.unit = unit
		}
	}
}

// WithScheduler sets the Scheduler used to wait between values.
func WithScheduler(s Scheduler) IntervalOption {
	return func(c *intervalConfig) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// Interval emits 1, 2, ... period, waiting period units before each value,
// then completes.
//
// Subscribe returns right away; values arrive from the scheduler. The next
// wait only starts once the previous value was delivered. If a wait fails,
// the error is delivered and nothing else follows. A period of 0 completes
// immediately and a negative period is an ErrNegativeCount error.
func Interval(period int64, opts ...IntervalOption) Observable[int64] {
	cfg := intervalConfig{
		unit:      time.Millisecond,
		scheduler: DefaultScheduler,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return Create(func(sub Subscriber[int64]) {
		if period < 0 {
			sub.Error(fmt.Errorf("rx: interval(%d): %w", period, ErrNegativeCount))
			return
		}
		if period == 0 {
			sub.Complete()
			return
		}

		t := &ticker{
			sub:       sub,
			last:      period,
			delay:     time.Duration(period) * cfg.unit,
			scheduler: cfg.scheduler,
		}
		sub.OnCleanup(t.stop)
		t.schedule(1)
	})
}

type ticker struct {
	sub       Subscriber[int64]
	last      int64
	delay     time.Duration
	scheduler Scheduler

	mu      sync.Mutex
	stopped bool
	seq     int64
	cancel  func()
}

func (t *ticker) schedule(i int64) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.seq = i
	t.mu.Unlock()

	cancel := t.scheduler.Schedule(t.delay, func(err error) { t.fire(i, err) })

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		cancel()
		return
	}
	// a synchronous scheduler may already have moved past i
	if t.seq == i {
		t.cancel = cancel
	}
}

func (t *ticker) fire(i int64, err error) {
	if err != nil {
		t.sub.Error(fmt.Errorf("rx: interval delay: %w", err))
		return
	}
	if t.sub.IsDisposed() {
		return
	}

	err = internal.Run(func() error {
		t.sub.Next(i)
		return nil
	})
	if err != nil {
		t.sub.Error(err)
		return
	}

	if i == t.last {
		t.sub.Complete()
		return
	}
	t.schedule(i + 1)
}

func (t *ticker) stop() {
	t.mu.Lock()
	t.stopped = true
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
