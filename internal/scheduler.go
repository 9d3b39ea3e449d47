package internal

import (
	"slices"
	"sync"
	"time"
)

// TimerScheduler runs each callback on its own timer goroutine.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func(error)) (cancel func()) {
	t := time.AfterFunc(delay, func() { fn(nil) })
	return func() { t.Stop() }
}

type virtualTask struct {
	due time.Duration
	fn  func(error)
}

// VirtualScheduler is a manually driven clock.
// Nothing runs until Advance or Interrupt is called, and callbacks run on the
// caller's goroutine.
type VirtualScheduler struct {
	mu sync.Mutex

	// elapsed virtual time
	clock time.Duration

	// ordered by due time, FIFO among equal due times
	tasks []*virtualTask
}

func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{}
}

func (s *VirtualScheduler) Schedule(delay time.Duration, fn func(error)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &virtualTask{due: s.clock + delay, fn: fn}
	i := slices.IndexFunc(s.tasks, func(t *virtualTask) bool { return t.due > task.due })
	if i < 0 {
		i = len(s.tasks)
	}
	s.tasks = slices.Insert(s.tasks, i, task)

	return func() { s.remove(task) }
}

func (s *VirtualScheduler) remove(task *virtualTask) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.tasks, task)
	if i >= 0 {
		s.tasks = slices.Delete(s.tasks, i, i+1)
	}
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way, including ones scheduled by earlier callbacks.
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.clock + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if len(s.tasks) == 0 || s.tasks[0].due > target {
			s.clock = target
			s.mu.Unlock()
			return
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.clock = task.due
		s.mu.Unlock()

		task.fn(nil)
	}
}

// Interrupt fails every pending callback with err.
func (s *VirtualScheduler) Interrupt(err error) {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, task := range tasks {
		task.fn(err)
	}
}

// Time returns the elapsed virtual time.
func (s *VirtualScheduler) Time() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Pending returns the number of callbacks waiting to fall due.
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
