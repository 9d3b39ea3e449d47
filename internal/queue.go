package internal

import (
	"sync"
	"sync/atomic"
)

// Serializer runs deliveries one at a time.
//
// A delivery issued from another goroutine waits for the current one to
// finish. A delivery issued re-entrantly by the goroutine that is currently
// delivering cannot wait on itself, so it is queued and drained, in order,
// before the outer delivery returns.
type Serializer struct {
	mu sync.Mutex

	// goroutine currently delivering, 0 when idle
	owner atomic.Int64

	// only touched by the delivering goroutine
	pending []func()
}

func (s *Serializer) Do(fn func()) {
	gid := getGID()
	if s.owner.Load() == gid {
		s.pending = append(s.pending, fn)
		return
	}

	s.mu.Lock()
	s.owner.Store(gid)
	defer func() {
		// a panicking delivery drops whatever was queued behind it
		s.pending = nil
		s.owner.Store(0)
		s.mu.Unlock()
	}()

	fn()
	s.drain()
}

func (s *Serializer) drain() {
	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		next()
	}
}
