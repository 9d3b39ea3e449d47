package rx

import "github.com/AnatoleLucet/rx/internal"

// Subscriber is the Observer handed to producers.
//
// Calls are serialized and guarded: once Error or Complete went through, or
// the subscription was disposed, every further call is dropped.
type Subscriber[T any] interface {
	Observer[T]

	// IsDisposed reports whether nothing will be delivered anymore.
	// Producers should check it between emissions and stop early.
	IsDisposed() bool

	// OnCleanup registers fn to run when the subscription ends.
	OnCleanup(fn func())

	lifetime() *internal.Owner
}

type subscriber[T any] struct {
	observer Observer[T]

	own    *internal.Owner
	serial internal.Serializer

	// set once a terminal event went through, guarded by serial
	done bool
}

func newSubscriber[T any](observer Observer[T], owner *internal.Owner) *subscriber[T] {
	return &subscriber[T]{
		observer: observer,
		own:      owner,
	}
}

func (s *subscriber[T]) Next(v T) {
	s.serial.Do(func() {
		if s.done || s.own.IsDisposed() {
			return
		}
		s.observer.Next(v)
	})
}

func (s *subscriber[T]) Error(err error) {
	s.terminate(func() { s.observer.Error(err) })
}

func (s *subscriber[T]) Complete() {
	s.terminate(s.observer.Complete)
}

func (s *subscriber[T]) terminate(deliver func()) {
	s.serial.Do(func() {
		if s.done || s.own.IsDisposed() {
			return
		}
		s.done = true
		defer s.own.Dispose()

		deliver()
	})
}

func (s *subscriber[T]) IsDisposed() bool {
	return s.own.IsDisposed()
}

func (s *subscriber[T]) OnCleanup(fn func()) {
	s.own.OnCleanup(fn)
}

func (s *subscriber[T]) lifetime() *internal.Owner {
	return s.own
}
