package rx

import (
	"iter"
	"slices"
)

// Just emits values in order, then completes.
func Just[T any](values ...T) Observable[T] {
	return From(values)
}

// From emits the elements of values in order, then completes.
// The slice is copied, so later changes to it are not observed.
func From[T any](values []T) Observable[T] {
	values = slices.Clone(values)

	return Create(func(sub Subscriber[T]) {
		for _, v := range values {
			if sub.IsDisposed() {
				return
			}
			sub.Next(v)
		}
		sub.Complete()
	})
}

// FromSeq emits the values yielded by seq, then completes.
// seq is iterated again on every subscription.
func FromSeq[T any](seq iter.Seq[T]) Observable[T] {
	return Create(func(sub Subscriber[T]) {
		for v := range seq {
			if sub.IsDisposed() {
				return
			}
			sub.Next(v)
		}
		sub.Complete()
	})
}

// FromCallable calls fn on subscription and emits its result, then completes.
// A returned error is delivered through Error instead.
func FromCallable[T any](fn func() (T, error)) Observable[T] {
	return Create(func(sub Subscriber[T]) {
		v, err := fn()
		if err != nil {
			sub.Error(err)
			return
		}
		sub.Next(v)
		sub.Complete()
	})
}
