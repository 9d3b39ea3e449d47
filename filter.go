package rx

import (
	"fmt"

	"github.com/AnatoleLucet/rx/internal"
)

// Filter passes on the values for which predicate returns true.
// A panicking predicate stops the stream with an error.
func (o Observable[T]) Filter(predicate func(T) bool) Observable[T] {
	test := func(v T) (bool, error) { return predicate(v), nil }

	return Create(func(down Subscriber[T]) {
		o.relay(down.lifetime(), NewObserver(
			func(v T) {
				ok, err := internal.Try(test, v)
				if err != nil {
					down.Error(err)
					return
				}
				if ok {
					down.Next(v)
				}
			},
			down.Error,
			down.Complete,
		))
	})
}

// Take passes on the first count values, then completes and disposes the
// upstream subscription.
//
// Take(0) completes without subscribing upstream. count must not be
// negative: a negative count is delivered as an ErrNegativeCount error.
func (o Observable[T]) Take(count int) Observable[T] {
	return Create(func(down Subscriber[T]) {
		if count < 0 {
			down.Error(fmt.Errorf("rx: take(%d): %w", count, ErrNegativeCount))
			return
		}
		if count == 0 {
			down.Complete()
			return
		}

		taken := 0
		o.relay(down.lifetime(), NewObserver(
			func(v T) {
				taken++
				down.Next(v)
				if taken == count {
					down.Complete()
				}
			},
			down.Error,
			down.Complete,
		))
	})
}

// First passes on the first value matching predicate, then completes.
// If upstream completes without a match, the stream completes empty.
func (o Observable[T]) First(predicate func(T) bool) Observable[T] {
	return o.Filter(predicate).Take(1)
}

// Skip drops the first count values and passes on the rest.
// A negative count is delivered as an ErrNegativeCount error.
func (o Observable[T]) Skip(count int) Observable[T] {
	return Create(func(down Subscriber[T]) {
		if count < 0 {
			down.Error(fmt.Errorf("rx: skip(%d): %w", count, ErrNegativeCount))
			return
		}

		skipped := 0
		o.relay(down.lifetime(), NewObserver(
			func(v T) {
				if skipped < count {
					skipped++
					return
				}
				down.Next(v)
			},
			down.Error,
			down.Complete,
		))
	})
}
