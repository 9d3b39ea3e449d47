package rx

import "github.com/AnatoleLucet/rx/internal"

// Map applies project to every value.
// If project panics, the panic is delivered through Error and the stream stops.
func Map[T, R any](o Observable[T], project func(T) R) Observable[R] {
	return TryMap(o, func(v T) (R, error) {
		return project(v), nil
	})
}

// TryMap is Map for projections that can fail. A returned error is delivered
// through Error and the stream stops.
func TryMap[T, R any](o Observable[T], project func(T) (R, error)) Observable[R] {
	return Create(func(down Subscriber[R]) {
		o.relay(down.lifetime(), NewObserver(
			func(v T) {
				r, err := internal.Try(project, v)
				if err != nil {
					down.Error(err)
					return
				}
				down.Next(r)
			},
			down.Error,
			down.Complete,
		))
	})
}

// MapTo replaces every value with value.
func MapTo[T, R any](o Observable[T], value R) Observable[R] {
	return Map(o, func(T) R { return value })
}

// DoOnNext calls action with every value before passing it on unchanged.
// A panicking action stops the stream like a failing Map.
func (o Observable[T]) DoOnNext(action func(T)) Observable[T] {
	return TryMap(o, func(v T) (T, error) {
		action(v)
		return v, nil
	})
}
