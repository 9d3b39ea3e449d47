package rx

import "iter"

// Concat subscribes to each source in turn, the next one only once the
// previous one completed, and completes after the last one.
// An error ends the stream and the remaining sources are never subscribed.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return Create(func(down Subscriber[T]) {
		concatFrom(sources, 0, down)
	})
}

func concatFrom[T any](sources []Observable[T], i int, down Subscriber[T]) {
	if i == len(sources) {
		down.Complete()
		return
	}
	if down.IsDisposed() {
		return
	}

	sources[i].relay(down.lifetime(), NewObserver(
		down.Next,
		down.Error,
		func() { concatFrom(sources, i+1, down) },
	))
}

// Concat emits the values of o, then those of each of others.
func (o Observable[T]) Concat(others ...Observable[T]) Observable[T] {
	return Concat(append([]Observable[T]{o}, others...)...)
}

// StartWith emits values before the values of o.
func (o Observable[T]) StartWith(values ...T) Observable[T] {
	return Concat(From(values), o)
}

// StartWithSeq emits the values yielded by seq before the values of o.
func (o Observable[T]) StartWithSeq(seq iter.Seq[T]) Observable[T] {
	return Concat(FromSeq(seq), o)
}

// StartWithObservable emits prefix before o. If prefix fails, o is never
// subscribed.
func (o Observable[T]) StartWithObservable(prefix Observable[T]) Observable[T] {
	return Concat(prefix, o)
}
