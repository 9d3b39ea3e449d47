package rx

import (
	"context"
	"sync"

	"github.com/AnatoleLucet/rx/internal"
)

// Observable is a lazy, cold stream of values.
// Nothing runs until Subscribe is called, and every subscription runs the
// producer again from scratch.
//
// The zero Observable completes immediately.
type Observable[T any] struct {
	produce func(*subscriber[T])
}

// Create builds an Observable from a producer.
// A panic inside the producer is delivered as a *PanicError through Error.
func Create[T any](producer func(Subscriber[T])) Observable[T] {
	return Observable[T]{
		produce: func(s *subscriber[T]) {
			err := internal.Run(func() error {
				producer(s)
				return nil
			})
			if err != nil {
				s.Error(err)
			}
		},
	}
}

func (o Observable[T]) run(s *subscriber[T]) {
	if s.IsDisposed() {
		return
	}
	if o.produce == nil {
		s.Complete()
		return
	}
	o.produce(s)
}

// relay subscribes to o on behalf of a downstream subscriber.
// The upstream subscriber is owned by parent, so it turns inert as soon as
// the downstream one terminates or is disposed.
func (o Observable[T]) relay(parent *internal.Owner, observer Observer[T]) {
	o.run(newSubscriber(observer, parent.NewChild()))
}

// Subscribe runs the producer against observer.
func (o Observable[T]) Subscribe(observer Observer[T]) *Subscription {
	s := newSubscriber(observer, internal.NewOwner())
	sub := newSubscription(s.own)
	o.run(s)
	return sub
}

// SubscribeNext subscribes with a Next callback only.
func (o Observable[T]) SubscribeNext(onNext func(T)) *Subscription {
	return o.Subscribe(NewObserver(onNext, nil, nil))
}

// SubscribeFunc subscribes with callbacks. Nil callbacks are no-ops.
func (o Observable[T]) SubscribeFunc(onNext func(T), onError func(error), onComplete func()) *Subscription {
	return o.Subscribe(NewObserver(onNext, onError, onComplete))
}

// SubscribeContext is like Subscribe but disposes the subscription once ctx is done.
func (o Observable[T]) SubscribeContext(ctx context.Context, observer Observer[T]) *Subscription {
	s := newSubscriber(observer, internal.NewOwner())
	sub := newSubscription(s.own)

	if ctx.Err() != nil {
		sub.Dispose()
		return sub
	}
	stop := context.AfterFunc(ctx, sub.Dispose)
	s.own.OnCleanup(func() { stop() })

	o.run(s)
	return sub
}

// Collect subscribes and blocks until the stream terminates or ctx is done.
// It returns the values received so far along with the stream error, or
// ctx.Err() when the context ended the subscription first.
func (o Observable[T]) Collect(ctx context.Context) ([]T, error) {
	var (
		mu         sync.Mutex
		values     []T
		err        error
		terminated bool
	)

	sub := o.SubscribeContext(ctx, NewObserver(
		func(v T) {
			mu.Lock()
			values = append(values, v)
			mu.Unlock()
		},
		func(e error) {
			mu.Lock()
			err, terminated = e, true
			mu.Unlock()
		},
		func() {
			mu.Lock()
			terminated = true
			mu.Unlock()
		},
	))
	<-sub.Done()

	mu.Lock()
	defer mu.Unlock()
	if !terminated {
		return values, ctx.Err()
	}
	return values, err
}

// Subscription is the handle of a running subscription.
type Subscription struct {
	owner *internal.Owner
	done  chan struct{}
}

func newSubscription(owner *internal.Owner) *Subscription {
	sub := &Subscription{
		owner: owner,
		done:  make(chan struct{}),
	}
	owner.OnDisposed(func() { close(sub.done) })
	return sub
}

// Dispose stops delivery to the observer and tears down every upstream
// subscription and pending timer. It is safe to call more than once.
func (s *Subscription) Dispose() {
	s.owner.Dispose()
}

// IsDisposed reports whether the subscription terminated or was disposed.
func (s *Subscription) IsDisposed() bool {
	return s.owner.IsDisposed()
}

// Done is closed once the subscription terminated or was disposed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
