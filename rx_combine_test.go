package rx

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConcat(t *testing.T) {
	t.Run("emits sources one after the other", func(t *testing.T) {
		rec := newRecorder[int]()

		Concat(Just(1, 2), Just(3, 4)).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "next 2", "next 3", "next 4", "complete"}, rec.Log())
	})

	t.Run("instance form", func(t *testing.T) {
		rec := newRecorder[int]()

		Just(1).Concat(Just(2), Just(3)).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "next 2", "next 3", "complete"}, rec.Log())
	})

	t.Run("no sources completes", func(t *testing.T) {
		rec := newRecorder[int]()

		Concat[int]().Subscribe(rec)

		assert.Equal(t, []string{"complete"}, rec.Log())
	})

	t.Run("error skips the remaining sources", func(t *testing.T) {
		rec := newRecorder[int]()
		subscriptions := 0

		first := Create(func(s Subscriber[int]) {
			s.Next(1)
			s.Error(errors.New("first failed"))
		})
		second := Create(func(s Subscriber[int]) {
			subscriptions++
			s.Next(2)
			s.Complete()
		})
		Concat(first, second).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "error first failed"}, rec.Log())
		assert.Equal(t, 0, subscriptions)
	})

	t.Run("second is subscribed only after first completed", func(t *testing.T) {
		log := []string{}

		first := Create(func(s Subscriber[string]) {
			log = append(log, "first subscribed")
			s.Next("a")
			log = append(log, "first completing")
			s.Complete()
		})
		second := Create(func(s Subscriber[string]) {
			log = append(log, "second subscribed")
			s.Next("b")
			s.Complete()
		})
		Concat(first, second).SubscribeFunc(
			func(v string) { log = append(log, "next "+v) },
			nil,
			func() { log = append(log, "complete") },
		)

		assert.Equal(t, []string{
			"first subscribed",
			"next a",
			"first completing",
			"second subscribed",
			"next b",
			"complete",
		}, log)
	})

	t.Run("take stops before later sources", func(t *testing.T) {
		rec := newRecorder[int]()
		subscriptions := 0

		second := Create(func(s Subscriber[int]) {
			subscriptions++
			s.Complete()
		})
		Concat(Just(1, 2, 3), second).Take(2).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "next 2", "complete"}, rec.Log())
		assert.Equal(t, 0, subscriptions)
	})

	t.Run("waits for an asynchronous first source", func(t *testing.T) {
		s := NewVirtualScheduler()
		rec := newRecorder[int64]()

		Concat(Interval(2, WithScheduler(s)), Just[int64](10)).Subscribe(rec)
		assert.Empty(t, rec.Log())

		s.Advance(4 * time.Millisecond)
		assert.Equal(t, []string{"next 1", "next 2", "next 10", "complete"}, rec.Log())
	})
}

func TestStartWith(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		rec := newRecorder[int]()

		Just(3, 4).StartWith(1, 2).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "next 2", "next 3", "next 4", "complete"}, rec.Log())
	})

	t.Run("sequence", func(t *testing.T) {
		rec := newRecorder[int]()

		Just(3).StartWithSeq(slices.Values([]int{1, 2})).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "next 2", "next 3", "complete"}, rec.Log())
	})

	t.Run("observable", func(t *testing.T) {
		rec := newRecorder[int]()

		Just(3).StartWithObservable(Just(1, 2)).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "next 2", "next 3", "complete"}, rec.Log())
	})

	t.Run("single terminal event", func(t *testing.T) {
		rec := newRecorder[int]()

		Just[int]().StartWith(1).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "complete"}, rec.Log())
	})

	t.Run("failing prefix", func(t *testing.T) {
		rec := newRecorder[int]()
		subscribed := false

		source := Create(func(s Subscriber[int]) {
			subscribed = true
			s.Complete()
		})
		prefix := Create(func(s Subscriber[int]) {
			s.Next(0)
			s.Error(errors.New("prefix failed"))
		})
		source.StartWithObservable(prefix).Subscribe(rec)

		assert.Equal(t, []string{"next 0", "error prefix failed"}, rec.Log())
		assert.False(t, subscribed)
	})

	t.Run("upstream error after the prefix", func(t *testing.T) {
		rec := newRecorder[int]()

		Create(func(s Subscriber[int]) {
			s.Error(errors.New("source failed"))
		}).StartWith(1).Subscribe(rec)

		assert.Equal(t, []string{"next 1", "error source failed"}, rec.Log())
	})
}
