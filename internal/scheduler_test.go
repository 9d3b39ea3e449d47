package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVirtualScheduler(t *testing.T) {
	t.Run("runs callbacks in due order", func(t *testing.T) {
		log := []string{}
		s := NewVirtualScheduler()

		s.Schedule(3*time.Second, func(error) { log = append(log, "c") })
		s.Schedule(1*time.Second, func(error) { log = append(log, "a") })
		s.Schedule(2*time.Second, func(error) { log = append(log, "b1") })
		s.Schedule(2*time.Second, func(error) { log = append(log, "b2") })

		s.Advance(2 * time.Second)
		assert.Equal(t, []string{"a", "b1", "b2"}, log)
		assert.Equal(t, 1, s.Pending())
		assert.Equal(t, 2*time.Second, s.Time())

		s.Advance(time.Second)
		assert.Equal(t, []string{"a", "b1", "b2", "c"}, log)
	})

	t.Run("runs callbacks scheduled while advancing", func(t *testing.T) {
		log := []time.Duration{}
		s := NewVirtualScheduler()

		var tick func(error)
		tick = func(error) {
			log = append(log, s.Time())
			s.Schedule(time.Second, tick)
		}
		s.Schedule(time.Second, tick)

		s.Advance(3500 * time.Millisecond)

		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, log)
		assert.Equal(t, 3500*time.Millisecond, s.Time())
	})

	t.Run("cancel", func(t *testing.T) {
		ran := false
		s := NewVirtualScheduler()

		cancel := s.Schedule(time.Second, func(error) { ran = true })
		cancel()
		cancel()
		s.Advance(time.Minute)

		assert.False(t, ran)
		assert.Equal(t, 0, s.Pending())
	})

	t.Run("interrupt fails pending callbacks", func(t *testing.T) {
		var got []error
		s := NewVirtualScheduler()
		errStop := errors.New("stop")

		s.Schedule(time.Second, func(err error) { got = append(got, err) })
		s.Schedule(time.Hour, func(err error) { got = append(got, err) })
		s.Interrupt(errStop)

		assert.Equal(t, []error{errStop, errStop}, got)
		assert.Equal(t, 0, s.Pending())
		assert.Equal(t, time.Duration(0), s.Time())
	})
}

func TestTimerScheduler(t *testing.T) {
	t.Run("fires after the delay", func(t *testing.T) {
		fired := make(chan error, 1)

		TimerScheduler{}.Schedule(time.Millisecond, func(err error) { fired <- err })

		select {
		case err := <-fired:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("timer never fired")
		}
	})

	t.Run("cancel", func(t *testing.T) {
		fired := make(chan error, 1)

		cancel := TimerScheduler{}.Schedule(50*time.Millisecond, func(err error) { fired <- err })
		cancel()

		select {
		case <-fired:
			t.Fatal("cancelled timer fired")
		case <-time.After(100 * time.Millisecond):
		}
	})
}
