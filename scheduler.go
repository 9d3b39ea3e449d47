package rx

import (
	"time"

	"github.com/AnatoleLucet/rx/internal"
)

// Scheduler registers deferred callbacks.
//
// Schedule must call fn once, after roughly delay, unless the returned
// cancel function was called first. A non-nil error tells the caller that
// the delay itself failed.
type Scheduler interface {
	Schedule(delay time.Duration, fn func(err error)) (cancel func())
}

// DefaultScheduler backs every Interval that is not given WithScheduler.
// It runs callbacks on timer goroutines.
var DefaultScheduler Scheduler = internal.TimerScheduler{}

// VirtualScheduler is a Scheduler whose clock only moves when Advance is
// called. Interrupt fails the pending callbacks.
type VirtualScheduler = internal.VirtualScheduler

func NewVirtualScheduler() *VirtualScheduler {
	return internal.NewVirtualScheduler()
}
