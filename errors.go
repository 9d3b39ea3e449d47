package rx

import (
	"errors"

	"github.com/AnatoleLucet/rx/internal"
)

// ErrNegativeCount is delivered through Error when Take, Skip or Interval
// is given a negative count.
var ErrNegativeCount = errors.New("rx: negative count")

// PanicError is delivered through Error when a producer or a user callback
// panics. Value holds what was recovered.
type PanicError = internal.PanicError
