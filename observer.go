package rx

import (
	"log/slog"

	"github.com/google/uuid"
)

// Observer receives the events of a stream: any number of Next calls,
// followed by at most one Error or Complete.
type Observer[T any] interface {
	Next(value T)
	Error(err error)
	Complete()
}

type funcObserver[T any] struct {
	onNext     func(T)
	onError    func(error)
	onComplete func()
}

// NewObserver builds an Observer from callbacks. Nil callbacks are no-ops.
func NewObserver[T any](onNext func(T), onError func(error), onComplete func()) Observer[T] {
	return &funcObserver[T]{
		onNext:     onNext,
		onError:    onError,
		onComplete: onComplete,
	}
}

func (o *funcObserver[T]) Next(v T) {
	if o.onNext != nil {
		o.onNext(v)
	}
}

func (o *funcObserver[T]) Error(err error) {
	if o.onError != nil {
		o.onError(err)
	}
}

func (o *funcObserver[T]) Complete() {
	if o.onComplete != nil {
		o.onComplete()
	}
}

// LoggingObserver writes every event of a stream as a structured log record.
type LoggingObserver[T any] struct {
	Logger *slog.Logger

	// Name identifies the stream in the "stream" attribute.
	Name string

	// ID identifies this observer in the "observer_id" attribute.
	ID string
}

// NewLoggingObserver creates an Observer that logs values at debug level,
// errors at error level and completion at info level. If logger is nil,
// slog.Default() is used.
func NewLoggingObserver[T any](logger *slog.Logger, name string) Observer[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver[T]{
		Logger: logger,
		Name:   name,
		ID:     uuid.NewString(),
	}
}

func (o *LoggingObserver[T]) Next(v T) {
	o.Logger.Debug("stream_next",
		slog.String("stream", o.Name),
		slog.String("observer_id", o.ID),
		slog.Any("value", v),
	)
}

func (o *LoggingObserver[T]) Error(err error) {
	o.Logger.Error("stream_error",
		slog.String("stream", o.Name),
		slog.String("observer_id", o.ID),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver[T]) Complete() {
	o.Logger.Info("stream_complete",
		slog.String("stream", o.Name),
		slog.String("observer_id", o.ID),
	)
}
