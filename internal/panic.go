package internal

import (
	"fmt"
	"runtime/debug"
)

// PanicError carries a value recovered from a panicking producer or callback.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("rx: recovered panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Run calls fn and turns a panic into a *PanicError.
func Run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return fn()
}

// Try calls fn with v and captures both its returned error and a panic.
func Try[T, R any](fn func(T) (R, error), v T) (result R, err error) {
	err = Run(func() error {
		var ferr error
		result, ferr = fn(v)
		return ferr
	})
	return result, err
}
