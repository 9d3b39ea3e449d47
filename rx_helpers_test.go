package rx

import (
	"fmt"
	"sync"
)

// recorder is an Observer that logs every event it receives.
type recorder[T any] struct {
	mu  sync.Mutex
	log []string
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{log: []string{}}
}

func (r *recorder[T]) Next(v T) {
	r.add(fmt.Sprintf("next %v", v))
}

func (r *recorder[T]) Error(err error) {
	r.add("error " + err.Error())
}

func (r *recorder[T]) Complete() {
	r.add("complete")
}

func (r *recorder[T]) add(entry string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, entry)
}

func (r *recorder[T]) Log() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.log...)
}
