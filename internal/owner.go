package internal

import (
	"slices"
	"sync"
)

// Owner is a node in the disposal tree of a subscription.
// Disposing an owner disposes its children first, then runs its cleanups.
type Owner struct {
	mu sync.Mutex

	disposed bool

	// cleanup functions to be called when the owner is disposed
	cleanups []func()

	// invoked once after cleanups ran
	onDisposed func()

	parent   *Owner
	children []*Owner
}

func NewOwner() *Owner {
	return &Owner{}
}

// NewChild creates an owner that is disposed together with o.
// If o is already disposed the child is returned disposed.
func (o *Owner) NewChild() *Owner {
	child := NewOwner()
	o.AddChild(child)
	return child
}

func (o *Owner) AddChild(child *Owner) {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		child.Dispose()
		return
	}
	child.mu.Lock()
	child.parent = o
	child.mu.Unlock()
	o.children = append(o.children, child)
	o.mu.Unlock()
}

func (o *Owner) removeChild(child *Owner) {
	o.mu.Lock()
	defer o.mu.Unlock()

	i := slices.Index(o.children, child)
	if i >= 0 {
		o.children = slices.Delete(o.children, i, i+1)
	}
}

// OnCleanup registers fn to run when the owner is disposed.
// fn runs immediately when the owner is already disposed.
func (o *Owner) OnCleanup(fn func()) {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
	o.mu.Unlock()
}

// OnDisposed sets the hook called last during disposal.
func (o *Owner) OnDisposed(fn func()) {
	o.mu.Lock()
	o.onDisposed = fn
	o.mu.Unlock()
}

func (o *Owner) IsDisposed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.disposed
}

// Dispose is idempotent. Children are disposed newest first.
func (o *Owner) Dispose() {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.disposed = true

	parent := o.parent
	o.parent = nil
	children := o.children
	o.children = nil
	cleanups := o.cleanups
	o.cleanups = nil
	onDisposed := o.onDisposed
	o.onDisposed = nil
	o.mu.Unlock()

	if parent != nil {
		parent.removeChild(o)
	}

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	for _, cleanup := range cleanups {
		cleanup()
	}

	if onDisposed != nil {
		onDisposed()
	}
}
