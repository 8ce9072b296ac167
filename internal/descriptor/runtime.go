package descriptor

import "sync/atomic"

// Runtime holds the current descriptor. Readers call Get; the watcher swaps
// in whole new values with Store. A stored descriptor is never modified.
type Runtime struct {
	ptr atomic.Pointer[Descriptor]
}

// NewRuntime returns a Runtime holding initial.
func NewRuntime(initial *Descriptor) *Runtime {
	r := &Runtime{}
	r.ptr.Store(initial)
	return r
}

// Get returns the current descriptor.
func (r *Runtime) Get() *Descriptor {
	return r.ptr.Load()
}

// Store replaces the current descriptor.
func (r *Runtime) Store(d *Descriptor) {
	r.ptr.Store(d)
}
