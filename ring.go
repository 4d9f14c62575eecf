package knob

import "sync"

// ring is a fixed-capacity FIFO of optional samples. Pushing into a full
// ring overwrites the oldest slot.
type ring[T any] struct {
	mu    sync.RWMutex
	slots []Sample[T]
	size  int
	head  int
	count int
}

// newRing creates a ring with the given capacity.
// If size is 0, the ring is disabled and every method is a no-op.
func newRing[T any](size int) *ring[T] {
	if size <= 0 {
		return nil
	}
	return &ring[T]{
		slots: make([]Sample[T], size),
		size:  size,
	}
}

// push appends a sample, evicting the oldest one when full.
func (r *ring[T]) push(s Sample[T]) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[r.head] = s
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// clear empties the ring.
func (r *ring[T]) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slots {
		r.slots[i] = Sample[T]{}
	}
	r.head = 0
	r.count = 0
}

// len returns the number of pushed samples, at most the capacity.
func (r *ring[T]) len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// all returns the pushed samples, oldest first.
func (r *ring[T]) all() []Sample[T] {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]Sample[T], r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.slots[(start+i)%r.size]
	}
	return result
}

// window returns exactly capacity slots, oldest first, with unfilled slots
// leading.
func (r *ring[T]) window() []Sample[T] {
	if r == nil {
		return nil
	}
	filled := r.all()
	result := make([]Sample[T], r.size)
	copy(result[r.size-len(filled):], filled)
	return result
}
