package signal

import (
	"sync"
	"sync/atomic"
)

// Value holds the latest published snapshot of T. One component writes it with Store;
// any number of readers call Load and get the most recent value without blocking.
// The zero Value loads the zero T.
type Value[T any] struct {
	p atomic.Pointer[T]
}

// Store publishes v as the current snapshot.
func (v *Value[T]) Store(x T) {
	v.p.Store(&x)
}

// Load returns the latest snapshot, or the zero T if nothing was stored yet.
func (v *Value[T]) Load() T {
	if p := v.p.Load(); p != nil {
		return *p
	}
	var zero T
	return zero
}

// Hub is a list of listeners for events of type T. Subscribe returns a func that
// removes the listener; calling it more than once is harmless.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(T)
	order  []uint64
}

// Subscribe adds fn and returns its unsubscribe func.
func (h *Hub[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	if h.subs == nil {
		h.subs = make(map[uint64]func(T))
	}
	h.nextID++
	id := h.nextID
	h.subs[id] = fn
	h.order = append(h.order, id)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub[T]) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
	for i, o := range h.order {
		if o == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Emit calls every listener with v in subscription order. Listeners removed while
// Emit runs are not called afterwards.
func (h *Hub[T]) Emit(v T) {
	h.mu.Lock()
	ids := make([]uint64, len(h.order))
	copy(ids, h.order)
	h.mu.Unlock()
	for _, id := range ids {
		h.mu.Lock()
		fn, ok := h.subs[id]
		h.mu.Unlock()
		if ok {
			fn(v)
		}
	}
}

// Len returns the number of live listeners.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.order)
}
