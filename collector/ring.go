package collector

import "sync"

// ring is the accumulation buffer shared by all collectors. With a positive
// capacity it behaves as a drop-oldest ring; with capacity zero it grows
// without bound.
//
// All methods are safe for concurrent use. swap is the exchange operation:
// it returns the buffered records in append order and leaves the ring
// empty, so encoding can happen outside the lock.
type ring[T any] struct {
	mu       sync.Mutex
	buf      []T
	head     int
	size     int
	capacity int
	dropped  int
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{capacity: capacity}
}

func (r *ring[T]) append(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capacity <= 0 {
		r.buf = append(r.buf, v)
		r.size++

		return
	}

	if r.buf == nil {
		r.buf = make([]T, r.capacity)
	}

	if r.size < r.capacity {
		r.buf[(r.head+r.size)%r.capacity] = v
		r.size++

		return
	}

	// Full: overwrite the oldest record.
	r.buf[r.head] = v
	r.head = (r.head + 1) % r.capacity
	r.dropped++
}

// swap returns the buffered records in append order and the number of
// records dropped since the previous swap, resetting both.
func (r *ring[T]) swap() ([]T, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := r.dropped
	r.dropped = 0

	if r.size == 0 {
		return nil, dropped
	}

	var out []T
	if r.capacity <= 0 {
		// Unbounded: hand the backing slice off and start fresh.
		out = r.buf
		r.buf = nil
	} else {
		out = make([]T, r.size)
		for i := 0; i < r.size; i++ {
			out[i] = r.buf[(r.head+i)%r.capacity]
		}
		r.head = 0
	}
	r.size = 0

	return out, dropped
}

func (r *ring[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.size
}
