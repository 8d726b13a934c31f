// Package perf records per-frame timing samples in fixed-size windows and
// reduces them into on-demand summaries.
package perf

import "golang.org/x/exp/constraints"

const DefaultCapacity = 60

type Number interface {
	constraints.Integer | constraints.Float
}

// Ring is a fixed-capacity FIFO window. Once full, each Push overwrites the
// oldest sample. The backing array is allocated once in NewRing.
type Ring[T Number] struct {
	data []T
	pos  int
	full bool
}

func NewRing[T Number](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring[T]{data: make([]T, capacity)}
}

func (r *Ring[T]) Push(v T) {
	r.data[r.pos] = v
	r.pos++
	if r.pos == len(r.data) {
		r.pos = 0
		r.full = true
	}
}

func (r *Ring[T]) Len() int {
	if r.full {
		return len(r.data)
	}
	return r.pos
}

func (r *Ring[T]) Cap() int {
	return len(r.data)
}

// Snapshot returns a copy of the contents, oldest first.
func (r *Ring[T]) Snapshot() []T {
	return r.AppendTo(make([]T, 0, r.Len()))
}

// AppendTo appends the contents, oldest first, to dst.
func (r *Ring[T]) AppendTo(dst []T) []T {
	if r.full {
		dst = append(dst, r.data[r.pos:]...)
	}
	return append(dst, r.data[:r.pos]...)
}

// Average is 0 for an empty ring.
func (r *Ring[T]) Average() float64 {
	n := r.Len()
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(r.data[i])
	}
	return sum / float64(n)
}

// Max is the zero value for an empty ring.
func (r *Ring[T]) Max() T {
	var max T
	n := r.Len()
	for i := 0; i < n; i++ {
		if i == 0 || r.data[i] > max {
			max = r.data[i]
		}
	}
	return max
}
