package app

import (
	"context"
	"sync"
)

// Handoff carries one value from the screen that produces it to the screen
// that consumes it. A second Put before Take overwrites the first.
type Handoff[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
}

func (h *Handoff[T]) Put(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value, h.set = v, true
}

// Take returns the pending value and clears the slot.
func (h *Handoff[T]) Take() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.value, h.set
	var zero T
	h.value, h.set = zero, false
	return v, ok
}

// FixedLocation reports the same position every time; used where no
// location provider exists.
type FixedLocation struct {
	Latitude  float64
	Longitude float64
}

func (f FixedLocation) Location(_ context.Context) (float64, float64, error) {
	return f.Latitude, f.Longitude, nil
}
