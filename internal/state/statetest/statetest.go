// Package statetest has helpers for tests that drive screen holders.
package statetest

// Drain returns every event already buffered on ch without blocking.
func Drain[E any](ch <-chan E) []E {
	var out []E
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}
