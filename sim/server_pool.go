package sim

import "fmt"

// ServerPool holds, for each server slot, the timestamp at which it becomes free.
// Servers share a single queue: a customer always goes to whichever slot frees first.
type ServerPool struct {
	freeAt []float64
}

// NewServerPool creates a pool of n idle servers. A non-positive n yields an empty pool.
func NewServerPool(n int) *ServerPool {
	return &ServerPool{freeAt: make([]float64, max(0, n))}
}

// Len returns the number of server slots.
func (p *ServerPool) Len() int {
	return len(p.freeAt)
}

// FreeAt returns when server i becomes free.
func (p *ServerPool) FreeAt(i int) float64 {
	return p.freeAt[i]
}

// Earliest returns the index of the server that frees first; ties go to the lowest index.
// Returns -1 for an empty pool.
func (p *ServerPool) Earliest() int {
	best := -1
	for i, t := range p.freeAt {
		if best < 0 || t < p.freeAt[best] {
			best = i
		}
	}
	return best
}

// Assign marks server i busy until the given timestamp.
// A server's free time never moves backwards; a violation is a simulator bug.
func (p *ServerPool) Assign(i int, until float64) {
	if until < p.freeAt[i] {
		panic(fmt.Sprintf("Assign: server %d free time would move backwards (%f -> %f)", i, p.freeAt[i], until))
	}
	p.freeAt[i] = until
}
