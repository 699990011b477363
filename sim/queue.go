// Implements the DepartureQueue, which tracks the customers currently in the system.
// Entries are keyed by their service-completion timestamp.

package sim

import (
	"container/heap"
)

// departureHeap implements heap.Interface and orders departures by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type departureHeap []float64

func (h departureHeap) Len() int           { return len(h) }
func (h departureHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h departureHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *departureHeap) Push(x any) {
	*h = append(*h, x.(float64))
}

func (h *departureHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// DepartureQueue is a min-priority queue of departure timestamps.
// It is bookkeeping for admission control only: it answers "how many customers are
// still present at time t", it does not schedule anything.
type DepartureQueue struct {
	h departureHeap
}

// Push records a customer that leaves the system at departure.
func (q *DepartureQueue) Push(departure float64) {
	heap.Push(&q.h, departure)
}

// Len returns the number of customers in the system.
func (q *DepartureQueue) Len() int {
	return q.h.Len()
}

// Peek returns the earliest departure without removing it.
// Returns false if the queue is empty.
func (q *DepartureQueue) Peek() (float64, bool) {
	if q.h.Len() == 0 {
		return 0, false
	}
	return q.h[0], true
}

// EvictThrough removes every customer whose departure is at or before now
// and returns how many were removed.
func (q *DepartureQueue) EvictThrough(now float64) int {
	evicted := 0
	for q.h.Len() > 0 && q.h[0] <= now {
		heap.Pop(&q.h)
		evicted++
	}
	return evicted
}
