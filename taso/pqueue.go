package taso

import (
	"container/heap"
	"sort"

	"github.com/qcopt/taso/core"
)

// entry is a queue entry: (circuit_hash, circuit, cost) per spec §3.
type entry struct {
	hash    uint64
	circuit *core.Circuit
	cost    int
}

// entryHeap is a min-heap by cost (spec §4.5: "logically min-first: the
// lowest K is popped first"), shared by the single-threaded PQ and the
// multi-threaded work queue.
type entryHeap []entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// haircut truncates h to its keep cheapest entries, preserving heap order
// (spec §4.5.d / glossary "Haircut": "truncate PQ to capacity/2 keeping the
// cheapest half").
func haircut(h *entryHeap, keep int) {
	if keep >= len(*h) {
		return
	}
	items := []entry(*h)
	sort.Slice(items, func(i, j int) bool { return items[i].cost < items[j].cost })
	items = items[:keep]
	*h = entryHeap(items)
	heap.Init(h)
}
