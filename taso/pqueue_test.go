package taso

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaircut_KeepsCheapestHalf(t *testing.T) {
	h := &entryHeap{}
	heap.Init(h)
	for _, c := range []int{5, 1, 9, 3, 7, 2, 8, 4} {
		heap.Push(h, entry{hash: uint64(c), cost: c})
	}
	haircut(h, 4)
	assert.Equal(t, 4, h.Len())

	var costs []int
	for h.Len() > 0 {
		costs = append(costs, heap.Pop(h).(entry).cost)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, costs)
}

func TestHaircut_NoopWhenUnderCapacity(t *testing.T) {
	h := &entryHeap{}
	heap.Init(h)
	heap.Push(h, entry{hash: 1, cost: 1})
	haircut(h, 10)
	assert.Equal(t, 1, h.Len())
}
