package native

import (
	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

const heapCapacity = 100

// binaryHeap is a 1-indexed binary heap with a fixed capacity.
type binaryHeap struct {
	handle
	arr   []int
	isMin bool
}

func newHeap(min bool) *binaryHeap {
	return &binaryHeap{arr: make([]int, 1, heapCapacity+1), isMin: min}
}

func (h *binaryHeap) size() int { return len(h.arr) - 1 }

func (h *binaryHeap) before(a, b int) bool {
	if h.isMin {
		return h.arr[a] < h.arr[b]
	}
	return h.arr[a] > h.arr[b]
}

func (h *binaryHeap) up(i int) {
	for i > 1 {
		parent := i / 2
		if !h.before(i, parent) {
			return
		}
		h.arr[i], h.arr[parent] = h.arr[parent], h.arr[i]
		i = parent
	}
}

func (h *binaryHeap) down(i int) {
	for {
		target := i
		left, right := 2*i, 2*i+1
		if left <= h.size() && h.before(left, target) {
			target = left
		}
		if right <= h.size() && h.before(right, target) {
			target = right
		}
		if target == i {
			return
		}
		h.arr[i], h.arr[target] = h.arr[target], h.arr[i]
		i = target
	}
}

// Insert adds value; inserts into a full heap are ignored.
func (h *binaryHeap) Insert(value int) {
	if h.size() == heapCapacity {
		return
	}
	h.arr = append(h.arr, value)
	h.up(h.size())
}

func (h *binaryHeap) ExtractTop() int {
	if h.size() == 0 {
		return backend.EmptyHeap
	}
	top := h.arr[1]
	h.arr[1] = h.arr[h.size()]
	h.arr = h.arr[:h.size()]
	if h.size() > 0 {
		h.down(1)
	}
	return top
}

func (h *binaryHeap) Clear() { h.arr = h.arr[:1] }

func (h *binaryHeap) ConvertToMinHeap() {
	h.isMin = true
	h.rebuild()
}

func (h *binaryHeap) ConvertToMaxHeap() {
	h.isMin = false
	h.rebuild()
}

func (h *binaryHeap) rebuild() {
	for i := h.size() / 2; i >= 1; i-- {
		h.down(i)
	}
}

func (h *binaryHeap) IsMinHeap() bool { return h.isMin }

func (h *binaryHeap) Array() string { return snapshot.FormatArray(h.arr[1:]) }

var _ backend.Heap = (*binaryHeap)(nil)
