package mergesorted

// pqueue is a fixed-capacity binary min-heap of uint32 values, sized to the
// 64-run cap this package enforces: at most one entry per run can ever be
// live at once.
type pqueue struct {
	data [64]uint32
	n    int
}

func (h *pqueue) Len() int { return h.n }

func (h *pqueue) push(v uint32) {
	h.data[h.n] = v
	h.siftUp(h.n)
	h.n++
}

func (h *pqueue) popMin() uint32 {
	top := h.data[0]
	h.n--
	h.data[0] = h.data[h.n]
	h.siftDown(0)

	return top
}

func (h *pqueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.data[parent] <= h.data[i] {
			break
		}
		h.data[parent], h.data[i] = h.data[i], h.data[parent]
		i = parent
	}
}

func (h *pqueue) siftDown(i int) {
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < h.n && h.data[left] < h.data[smallest] {
			smallest = left
		}
		if right < h.n && h.data[right] < h.data[smallest] {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.data[i], h.data[smallest] = h.data[smallest], h.data[i]
		i = smallest
	}
}
