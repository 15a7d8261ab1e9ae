package isotrix

import (
	"cmp"
	"container/heap"
)

// CompareDepth orders renderables from far to near.
func CompareDepth(a, b Renderable) int {
	return cmp.Compare(a.Depth(), b.Depth())
}

type queued struct {
	r   Renderable
	seq int
}

type depthHeap []queued

func (h depthHeap) Len() int { return len(h) }

// Less breaks depth ties by insertion order so equal depths draw in the
// order they were offered.
func (h depthHeap) Less(i, j int) bool {
	if c := CompareDepth(h[i].r, h[j].r); c != 0 {
		return c < 0
	}
	return h[i].seq < h[j].seq
}

func (h depthHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *depthHeap) Push(x any) { *h = append(*h, x.(queued)) }

func (h *depthHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// DepthQueue hands renderables back in increasing depth, which is back to
// front: everything popped later may overdraw what was popped before.
type DepthQueue struct {
	items depthHeap
	seq   int
}

func NewDepthQueue(capacity int) *DepthQueue {
	return &DepthQueue{items: make(depthHeap, 0, capacity)}
}

func (q *DepthQueue) Offer(r Renderable) {
	heap.Push(&q.items, queued{r: r, seq: q.seq})
	q.seq++
}

func (q *DepthQueue) Poll() (Renderable, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return heap.Pop(&q.items).(queued).r, true
}

func (q *DepthQueue) Len() int {
	return len(q.items)
}

// FlipY flips every queued renderable. Depth is unchanged so the heap order holds.
func (q *DepthQueue) FlipY(top float64) {
	for i := range q.items {
		q.items[i].r = q.items[i].r.FlipY(top)
	}
}

// Drain polls everything into a slice in draw order.
func (q *DepthQueue) Drain() []Renderable {
	out := make([]Renderable, 0, len(q.items))
	for {
		r, ok := q.Poll()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}
