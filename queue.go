package schedkit

import "container/heap"

const initialQueueCapacity = 64

// Queue is a minimum-priority queue: Pop returns the entry with the
// lowest priority value. Payloads are opaque; the same value may be
// pushed more than once. Entries with equal priority come out in an
// unspecified order (whatever order the heap settles into), so callers
// that need a deterministic tie-break must encode it in the priority.
type Queue[T comparable] struct {
	h entryHeap[T]
}

// entry wraps a queued value with its priority key. The index field is
// maintained by the heap and is required to re-establish ordering when
// a priority changes in place.
type entry[T comparable] struct {
	value T
	prio  float64
	index int
}

// entryHeap implements heap.Interface as a min-heap on prio.
type entryHeap[T comparable] []*entry[T]

func (h entryHeap[T]) Len() int { return len(h) }
func (h entryHeap[T]) Less(i, j int) bool {
	return h[i].prio < h[j].prio // min-heap
}
func (h entryHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[T]) Push(x any) {
	e := x.(*entry[T])
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// NewQueue creates an empty queue with preallocated backing storage.
func NewQueue[T comparable]() *Queue[T] {
	q := &Queue[T]{}
	q.h = make(entryHeap[T], 0, initialQueueCapacity)
	heap.Init(&q.h)
	return q
}

// Push inserts a value with the given priority. O(log n).
func (q *Queue[T]) Push(v T, prio float64) {
	heap.Push(&q.h, &entry[T]{value: v, prio: prio})
}

// Pop removes and returns the value with the lowest priority.
// If the queue is empty, Pop returns a zero value and false. O(log n).
func (q *Queue[T]) Pop() (T, bool) {
	if q.h.Len() == 0 {
		var zero T
		return zero, false
	}
	e := heap.Pop(&q.h).(*entry[T])
	return e.value, true
}

// Peek returns the value with the lowest priority without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.h.Len() == 0 {
		var zero T
		return zero, false
	}
	return q.h[0].value, true
}

// Len returns the number of entries currently stored in the queue.
func (q *Queue[T]) Len() int { return q.h.Len() }

// IsEmpty reports whether the queue holds no entries.
func (q *Queue[T]) IsEmpty() bool { return q.h.Len() == 0 }

// UpdatePriority changes the priority of the first entry equal to v and
// restores heap order. It reports whether a matching entry was found.
// Locating the entry is a linear scan; no value index is maintained.
func (q *Queue[T]) UpdatePriority(v T, prio float64) bool {
	for _, e := range q.h {
		if e.value == v {
			e.prio = prio
			heap.Fix(&q.h, e.index)
			return true
		}
	}
	return false
}
