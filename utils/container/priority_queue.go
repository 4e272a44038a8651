// Package container holds small generic data structures shared across the
// simulator; currently a binary-heap priority queue.
package container

import "container/heap"

// item is one entry in the priority queue's backing heap.
type item[T any] struct {
	Value    T
	Priority float64
	index    int
}

// innerQueue implements heap.Interface over item[T], lowest priority first.
type innerQueue[T any] []*item[T]

func (pq innerQueue[T]) Len() int { return len(pq) }

func (pq innerQueue[T]) Less(i, j int) bool {
	return pq[i].Priority < pq[j].Priority
}

func (pq innerQueue[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *innerQueue[T]) Push(x any) {
	it := x.(*item[T])
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *innerQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}

// PriorityQueue is a min-heap of values of type T ordered by a float64
// priority (lower pops first).
type PriorityQueue[T any] struct {
	queue innerQueue[T]
}

// NewPriorityQueue returns an empty priority queue.
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{queue: make(innerQueue[T], 0)}
}

// Len returns the number of queued elements.
func (q *PriorityQueue[T]) Len() int {
	return len(q.queue)
}

// Push adds value with the given priority, maintaining heap order.
func (q *PriorityQueue[T]) Push(value T, priority float64) {
	heap.Push(&q.queue, &item[T]{Value: value, Priority: priority})
}

// Pop removes and returns the lowest-priority value.
func (q *PriorityQueue[T]) Pop() (value T, priority float64) {
	it := heap.Pop(&q.queue).(*item[T])
	return it.Value, it.Priority
}
