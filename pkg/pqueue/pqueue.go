// Package pqueue implements a bucketed max-priority queue. Items sharing a
// priority come out in insertion order.
package pqueue

import "sort"

// Queue holds items grouped by priority. The zero value is ready to use.
type Queue[T any] struct {
	keys    []int // ascending
	buckets map[int][]T
	size    int
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{buckets: make(map[int][]T)}
}

// Push adds item with the given priority.
func (q *Queue[T]) Push(priority int, item T) {
	if q.buckets == nil {
		q.buckets = make(map[int][]T)
	}
	if _, ok := q.buckets[priority]; !ok {
		i := sort.SearchInts(q.keys, priority)
		q.keys = append(q.keys, 0)
		copy(q.keys[i+1:], q.keys[i:])
		q.keys[i] = priority
	}
	q.buckets[priority] = append(q.buckets[priority], item)
	q.size++
}

// Pop removes the oldest item of the highest priority. It reports false when
// the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.keys) == 0 {
		return zero, false
	}
	top := q.keys[len(q.keys)-1]
	bucket := q.buckets[top]
	item := bucket[0]
	bucket[0] = zero
	bucket = bucket[1:]
	if len(bucket) == 0 {
		delete(q.buckets, top)
		q.keys = q.keys[:len(q.keys)-1]
	} else {
		q.buckets[top] = bucket
	}
	q.size--
	return item, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return q.size
}
