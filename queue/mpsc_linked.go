// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// Linked is an unbounded multi-producer single-consumer FIFO queue.
//
// Based on the Michael-Scott lock-free queue algorithm: a singly linked
// list with a permanent sentinel node so head and tail never overlap.
// Producers exchange-and-link in O(1) without any retry loop; the single
// consumer advances the sentinel and frees the old one, never contending
// with a producer's write to the same memory.
//
// Unlike [Ring], Linked never rejects a push for being full unless a
// maxSize was given at construction — it grows with demand. This is the
// queue to reach for when backpressure is handled elsewhere (for example,
// an accept loop that must never drop a connection) and bursty fan-in from
// many producers needs a single ordered consumer.
type Linked[T any] struct {
	_    pad
	head atomic.Pointer[linkedNode[T]]
	_    pad
	tail *linkedNode[T] // consumer-owned, never touched by producers
	_    pad
	size    atomix.Int64
	maxSize int64 // 0 means unbounded
}

type linkedNode[T any] struct {
	next atomic.Pointer[linkedNode[T]]
	data T
}

// NewLinked creates an unbounded MPSC queue. maxSize of 0 means unbounded;
// a positive maxSize makes Enqueue return ErrWouldBlock once that many
// elements are queued.
func NewLinked[T any](maxSize int) *Linked[T] {
	sentinel := &linkedNode[T]{}
	q := &Linked[T]{
		tail: sentinel,
	}
	q.head.Store(sentinel)
	if maxSize > 0 {
		q.maxSize = int64(maxSize)
	}
	return q
}

// Enqueue adds an element to the queue.
// Returns ErrWouldBlock only if a maxSize was configured and is currently
// reached; an unbounded queue never blocks.
func (q *Linked[T]) Enqueue(elem *T) error {
	if q.maxSize > 0 {
		old := q.size.LoadAcquire()
		for {
			if old >= q.maxSize {
				return ErrWouldBlock
			}
			if q.size.CompareAndSwapAcqRel(old, old+1) {
				break
			}
			old = q.size.LoadAcquire()
		}
	}

	node := &linkedNode[T]{data: *elem}
	prev := q.head.Swap(node)
	prev.next.Store(node)
	return nil
}

// Dequeue removes and returns an element from the queue.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
//
// Dequeue must only ever be called from a single goroutine at a time; the
// type provides no consumer-side synchronization of its own.
func (q *Linked[T]) Dequeue() (T, error) {
	next := q.tail.next.Load()
	if next == nil {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := next.data
	var zeroData T
	next.data = zeroData
	q.tail = next

	if q.maxSize > 0 {
		q.size.AddAcqRel(-1)
	}

	return elem, nil
}

// Empty reports whether the queue currently holds no elements.
func (q *Linked[T]) Empty() bool {
	return q.tail.next.Load() == nil
}

// Len returns the approximate number of queued elements. Always 0 for an
// unbounded queue (tracking an exact count would cost every producer a
// shared cache line for no operational benefit); for a bounded queue this
// mirrors the backpressure counter.
func (q *Linked[T]) Len() int {
	return int(q.size.LoadRelaxed())
}
