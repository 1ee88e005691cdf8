// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// Ring is a bounded FIFO queue that starts on an opportunistic
// single-producer/single-consumer fast path and permanently falls back to a
// CAS-based multi-producer/multi-consumer path the moment real concurrency
// is observed on either side.
//
// Goroutines have no stable identity to key a thread-local "last producer"
// slot on, so the fast-path check cannot compare thread ids. Ring uses an
// exclusive-ownership token instead: Enqueue/Dequeue try to claim a one-bit owner
// flag with a single CompareAndSwap. An uncontended claim takes the fast
// path (a plain load/store pair on the slot, no retry loop); a failed claim
// latches multiProducerSeen/multiConsumerSeen so every following call goes
// straight to the CAS-retry MPMC path without paying the claim attempt
// again. The latch never resets: a workload that starts with overlap never
// gets to retry the fast path.
type Ring[T any] struct {
	_    pad
	tail atomix.Uint64 // producer index
	_    pad
	head atomix.Uint64 // consumer index
	_    pad
	buffer   []ringSlot[T]
	mask     uint64
	capacity uint64

	_                 pad
	producerOwned     atomix.Bool
	multiProducerSeen atomix.Bool
	_                 pad
	consumerOwned     atomix.Bool
	multiConsumerSeen atomix.Bool
}

type ringSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort
}

// RingOption configures a Ring at construction.
type RingOption func(*ringOptions)

type ringOptions struct {
	disableFastPath bool
}

// WithoutFastPath forces the CAS-based MPMC path from the start. Some
// workloads (for example, benchmarks that immediately fan out many
// producers) hit edge cases when the queue opportunistically probes for the
// fast path; this skips the probe entirely.
func WithoutFastPath() RingOption {
	return func(o *ringOptions) { o.disableFastPath = true }
}

// NewRing creates a bounded queue. Capacity rounds up to the next power of 2
// and is at least 2.
func NewRing[T any](capacity int, opts ...RingOption) *Ring[T] {
	var o ringOptions
	for _, opt := range opts {
		opt(&o)
	}

	n := uint64(roundToPow2(capacity))
	q := &Ring[T]{
		buffer:   make([]ringSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}
	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}
	if o.disableFastPath {
		q.multiProducerSeen.StoreRelaxed(true)
		q.multiConsumerSeen.StoreRelaxed(true)
	}
	return q
}

// Enqueue adds an element to the queue.
// Returns ErrWouldBlock if the queue is full.
func (q *Ring[T]) Enqueue(elem *T) error {
	if q.multiProducerSeen.LoadRelaxed() || q.multiConsumerSeen.LoadRelaxed() {
		return q.enqueueMPMC(elem)
	}

	if !q.producerOwned.CompareAndSwapAcqRel(false, true) {
		q.multiProducerSeen.StoreRelaxed(true)
		return q.enqueueMPMC(elem)
	}
	err := q.enqueueSPSC(elem)
	q.producerOwned.StoreRelease(false)
	return err
}

// Dequeue removes and returns an element from the queue.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Ring[T]) Dequeue() (T, error) {
	if q.multiProducerSeen.LoadRelaxed() || q.multiConsumerSeen.LoadRelaxed() {
		return q.dequeueMPMC()
	}

	if !q.consumerOwned.CompareAndSwapAcqRel(false, true) {
		q.multiConsumerSeen.StoreRelaxed(true)
		return q.dequeueMPMC()
	}
	elem, err := q.dequeueSPSC()
	q.consumerOwned.StoreRelease(false)
	return elem, err
}

func (q *Ring[T]) enqueueSPSC(elem *T) error {
	tail := q.tail.LoadRelaxed()
	slot := &q.buffer[tail&q.mask]
	if slot.seq.LoadAcquire() != tail {
		return ErrWouldBlock
	}
	slot.data = *elem
	slot.seq.StoreRelease(tail + 1)
	q.tail.StoreRelease(tail + 1)
	return nil
}

func (q *Ring[T]) dequeueSPSC() (T, error) {
	head := q.head.LoadRelaxed()
	slot := &q.buffer[head&q.mask]
	if slot.seq.LoadAcquire() != head+1 {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := slot.data
	var zero T
	slot.data = zero
	slot.seq.StoreRelease(head + q.capacity)
	q.head.StoreRelease(head + 1)
	return elem, nil
}

func (q *Ring[T]) enqueueMPMC(elem *T) error {
	sw := spin.Wait{}
	tail := q.tail.LoadAcquire()
	for {
		slot := &q.buffer[tail&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		if diff == 0 {
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = *elem
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		} else {
			tail = q.tail.LoadAcquire()
			sw = spin.Wait{}
		}
		sw.Once()
	}
}

func (q *Ring[T]) dequeueMPMC() (T, error) {
	sw := spin.Wait{}
	head := q.head.LoadAcquire()
	for {
		slot := &q.buffer[head&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		if diff == 0 {
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + q.mask + 1)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		} else {
			head = q.head.LoadAcquire()
			sw = spin.Wait{}
		}
		sw.Once()
	}
}

// EnqueueBatch adds as many of items as fit in one go, returning the count
// actually pushed. Always takes the CAS-based path: batches imply fan-in,
// so there is no fast-path benefit worth chasing.
func (q *Ring[T]) EnqueueBatch(items []T) int {
	count := uint64(len(items))
	if count == 0 {
		return 0
	}
	q.multiProducerSeen.StoreRelaxed(true)

	for {
		tail := q.tail.LoadRelaxed()
		head := q.head.LoadAcquire()
		available := q.capacity - (tail - head)
		toPush := count
		if available < toPush {
			toPush = available
		}
		if toPush == 0 {
			return 0
		}

		if q.tail.CompareAndSwapAcqRel(tail, tail+toPush) {
			for i := uint64(0); i < toPush; i++ {
				slot := &q.buffer[(tail+i)&q.mask]
				slot.data = items[i]
				slot.seq.StoreRelease(tail + i + 1)
			}
			return int(toPush)
		}
	}
}

// DequeueBatch pops up to len(out) elements, returning the count popped.
func (q *Ring[T]) DequeueBatch(out []T) int {
	maxCount := uint64(len(out))
	if maxCount == 0 {
		return 0
	}
	q.multiConsumerSeen.StoreRelaxed(true)

	for {
		head := q.head.LoadRelaxed()
		tail := q.tail.LoadAcquire()
		available := tail - head
		toPop := maxCount
		if available < toPop {
			toPop = available
		}
		if toPop == 0 {
			return 0
		}

		ready := uint64(0)
		for ; ready < toPop; ready++ {
			slot := &q.buffer[(head+ready)&q.mask]
			if slot.seq.LoadAcquire() != head+ready+1 {
				break
			}
		}
		if ready == 0 {
			continue
		}

		if q.head.CompareAndSwapAcqRel(head, head+ready) {
			for i := uint64(0); i < ready; i++ {
				slot := &q.buffer[(head+i)&q.mask]
				out[i] = slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + i + q.mask + 1)
			}
			return int(ready)
		}
	}
}

// EnqueueWait blocks, spinning with adaptive backoff, until elem is pushed
// or ctx is done.
func (q *Ring[T]) EnqueueWait(ctx context.Context, elem *T) error {
	backoff := iox.Backoff{}
	for {
		if err := q.Enqueue(elem); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		backoff.Wait()
	}
}

// DequeueWait blocks, spinning with adaptive backoff, until an element is
// popped or ctx is done.
func (q *Ring[T]) DequeueWait(ctx context.Context) (T, error) {
	backoff := iox.Backoff{}
	for {
		elem, err := q.Dequeue()
		if err == nil {
			return elem, nil
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		default:
		}
		backoff.Wait()
	}
}

// Empty reports whether the queue currently holds no elements.
func (q *Ring[T]) Empty() bool {
	return q.tail.LoadRelaxed() == q.head.LoadRelaxed()
}

// Len returns the approximate number of queued elements. Under concurrent
// access this is a snapshot, not a linearizable count.
func (q *Ring[T]) Len() int {
	return int(q.tail.LoadRelaxed() - q.head.LoadRelaxed())
}

// Cap returns the queue capacity (rounded up to a power of 2).
func (q *Ring[T]) Cap() int {
	return int(q.capacity)
}
