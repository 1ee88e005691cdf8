// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides the two lock-free cross-goroutine hand-off
// primitives a single-threaded-per-core reactor needs to move work between
// cores without a mutex ever touching the hot path:
//
//   - [Ring]: a bounded queue that opportunistically runs a single-producer
//     single-consumer fast path and falls back to a CAS-based MPMC path the
//     moment concurrent access is observed on either end.
//   - [Linked]: an unbounded (or soft-bounded) multi-producer
//     single-consumer queue for fan-in workloads where a bounded queue's
//     backpressure is handled by the caller instead.
//
// # Quick Start
//
//	ring := queue.NewRing[Event](1024)
//	linked := queue.NewLinked[Task](0) // unbounded
//
// Enqueue and Dequeue are non-blocking on both types:
//
//	value := 42
//	if err := ring.Enqueue(&value); queue.IsWouldBlock(err) {
//	    // full — apply backpressure
//	}
//
//	elem, err := ring.Dequeue()
//	if queue.IsWouldBlock(err) {
//	    // empty — try again later
//	}
//
// # Choosing Between Ring and Linked
//
// Ring is the right default for per-core work queues between a reactor's
// I/O thread and a worker: fixed memory footprint, graceful backpressure via
// ErrWouldBlock. Linked fits fan-in from many goroutines into a single
// consumer where dropping work on backpressure is not acceptable — an
// accept loop handing finished requests to a single response writer, for
// instance — at the cost of one allocation per element.
//
// # Blocking Variants
//
// Ring additionally exposes EnqueueWait/DequeueWait, which spin with
// adaptive backoff (via [code.hybscloud.com/iox.Backoff]) until the
// operation succeeds or the supplied context is done. Prefer the
// non-blocking Enqueue/Dequeue on any hot path; EnqueueWait/DequeueWait are
// for callers that would otherwise busy-loop by hand.
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//	if err := ring.EnqueueWait(ctx, &value); err != nil {
//	    // ctx expired before the queue had room
//	}
//
// # Batching
//
// Ring.EnqueueBatch/DequeueBatch move several elements under a single CAS,
// amortizing contention for producers or consumers that naturally operate
// on slices (draining a socket's read buffer into parsed requests, for
// example). Batch operations always latch the MPMC path: fan-in/fan-out in
// bulk is assumed to mean real concurrency.
//
// # Error Handling
//
// Both types return [ErrWouldBlock] when an operation cannot proceed. This
// error is sourced from [code.hybscloud.com/iox] for ecosystem consistency.
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !queue.IsWouldBlock(err) {
//	        return err // unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// # Capacity
//
// Ring's capacity rounds up to the next power of 2, minimum 2:
//
//	queue.NewRing[int](3)    // actual capacity 4
//	queue.NewRing[int](1000) // actual capacity 1024
//
// Length is intentionally approximate on both types: an exact, linearizable
// count requires cross-core synchronization that every caller would
// otherwise pay for on the hot path.
//
// # Thread Safety
//
//   - Ring: any number of producer and consumer goroutines.
//   - Linked: any number of producer goroutines, exactly one consumer
//     goroutine at a time. Calling Dequeue from more than one goroutine
//     concurrently is undefined behavior.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) but cannot observe happens-before relationships
// established purely through atomic acquire-release orderings. Both queue
// types rely on sequence numbers and acquire-release atomics to protect
// non-atomic payload fields; they are correct, but the race detector may
// still flag false positives on the payload field itself. [RaceEnabled]
// reports whether the race detector is active, for tests that need to skip
// stress runs under it.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for atomics with explicit memory
// ordering, and [code.hybscloud.com/spin] for adaptive CPU-pause waiting.
package queue
