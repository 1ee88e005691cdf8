// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/katana/queue"
)

func TestRingBasic(t *testing.T) {
	q := queue.NewRing[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

func TestRingFIFOOrderSingleProducerConsumer(t *testing.T) {
	q := queue.NewRing[int](16)
	for i := range 10 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	for i := range 10 {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, got, i)
		}
	}
}

func TestRingLatchesToMPMCUnderConcurrency(t *testing.T) {
	q := queue.NewRing[int](2048)

	var wg sync.WaitGroup
	const producers = 8
	const perProducer = 200
	wg.Add(producers)
	for p := range producers {
		go func(base int) {
			defer wg.Done()
			for i := range perProducer {
				v := base*perProducer + i
				for q.Enqueue(&v) != nil {
					// backpressure, retry
				}
			}
		}(p)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for range producers * perProducer {
		v, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		if seen[v] {
			t.Fatalf("duplicate value %d", v)
		}
		seen[v] = true
	}
	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on drained queue: got %v, want ErrWouldBlock", err)
	}
}

func TestRingWithoutFastPath(t *testing.T) {
	q := queue.NewRing[int](4, queue.WithoutFastPath())
	v := 1
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	got, err := q.Dequeue()
	if err != nil || got != 1 {
		t.Fatalf("Dequeue: got (%d, %v), want (1, nil)", got, err)
	}
}

func TestRingBatch(t *testing.T) {
	q := queue.NewRing[int](8)

	items := []int{1, 2, 3, 4, 5}
	n := q.EnqueueBatch(items)
	if n != 5 {
		t.Fatalf("EnqueueBatch: got %d, want 5", n)
	}

	out := make([]int, 3)
	n = q.DequeueBatch(out)
	if n != 3 {
		t.Fatalf("DequeueBatch: got %d, want 3", n)
	}
	for i, v := range out {
		if v != i+1 {
			t.Fatalf("DequeueBatch[%d]: got %d, want %d", i, v, i+1)
		}
	}

	out2 := make([]int, 4)
	n = q.DequeueBatch(out2)
	if n != 2 {
		t.Fatalf("DequeueBatch remaining: got %d, want 2", n)
	}
}

func TestRingEnqueueWaitDequeueWait(t *testing.T) {
	q := queue.NewRing[int](2)

	for i := 0; i < q.Cap(); i++ {
		v := i + 1
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	second := 2
	if err := q.EnqueueWait(ctx, &second); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("EnqueueWait on full queue: got %v, want DeadlineExceeded", err)
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		if _, err := q.DequeueWait(context.Background()); err != nil {
			t.Errorf("background DequeueWait: %v", err)
		}
	}()

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	if err := q.EnqueueWait(ctx2, &second); err != nil {
		t.Fatalf("EnqueueWait: %v", err)
	}
}

func TestRingEmptyLen(t *testing.T) {
	q := queue.NewRing[int](4)
	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}
	v := 1
	_ = q.Enqueue(&v)
	if q.Empty() {
		t.Fatal("queue should not be empty after Enqueue")
	}
	if q.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", q.Len())
	}
}
