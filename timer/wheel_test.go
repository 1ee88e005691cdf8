// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package timer_test

import (
	"testing"
	"time"

	"code.hybscloud.com/katana/timer"
)

func TestWheelAddFires(t *testing.T) {
	w := timer.New(512, 100*time.Millisecond)

	called := false
	id := w.Add(100*time.Millisecond, func() { called = true })
	if id == 0 {
		t.Fatal("Add returned reserved zero ID")
	}

	w.Tick()
	if called {
		t.Fatal("callback fired before its tick")
	}

	time.Sleep(120 * time.Millisecond)
	w.Tick()
	if !called {
		t.Fatal("callback did not fire")
	}
}

func TestWheelCancel(t *testing.T) {
	w := timer.New(512, 100*time.Millisecond)

	called := false
	id := w.Add(100*time.Millisecond, func() { called = true })

	if !w.Cancel(id) {
		t.Fatal("Cancel on pending entry returned false")
	}

	w.Tick()
	if called {
		t.Fatal("cancelled callback fired")
	}
}

func TestWheelCancelUnknownID(t *testing.T) {
	w := timer.New(512, 100*time.Millisecond)
	if w.Cancel(999) {
		t.Fatal("Cancel on unknown ID returned true")
	}
}

func TestWheelMultipleTimeoutsFireInOrder(t *testing.T) {
	w := timer.New(512, 100*time.Millisecond)

	var order []int
	w.Add(100*time.Millisecond, func() { order = append(order, 1) })
	w.Add(100*time.Millisecond, func() { order = append(order, 2) })
	w.Add(100*time.Millisecond, func() { order = append(order, 3) })

	w.Tick()
	if len(order) != 0 {
		t.Fatalf("fired early: %v", order)
	}

	time.Sleep(140 * time.Millisecond)
	w.Tick()
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", order)
	}
}

// A timeout that needs more ticks than the wheel has slots is clamped to
// the farthest slot on each pass; it still fires eventually, just after
// several rotations instead of one.
func TestWheelLongTimeoutSpansMultipleRotations(t *testing.T) {
	w := timer.New(4, 10*time.Millisecond)

	called := false
	w.Add(100*10*time.Millisecond, func() { called = true }) // 100 ticks, clamped to slot offset 3

	// the entry loses one tick each time its slot drains, which happens
	// once every 3 ticks at offset 3 — roughly 300 ticks to burn 100
	for i := 0; i < 40; i++ {
		w.Tick()
	}
	if called {
		t.Fatal("long timeout fired too early")
	}

	for i := 0; i < 400; i++ {
		w.Tick()
		if called {
			break
		}
	}
	if !called {
		t.Fatal("long timeout never fired")
	}
}

func TestWheelPendingCount(t *testing.T) {
	w := timer.New(16, time.Millisecond)

	if w.PendingCount() != 0 {
		t.Fatalf("PendingCount on empty wheel: got %d, want 0", w.PendingCount())
	}

	id1 := w.Add(5*time.Millisecond, func() {})
	w.Add(5*time.Millisecond, func() {})
	if w.PendingCount() != 2 {
		t.Fatalf("PendingCount: got %d, want 2", w.PendingCount())
	}

	w.Cancel(id1)
	if w.PendingCount() != 1 {
		t.Fatalf("PendingCount after cancel: got %d, want 1", w.PendingCount())
	}
}

func TestWheelTimeUntilNextExpirationNoDeadline(t *testing.T) {
	w := timer.New(16, time.Millisecond)
	if _, ok := w.TimeUntilNextExpiration(time.Now()); ok {
		t.Fatal("empty wheel reported a deadline")
	}
}

func TestWheelTimeUntilNextExpirationOverdue(t *testing.T) {
	w := timer.New(4, 10*time.Millisecond)
	w.Add(10*time.Millisecond, func() {})

	time.Sleep(15 * time.Millisecond)
	d, ok := w.TimeUntilNextExpiration(time.Now())
	if !ok || d != 0 {
		t.Fatalf("TimeUntilNextExpiration: got (%v, %v), want (0, true)", d, ok)
	}
}
