// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package timer

import "time"

// ID names a live wheel entry. The zero ID is reserved to mean "none";
// the internal id generator skips it on wraparound.
type ID uint64

// Callback runs when a timer entry expires. It executes on whatever
// goroutine calls [Wheel.Tick] — the reactor's event loop goroutine by
// convention — and must not block.
type Callback func()

type entry struct {
	id             ID
	cb             Callback
	remainingTicks int
}

// Wheel is a single-level hashed timing wheel with NUM_SLOTS slots of
// SLOT_MS width each, giving a maximum single-rotation horizon of
// NUM_SLOTS*SLOT_MS. It is not safe for concurrent use.
type Wheel struct {
	slots    [][]entry
	idToSlot map[ID]int
	numSlots int
	slotDur  time.Duration
	current  int
	nextID   ID
	lastTick time.Time
}

// New creates a wheel with numSlots slots of slotDuration each. numSlots
// must be at least 1; slotDuration must be positive.
func New(numSlots int, slotDuration time.Duration) *Wheel {
	if numSlots < 1 {
		numSlots = 1
	}
	if slotDuration <= 0 {
		slotDuration = time.Millisecond
	}
	return &Wheel{
		slots:    make([][]entry, numSlots),
		idToSlot: make(map[ID]int),
		numSlots: numSlots,
		slotDur:  slotDuration,
		nextID:   1,
		lastTick: time.Now(),
	}
}

// NumSlots returns the wheel's slot count.
func (w *Wheel) NumSlots() int { return w.numSlots }

// SlotDuration returns the wheel's per-slot width.
func (w *Wheel) SlotDuration() time.Duration { return w.slotDur }

// Add schedules cb to fire after timeout, returning an ID usable with
// Cancel. The entry's tick count is never clamped, only the slot offset
// used to place it: a timeout longer than the wheel's horizon rides the
// farthest slot of each rotation, losing one tick per pass, and fires once
// its tick count reaches zero after however many rotations that takes.
func (w *Wheel) Add(timeout time.Duration, cb Callback) ID {
	ticks := int((timeout + w.slotDur - 1) / w.slotDur)
	if ticks < 1 {
		ticks = 1
	}
	slotOffset := ticks
	if slotOffset > w.numSlots-1 {
		slotOffset = w.numSlots - 1
	}
	target := (w.current + slotOffset) % w.numSlots

	id := w.nextID
	w.nextID++
	if w.nextID == 0 {
		w.nextID = 1
	}

	w.slots[target] = append(w.slots[target], entry{id: id, cb: cb, remainingTicks: ticks})
	w.idToSlot[id] = target
	return id
}

// Cancel removes a pending entry. Returns whether it was found.
func (w *Wheel) Cancel(id ID) bool {
	slotIdx, ok := w.idToSlot[id]
	if !ok {
		return false
	}
	delete(w.idToSlot, id)

	bucket := w.slots[slotIdx]
	for i, e := range bucket {
		if e.id == id {
			w.slots[slotIdx] = append(bucket[:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}

// Tick drains the current slot: entries with one tick remaining fire their
// callback; the rest are decremented and re-bucketed into a later slot in
// the same rotation. The wheel then advances to the next slot. Callbacks
// fire in the order they were inserted into the slot.
func (w *Wheel) Tick() {
	current := w.slots[w.current]
	w.slots[w.current] = nil
	w.lastTick = time.Now()

	for _, e := range current {
		delete(w.idToSlot, e.id)

		if e.remainingTicks <= 1 {
			e.cb()
			continue
		}

		e.remainingTicks--
		slotOffset := e.remainingTicks
		if slotOffset > w.numSlots-1 {
			slotOffset = w.numSlots - 1
		}
		newSlot := (w.current + slotOffset) % w.numSlots
		w.idToSlot[e.id] = newSlot
		w.slots[newSlot] = append(w.slots[newSlot], e)
	}

	w.current = (w.current + 1) % w.numSlots
}

// PendingCount returns the number of entries still pending across all
// slots.
func (w *Wheel) PendingCount() int {
	count := 0
	for _, bucket := range w.slots {
		count += len(bucket)
	}
	return count
}

// TimeUntilNextExpiration reports how long until the next entry is due to
// fire, measured from now. ok is false when the wheel holds no pending
// entries. A zero duration means an entry is already overdue for a tick.
func (w *Wheel) TimeUntilNextExpiration(now time.Time) (d time.Duration, ok bool) {
	if len(w.idToSlot) == 0 {
		return 0, false
	}

	elapsed := now.Sub(w.lastTick)
	if elapsed >= w.slotDur {
		return 0, true
	}

	for k := 0; k < w.numSlots; k++ {
		slot := (w.current + k) % w.numSlots
		if len(w.slots[slot]) == 0 {
			continue
		}
		remaining := time.Duration(k)*w.slotDur - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return remaining, true
	}
	return 0, false
}
