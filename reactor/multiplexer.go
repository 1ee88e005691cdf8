// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

// ReadyEvent is one completion reported by a [Multiplexer.Wait] call: the
// fd that became ready and which conditions fired.
type ReadyEvent struct {
	FD     int
	Events EventType
}

// Multiplexer is the kernel readiness backend a [Reactor] drives. The rest
// of the reactor is written against this interface only, so a second
// backend (io_uring, kqueue, …) can be dropped in without touching the
// scheduling, timer, or dispatch logic.
//
// Add/Modify/Remove are called only from the reactor's run goroutine, the
// same thread that calls Wait.
type Multiplexer interface {
	// Add registers fd for events.
	Add(fd int, events EventType) error
	// Modify replaces fd's subscribed events.
	Modify(fd int, events EventType) error
	// Remove unregisters fd. It is not an error if fd was never added.
	Remove(fd int) error
	// Wait blocks up to timeoutMs (0 returns immediately, negative blocks
	// indefinitely) and writes ready completions into out, returning how
	// many were written. out's capacity bounds how many completions a
	// single call can report.
	Wait(timeoutMs int, out []ReadyEvent) (int, error)
	// Close releases the backend's kernel resources.
	Close() error
}
