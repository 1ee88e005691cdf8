// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

// EventType is a bitmask of the readiness conditions a registration can
// subscribe to, or that a completed wait reports.
type EventType uint32

const (
	EventNone EventType = 0
	// EventReadable subscribes to / reports read readiness.
	EventReadable EventType = 1 << iota
	// EventWritable subscribes to / reports write readiness.
	EventWritable
	// EventEdgeTriggered requests edge- rather than level-triggered
	// notification.
	EventEdgeTriggered
	// EventError is reported (never subscribed to) on a socket error.
	EventError
	// EventHup is reported (never subscribed to) on peer hangup.
	EventHup
	// EventOneshot disarms the registration after one notification; the
	// callback must call [Reactor.ModifyFD] to re-arm it.
	EventOneshot
)

// Has reports whether flag is set in e.
func (e EventType) Has(flag EventType) bool { return e&flag != 0 }

// Callback handles a readiness notification for a registered fd. It runs
// on the reactor's run goroutine and must not block.
type Callback func(events EventType)

// Task is a unit of work submitted to a reactor via [Reactor.Schedule] or
// [Reactor.ScheduleAfter]. A func value boxes whatever it captures when
// the captures escape, so there is no inline-storage-vs-spillover
// distinction to manage; Task is a plain closure type.
type Task func()
