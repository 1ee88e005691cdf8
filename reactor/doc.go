// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reactor implements Katana's single-threaded-per-core event loop:
// file-descriptor registration with per-fd timeouts, immediate and
// deferred task scheduling, and cooperative panic handling, backed by a
// [code.hybscloud.com/katana/timer.Wheel] for fd deadlines and a
// [code.hybscloud.com/katana/queue.Ring] for cross-thread submission.
//
// A [Reactor] owns exactly one kernel readiness multiplexer — epoll on
// Linux, the only supported platform — and runs on exactly one goroutine
// from [Reactor.Run] until [Reactor.Stop] or [Reactor.GracefulStop].
// [Reactor.Schedule], [Reactor.ScheduleAfter], [Reactor.Stop],
// [Reactor.GracefulStop], and [Reactor.Metrics] may be called from any
// goroutine; cross-goroutine calls hand off through the bounded ring
// queues. The fd methods ([Reactor.RegisterFD] and friends) and
// [Reactor.SetExceptionHandler] touch fd registrations and the timer
// wheel without locking, so they must be called before Run or from the
// run goroutine (a callback or a scheduled task).
//
// [Reactor.RegisterFD] and friends give a connection readable/writable
// callbacks with an optional [TimeoutConfig]; an idle, unread, or unwritten
// fd is force-closed once its deadline fires. A panic inside any callback
// is recovered at the loop boundary and funneled to the handler installed
// with [Reactor.SetExceptionHandler] — it never stops the loop or leaves a
// dangling registration.
package reactor
