// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package timer implements a single-level hashed timing wheel for a
// reactor's per-fd deadlines and deferred tasks.
//
// A Wheel is not safe for concurrent use: it is designed to be driven
// exclusively by the goroutine running the owning reactor's event loop,
// the same way the reactor owns fd registration records. Add, Cancel, and
// Tick must all be called from that single goroutine.
//
// # Sizing
//
// [New] takes numSlots and slotDuration directly so callers can pick the
// horizon/resolution tradeoff for their transport:
//
//	timer.New(512, 100*time.Millisecond) // epoll reactor: 51.2s horizon
//	timer.New(2048, 8*time.Millisecond)  // io_uring reactor: ~16.4s horizon, finer granularity
//
// A timeout longer than the wheel's horizon is never rejected: it rides
// the farthest slot each rotation, losing one tick per pass, until its
// tick count runs out and it fires — taking several rotations rather than
// one, not a single extra-long slot.
package timer
