// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import "time"

// TimeoutConfig bounds how long a registered fd may sit idle, unread, or
// unwritten before the reactor force-fires its callback with
// [EventError] and closes it.
type TimeoutConfig struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// minPositiveDuration is the floor [TimeoutConfig.effective] clamps to, so
// a zero or negative configured value never produces a busy-fire timer.
const minPositiveDuration = time.Millisecond

// effective computes the timeout actually applied to a registration: the
// minimum of Idle and whichever of Read/Write the subscription events
// include, clamped to at least one millisecond.
func (c TimeoutConfig) effective(events EventType) time.Duration {
	d := c.Idle
	if events.Has(EventReadable) && c.Read > 0 && (d <= 0 || c.Read < d) {
		d = c.Read
	}
	if events.Has(EventWritable) && c.Write > 0 && (d <= 0 || c.Write < d) {
		d = c.Write
	}
	if d < minPositiveDuration {
		d = minPositiveDuration
	}
	return d
}

// hasTimeout reports whether c configures any deadline at all.
func (c TimeoutConfig) hasTimeout() bool {
	return c.Read > 0 || c.Write > 0 || c.Idle > 0
}
