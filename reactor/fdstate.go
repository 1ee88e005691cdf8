// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import "code.hybscloud.com/katana/timer"

// fdState is the registration record for one fd, touched only by the
// reactor's run goroutine.
type fdState struct {
	fd         int
	events     EventType
	callback   Callback
	timeouts   TimeoutConfig
	hasTimeout bool
	timerID    timer.ID // 0 when hasTimeout is false or no entry is live
	registered bool
}
