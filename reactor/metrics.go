// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import "code.hybscloud.com/atomix"

// Metrics counts reactor activity. TasksScheduled and TasksRejected are
// incremented from whatever goroutine calls Schedule/ScheduleAfter; the
// rest are touched only from the run goroutine. All fields use atomix so
// a concurrent Load is always well-defined.
type Metrics struct {
	TasksExecuted     atomix.Uint64
	TasksScheduled    atomix.Uint64
	TasksRejected     atomix.Uint64
	FDEventsProcessed atomix.Uint64
	ExceptionsCaught  atomix.Uint64
	TimersFired       atomix.Uint64
}

// Snapshot is a point-in-time copy of a [Metrics], safe to log or export
// without further synchronization.
type Snapshot struct {
	TasksExecuted     uint64
	TasksScheduled    uint64
	TasksRejected     uint64
	FDEventsProcessed uint64
	ExceptionsCaught  uint64
	TimersFired       uint64
}

// Load returns a consistent-enough snapshot of m for observability; it is
// not a single atomic transaction across fields.
func (m *Metrics) Load() Snapshot {
	return Snapshot{
		TasksExecuted:     m.TasksExecuted.LoadAcquire(),
		TasksScheduled:    m.TasksScheduled.LoadAcquire(),
		TasksRejected:     m.TasksRejected.LoadAcquire(),
		FDEventsProcessed: m.FDEventsProcessed.LoadAcquire(),
		ExceptionsCaught:  m.ExceptionsCaught.LoadAcquire(),
		TimersFired:       m.TimersFired.LoadAcquire(),
	}
}
