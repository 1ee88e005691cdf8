// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import (
	"container/heap"
	"time"
)

// scheduledTask is one entry in the reactor's deadline-ordered task heap,
// fed by ScheduleAfter. This is a separate mechanism from the fd-timeout
// wheel: the wheel buckets fd deadlines into coarse slots, while this heap
// gives exact deadline ordering for one-off deferred work.
type scheduledTask struct {
	deadline time.Time
	seq      uint64 // tie-break: submission order for equal deadlines
	task     Task
}

type taskHeap []scheduledTask

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(scheduledTask))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

var _ heap.Interface = (*taskHeap)(nil)
