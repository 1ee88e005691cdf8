// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package reactor

import "golang.org/x/sys/unix"

// epollMultiplexer is the [Multiplexer] backend for Linux, the only
// platform this framework targets.
type epollMultiplexer struct {
	epfd int
	raw  []unix.EpollEvent // reused across Wait calls, no per-call allocation
}

// newEpollMultiplexer creates an epoll instance sized for up to maxEvents
// completions per [Multiplexer.Wait] call.
func newEpollMultiplexer(maxEvents int) (*epollMultiplexer, error) {
	if maxEvents < 1 {
		maxEvents = 1
	}
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollMultiplexer{epfd: fd, raw: make([]unix.EpollEvent, maxEvents)}, nil
}

func toEpollEvents(e EventType) uint32 {
	var out uint32
	if e.Has(EventReadable) {
		out |= unix.EPOLLIN
	}
	if e.Has(EventWritable) {
		out |= unix.EPOLLOUT
	}
	if e.Has(EventEdgeTriggered) {
		out |= unix.EPOLLET
	}
	if e.Has(EventOneshot) {
		out |= unix.EPOLLONESHOT
	}
	return out
}

func fromEpollEvents(e uint32) EventType {
	var out EventType
	if e&unix.EPOLLIN != 0 {
		out |= EventReadable
	}
	if e&unix.EPOLLOUT != 0 {
		out |= EventWritable
	}
	if e&unix.EPOLLERR != 0 {
		out |= EventError
	}
	if e&unix.EPOLLHUP != 0 {
		out |= EventHup
	}
	return out
}

func (m *epollMultiplexer) Add(fd int, events EventType) error {
	ev := unix.EpollEvent{Events: toEpollEvents(events), Fd: int32(fd)}
	return unix.EpollCtl(m.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (m *epollMultiplexer) Modify(fd int, events EventType) error {
	ev := unix.EpollEvent{Events: toEpollEvents(events), Fd: int32(fd)}
	return unix.EpollCtl(m.epfd, unix.EPOLL_CTL_MOD, fd, &ev)
}

func (m *epollMultiplexer) Remove(fd int) error {
	err := unix.EpollCtl(m.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == unix.ENOENT {
		return nil
	}
	return err
}

func (m *epollMultiplexer) Wait(timeoutMs int, out []ReadyEvent) (int, error) {
	n, err := unix.EpollWait(m.epfd, m.raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	limit := n
	if limit > len(out) {
		limit = len(out)
	}
	for i := 0; i < limit; i++ {
		out[i] = ReadyEvent{FD: int(m.raw[i].Fd), Events: fromEpollEvents(m.raw[i].Events)}
	}
	return limit, nil
}

func (m *epollMultiplexer) Close() error {
	return unix.Close(m.epfd)
}

// newWakeupFD creates a non-semaphore eventfd used to break the reactor's
// goroutine out of a blocking Wait call when a task is scheduled from
// another goroutine.
func newWakeupFD() (int, error) {
	return unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
}

func drainWakeupFD(fd int) {
	var buf [8]byte
	for {
		_, err := unix.Read(fd, buf[:])
		if err != nil {
			return
		}
	}
}

func signalWakeupFD(fd int) {
	var buf [8]byte
	buf[0] = 1
	_, _ = unix.Write(fd, buf[:])
}

func closeRawFD(fd int) {
	_ = unix.Close(fd)
}

func newMultiplexer(maxEvents int) (Multiplexer, error) {
	return newEpollMultiplexer(maxEvents)
}
