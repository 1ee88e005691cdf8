// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package reactor

import (
	"testing"

	"golang.org/x/sys/unix"
)

func newSocketpair(t *testing.T) ([2]int, error) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return [2]int{}, err
	}
	if err := unix.SetNonblock(fds[0], true); err != nil {
		return [2]int{}, err
	}
	if err := unix.SetNonblock(fds[1], true); err != nil {
		return [2]int{}, err
	}
	return [2]int{fds[0], fds[1]}, nil
}

func closeAll(fds [2]int) {
	_ = unix.Close(fds[0])
	_ = unix.Close(fds[1])
}

func writeAll(fd int, data []byte) (int, error) {
	return unix.Write(fd, data)
}
