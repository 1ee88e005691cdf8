// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package reactor

import "testing"

func newSocketpair(t *testing.T) ([2]int, error) {
	t.Skip("socketpair-based reactor tests require Linux")
	return [2]int{}, nil
}

func closeAll(fds [2]int) {}

func writeAll(fd int, data []byte) (int, error) { return 0, nil }
