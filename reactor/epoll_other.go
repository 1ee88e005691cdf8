// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package reactor

import "errors"

// ErrUnsupportedPlatform is returned by New on any platform other than
// Linux: the reactor is built around epoll and has no portable fallback.
var ErrUnsupportedPlatform = errors.New("reactor: unsupported platform, Linux required")

func newMultiplexer(maxEvents int) (Multiplexer, error) {
	return nil, ErrUnsupportedPlatform
}

func newWakeupFD() (int, error) {
	return -1, ErrUnsupportedPlatform
}

func drainWakeupFD(fd int)  {}
func signalWakeupFD(fd int) {}
func closeRawFD(fd int)     {}
