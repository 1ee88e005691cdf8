// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package server

import "errors"

// ErrUnsupportedPlatform is returned by this package's socket helpers on
// any platform other than Linux: the server is built directly on epoll and
// raw sockets. There [New] fails earlier, with the reactor package's own
// ErrUnsupportedPlatform.
var ErrUnsupportedPlatform = errors.New("server: unsupported platform, Linux required")

func listen(addr string, backlog int) (int, error)   { return -1, ErrUnsupportedPlatform }
func acceptOne(listenFD int) (int, error)             { return -1, ErrUnsupportedPlatform }
func isAcceptWouldBlock(err error) bool               { return false }
func readFD(fd int, buf []byte) (int, error)          { return 0, ErrUnsupportedPlatform }
func writeFD(fd int, buf []byte) (int, error)         { return 0, ErrUnsupportedPlatform }
func isWouldBlock(err error) bool                     { return false }
func closeFD(fd int) error                            { return ErrUnsupportedPlatform }
