// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package server

import (
	"net"

	"golang.org/x/sys/unix"
)

// listen creates a non-blocking, listening TCP socket bound to addr
// ("host:port"). net.ResolveTCPAddr is used only to parse and resolve the
// address string; the socket itself is raw, so it never touches Go's
// runtime network poller.
func listen(addr string, backlog int) (int, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return -1, err
	}

	domain := unix.AF_INET
	sa := &unix.SockaddrInet4{Port: tcpAddr.Port}
	if ip4 := tcpAddr.IP.To4(); ip4 != nil {
		copy(sa.Addr[:], ip4)
	} else if ip6 := tcpAddr.IP.To16(); ip6 != nil {
		domain = unix.AF_INET6
		sa6 := &unix.SockaddrInet6{Port: tcpAddr.Port}
		copy(sa6.Addr[:], ip6)
		return listenWithSockaddr(domain, sa6, backlog)
	}
	return listenWithSockaddr(domain, sa, backlog)
}

func listenWithSockaddr(domain int, sa unix.Sockaddr, backlog int) (int, error) {
	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

// acceptOne accepts a single pending connection on listenFD, returning
// unix.EAGAIN (unwrapped) when the accept queue is drained.
func acceptOne(listenFD int) (int, error) {
	connFD, _, err := unix.Accept4(listenFD, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return -1, err
	}
	_ = unix.SetsockoptInt(connFD, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	return connFD, nil
}

func isAcceptWouldBlock(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

func readFD(fd int, buf []byte) (int, error) {
	return unix.Read(fd, buf)
}

func writeFD(fd int, buf []byte) (int, error) {
	return unix.Write(fd, buf)
}

func isWouldBlock(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

func closeFD(fd int) error {
	return unix.Close(fd)
}
