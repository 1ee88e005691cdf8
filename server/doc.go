// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package server wires a [reactor.Reactor], an [httpx.Parser] per
// connection, a [router.Router], and a per-request [arena.Arena] into a
// running HTTP/1.1 listener.
//
// The listening socket and every accepted connection are raw,
// non-blocking file descriptors registered directly with the reactor —
// this package does not use net.Listener or net.Conn, since Go's net
// package runs its own internal epoll-backed poller that would compete
// with the reactor's. Data flow per connection: the reactor's
// socket-readable callback feeds bytes to the parser; once the parser
// reaches [httpx.StateComplete], a fresh [arena.Arena] and
// [router.RequestContext] are built and the request is dispatched through
// the [router.Router]; the resulting [httpx.Response] is buffered and
// written at once, and whatever the socket does not accept is flushed from
// the socket-writable callback.
package server
