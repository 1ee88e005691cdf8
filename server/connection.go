// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"code.hybscloud.com/katana/arena"
	"code.hybscloud.com/katana/httpx"
	"code.hybscloud.com/katana/reactor"
	"code.hybscloud.com/katana/router"
)

// readBufSize is the chunk size read from a connection's socket per read
// call; a readable event reads until the socket would block.
const readBufSize = 16 * 1024

// connection is one accepted socket, owned entirely by the reactor's run
// goroutine: its parser, arena, and write buffer are touched only from fd
// callbacks.
type connection struct {
	fd     int
	server *Server
	parser *httpx.Parser

	writeBuf []byte
	writeOff int
	closing  bool
}

func newConnection(fd int, srv *Server) *connection {
	return &connection{
		fd:     fd,
		server: srv,
		parser: httpx.NewParser(srv.parserLimits),
	}
}

func (c *connection) onEvent(events reactor.EventType) {
	if events.Has(reactor.EventError) || events.Has(reactor.EventHup) {
		c.shutdown()
		return
	}
	if events.Has(reactor.EventReadable) {
		c.onReadable()
	}
	if !c.closing && events.Has(reactor.EventWritable) {
		c.onWritable()
	}
}

func (c *connection) onReadable() {
	var buf [readBufSize]byte
	for {
		n, err := readFD(c.fd, buf[:])
		if n > 0 {
			c.server.reactor.RefreshFDTimeout(c.fd)
			if perr := c.feed(buf[:n]); perr != nil {
				c.writeResponse(httpx.Error(httpx.BadRequest("malformed HTTP request")))
				c.shutdown()
				return
			}
		}
		if err != nil {
			if isWouldBlock(err) {
				return
			}
			c.shutdown()
			return
		}
		if n == 0 {
			c.shutdown()
			return
		}
	}
}

// feed advances the parser with newly read bytes, dispatching and
// buffering a response for every complete request the data yields —
// pipelined requests on the same connection are each handled in turn.
func (c *connection) feed(data []byte) error {
	for {
		state, err := c.parser.Parse(data)
		data = nil
		if err != nil {
			return err
		}
		if state != httpx.StateComplete {
			return nil
		}
		c.dispatch()
		c.parser.Reset()
	}
}

func (c *connection) dispatch() {
	a := arena.Get()
	defer arena.Put(a)

	req := c.parser.Request()
	ctx := &router.RequestContext{Arena: a}
	resp := c.server.router.Dispatch(req, ctx)
	c.writeResponse(resp)

	if connHeader, ok := req.Headers.Get("Connection"); ok && isClose(connHeader) {
		c.closing = true
	}
}

func isClose(value string) bool {
	return len(value) == 5 && (value == "close" || value == "Close" || value == "CLOSE")
}

func (c *connection) writeResponse(resp httpx.Response) {
	c.writeBuf = append(c.writeBuf, resp.Serialize()...)
	c.flush()
}

func (c *connection) flush() {
	for c.writeOff < len(c.writeBuf) {
		n, err := writeFD(c.fd, c.writeBuf[c.writeOff:])
		if n > 0 {
			c.writeOff += n
		}
		if err != nil {
			if isWouldBlock(err) {
				c.compactWriteBuf()
				_ = c.server.reactor.ModifyFD(c.fd, reactor.EventReadable|reactor.EventWritable)
				return
			}
			c.shutdown()
			return
		}
	}
	c.compactWriteBuf()
	if c.closing {
		c.shutdown()
		return
	}
	_ = c.server.reactor.ModifyFD(c.fd, reactor.EventReadable)
}

func (c *connection) compactWriteBuf() {
	if c.writeOff == 0 {
		return
	}
	c.writeBuf = c.writeBuf[:copy(c.writeBuf, c.writeBuf[c.writeOff:])]
	c.writeOff = 0
}

func (c *connection) onWritable() {
	c.flush()
}

func (c *connection) shutdown() {
	_ = c.server.reactor.UnregisterFD(c.fd)
	_ = closeFD(c.fd)
	c.server.forget(c.fd)
}
