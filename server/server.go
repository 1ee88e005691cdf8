// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"time"

	"code.hybscloud.com/katana/httpx"
	"code.hybscloud.com/katana/reactor"
	"code.hybscloud.com/katana/router"
)

// defaultBacklog is the listen(2) backlog depth used when Config.Backlog
// is left at zero.
const defaultBacklog = 1024

// Config configures a [Server]. The zero value is not usable; build one
// from [DefaultConfig].
type Config struct {
	Addr         string
	Backlog      int
	ParserLimits httpx.Limits
	Timeouts     reactor.TimeoutConfig
	ReactorOpts  []reactor.Option
}

// DefaultConfig returns a Config listening on addr with Katana's default
// parser limits and a 30s idle timeout.
func DefaultConfig(addr string) Config {
	return Config{
		Addr:         addr,
		Backlog:      defaultBacklog,
		ParserLimits: httpx.DefaultLimits,
		Timeouts:     reactor.TimeoutConfig{Idle: 30 * time.Second},
	}
}

// Server is one reactor-bound HTTP/1.1 listener. It serves exactly one
// reactor goroutine; run several Servers, one per core, to scale across
// cores, each with its own listening socket bound via SO_REUSEPORT-style
// external load distribution. This package does not itself implement
// multi-process fan-out.
type Server struct {
	reactor *reactor.Reactor
	router  *router.Router

	listenFD     int
	parserLimits httpx.Limits
	timeouts     reactor.TimeoutConfig

	conns map[int]*connection
}

// New builds a Server bound to cfg.Addr and dispatching through rtr. The
// listening socket is created and registered, but nothing runs until
// [Server.Run] is called.
func New(cfg Config, rtr *router.Router) (*Server, error) {
	r, err := reactor.New(cfg.ReactorOpts...)
	if err != nil {
		return nil, err
	}

	backlog := cfg.Backlog
	if backlog <= 0 {
		backlog = defaultBacklog
	}
	listenFD, err := listen(cfg.Addr, backlog)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		reactor:      r,
		router:       rtr,
		listenFD:     listenFD,
		parserLimits: cfg.ParserLimits,
		timeouts:     cfg.Timeouts,
		conns:        make(map[int]*connection),
	}

	if err := r.RegisterFD(listenFD, reactor.EventReadable, func(reactor.EventType) {
		srv.acceptLoop()
	}); err != nil {
		_ = closeFD(listenFD)
		return nil, err
	}

	return srv, nil
}

// acceptLoop drains every connection currently queued on the listening
// socket, registering each with the reactor, until accept would block.
func (s *Server) acceptLoop() {
	for {
		fd, err := acceptOne(s.listenFD)
		if err != nil {
			if isAcceptWouldBlock(err) {
				return
			}
			return
		}

		conn := newConnection(fd, s)
		s.conns[fd] = conn

		registerErr := s.reactor.RegisterFDWithTimeout(fd, reactor.EventReadable, conn.onEvent, s.timeouts)
		if registerErr != nil {
			delete(s.conns, fd)
			_ = closeFD(fd)
		}
	}
}

func (s *Server) forget(fd int) {
	delete(s.conns, fd)
}

// Run blocks, driving the reactor until [Server.Stop] or
// [Server.GracefulStop] is acted on.
func (s *Server) Run() error {
	return s.reactor.Run()
}

// Stop requests immediate shutdown on the reactor's next loop iteration.
func (s *Server) Stop() {
	s.reactor.Stop()
}

// GracefulStop requests shutdown once every connection has drained, or
// forces closure of whatever remains once timeout elapses.
func (s *Server) GracefulStop(timeout time.Duration) {
	// stop accepting first: a still-registered listening socket would keep
	// the reactor from ever seeing zero registered fds
	s.reactor.Schedule(func() {
		if s.reactor.UnregisterFD(s.listenFD) == nil {
			_ = closeFD(s.listenFD)
		}
	})
	s.reactor.GracefulStop(timeout)
}

// Metrics returns the underlying reactor's live counters.
func (s *Server) Metrics() *reactor.Metrics {
	return s.reactor.Metrics()
}
