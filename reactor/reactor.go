// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import (
	"container/heap"
	"time"

	"go.uber.org/zap"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/katana/queue"
	"code.hybscloud.com/katana/timer"
)

const (
	// defaultMaxEvents bounds how many ready completions one Wait call can
	// report.
	defaultMaxEvents = 128
	// defaultMaxPending sizes both cross-goroutine submission rings.
	defaultMaxPending = 1 << 14
	// maxPollTimeout is the ceiling on how long a single Wait call blocks,
	// so a Stop() call from another goroutine is noticed promptly even
	// without a wakeup signal in flight.
	maxPollTimeout = 100 * time.Millisecond
	// wheelSlots/wheelSlotWidth size the fd-timeout wheel: 512*100ms gives
	// a ~51.2s single-rotation horizon. A backend with finer completion
	// granularity would want a tighter wheel (say 2048*8ms); override via
	// WithWheel.
	wheelSlots     = 512
	wheelSlotWidth = 100 * time.Millisecond
)

// Reactor is a single-threaded-per-core event loop: one goroutine runs
// [Reactor.Run], driving an epoll multiplexer, a wheel timer for fd
// deadlines, and a deadline-ordered heap for one-off scheduled tasks.
// Schedule, ScheduleAfter, Stop, GracefulStop, and Metrics may be called
// from any goroutine; the fd methods and SetExceptionHandler must be
// called before Run or from the run goroutine.
type Reactor struct {
	mux       Multiplexer
	wakeupFD  int
	maxEvents int
	readyBuf  []ReadyEvent

	fdStates map[int]*fdState

	wheel         *timer.Wheel
	lastWheelTick time.Time

	tasks taskHeap
	seq   uint64

	pendingTasks  *queue.Ring[Task]
	pendingTimers *queue.Ring[scheduledTask]

	running  atomix.Bool
	stopping atomix.Bool

	gracefulActive   atomix.Bool // deadline is written before the release-store
	gracefulDeadline time.Time

	exceptionHandler ExceptionHandler
	metrics          Metrics
	log              *zap.Logger
}

// Option configures a [Reactor] at construction.
type Option func(*reactorConfig)

type reactorConfig struct {
	maxEvents      int
	maxPending     int
	exceptionFn    ExceptionHandler
	logger         *zap.Logger
	wheelSlots     int
	wheelSlotWidth time.Duration
}

// WithMaxEvents bounds completions reported per multiplexer wait.
func WithMaxEvents(n int) Option {
	return func(c *reactorConfig) { c.maxEvents = n }
}

// WithMaxPending bounds the depth of the cross-goroutine task and timer
// submission rings.
func WithMaxPending(n int) Option {
	return func(c *reactorConfig) { c.maxPending = n }
}

// WithExceptionHandler installs the panic sink up front rather than via a
// later [Reactor.SetExceptionHandler] call.
func WithExceptionHandler(fn ExceptionHandler) Option {
	return func(c *reactorConfig) { c.exceptionFn = fn }
}

// WithLogger overrides the zap logger used for the default exception
// handler and lifecycle logging.
func WithLogger(log *zap.Logger) Option {
	return func(c *reactorConfig) { c.logger = log }
}

// WithWheel overrides the fd-timeout wheel's slot count and width.
func WithWheel(slots int, slotWidth time.Duration) Option {
	return func(c *reactorConfig) { c.wheelSlots = slots; c.wheelSlotWidth = slotWidth }
}

// New constructs a Reactor. It creates its epoll instance and wakeup fd
// immediately; call [Reactor.Run] to start the loop.
func New(opts ...Option) (*Reactor, error) {
	cfg := reactorConfig{
		maxEvents:      defaultMaxEvents,
		maxPending:     defaultMaxPending,
		wheelSlots:     wheelSlots,
		wheelSlotWidth: wheelSlotWidth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	mux, err := newMultiplexer(cfg.maxEvents)
	if err != nil {
		return nil, err
	}
	wakeupFD, err := newWakeupFD()
	if err != nil {
		_ = mux.Close()
		return nil, err
	}

	r := &Reactor{
		mux:           mux,
		wakeupFD:      wakeupFD,
		maxEvents:     cfg.maxEvents,
		readyBuf:      make([]ReadyEvent, cfg.maxEvents),
		fdStates:      make(map[int]*fdState),
		wheel:         timer.New(cfg.wheelSlots, cfg.wheelSlotWidth),
		lastWheelTick: time.Now(),
		pendingTasks:  queue.NewRing[Task](cfg.maxPending),
		pendingTimers: queue.NewRing[scheduledTask](cfg.maxPending),
		log:           cfg.logger,
	}
	r.exceptionHandler = cfg.exceptionFn
	if r.exceptionHandler == nil {
		r.exceptionHandler = r.defaultExceptionHandler
	}

	if err := mux.Add(wakeupFD, EventReadable|EventEdgeTriggered); err != nil {
		closeRawFD(wakeupFD)
		_ = mux.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reactor) defaultExceptionHandler(ctx ExceptionContext) {
	r.log.Error("reactor callback panic",
		zap.String("location", ctx.Location),
		zap.Int("fd", ctx.FD),
		zap.Any("recovered", ctx.Recovered),
	)
}

// SetExceptionHandler installs the sink that receives every panic
// recovered from a callback. Call it before Run or from the run goroutine.
func (r *Reactor) SetExceptionHandler(fn ExceptionHandler) {
	if fn == nil {
		fn = r.defaultExceptionHandler
	}
	r.exceptionHandler = fn
}

// Metrics returns the reactor's live counters.
func (r *Reactor) Metrics() *Metrics { return &r.metrics }

// RegisterFD registers fd for events with no timeout. callback runs on the
// run goroutine whenever fd becomes ready.
func (r *Reactor) RegisterFD(fd int, events EventType, callback Callback) error {
	return r.registerFD(fd, events, callback, TimeoutConfig{}, false)
}

// RegisterFDWithTimeout registers fd for events, additionally arming a
// deadline from config; refreshed by [Reactor.RefreshFDTimeout] and
// canceled by [Reactor.UnregisterFD].
func (r *Reactor) RegisterFDWithTimeout(fd int, events EventType, callback Callback, config TimeoutConfig) error {
	return r.registerFD(fd, events, callback, config, config.hasTimeout())
}

func (r *Reactor) registerFD(fd int, events EventType, callback Callback, config TimeoutConfig, withTimeout bool) error {
	if fd < 0 {
		return ErrInvalidFD
	}
	if _, exists := r.fdStates[fd]; exists {
		return ErrAlreadyRegistered
	}

	if err := r.mux.Add(fd, events); err != nil {
		return err
	}

	state := &fdState{fd: fd, events: events, callback: callback, timeouts: config, registered: true}
	if withTimeout {
		state.hasTimeout = true
		state.timerID = r.wheel.Add(config.effective(events), r.fdTimeoutCallback(fd))
	}
	r.fdStates[fd] = state
	return nil
}

// fdTimeoutCallback builds the wheel callback for fd's deadline: it fires
// the fd's current callback with EventError, then closes and forgets fd.
// The callback may register a different fd from its error path;
// re-registering the same fd number races the close and is unsupported.
func (r *Reactor) fdTimeoutCallback(fd int) timer.Callback {
	return func() {
		state, ok := r.fdStates[fd]
		if !ok {
			return
		}
		state.timerID = 0
		r.fireCallback(state, EventError)
		r.closeFD(state)
	}
}

// ModifyFD replaces fd's subscribed events.
func (r *Reactor) ModifyFD(fd int, events EventType) error {
	state, ok := r.fdStates[fd]
	if !ok {
		return ErrNotRegistered
	}
	if err := r.mux.Modify(fd, events); err != nil {
		return err
	}
	state.events = events
	return nil
}

// UnregisterFD cancels fd's timeout (if any) and removes it from the
// multiplexer. Once UnregisterFD returns, fd's callback is guaranteed not
// to be invoked again.
func (r *Reactor) UnregisterFD(fd int) error {
	state, ok := r.fdStates[fd]
	if !ok {
		return ErrNotRegistered
	}
	if state.hasTimeout && state.timerID != 0 {
		r.wheel.Cancel(state.timerID)
	}
	delete(r.fdStates, fd)
	return r.mux.Remove(fd)
}

// RefreshFDTimeout resets fd's deadline to now+configured. Call this on
// every observed activity for fd.
func (r *Reactor) RefreshFDTimeout(fd int) {
	state, ok := r.fdStates[fd]
	if !ok || !state.hasTimeout {
		return
	}
	if state.timerID != 0 {
		r.wheel.Cancel(state.timerID)
	}
	state.timerID = r.wheel.Add(state.timeouts.effective(state.events), r.fdTimeoutCallback(fd))
}

// Schedule enqueues task onto the bounded cross-goroutine ring and wakes
// the run goroutine. It returns false if the ring is saturated; the
// caller decides whether to drop, retry, or surface that as backpressure.
func (r *Reactor) Schedule(task Task) bool {
	if err := r.pendingTasks.Enqueue(&task); err != nil {
		r.metrics.TasksRejected.AddAcqRel(1)
		return false
	}
	r.metrics.TasksScheduled.AddAcqRel(1)
	signalWakeupFD(r.wakeupFD)
	return true
}

// ScheduleAfter enqueues task onto a separate pending-timer ring; the run
// goroutine merges it into its deadline heap on its next iteration.
func (r *Reactor) ScheduleAfter(delay time.Duration, task Task) bool {
	entry := scheduledTask{deadline: time.Now().Add(delay), task: task}
	if err := r.pendingTimers.Enqueue(&entry); err != nil {
		r.metrics.TasksRejected.AddAcqRel(1)
		return false
	}
	r.metrics.TasksScheduled.AddAcqRel(1)
	signalWakeupFD(r.wakeupFD)
	return true
}

// Stop signals the run loop to exit on its next iteration, without
// draining remaining fds.
func (r *Reactor) Stop() {
	r.stopping.StoreRelease(true)
	signalWakeupFD(r.wakeupFD)
}

// GracefulStop signals shutdown but lets the loop keep running until no
// fds remain registered or timeout elapses, whichever comes first; past
// the deadline every remaining fd is force-closed with [EventError].
// Call it at most once.
func (r *Reactor) GracefulStop(timeout time.Duration) {
	r.gracefulDeadline = time.Now().Add(timeout)
	r.gracefulActive.StoreRelease(true)
	signalWakeupFD(r.wakeupFD)
}

// Run drives the reactor until Stop, a graceful deadline, or a
// multiplexer failure. Only one goroutine may call Run, and it must not
// be called again after returning.
func (r *Reactor) Run() error {
	if r.running.CompareAndSwapAcqRel(false, true) == false {
		return ErrStopped
	}
	defer func() {
		closeRawFD(r.wakeupFD)
		_ = r.mux.Close()
	}()

	r.lastWheelTick = time.Now()
	for !r.stopping.LoadAcquire() {
		r.tickWheel()
		r.mergePendingTimers()
		r.fireDueTimers()
		r.drainTasks()

		if r.gracefulActive.LoadAcquire() {
			if len(r.fdStates) == 0 {
				break
			}
			if time.Now().After(r.gracefulDeadline) {
				r.forceCloseAll()
				break
			}
		}

		timeoutMs := r.nextTimeout()
		n, err := r.mux.Wait(timeoutMs, r.readyBuf)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			ev := r.readyBuf[i]
			if ev.FD == r.wakeupFD {
				drainWakeupFD(r.wakeupFD)
				continue
			}
			state, ok := r.fdStates[ev.FD]
			if !ok {
				continue
			}
			r.fireCallback(state, ev.Events)
			r.metrics.FDEventsProcessed.AddAcqRel(1)
		}
	}

	return nil
}

// fireCallback invokes state's callback guarded against panics: a single
// callback's failure is funneled to the exception handler and never stops
// the loop or leaves fd in a half-registered state.
func (r *Reactor) fireCallback(state *fdState, events EventType) {
	defer func() {
		if rec := recover(); rec != nil {
			r.metrics.ExceptionsCaught.AddAcqRel(1)
			r.exceptionHandler(ExceptionContext{Location: "fd_callback", Recovered: rec, FD: state.fd})
		}
	}()
	state.callback(events)
}

func (r *Reactor) runTask(task Task, location string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.metrics.ExceptionsCaught.AddAcqRel(1)
			r.exceptionHandler(ExceptionContext{Location: location, Recovered: rec, FD: -1})
		}
	}()
	task()
	r.metrics.TasksExecuted.AddAcqRel(1)
}

func (r *Reactor) tickWheel() {
	elapsed := time.Since(r.lastWheelTick)
	ticks := int(elapsed / r.wheel.SlotDuration())
	for i := 0; i < ticks; i++ {
		r.wheel.Tick()
	}
	// carry the sub-slot remainder instead of resetting to now, so slow
	// loop iterations don't stretch the wheel's effective slot width
	r.lastWheelTick = r.lastWheelTick.Add(time.Duration(ticks) * r.wheel.SlotDuration())
}

func (r *Reactor) mergePendingTimers() {
	for {
		entry, err := r.pendingTimers.Dequeue()
		if err != nil {
			return
		}
		entry.seq = r.seq
		r.seq++
		heap.Push(&r.tasks, entry)
	}
}

func (r *Reactor) fireDueTimers() {
	now := time.Now()
	for r.tasks.Len() > 0 && !r.tasks[0].deadline.After(now) {
		entry := heap.Pop(&r.tasks).(scheduledTask)
		r.runTask(entry.task, "delayed_task")
		r.metrics.TimersFired.AddAcqRel(1)
	}
}

func (r *Reactor) drainTasks() {
	for {
		task, err := r.pendingTasks.Dequeue()
		if err != nil {
			return
		}
		r.runTask(task, "scheduled_task")
	}
}

// closeFD erases fd's record, drops its multiplexer subscription, and
// closes the descriptor. A callback that already unregistered (and closed)
// the fd itself makes this a no-op, so the descriptor is never
// double-closed against a number the kernel may have reused.
func (r *Reactor) closeFD(state *fdState) {
	if _, ok := r.fdStates[state.fd]; !ok {
		return
	}
	delete(r.fdStates, state.fd)
	_ = r.mux.Remove(state.fd)
	closeRawFD(state.fd)
}

func (r *Reactor) forceCloseAll() {
	fds := make([]int, 0, len(r.fdStates))
	for fd := range r.fdStates {
		fds = append(fds, fd)
	}
	for _, fd := range fds {
		state, ok := r.fdStates[fd]
		if !ok {
			continue // an earlier callback unregistered it
		}
		r.fireCallback(state, EventError)
		if _, still := r.fdStates[fd]; !still {
			continue // the callback cleaned up after itself
		}
		if state.hasTimeout && state.timerID != 0 {
			r.wheel.Cancel(state.timerID)
		}
		delete(r.fdStates, fd)
		_ = r.mux.Remove(fd)
		closeRawFD(fd)
	}
}

// nextTimeout computes how long Wait should block: 0 if tasks are already
// pending, otherwise the nearest of the scheduled-task heap's head, the
// wheel's next expiration, the graceful deadline, and a hard ceiling so
// Stop is noticed promptly even with nothing else pending.
func (r *Reactor) nextTimeout() int {
	if !r.pendingTasks.Empty() {
		return 0
	}

	bound := maxPollTimeout

	if r.tasks.Len() > 0 {
		if d := time.Until(r.tasks[0].deadline); d < bound {
			bound = d
		}
	}
	if d, ok := r.wheel.TimeUntilNextExpiration(time.Now()); ok && d < bound {
		bound = d
	}
	if r.gracefulActive.LoadAcquire() {
		if d := time.Until(r.gracefulDeadline); d < bound {
			bound = d
		}
	}
	if bound < 0 {
		bound = 0
	}
	return int(bound / time.Millisecond)
}
