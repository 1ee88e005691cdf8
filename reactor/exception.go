// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

// ExceptionContext describes a panic recovered from a user callback: where
// it happened, what was recovered, and which fd (if any) was involved.
type ExceptionContext struct {
	Location string
	Recovered any
	FD        int // -1 if not associated with an fd
}

// ExceptionHandler receives every panic recovered from a callback running
// on the reactor's loop. The default handler, installed by [New], logs via
// zap and otherwise does nothing; install a custom one with
// [Reactor.SetExceptionHandler].
type ExceptionHandler func(ExceptionContext)
