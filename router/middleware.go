// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import "code.hybscloud.com/katana/httpx"

// Handler answers one request. Its error return is distinct from routing
// errors ([ErrNotFound], [ErrMethodNotAllowed]): any non-nil error here is
// a handler failure, mapped to 500 by [MapDispatchError].
type Handler func(req *httpx.Request, ctx *RequestContext) (httpx.Response, error)

// Next invokes the remainder of a middleware chain: the next middleware,
// or the terminal handler once the chain is exhausted.
type Next func() (httpx.Response, error)

// Middleware wraps a request, deciding whether to call next (continuing
// the chain toward the handler) or return its own response directly
// (short-circuiting). A middleware that never calls next is equivalent to
// an explicit short-circuit.
type Middleware func(req *httpx.Request, ctx *RequestContext, next Next) (httpx.Response, error)

// runChain runs an ordered list of middleware ending in a terminal handler,
// via a recursive continuation: running index i calls middleware[i] with
// a Next that runs index i+1, bottoming out at the handler.
func runChain(mw []Middleware, handler Handler, req *httpx.Request, ctx *RequestContext) (httpx.Response, error) {
	if len(mw) == 0 {
		return handler(req, ctx)
	}

	var call func(index int) (httpx.Response, error)
	call = func(index int) (httpx.Response, error) {
		if index >= len(mw) {
			return handler(req, ctx)
		}
		return mw[index](req, ctx, func() (httpx.Response, error) {
			return call(index + 1)
		})
	}
	return call(0)
}
