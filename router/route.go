// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import "code.hybscloud.com/katana/httpx"

// Route is one entry in a route table: a method and path pattern, the
// handler that answers a matching request, and an optional ordered
// middleware chain run before it.
type Route struct {
	Method     httpx.Method
	Pattern    PathPattern
	Handler    Handler
	Middleware []Middleware
}

// NewRoute builds a [Route], parsing pattern with [ParsePattern]. Build a
// route table with this once at startup; an invalid pattern is rejected
// here rather than surfacing as a runtime dispatch failure.
func NewRoute(method httpx.Method, pattern string, handler Handler, middleware ...Middleware) (Route, error) {
	pat, err := ParsePattern(pattern)
	if err != nil {
		return Route{}, err
	}
	return Route{Method: method, Pattern: pat, Handler: handler, Middleware: middleware}, nil
}

// MustNewRoute is [NewRoute] for a route table assembled from literals
// known up front: it panics instead of returning an error.
func MustNewRoute(method httpx.Method, pattern string, handler Handler, middleware ...Middleware) Route {
	r, err := NewRoute(method, pattern, handler, middleware...)
	if err != nil {
		panic(err)
	}
	return r
}
