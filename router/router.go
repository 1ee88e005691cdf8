// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"errors"
	"strings"

	"code.hybscloud.com/katana/httpx"
)

// Router dispatches a request against a fixed table of routes built once
// at startup with [New]. The zero value is not usable.
type Router struct {
	routes []Route
}

// New builds a Router from routes. The table is immutable after
// construction: there is no dynamic registration.
func New(routes ...Route) *Router {
	return &Router{routes: routes}
}

// DispatchInfo is the full result of a dispatch attempt: the response (or
// error) from running the matched route, plus enough bookkeeping for
// [MapDispatchError] to build a correct 404/405.
type DispatchInfo struct {
	Response       httpx.Response
	Err            error
	PathMatched    bool
	AllowedMethods httpx.MethodSet
}

// DispatchWithInfo matches req against the route table and, on a hit, runs
// its middleware chain and handler. Exactly one of {a route ran, Err is
// [ErrNotFound], Err is [ErrMethodNotAllowed]} holds.
//
// Matching: the URI's query and fragment are stripped, the path is split
// into segments, and every route whose method and segment shape both match
// is scored by [PathPattern.Specificity]; the highest score wins, ties
// going to declaration order. If some route's shape matched but none
// accepted the method, Err is [ErrMethodNotAllowed] and AllowedMethods
// holds the union of methods whose shape matched. If no shape matched at
// all, Err is [ErrNotFound].
func (r *Router) DispatchWithInfo(req *httpx.Request, ctx *RequestContext) DispatchInfo {
	path := stripQueryAndFragment(req.URI)
	parts, overflow := splitPath(path)
	if overflow {
		return DispatchInfo{Err: ErrNotFound}
	}

	var (
		best        *Route
		bestParams  PathParams
		bestScore   = -1
		pathMatched bool
		allowed     httpx.MethodSet
	)

	for i := range r.routes {
		route := &r.routes[i]
		var candidate PathParams
		if !route.Pattern.matchSegments(parts, &candidate) {
			continue
		}

		pathMatched = true
		allowed = allowed.Add(route.Method)
		if route.Method != req.Method {
			continue
		}

		if score := route.Pattern.Specificity(); best == nil || score > bestScore {
			best = route
			bestScore = score
			bestParams = candidate
		}
	}

	if best == nil {
		if pathMatched {
			return DispatchInfo{Err: ErrMethodNotAllowed, PathMatched: true, AllowedMethods: allowed}
		}
		return DispatchInfo{Err: ErrNotFound}
	}

	ctx.Params = bestParams
	resp, err := runChain(best.Middleware, best.Handler, req, ctx)
	return DispatchInfo{Response: resp, Err: err, PathMatched: true, AllowedMethods: allowed}
}

// Dispatch is [DispatchWithInfo] followed by [MapDispatchError]: the
// convenience entry point for a reactor that just wants a response to
// serialize.
func (r *Router) Dispatch(req *httpx.Request, ctx *RequestContext) httpx.Response {
	return MapDispatchError(r.DispatchWithInfo(req, ctx))
}

// stripQueryAndFragment cuts uri at its query string. It looks for '?'
// first and only falls back to '#' when no '?' is present, so a '#' that
// precedes a literal '?' in the raw URI is not treated as the cut point.
func stripQueryAndFragment(uri string) string {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		return uri[:i]
	}
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i]
	}
	return uri
}

// MapDispatchError turns a [DispatchInfo] into the response a reactor
// serializes: the route's own response on success, a 404/405 problem+json
// body for a routing miss (405 additionally carrying the Allow header),
// or a 500 for any other handler error.
func MapDispatchError(info DispatchInfo) httpx.Response {
	if info.Err == nil {
		return info.Response
	}

	switch {
	case errors.Is(info.Err, ErrNotFound):
		return httpx.Error(httpx.NotFound())
	case errors.Is(info.Err, ErrMethodNotAllowed):
		res := httpx.Error(httpx.MethodNotAllowed())
		if allow := info.AllowedMethods.Allow(); allow != "" {
			res.Headers.Set("Allow", allow)
		}
		return res
	default:
		return httpx.Error(httpx.InternalServerError())
	}
}
