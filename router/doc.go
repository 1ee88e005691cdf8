// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package router matches a method and path against a fixed route table
// built once at startup, with path-parameter extraction, ordered
// middleware chaining, and HTTP-correct not-found / method-not-allowed
// resolution.
//
// A [Route] pairs a method and a [PathPattern] — a sequence of literal or
// "{name}" parameter segments, parsed and bounds-checked once by
// [ParsePattern] — with a [Handler] and an optional ordered [Middleware]
// chain. Build the table with [New] and dispatch with [Router.Dispatch] or
// [Router.DispatchWithInfo].
//
// Matching picks, among every route whose segment shape fits the request
// path, the one with the highest specificity score (more literal segments
// beats more parameters); ties go to declaration order. If some route's
// shape matches but none of them accept the request method, dispatch
// reports [ErrMethodNotAllowed] with the union of accepted methods; if no
// shape matches at all, it reports [ErrNotFound]. [MapDispatchError] turns
// either, or any handler error, into an RFC 7807 [httpx.Response].
//
// A matched route's parameters are written into the [RequestContext]'s
// [PathParams] in pattern order, first-wins on a duplicate name, alongside
// a reference to the per-request [arena.Arena] the parser and handler
// share.
package router
