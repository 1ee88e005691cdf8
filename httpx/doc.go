// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package httpx implements a strict, resumable HTTP/1.1 request parser and
// the response/problem types a handler uses to answer it.
//
// [Parser] is a byte-stream state machine: request_line → headers →
// (body | chunk_size → chunk_data → … → chunk_trailer) → complete. Feed it
// arbitrary-sized segments with [Parser.Parse]; it appends to an internal
// buffer and advances as far as it can, returning the state it stalled in.
// A [Request] is only valid to read once Parse returns [StateComplete];
// call [Parser.Reset] to start the next pipelined request on the same
// connection.
//
// The parser enforces hard limits before doing any state work: URI length,
// header count, total header size, and body size all default to the values
// in [DefaultLimits]. Any violation — a limit breach, a malformed request
// line, an invalid header byte — is reported as [ErrProtocol]; the parser
// never panics on untrusted input.
//
// Responses are built with [OK], [JSON], or [Error] and turned into wire
// bytes with [Response.Serialize] or [Response.SerializeChunked]. [Error]
// takes a [ProblemDetails], Katana's RFC 7807 error body, constructed with
// one of [NotFound], [MethodNotAllowed], [InternalServerError], or
// [BadRequest].
package httpx
