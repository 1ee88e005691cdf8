// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package arena provides a per-request bump allocator.
//
// An [Arena] grows by appending chunks (fixed-size pooled ones, or a single
// larger one for an allocation that does not fit) and hands out memory by
// bumping an offset into the current chunk — no per-allocation bookkeeping,
// no individual frees. The entire arena is released in one call, returning
// its chunks to a shared pool for reuse by the next request. This matches
// the lifetime of an HTTP request: headers, decoded path parameters, and
// any scratch buffers the handler needs all die together when the
// response is written.
//
//	a := arena.Get()
//	defer arena.Put(a)
//
//	method := arena.Bytes(a, rawMethod) // copies rawMethod into the arena
//	params := arena.Slice[PathParam](a, len(matched))
//
// Values returned by an [Arena] must not outlive it: Put resets the arena
// and recycles its backing chunks, so anything still referencing that
// memory will observe it overwritten by a later request.
package arena
