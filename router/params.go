// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import "code.hybscloud.com/katana/arena"

// PathParams is a small, fixed-capacity, insertion-ordered map of path
// parameters bound during dispatch. It is backed by a bounded array rather
// than a Go map: a request has at most [MaxParams] of them, and avoiding a
// map keeps matching free of any per-request heap allocation beyond the
// parameter strings themselves (which are arena-backed, see
// [RequestContext]).
//
// On a duplicate name — [ParsePattern] does not reject a pattern that
// repeats a parameter name — the first binding wins; later adds for an
// existing name are ignored.
type PathParams struct {
	names  [MaxParams]string
	values [MaxParams]string
	size   int
}

// add binds name to value if name is not already bound and capacity
// remains; otherwise it is a silent no-op. First binding wins, overflow
// is dropped, never an error.
func (p *PathParams) add(name, value string) {
	for i := 0; i < p.size; i++ {
		if p.names[i] == name {
			return
		}
	}
	if p.size >= MaxParams {
		return
	}
	p.names[p.size] = name
	p.values[p.size] = value
	p.size++
}

// Get returns the value bound to name and whether it was found.
func (p *PathParams) Get(name string) (string, bool) {
	for i := 0; i < p.size; i++ {
		if p.names[i] == name {
			return p.values[i], true
		}
	}
	return "", false
}

// Len returns the number of bound parameters.
func (p *PathParams) Len() int { return p.size }

// reset clears p for reuse across requests sharing the same
// [RequestContext] storage.
func (p *PathParams) reset() {
	for i := 0; i < p.size; i++ {
		p.names[i] = ""
		p.values[i] = ""
	}
	p.size = 0
}

// RequestContext is handed to every handler and middleware: it carries the
// matched path parameters and a reference to the per-request arena the
// parser and handler allocate from. The arena must outlive the context.
type RequestContext struct {
	Arena  *arena.Arena
	Params PathParams
}

// Reset clears c's parameters for reuse with a new request on the same
// connection; it does not touch Arena, which the caller manages
// separately (typically by releasing and replacing it per request).
func (c *RequestContext) Reset() {
	c.Params.reset()
}
