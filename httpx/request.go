// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx

// Request is one fully parsed HTTP/1.1 request. Its URI is the raw
// request-target as received, not decoded or resolved against routes — that
// is the router's job. Request is only populated once the owning [Parser]
// reaches [StateComplete]; it is reset in place by [Parser.Reset] for the
// next pipelined request on the same connection.
type Request struct {
	Method  Method
	URI     string
	Version string
	Headers Header
	Body    []byte
}

func (r *Request) reset() {
	r.Method = MethodUnknown
	r.URI = ""
	r.Version = ""
	r.Headers = r.Headers[:0]
	r.Body = nil
}
