// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx

import "strconv"

// Response is produced by a handler and serialized onto the connection's
// socket by the server package.
type Response struct {
	Status  int
	Reason  string
	Headers Header
	Body    []byte
}

// OK builds a 200 response with the given body and content type, setting
// Content-Length and Content-Type.
func OK(body []byte, contentType string) Response {
	res := Response{Status: 200, Reason: "OK", Body: body}
	res.Headers.Add("Content-Length", strconv.Itoa(len(body)))
	res.Headers.Add("Content-Type", contentType)
	return res
}

// JSON builds a 200 response with Content-Type application/json.
func JSON(body []byte) Response {
	return OK(body, "application/json")
}

// Error builds a response from a [ProblemDetails]: the status and reason
// come from p, the body is p's problem+json encoding, and Content-Type is
// application/problem+json.
func Error(p ProblemDetails) Response {
	body := p.ToJSON()
	res := Response{Status: p.Status, Reason: p.Title, Body: body}
	res.Headers.Add("Content-Length", strconv.Itoa(len(body)))
	res.Headers.Add("Content-Type", "application/problem+json")
	return res
}

// Serialize renders r as a complete HTTP/1.1 response, including the
// status line, headers, blank line, and body.
func (r Response) Serialize() []byte {
	size := 32 + len(r.Reason) + len(r.Body)
	for _, f := range r.Headers {
		size += len(f.Name) + len(f.Value) + 4
	}

	buf := make([]byte, 0, size)
	buf = append(buf, "HTTP/1.1 "...)
	buf = strconv.AppendInt(buf, int64(r.Status), 10)
	buf = append(buf, ' ')
	buf = append(buf, r.Reason...)
	buf = append(buf, '\r', '\n')

	for _, f := range r.Headers {
		buf = append(buf, f.Name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, f.Value...)
		buf = append(buf, '\r', '\n')
	}

	buf = append(buf, '\r', '\n')
	buf = append(buf, r.Body...)
	return buf
}

// defaultChunkSize is the per-chunk payload size used by SerializeChunked
// when chunkSize is 0 or negative.
const defaultChunkSize = 8192

// SerializeChunked renders r as an HTTP/1.1 response using chunked
// transfer-encoding, splitting Body into chunks of at most chunkSize bytes.
// Any Content-Length header on r is dropped in favor of
// Transfer-Encoding: chunked.
func (r Response) SerializeChunked(chunkSize int) []byte {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	size := 64 + len(r.Reason) + len(r.Body) + 32
	for _, f := range r.Headers {
		if f.Name != "Content-Length" {
			size += len(f.Name) + len(f.Value) + 4
		}
	}

	buf := make([]byte, 0, size)
	buf = append(buf, "HTTP/1.1 "...)
	buf = strconv.AppendInt(buf, int64(r.Status), 10)
	buf = append(buf, ' ')
	buf = append(buf, r.Reason...)
	buf = append(buf, '\r', '\n')

	for _, f := range r.Headers {
		if f.Name == "Content-Length" {
			continue
		}
		buf = append(buf, f.Name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, f.Value...)
		buf = append(buf, '\r', '\n')
	}
	buf = append(buf, "Transfer-Encoding: chunked\r\n\r\n"...)

	for offset := 0; offset < len(r.Body); {
		n := chunkSize
		if remaining := len(r.Body) - offset; n > remaining {
			n = remaining
		}
		buf = strconv.AppendInt(buf, int64(n), 16)
		buf = append(buf, '\r', '\n')
		buf = append(buf, r.Body[offset:offset+n]...)
		buf = append(buf, '\r', '\n')
		offset += n
	}
	buf = append(buf, "0\r\n\r\n"...)
	return buf
}
