// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx

import "strconv"

// ProblemDetails is Katana's RFC 7807 problem+json error body: a fixed,
// small set of fields, always serialized the same four-field shape. It is
// built with [NotFound], [MethodNotAllowed], [InternalServerError], or
// [BadRequest], and turned into a [Response] with [Error].
type ProblemDetails struct {
	Type   string
	Title  string
	Status int
	Detail string
}

// NotFound builds the 404 problem body used when no route's path shape
// matches.
func NotFound() ProblemDetails {
	return ProblemDetails{
		Type:   "about:blank",
		Title:  "Not Found",
		Status: 404,
		Detail: "the requested resource was not found",
	}
}

// MethodNotAllowed builds the 405 problem body used when a route's path
// shape matches but its method does not. The caller is responsible for
// attaching the Allow header separately (see [MethodSet.Allow]).
func MethodNotAllowed() ProblemDetails {
	return ProblemDetails{
		Type:   "about:blank",
		Title:  "Method Not Allowed",
		Status: 405,
		Detail: "the requested method is not allowed for this resource",
	}
}

// InternalServerError builds the 500 problem body used for any handler
// error that does not map to a more specific status.
func InternalServerError() ProblemDetails {
	return ProblemDetails{
		Type:   "about:blank",
		Title:  "Internal Server Error",
		Status: 500,
		Detail: "an unexpected error occurred",
	}
}

// BadRequest builds a 400 problem body with a caller-supplied detail
// message, typically a request-body validation failure surfaced by a
// generated handler.
func BadRequest(detail string) ProblemDetails {
	return ProblemDetails{
		Type:   "about:blank",
		Title:  "Bad Request",
		Status: 400,
		Detail: detail,
	}
}

// ToJSON renders p as a problem+json body. This is a fixed four-field
// shape, so it is built directly rather than through a general-purpose
// encoder: there is no schema evolution to support and no hot loop to
// amortize a decoder/encoder setup cost over.
func (p ProblemDetails) ToJSON() []byte {
	buf := make([]byte, 0, 96+len(p.Type)+len(p.Title)+len(p.Detail))
	buf = append(buf, `{"type":`...)
	buf = appendJSONString(buf, p.Type)
	buf = append(buf, `,"title":`...)
	buf = appendJSONString(buf, p.Title)
	buf = append(buf, `,"status":`...)
	buf = strconv.AppendInt(buf, int64(p.Status), 10)
	buf = append(buf, `,"detail":`...)
	buf = appendJSONString(buf, p.Detail)
	buf = append(buf, '}')
	return buf
}

// appendJSONString appends s to buf as a quoted JSON string, escaping the
// characters JSON requires (quote, backslash, and control characters).
func appendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			buf = append(buf, '\\', c)
		case c == '\n':
			buf = append(buf, '\\', 'n')
		case c == '\r':
			buf = append(buf, '\\', 'r')
		case c == '\t':
			buf = append(buf, '\\', 't')
		case c < 0x20:
			buf = append(buf, '\\', 'u', '0', '0', hexDigit(c>>4), hexDigit(c&0xf))
		default:
			buf = append(buf, c)
		}
	}
	return append(buf, '"')
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + n - 10
}
