// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx

import "errors"

// ErrProtocol is the sentinel all parse failures wrap. The parser reports a
// single generic protocol-level failure on any violation — a bad request
// line, an invalid header byte, a limit breach — rather than a taxonomy of
// error codes; callers that need the specific reason can read
// [ParseError.Reason] via errors.As.
var ErrProtocol = errors.New("httpx: malformed request")

// ParseError carries the specific reason a parse failed alongside
// [ErrProtocol], which errors.Is reports true for.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "httpx: " + e.Reason }

func (e *ParseError) Is(target error) bool { return target == ErrProtocol }

func protocolError(reason string) error {
	return &ParseError{Reason: reason}
}
