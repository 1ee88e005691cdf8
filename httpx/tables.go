// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx

// tokenChars flags the bytes legal in an RFC 7230 token: a header name must
// consist entirely of these.
var tokenChars = [256]bool{
	'!': true, '#': true, '$': true, '%': true, '&': true, '\'': true,
	'*': true, '+': true, '-': true, '.': true,
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true,
	'H': true, 'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true,
	'O': true, 'P': true, 'Q': true, 'R': true, 'S': true, 'T': true, 'U': true,
	'V': true, 'W': true, 'X': true, 'Y': true, 'Z': true,
	'^': true, '_': true, '`': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true,
	'h': true, 'i': true, 'j': true, 'k': true, 'l': true, 'm': true, 'n': true,
	'o': true, 'p': true, 'q': true, 'r': true, 's': true, 't': true, 'u': true,
	'v': true, 'w': true, 'x': true, 'y': true, 'z': true,
	'|': true, '~': true,
}

// invalidHeaderChars flags the bytes a header value must never contain:
// every control character except HT (0x09), plus DEL and every byte with
// the high bit set.
var invalidHeaderChars = func() [256]bool {
	var t [256]bool
	for c := 0; c < 256; c++ {
		if c < 0x20 && c != 0x09 {
			t[c] = true
		}
	}
	t[0x7f] = true
	for c := 0x80; c < 256; c++ {
		t[c] = true
	}
	return t
}()

func isTokenChar(c byte) bool { return tokenChars[c] }

func isCTL(c byte) bool { return c < 0x20 || c == 0x7f }

func containsInvalidHeaderValue(value []byte) bool {
	for _, c := range value {
		if invalidHeaderChars[c] {
			return true
		}
	}
	return false
}

func containsInvalidURIChar(uri []byte) bool {
	for _, c := range uri {
		if c == ' ' || c == '\r' || c == '\n' || isCTL(c) || c >= 0x80 {
			return true
		}
	}
	return false
}

func trimOWS(value []byte) []byte {
	for len(value) > 0 && (value[0] == ' ' || value[0] == '\t') {
		value = value[1:]
	}
	for len(value) > 0 && (value[len(value)-1] == ' ' || value[len(value)-1] == '\t') {
		value = value[:len(value)-1]
	}
	return value
}
