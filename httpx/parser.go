// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx

import (
	"bytes"
	"strconv"
	"strings"
)

// State names where a [Parser] is in its request_line → headers →
// (body | chunked) → complete state machine.
type State int

const (
	StateRequestLine State = iota
	StateHeaders
	StateBody
	StateChunkSize
	StateChunkData
	StateChunkTrailer
	StateComplete
)

// Limits bounds the resources a single request may consume before parsing
// fails. The zero value is not usable; start from [DefaultLimits].
type Limits struct {
	MaxURILength   int
	MaxHeaderCount int
	MaxHeaderSize  int
	MaxBodySize    int
}

// DefaultLimits is the limit set applied when none is given: an 8 KiB URI,
// 100 headers, 8 KiB of total header bytes, and a 10 MiB body.
var DefaultLimits = Limits{
	MaxURILength:   8 * 1024,
	MaxHeaderCount: 100,
	MaxHeaderSize:  8 * 1024,
	MaxBodySize:    10 * 1024 * 1024,
}

// compactThreshold is the parse-position offset past which Parse compacts
// its internal buffer by discarding already-consumed bytes. Not pinned by
// any retrieved limits header; chosen as half of the default header size so
// compaction keeps pace with pipelined, small requests without running on
// every call.
const compactThreshold = 4096

// Parser is a resumable HTTP/1.1 request parser. It is not safe for
// concurrent use; one Parser belongs to one connection.
type Parser struct {
	limits Limits

	buf      []byte
	parsePos int
	state    State

	req Request

	contentLength    int
	isChunked        bool
	chunkedBody      []byte
	currentChunkSize int
	lastHeaderIdx    int
	headerCount      int
}

// NewParser creates a Parser. If limits is omitted, [DefaultLimits] is
// used.
func NewParser(limits ...Limits) *Parser {
	lim := DefaultLimits
	if len(limits) > 0 {
		lim = limits[0]
	}
	return &Parser{limits: lim, lastHeaderIdx: -1}
}

// Request returns the request being assembled. Its fields are only
// meaningful once Parse has returned [StateComplete].
func (p *Parser) Request() *Request { return &p.req }

// State returns the parser's current state.
func (p *Parser) State() State { return p.state }

// Reset prepares the parser for the next pipelined request on the same
// connection, preserving any bytes already buffered past the previous
// request's end.
func (p *Parser) Reset() {
	p.state = StateRequestLine
	p.req.reset()
	p.contentLength = 0
	p.isChunked = false
	p.chunkedBody = p.chunkedBody[:0]
	p.currentChunkSize = 0
	p.lastHeaderIdx = -1
	p.headerCount = 0
}

// Parse appends data to the parser's internal buffer and advances the
// state machine as far as it can. It returns the state the parser stalled
// in (more input needed) or [StateComplete]. Any hard-limit breach or
// malformed byte is reported as an error wrapping [ErrProtocol]; the
// parser does not resume after an error; construct a new one.
func (p *Parser) Parse(data []byte) (State, error) {
	maxSafe := p.limits.MaxHeaderSize + p.limits.MaxBodySize
	if len(data) > maxSafe || len(p.buf) > maxSafe-len(data) {
		return p.state, protocolError("buffer size exceeds limit")
	}

	if p.state == StateRequestLine || p.state == StateHeaders {
		bufLen := len(p.buf)
		for i, b := range data {
			if b == 0 || b >= 0x80 {
				return p.state, protocolError("invalid byte in request line or headers")
			}
			if b == '\n' {
				bufPos := bufLen + i
				var prev byte
				if bufPos == 0 {
					return p.state, protocolError("bare LF at start of input")
				}
				if bufPos-1 < bufLen {
					prev = p.buf[bufPos-1]
				} else {
					prev = data[i-1]
				}
				if prev != '\r' {
					return p.state, protocolError("bare LF without preceding CR")
				}
			}
		}
	}

	p.buf = append(p.buf, data...)

	if p.state != StateBody && p.state != StateChunkData {
		live := p.buf[p.parsePos:]
		if len(live) > p.limits.MaxHeaderSize {
			headerEnd := bytes.Index(live, []byte("\r\n\r\n"))
			if headerEnd == -1 || headerEnd+4 > p.limits.MaxHeaderSize {
				return p.state, protocolError("header section exceeds max header size")
			}
		}

		crlfPairs := 0
		for i := 0; i+1 < len(live); i++ {
			if live[i] == '\r' && live[i+1] == '\n' {
				crlfPairs++
			}
		}
		if crlfPairs > p.limits.MaxHeaderCount+2 {
			return p.state, protocolError("too many header lines")
		}
	} else if len(p.buf) > p.limits.MaxHeaderSize+p.limits.MaxBodySize {
		return p.state, protocolError("request exceeds max total size")
	}

	for p.state != StateComplete {
		oldPos := p.parsePos
		next, err := p.step()
		if err != nil {
			return p.state, err
		}
		p.state = next

		if p.parsePos == oldPos && p.state != StateComplete {
			p.maybeCompact()
			return p.state, nil
		}
	}

	p.maybeCompact()
	return p.state, nil
}

func (p *Parser) step() (State, error) {
	switch p.state {
	case StateRequestLine:
		return p.parseRequestLine()
	case StateHeaders:
		return p.parseHeaders()
	case StateBody:
		return p.parseBody()
	case StateChunkSize:
		return p.parseChunkSize()
	case StateChunkData:
		return p.parseChunkData()
	case StateChunkTrailer:
		return p.parseChunkTrailer()
	default:
		return p.state, nil
	}
}

// findCRLF returns the index of the '\r' in the first "\r\n" pair at or
// after start, or -1 if none is buffered yet.
func findCRLF(buf []byte, start int) int {
	for i := start; i+1 < len(buf); i++ {
		if buf[i] == '\r' && buf[i+1] == '\n' {
			return i
		}
	}
	return -1
}

func (p *Parser) parseRequestLine() (State, error) {
	pos := findCRLF(p.buf, p.parsePos)
	if pos == -1 {
		return StateRequestLine, nil
	}
	for i := p.parsePos; i <= pos; i++ {
		c := p.buf[i]
		if c == 0 || c >= 0x80 {
			return p.state, protocolError("invalid byte in request line")
		}
		if c == '\n' && (i == 0 || p.buf[i-1] != '\r') {
			return p.state, protocolError("bare LF in request line")
		}
	}

	line := p.buf[p.parsePos:pos]
	p.parsePos = pos + 2

	if err := p.processRequestLine(line); err != nil {
		return p.state, err
	}
	return StateHeaders, nil
}

func (p *Parser) processRequestLine(line []byte) error {
	if len(line) == 0 || line[0] == ' ' || line[0] == '\t' ||
		line[len(line)-1] == ' ' || line[len(line)-1] == '\t' {
		return protocolError("malformed request line")
	}

	methodEnd := bytes.IndexByte(line, ' ')
	if methodEnd == -1 {
		return protocolError("missing method separator")
	}
	method := ParseMethod(string(line[:methodEnd]))
	if method == MethodUnknown {
		return protocolError("unsupported method")
	}
	p.req.Method = method

	uriStart := methodEnd + 1
	uriEnd := bytes.IndexByte(line[uriStart:], ' ')
	if uriEnd == -1 {
		return protocolError("missing URI separator")
	}
	uriEnd += uriStart

	uri := line[uriStart:uriEnd]
	if len(uri) > p.limits.MaxURILength {
		return protocolError("URI exceeds max length")
	}
	if containsInvalidURIChar(uri) {
		return protocolError("invalid byte in URI")
	}
	p.req.URI = string(uri)

	version := line[uriEnd+1:]
	if string(version) != "HTTP/1.1" {
		return protocolError("unsupported HTTP version")
	}
	p.req.Version = "HTTP/1.1"
	return nil
}

func (p *Parser) parseHeaders() (State, error) {
	pos := findCRLF(p.buf, p.parsePos)
	if pos == -1 {
		return StateHeaders, nil
	}
	for i := p.parsePos; i <= pos; i++ {
		c := p.buf[i]
		if c == 0 || c >= 0x80 {
			return p.state, protocolError("invalid byte in header line")
		}
		if c == '\n' && (i == 0 || p.buf[i-1] != '\r') {
			return p.state, protocolError("bare LF in header line")
		}
	}

	line := p.buf[p.parsePos:pos]
	p.parsePos = pos + 2

	if len(line) == 0 {
		if te, ok := p.req.Headers.Get("Transfer-Encoding"); ok && strings.EqualFold(te, "chunked") {
			p.isChunked = true
			return StateChunkSize, nil
		}
		if cl, ok := p.req.Headers.Get("Content-Length"); ok {
			cl = strings.TrimRight(cl, " \t")
			val, err := strconv.ParseUint(cl, 10, 64)
			if err != nil || val > uint64(p.limits.MaxBodySize) {
				return p.state, protocolError("invalid Content-Length")
			}
			p.contentLength = int(val)
			return StateBody, nil
		}
		return StateComplete, nil
	}

	if line[0] == ' ' || line[0] == '\t' {
		if p.lastHeaderIdx < 0 {
			return p.state, protocolError("line folding with no preceding header")
		}
		folded := trimOWS(line)
		if containsInvalidHeaderValue(folded) {
			return p.state, protocolError("invalid byte in folded header value")
		}
		p.req.Headers[p.lastHeaderIdx].Value = p.req.Headers[p.lastHeaderIdx].Value + " " + string(folded)
		return StateHeaders, nil
	}

	if err := p.processHeaderLine(line); err != nil {
		return p.state, err
	}
	return StateHeaders, nil
}

func (p *Parser) processHeaderLine(line []byte) error {
	if p.headerCount >= p.limits.MaxHeaderCount {
		return protocolError("too many headers")
	}

	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return protocolError("header line missing colon")
	}
	name := line[:colon]
	value := line[colon+1:]

	if len(name) == 0 {
		return protocolError("empty header name")
	}
	for _, c := range name {
		if !isTokenChar(c) {
			return protocolError("invalid byte in header name")
		}
	}

	value = trimOWS(value)
	if containsInvalidHeaderValue(value) {
		return protocolError("invalid byte in header value")
	}

	p.req.Headers.Add(string(name), string(value))
	p.lastHeaderIdx = len(p.req.Headers) - 1
	p.headerCount++
	return nil
}

func (p *Parser) parseBody() (State, error) {
	remaining := len(p.buf) - p.parsePos
	if remaining >= p.contentLength {
		p.req.Body = append([]byte(nil), p.buf[p.parsePos:p.parsePos+p.contentLength]...)
		p.parsePos += p.contentLength
		return StateComplete, nil
	}
	return StateBody, nil
}

func (p *Parser) parseChunkSize() (State, error) {
	pos := findCRLF(p.buf, p.parsePos)
	if pos == -1 {
		return StateChunkSize, nil
	}

	chunkLine := p.buf[p.parsePos:pos]
	p.parsePos = pos + 2

	if semi := bytes.IndexByte(chunkLine, ';'); semi != -1 {
		chunkLine = chunkLine[:semi]
	}
	chunkLine = trimOWS(chunkLine)

	chunkVal, err := strconv.ParseUint(string(chunkLine), 16, 64)
	if err != nil {
		return p.state, protocolError("invalid chunk size")
	}
	if chunkVal > uint64(p.limits.MaxBodySize) {
		return p.state, protocolError("chunk size exceeds max body size")
	}
	p.currentChunkSize = int(chunkVal)

	if p.currentChunkSize == 0 {
		return StateChunkTrailer, nil
	}
	if len(p.chunkedBody) > p.limits.MaxBodySize-p.currentChunkSize {
		return p.state, protocolError("chunked body exceeds max body size")
	}
	return StateChunkData, nil
}

func (p *Parser) parseChunkData() (State, error) {
	remaining := len(p.buf) - p.parsePos
	if remaining >= p.currentChunkSize+2 {
		start := p.parsePos
		if p.buf[start+p.currentChunkSize] != '\r' || p.buf[start+p.currentChunkSize+1] != '\n' {
			return p.state, protocolError("chunk data missing trailing CRLF")
		}
		p.chunkedBody = append(p.chunkedBody, p.buf[start:start+p.currentChunkSize]...)
		p.parsePos += p.currentChunkSize + 2
		return StateChunkSize, nil
	}
	return StateChunkData, nil
}

func (p *Parser) parseChunkTrailer() (State, error) {
	pos := findCRLF(p.buf, p.parsePos)
	if pos == -1 {
		return StateChunkTrailer, nil
	}
	p.parsePos = pos + 2
	p.req.Body = append([]byte(nil), p.chunkedBody...)
	return StateComplete, nil
}

func (p *Parser) maybeCompact() {
	if p.parsePos > compactThreshold || len(p.buf) > p.limits.MaxHeaderSize*2 {
		p.compactBuffer()
	}
}

func (p *Parser) compactBuffer() {
	if p.parsePos >= len(p.buf) {
		p.buf = p.buf[:0]
		p.parsePos = 0
		return
	}
	if p.parsePos > compactThreshold/2 {
		n := copy(p.buf, p.buf[p.parsePos:])
		p.buf = p.buf[:n]
		p.parsePos = 0
	}
}
