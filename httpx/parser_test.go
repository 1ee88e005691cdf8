// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/katana/httpx"
)

func TestParserSimpleGetNoBody(t *testing.T) {
	p := httpx.NewParser()
	state, err := p.Parse([]byte("GET /foo HTTP/1.1\r\nHost: example.com\r\n\r\n"))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)

	req := p.Request()
	assert.Equal(t, httpx.MethodGet, req.Method)
	assert.Equal(t, "/foo", req.URI)
	assert.Equal(t, "HTTP/1.1", req.Version)
	host, ok := req.Headers.Get("Host")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
	assert.Empty(t, req.Body)
}

func TestParserFeedsInSegments(t *testing.T) {
	p := httpx.NewParser()

	state, err := p.Parse([]byte("GET / HTTP/1.1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, httpx.StateHeaders, state)

	state, err = p.Parse([]byte("Host: x\r\n"))
	require.NoError(t, err)
	assert.Equal(t, httpx.StateHeaders, state)

	state, err = p.Parse([]byte("\r\n"))
	require.NoError(t, err)
	assert.Equal(t, httpx.StateComplete, state)
}

func TestParserContentLengthBody(t *testing.T) {
	p := httpx.NewParser()
	raw := "POST /items HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"
	state, err := p.Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)
	assert.Equal(t, "hello", string(p.Request().Body))
}

func TestParserChunkedBody(t *testing.T) {
	p := httpx.NewParser()
	raw := "POST /items HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"
	state, err := p.Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)
	assert.Equal(t, "Wikipedia", string(p.Request().Body))
}

func TestParserChunkedPrecedenceOverContentLength(t *testing.T) {
	p := httpx.NewParser()
	raw := "POST / HTTP/1.1\r\nContent-Length: 999\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"3\r\nabc\r\n0\r\n\r\n"
	state, err := p.Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)
	assert.Equal(t, "abc", string(p.Request().Body))
}

func TestParserObsoleteLineFolding(t *testing.T) {
	p := httpx.NewParser()
	raw := "GET / HTTP/1.1\r\nX-Custom: first\r\n second\r\n\r\n"
	state, err := p.Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)

	v, ok := p.Request().Headers.Get("X-Custom")
	require.True(t, ok)
	assert.Equal(t, "first second", v)
}

func TestParserFoldWithNoPrecedingHeaderFails(t *testing.T) {
	p := httpx.NewParser()
	raw := "GET / HTTP/1.1\r\n folded\r\n\r\n"
	_, err := p.Parse([]byte(raw))
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrProtocol))
}

func TestParserRejectsBareLF(t *testing.T) {
	p := httpx.NewParser()
	_, err := p.Parse([]byte("GET / HTTP/1.1\nHost: x\r\n\r\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrProtocol))
}

func TestParserRejectsUnknownMethod(t *testing.T) {
	p := httpx.NewParser()
	_, err := p.Parse([]byte("FROB / HTTP/1.1\r\n\r\n"))
	require.Error(t, err)
}

func TestParserRejectsUnsupportedVersion(t *testing.T) {
	p := httpx.NewParser()
	_, err := p.Parse([]byte("GET / HTTP/1.0\r\n\r\n"))
	require.Error(t, err)
}

func TestParserRejectsOversizedURI(t *testing.T) {
	lim := httpx.DefaultLimits
	lim.MaxURILength = 8
	p := httpx.NewParser(lim)
	_, err := p.Parse([]byte("GET /this-uri-is-too-long HTTP/1.1\r\n\r\n"))
	require.Error(t, err)
}

func TestParserRejectsTooManyHeaders(t *testing.T) {
	lim := httpx.DefaultLimits
	lim.MaxHeaderCount = 2
	p := httpx.NewParser(lim)
	raw := "GET / HTTP/1.1\r\nA: 1\r\nB: 2\r\nC: 3\r\n\r\n"
	_, err := p.Parse([]byte(raw))
	require.Error(t, err)
}

func TestParserRejectsInvalidContentLength(t *testing.T) {
	p := httpx.NewParser()
	raw := "POST / HTTP/1.1\r\nContent-Length: notanumber\r\n\r\n"
	_, err := p.Parse([]byte(raw))
	require.Error(t, err)
}

func TestParserStallsOnIncompleteBody(t *testing.T) {
	p := httpx.NewParser()
	state, err := p.Parse([]byte("POST / HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc"))
	require.NoError(t, err)
	assert.Equal(t, httpx.StateBody, state)

	state, err = p.Parse([]byte("defghijk"))
	require.NoError(t, err)
	assert.Equal(t, httpx.StateComplete, state)
	assert.Equal(t, "abcdefghij", string(p.Request().Body))
}

func TestParserPipelinedRequestsInOneSegment(t *testing.T) {
	p := httpx.NewParser()
	raw := "GET / HTTP/1.1\r\nHost: a\r\n\r\nGET /x HTTP/1.1\r\nHost: a\r\n\r\n"

	state, err := p.Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)
	assert.Equal(t, "/", p.Request().URI)

	// the second request's bytes are already buffered; Reset keeps them
	p.Reset()
	state, err = p.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)
	assert.Equal(t, "/x", p.Request().URI)
}

func TestParserResetReusesForNextRequest(t *testing.T) {
	p := httpx.NewParser()
	state, err := p.Parse([]byte("GET /one HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)
	assert.Equal(t, "/one", p.Request().URI)

	p.Reset()
	state, err = p.Parse([]byte("GET /two HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)
	assert.Equal(t, "/two", p.Request().URI)
}

func TestParserCompactsBufferAcrossManyPipelinedRequests(t *testing.T) {
	p := httpx.NewParser()
	for i := 0; i < 200; i++ {
		state, err := p.Parse([]byte("GET /ping HTTP/1.1\r\nHost: x\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, httpx.StateComplete, state)
		assert.Equal(t, "/ping", p.Request().URI)
		p.Reset()
	}
}

func TestParserDuplicateHeadersPreserveMultimapOrder(t *testing.T) {
	p := httpx.NewParser()
	raw := "GET / HTTP/1.1\r\nX-Tag: a\r\nX-Tag: b\r\n\r\n"
	state, err := p.Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, httpx.StateComplete, state)

	values := p.Request().Headers.Values("X-Tag")
	require.Len(t, values, 2)
	assert.Equal(t, []string{"a", "b"}, values)

	first, ok := p.Request().Headers.Get("X-Tag")
	require.True(t, ok)
	assert.Equal(t, "a", first)
}

func TestParserRejectsOversizedChunk(t *testing.T) {
	lim := httpx.DefaultLimits
	lim.MaxBodySize = 4
	p := httpx.NewParser(lim)
	raw := "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n10\r\n" + strings.Repeat("x", 16) + "\r\n0\r\n\r\n"
	_, err := p.Parse([]byte(raw))
	require.Error(t, err)
}
