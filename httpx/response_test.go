// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/katana/httpx"
)

func TestResponseOKSerialize(t *testing.T) {
	res := httpx.OK([]byte("hi"), "text/plain")
	out := string(res.Serialize())

	if !strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("unexpected status line: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 2\r\n") {
		t.Fatalf("missing Content-Length: %q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\nhi") {
		t.Fatalf("missing body: %q", out)
	}
}

func TestResponseJSON(t *testing.T) {
	res := httpx.JSON([]byte(`{"ok":true}`))
	out := string(res.Serialize())
	if !strings.Contains(out, "Content-Type: application/json\r\n") {
		t.Fatalf("missing content type: %q", out)
	}
}

func TestResponseSerializeChunked(t *testing.T) {
	res := httpx.OK([]byte("abcdefghij"), "text/plain")
	out := string(res.SerializeChunked(4))

	if !strings.Contains(out, "Transfer-Encoding: chunked\r\n\r\n") {
		t.Fatalf("missing chunked header: %q", out)
	}
	if strings.Contains(out, "Content-Length:") {
		t.Fatalf("Content-Length must be dropped for chunked responses: %q", out)
	}
	if !strings.HasSuffix(out, "0\r\n\r\n") {
		t.Fatalf("missing terminating chunk: %q", out)
	}
	if !strings.Contains(out, "4\r\nabcd\r\n") {
		t.Fatalf("missing first chunk: %q", out)
	}
}

func TestResponseErrorFromProblem(t *testing.T) {
	res := httpx.Error(httpx.NotFound())
	if res.Status != 404 {
		t.Fatalf("got status %d, want 404", res.Status)
	}
	out := string(res.Serialize())
	if !strings.Contains(out, "Content-Type: application/problem+json\r\n") {
		t.Fatalf("missing problem+json content type: %q", out)
	}
	if !strings.Contains(out, `"status":404`) {
		t.Fatalf("missing status field in body: %q", out)
	}
}
