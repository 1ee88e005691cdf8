// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx_test

import (
	"testing"

	"code.hybscloud.com/katana/httpx"
)

func TestHeaderAddPreservesOrderAndDuplicates(t *testing.T) {
	var h httpx.Header
	h.Add("Set-Cookie", "a=1")
	h.Add("Set-Cookie", "b=2")

	values := h.Values("set-cookie")
	if len(values) != 2 || values[0] != "a=1" || values[1] != "b=2" {
		t.Fatalf("got %v, want [a=1 b=2]", values)
	}

	first, ok := h.Get("SET-COOKIE")
	if !ok || first != "a=1" {
		t.Fatalf("Get should return first match: got %q, %v", first, ok)
	}
}

func TestHeaderSetReplacesLastMatch(t *testing.T) {
	var h httpx.Header
	h.Add("X-A", "1")
	h.Add("X-B", "2")
	h.Add("X-A", "3")

	h.Set("x-a", "replaced")

	values := h.Values("X-A")
	if len(values) != 2 || values[0] != "1" || values[1] != "replaced" {
		t.Fatalf("Set should replace only the last match: got %v", values)
	}
}

func TestHeaderGetMissing(t *testing.T) {
	var h httpx.Header
	if _, ok := h.Get("Nope"); ok {
		t.Fatal("Get on empty header should report not found")
	}
}
