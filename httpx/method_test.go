// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx_test

import (
	"testing"

	"code.hybscloud.com/katana/httpx"
)

func TestParseMethodKnown(t *testing.T) {
	cases := map[string]httpx.Method{
		"GET":     httpx.MethodGet,
		"HEAD":    httpx.MethodHead,
		"POST":    httpx.MethodPost,
		"PUT":     httpx.MethodPut,
		"DELETE":  httpx.MethodDelete,
		"PATCH":   httpx.MethodPatch,
		"OPTIONS": httpx.MethodOptions,
	}
	for tok, want := range cases {
		if got := httpx.ParseMethod(tok); got != want {
			t.Errorf("ParseMethod(%q) = %v, want %v", tok, got, want)
		}
		if got := want.String(); got != tok {
			t.Errorf("%v.String() = %q, want %q", want, got, tok)
		}
	}
}

func TestParseMethodUnknown(t *testing.T) {
	if got := httpx.ParseMethod("TRACE"); got != httpx.MethodUnknown {
		t.Fatalf("got %v, want MethodUnknown", got)
	}
}

func TestMethodSetAllowCanonicalOrder(t *testing.T) {
	var s httpx.MethodSet
	s = s.Add(httpx.MethodPost).Add(httpx.MethodGet).Add(httpx.MethodOptions)

	got := s.Allow()
	want := "GET, POST, OPTIONS"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMethodSetHas(t *testing.T) {
	var s httpx.MethodSet
	s = s.Add(httpx.MethodGet)
	if !s.Has(httpx.MethodGet) {
		t.Fatal("expected MethodGet to be present")
	}
	if s.Has(httpx.MethodPost) {
		t.Fatal("expected MethodPost to be absent")
	}
}
