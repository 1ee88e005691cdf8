// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/katana/router"
)

func TestParsePatternRoot(t *testing.T) {
	p, err := router.ParsePattern("/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Specificity() != router.MaxSegments {
		t.Fatalf("root pattern should have zero literals/params, got specificity %d", p.Specificity())
	}
}

func TestParsePatternLiteralAndParam(t *testing.T) {
	p, err := router.ParsePattern("/users/{id}/posts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// two literals ("users", "posts") + one param: 2*16 + (16-1) = 47
	if got, want := p.Specificity(), 2*16+(router.MaxSegments-1); got != want {
		t.Fatalf("specificity = %d, want %d", got, want)
	}
}

func TestParsePatternRejectsEmpty(t *testing.T) {
	if _, err := router.ParsePattern(""); err == nil {
		t.Fatal("expected error for empty pattern")
	}
}

func TestParsePatternRejectsMissingLeadingSlash(t *testing.T) {
	if _, err := router.ParsePattern("users/{id}"); err == nil {
		t.Fatal("expected error for pattern missing leading slash")
	}
}

func TestParsePatternRejectsEmptySegment(t *testing.T) {
	if _, err := router.ParsePattern("/users//{id}"); err == nil {
		t.Fatal("expected error for empty segment")
	}
}

func TestParsePatternRejectsMalformedParam(t *testing.T) {
	cases := []string{"/users/{id", "/users/{}"}
	for _, c := range cases {
		if _, err := router.ParsePattern(c); err == nil {
			t.Fatalf("expected error for malformed pattern %q", c)
		}
	}
}

func TestParsePatternRejectsTooManySegments(t *testing.T) {
	var b strings.Builder
	for i := 0; i < router.MaxSegments+1; i++ {
		b.WriteString("/a")
	}
	if _, err := router.ParsePattern(b.String()); err == nil {
		t.Fatal("expected error for too many segments")
	}
}

func TestMustParsePatternPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid pattern")
		}
	}()
	router.MustParsePattern("no-leading-slash")
}
