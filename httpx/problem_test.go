// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpx_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/katana/httpx"
)

func TestProblemDetailsToJSONFields(t *testing.T) {
	p := httpx.NotFound()
	out := string(p.ToJSON())

	for _, want := range []string{`"type":"about:blank"`, `"title":"Not Found"`, `"status":404`, `"detail":`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestProblemDetailsEscapesQuotesAndControls(t *testing.T) {
	p := httpx.BadRequest("field \"name\" is \trequired\n")
	out := string(p.ToJSON())

	if !strings.Contains(out, `\"name\"`) {
		t.Fatalf("expected escaped quotes in %q", out)
	}
	if !strings.Contains(out, `\t`) || !strings.Contains(out, `\n`) {
		t.Fatalf("expected escaped control chars in %q", out)
	}
}

func TestMethodNotAllowedStatus(t *testing.T) {
	p := httpx.MethodNotAllowed()
	if p.Status != 405 {
		t.Fatalf("got status %d, want 405", p.Status)
	}
}

func TestInternalServerErrorStatus(t *testing.T) {
	p := httpx.InternalServerError()
	if p.Status != 500 {
		t.Fatalf("got status %d, want 500", p.Status)
	}
}
