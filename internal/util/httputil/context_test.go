package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssignReqID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	req = AssignReqID(w, req)
	id := ExtractReqID(req.Context())
	if id == "" {
		t.Fatalf("request id not assigned")
	}
	if got := w.Header().Get(ReqIDHeader); got != id {
		t.Fatalf("expected = %q, got = %q", id, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ReqIDHeader, "proxy-42")
	req = AssignReqID(httptest.NewRecorder(), req)
	if got := ExtractReqID(req.Context()); got != "proxy-42" {
		t.Fatalf("expected = %q, got = %q", "proxy-42", got)
	}

	for _, bad := range []string{"has space", "semi;colon", strings.Repeat("a", 65)} {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ReqIDHeader, bad)
		req = AssignReqID(httptest.NewRecorder(), req)
		if got := ExtractReqID(req.Context()); got == bad {
			t.Fatalf("malformed id %q must be replaced", bad)
		}
	}

	if got := ExtractReqID(t.Context()); got != "" {
		t.Fatalf("expected empty id, got = %q", got)
	}
}
