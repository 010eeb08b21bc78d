package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	err := fmt.Errorf("wrapped: %w", MakeError(http.StatusBadRequest, "bad fen"))
	if err := WriteErrorResponse(err, w); err != nil {
		t.Fatalf("write: %v", err)
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected = %v, got = %v", http.StatusBadRequest, w.Code)
	}
	if w.Body.String() != "bad fen" {
		t.Fatalf("expected = %q, got = %q", "bad fen", w.Body.String())
	}

	w = httptest.NewRecorder()
	if err := WriteErrorResponse(errors.New("boom"), w); err != nil {
		t.Fatalf("write: %v", err)
	}
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected = %v, got = %v", http.StatusInternalServerError, w.Code)
	}
}

func TestRedirectError(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteErrorResponse(MakeRedirectError(http.StatusSeeOther, "redirect", "/saved"), w); err != nil {
		t.Fatalf("write: %v", err)
	}
	if loc := w.Header().Get("Location"); loc != "/saved" {
		t.Fatalf("expected = %q, got = %q", "/saved", loc)
	}
	var httpErr *Error
	if !errors.As(MakeRedirectError(http.StatusNotFound, "x", "/y"), &httpErr) || httpErr.headers != nil {
		t.Fatalf("non-redirect codes must not carry a location")
	}
}

func TestErrorFromResponse(t *testing.T) {
	rsp := &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}
	if err := ErrorFromResponse(rsp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rsp = &http.Response{StatusCode: http.StatusTeapot, Body: io.NopCloser(strings.NewReader("short and stout"))}
	var httpErr *Error
	if err := ErrorFromResponse(rsp); !errors.As(err, &httpErr) || httpErr.Code() != http.StatusTeapot || httpErr.Message() != "short and stout" {
		t.Fatalf("bad error: %v", err)
	}
}
