package httputil

import (
	"context"
	"net/http"

	"github.com/alex65536/fenboard/internal/util/idgen"
)

const ReqIDHeader = "X-Request-Id"

const maxReqIDLen = 64

type reqIDKey struct{}

func WithReqID(parent context.Context, reqID string) context.Context {
	return context.WithValue(parent, reqIDKey{}, reqID)
}

func validReqID(s string) bool {
	if s == "" || len(s) > maxReqIDLen {
		return false
	}
	for i := range len(s) {
		c := s[i]
		ok := ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '-' || c == '_'
		if !ok {
			return false
		}
	}
	return true
}

// AssignReqID attaches a request id to the request context and echoes it in
// the response headers. A well-formed id coming from a proxy is kept,
// otherwise a fresh one is generated.
func AssignReqID(w http.ResponseWriter, req *http.Request) *http.Request {
	reqID := req.Header.Get(ReqIDHeader)
	if !validReqID(reqID) {
		reqID = idgen.ID()
	}
	w.Header().Set(ReqIDHeader, reqID)
	return req.WithContext(WithReqID(req.Context(), reqID))
}

func ExtractReqID(ctx context.Context) string {
	s, _ := ctx.Value(reqIDKey{}).(string)
	return s
}
