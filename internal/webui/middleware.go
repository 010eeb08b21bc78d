package webui

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alex65536/fenboard/internal/util/httputil"
	"github.com/alex65536/fenboard/internal/util/slogx"
)

type handlerKind int

const (
	kindPage handlerKind = iota
	kindAttach
	kindAPI
	kindStatic
	kindWebSocket
)

func (k handlerKind) String() string {
	switch k {
	case kindPage:
		return "page"
	case kindAttach:
		return "attach"
	case kindAPI:
		return "api"
	case kindStatic:
		return "static"
	case kindWebSocket:
		return "websocket"
	default:
		panic("must not happen")
	}
}

func writeHTTPErr(log *slog.Logger, w http.ResponseWriter, err error) {
	if err = httputil.WriteErrorResponse(err, w); err != nil {
		log.Info("error writing error response", slogx.Err(err))
	}
}

type middlewareBuilder struct {
	Log         *slog.Logger
	Prefix      string
	CSRFProtect func(http.Handler) http.Handler
	Compress    func(http.Handler) http.Handler
}

type middleware struct {
	b    *middlewareBuilder
	h    http.Handler
	kind handlerKind
}

func (m *middleware) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = httputil.AssignReqID(w, req)
	log := m.b.Log.With(
		slog.String("rid", httputil.ExtractReqID(req.Context())),
		slog.String("kind", m.kind.String()),
	)
	log.Info("handle request",
		slog.String("uri", req.RequestURI),
		slog.String("method", req.Method),
		slog.String("addr", req.RemoteAddr),
	)
	switch m.kind {
	case kindPage, kindAttach:
		if len(w.Header().Values("Cache-Control")) == 0 {
			w.Header().Set("Cache-Control", "max-age=0, private, must-revalidate")
		}
	case kindAPI:
		w.Header().Set("Cache-Control", "no-store")
	case kindStatic:
		w.Header().Set("Cache-Control", "max-age=86400, public")
	}
	start := time.Now()
	m.h.ServeHTTP(w, req)
	if m.kind != kindWebSocket {
		log.Debug("request done", slog.Duration("took", time.Since(start)))
	}
}

func (b *middlewareBuilder) wrap(h http.Handler, kind handlerKind) http.Handler {
	if kind == kindPage && b.CSRFProtect != nil {
		h = b.CSRFProtect(h)
	}
	h = &middleware{b: b, h: h, kind: kind}
	// Hijacked websocket connections cannot be compressed.
	if kind != kindWebSocket && b.Compress != nil {
		h = b.Compress(h)
	}
	return h
}

func (b *middlewareBuilder) WrapPage(h http.Handler) http.Handler {
	return b.wrap(h, kindPage)
}

func (b *middlewareBuilder) WrapAttach(h http.Handler) http.Handler {
	return b.wrap(h, kindAttach)
}

func (b *middlewareBuilder) WrapAPI(h http.Handler) http.Handler {
	return b.wrap(h, kindAPI)
}

func (b *middlewareBuilder) WrapStatic(h http.Handler) http.Handler {
	return b.wrap(h, kindStatic)
}

func (b *middlewareBuilder) WrapWebSocket(h http.Handler) http.Handler {
	return b.wrap(h, kindWebSocket)
}
