package webui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/alex65536/fenboard/internal/util/httputil"
	"github.com/alex65536/fenboard/internal/util/slogx"
)

const sessionName = "fenboard_session"

// viewState is the per-visitor board state kept in the session.
type viewState struct {
	Rotated bool
	FEN     string
}

type dataBuilder interface {
	Build(ctx context.Context, bc builderCtx) (any, error)
}

type page struct {
	name    string
	cfg     *Config
	log     *slog.Logger
	b       dataBuilder
	tmpl    *template.Template
	errTmpl *template.Template
}

type pageData struct {
	Data      any
	CSRFField template.HTML
}

type builderCtx struct {
	Log     *slog.Logger
	Config  *Config
	State   viewState
	Req     *http.Request
	session *sessions.Session
	writer  http.ResponseWriter
}

func loadViewState(session *sessions.Session) viewState {
	var st viewState
	if v, ok := session.Values["rotated"].(bool); ok {
		st.Rotated = v
	}
	if v, ok := session.Values["fen"].(string); ok {
		st.FEN = v
	}
	return st
}

// SaveState stores the board state into the session.
func (bc *builderCtx) SaveState(st viewState) {
	bc.State = st
	if bc.session == nil {
		return
	}
	bc.session.Values["rotated"] = st.Rotated
	bc.session.Values["fen"] = st.FEN
	if err := bc.session.Save(bc.Req, bc.writer); err != nil {
		bc.Log.Error("could not save session", slogx.Err(err))
	}
}

func (bc *builderCtx) Redirect(path string) error {
	return httputil.MakeRedirectError(http.StatusSeeOther, "redirect", bc.Config.prefix+path)
}

func (p *page) renderError(log *slog.Logger, w http.ResponseWriter, httpErr *httputil.Error) {
	if 300 <= httpErr.Code() && httpErr.Code() <= 399 {
		log.Info("send http redirect",
			slog.Int("code", httpErr.Code()),
			slog.String("msg", httpErr.Message()),
		)
		httpErr.ApplyHeaders(w)
		w.WriteHeader(httpErr.Code())
		return
	}

	log.Info("send http status error",
		slog.Int("code", httpErr.Code()),
		slog.String("msg", httpErr.Message()),
	)
	var b bytes.Buffer
	if err := p.errTmpl.Execute(&b, pageData{
		Data: struct {
			Code    int
			Message string
		}{
			Code:    httpErr.Code(),
			Message: httpErr.Message(),
		},
	}); err != nil {
		log.Error("error rendering page", slogx.Err(err))
		writeHTTPErr(log, w, fmt.Errorf("render page"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	httpErr.ApplyHeaders(w)
	w.WriteHeader(httpErr.Code())
	if _, err := w.Write(b.Bytes()); err != nil {
		log.Error("error writing page data", slogx.Err(err))
		return
	}
}

func (p *page) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := p.log.With(slog.String("rid", httputil.ExtractReqID(ctx)))
	log.Info("handle page request",
		slog.String("method", req.Method),
		slog.String("addr", req.RemoteAddr),
	)

	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		log.Warn("method not allowed")
		writeHTTPErr(log, w, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed"))
		return
	}

	bc := builderCtx{
		Log:    log,
		Config: p.cfg,
		Req:    req,
		writer: w,
	}
	session, err := p.cfg.sessionStore.Get(req, sessionName)
	if err != nil {
		// A broken cookie is not fatal, the visitor just starts over.
		log.Info("could not load session", slogx.Err(err))
	}
	if session != nil {
		bc.session = session
		bc.State = loadViewState(session)
	}

	data, err := p.b.Build(ctx, bc)
	if err != nil {
		if httpErr := (*httputil.Error)(nil); errors.As(err, &httpErr) {
			p.renderError(log, w, httpErr)
			return
		}
		log.Error("error building page data", slogx.Err(err))
		writeHTTPErr(log, w, fmt.Errorf("build page"))
		return
	}

	var b bytes.Buffer
	if err := p.tmpl.Execute(&b, pageData{
		Data:      data,
		CSRFField: csrf.TemplateField(req),
	}); err != nil {
		log.Error("error rendering page", slogx.Err(err))
		writeHTTPErr(log, w, fmt.Errorf("render page"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b.Bytes()); err != nil {
		log.Error("error writing page data", slogx.Err(err))
		return
	}
}

func newPage(
	log *slog.Logger,
	cfg *Config,
	templator *templator,
	builder dataBuilder,
	name string,
) (http.Handler, error) {
	tmpl, err := templator.Get(name)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	errTempl, err := templator.Get("error")
	if err != nil {
		return nil, fmt.Errorf("template \"error\": %w", err)
	}
	return &page{
		name:    name,
		cfg:     cfg,
		log:     log.With(slog.String("page", name)),
		b:       builder,
		tmpl:    tmpl,
		errTmpl: errTempl,
	}, nil
}

type notFoundDataBuilder struct{}

func (notFoundDataBuilder) Build(context.Context, builderCtx) (any, error) {
	return nil, httputil.MakeError(http.StatusNotFound, "page not found")
}

func notFoundPage(log *slog.Logger, cfg *Config, templ *templator) (http.Handler, error) {
	return newPage(log, cfg, templ, notFoundDataBuilder{}, "")
}
