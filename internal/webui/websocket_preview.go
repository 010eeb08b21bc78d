package webui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/util/httputil"
	"github.com/alex65536/fenboard/internal/util/slogx"
	"github.com/alex65536/fenboard/internal/util/websockutil"
)

type previewWebSocketSession struct {
	req    *http.Request
	log    *slog.Logger
	cfg    *Config
	tmpl   *template.Template
	s      *websockutil.Session
	recvCh chan []byte
}

func (s *previewWebSocketSession) render(msg []byte) ([]byte, error) {
	var r parseRequest
	if err := json.Unmarshal(msg, &r); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	b, err := fen.Parse(r.FEN)
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
		b = fen.EmptyBoard()
	}
	var buf bytes.Buffer
	data := buildBoardPartData(s.cfg, b, r.Rotated, errMsg)
	if err := s.tmpl.ExecuteTemplate(&buf, "part/board", data); err != nil {
		return nil, fmt.Errorf("render board: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *previewWebSocketSession) Do() {
	defer s.s.Close()

	limit := rate.NewLimiter(rate.Limit(s.cfg.opts.PreviewRPSLimit), s.cfg.opts.PreviewRPSBurst)
	for {
		var msg []byte
		select {
		case msg = <-s.recvCh:
		case <-s.s.Done():
			return
		}
		data, err := s.render(msg)
		if err != nil {
			s.log.Warn("bad preview request", slogx.Err(err))
			s.s.Shutdown()
			return
		}
		if err := s.s.WriteText(data); err != nil {
			s.log.Info("could not write message", slogx.Err(err))
			return
		}
		if err := limit.Wait(s.req.Context()); err != nil {
			return
		}
	}
}

type previewWebSocketImpl struct {
	log     *slog.Logger
	cfg     *Config
	tmpl    *template.Template
	factory *websockutil.SessionFactory
}

func previewWebSocket(log *slog.Logger, cfg *Config, templator *templator) (http.Handler, error) {
	tmpl, err := templator.Get("")
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	return &previewWebSocketImpl{
		log:     log,
		cfg:     cfg,
		tmpl:    tmpl,
		factory: websockutil.NewSessionFactory(cfg.opts.WebSocket),
	}, nil
}

func (s *previewWebSocketImpl) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := s.log.With(slog.String("rid", httputil.ExtractReqID(ctx)))
	log.Info("handle preview websocket", slog.String("addr", req.RemoteAddr))

	// Only the latest request matters, so older pending ones are dropped.
	recvCh := make(chan []byte, 1)
	session, err := s.factory.NewSession(w, req, log, websockutil.LatestReceiver(recvCh))
	if err != nil {
		return
	}

	previewSession := &previewWebSocketSession{
		req:    req,
		log:    log,
		cfg:    s.cfg,
		tmpl:   s.tmpl,
		s:      session,
		recvCh: recvCh,
	}
	previewSession.Do()
}
