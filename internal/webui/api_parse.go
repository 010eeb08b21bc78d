package webui

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/alex65536/fenboard/internal/boardview"
	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/util/httputil"
	"github.com/alex65536/fenboard/internal/util/slogx"
)

const maxParseRequestSize = 4096

type parseRequest struct {
	FEN     string `json:"fen"`
	Rotated bool   `json:"rotated"`
}

type parseErrorData struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type parseResponse struct {
	OK      bool            `json:"ok"`
	Layout  string          `json:"layout,omitempty"`
	Squares []string        `json:"squares,omitempty"`
	Error   *parseErrorData `json:"error,omitempty"`
}

func buildParseResponse(r parseRequest) parseResponse {
	b, err := fen.Parse(r.FEN)
	if err != nil {
		return parseResponse{
			Error: &parseErrorData{
				Kind:    fen.KindOf(err).String(),
				Message: err.Error(),
			},
		}
	}
	view := boardview.View{Rotated: r.Rotated}
	cells := view.Cells(b)
	squares := make([]string, len(cells))
	for i, c := range cells {
		squares[i] = c.Asset
	}
	return parseResponse{
		OK:      true,
		Layout:  b.Layout(),
		Squares: squares,
	}
}

type parseAPIImpl struct {
	log   *slog.Logger
	cfg   *Config
	limit *rate.Limiter
}

func (p *parseAPIImpl) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := p.log.With(slog.String("rid", httputil.ExtractReqID(ctx)))

	if req.Method != http.MethodPost {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed"))
		return
	}
	if !p.limit.Allow() {
		log.Warn("parse api rate limit exceeded")
		writeHTTPErr(log, w, httputil.MakeError(http.StatusTooManyRequests, "too many requests"))
		return
	}

	var r parseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxParseRequestSize)).Decode(&r); err != nil {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusBadRequest, "bad json request"))
		return
	}
	rsp := buildParseResponse(r)
	data, err := json.Marshal(rsp)
	if err != nil {
		log.Error("could not marshal response", slogx.Err(err))
		writeHTTPErr(log, w, httputil.MakeError(http.StatusInternalServerError, "marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Info("error writing response", slogx.Err(err))
	}
}

func parseAPI(log *slog.Logger, cfg *Config) http.Handler {
	return &parseAPIImpl{
		log:   log,
		cfg:   cfg,
		limit: rate.NewLimiter(rate.Limit(cfg.opts.APIRPSLimit), cfg.opts.APIRPSBurst),
	}
}
