package webui

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alex65536/fenboard/internal/diagcache"
	"github.com/alex65536/fenboard/internal/diagram"
	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/util/httputil"
	"github.com/alex65536/fenboard/internal/util/slogx"
)

func (c *Config) renderCached(key diagcache.Key, render func() ([]byte, error)) ([]byte, error) {
	if c.Cache == nil {
		return render()
	}
	return c.Cache.GetOrRender(key, render)
}

func writePNG(log *slog.Logger, w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Info("error writing image", slogx.Err(err))
	}
}

func parseBoolParam(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

type diagramAttachImpl struct {
	log *slog.Logger
	cfg *Config
}

func (p *diagramAttachImpl) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := p.log.With(slog.String("rid", httputil.ExtractReqID(ctx)))
	log.Info("handle diagram request",
		slog.String("method", req.Method),
		slog.String("addr", req.RemoteAddr),
	)

	if req.Method != http.MethodGet {
		log.Warn("method not allowed")
		writeHTTPErr(log, w, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed"))
		return
	}

	q := req.URL.Query()
	fenText := q.Get("fen")
	if fenText == "" {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusBadRequest, "fen is required"))
		return
	}
	b, err := fen.Parse(fenText)
	if err != nil {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusBadRequest, err.Error()))
		return
	}
	o := diagram.Options{Palette: p.cfg.palette}
	if s := q.Get("size"); s != "" {
		o.SquareSize, err = strconv.Atoi(s)
		if err != nil {
			writeHTTPErr(log, w, httputil.MakeError(http.StatusBadRequest, "bad size"))
			return
		}
	}
	if o.Rotated, err = parseBoolParam(q.Get("rotated")); err != nil {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusBadRequest, "bad rotated flag"))
		return
	}
	if o.Coords, err = parseBoolParam(q.Get("coords")); err != nil {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusBadRequest, "bad coords flag"))
		return
	}
	o.FillDefaults()
	if err := o.Validate(); err != nil {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusBadRequest, err.Error()))
		return
	}

	key := diagcache.Key{
		Layout:     b.Layout(),
		SquareSize: o.SquareSize,
		Rotated:    o.Rotated,
		Coords:     o.Coords,
		Palette:    p.cfg.palette.Key(),
	}
	data, err := p.cfg.renderCached(key, func() ([]byte, error) {
		var buf bytes.Buffer
		if err := diagram.RenderPNG(&buf, b, o); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		log.Error("could not render diagram", slogx.Err(err))
		writeHTTPErr(log, w, httputil.MakeError(http.StatusInternalServerError, "error rendering diagram"))
		return
	}
	w.Header().Set("Cache-Control", "max-age=86400, public")
	writePNG(log, w, data)
}

func diagramAttach(log *slog.Logger, cfg *Config) http.Handler {
	return &diagramAttachImpl{
		log: log,
		cfg: cfg,
	}
}

type assetAttachImpl struct {
	log *slog.Logger
	cfg *Config
}

func (p *assetAttachImpl) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := p.log.With(slog.String("rid", httputil.ExtractReqID(ctx)))

	if req.Method != http.MethodGet {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed"))
		return
	}
	name := req.PathValue("name")
	sq, light, ok := fen.ParseAssetName(name)
	if !ok {
		writeHTTPErr(log, w, httputil.MakeError(http.StatusNotFound, "asset not found"))
		return
	}
	size := p.cfg.opts.GridSquareSize
	// Asset names never contain slashes, so they cannot clash with layouts.
	key := diagcache.Key{Layout: name, SquareSize: size, Palette: p.cfg.palette.Key()}
	data, err := p.cfg.renderCached(key, func() ([]byte, error) {
		img, err := diagram.RenderSquare(sq, light, size, p.cfg.palette)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := diagram.EncodePNG(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		log.Error("could not render asset", slogx.Err(err))
		writeHTTPErr(log, w, httputil.MakeError(http.StatusInternalServerError, "error rendering asset"))
		return
	}
	writePNG(log, w, data)
}

func assetAttach(log *slog.Logger, cfg *Config) http.Handler {
	return &assetAttachImpl{
		log: log,
		cfg: cfg,
	}
}
