package webui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/alex65536/fenboard/internal/boardview"
	"github.com/alex65536/fenboard/internal/diagcache"
	"github.com/alex65536/fenboard/internal/diagram"
	"github.com/alex65536/fenboard/internal/presets"
	"github.com/alex65536/fenboard/internal/saved"
	"github.com/alex65536/fenboard/internal/util/idgen"
	"github.com/alex65536/fenboard/internal/util/websockutil"
)

type SessionOptions struct {
	Key             []byte        `toml:"-"`
	MaxAge          time.Duration `toml:"max-age"`
	Secure          bool          `toml:"secure"`
	CleanupInterval time.Duration `toml:"cleanup-interval"`
}

func (o *SessionOptions) FillDefaults() {
	if o.MaxAge == 0 {
		o.MaxAge = 30 * 24 * time.Hour
	}
	if o.CleanupInterval == 0 {
		o.CleanupInterval = 1 * time.Hour
	}
}

type SessionStoreFactory interface {
	NewSessionStore(ctx context.Context, opts SessionOptions) sessions.Store
}

type Config struct {
	Saved               *saved.Manager
	Presets             *presets.Book
	Cache               *diagcache.Cache
	SessionStoreFactory SessionStoreFactory
	ServerID            string

	prefix       string
	opts         *Options
	palette      *boardview.Palette
	sessionStore sessions.Store
}

type Options struct {
	WebSocket       websockutil.Options `toml:"websocket"`
	Session         SessionOptions      `toml:"session"`
	CSRFKey         []byte              `toml:"-"`
	StaticDir       string              `toml:"static-dir"`
	GridSquareSize  int                 `toml:"grid-square-size"`
	SavedListLimit  int                 `toml:"saved-list-limit"`
	APIRPSLimit     float64             `toml:"api-rps-limit"`
	APIRPSBurst     int                 `toml:"api-rps-burst"`
	PreviewRPSLimit float64             `toml:"preview-rps-limit"`
	PreviewRPSBurst int                 `toml:"preview-rps-burst"`

	Palette boardview.PaletteOptions `toml:"palette"`
}

func (o *Options) FillDefaults() {
	o.WebSocket.FillDefaults()
	o.Session.FillDefaults()
	if o.GridSquareSize == 0 {
		o.GridSquareSize = 56
	}
	if o.SavedListLimit == 0 {
		o.SavedListLimit = 100
	}
	if o.APIRPSLimit == 0.0 {
		o.APIRPSLimit = 50
	}
	if o.APIRPSBurst == 0 {
		o.APIRPSBurst = 100
	}
	if o.PreviewRPSLimit == 0.0 {
		o.PreviewRPSLimit = 5
	}
	if o.PreviewRPSBurst == 0 {
		o.PreviewRPSBurst = 10
	}
}

func (o *Options) Validate() error {
	if len(o.CSRFKey) != 32 {
		return fmt.Errorf("csrf key must be 32 bytes long")
	}
	if len(o.Session.Key) == 0 {
		return fmt.Errorf("no session key")
	}
	if o.GridSquareSize < diagram.MinSquareSize || o.GridSquareSize > diagram.MaxSquareSize {
		return fmt.Errorf("grid square size %d not in range %d..%d", o.GridSquareSize, diagram.MinSquareSize, diagram.MaxSquareSize)
	}
	return nil
}

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}

func Handle(ctx context.Context, log *slog.Logger, mux *http.ServeMux, prefix string, cfg Config, o Options) error {
	o.FillDefaults()
	if err := o.Validate(); err != nil {
		return fmt.Errorf("bad options: %w", err)
	}

	palette, err := o.Palette.Palette()
	if err != nil {
		return fmt.Errorf("bad palette: %w", err)
	}

	if cfg.ServerID == "" {
		cfg.ServerID = idgen.ID()
	}
	if cfg.Presets == nil {
		cfg.Presets = presets.ClassicBook()
	}
	cfg.prefix = prefix
	cfg.opts = &o
	cfg.palette = &palette
	cfg.sessionStore = cfg.SessionStoreFactory.NewSessionStore(ctx, o.Session)

	b := middlewareBuilder{
		Log:    log,
		Prefix: prefix,
		CSRFProtect: csrf.Protect(
			o.CSRFKey,
			csrf.Secure(o.Session.Secure),
			csrf.Path(prefix+"/"),
			csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				log.Warn("csrf check failed", slog.Any("reason", csrf.FailureReason(req)))
				http.Error(w, "forbidden: bad csrf token", http.StatusForbidden)
			})),
		),
		Compress: gziphandler.GzipHandler,
	}
	templ := newTemplator(&cfg)
	static := http.StripPrefix(prefix, http.FileServerFS(staticFS(o.StaticDir)))

	mux.Handle(prefix+"/css/", b.WrapStatic(static))
	mux.Handle(prefix+"/js/", b.WrapStatic(static))
	mux.Handle(prefix+"/asset/{name}", b.WrapStatic(assetAttach(log, &cfg)))
	mux.Handle(prefix+"/{$}", b.WrapPage(must(mainPage(log, &cfg, templ))))
	mux.Handle(prefix+"/saved", b.WrapPage(must(savedPage(log, &cfg, templ))))
	mux.Handle(prefix+"/saved/{boardID}/delete", b.WrapPage(must(savedDeletePage(log, &cfg, templ))))
	mux.Handle(prefix+"/board/{boardID}", b.WrapPage(must(boardPage(log, &cfg, templ))))
	mux.Handle(prefix+"/diagram.png", b.WrapAttach(diagramAttach(log, &cfg)))
	mux.Handle(prefix+"/api/parse", b.WrapAPI(parseAPI(log, &cfg)))
	mux.Handle(prefix+"/ws", b.WrapWebSocket(must(previewWebSocket(log, &cfg, templ))))
	mux.Handle(prefix+"/", b.WrapPage(must(notFoundPage(log, &cfg, templ))))
	return nil
}
