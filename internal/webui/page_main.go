package webui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/saved"
	"github.com/alex65536/fenboard/internal/util/httputil"
)

const (
	initialFEN = fen.InitialLayout + " w KQkq - 0 1"
	emptyFEN   = fen.EmptyLayout + " w - - 0 1"
)

type mainDataBuilder struct{}

func (mainDataBuilder) Build(ctx context.Context, bc builderCtx) (any, error) {
	req := bc.Req
	cfg := bc.Config
	log := bc.Log

	type data struct {
		FEN        string
		Board      *boardPartData
		Errors     []string
		Preset     string
		DiagramURL string
	}

	d := &data{}
	st := bc.State
	if st.FEN == "" {
		st.FEN = initialFEN
	}
	fenText := st.FEN

	switch req.Method {
	case http.MethodGet:
		if q := req.URL.Query().Get("fen"); q != "" {
			fenText = q
		}
	case http.MethodPost:
		if err := req.ParseForm(); err != nil {
			return nil, httputil.MakeError(http.StatusBadRequest, "bad form data")
		}
		fenText = req.PostFormValue("fen")
		action := req.PostFormValue("action")
		switch action {
		case "", "display":
		case "rotate":
			st.Rotated = !st.Rotated
		case "reset":
			fenText = initialFEN
		case "clear":
			fenText = emptyFEN
		case "random":
			p := cfg.Presets.Random()
			fenText = p.FEN
			d.Preset = p.Name
		case "save":
			b, err := fen.Parse(fenText)
			if err != nil {
				d.Errors = append(d.Errors, "position not saved")
				break
			}
			board, err := cfg.Saved.Save(ctx, req.PostFormValue("name"), b, st.Rotated)
			if err != nil {
				if errors.Is(err, saved.ErrBadName) {
					d.Errors = append(d.Errors, err.Error())
					break
				}
				return nil, fmt.Errorf("save board: %w", err)
			}
			st.FEN = fenText
			bc.SaveState(st)
			return nil, bc.Redirect("/board/" + board.ID)
		default:
			return nil, httputil.MakeError(http.StatusBadRequest, "unknown action")
		}
		log.Info("board action", slog.String("action", action))
	default:
		return nil, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed")
	}

	// A bad FEN clears the board and shows the error, but the last good FEN
	// stays in the session.
	b, err := fen.Parse(fenText)
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
		b = fen.EmptyBoard()
	} else {
		st.FEN = fenText
	}
	if st != bc.State {
		bc.SaveState(st)
	}

	d.FEN = fenText
	d.Board = buildBoardPartData(cfg, b, st.Rotated, errMsg)
	d.DiagramURL = diagramURL(cfg, b, st.Rotated)
	return d, nil
}

func mainPage(log *slog.Logger, cfg *Config, templ *templator) (http.Handler, error) {
	return newPage(log, cfg, templ, mainDataBuilder{}, "main")
}
