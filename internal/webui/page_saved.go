package webui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/alex65536/fenboard/internal/saved"
	"github.com/alex65536/fenboard/internal/util/httputil"
	"github.com/alex65536/fenboard/internal/util/timeutil"
)

type savedDataBuilder struct{}

func (savedDataBuilder) Build(ctx context.Context, bc builderCtx) (any, error) {
	cfg := bc.Config

	type item struct {
		ID        string
		Name      string
		Layout    string
		CreatedAt timeutil.UTCTime
	}

	type data struct {
		Total  string
		Boards []item
	}

	if bc.Req.Method != http.MethodGet {
		return nil, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed")
	}
	boards, err := cfg.Saved.ListBoards(ctx, cfg.opts.SavedListLimit)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	total, err := cfg.Saved.CountBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("count boards: %w", err)
	}
	res := &data{
		Total:  humanize.Comma(total),
		Boards: make([]item, 0, len(boards)),
	}
	for _, b := range boards {
		res.Boards = append(res.Boards, item{
			ID:        b.ID,
			Name:      b.Name,
			Layout:    b.Layout.Layout(),
			CreatedAt: b.CreatedAt,
		})
	}
	return res, nil
}

func savedPage(log *slog.Logger, cfg *Config, templ *templator) (http.Handler, error) {
	return newPage(log, cfg, templ, savedDataBuilder{}, "saved")
}

type savedDeleteDataBuilder struct{}

func (savedDeleteDataBuilder) Build(ctx context.Context, bc builderCtx) (any, error) {
	if bc.Req.Method != http.MethodPost {
		return nil, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed")
	}
	boardID := bc.Req.PathValue("boardID")
	if err := bc.Config.Saved.DeleteBoard(ctx, boardID); err != nil {
		if errors.Is(err, saved.ErrBoardNotFound) {
			return nil, httputil.MakeError(http.StatusNotFound, "board not found")
		}
		return nil, fmt.Errorf("delete board: %w", err)
	}
	bc.Log.Info("deleted board", slog.String("board_id", boardID))
	return nil, bc.Redirect("/saved")
}

func savedDeletePage(log *slog.Logger, cfg *Config, templ *templator) (http.Handler, error) {
	return newPage(log, cfg, templ, savedDeleteDataBuilder{}, "")
}

type boardDataBuilder struct{}

func (boardDataBuilder) Build(ctx context.Context, bc builderCtx) (any, error) {
	cfg := bc.Config

	type data struct {
		Name       string
		Layout     string
		CreatedAt  timeutil.UTCTime
		Board      *boardPartData
		EditURL    string
		DiagramURL string
	}

	if bc.Req.Method != http.MethodGet {
		return nil, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed")
	}
	b, err := cfg.Saved.GetBoard(ctx, bc.Req.PathValue("boardID"))
	if err != nil {
		if errors.Is(err, saved.ErrBoardNotFound) {
			return nil, httputil.MakeError(http.StatusNotFound, "board not found")
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &data{
		Name:       b.Name,
		Layout:     b.Layout.Layout(),
		CreatedAt:  b.CreatedAt,
		Board:      buildBoardPartData(cfg, b.Layout, b.Rotated, ""),
		EditURL:    editURL(cfg, b.Layout),
		DiagramURL: diagramURL(cfg, b.Layout, b.Rotated),
	}, nil
}

func boardPage(log *slog.Logger, cfg *Config, templ *templator) (http.Handler, error) {
	return newPage(log, cfg, templ, boardDataBuilder{}, "board")
}
