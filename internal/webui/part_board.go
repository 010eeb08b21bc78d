package webui

import (
	"net/url"
	"strconv"

	"github.com/alex65536/fenboard/internal/boardview"
	"github.com/alex65536/fenboard/internal/fen"
)

type boardPartData struct {
	Rows       [][]boardview.Cell
	Files      []string
	Ranks      []string
	Rotated    bool
	SquareSize int
	Error      string
}

func buildBoardPartData(cfg *Config, b fen.Board, rotated bool, errMsg string) *boardPartData {
	view := boardview.View{Rotated: rotated}
	return &boardPartData{
		Rows:       view.Rows(b),
		Files:      view.FileLabels(),
		Ranks:      view.RankLabels(),
		Rotated:    rotated,
		SquareSize: cfg.opts.GridSquareSize,
		Error:      errMsg,
	}
}

func diagramURL(cfg *Config, b fen.Board, rotated bool) string {
	q := url.Values{}
	q.Set("fen", b.Layout())
	q.Set("rotated", strconv.FormatBool(rotated))
	q.Set("coords", "true")
	return cfg.prefix + "/diagram.png?" + q.Encode()
}

func editURL(cfg *Config, b fen.Board) string {
	q := url.Values{}
	q.Set("fen", b.Layout())
	return cfg.prefix + "/?" + q.Encode()
}
