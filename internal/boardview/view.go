package boardview

import (
	"fmt"

	"github.com/alex65536/fenboard/internal/fen"
)

// View keeps the display state of a single board viewer.
type View struct {
	Rotated bool
}

func (v *View) Toggle() {
	v.Rotated = !v.Rotated
}

type Cell struct {
	Row, Col   int // position on screen, (0, 0) is the top-left corner
	File, Rank int
	Square     fen.Square
	Light      bool
	Asset      string
}

func (c Cell) Coord() string {
	return Coord(c.File, c.Rank)
}

func Coord(file, rank int) string {
	if file < 0 || file >= 8 || rank < 0 || rank >= 8 {
		return fmt.Sprintf("(%d,%d)", file, rank)
	}
	return string([]byte{byte('a' + file), byte('1' + rank)})
}

// BoardPos maps a screen position into board coordinates.
func (v View) BoardPos(row, col int) (file, rank int) {
	if v.Rotated {
		return 7 - col, row
	}
	return col, 7 - row
}

// ScreenPos is the inverse of BoardPos.
func (v View) ScreenPos(file, rank int) (row, col int) {
	if v.Rotated {
		return rank, 7 - file
	}
	return 7 - rank, file
}

// Cells returns all the 64 cells of the board in screen order, row by row.
func (v View) Cells(b fen.Board) []Cell {
	cells := make([]Cell, 0, 64)
	for row := range 8 {
		for col := range 8 {
			file, rank := v.BoardPos(row, col)
			sq, err := b.SquareAt(file, rank)
			if err != nil {
				panic("must not happen")
			}
			light := fen.IsLightSquare(file, rank)
			cells = append(cells, Cell{
				Row:    row,
				Col:    col,
				File:   file,
				Rank:   rank,
				Square: sq,
				Light:  light,
				Asset:  fen.AssetName(sq, light),
			})
		}
	}
	return cells
}

// Rows is the same as Cells, but splits the cells into rows.
func (v View) Rows(b fen.Board) [][]Cell {
	cells := v.Cells(b)
	rows := make([][]Cell, 8)
	for i := range rows {
		rows[i] = cells[i*8 : (i+1)*8]
	}
	return rows
}

// FileLabels returns the file letters in screen order, left to right.
func (v View) FileLabels() []string {
	res := make([]string, 8)
	for col := range 8 {
		file, _ := v.BoardPos(0, col)
		res[col] = string(rune('a' + file))
	}
	return res
}

// RankLabels returns the rank digits in screen order, top to bottom.
func (v View) RankLabels() []string {
	res := make([]string, 8)
	for row := range 8 {
		_, rank := v.BoardPos(row, 0)
		res[row] = string(rune('1' + rank))
	}
	return res
}
