package boardview

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/util/style"
)

type TextOptions struct {
	Color   bool
	Unicode bool
	Labels  bool
	Palette Palette
}

func DefaultTextOptions() TextOptions {
	return TextOptions{
		Color:   style.StdoutSupportsColor(),
		Unicode: true,
		Labels:  true,
		Palette: DefaultPalette(),
	}
}

var unicodePieces = [fen.SquareMax]string{
	fen.Empty:       " ",
	fen.WhitePawn:   "♙",
	fen.WhiteKnight: "♘",
	fen.WhiteBishop: "♗",
	fen.WhiteRook:   "♖",
	fen.WhiteQueen:  "♕",
	fen.WhiteKing:   "♔",
	fen.BlackPawn:   "♟",
	fen.BlackKnight: "♞",
	fen.BlackBishop: "♝",
	fen.BlackRook:   "♜",
	fen.BlackQueen:  "♛",
	fen.BlackKing:   "♚",
}

// Glyph returns the character used to show the square in a terminal.
func Glyph(sq fen.Square, unicode bool, colored bool) string {
	if unicode {
		if colored && !sq.IsEmpty() {
			// Colors already tell the sides apart, and filled glyphs are
			// easier to read.
			return unicodePieces[fen.MakeSquare(fen.ColorBlack, sq.Kind())]
		}
		return unicodePieces[sq]
	}
	if sq.IsEmpty() {
		if colored {
			return " "
		}
		return "."
	}
	return string(sq.Letter())
}

func colorCodes(bg bool, c colorful.Color) []int {
	r, g, b := c.Clamped().RGB255()
	return style.TrueColor(bg, r, g, b)
}

func (v View) writeFiles(w *bufio.Writer, cellWidth int) {
	_, _ = w.WriteString("  ")
	for _, l := range v.FileLabels() {
		pad := strings.Repeat(" ", (cellWidth-1)/2)
		_, _ = w.WriteString(pad + l + strings.Repeat(" ", cellWidth-1-len(pad)))
	}
	_ = w.WriteByte('\n')
}

// RenderText draws the board as seen from the view.
func (v View) RenderText(out io.Writer, b fen.Board, o TextOptions) error {
	w := bufio.NewWriter(out)
	cellWidth := 1
	if o.Color {
		cellWidth = 3
	} else if o.Unicode {
		cellWidth = 2
	}
	ranks := v.RankLabels()
	for row, cells := range v.Rows(b) {
		if o.Labels {
			_, _ = w.WriteString(ranks[row] + " ")
		}
		for _, c := range cells {
			glyph := Glyph(c.Square, o.Unicode, o.Color)
			if !o.Color {
				_, _ = w.WriteString(glyph)
				_, _ = w.WriteString(strings.Repeat(" ", cellWidth-1))
				continue
			}
			codes := colorCodes(true, o.Palette.Square(c.Light))
			if !c.Square.IsEmpty() {
				fg := o.Palette.WhitePiece
				if c.Square.Color() == fen.ColorBlack {
					fg = o.Palette.BlackPiece
				}
				codes = slices.Concat(codes, colorCodes(false, fg), []int{1})
			}
			_, _ = w.WriteString(style.Seq(codes...) + " " + glyph + " " + style.Seq())
		}
		_ = w.WriteByte('\n')
	}
	if o.Labels {
		v.writeFiles(w, cellWidth)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
