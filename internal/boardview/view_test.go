package boardview

import (
	"strings"
	"testing"

	"github.com/alex65536/fenboard/internal/fen"
)

func TestCellsOrder(t *testing.T) {
	b := fen.InitialBoard()
	cells := View{}.Cells(b)
	if len(cells) != 64 {
		t.Fatalf("expected = 64 cells, got = %v", len(cells))
	}
	top := cells[0]
	if top.Coord() != "a8" || top.Square != fen.BlackRook || !top.Light || top.Asset != "brw.png" {
		t.Fatalf("bad top-left cell: %+v", top)
	}
	bottom := cells[63]
	if bottom.Coord() != "h1" || bottom.Square != fen.WhiteRook || !bottom.Light {
		t.Fatalf("bad bottom-right cell: %+v", bottom)
	}
	if c := cells[60]; c.Coord() != "e1" || c.Square != fen.WhiteKing {
		t.Fatalf("bad e1 cell: %+v", c)
	}
}

func TestCellsRotated(t *testing.T) {
	b := fen.InitialBoard()
	var v View
	v.Toggle()
	if !v.Rotated {
		t.Fatalf("view must be rotated")
	}
	cells := v.Cells(b)
	if c := cells[0]; c.Coord() != "h1" || c.Square != fen.WhiteRook {
		t.Fatalf("bad top-left cell: %+v", c)
	}
	if c := cells[63]; c.Coord() != "a8" || c.Square != fen.BlackRook {
		t.Fatalf("bad bottom-right cell: %+v", c)
	}
	if c := cells[3]; c.Coord() != "e1" || c.Square != fen.WhiteKing {
		t.Fatalf("bad e1 cell: %+v", c)
	}
	if got := strings.Join(v.FileLabels(), ""); got != "hgfedcba" {
		t.Fatalf("file labels: expected = hgfedcba, got = %v", got)
	}
	if got := strings.Join(v.RankLabels(), ""); got != "12345678" {
		t.Fatalf("rank labels: expected = 12345678, got = %v", got)
	}
}

func TestScreenPos(t *testing.T) {
	for _, v := range []View{{Rotated: false}, {Rotated: true}} {
		for row := range 8 {
			for col := range 8 {
				file, rank := v.BoardPos(row, col)
				r2, c2 := v.ScreenPos(file, rank)
				if r2 != row || c2 != col {
					t.Fatalf("rotated = %v: (%v, %v) maps back to (%v, %v)", v.Rotated, row, col, r2, c2)
				}
			}
		}
	}
}

func TestRenderTextPlain(t *testing.T) {
	b := fen.InitialBoard()
	var s strings.Builder
	err := View{}.RenderText(&s, b, TextOptions{Labels: true, Palette: DefaultPalette()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	expected := "" +
		"8 rnbqkbnr\n" +
		"7 pppppppp\n" +
		"6 ........\n" +
		"5 ........\n" +
		"4 ........\n" +
		"3 ........\n" +
		"2 PPPPPPPP\n" +
		"1 RNBQKBNR\n" +
		"  abcdefgh\n"
	if s.String() != expected {
		t.Fatalf("bad render: expected:\n%v\ngot:\n%v", expected, s.String())
	}
}

func TestRenderTextColor(t *testing.T) {
	b := fen.MustParse("8/8/8/4k3/8/8/8/4K3")
	var s strings.Builder
	err := View{Rotated: true}.RenderText(&s, b, TextOptions{Color: true, Unicode: true, Palette: DefaultPalette()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(s.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected = 8 lines, got = %v", len(lines))
	}
	if !strings.Contains(lines[0], "♚") {
		t.Fatalf("white king must be on the top line when rotated: %q", lines[0])
	}
	if !strings.Contains(s.String(), "\033[48;2;") {
		t.Fatalf("no background colors in output")
	}
}

func TestPaletteOptions(t *testing.T) {
	p, err := PaletteOptions{Light: "#ffffff"}.Palette()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if r, g, b := p.Light.RGB255(); r != 255 || g != 255 || b != 255 {
		t.Fatalf("light: expected = white, got = %v %v %v", r, g, b)
	}
	if p.Dark != DefaultPalette().Dark {
		t.Fatalf("dark color must stay default")
	}
	if _, err := (PaletteOptions{Dark: "brown"}).Palette(); err == nil {
		t.Fatalf("bad color must fail")
	}
}
