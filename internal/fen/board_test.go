package fen

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	b, err := Parse(EmptyLayout)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for y := range 8 {
		for x := range 8 {
			sq, err := b.SquareAt(x, y)
			if err != nil {
				t.Fatalf("square at (%v, %v): %v", x, y, err)
			}
			if sq != Empty {
				t.Fatalf("square at (%v, %v): expected = %v, got = %v", x, y, Empty, sq)
			}
		}
	}
	if !b.IsEmpty() {
		t.Fatalf("board must be empty")
	}
}

func TestParseInitial(t *testing.T) {
	b, err := Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, tc := range []struct {
		x, y int
		sq   Square
	}{
		{0, 0, WhiteRook},
		{1, 0, WhiteKnight},
		{2, 0, WhiteBishop},
		{3, 0, WhiteQueen},
		{4, 0, WhiteKing},
		{7, 0, WhiteRook},
		{4, 1, WhitePawn},
		{4, 3, Empty},
		{4, 6, BlackPawn},
		{0, 7, BlackRook},
		{3, 7, BlackQueen},
		{4, 7, BlackKing},
		{6, 7, BlackKnight},
	} {
		sq, err := SquareAt(b, tc.x, tc.y)
		if err != nil {
			t.Fatalf("square at (%v, %v): %v", tc.x, tc.y, err)
		}
		if sq != tc.sq {
			t.Fatalf("square at (%v, %v): expected = %v, got = %v", tc.x, tc.y, tc.sq, sq)
		}
	}
	if b != InitialBoard() {
		t.Fatalf("board differs from initial")
	}
}

func TestParseReadingOrder(t *testing.T) {
	b, err := Parse("r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, tc := range []struct {
		coord string
		sq    Square
	}{
		{"b5", WhiteBishop},
		{"c6", BlackKnight},
		{"e5", BlackPawn},
		{"e4", WhitePawn},
		{"f3", WhiteKnight},
		{"f1", Empty},
		{"g1", Empty},
		{"h1", WhiteRook},
		{"b8", Empty},
	} {
		x, y := int(tc.coord[0]-'a'), int(tc.coord[1]-'1')
		sq, err := b.SquareAt(x, y)
		if err != nil {
			t.Fatalf("square at %v: %v", tc.coord, err)
		}
		if sq != tc.sq {
			t.Fatalf("square at %v: expected = %v, got = %v", tc.coord, tc.sq, sq)
		}
	}
}

func TestParseTolerant(t *testing.T) {
	for _, s := range []string{
		"8/8/8/8/8/8/8/8",
		"  8/8/8/8/8/8/8/8  ",
		"w 8/8/8/8/8/8/8/8 - - 0 1 extra",
		"/ 8/8/8/8/8/8/8/8",
		"\t8/8/8/8/8/8/8/8\nw",
		"44/8/8/8/8/8/8/8",
		"11111111/8/8/8/8/8/8/8",
	} {
		b, err := Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if !b.IsEmpty() {
			t.Fatalf("parse %q: expected empty board", s)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		fen  string
		kind ErrorKind
		err  error
	}{
		{"", LayoutNotFound, ErrLayoutNotFound},
		{"   ", LayoutNotFound, ErrLayoutNotFound},
		{"no-slash-here", LayoutNotFound, ErrLayoutNotFound},
		{"/8/8/8/8/8/8/8/8", LayoutNotFound, ErrLayoutNotFound},
		{"/ w - -", LayoutNotFound, ErrLayoutNotFound},
		{"8/8/8/8/8/8/8", WrongRankCount, ErrWrongRankCount},
		{"8/8/8/8/8/8/8/8/8", WrongRankCount, ErrWrongRankCount},
		{"8/8/8/8/8/8/8/", WrongSquareCount, ErrWrongSquareCount},
		{"8/8/8/8/8/8/8/9", InvalidCharacter, ErrInvalidCharacter},
		{"8/8/8/8/8/8/8/0", InvalidCharacter, ErrInvalidCharacter},
		{"8/8/8/8/8/8/8/7x", InvalidCharacter, ErrInvalidCharacter},
		{"8/8/8/8/ 8/8/8/8", WrongRankCount, ErrWrongRankCount},
		{"44p/8/8/8/8/8/8/8", WrongSquareCount, ErrWrongSquareCount},
		{"7/8/8/8/8/8/8/8", WrongSquareCount, ErrWrongSquareCount},
		{"8/8/8/8/8/8/8/8p", WrongSquareCount, ErrWrongSquareCount},
		{"88888888/8/8/8/8/8/8/8", WrongSquareCount, ErrWrongSquareCount},
		{"////////", LayoutNotFound, ErrLayoutNotFound},
		{"x///////", InvalidCharacter, ErrInvalidCharacter},
		{"8///////", WrongSquareCount, ErrWrongSquareCount},
	} {
		_, err := Parse(tc.fen)
		if err == nil {
			t.Fatalf("parse %q: expected error", tc.fen)
		}
		if !errors.Is(err, tc.err) {
			t.Fatalf("parse %q: expected = %v, got = %v", tc.fen, tc.err, err)
		}
		if k := KindOf(err); k != tc.kind {
			t.Fatalf("parse %q: expected kind = %v, got = %v", tc.fen, tc.kind, k)
		}
	}
}

func TestParseTooLong(t *testing.T) {
	rank := "11111111"
	layout := strings.Repeat(rank+"/", 7) + rank
	if len(layout) != MaxLayoutLen {
		t.Fatalf("bad test layout length: %v", len(layout))
	}
	if _, err := Parse(layout); err != nil {
		t.Fatalf("parse max length layout: %v", err)
	}

	// One extra character is rejected by length alone, before the ranks and
	// squares are counted.
	for _, s := range []string{
		"1" + layout,
		layout + "p",
		"p" + strings.Repeat("/", 1_000_000),
		strings.Repeat("8/", 100) + "8 w - - 0 1",
	} {
		if _, err := Parse(s); !errors.Is(err, ErrLayoutTooLong) {
			t.Fatalf("parse %.20q: expected = %v, got = %v", s, ErrLayoutTooLong, err)
		}
	}
}

func TestSquareAtRange(t *testing.T) {
	b := InitialBoard()
	for _, tc := range [][2]int{
		{8, 0},
		{-1, 3},
		{0, 8},
		{3, -1},
		{100, 100},
	} {
		_, err := b.SquareAt(tc[0], tc[1])
		if !errors.Is(err, ErrCoordinateOutOfRange) {
			t.Fatalf("square at %v: expected = %v, got = %v", tc, ErrCoordinateOutOfRange, err)
		}
		if _, err := b.SquareAssetName(tc[0], tc[1]); !errors.Is(err, ErrCoordinateOutOfRange) {
			t.Fatalf("asset at %v: expected = %v, got = %v", tc, ErrCoordinateOutOfRange, err)
		}
	}
}

func TestLayout(t *testing.T) {
	for _, s := range []string{
		EmptyLayout,
		InitialLayout,
		"r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R",
		"8/8/8/4k3/8/8/8/4K3",
		"7K/8/8/8/8/8/8/k7",
	} {
		b, err := Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if l := b.Layout(); l != s {
			t.Fatalf("layout: expected = %v, got = %v", s, l)
		}
	}
	b := MustParse("44/8/8/8/8/8/8/8")
	if l := b.String(); l != EmptyLayout {
		t.Fatalf("layout: expected = %v, got = %v", EmptyLayout, l)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 1))
	for range 10_000 {
		var b Board
		for i := range b.squares {
			if rnd.IntN(3) == 0 {
				b.squares[i] = Square(1 + rnd.IntN(int(SquareMax)-1))
			}
		}
		l := b.Layout()
		if len(l) > MaxLayoutLen {
			t.Fatalf("layout %q too long", l)
		}
		b2, err := Parse(l)
		if err != nil {
			t.Fatalf("parse %q: %v", l, err)
		}
		if b != b2 {
			t.Fatalf("boards differ after round trip of %q", l)
		}
	}
}

func FuzzParse(f *testing.F) {
	for _, s := range []string{
		"",
		EmptyLayout,
		InitialLayout + " w KQkq - 0 1",
		"44p/8/8/8/8/8/8/8",
		"8/8/8/8/8/8/8/8/8",
	} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		b, err := Parse(s)
		if err != nil {
			if KindOf(err) == 0 {
				t.Fatalf("parse %q: untyped error %v", s, err)
			}
			if b != (Board{}) {
				t.Fatalf("parse %q: partial board returned", s)
			}
			return
		}
		b2, err := Parse(b.Layout())
		if err != nil {
			t.Fatalf("reparse %q: %v", b.Layout(), err)
		}
		if b != b2 {
			t.Fatalf("boards differ after round trip of %q", s)
		}
	})
}
