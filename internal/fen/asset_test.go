package fen

import "testing"

func TestAssetName(t *testing.T) {
	for _, tc := range []struct {
		sq    Square
		light bool
		name  string
	}{
		{Empty, true, "wsq.png"},
		{Empty, false, "bsq.png"},
		{WhiteKnight, true, "wnw.png"},
		{WhiteKnight, false, "wnb.png"},
		{BlackQueen, false, "bqb.png"},
		{BlackKing, true, "bkw.png"},
		{WhitePawn, false, "wpb.png"},
		{BlackRook, true, "brw.png"},
	} {
		if got := AssetName(tc.sq, tc.light); got != tc.name {
			t.Fatalf("asset name of %v (light = %v): expected = %v, got = %v", tc.sq, tc.light, tc.name, got)
		}
	}
}

func TestAssetNameTotal(t *testing.T) {
	seen := make(map[string]Square)
	for sq := Empty; sq < SquareMax; sq++ {
		for _, light := range []bool{false, true} {
			name := AssetName(sq, light)
			if old, ok := seen[name]; ok {
				t.Fatalf("asset name %v used for both %v and %v", name, old, sq)
			}
			seen[name] = sq
		}
	}
	if len(seen) != 2*int(SquareMax) {
		t.Fatalf("expected = %v names, got = %v", 2*int(SquareMax), len(seen))
	}
}

func TestIsLightSquare(t *testing.T) {
	for _, tc := range []struct {
		coord string
		light bool
	}{
		{"a1", false},
		{"h1", true},
		{"a8", true},
		{"h8", false},
		{"e4", true},
		{"d4", false},
	} {
		x, y := int(tc.coord[0]-'a'), int(tc.coord[1]-'1')
		if got := IsLightSquare(x, y); got != tc.light {
			t.Fatalf("square %v: expected = %v, got = %v", tc.coord, tc.light, got)
		}
	}
}

func TestSquareAssetName(t *testing.T) {
	b := InitialBoard()
	for _, tc := range []struct {
		x, y int
		name string
	}{
		{0, 0, "wrb.png"},
		{4, 0, "wkb.png"},
		{4, 7, "bkw.png"},
		{0, 7, "brw.png"},
		{3, 3, "bsq.png"},
		{4, 3, "wsq.png"},
	} {
		name, err := b.SquareAssetName(tc.x, tc.y)
		if err != nil {
			t.Fatalf("asset at (%v, %v): %v", tc.x, tc.y, err)
		}
		if name != tc.name {
			t.Fatalf("asset at (%v, %v): expected = %v, got = %v", tc.x, tc.y, tc.name, name)
		}
	}
}

func TestSquareProps(t *testing.T) {
	for c := ColorWhite; c < ColorMax; c++ {
		for k := KindPawn; k < KindMax; k++ {
			sq := MakeSquare(c, k)
			if sq.Color() != c || sq.Kind() != k {
				t.Fatalf("square %v: expected = %v %v, got = %v %v", sq, c, k, sq.Color(), sq.Kind())
			}
			back, ok := squareFromLetter(sq.Letter())
			if !ok || back != sq {
				t.Fatalf("letter %c does not decode to %v", sq.Letter(), sq)
			}
		}
	}
	if MakeSquare(ColorBlack, KindNone) != Empty {
		t.Fatalf("square with no kind must be empty")
	}
	if Empty.Letter() != 0 || Empty.Kind() != KindNone {
		t.Fatalf("bad empty square")
	}
}

func TestParseAssetName(t *testing.T) {
	for sq := Empty; sq < SquareMax; sq++ {
		for _, light := range []bool{false, true} {
			name := AssetName(sq, light)
			gotSq, gotLight, ok := ParseAssetName(name)
			if !ok || gotSq != sq || gotLight != light {
				t.Fatalf("asset %q: expected = (%v, %v), got = (%v, %v, %v)", name, sq, light, gotSq, gotLight, ok)
			}
		}
	}
	for _, name := range []string{"", "wk.png", "wkx.png", "xxw.png", "wsq.gif", "qsq.png", "wkw.png.png"} {
		if _, _, ok := ParseAssetName(name); ok {
			t.Fatalf("asset %q must not parse", name)
		}
	}
}
