package fen

import "strings"

// IsLightSquare reports whether the square on file x and rank y is light. The
// a1 square is dark.
func IsLightSquare(x, y int) bool {
	return (x+y)&1 == 1
}

var assetCodes = [SquareMax]string{
	Empty:       "",
	WhitePawn:   "wp",
	WhiteKnight: "wn",
	WhiteBishop: "wb",
	WhiteRook:   "wr",
	WhiteQueen:  "wq",
	WhiteKing:   "wk",
	BlackPawn:   "bp",
	BlackKnight: "bn",
	BlackBishop: "bb",
	BlackRook:   "br",
	BlackQueen:  "bq",
	BlackKing:   "bk",
}

// AssetCode returns the two-letter piece code used in image names, or an
// empty string for an empty square.
func AssetCode(sq Square) string {
	if !sq.IsValid() {
		panic("bad square")
	}
	return assetCodes[sq]
}

// AssetName returns the image file name for a square. Pieces are named
// "<code><bg>.png" and empty squares "<bg>sq.png", where bg is "w" for light
// and "b" for dark squares.
func AssetName(sq Square, isLight bool) string {
	bg := "b"
	if isLight {
		bg = "w"
	}
	if sq == Empty {
		return bg + "sq.png"
	}
	return AssetCode(sq) + bg + ".png"
}

// ParseAssetName is the inverse of AssetName.
func ParseAssetName(name string) (sq Square, isLight bool, ok bool) {
	base, found := strings.CutSuffix(name, ".png")
	if !found || len(base) != 3 {
		return Empty, false, false
	}
	switch base[2] {
	case 'w':
		isLight = true
	case 'b':
		isLight = false
	default:
		if base[0] == 'w' || base[0] == 'b' {
			if base[1:] == "sq" {
				return Empty, base[0] == 'w', true
			}
		}
		return Empty, false, false
	}
	code := base[:2]
	for s := WhitePawn; s < SquareMax; s++ {
		if assetCodes[s] == code {
			return s, isLight, true
		}
	}
	return Empty, false, false
}
