package fen

import "fmt"

type Color uint8

const (
	ColorWhite Color = iota
	ColorBlack
	ColorMax
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

type Kind uint8

const (
	KindNone Kind = iota
	KindPawn
	KindKnight
	KindBishop
	KindRook
	KindQueen
	KindKing
	KindMax
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPawn:
		return "pawn"
	case KindKnight:
		return "knight"
	case KindBishop:
		return "bishop"
	case KindRook:
		return "rook"
	case KindQueen:
		return "queen"
	case KindKing:
		return "king"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Square is the content of a single board cell. The zero value is Empty.
type Square uint8

const (
	Empty Square = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	SquareMax
)

func MakeSquare(c Color, k Kind) Square {
	if k == KindNone {
		return Empty
	}
	if c >= ColorMax || k >= KindMax {
		panic("bad square")
	}
	return Square(uint8(c)*6 + uint8(k))
}

func (s Square) IsValid() bool { return s < SquareMax }
func (s Square) IsEmpty() bool { return s == Empty }

func (s Square) Color() Color {
	if s >= BlackPawn {
		return ColorBlack
	}
	return ColorWhite
}

func (s Square) Kind() Kind {
	if s == Empty {
		return KindNone
	}
	return Kind((uint8(s)-1)%6 + 1)
}

const squareLetters = ".PNBRQKpnbrqk"

// Letter returns the FEN letter of the square, or 0 for an empty one.
func (s Square) Letter() byte {
	if s == Empty || !s.IsValid() {
		return 0
	}
	return squareLetters[s]
}

func (s Square) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Square(%d)", int(s))
	}
	if s == Empty {
		return "empty"
	}
	return s.Color().String() + " " + s.Kind().String()
}

func squareFromLetter(c byte) (Square, bool) {
	switch c {
	case 'P':
		return WhitePawn, true
	case 'N':
		return WhiteKnight, true
	case 'B':
		return WhiteBishop, true
	case 'R':
		return WhiteRook, true
	case 'Q':
		return WhiteQueen, true
	case 'K':
		return WhiteKing, true
	case 'p':
		return BlackPawn, true
	case 'n':
		return BlackKnight, true
	case 'b':
		return BlackBishop, true
	case 'r':
		return BlackRook, true
	case 'q':
		return BlackQueen, true
	case 'k':
		return BlackKing, true
	default:
		return Empty, false
	}
}
