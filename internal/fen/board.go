package fen

import (
	"strings"
)

const (
	// MaxLayoutLen is the length of the longest layout that can describe a
	// board: 8 ranks of 8 characters each, separated by 7 slashes.
	MaxLayoutLen = 8*8 + 7

	EmptyLayout   = "8/8/8/8/8/8/8/8"
	InitialLayout = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
)

// Board holds 64 squares, indexed by rank*8 + file. Rank 0 is White's back
// rank. Board is a value type and cannot be changed after Parse.
type Board struct {
	squares [64]Square
}

func findLayout(fenText string) (string, bool) {
	for _, tok := range strings.Fields(fenText) {
		// Tokens starting with a slash never qualify.
		if strings.IndexByte(tok, '/') > 0 {
			return tok, true
		}
	}
	return "", false
}

// Parse extracts the board layout field from fenText and decodes it. Other
// FEN fields are ignored. Either a complete board or an error is returned.
func Parse(fenText string) (Board, error) {
	layout, ok := findLayout(fenText)
	if !ok {
		return Board{}, ErrLayoutNotFound
	}
	if len(layout) > MaxLayoutLen {
		return Board{}, errorf(LayoutTooLong,
			"invalid layout: too many characters (%d > %d)", len(layout), MaxLayoutLen)
	}
	ranks := strings.Split(layout, "/")
	if len(ranks) != 8 {
		return Board{}, errorf(WrongRankCount,
			"invalid layout: must have exactly 8 ranks, got %d", len(ranks))
	}

	var b Board
	n := 0
	for r := 7; r >= 0; r-- {
		rank := ranks[r]
		for i := range len(rank) {
			c := rank[i]
			if '1' <= c && c <= '8' {
				n += int(c - '0')
				continue
			}
			sq, ok := squareFromLetter(c)
			if !ok {
				return Board{}, errorf(InvalidCharacter,
					"invalid character %q in layout at rank %d", c, 8-r)
			}
			// Overflow is reported once all the ranks are decoded.
			if n < len(b.squares) {
				b.squares[n] = sq
			}
			n++
		}
	}
	if n != len(b.squares) {
		return Board{}, errorf(WrongSquareCount,
			"invalid number of squares in layout: must be 64, got %d", n)
	}
	return b, nil
}

func MustParse(fenText string) Board {
	b, err := Parse(fenText)
	if err != nil {
		panic(err)
	}
	return b
}

func EmptyBoard() Board {
	return Board{}
}

func InitialBoard() Board {
	return MustParse(InitialLayout)
}

func validCoord(v int) bool {
	return 0 <= v && v < 8
}

// SquareAt returns the square on file x and rank y. Both coordinates must lie
// in 0..7.
func (b Board) SquareAt(x, y int) (Square, error) {
	if !validCoord(x) {
		return Empty, errorf(CoordinateOutOfRange, "x coordinate must be an integer in 0..7, got %d", x)
	}
	if !validCoord(y) {
		return Empty, errorf(CoordinateOutOfRange, "y coordinate must be an integer in 0..7, got %d", y)
	}
	return b.squares[y*8+x], nil
}

func SquareAt(b Board, x, y int) (Square, error) {
	return b.SquareAt(x, y)
}

// Squares returns a copy of all the squares in index order.
func (b Board) Squares() [64]Square {
	return b.squares
}

func (b Board) IsEmpty() bool {
	return b == Board{}
}

// Layout encodes the board back into the FEN layout field.
func (b Board) Layout() string {
	var s strings.Builder
	s.Grow(MaxLayoutLen)
	for y := 7; y >= 0; y-- {
		empty := 0
		for x := range 8 {
			sq := b.squares[y*8+x]
			if sq == Empty {
				empty++
				continue
			}
			if empty != 0 {
				_ = s.WriteByte(byte('0' + empty))
				empty = 0
			}
			_ = s.WriteByte(sq.Letter())
		}
		if empty != 0 {
			_ = s.WriteByte(byte('0' + empty))
		}
		if y != 0 {
			_ = s.WriteByte('/')
		}
	}
	return s.String()
}

func (b Board) String() string {
	return b.Layout()
}

func (b Board) SquareAssetName(x, y int) (string, error) {
	sq, err := b.SquareAt(x, y)
	if err != nil {
		return "", err
	}
	return AssetName(sq, IsLightSquare(x, y)), nil
}
