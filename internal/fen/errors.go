package fen

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	LayoutNotFound ErrorKind = iota + 1
	LayoutTooLong
	WrongRankCount
	InvalidCharacter
	WrongSquareCount
	CoordinateOutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case LayoutNotFound:
		return "layout-not-found"
	case LayoutTooLong:
		return "layout-too-long"
	case WrongRankCount:
		return "wrong-rank-count"
	case InvalidCharacter:
		return "invalid-character"
	case WrongSquareCount:
		return "wrong-square-count"
	case CoordinateOutOfRange:
		return "coordinate-out-of-range"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is returned for every rejected input. Two ParseErrors are
// considered equal by errors.Is when their kinds match, so callers can test
// against the sentinels below.
type ParseError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ParseError) Error() string {
	return e.Msg
}

func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrLayoutNotFound       = &ParseError{Kind: LayoutNotFound, Msg: "cannot find board layout"}
	ErrLayoutTooLong        = &ParseError{Kind: LayoutTooLong, Msg: "invalid layout: too many characters"}
	ErrWrongRankCount       = &ParseError{Kind: WrongRankCount, Msg: "invalid layout: must have exactly 8 ranks"}
	ErrInvalidCharacter     = &ParseError{Kind: InvalidCharacter, Msg: "invalid character in layout"}
	ErrWrongSquareCount     = &ParseError{Kind: WrongSquareCount, Msg: "invalid number of squares in layout: must be 64"}
	ErrCoordinateOutOfRange = &ParseError{Kind: CoordinateOutOfRange, Msg: "coordinate must be an integer in 0..7"}
)

func errorf(kind ErrorKind, format string, args ...any) error {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind of a parse error, or returns zero if err is not a
// ParseError.
func KindOf(err error) ErrorKind {
	if pe := (*ParseError)(nil); errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
