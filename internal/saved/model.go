package saved

import (
	"context"
	"errors"

	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/util/timeutil"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrBadName       = errors.New("bad board name")
)

type Board struct {
	ID        string           `gorm:"primaryKey"`
	Name      string           `gorm:"index"`
	Layout    fen.Board        `gorm:"serializer:fen"`
	Rotated   bool
	CreatedAt timeutil.UTCTime `gorm:"index"`
}

type DB interface {
	CreateBoard(ctx context.Context, board Board) error
	GetBoard(ctx context.Context, boardID string) (Board, error)
	ListBoards(ctx context.Context, limit int) ([]Board, error)
	DeleteBoard(ctx context.Context, boardID string) error
	CountBoards(ctx context.Context) (int64, error)
	PruneBoards(ctx context.Context, keep int, olderThan timeutil.UTCTime) (int64, error)
}
