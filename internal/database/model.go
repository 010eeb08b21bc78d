package database

import (
	"github.com/alex65536/fenboard/internal/saved"
)

var models = []any{
	&saved.Board{},
}
