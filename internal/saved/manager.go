package saved

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/util/idgen"
	"github.com/alex65536/fenboard/internal/util/slogx"
	"github.com/alex65536/fenboard/internal/util/timeutil"
)

type ManagerOptions struct {
	GCInterval time.Duration `toml:"gc-interval"`
	MaxBoards  int           `toml:"max-boards"`
	MaxAge     time.Duration `toml:"max-age"`
	MaxNameLen int           `toml:"max-name-len"`
}

func (o *ManagerOptions) FillDefaults() {
	if o.GCInterval == 0 {
		o.GCInterval = 10 * time.Minute
	}
	if o.MaxBoards == 0 {
		o.MaxBoards = 1000
	}
	if o.MaxAge == 0 {
		o.MaxAge = 30 * 24 * time.Hour
	}
	if o.MaxNameLen == 0 {
		o.MaxNameLen = 64
	}
}

type Manager struct {
	DB
	o      *ManagerOptions
	log    *slog.Logger
	ctx    context.Context
	cancel func()
	done   chan struct{}
}

func NewManager(log *slog.Logger, db DB, o ManagerOptions) *Manager {
	o.FillDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		DB:     db,
		o:      &o,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go m.loop()
	return m
}

func (m *Manager) Close() {
	m.cancel()
	<-m.done
}

func (m *Manager) gc() {
	cnt, err := m.PruneBoards(m.ctx, m.o.MaxBoards, timeutil.NowUTC().Add(-m.o.MaxAge))
	if err != nil {
		m.log.Warn("could not prune saved boards", slogx.Err(err))
		return
	}
	if cnt != 0 {
		m.log.Info("pruned saved boards", slog.Int64("count", cnt))
	}
}

func (m *Manager) loop() {
	defer close(m.done)
	ticker := time.NewTicker(m.o.GCInterval)
	defer ticker.Stop()
	for {
		m.gc()
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// NormalizeName trims the name and checks that it is printable and not too
// long. An empty name is replaced with a random one.
func (m *Manager) NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return petname.Generate(3, "-"), nil
	}
	if utf8.RuneCountInString(name) > m.o.MaxNameLen {
		return "", fmt.Errorf("%w: too long", ErrBadName)
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return "", fmt.Errorf("%w: non-printable characters", ErrBadName)
		}
	}
	return name, nil
}

func (m *Manager) Save(ctx context.Context, name string, layout fen.Board, rotated bool) (Board, error) {
	name, err := m.NormalizeName(name)
	if err != nil {
		return Board{}, err
	}
	board := Board{
		ID:        idgen.ID(),
		Name:      name,
		Layout:    layout,
		Rotated:   rotated,
		CreatedAt: timeutil.NowUTC(),
	}
	if err := m.CreateBoard(ctx, board); err != nil {
		return Board{}, fmt.Errorf("save to db: %w", err)
	}
	m.log.Info("saved board",
		slog.String("board_id", board.ID),
		slog.String("layout", layout.Layout()),
	)
	return board, nil
}
