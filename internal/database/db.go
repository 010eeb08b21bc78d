package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/wader/gormstore/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alex65536/fenboard/internal/saved"
	_ "github.com/alex65536/fenboard/internal/util/gormutil"
	"github.com/alex65536/fenboard/internal/util/slogx"
	"github.com/alex65536/fenboard/internal/util/timeutil"
	"github.com/alex65536/fenboard/internal/webui"
)

type Options struct {
	Path          string        `toml:"path"`
	Debug         bool          `toml:"debug"`
	SlowThreshold time.Duration `toml:"slow-threshold"`
	BusyTimeout   time.Duration `toml:"busy-timeout"`
	UseWAL        bool          `toml:"use-wal"`
}

func (o *Options) FillDefaults() {
	if o.Path == "" {
		o.Path = "fenboard.db"
	}
	if o.SlowThreshold == 0 {
		o.SlowThreshold = 200 * time.Millisecond
	}
	if o.BusyTimeout == 0 {
		o.BusyTimeout = 1 * time.Minute
	}
}

type DB struct {
	db  *gorm.DB
	log *slog.Logger
}

var (
	_ saved.DB                  = (*DB)(nil)
	_ webui.SessionStoreFactory = (*DB)(nil)
)

func (d *DB) Close() {
	db, err := d.db.DB()
	if err != nil {
		d.log.Error("could not get underlying db", slogx.Err(err))
		return
	}
	if err := db.Close(); err != nil {
		d.log.Error("could not close db", slogx.Err(err))
	}
}

func buildPath(o Options) string {
	var params []string
	if o.UseWAL {
		params = append(params, "_journal_mode=WAL")
		params = append(params, "_synchronous=NORMAL")
	}
	params = append(params, fmt.Sprintf("_busy_timeout=%v", o.BusyTimeout.Milliseconds()))
	params = append(params, "_foreign_keys=1")
	return o.Path + "?" + strings.Join(params, "&")
}

func New(log *slog.Logger, o Options) (*DB, error) {
	o.FillDefaults()

	log.Info("opening db", slog.String("path", o.Path))
	db, err := gorm.Open(sqlite.Open(buildPath(o)), &gorm.Config{
		Logger: Logger(log, o),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	d := &DB{db: db, log: log}

	log.Info("migrating db")
	if err := db.AutoMigrate(models...); err != nil {
		d.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	log.Info("db opened")
	return d, nil
}

func (d *DB) CreateBoard(ctx context.Context, board saved.Board) error {
	err := d.db.WithContext(ctx).Create(&board).Error
	if err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

func (d *DB) GetBoard(ctx context.Context, boardID string) (saved.Board, error) {
	var boards []saved.Board
	err := d.db.WithContext(ctx).Where("id = ?", boardID).Limit(1).Find(&boards).Error
	if err != nil {
		return saved.Board{}, fmt.Errorf("get board: %w", err)
	}
	if len(boards) == 0 {
		return saved.Board{}, saved.ErrBoardNotFound
	}
	return boards[0], nil
}

func (d *DB) ListBoards(ctx context.Context, limit int) ([]saved.Board, error) {
	var boards []saved.Board
	err := d.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

func (d *DB) DeleteBoard(ctx context.Context, boardID string) error {
	res := d.db.WithContext(ctx).Delete(&saved.Board{ID: boardID})
	if res.Error != nil {
		return fmt.Errorf("delete board: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return saved.ErrBoardNotFound
	}
	return nil
}

func (d *DB) CountBoards(ctx context.Context) (int64, error) {
	var cnt int64
	err := d.db.WithContext(ctx).Model(&saved.Board{}).Count(&cnt).Error
	if err != nil {
		return 0, fmt.Errorf("count boards: %w", err)
	}
	return cnt, nil
}

func (d *DB) PruneBoards(ctx context.Context, keep int, olderThan timeutil.UTCTime) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("created_at < ?", olderThan).Delete(&saved.Board{})
		if res.Error != nil {
			return fmt.Errorf("delete old boards: %w", res.Error)
		}
		total += res.RowsAffected
		keepIDs := tx.Model(&saved.Board{}).
			Select("id").
			Order("created_at DESC, id DESC").
			Limit(keep)
		res = tx.Where("id NOT IN (?)", keepIDs).Delete(&saved.Board{})
		if res.Error != nil {
			return fmt.Errorf("delete extra boards: %w", res.Error)
		}
		total += res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (d *DB) NewSessionStore(ctx context.Context, opts webui.SessionOptions) sessions.Store {
	s := gormstore.New(d.db, opts.Key)
	s.SessionOpts.Path = "/"
	s.SessionOpts.MaxAge = int(opts.MaxAge.Seconds())
	s.SessionOpts.HttpOnly = true
	s.SessionOpts.Secure = opts.Secure
	go s.PeriodicCleanup(opts.CleanupInterval, ctx.Done())
	return s
}
