package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/mattn/go-colorable"
	"gorm.io/gorm/logger"

	"github.com/alex65536/fenboard/internal/util/httputil"
	"github.com/alex65536/fenboard/internal/util/slogx"
)

type slogLogger struct {
	log *slog.Logger
	o   *Options
}

func Logger(srcLog *slog.Logger, o Options) logger.Interface {
	if o.Debug {
		// In debug mode, use a fancier logger built into gorm itself.
		return logger.New(
			log.New(colorable.NewColorableStdout(), "", log.LstdFlags),
			logger.Config{
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: false,
				Colorful:                  true,
			},
		)
	}
	return &slogLogger{
		log: srcLog.With(slog.String("component", "gorm")),
		o:   &o,
	}
}

func (l *slogLogger) withCtx(ctx context.Context) *slog.Logger {
	if rid := httputil.ExtractReqID(ctx); rid != "" {
		return l.log.With(slog.String("rid", rid))
	}
	return l.log
}

func (l *slogLogger) LogMode(logger.LogLevel) logger.Interface {
	return l
}

func (l *slogLogger) Info(ctx context.Context, msg string, data ...any) {
	l.withCtx(ctx).Info("gorm info", slog.String("msg", fmt.Sprintf(msg, data...)))
}

func (l *slogLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.withCtx(ctx).Warn("gorm warn", slog.String("msg", fmt.Sprintf(msg, data...)))
}

func (l *slogLogger) Error(ctx context.Context, msg string, data ...any) {
	l.withCtx(ctx).Error("gorm error", slog.String("msg", fmt.Sprintf(msg, data...)))
}

func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		sql, _ := fc()
		l.withCtx(ctx).Error("sql error", slog.Duration("elapsed", elapsed), slogx.Err(err), slog.String("sql", sql))
	case elapsed > l.o.SlowThreshold:
		sql, rows := fc()
		l.withCtx(ctx).Warn("slow sql",
			slog.Duration("elapsed", elapsed),
			slog.String("sql", sql),
			slog.Int64("rows", rows),
		)
	}
}
