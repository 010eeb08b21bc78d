package slogx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type discardHandler struct{}

func IsDiscard(l *slog.Logger) bool {
	_, ok := l.Handler().(discardHandler)
	return ok
}

func DiscardLogger() *slog.Logger {
	return slog.New(Discard())
}

// Discard() is adapted from https://go-review.googlesource.com/c/go/+/547956. Hopefully it will
// eventually land into stable and we'll be able to remove this.
func Discard() slog.Handler {
	return discardHandler{}
}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("err", "<nil>")
	}
	return slog.String("err", err.Error())
}

type Options struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func (o *Options) FillDefaults() {
	if o.Level == "" {
		o.Level = "info"
	}
	if o.Format == "" {
		o.Format = "text"
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("bad log level %q", s)
	}
	return l, nil
}

// New creates a logger writing to w. Format is either "text" or "json".
func New(w io.Writer, o Options) (*slog.Logger, error) {
	o.FillDefaults()
	level, err := parseLevel(o.Level)
	if err != nil {
		return nil, err
	}
	ho := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(o.Format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, ho)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, ho)), nil
	default:
		return nil, fmt.Errorf("bad log format %q", o.Format)
	}
}
