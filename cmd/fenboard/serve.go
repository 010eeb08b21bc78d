package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alex65536/fenboard/internal/database"
	"github.com/alex65536/fenboard/internal/diagcache"
	"github.com/alex65536/fenboard/internal/presets"
	"github.com/alex65536/fenboard/internal/saved"
	"github.com/alex65536/fenboard/internal/util/randutil"
	"github.com/alex65536/fenboard/internal/util/signal"
	"github.com/alex65536/fenboard/internal/util/slogx"
	"github.com/alex65536/fenboard/internal/webui"
)

const shutdownTimeout = 10 * time.Second

func loadPresetBook(path string) (*presets.Book, error) {
	if path == "" {
		return presets.ClassicBook(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preset book: %w", err)
	}
	defer f.Close()
	b, err := presets.NewBook(f, randutil.DefaultSource())
	if err != nil {
		return nil, fmt.Errorf("load preset book: %w", err)
	}
	return b, nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Args:  cobra.ExactArgs(0),
		Short: "Start the web server",
		Long: `Starts the web interface, which allows to edit FEN strings, see the
resulting positions, render diagrams and keep named positions.
`,
	}
	p := cmd.Flags()
	optsPath := p.StringP(
		"options", "o", "",
		"options file",
	)
	secretsPath := p.StringP(
		"secrets", "s", "",
		"secrets file, created if missing",
	)
	if err := cmd.MarkFlagRequired("secrets"); err != nil {
		panic(err)
	}

	cmd.RunE = func(cmd *cobra.Command, _args []string) error {
		secrets, err := loadSecrets(*secretsPath)
		if err != nil {
			return err
		}
		opts, err := loadOptions(*optsPath)
		if err != nil {
			return err
		}
		if err := opts.MixSecrets(&secrets); err != nil {
			return fmt.Errorf("mix secrets into options: %w", err)
		}
		opts.FillDefaults()

		log, err := slogx.New(cmd.ErrOrStderr(), opts.Log)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		book, err := loadPresetBook(opts.PresetBook)
		if err != nil {
			return err
		}
		db, err := database.New(log, opts.DB)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		savedMgr := saved.NewManager(log, db, opts.Saved)
		defer savedMgr.Close()
		cache, err := diagcache.Open(log, opts.Cache)
		if err != nil {
			return fmt.Errorf("open diagram cache: %w", err)
		}
		defer cache.Close()

		mux := http.NewServeMux()
		if err := webui.Handle(ctx, log, mux, "", webui.Config{
			Saved:               savedMgr,
			Presets:             book,
			Cache:               cache,
			SessionStoreFactory: db,
		}, opts.WebUI); err != nil {
			return fmt.Errorf("handle webui: %w", err)
		}

		servers, err := newServers(ctx, log, &opts, mux)
		if err != nil {
			return fmt.Errorf("create servers: %w", err)
		}
		servers.Go()

		<-ctx.Done()
		log.Info("shutting down", slog.Any("cause", context.Cause(ctx)))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		servers.Shutdown(shutdownCtx)
		return nil
	}

	return cmd
}
