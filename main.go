package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"void-miner/internal/game"
	"void-miner/internal/persistence"
	"void-miner/internal/persistence/runlog"
	"void-miner/internal/transport/observer"
	"void-miner/internal/tuning"
)

func main() {
	tuningFile := flag.String("tuning", "", "YAML tuning file (defaults if empty)")
	seed := flag.Int64("seed", 0, "World seed (0 = random)")
	name := flag.String("name", os.Getenv("USER"), "Pilot name for the run history")
	observeAddr := flag.String("observe", "", "Serve the spectator websocket on this address, e.g. :8080")
	dataDir := flag.String("data", "", "Run history directory (default $XDG_DATA_HOME/void-miner)")
	flag.Parse()

	cfg := tuning.Defaults()
	if *tuningFile != "" {
		var err error
		if cfg, err = tuning.Load(*tuningFile); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if *dataDir == "" {
		dir, err := runlog.Dir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		*dataDir = dir
	}

	// The terminal belongs to tcell, so logs go to a file.
	logger, closeLog := openLog(filepath.Join(*dataDir, "void-miner.log"))
	defer closeLog()
	slog.SetDefault(logger)

	stores := persistence.Open(*dataDir, logger)
	defer stores.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	gcfg := game.Config{
		Tuning:      cfg,
		Seed:        *seed,
		Player:      *name,
		Sinks:       []game.RunSink{stores},
		Leaderboard: stores,
		Logger:      logger,
	}

	if *observeAddr != "" {
		hub := observer.NewHub(logger)
		go hub.Run(ctx)
		srv := &http.Server{Addr: *observeAddr, Handler: hub.Handler(), ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("observer server", "error", err)
			}
		}()
		defer srv.Close()
		gcfg.Observer = hub.Session(gcfg.Player)
	}

	g, err := game.New(gcfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g.Run(ctx)
}

// openLog returns a text logger writing to path, or a discarding logger when
// the file cannot be opened.
func openLog(path string) (*slog.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }
		}
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
}
