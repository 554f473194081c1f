// void-miner-server hosts one independent mining session per SSH
// connection. Build:
//
//	go build -o void-miner-server ./cmd/server
//
// Usage:
//
//	./void-miner-server [--port 2222] [--key server_host_key] [--observe :8080]
//
// Connect from any terminal:
//
//	ssh -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"void-miner/internal/game"
	"void-miner/internal/persistence"
	"void-miner/internal/persistence/runlog"
	internalssh "void-miner/internal/ssh"
	"void-miner/internal/transport/observer"
	"void-miner/internal/tuning"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	tuningFile := flag.String("tuning", "", "YAML tuning file (defaults if empty)")
	observeAddr := flag.String("observe", "", "Serve the spectator websocket on this address, e.g. :8080")
	dataDir := flag.String("data", "", "Run history directory (default $XDG_DATA_HOME/void-miner)")
	maxSessions := flag.Int("max-sessions", 32, "Maximum concurrent SSH sessions")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := tuning.Defaults()
	if *tuningFile != "" {
		var err error
		if cfg, err = tuning.Load(*tuningFile); err != nil {
			logger.Error("load tuning", "path", *tuningFile, "error", err)
			os.Exit(1)
		}
	}

	if *dataDir == "" {
		dir, err := runlog.Dir()
		if err != nil {
			logger.Error("resolve data dir", "error", err)
			os.Exit(1)
		}
		*dataDir = dir
	}
	stores := persistence.Open(*dataDir, logger)
	defer stores.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *observer.Hub
	if *observeAddr != "" {
		hub = observer.NewHub(logger)
		go hub.Run(ctx)
		httpSrv := &http.Server{Addr: *observeAddr, Handler: hub.Handler(), ReadHeaderTimeout: 10 * time.Second}
		go func() {
			logger.Info("observer listening", "addr", *observeAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("observer server", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = httpSrv.Close()
		}()
	}

	h := &host{
		tuning:   cfg,
		stores:   stores,
		hub:      hub,
		logger:   logger,
		sessions: make(chan struct{}, *maxSessions),
	}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; appropriate for a private home server.
		// Add gossh.PublicKeyAuth or gossh.PasswordAuth options for real auth.
		HostSigners: []gossh.Signer{loadOrCreateHostKey(*keyFile, logger)},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("void-miner SSH server listening", "port", *port)
	logger.Info(fmt.Sprintf("connect with:  ssh -p %d -o StrictHostKeyChecking=no localhost", *port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		logger.Error("ssh server", "error", err)
		os.Exit(1)
	}
}

// ─── sessions ───────────────────────────────────────────────────────────────

// host runs one mining session per SSH connection.
type host struct {
	tuning   tuning.Tuning
	stores   *persistence.Stores
	hub      *observer.Hub
	logger   *slog.Logger
	sessions chan struct{} // semaphore bounding concurrent sessions
	seq      atomic.Int64
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the connection so the SSH session stays open.
func (h *host) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	select {
	case h.sessions <- struct{}{}:
		defer func() { <-h.sessions }()
	default:
		fmt.Fprintln(s, "The server is full. Try again later.")
		return
	}

	term := internalssh.Term(s)
	if !allowedTerms[term] {
		term = internalssh.DefaultTerm
	}
	name := sanitizeName(s.User())
	if name == "" {
		name = "pilot"
	}
	id := fmt.Sprintf("%s-%d", name, h.seq.Add(1))
	logger := h.logger.With("session", id, "remote", s.RemoteAddr().String())

	screen, err := internalssh.NewScreen(s, pty, winCh, term)
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		logger.Warn("session screen", "term", term, "error", err)
		return
	}
	defer screen.Fini()

	cfg := game.Config{
		Tuning:      h.tuning,
		Player:      name,
		Sinks:       []game.RunSink{h.stores},
		Leaderboard: h.stores,
		Logger:      logger,
	}
	if h.hub != nil {
		cfg.Observer = h.hub.Session(id)
	}

	logger.Info("session started", "term", term)
	game.NewWithScreen(screen, cfg).Run(s.Context())
	logger.Info("session ended")
}

// allowedTerms are the TERM values passed through to terminfo. Anything
// else falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
	"alacritty":             true,
}

// maxNameBytes bounds player names shown on the HUD and leaderboard.
const maxNameBytes = 16

// sanitizeName strips control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(s string) string {
	out := make([]byte, 0, maxNameBytes)
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if len(out)+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer
		}
	}

	logger.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		logger.Error("generate host key", "error", err)
		os.Exit(1)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		logger.Error("create signer", "error", err)
		os.Exit(1)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "void-miner server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600); err != nil {
			logger.Warn("persist host key", "path", path, "error", err)
		}
	}
	return signer
}
