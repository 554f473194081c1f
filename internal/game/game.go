// Package game hosts mining sessions on a tcell screen: it owns the input
// goroutine, the fixed-rate tick, the HUD log and saving finished runs.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"void-miner/internal/component"
	"void-miner/internal/ecs"
	"void-miner/internal/event"
	"void-miner/internal/input"
	"void-miner/internal/inventory"
	"void-miner/internal/mining"
	"void-miner/internal/persistence/runlog"
	"void-miner/internal/persistence/statsdb"
	"void-miner/internal/render"
	"void-miner/internal/sim"
	"void-miner/internal/tuning"

	"github.com/gdamore/tcell/v2"
)

const (
	// DefaultTickRate is the sim step and redraw interval.
	DefaultTickRate = 33 * time.Millisecond
	// maxStep caps dt after a stall so the ship does not jump.
	maxStep = 0.1
	// nearlyFull is the cargo fraction that triggers the warning.
	nearlyFull = 0.9

	maxMessages = 50
)

// RunSink stores finished runs.
type RunSink interface {
	SaveRun(ctx context.Context, r runlog.Record) error
}

// Publisher receives the snapshot of every tick.
type Publisher interface {
	Publish(sim.Snapshot)
}

// Leaderboard supplies the best runs for the end screen.
type Leaderboard interface {
	TopRuns(ctx context.Context, n int) ([]statsdb.Summary, error)
}

// Config wires a Game to its collaborators. Zero values are usable.
type Config struct {
	Tuning      tuning.Tuning
	Seed        int64 // 0 picks a time-based seed per run
	Player      string
	TickRate    time.Duration
	Hold        time.Duration
	Sinks       []RunSink
	Observer    Publisher
	Leaderboard Leaderboard
	Logger      *slog.Logger
}

// exit says why a run ended. exitQuit covers Ctrl-C and a cancelled
// context; exitClosed means the screen went away.
type exit uint8

const (
	exitEndRun exit = iota
	exitDestroyed
	exitQuit
	exitClosed
)

// Game is the top-level orchestrator for one screen.
type Game struct {
	screen     tcell.Screen
	ownsScreen bool
	cfg        Config
	logger     *slog.Logger

	renderer    *render.Renderer
	world       *sim.World
	events      *event.Queue
	keys        *input.Keyboard
	messages    []render.Message
	runs        int
	seed        int64
	started     time.Time
	cargoWarned bool
}

// New creates a Game on the local terminal.
func New(cfg Config) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	g := NewWithScreen(screen, cfg)
	g.ownsScreen = true
	return g, nil
}

// NewWithScreen creates a Game on an initialised screen owned by the caller.
func NewWithScreen(screen tcell.Screen, cfg Config) *Game {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if cfg.Hold <= 0 {
		cfg.Hold = input.DefaultHold
	}
	if cfg.Tuning.World.Width == 0 {
		cfg.Tuning = tuning.Defaults()
	}
	if cfg.Player == "" {
		cfg.Player = "pilot"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		screen: screen,
		cfg:    cfg,
		logger: logger.With("player", cfg.Player),
	}
	g.resetForRun()
	return g
}

// resetForRun builds a fresh world and clears all per-run state.
func (g *Game) resetForRun() {
	g.seed = g.cfg.Seed + int64(g.runs)
	if g.cfg.Seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	g.runs++
	g.events = &event.Queue{}
	g.world = sim.New(g.cfg.Tuning, rand.New(rand.NewSource(g.seed)), g.events, g.logger)
	g.renderer = render.NewRenderer(g.screen, g.cfg.Tuning.World.Width, g.cfg.Tuning.World.Height)
	g.keys = input.NewKeyboard(g.cfg.Hold)
	g.messages = nil
	g.started = time.Now()
	g.cargoWarned = false
	g.logger.Info("run started", "seed", g.seed, "asteroids", len(g.world.Asteroids()))
}

// World exposes the current session.
func (g *Game) World() *sim.World { return g.world }

// Run plays runs until the player quits, the context is cancelled or the
// screen goes away. Every finished run is saved to the configured sinks.
func (g *Game) Run(ctx context.Context) {
	if g.ownsScreen {
		defer g.screen.Fini()
	}

	// Start an async input reader goroutine.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	for {
		g.addMessage("Arrows or a/d/w to fly, 1 to fire the laser, p to pause, q to end the run.", tcell.ColorGray)
		why := g.play(ctx, eventCh)
		rec := g.saveRun(why == exitDestroyed)
		if why == exitQuit || why == exitClosed {
			return
		}
		if !g.showEndScreen(ctx, eventCh, rec, why) {
			return
		}
		g.resetForRun()
	}
}

// play runs the tick loop until the run ends.
func (g *Game) play(ctx context.Context, eventCh <-chan tcell.Event) exit {
	ticker := time.NewTicker(g.cfg.TickRate)
	defer ticker.Stop()
	last := time.Now()
	g.draw()

	for {
		select {
		case <-ctx.Done():
			return exitQuit
		case ev, ok := <-eventCh:
			if !ok {
				return exitClosed // screen closed / disconnected
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				g.screen.Sync()
				g.renderer.Resize()
				g.draw()
			case *tcell.EventKey:
				switch keyToHost(ev) {
				case hostQuit:
					return exitQuit
				case hostEndRun:
					return exitEndRun
				}
				g.keys.HandleKey(ev, time.Now())
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), maxStep)
			last = now
			g.step(dt, g.keys.Poll(now))
			g.draw()
			if g.world.Player() == ecs.NilEntity {
				return exitDestroyed
			}
		}
	}
}

// step advances the sim once and turns its notifications into HUD messages.
func (g *Game) step(dt float64, cmds input.Commands) {
	wasRunning := g.world.Running()
	g.world.Update(dt, cmds)
	if wasRunning != g.world.Running() {
		// Keys held across a pause would otherwise fire on resume.
		g.keys.Release()
	}
	g.drainEvents()
	if g.cfg.Observer != nil {
		g.cfg.Observer.Publish(g.world.Snapshot())
	}
}

func (g *Game) drainEvents() {
	cargo := g.playerCargo()
	unloaded := false
	for _, ev := range g.events.Drain() {
		switch ev.Kind {
		case event.ResourceMined:
			g.addMessage(minedMessage(ev.Resource, ev.Amount, ev.Tier), render.TierColor(ev.Tier))
		case event.InventoryFull:
			g.addMessage("Cargo hold full! Return to the depot.", tcell.ColorRed)
			g.beep()
		case event.ItemsAdded:
			if ev.Store == cargo && cargo != nil && cargo.Fraction() > nearlyFull && !g.cargoWarned {
				g.cargoWarned = true
				g.addMessage(fmt.Sprintf("Cargo hold at %.0f%%.", cargo.Fraction()*100), tcell.ColorOrange)
				g.beep()
			}
		case event.ItemsRemoved:
			if ev.Store == cargo {
				unloaded = true
			}
		}
	}
	if unloaded {
		g.addMessage("Cargo unloaded at the depot.", tcell.ColorAqua)
		if cargo != nil && cargo.Fraction() <= nearlyFull {
			g.cargoWarned = false
		}
	}
}

func minedMessage(t inventory.ResourceType, amount int, tier mining.Tier) string {
	switch tier {
	case mining.SuperCritical:
		return fmt.Sprintf("SUPER CRITICAL! Mined %d %s.", amount, t)
	case mining.Critical:
		return fmt.Sprintf("Critical hit! Mined %d %s.", amount, t)
	}
	return fmt.Sprintf("Mined %d %s.", amount, t)
}

func (g *Game) playerCargo() *inventory.Store {
	c := g.world.Arena().Get(g.world.Player(), component.CCargo)
	if c == nil {
		return nil
	}
	return c.(component.Cargo).Store
}

func (g *Game) beep() {
	if err := g.screen.Beep(); err != nil {
		g.logger.Debug("beep", "error", err)
	}
}

func (g *Game) draw() {
	snap := g.world.Snapshot()
	g.renderer.DrawFrame(g.world, snap)
	g.renderer.DrawHUD(snap, g.messages)
}

func (g *Game) addMessage(msg string, color tcell.Color) {
	g.messages = append(g.messages, render.Message{Text: msg, Color: color})
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// saveRun hands the finished run to every sink. Errors are logged and
// otherwise ignored so a disk problem never crashes the game.
func (g *Game) saveRun(destroyed bool) runlog.Record {
	rec := runlog.FromStats(g.cfg.Player, g.seed, g.started, g.world.Stats(), destroyed)
	// Not the session context: a dropped connection should still be recorded.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, s := range g.cfg.Sinks {
		if err := s.SaveRun(ctx, rec); err != nil {
			g.logger.Warn("save run", "error", err)
		}
	}
	g.logger.Info("run finished", "seed", g.seed, "mined", rec.TotalMined, "elapsed", rec.Duration)
	return rec
}
