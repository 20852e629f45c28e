// Package game provides the demo's main loop: it owns the screen, the
// current level, and the player, and drives level transitions.
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cryptcrawl/internal/dungeon"
	"github.com/samdwyer/cryptcrawl/internal/entity"
	"github.com/samdwyer/cryptcrawl/internal/level"
	"github.com/samdwyer/cryptcrawl/internal/telemetry"
	"github.com/samdwyer/cryptcrawl/internal/tiles"
	"github.com/samdwyer/cryptcrawl/internal/ui"
)

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	table    *tiles.Table
	rng      *rand.Rand
	level    *level.Level
	player   *entity.Player
	running  bool
}

// New creates a new game instance.
func New(cfg Config) (*Game, error) {
	table, err := tiles.Load()
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, table),
		table:    table,
		rng:      rand.New(rand.NewSource(seed)),
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	if err := g.nextLevel(ctx, 1); err != nil {
		g.screen.Close()
		return err
	}

	for g.running {
		g.renderer.Render(g.level, g.player.X, g.player.Y)

		if err := g.handleInput(ctx); err != nil {
			g.screen.Close()
			return err
		}
	}

	g.screen.Close()
	return nil
}

// nextLevel tears down the current level wholesale and builds a fresh one.
func (g *Game) nextLevel(ctx context.Context, depth int) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.next_level")
	defer span.End()

	lvl, err := level.New(ctx, depth, dungeon.DefaultConfig(), g.table, g.rng)
	if err != nil {
		return err
	}

	g.level = lvl
	startX, startY := lvl.StartPosition()
	if g.player == nil {
		g.player = entity.NewPlayer(startX, startY)
	} else {
		g.player.MoveTo(startX, startY)
	}
	// Reveal the start room before the first frame renders.
	lvl.Update(startX, startY)

	span.SetAttributes(
		attribute.Int("level.depth", depth),
		attribute.Int("level.rooms", len(lvl.Layout.Rooms)),
		attribute.Int("player.start_x", startX),
		attribute.Int("player.start_y", startY),
	)
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) error {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		return g.tryMove(ctx, 0, -1)
	case tcell.KeyDown:
		return g.tryMove(ctx, 0, 1)
	case tcell.KeyLeft:
		return g.tryMove(ctx, -1, 0)
	case tcell.KeyRight:
		return g.tryMove(ctx, 1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		}
	}
	return nil
}

// tryMove attempts to move the player by the given delta, then runs the
// per-frame level update and the goal poll.
func (g *Game) tryMove(ctx context.Context, dx, dy int) error {
	newX := g.player.X + dx
	newY := g.player.Y + dy

	if !g.level.CanStep(newX, newY) {
		return nil
	}
	g.player.Move(dx, dy)
	g.level.Update(g.player.X, g.player.Y)

	if g.level.GoalReached() {
		return g.nextLevel(ctx, g.level.Depth+1)
	}
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
