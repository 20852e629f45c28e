// Package level owns the per-level state: the painted grids, the visibility
// tracker, and the goal latch. A Level is created whole at the start of a
// level and discarded whole at the end; nothing carries over.
package level

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cryptcrawl/internal/dungeon"
	"github.com/samdwyer/cryptcrawl/internal/grid"
	"github.com/samdwyer/cryptcrawl/internal/paint"
	"github.com/samdwyer/cryptcrawl/internal/telemetry"
	"github.com/samdwyer/cryptcrawl/internal/tiles"
	"github.com/samdwyer/cryptcrawl/internal/visibility"
)

// Level holds everything the host needs for one dungeon floor.
type Level struct {
	Depth  int // 1-based floor counter, display only
	Layout *dungeon.Layout
	Ground *grid.Grid
	Stuff  *grid.Grid

	tracker     *visibility.Tracker
	table       *tiles.Table
	stairsIndex int
	startRoom   int
	goalReached bool
}

// New generates, paints, and initializes a level. The painter runs to
// completion here, before any frame update: collision and prop state must be
// in place when the host's loop starts.
func New(ctx context.Context, depth int, cfg dungeon.Config, table *tiles.Table, rng *rand.Rand) (*Level, error) {
	tracer := telemetry.Tracer("level")
	ctx, span := tracer.Start(ctx, "level.new")
	defer span.End()

	layout := dungeon.Generate(ctx, cfg, rng)

	painter := paint.New(table, rng)
	res, err := painter.Paint(ctx, layout)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("level.depth", depth),
		attribute.Int("level.rooms", len(layout.Rooms)),
	)

	return &Level{
		Depth:       depth,
		Layout:      layout,
		Ground:      res.Ground,
		Stuff:       res.Stuff,
		tracker:     visibility.NewTracker(layout, table),
		table:       table,
		stairsIndex: table.Index(tiles.RoleStairs),
		startRoom:   res.StartRoom,
	}, nil
}

// StartPosition returns the player spawn cell: the start room's center.
func (l *Level) StartPosition() (int, int) {
	return l.Layout.Rooms[l.startRoom].Center()
}

// Shadow returns the shadow grid for rendering.
func (l *Level) Shadow() *grid.Grid {
	return l.tracker.Shadow()
}

// ActiveRoom returns the room the player currently occupies, or
// visibility.NoRoom.
func (l *Level) ActiveRoom() int {
	return l.tracker.ActiveRoom()
}

// Update feeds the player's current grid cell into the level: it resolves
// which room (if any) contains the cell, advances the visibility tracker,
// and latches the goal when the player stands on the stairs. Call it once
// per frame, after movement and before rendering.
func (l *Level) Update(playerX, playerY int) {
	l.tracker.SetActiveRoom(l.Layout.RoomAt(playerX, playerY))

	if l.Stuff.At(playerX, playerY) == l.stairsIndex {
		l.goalReached = true
	}
}

// GoalReached reports whether the goal condition has been met since the last
// check, and clears the latch. The host polls this instead of registering a
// callback.
func (l *Level) GoalReached() bool {
	reached := l.goalReached
	l.goalReached = false
	return reached
}

// CanStep reports whether the player may move onto a cell. The ground cell
// must be painted and walkable; unpainted void blocks even though the stuff
// layer treats empty as passable. On the stuff layer the stairs are steppable
// even though they collide for everything else, so the goal overlap can
// happen.
func (l *Level) CanStep(x, y int) bool {
	if !l.Ground.InBounds(x, y) {
		return false
	}
	ground := l.Ground.At(x, y)
	if ground == grid.Empty || !l.table.Walkable(ground) {
		return false
	}
	stuff := l.Stuff.At(x, y)
	return l.table.Walkable(stuff) || stuff == l.stairsIndex
}
