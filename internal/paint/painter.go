// Package paint implements the dungeon painter: it turns an abstract room
// layout into fully painted ground and stuff tile grids.
package paint

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cryptcrawl/internal/dungeon"
	"github.com/samdwyer/cryptcrawl/internal/grid"
	"github.com/samdwyer/cryptcrawl/internal/telemetry"
	"github.com/samdwyer/cryptcrawl/internal/tiles"
)

// Prop placement thresholds for the single per-room draw.
const (
	chestChance = 0.25
	potChance   = 0.5
)

// propRoomRatio is the share of candidate rooms that receive props; the
// trailing rooms are intentionally left empty.
const propRoomRatio = 0.9

// minRoomSize is the smallest room the painter accepts: anything below has
// no interior once the wall border is reserved.
const minRoomSize = 3

// Edge identifies which side of a room a door sits on.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// String returns a human-readable edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

// ClassifyDoor determines which edge a room-local door position lies on.
// The checks run in the order top, bottom, left, right, so a door exactly at
// a corner resolves to the top/bottom edge. It is a pure function of the
// door's local coordinates and the room's dimensions.
func ClassifyDoor(x, y, width, height int) Edge {
	switch {
	case y == 0:
		return EdgeTop
	case y == height-1:
		return EdgeBottom
	case x == 0:
		return EdgeLeft
	case x == width-1:
		return EdgeRight
	}
	// A door off the boundary violates the generator's contract; treat it as
	// a right-edge door rather than inventing a new state.
	return EdgeRight
}

// Result holds the painted grids and the room classification for one level.
type Result struct {
	Ground *grid.Grid
	Stuff  *grid.Grid

	StartRoom  int   // always generation-order index 0
	EndRoom    int   // room holding the stairs; never the start room
	PropRooms  []int // rooms that received a prop, in placement order
	EmptyRooms []int // rooms intentionally left bare
}

// Painter paints layouts into tile grids using a tile index table and a
// random source. The same table and a seeded source reproduce identical
// output for the same layout.
type Painter struct {
	table *tiles.Table
	rng   *rand.Rand
}

// New creates a painter.
func New(table *tiles.Table, rng *rand.Rand) *Painter {
	return &Painter{table: table, rng: rng}
}

// Paint produces fully painted ground and stuff grids for the layout.
// It validates every room before writing anything: either all rooms are
// painted or the grids are never created.
func (p *Painter) Paint(ctx context.Context, layout *dungeon.Layout) (*Result, error) {
	tracer := telemetry.Tracer("paint")
	_, span := tracer.Start(ctx, "paint.level")
	defer span.End()

	if err := validate(layout); err != nil {
		return nil, err
	}

	res := &Result{
		Ground: grid.New(layout.Width, layout.Height),
		Stuff:  grid.New(layout.Width, layout.Height),
	}

	for i := range layout.Rooms {
		p.paintRoom(res.Ground, layout.Rooms[i])
	}
	for _, c := range layout.Corridors {
		res.Ground.Set(c.X, c.Y, p.table.Pick(tiles.RoleFloor, p.rng))
	}

	p.classifyRooms(layout, res)
	p.placeStairs(res, layout.Rooms[res.EndRoom])
	for _, idx := range res.PropRooms {
		p.placeProps(res.Stuff, layout.Rooms[idx])
	}

	span.SetAttributes(
		attribute.Int("paint.rooms", len(layout.Rooms)),
		attribute.Int("paint.prop_rooms", len(res.PropRooms)),
		attribute.Int("paint.empty_rooms", len(res.EmptyRooms)),
	)

	return res, nil
}

// validate enforces the painter's preconditions: at least a start and an end
// room, and every room large enough to hold an interior and fully on-grid.
func validate(layout *dungeon.Layout) error {
	if len(layout.Rooms) < 2 {
		return fmt.Errorf("layout needs at least 2 rooms, got %d", len(layout.Rooms))
	}
	for i, room := range layout.Rooms {
		if room.Width < minRoomSize || room.Height < minRoomSize {
			return fmt.Errorf("room %d is %dx%d; rooms must be at least %dx%d",
				i, room.Width, room.Height, minRoomSize, minRoomSize)
		}
		if room.Left() < 0 || room.Top() < 0 ||
			room.Right() >= layout.Width || room.Bottom() >= layout.Height {
			return fmt.Errorf("room %d extends outside the %dx%d grid",
				i, layout.Width, layout.Height)
		}
	}
	return nil
}

// paintRoom fills one room: weighted floor interior, fixed corner stamps,
// weighted wall edges, then door patterns over the walls.
func (p *Painter) paintRoom(ground *grid.Grid, room dungeon.Room) {
	// Interior, inset by one tile on each side to preserve the wall border.
	for y := room.Top() + 1; y <= room.Bottom()-1; y++ {
		for x := room.Left() + 1; x <= room.Right()-1; x++ {
			ground.Set(x, y, p.table.Pick(tiles.RoleFloor, p.rng))
		}
	}

	// Corners.
	ground.Set(room.Left(), room.Top(), p.table.Index(tiles.RoleCornerTopLeft))
	ground.Set(room.Right(), room.Top(), p.table.Index(tiles.RoleCornerTopRight))
	ground.Set(room.Left(), room.Bottom(), p.table.Index(tiles.RoleCornerBottomLeft))
	ground.Set(room.Right(), room.Bottom(), p.table.Index(tiles.RoleCornerBottomRight))

	// Edge segments, excluding corners.
	for x := room.Left() + 1; x <= room.Right()-1; x++ {
		ground.Set(x, room.Top(), p.table.Pick(tiles.RoleWallTop, p.rng))
		ground.Set(x, room.Bottom(), p.table.Pick(tiles.RoleWallBottom, p.rng))
	}
	for y := room.Top() + 1; y <= room.Bottom()-1; y++ {
		ground.Set(room.Left(), y, p.table.Pick(tiles.RoleWallLeft, p.rng))
		ground.Set(room.Right(), y, p.table.Pick(tiles.RoleWallRight, p.rng))
	}

	for _, door := range room.Doors {
		p.stampDoor(ground, room, door)
	}
}

// stampDoor writes a 3-cell door pattern over the wall, anchored one cell
// before the door position along the door's edge axis.
func (p *Painter) stampDoor(ground *grid.Grid, room dungeon.Room, door dungeon.Door) {
	wx, wy := room.X+door.X, room.Y+door.Y

	switch ClassifyDoor(door.X, door.Y, room.Width, room.Height) {
	case EdgeTop:
		p.stampRow(ground, wx-1, wy, p.table.Pattern(tiles.RoleDoorTop))
	case EdgeBottom:
		p.stampRow(ground, wx-1, wy, p.table.Pattern(tiles.RoleDoorBottom))
	case EdgeLeft:
		p.stampColumn(ground, wx, wy-1, p.table.Pattern(tiles.RoleDoorLeft))
	case EdgeRight:
		p.stampColumn(ground, wx, wy-1, p.table.Pattern(tiles.RoleDoorRight))
	}
}

func (p *Painter) stampRow(g *grid.Grid, x, y int, pattern []int) {
	for i, index := range pattern {
		g.Set(x+i, y, index)
	}
}

func (p *Painter) stampColumn(g *grid.Grid, x, y int, pattern []int) {
	for i, index := range pattern {
		g.Set(x, y+i, index)
	}
}

// classifyRooms partitions rooms into start, end, prop, and empty sets.
// The start room is always generation-order index 0. The end room is a
// uniform draw from the rest. Of the remaining rooms, a shuffled 90%
// (rounded down) receive props and the trailing 10% stay empty.
func (p *Painter) classifyRooms(layout *dungeon.Layout, res *Result) {
	n := len(layout.Rooms)

	res.StartRoom = 0
	res.EndRoom = 1 + p.rng.Intn(n-1)

	rest := make([]int, 0, n-2)
	for i := 1; i < n; i++ {
		if i != res.EndRoom {
			rest = append(rest, i)
		}
	}
	p.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	cut := int(float64(len(rest)) * propRoomRatio)
	res.PropRooms = rest[:cut]
	res.EmptyRooms = rest[cut:]
}

// placeStairs writes the stairs tile at the end room's center.
func (p *Painter) placeStairs(res *Result, end dungeon.Room) {
	res.Stuff.Set(end.CenterX(), end.CenterY(), p.table.Index(tiles.RoleStairs))
}

// placeProps decorates one prop room from a single draw: a chest at the
// center, a pot at a random cell well clear of the walls, or a tower group
// around the center.
func (p *Painter) placeProps(stuff *grid.Grid, room dungeon.Room) {
	cx, cy := room.Center()

	roll := p.rng.Float64()
	switch {
	case roll <= chestChance:
		stuff.Set(cx, cy, p.table.Index(tiles.RoleChest))

	case roll <= potChance:
		// At least 2 tiles from every wall, so a pot can never block a door.
		if room.Width < 5 || room.Height < 5 {
			return
		}
		x := room.Left() + 2 + p.rng.Intn(room.Width-4)
		y := room.Top() + 2 + p.rng.Intn(room.Height-4)
		stuff.Set(x, y, p.table.Pick(tiles.RolePot, p.rng))

	default:
		tower := p.table.Index(tiles.RoleTower)
		if room.Height >= 9 {
			stuff.Set(cx-1, cy+1, tower)
			stuff.Set(cx+1, cy+1, tower)
			stuff.Set(cx-1, cy-2, tower)
			stuff.Set(cx+1, cy-2, tower)
		} else {
			stuff.Set(cx-1, cy-1, tower)
			stuff.Set(cx+1, cy-1, tower)
		}
	}
}
