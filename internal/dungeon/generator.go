package dungeon

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cryptcrawl/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 23

	// BSP parameters
	defaultMinRoomSize = 7  // Minimum room dimension (leaves a 5-tile interior)
	defaultMaxRoomSize = 13 // Maximum room dimension
	defaultMinLeafSize = 10 // Minimum BSP leaf size before stopping split
)

// Config holds the generation parameters for one layout.
type Config struct {
	Width, Height int
	MinRoomSize   int
	MaxRoomSize   int
	MinLeafSize   int
	// OddSizes rounds room dimensions down to odd values so every room has a
	// true center cell.
	OddSizes bool
	// DoorPadding is the minimum distance a door keeps from a room corner.
	// Corner cells themselves are never doors.
	DoorPadding int
}

// DefaultConfig returns the generation parameters used by the demo.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MinRoomSize: defaultMinRoomSize,
		MaxRoomSize: defaultMaxRoomSize,
		MinLeafSize: defaultMinLeafSize,
		OddSizes:    true,
		DoorPadding: 1,
	}
}

// generator carries the working state for one Generate call.
type generator struct {
	cfg      Config
	rng      *rand.Rand
	rooms    []Room
	corridor map[Point]bool
	order    []Point // corridor cells in carve order, for deterministic output
}

// Generate produces a dungeon layout: BSP room placement, then door-first
// connection of the BSP siblings. Every connection picks a door on the padded
// wall span of each room and routes a corridor between the two cells just
// outside those doors, walking only cells that belong to no room. Corridors
// therefore never touch a room's wall except at a recorded door, which keeps
// every room reachable once the walls are painted.
func Generate(ctx context.Context, cfg Config, rng *rand.Rand) *Layout {
	tracer := telemetry.Tracer("dungeon")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	g := &generator{
		cfg:      cfg,
		rng:      rng,
		corridor: make(map[Point]bool),
	}

	// Start BSP with the dungeon inset by the map border.
	root := &bspNode{
		x:       1,
		y:       1,
		width:   cfg.Width - 2,
		height:  cfg.Height - 2,
		roomIdx: -1,
	}

	g.splitNode(root)
	g.createRooms(root)
	g.connectRooms(root)

	layout := &Layout{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Rooms:     g.rooms,
		Corridors: g.order,
	}

	doorCount := 0
	for _, room := range layout.Rooms {
		doorCount += len(room.Doors)
	}
	span.SetAttributes(
		attribute.Int("dungeon.width", cfg.Width),
		attribute.Int("dungeon.height", cfg.Height),
		attribute.Int("dungeon.room_count", len(layout.Rooms)),
		attribute.Int("dungeon.door_count", doorCount),
		attribute.Int("dungeon.corridor_cells", len(layout.Corridors)),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return layout
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	roomIdx       int // index into generator.rooms, or -1
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (g *generator) splitNode(node *bspNode) {
	minLeaf := g.cfg.MinLeafSize

	// Stop if too small to split
	if node.width < minLeaf*2 && node.height < minLeaf*2 {
		return
	}

	// Determine split direction
	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeaf*2 {
		splitHorizontally = false // Split vertically (left/right)
	} else if node.height >= minLeaf*2 {
		splitHorizontally = true // Split horizontally (top/bottom)
	} else if node.width >= minLeaf*2 {
		splitHorizontally = false
	} else {
		return // Can't split
	}

	var splitPos int
	if splitHorizontally {
		lo, hi := minLeaf, node.height-minLeaf
		if hi <= lo {
			return
		}
		splitPos = lo + g.rng.Intn(hi-lo+1)
	} else {
		lo, hi := minLeaf, node.width-minLeaf
		if hi <= lo {
			return
		}
		splitPos = lo + g.rng.Intn(hi-lo+1)
	}

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos, roomIdx: -1}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos, roomIdx: -1}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height, roomIdx: -1}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height, roomIdx: -1}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// createRooms places one room inside each leaf node of the BSP tree.
func (g *generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	minRoom, maxRoom := g.cfg.MinRoomSize, g.cfg.MaxRoomSize

	roomWidth := minRoom + g.rng.Intn(max(1, min(maxRoom-minRoom+1, node.width-minRoom+1)))
	roomHeight := minRoom + g.rng.Intn(max(1, min(maxRoom-minRoom+1, node.height-minRoom+1)))

	// Ensure the room fits within the leaf with a one-tile margin, so rooms
	// in adjacent leaves never share a wall and every room keeps a free ring
	// of corridor-routable cells around it.
	if roomWidth > node.width-2 {
		roomWidth = node.width - 2
	}
	if roomHeight > node.height-2 {
		roomHeight = node.height - 2
	}
	if g.cfg.OddSizes {
		if roomWidth%2 == 0 {
			roomWidth--
		}
		if roomHeight%2 == 0 {
			roomHeight--
		}
	}
	if roomWidth < minRoom || roomHeight < minRoom {
		return // Skip if too small
	}

	roomX := node.x + 1 + g.rng.Intn(max(1, node.width-roomWidth-1))
	roomY := node.y + 1 + g.rng.Intn(max(1, node.height-roomHeight-1))

	g.rooms = append(g.rooms, Room{X: roomX, Y: roomY, Width: roomWidth, Height: roomHeight})
	node.roomIdx = len(g.rooms) - 1
}

// connectRooms links the two subtrees of every split node.
func (g *generator) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	g.connectRooms(node.left)
	g.connectRooms(node.right)

	a := g.getRoomIndex(node.left)
	b := g.getRoomIndex(node.right)
	if a >= 0 && b >= 0 {
		g.connectPair(a, b)
	}
}

// getRoomIndex returns a room index from a subtree (any room will do), or -1.
func (g *generator) getRoomIndex(node *bspNode) int {
	if node == nil {
		return -1
	}
	if node.roomIdx >= 0 {
		return node.roomIdx
	}
	if idx := g.getRoomIndex(node.left); idx >= 0 {
		return idx
	}
	return g.getRoomIndex(node.right)
}

// connectPair picks a door on each room facing the other, then carves a
// corridor between the cells just outside the two doors.
func (g *generator) connectPair(a, b int) {
	doorA, outA := g.pickDoor(a, g.rooms[b].CenterX(), g.rooms[b].CenterY())
	doorB, outB := g.pickDoor(b, g.rooms[a].CenterX(), g.rooms[a].CenterY())

	path := g.route(outA, outB)
	if path == nil {
		// Rooms keep a free ring around them, so the space outside all rooms
		// is connected and routing cannot fail for generated layouts.
		return
	}
	for _, p := range path {
		g.carveCell(p.X, p.Y)
	}
	g.addDoor(a, doorA)
	g.addDoor(b, doorB)
}

// pickDoor selects a door on the edge of a room facing the target cell. The
// door position is the target coordinate clamped into the padded wall span,
// so it is never a corner and respects DoorPadding. It returns the room-local
// door and the world cell just outside it.
func (g *generator) pickDoor(idx, tx, ty int) (Door, Point) {
	room := g.rooms[idx]

	dx, dy := tx-room.CenterX(), ty-room.CenterY()
	if abs(dx) > abs(dy) {
		pad := min(g.cfg.DoorPadding, (room.Height-3)/2)
		y := min(max(ty, room.Top()+1+pad), room.Bottom()-1-pad)
		if dx > 0 {
			return Door{X: room.Width - 1, Y: y - room.Y}, Point{X: room.Right() + 1, Y: y}
		}
		return Door{X: 0, Y: y - room.Y}, Point{X: room.Left() - 1, Y: y}
	}
	pad := min(g.cfg.DoorPadding, (room.Width-3)/2)
	x := min(max(tx, room.Left()+1+pad), room.Right()-1-pad)
	if dy > 0 {
		return Door{X: x - room.X, Y: room.Height - 1}, Point{X: x, Y: room.Bottom() + 1}
	}
	return Door{X: x - room.X, Y: 0}, Point{X: x, Y: room.Top() - 1}
}

// route finds a shortest corridor path between two cells, walking only cells
// inside the map border that belong to no room. The neighbor order is fixed,
// so the same layout always yields the same path.
func (g *generator) route(from, to Point) []Point {
	if from == to {
		return []Point{from}
	}

	steps := [4]Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
	parent := map[Point]Point{from: from}
	queue := []Point{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, s := range steps {
			next := Point{X: cur.X + s.X, Y: cur.Y + s.Y}
			if next.X <= 0 || next.X >= g.cfg.Width-1 || next.Y <= 0 || next.Y >= g.cfg.Height-1 {
				continue
			}
			if _, seen := parent[next]; seen {
				continue
			}
			if g.insideRoom(next) {
				continue
			}
			parent[next] = cur

			if next == to {
				var path []Point
				for p := to; ; p = parent[p] {
					path = append(path, p)
					if p == from {
						break
					}
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// insideRoom reports whether a cell belongs to any placed room, walls included.
func (g *generator) insideRoom(p Point) bool {
	for _, room := range g.rooms {
		if room.Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}

// addDoor records a door on a room, skipping duplicates from connections that
// clamped to the same wall cell.
func (g *generator) addDoor(idx int, door Door) {
	for _, d := range g.rooms[idx].Doors {
		if d == door {
			return
		}
	}
	g.rooms[idx].Doors = append(g.rooms[idx].Doors, door)
}

func (g *generator) carveCell(x, y int) {
	if x <= 0 || x >= g.cfg.Width-1 || y <= 0 || y >= g.cfg.Height-1 {
		return
	}
	p := Point{X: x, Y: y}
	if !g.corridor[p] {
		g.corridor[p] = true
		g.order = append(g.order, p)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
