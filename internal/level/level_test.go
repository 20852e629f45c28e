package level

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/cryptcrawl/internal/dungeon"
	"github.com/samdwyer/cryptcrawl/internal/tiles"
	"github.com/samdwyer/cryptcrawl/internal/visibility"
)

func newTestLevel(t *testing.T, seed int64) *Level {
	t.Helper()
	lvl, err := New(context.Background(), 1, dungeon.DefaultConfig(), tiles.MustLoad(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Failed to create level: %v", err)
	}
	return lvl
}

func TestStartPositionIsWalkable(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		lvl := newTestLevel(t, seed)

		x, y := lvl.StartPosition()
		if !lvl.CanStep(x, y) {
			t.Errorf("seed %d: start position (%d,%d) is not steppable", seed, x, y)
		}
		if idx := lvl.Layout.RoomAt(x, y); idx != 0 {
			t.Errorf("seed %d: start position in room %d, want room 0", seed, idx)
		}
	}
}

func TestUpdateTracksActiveRoom(t *testing.T) {
	lvl := newTestLevel(t, 5)

	x, y := lvl.StartPosition()
	lvl.Update(x, y)
	if lvl.ActiveRoom() != 0 {
		t.Errorf("Active room = %d after spawning in room 0", lvl.ActiveRoom())
	}

	// A border cell belongs to no room.
	lvl.Update(0, 0)
	if lvl.ActiveRoom() != visibility.NoRoom {
		t.Errorf("Active room = %d on the map border, want NoRoom", lvl.ActiveRoom())
	}
}

// findStairs locates the painted stairs cell on the stuff grid.
func findStairs(t *testing.T, lvl *Level) (int, int) {
	t.Helper()
	stairs := tiles.MustLoad().Index(tiles.RoleStairs)
	for y := 0; y < lvl.Stuff.Height(); y++ {
		for x := 0; x < lvl.Stuff.Width(); x++ {
			if lvl.Stuff.At(x, y) == stairs {
				return x, y
			}
		}
	}
	t.Fatal("No stairs tile painted")
	return 0, 0
}

func TestGoalLatch(t *testing.T) {
	lvl := newTestLevel(t, 7)
	sx, sy := findStairs(t, lvl)

	if lvl.GoalReached() {
		t.Error("Goal should not be reached before any update")
	}

	lvl.Update(sx, sy)
	if !lvl.GoalReached() {
		t.Error("Goal should latch when the player stands on the stairs")
	}
	// Consumed on read.
	if lvl.GoalReached() {
		t.Error("Goal latch should clear after being read")
	}

	// Stairs are steppable despite colliding on the exclusion list.
	if !lvl.CanStep(sx, sy) {
		t.Error("Stairs cell should be steppable")
	}
}

func TestStairsReachableFromStart(t *testing.T) {
	// Flood-fill over CanStep: on every seed there must be a walkable path
	// from the start position to the stairs, or the level can never be won.
	for seed := int64(1); seed <= 100; seed++ {
		lvl := newTestLevel(t, seed)

		sx, sy := findStairs(t, lvl)
		px, py := lvl.StartPosition()

		visited := make([]bool, lvl.Ground.Width()*lvl.Ground.Height())
		at := func(x, y int) int { return y*lvl.Ground.Width() + x }

		queue := [][2]int{{px, py}}
		visited[at(px, py)] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
				x, y := cur[0]+d[0], cur[1]+d[1]
				if !lvl.Ground.InBounds(x, y) || visited[at(x, y)] || !lvl.CanStep(x, y) {
					continue
				}
				visited[at(x, y)] = true
				queue = append(queue, [2]int{x, y})
			}
		}

		if !visited[at(sx, sy)] {
			t.Errorf("seed %d: stairs at (%d,%d) unreachable from start (%d,%d)",
				seed, sx, sy, px, py)
		}
	}
}

func TestCanStepRespectsWallsAndProps(t *testing.T) {
	lvl := newTestLevel(t, 9)

	room := lvl.Layout.Rooms[0]
	if lvl.CanStep(room.Left(), room.CenterY()) {
		t.Error("Left wall should block movement")
	}
	if lvl.CanStep(room.CenterX(), room.Top()) {
		t.Error("Top wall should block movement")
	}
	if lvl.CanStep(-1, 0) || lvl.CanStep(0, lvl.Ground.Height()) {
		t.Error("Out-of-bounds cells should block movement")
	}
	// The map border is never painted: void blocks too.
	if lvl.CanStep(0, 0) {
		t.Error("Unpainted void should block movement")
	}
	if !lvl.CanStep(room.CenterX(), room.CenterY()) {
		t.Error("Start room center should be steppable")
	}
}

func TestLevelsAreIndependent(t *testing.T) {
	// A new level starts with a fresh tracker: nothing seen, no goal.
	rng := rand.New(rand.NewSource(11))
	table := tiles.MustLoad()

	l1, err := New(context.Background(), 1, dungeon.DefaultConfig(), table, rng)
	if err != nil {
		t.Fatalf("Failed to create level 1: %v", err)
	}
	x, y := l1.StartPosition()
	l1.Update(x, y)

	l2, err := New(context.Background(), 2, dungeon.DefaultConfig(), table, rng)
	if err != nil {
		t.Fatalf("Failed to create level 2: %v", err)
	}
	if l2.Depth != 2 {
		t.Errorf("Depth = %d, want 2", l2.Depth)
	}
	if l2.ActiveRoom() != visibility.NoRoom {
		t.Error("New level should start with no active room")
	}
	if l2.GoalReached() {
		t.Error("New level should start with the goal latch clear")
	}

	opaque := table.Index(tiles.RoleShadowOpaque)
	for yy := 0; yy < l2.Shadow().Height(); yy++ {
		for xx := 0; xx < l2.Shadow().Width(); xx++ {
			if l2.Shadow().At(xx, yy) != opaque {
				t.Fatalf("New level shadow cell (%d,%d) not opaque", xx, yy)
			}
		}
	}
}
