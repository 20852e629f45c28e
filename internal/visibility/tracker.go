// Package visibility tracks per-room fog of war over a shadow grid: the
// occupied room is revealed, rooms seen earlier are dimmed, and rooms never
// entered stay opaque.
package visibility

import (
	"github.com/samdwyer/cryptcrawl/internal/dungeon"
	"github.com/samdwyer/cryptcrawl/internal/grid"
	"github.com/samdwyer/cryptcrawl/internal/tiles"
)

// State is the visibility state of one room within a level.
type State uint8

const (
	// Unseen rooms have never been entered and render fully opaque.
	Unseen State = iota
	// Active is the room the player currently occupies; fully revealed.
	Active
	// PreviouslySeen rooms were entered earlier and render dimmed.
	PreviouslySeen
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Unseen:
		return "unseen"
	case Active:
		return "active"
	case PreviouslySeen:
		return "previously-seen"
	default:
		return "unknown"
	}
}

// NoRoom is the active-room value when the player is between rooms.
const NoRoom = -1

// Tracker maintains the shadow grid for one level. It lives and dies with
// the level; a new level gets a fresh tracker with every room Unseen.
type Tracker struct {
	layout *dungeon.Layout
	shadow *grid.Grid
	states []State
	active int

	dimIndex int
}

// NewTracker creates a tracker for the layout and fills the shadow grid
// fully opaque.
func NewTracker(layout *dungeon.Layout, table *tiles.Table) *Tracker {
	return &Tracker{
		layout:   layout,
		shadow:   grid.NewFilled(layout.Width, layout.Height, table.Index(tiles.RoleShadowOpaque)),
		states:   make([]State, len(layout.Rooms)),
		active:   NoRoom,
		dimIndex: table.Index(tiles.RoleShadowDim),
	}
}

// Shadow returns the shadow grid the tracker owns. The renderer reads it;
// nothing else writes it.
func (t *Tracker) Shadow() *grid.Grid {
	return t.shadow
}

// ActiveRoom returns the currently active room index, or NoRoom.
func (t *Tracker) ActiveRoom() int {
	return t.active
}

// RoomState returns the visibility state of a room.
func (t *Tracker) RoomState(index int) State {
	if index < 0 || index >= len(t.states) {
		return Unseen
	}
	return t.states[index]
}

// SetActiveRoom updates the tracker for the room the player occupies this
// frame. NoRoom is valid (player in a corridor): the previous room dims and
// nothing becomes active. Calling it again with the same room is a no-op,
// and a room never returns to Unseen once it has been Active.
func (t *Tracker) SetActiveRoom(index int) {
	if index == t.active {
		return
	}
	if index < NoRoom || index >= len(t.states) {
		index = NoRoom
	}

	if t.active != NoRoom {
		t.states[t.active] = PreviouslySeen
		t.fillRoom(t.active, t.dimIndex)
	}

	t.active = index
	if index != NoRoom {
		t.states[index] = Active
		t.fillRoom(index, grid.Empty)
	}
}

// fillRoom writes a shadow index over every cell of a room, walls included.
func (t *Tracker) fillRoom(index, shadowIndex int) {
	room := t.layout.Rooms[index]
	t.shadow.Fill(room.X, room.Y, room.Width, room.Height, shadowIndex)
}
