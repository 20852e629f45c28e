// Package dungeon provides the abstract dungeon description consumed by the
// painter: grid dimensions, rectangular rooms with door locations, and
// corridor cells, plus a BSP generator that produces them.
package dungeon

// Point is a grid cell coordinate.
type Point struct {
	X, Y int
}

// Layout is the abstract dungeon description for one level. It is the
// boundary between generation and painting: the painter reads it and never
// mutates it.
type Layout struct {
	Width  int
	Height int
	Rooms  []Room
	// Corridors holds the carved cells that lie outside every room.
	Corridors []Point
}

// RoomAt returns the index of the room containing the cell, or -1 if the
// cell is not in a room.
func (l *Layout) RoomAt(x, y int) int {
	for i, room := range l.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}
