package dungeon

// Door is a doorway position on a room's boundary, in coordinates relative
// to the room's origin.
type Door struct {
	X, Y int
}

// Room represents a rectangular room in the dungeon. Rooms include their
// one-tile wall border; the walkable interior is inset by one on each side.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
	Doors         []Door
}

// Left returns the x coordinate of the room's left column.
func (r Room) Left() int { return r.X }

// Right returns the x coordinate of the room's right column.
func (r Room) Right() int { return r.X + r.Width - 1 }

// Top returns the y coordinate of the room's top row.
func (r Room) Top() int { return r.Y }

// Bottom returns the y coordinate of the room's bottom row.
func (r Room) Bottom() int { return r.Y + r.Height - 1 }

// CenterX returns the x coordinate of the room's center cell.
func (r Room) CenterX() int { return r.X + r.Width/2 }

// CenterY returns the y coordinate of the room's center cell.
func (r Room) CenterY() int { return r.Y + r.Height/2 }

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.CenterX(), r.CenterY()
}

// Contains returns true if the given point is inside the room, walls included.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
