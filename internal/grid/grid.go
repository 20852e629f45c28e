// Package grid provides an owned, bounds-checked 2D tile-index grid.
// Each level uses three same-sized grids: ground, stuff, and shadow.
package grid

// Empty marks an unpainted cell.
const Empty = -1

// Grid is a fixed-size 2D array of tile indices. Dimensions never change
// after creation for the lifetime of a level.
type Grid struct {
	width  int
	height int
	cells  [][]int
}

// New creates a grid with every cell set to Empty.
func New(width, height int) *Grid {
	return NewFilled(width, height, Empty)
}

// NewFilled creates a grid with every cell set to the given index.
func NewFilled(width, height, index int) *Grid {
	cells := make([][]int, height)
	for y := range cells {
		cells[y] = make([]int, width)
		for x := range cells[y] {
			cells[y][x] = index
		}
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile index at (x, y), or Empty if out of bounds.
func (g *Grid) At(x, y int) int {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y][x]
}

// Set writes a tile index at (x, y). Writes overwrite; out-of-bounds writes
// are dropped.
func (g *Grid) Set(x, y, index int) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y][x] = index
}

// Fill writes a tile index to every in-bounds cell of the given rectangle.
func (g *Grid) Fill(x, y, width, height, index int) {
	for cy := y; cy < y+height; cy++ {
		for cx := x; cx < x+width; cx++ {
			g.Set(cx, cy, index)
		}
	}
}
