// Package entity provides game entities for the demo host.
package entity

// Player represents the player's position on the tile grid.
type Player struct {
	X, Y   int  // Current grid cell
	Symbol rune // Display symbol
}

// NewPlayer creates a player at the given cell.
func NewPlayer(x, y int) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Symbol: '@',
	}
}

// Move updates the player position by the given delta.
func (p *Player) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// MoveTo places the player at an absolute cell, used on level transitions.
func (p *Player) MoveTo(x, y int) {
	p.X = x
	p.Y = y
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}
