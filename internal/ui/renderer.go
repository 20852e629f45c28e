package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cryptcrawl/internal/grid"
	"github.com/samdwyer/cryptcrawl/internal/level"
	"github.com/samdwyer/cryptcrawl/internal/tiles"
)

// Renderer draws a level's three grids to the screen: ground, stuff on top,
// and the shadow grid over both.
type Renderer struct {
	screen *Screen
	table  *tiles.Table

	opaqueIndex int
	dimIndex    int

	// Style caches, keyed by hex color. Parsing per cell per frame is waste.
	normal map[string]tcell.Style
	dimmed map[string]tcell.Style
}

// NewRenderer creates a renderer for the given screen and tile table.
func NewRenderer(screen *Screen, table *tiles.Table) *Renderer {
	return &Renderer{
		screen:      screen,
		table:       table,
		opaqueIndex: table.Index(tiles.RoleShadowOpaque),
		dimIndex:    table.Index(tiles.RoleShadowDim),
		normal:      make(map[string]tcell.Style),
		dimmed:      make(map[string]tcell.Style),
	}
}

// Render draws one frame: the level and the player, then a status line.
func (r *Renderer) Render(lvl *level.Level, playerX, playerY int) {
	r.screen.Clear()

	for y := 0; y < lvl.Ground.Height(); y++ {
		for x := 0; x < lvl.Ground.Width(); x++ {
			shadow := lvl.Shadow().At(x, y)
			if shadow == r.opaqueIndex {
				continue // never seen: leave the cell black
			}
			r.drawCell(lvl, x, y, shadow == r.dimIndex)
		}
	}

	// Draw the player on top.
	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(playerX, playerY, '@', playerStyle)

	r.renderStatus(lvl)
	r.screen.Show()
}

// drawCell renders one cell: the stuff tile if present, else the ground tile.
func (r *Renderer) drawCell(lvl *level.Level, x, y int, dim bool) {
	index := lvl.Stuff.At(x, y)
	if index == grid.Empty {
		index = lvl.Ground.At(x, y)
	}
	if index == grid.Empty {
		return
	}

	v, ok := r.table.Appearance(index)
	if !ok || v.Glyph == "" {
		return
	}
	r.screen.SetContent(x, y, []rune(v.Glyph)[0], r.styleFor(v.Color, dim))
}

// styleFor returns a cached style for a hex color, dimmed or not.
func (r *Renderer) styleFor(hex string, dim bool) tcell.Style {
	cache := r.normal
	if dim {
		cache = r.dimmed
	}
	if style, ok := cache[hex]; ok {
		return style
	}

	var color tcell.Color
	var err error
	if dim {
		color, err = DimHexColor(hex)
	} else {
		color, err = ParseHexColor(hex)
	}
	if err != nil {
		color = tcell.ColorWhite // fallback
	}

	style := tcell.StyleDefault.Foreground(color)
	cache[hex] = style
	return style
}

// renderStatus draws the floor counter and key hints below the map.
func (r *Renderer) renderStatus(lvl *level.Level) {
	msg := fmt.Sprintf("Floor %d | arrows: move  q: quit", lvl.Depth)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, lvl.Ground.Height(), ch, style)
	}
}
