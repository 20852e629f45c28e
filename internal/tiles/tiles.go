// Package tiles provides the static tile index table: semantic roles mapped
// to spritesheet indices, weighted variant lists for randomized variation,
// multi-cell door patterns, and the walkable exclusion list.
package tiles

import (
	"fmt"
	"math/rand"
)

// Role identifies a semantic tile role in the tileset.
type Role string

const (
	RoleFloor Role = "floor"

	RoleCornerTopLeft     Role = "corner_top_left"
	RoleCornerTopRight    Role = "corner_top_right"
	RoleCornerBottomLeft  Role = "corner_bottom_left"
	RoleCornerBottomRight Role = "corner_bottom_right"

	RoleWallTop    Role = "wall_top"
	RoleWallBottom Role = "wall_bottom"
	RoleWallLeft   Role = "wall_left"
	RoleWallRight  Role = "wall_right"

	RoleDoorTop    Role = "door_top"
	RoleDoorBottom Role = "door_bottom"
	RoleDoorLeft   Role = "door_left"
	RoleDoorRight  Role = "door_right"

	RoleStairs Role = "stairs"
	RoleChest  Role = "chest"
	RolePot    Role = "pot"
	RoleTower  Role = "tower"

	RoleShadowOpaque Role = "shadow_opaque"
	RoleShadowDim    Role = "shadow_dim"
)

// requiredRoles lists every role the painter and visibility tracker depend on.
var requiredRoles = []Role{
	RoleFloor,
	RoleCornerTopLeft, RoleCornerTopRight, RoleCornerBottomLeft, RoleCornerBottomRight,
	RoleWallTop, RoleWallBottom, RoleWallLeft, RoleWallRight,
	RoleDoorTop, RoleDoorBottom, RoleDoorLeft, RoleDoorRight,
	RoleStairs, RoleChest, RolePot, RoleTower,
	RoleShadowOpaque, RoleShadowDim,
}

// Variant is one concrete tile index for a role, with its spawn weight and
// terminal appearance.
type Variant struct {
	Index  int    `json:"index"`
	Weight int    `json:"weight"`
	Glyph  string `json:"glyph"`
	Color  string `json:"color"` // Hex color code (e.g., "#8a7f6d")
}

// Def defines one role: either a variant list (single-cell tiles) or a
// multi-cell pattern of indices (door stamps).
type Def struct {
	Role     Role      `json:"role"`
	Variants []Variant `json:"variants,omitempty"`
	Pattern  []int     `json:"pattern,omitempty"`
}

// File represents the structure of tileset.json.
type File struct {
	Tiles    []Def `json:"tiles"`
	Walkable []int `json:"walkable"`
}

// Table holds the loaded tile index table. Loaded once, immutable.
type Table struct {
	defs        map[Role]*Def
	totalWeight map[Role]int
	walkable    map[int]bool
	appearance  map[int]Variant
}

// NewTable builds a table from a parsed tileset file.
func NewTable(file File) (*Table, error) {
	t := &Table{
		defs:        make(map[Role]*Def),
		totalWeight: make(map[Role]int),
		walkable:    make(map[int]bool),
		appearance:  make(map[int]Variant),
	}

	for i := range file.Tiles {
		def := &file.Tiles[i]
		if _, dup := t.defs[def.Role]; dup {
			return nil, fmt.Errorf("duplicate role %q in tileset", def.Role)
		}
		if len(def.Variants) == 0 && len(def.Pattern) == 0 {
			return nil, fmt.Errorf("role %q has neither variants nor a pattern", def.Role)
		}
		t.defs[def.Role] = def

		total := 0
		for _, v := range def.Variants {
			if v.Weight <= 0 {
				return nil, fmt.Errorf("role %q: variant %d has non-positive weight %d", def.Role, v.Index, v.Weight)
			}
			total += v.Weight
			t.appearance[v.Index] = v
		}
		t.totalWeight[def.Role] = total
	}

	for _, role := range requiredRoles {
		if _, ok := t.defs[role]; !ok {
			return nil, fmt.Errorf("tileset is missing required role %q", role)
		}
	}

	for _, idx := range file.Walkable {
		t.walkable[idx] = true
	}

	return t, nil
}

// Pick selects a concrete tile index for a role using weighted probability.
// Variants with higher weight are more likely to be selected. Roles with a
// single variant always return that variant's index.
func (t *Table) Pick(role Role, rng *rand.Rand) int {
	def := t.defs[role]
	if def == nil || len(def.Variants) == 0 {
		return -1
	}
	if len(def.Variants) == 1 {
		return def.Variants[0].Index
	}

	roll := rng.Intn(t.totalWeight[role])
	cumulative := 0
	for _, v := range def.Variants {
		cumulative += v.Weight
		if roll < cumulative {
			return v.Index
		}
	}
	return def.Variants[len(def.Variants)-1].Index
}

// Index returns the fixed tile index for a single-variant role.
// It is the non-random counterpart of Pick for corner, stairs, and
// shadow roles.
func (t *Table) Index(role Role) int {
	def := t.defs[role]
	if def == nil || len(def.Variants) == 0 {
		return -1
	}
	return def.Variants[0].Index
}

// Indices returns every concrete tile index a role can resolve to.
func (t *Table) Indices(role Role) []int {
	def := t.defs[role]
	if def == nil {
		return nil
	}
	out := make([]int, len(def.Variants))
	for i, v := range def.Variants {
		out[i] = v.Index
	}
	return out
}

// Pattern returns the multi-cell index sequence for a door role, or nil if
// the role has no pattern.
func (t *Table) Pattern(role Role) []int {
	def := t.defs[role]
	if def == nil {
		return nil
	}
	return def.Pattern
}

// Walkable reports whether a painted tile index is on the walkable exclusion
// list. Unpainted cells (index -1) are always walkable: collision is opt-out,
// so any index not listed collides.
func (t *Table) Walkable(index int) bool {
	if index < 0 {
		return true
	}
	return t.walkable[index]
}

// Appearance returns the glyph/color variant for a tile index, for rendering.
func (t *Table) Appearance(index int) (Variant, bool) {
	v, ok := t.appearance[index]
	return v, ok
}
