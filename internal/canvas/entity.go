// Package canvas is the scene the games draw into: a registry of named
// entities with tags, simple constant-velocity kinematics, tag based
// collision queries and a small table of declarative input/collision rules.
package canvas

import (
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Sprite is a block of runes drawn for an entity.
// A space rune is transparent.
type Sprite struct {
	Rows  [][]rune
	Color core.Color
	// Tile repeats the sprite across the entity's whole projected area
	// instead of stamping it once at the top-left corner.
	Tile bool
}

// NewSprite builds a sprite from text rows.
func NewSprite(rows []string, color core.Color, tile bool) Sprite {
	s := Sprite{Rows: make([][]rune, len(rows)), Color: color, Tile: tile}
	for i, r := range rows {
		s.Rows[i] = []rune(r)
	}
	return s
}

// Size returns the sprite width (longest row) and height in cells.
func (s Sprite) Size() (w, h int) {
	for _, r := range s.Rows {
		w = core.Max(w, len(r))
	}
	return w, len(s.Rows)
}

// Empty reports whether the sprite has nothing to draw.
func (s Sprite) Empty() bool {
	w, h := s.Size()
	return w == 0 || h == 0
}

// Entity is a named object in the scene.
type Entity struct {
	Name      string
	Visual    Sprite
	Animation *Animation // Overrides Visual when set
	Radius    float64    // Bounding radius, used when Size is zero
	Size      core.Vec2  // Unscaled bounding size in world units
	Position  core.Vec2  // Top-left corner in world units
	Momentum  core.Vec2  // Displacement applied every tick
	Gravity   float64    // Added to Momentum.Y every tick
	MaxFall   float64    // Caps Momentum.Y when positive
	Tags      []string
	Scale     core.Vec2
	Rotation  float64
	Layer     int // Draw order, higher on top
}

// HasTag reports whether the entity carries the tag.
func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Bounds returns the scaled bounding box in world units.
func (e *Entity) Bounds() core.Box {
	size := e.Size
	if size.X == 0 && size.Y == 0 {
		size = core.V(e.Radius, e.Radius)
	}
	return core.BoxAt(e.Position, size.Mul(e.Scale))
}

// sprite returns what should currently be drawn.
func (e *Entity) sprite() Sprite {
	if e.Animation != nil {
		return e.Animation.Current()
	}
	return e.Visual
}

// clone returns a copy that shares nothing mutable with e.
func (e *Entity) clone() Entity {
	c := *e
	c.Tags = slices.Clone(e.Tags)
	if e.Animation != nil {
		a := *e.Animation
		c.Animation = &a
	}
	return c
}

// TargetKind selects entities either by name or by tag.
type TargetKind int

const (
	ByNameKind TargetKind = iota
	ByTagKind
)

// Target is an entity selector used by collision queries and rules.
type Target struct {
	Kind  TargetKind
	Value string
}

// ByName selects the entity with the exact name.
func ByName(name string) Target {
	return Target{Kind: ByNameKind, Value: name}
}

// ByTag selects every entity carrying the tag.
func ByTag(tag string) Target {
	return Target{Kind: ByTagKind, Value: tag}
}

func (t Target) matches(e *Entity) bool {
	if t.Kind == ByTagKind {
		return e.HasTag(t.Value)
	}
	return e.Name == t.Value
}
