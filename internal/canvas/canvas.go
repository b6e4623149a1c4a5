package canvas

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Canvas owns every entity of a scene.
// It is not safe for concurrent use; one game drives one canvas.
type Canvas struct {
	field       core.Vec2
	tickSeconds float64
	entities    map[string]*Entity
	order       []string // Insertion order, keeps iteration deterministic
	rules       []Rule
}

// New creates an empty canvas for a field of the given world size.
// tickSeconds is the nominal duration of one Step, used by animations.
func New(field core.Vec2, tickSeconds float64) *Canvas {
	return &Canvas{
		field:       field,
		tickSeconds: tickSeconds,
		entities:    make(map[string]*Entity),
	}
}

// Field returns the world size of the canvas.
func (c *Canvas) Field() core.Vec2 {
	return c.field
}

// Add registers an entity. An entity with the same name is replaced in place.
// A zero Scale is treated as (1, 1).
func (c *Canvas) Add(e Entity) {
	if e.Scale == (core.Vec2{}) {
		e.Scale = core.V(1, 1)
	}
	stored := e.clone()
	if _, exists := c.entities[e.Name]; !exists {
		c.order = append(c.order, e.Name)
	}
	c.entities[e.Name] = &stored
}

// Get returns a copy of the named entity.
func (c *Canvas) Get(name string) (Entity, bool) {
	e, ok := c.entities[name]
	if !ok {
		return Entity{}, false
	}
	return e.clone(), true
}

// Edit returns the named entity for in-place changes, or nil if absent.
func (c *Canvas) Edit(name string) *Entity {
	return c.entities[name]
}

// Has reports whether the named entity exists.
func (c *Canvas) Has(name string) bool {
	_, ok := c.entities[name]
	return ok
}

// Remove deletes the named entity. Removing a missing entity is a no-op.
func (c *Canvas) Remove(name string) {
	if _, ok := c.entities[name]; !ok {
		return
	}
	delete(c.entities, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
}

// Len returns the number of entities.
func (c *Canvas) Len() int {
	return len(c.order)
}

// Select returns the names of the entities matched by t, in insertion order.
func (c *Canvas) Select(t Target) []string {
	var names []string
	for _, n := range c.order {
		if t.matches(c.entities[n]) {
			names = append(names, n)
		}
	}
	return names
}

// Collides reports whether any entity matched by a overlaps any other
// entity matched by b.
func (c *Canvas) Collides(a, b Target) bool {
	for _, na := range c.order {
		ea := c.entities[na]
		if !a.matches(ea) {
			continue
		}
		boxA := ea.Bounds()
		for _, nb := range c.order {
			if nb == na {
				continue
			}
			eb := c.entities[nb]
			if b.matches(eb) && boxA.Intersects(eb.Bounds()) {
				return true
			}
		}
	}
	return false
}

// Step advances every entity by one tick: gravity feeds momentum, momentum
// moves the entity and animations advance by the nominal tick. Collision
// rules are evaluated afterwards against the new positions.
func (c *Canvas) Step() {
	for _, n := range c.order {
		e := c.entities[n]
		if e.Gravity != 0 {
			e.Momentum.Y += e.Gravity
			if e.MaxFall > 0 {
				e.Momentum.Y = math.Min(e.Momentum.Y, e.MaxFall)
			}
		}
		e.Position = e.Position.Add(e.Momentum)
		if e.Animation != nil {
			e.Animation.Advance(c.tickSeconds)
		}
	}
	c.applyCollisionRules()
}
