package canvas

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Draw renders the scene into dst, scaling the world field to the screen.
// Entities are drawn by ascending Layer, ties in insertion order.
// Rotation is not rendered.
func (c *Canvas) Draw(dst *core.Screen) {
	if c.field.X <= 0 || c.field.Y <= 0 {
		return
	}
	sx := float64(dst.Width()) / c.field.X
	sy := float64(dst.Height()) / c.field.Y

	ents := make([]*Entity, 0, len(c.order))
	for _, n := range c.order {
		ents = append(ents, c.entities[n])
	}
	slices.SortStableFunc(ents, func(a, b *Entity) int { return a.Layer - b.Layer })

	for _, e := range ents {
		sp := e.sprite()
		if sp.Empty() {
			continue
		}
		r := project(e.Bounds(), sx, sy)
		if sp.Tile {
			drawTiled(dst, sp, r)
		} else {
			drawStamp(dst, sp, r.X, r.Y)
		}
	}
}

// project converts a world box to screen cells. A box with positive size
// always covers at least one cell.
func project(b core.Box, sx, sy float64) core.Rect {
	x0 := int(math.Floor(b.Min.X * sx))
	y0 := int(math.Floor(b.Min.Y * sy))
	x1 := int(math.Floor(b.Max.X * sx))
	y1 := int(math.Floor(b.Max.Y * sy))
	if x1 <= x0 && b.Width() > 0 {
		x1 = x0 + 1
	}
	if y1 <= y0 && b.Height() > 0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func drawTiled(dst *core.Screen, sp Sprite, r core.Rect) {
	w, h := sp.Size()
	ys, ye := core.Max(r.Y, 0), core.Min(r.Bottom(), dst.Height())
	xs, xe := core.Max(r.X, 0), core.Min(r.Right(), dst.Width())
	for y := ys; y < ye; y++ {
		row := sp.Rows[(y-r.Y)%h]
		for x := xs; x < xe; x++ {
			i := (x - r.X) % w
			if i < len(row) && row[i] != ' ' {
				dst.SetCell(x, y, row[i], sp.Color)
			}
		}
	}
}

func drawStamp(dst *core.Screen, sp Sprite, x, y int) {
	for dy, row := range sp.Rows {
		for dx, ch := range row {
			if ch != ' ' {
				dst.SetCell(x+dx, y+dy, ch, sp.Color)
			}
		}
	}
}
