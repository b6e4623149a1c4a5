package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/canvas"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// SegmentName returns the entity name of ground segment i, counted from 1.
func SegmentName(i int) string {
	return fmt.Sprintf("base%d", i)
}

// Ground is a looping treadmill of equal segments laid edge to edge.
// A segment that scrolls fully off the left edge is moved to the back of
// the row, so the floor never ends.
type Ground struct {
	canvas *canvas.Canvas
	cfg    *config.FlappyConfig
}

// NewGround lays the segments along the bottom of the field.
func NewGround(cv *canvas.Canvas, cfg *config.FlappyConfig, sheet *assets.Sheet) *Ground {
	g := cfg.Ground
	for i := 1; i <= g.Segments; i++ {
		cv.Add(canvas.Entity{
			Name:     SegmentName(i),
			Visual:   sheet.Ground,
			Size:     core.V(g.SegmentWidth, g.Height),
			Position: core.V(float64(i-1)*g.SegmentWidth, cfg.Field.Height-g.Height),
			Tags:     []string{TagGround, TagObstacle},
			Layer:    layerGround,
		})
	}
	return &Ground{canvas: cv, cfg: cfg}
}

// Scroll moves every segment by the ground speed and wraps the ones that
// left the field.
func (gr *Ground) Scroll() {
	g := gr.cfg.Ground
	span := g.SegmentWidth * float64(g.Segments)
	for i := 1; i <= g.Segments; i++ {
		seg := gr.canvas.Edit(SegmentName(i))
		if seg == nil {
			continue
		}
		seg.Position.X += g.Speed
		if seg.Position.X < -g.SegmentWidth {
			seg.Position.X += span
		}
	}
}
