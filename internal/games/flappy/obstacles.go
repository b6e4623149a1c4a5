package flappy

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/canvas"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Entity tags shared by the game's collision queries.
const (
	TagObstacle = "obstacle"
	TagPipe     = "pipe"
	TagGround   = "ground"
	TagPlayer   = "player"
	TagScore    = "score"
)

// spawnEpsilon absorbs float error when summing 1/60 s ticks toward the
// spawn interval, so 120 ticks reach 2.0 s.
const spawnEpsilon = 1e-9

// TopPipeName returns the entity name of the upper half of pair i.
func TopPipeName(i int) string {
	return fmt.Sprintf("toppipe_%d", i)
}

// BottomPipeName returns the entity name of the lower half of pair i.
func BottomPipeName(i int) string {
	return fmt.Sprintf("bottompipe_%d", i)
}

// PipeManager handles spawning and removal of pipe pairs.
// Pairs are indexed 0, 1, 2, ... and indices are never reused within a run.
// Movement is left to the canvas: pairs are created with constant momentum.
type PipeManager struct {
	canvas      *canvas.Canvas
	cfg         *config.FlappyConfig
	sheet       *assets.Sheet
	rng         *rand.Rand
	spawnTimer  float64 // Simulated seconds since the last spawn
	pipeCounter int     // Index of the next pair
}

// NewPipeManager creates a pipe manager with the given RNG seed.
// It fails when the configuration leaves no room to place a gap.
func NewPipeManager(cv *canvas.Canvas, cfg *config.FlappyConfig, sheet *assets.Sheet, seed int64) (*PipeManager, error) {
	if cfg.MinGapY() > cfg.MaxGapY() {
		return nil, fmt.Errorf("%w: min_gap_y %g > max %g", config.ErrEmptyGapRange, cfg.MinGapY(), cfg.MaxGapY())
	}
	return &PipeManager{
		canvas: cv,
		cfg:    cfg,
		sheet:  sheet,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Reseed restarts the gap placement RNG.
func (pm *PipeManager) Reseed(seed int64) {
	pm.rng = rand.New(rand.NewSource(seed))
}

// Counter returns the number of pairs spawned this run.
func (pm *PipeManager) Counter() int {
	return pm.pipeCounter
}

// SpawnTimer returns the simulated seconds accumulated toward the next spawn.
func (pm *PipeManager) SpawnTimer() float64 {
	return pm.spawnTimer
}

// Advance adds one nominal tick to the spawn clock, spawns a pair when the
// spawn interval is reached, then sweeps pipes that left the field.
// The clock ignores real frame time. Returns true if a pair was spawned.
func (pm *PipeManager) Advance() bool {
	spawned := false
	pm.spawnTimer += pm.cfg.Timing.TickSeconds()

	if pm.spawnTimer+spawnEpsilon >= pm.cfg.Timing.SpawnInterval {
		pm.SpawnPair()
		pm.spawnTimer = 0
		spawned = true
	}

	pm.SweepOffscreen()
	return spawned
}

// SpawnPair creates the upper and lower pipe of the next pair just right of
// the field, around a random gap center. Returns the pair index.
func (pm *PipeManager) SpawnPair() int {
	p := pm.cfg.Pipes
	minY, maxY := pm.cfg.MinGapY(), pm.cfg.MaxGapY()
	gapY := minY + pm.rng.Float64()*(maxY-minY)

	x := pm.cfg.Field.Width + p.SpawnOffset
	idx := pm.pipeCounter

	pm.canvas.Add(pm.pipe(TopPipeName(idx), pm.sheet.TopPipe, core.V(x, gapY-p.GapSize/2-p.Height)))
	pm.canvas.Add(pm.pipe(BottomPipeName(idx), pm.sheet.BottomPipe, core.V(x, gapY+p.GapSize/2)))

	pm.pipeCounter++
	return idx
}

func (pm *PipeManager) pipe(name string, sprite canvas.Sprite, pos core.Vec2) canvas.Entity {
	p := pm.cfg.Pipes
	return canvas.Entity{
		Name:     name,
		Visual:   sprite,
		Radius:   max(p.Width, p.Height),
		Size:     core.V(p.Width, p.Height),
		Position: pos,
		Momentum: core.V(p.Speed, 0),
		Tags:     []string{TagPipe, TagObstacle},
		Scale:    core.V(1, 1),
		Layer:    layerPipes,
	}
}

// SweepOffscreen removes every pipe whose x is left of -width - margin.
// Returns the number of entities removed.
func (pm *PipeManager) SweepOffscreen() int {
	limit := -pm.cfg.Pipes.Width - pm.cfg.Pipes.DespawnMargin
	var doomed []string

	for i := 0; i < pm.pipeCounter; i++ {
		for _, name := range [2]string{TopPipeName(i), BottomPipeName(i)} {
			if e, ok := pm.canvas.Get(name); ok && e.Position.X < limit {
				doomed = append(doomed, name)
			}
		}
	}

	for _, name := range doomed {
		pm.canvas.Remove(name)
	}
	return len(doomed)
}

// Reset removes every pair spawned this run and zeroes the counter and the
// spawn clock. Calling it again is harmless.
func (pm *PipeManager) Reset() {
	for i := 0; i < pm.pipeCounter; i++ {
		pm.canvas.Remove(TopPipeName(i))
		pm.canvas.Remove(BottomPipeName(i))
	}
	pm.pipeCounter = 0
	pm.spawnTimer = 0
}
