// Package flappy implements a Flappy Bird-style game.
// The bird falls under gravity and flaps upward while pipe pairs scroll in
// from the right. Every pair passed scores a point; touching a pipe or the
// ground ends the run and the next one starts on the same tick.
package flappy

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/canvas"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Fixed entity names.
const (
	BirdName       = "flappybird"
	BackgroundName = "background"
)

// Draw layers, back to front.
const (
	layerBackground = iota
	layerPipes
	layerGround
	layerBird
	layerScore
)

// configPath stores the custom config path set via CLI
var configPath string

// sessionLogger is handed to games created through the registry.
var sessionLogger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used by games created through the registry.
func SetLogger(l *log.Logger) {
	if l != nil {
		sessionLogger = l
	}
}

// Option configures a Game.
type Option func(*Game)

// WithLogger makes the game log run and scoring events to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg   config.FlappyConfig
	sheet *assets.Sheet
	log   *log.Logger

	canvas *canvas.Canvas
	pipes  *PipeManager
	score  *ScoreKeeper
	ground *Ground

	seeds   *rand.Rand // Draws the seed of every run after the first
	runSeed int64      // Seed of the pipe RNG for the current run
	tick    int        // Ticks simulated in the current run
	flaps   []int      // Run-relative ticks with a flap
	runs    int        // Runs ended this session
	paused  bool
}

// New creates a game from an explicit configuration and sprite sheet.
// It fails if the configuration cannot produce a playable field.
func New(cfg config.FlappyConfig, sheet *assets.Sheet, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	if sheet == nil {
		return nil, errors.New("flappy: nil sprite sheet")
	}

	g := &Game{cfg: cfg, sheet: sheet, log: log.New(io.Discard)}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.build(0); err != nil {
		return nil, err
	}
	return g, nil
}

// Load creates a game from the config found at path (or the default search
// order when path is empty) and the embedded sprite sheet.
func Load(path string, opts ...Option) (*Game, error) {
	cfg, err := config.LoadFlappy(path)
	if err != nil {
		return nil, err
	}
	sheet, err := assets.Load()
	if err != nil {
		return nil, err
	}
	return New(cfg, sheet, opts...)
}

// build creates a fresh scene: background, ground, bird, score and rules.
func (g *Game) build(seed int64) error {
	f := g.cfg.Field
	p := g.cfg.Player
	cv := canvas.New(core.V(f.Width, f.Height), g.cfg.Timing.TickSeconds())

	cv.Add(canvas.Entity{
		Name:   BackgroundName,
		Visual: g.sheet.Background,
		Size:   core.V(f.Width, f.Height),
		Layer:  layerBackground,
	})

	ground := NewGround(cv, &g.cfg, g.sheet)

	pipes, err := NewPipeManager(cv, &g.cfg, g.sheet, seed)
	if err != nil {
		return fmt.Errorf("flappy: %w", err)
	}

	anim, err := g.sheet.BirdAnimation()
	if err != nil {
		return fmt.Errorf("flappy: %w", err)
	}
	cv.Add(canvas.Entity{
		Name:      BirdName,
		Animation: anim,
		Radius:    max(p.Width, p.Height),
		Size:      core.V(p.Width, p.Height),
		Position:  core.V(p.StartX, p.StartY),
		Gravity:   p.Gravity,
		MaxFall:   p.MaxFallSpeed,
		Tags:      []string{TagPlayer, "flyingbird"},
		Scale:     core.V(p.Scale, p.Scale),
		Rotation:  p.Rotation,
		Layer:     layerBird,
	})

	bird := canvas.ByName(BirdName)
	cv.AddRule(canvas.OnAction(core.ActionFlap, canvas.ApplyMomentum{Target: bird, Value: core.V(0, p.FlapImpulse)}))
	cv.AddRule(canvas.OnCollision(bird, canvas.ByTag(TagObstacle), canvas.ApplyMomentum{Target: bird}))

	score := NewScoreKeeper(cv, &g.cfg, g.sheet)
	score.RenderDisplay()

	g.canvas = cv
	g.ground = ground
	g.pipes = pipes
	g.score = score
	g.seeds = rand.New(rand.NewSource(seed))
	g.runSeed = seed
	g.tick = 0
	g.flaps = nil
	g.runs = 0
	g.paused = false
	return nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset rebuilds the scene. The first run's pipes are drawn from cfg.Seed.
// Screen size is irrelevant: the field is always simulated in world units.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if err := g.build(cfg.Seed); err != nil {
		// Unreachable after New validated the config and sheet.
		g.log.Error("reset failed", "err", err)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	events, ended := g.update()
	if !ended {
		if in.Has(core.ActionFlap) {
			g.flaps = append(g.flaps, g.tick)
		}
		g.canvas.Dispatch(in)
		g.canvas.Step()
		g.tick++
	}

	return core.StepResult{State: g.State(), Events: events}
}

// update runs the per-tick game logic. It reports whether a collision ended
// the run, in which case nothing else may move this tick.
func (g *Game) update() ([]core.Event, bool) {
	if g.canvas.Collides(canvas.ByName(BirdName), canvas.ByTag(TagObstacle)) {
		return []core.Event{g.endRun()}, true
	}

	g.pipes.Advance()
	g.ground.Scroll()

	var events []core.Event
	passed := g.score.Check(g.pipes.Counter())
	base := g.score.Score() - len(passed)
	for k, i := range passed {
		g.log.Debug("pipe passed", "pipe", i, "score", base+k+1)
		events = append(events, core.Event{Kind: core.EventScored, Score: base + k + 1, Pipe: i})
	}
	g.score.RenderDisplay()

	g.clampCeiling()
	return events, false
}

// endRun puts the bird back at the start and clears pipes and score.
func (g *Game) endRun() core.Event {
	summary := &core.RunSummary{
		Seed:   g.runSeed,
		Ticks:  g.tick + 1,
		Inputs: g.flaps,
		Score:  g.score.Score(),
	}
	g.log.Info("run ended", "run", g.runs+1, "score", summary.Score, "ticks", summary.Ticks, "seed", summary.Seed)

	if bird := g.canvas.Edit(BirdName); bird != nil {
		bird.Position = core.V(g.cfg.Player.StartX, g.cfg.Player.StartY)
		bird.Momentum = core.Vec2{}
	}
	g.pipes.Reset()
	g.score.Reset()

	g.runs++
	g.runSeed = g.seeds.Int63()
	g.pipes.Reseed(g.runSeed)
	g.tick = 0
	g.flaps = nil

	return core.Event{Kind: core.EventRunEnded, Score: summary.Score, Run: summary}
}

// clampCeiling stops the bird at the top edge. There is no floor clamp:
// the ground is an obstacle.
func (g *Game) clampCeiling() {
	bird := g.canvas.Edit(BirdName)
	if bird == nil || bird.Position.Y >= 0 {
		return
	}
	bird.Position.Y = 0
	bird.Momentum.Y = 0
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.canvas.Draw(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.score.Score(),
		Paused: g.paused,
		Runs:   g.runs,
		Tick:   g.tick,
	}
}

// Register the game with the registry
func init() {
	registry.Register("flappy", "Flappy Bird", func() (registry.Game, error) {
		return Load(configPath, WithLogger(sessionLogger))
	})
}
