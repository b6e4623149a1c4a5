// Package config provides YAML-based game configuration loading and
// validation for the flappy game.
package config

import (
	"errors"
	"fmt"
)

// ErrEmptyGapRange is returned when the field is too small for the
// configured gap: no vertical gap placement would be possible.
var ErrEmptyGapRange = errors.New("config: empty gap placement range")

// FlappyConfig contains all configuration for the Flappy Bird game.
// All lengths are world units, speeds are world units per tick.
type FlappyConfig struct {
	Field  FieldConfig  `yaml:"field"`
	Timing TimingConfig `yaml:"timing"`
	Ground GroundConfig `yaml:"ground"`
	Pipes  PipeConfig   `yaml:"pipes"`
	Player PlayerConfig `yaml:"player"`
	Score  ScoreConfig  `yaml:"score"`
}

// FieldConfig is the size of the playing field.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TimingConfig controls the obstacle spawn clock.
type TimingConfig struct {
	// NominalTickRate is the tick rate the spawn clock assumes, whatever the
	// real frame rate is.
	NominalTickRate int     `yaml:"nominal_tick_rate"`
	SpawnInterval   float64 `yaml:"spawn_interval"` // Seconds between pipe pairs
}

// TickSeconds is the simulated time added to the spawn clock per tick.
func (t TimingConfig) TickSeconds() float64 {
	return 1.0 / float64(t.NominalTickRate)
}

// GroundConfig describes the looping ground treadmill.
type GroundConfig struct {
	Height       float64 `yaml:"height"`
	SegmentWidth float64 `yaml:"segment_width"`
	Segments     int     `yaml:"segments"`
	Speed        float64 `yaml:"speed"`
}

// PipeConfig defines obstacle pair geometry and motion.
type PipeConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	GapSize       float64 `yaml:"gap_size"`
	MinGapY       float64 `yaml:"min_gap_y"`
	GapMargin     float64 `yaml:"gap_margin"` // Clearance kept between gap bottom and ground
	Speed         float64 `yaml:"speed"`
	SpawnOffset   float64 `yaml:"spawn_offset"`   // Distance right of the field edge
	DespawnMargin float64 `yaml:"despawn_margin"` // Distance left of -width before removal
}

// PlayerConfig defines the bird.
type PlayerConfig struct {
	StartX       float64 `yaml:"start_x"`
	StartY       float64 `yaml:"start_y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Scale        float64 `yaml:"scale"`
	Rotation     float64 `yaml:"rotation"`
	FlapImpulse  float64 `yaml:"flap_impulse"`
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// ScoreConfig positions the score digits.
type ScoreConfig struct {
	DigitWidth  float64 `yaml:"digit_width"`
	DigitHeight float64 `yaml:"digit_height"`
	Spacing     float64 `yaml:"spacing"`
	MarginRight float64 `yaml:"margin_right"`
	MarginTop   float64 `yaml:"margin_top"`
	Slots       int     `yaml:"slots"` // Reserved digit entity names
}

// MinGapY returns the lowest allowed gap center.
func (c FlappyConfig) MinGapY() float64 {
	return c.Pipes.MinGapY
}

// MaxGapY returns the highest allowed gap center.
func (c FlappyConfig) MaxGapY() float64 {
	return c.Field.Height - c.Ground.Height - c.Pipes.GapSize/2 - c.Pipes.GapMargin
}

// Validate checks the configuration for values the game cannot run with.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("config: field must have a positive size, got %gx%g", c.Field.Width, c.Field.Height)
	case c.Timing.NominalTickRate <= 0:
		return fmt.Errorf("config: nominal_tick_rate must be positive, got %d", c.Timing.NominalTickRate)
	case c.Timing.SpawnInterval <= 0:
		return fmt.Errorf("config: spawn_interval must be positive, got %g", c.Timing.SpawnInterval)
	case c.Ground.Segments <= 0 || c.Ground.SegmentWidth <= 0:
		return fmt.Errorf("config: ground needs at least one segment of positive width")
	case c.Pipes.Width <= 0 || c.Pipes.Height <= 0 || c.Pipes.GapSize <= 0:
		return fmt.Errorf("config: pipe width, height and gap_size must be positive")
	case c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.Scale <= 0:
		return fmt.Errorf("config: player width, height and scale must be positive")
	case c.Score.Slots <= 0:
		return fmt.Errorf("config: score slots must be positive, got %d", c.Score.Slots)
	}

	if c.MinGapY() > c.MaxGapY() {
		return fmt.Errorf("%w: min_gap_y %g > max %g", ErrEmptyGapRange, c.MinGapY(), c.MaxGapY())
	}
	return nil
}
