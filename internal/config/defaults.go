package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Timing: TimingConfig{
			NominalTickRate: 60,
			SpawnInterval:   2.0,
		},
		Ground: GroundConfig{
			Height:       112,
			SegmentWidth: 336,
			Segments:     4,
			Speed:        -3,
		},
		Pipes: PipeConfig{
			Width:         50,
			Height:        800,
			GapSize:       220,
			MinGapY:       150,
			GapMargin:     10,
			Speed:         -3,
			SpawnOffset:   100,
			DespawnMargin: 50,
		},
		Player: PlayerConfig{
			StartX:       200,
			StartY:       300,
			Width:        50,
			Height:       35,
			Scale:        0.85,
			Rotation:     0.30,
			FlapImpulse:  -10.5,
			Gravity:      0.5,
			MaxFallSpeed: 12,
		},
		Score: ScoreConfig{
			DigitWidth:  24,
			DigitHeight: 38,
			Spacing:     5,
			MarginRight: 20,
			MarginTop:   20,
			Slots:       10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFlappyYAML
}
