// Package assets decodes the embedded sprite sheet into canvas sprites.
// A sheet that fails to decode is a startup error; nothing here is
// recoverable at runtime.
package assets

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/canvas"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

//go:embed sprites.yaml
var defaultSheetYAML []byte

// Sheet holds every decoded sprite the game draws.
type Sheet struct {
	Background canvas.Sprite
	TopPipe    canvas.Sprite
	BottomPipe canvas.Sprite
	Ground     canvas.Sprite
	Digits     [10]canvas.Sprite
	BirdFrames []canvas.Sprite
	BirdFPS    float64
}

type spriteDef struct {
	Color string   `yaml:"color"`
	Tile  bool     `yaml:"tile"`
	Rows  []string `yaml:"rows"`
}

type animationDef struct {
	Color  string     `yaml:"color"`
	FPS    float64    `yaml:"fps"`
	Frames [][]string `yaml:"frames"`
}

type sheetDef struct {
	Sprites    map[string]spriteDef    `yaml:"sprites"`
	Animations map[string]animationDef `yaml:"animations"`
}

// Load decodes the embedded sprite sheet.
func Load() (*Sheet, error) {
	return Decode(defaultSheetYAML)
}

// Decode parses and validates a YAML sprite sheet.
func Decode(data []byte) (*Sheet, error) {
	var def sheetDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("assets: cannot parse sprite sheet: %w", err)
	}

	var (
		sheet Sheet
		err   error
	)
	named := []struct {
		name string
		dst  *canvas.Sprite
	}{
		{"background", &sheet.Background},
		{"toppipe", &sheet.TopPipe},
		{"bottompipe", &sheet.BottomPipe},
		{"ground", &sheet.Ground},
	}
	for i := range sheet.Digits {
		named = append(named, struct {
			name string
			dst  *canvas.Sprite
		}{fmt.Sprintf("digit_%d", i), &sheet.Digits[i]})
	}

	for _, n := range named {
		sd, ok := def.Sprites[n.name]
		if !ok {
			return nil, fmt.Errorf("assets: missing sprite %q", n.name)
		}
		if *n.dst, err = buildSprite(n.name, sd.Rows, sd.Color, sd.Tile); err != nil {
			return nil, err
		}
	}

	bird, ok := def.Animations["bird"]
	if !ok {
		return nil, fmt.Errorf("assets: missing animation %q", "bird")
	}
	if bird.FPS <= 0 {
		return nil, fmt.Errorf("assets: animation %q needs a positive fps, got %g", "bird", bird.FPS)
	}
	if len(bird.Frames) == 0 {
		return nil, fmt.Errorf("assets: animation %q has no frames", "bird")
	}
	for i, rows := range bird.Frames {
		sp, err := buildSprite(fmt.Sprintf("bird[%d]", i), rows, bird.Color, false)
		if err != nil {
			return nil, err
		}
		sheet.BirdFrames = append(sheet.BirdFrames, sp)
	}
	sheet.BirdFPS = bird.FPS

	return &sheet, nil
}

// BirdAnimation returns a fresh animation of the bird frames.
func (s *Sheet) BirdAnimation() (*canvas.Animation, error) {
	return canvas.NewAnimation(s.BirdFrames, s.BirdFPS)
}

// buildSprite validates rows: at least one row, all rows of the same
// non-zero width, no tabs.
func buildSprite(name string, rows []string, color string, tile bool) (canvas.Sprite, error) {
	if len(rows) == 0 {
		return canvas.Sprite{}, fmt.Errorf("assets: sprite %q has no rows", name)
	}
	c, err := core.ParseColor(color)
	if err != nil {
		return canvas.Sprite{}, fmt.Errorf("assets: sprite %q: %w", name, err)
	}

	width := len([]rune(rows[0]))
	for i, r := range rows {
		if strings.ContainsRune(r, '\t') {
			return canvas.Sprite{}, fmt.Errorf("assets: sprite %q row %d contains a tab", name, i)
		}
		if n := len([]rune(r)); n != width || n == 0 {
			return canvas.Sprite{}, fmt.Errorf("assets: sprite %q row %d is %d wide, expected %d", name, i, n, width)
		}
	}
	return canvas.NewSprite(rows, c, tile), nil
}
