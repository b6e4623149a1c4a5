package flappy

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/canvas"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// DigitName returns the entity name of score display slot i.
func DigitName(i int) string {
	return fmt.Sprintf("score_digit_%d", i)
}

// ScoreKeeper tracks the run score and draws it as digit entities.
//
// Each pipe index moves through unseen -> left-of -> scored. A pair only
// scores if some tick saw the bird's center left of the pipe's center before
// a tick saw it right of it. A pipe first observed already passed is never
// scored.
type ScoreKeeper struct {
	canvas *canvas.Canvas
	cfg    *config.FlappyConfig
	sheet  *assets.Sheet

	score  int
	scored map[int]struct{}
	leftOf map[int]struct{}
}

// NewScoreKeeper creates a score keeper at zero.
func NewScoreKeeper(cv *canvas.Canvas, cfg *config.FlappyConfig, sheet *assets.Sheet) *ScoreKeeper {
	return &ScoreKeeper{
		canvas: cv,
		cfg:    cfg,
		sheet:  sheet,
		scored: make(map[int]struct{}),
		leftOf: make(map[int]struct{}),
	}
}

// Score returns the current run score.
func (sk *ScoreKeeper) Score() int {
	return sk.score
}

// IsScored reports whether pipe i has already scored.
func (sk *ScoreKeeper) IsScored(i int) bool {
	_, ok := sk.scored[i]
	return ok
}

// IsLeftOf reports whether the bird was last seen left of pipe i.
func (sk *ScoreKeeper) IsLeftOf(i int) bool {
	_, ok := sk.leftOf[i]
	return ok
}

// Check compares the bird's center against every unscored pipe below
// pipeCounter whose upper half still exists. Returns the indices that
// scored on this call, in ascending order.
func (sk *ScoreKeeper) Check(pipeCounter int) []int {
	bird, ok := sk.canvas.Get(BirdName)
	if !ok {
		return nil
	}
	birdCX := bird.Position.X + sk.cfg.Player.Width/2

	var newly []int
	for i := 0; i < pipeCounter; i++ {
		if sk.IsScored(i) {
			continue
		}
		pipe, ok := sk.canvas.Get(TopPipeName(i))
		if !ok {
			continue
		}
		pipeCX := pipe.Position.X + sk.cfg.Pipes.Width/2

		switch {
		case birdCX < pipeCX:
			sk.leftOf[i] = struct{}{}
		case sk.IsLeftOf(i) && birdCX > pipeCX:
			sk.score++
			delete(sk.leftOf, i)
			sk.scored[i] = struct{}{}
			newly = append(newly, i)
		}
	}
	return newly
}

// RenderDisplay replaces the digit entities with the current score,
// right-aligned against the top-right corner of the field.
func (sk *ScoreKeeper) RenderDisplay() {
	sc := sk.cfg.Score
	for i := 0; i < sc.Slots; i++ {
		sk.canvas.Remove(DigitName(i))
	}

	digits := strconv.Itoa(sk.score)
	total := float64(len(digits))*(sc.DigitWidth+sc.Spacing) - sc.Spacing
	x := sk.cfg.Field.Width - total - sc.MarginRight

	for i, ch := range digits {
		if i >= sc.Slots {
			break
		}
		sk.canvas.Add(canvas.Entity{
			Name:     DigitName(i),
			Visual:   sk.sheet.Digits[ch-'0'],
			Size:     core.V(sc.DigitWidth, sc.DigitHeight),
			Position: core.V(x, sc.MarginTop),
			Tags:     []string{TagScore},
			Layer:    layerScore,
		})
		x += sc.DigitWidth + sc.Spacing
	}
}

// Reset zeroes the score, forgets every pipe and redraws "0".
func (sk *ScoreKeeper) Reset() {
	sk.score = 0
	clear(sk.scored)
	clear(sk.leftOf)
	sk.RenderDisplay()
}
