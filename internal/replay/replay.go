// Package replay re-simulates journaled runs headless.
// A run is fully determined by its seed and the ticks it flapped on, so
// feeding the same inputs to a freshly reset game must end the same way.
package replay

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// ErrDiverged is returned when a replay does not reproduce the recorded run.
var ErrDiverged = errors.New("replay: run diverged")

// Frames expands a run's flap ticks into one input frame per tick.
func Frames(run core.RunSummary) []core.InputFrame {
	frames := make([]core.InputFrame, run.Ticks)
	for i := range frames {
		frames[i] = core.NewInputFrame()
	}
	for _, t := range run.Inputs {
		if t >= 0 && t < run.Ticks {
			frames[t].Set(core.ActionFlap)
		}
	}
	return frames
}

// Run resets g with the run's seed, feeds it the recorded inputs and returns
// the summary of the run as the game saw it end.
func Run(g registry.Game, run core.RunSummary) (core.RunSummary, error) {
	cfg := core.DefaultConfig()
	cfg.Seed = run.Seed
	g.Reset(cfg)

	for t, in := range Frames(run) {
		res := g.Step(in)
		for _, ev := range res.Events {
			if ev.Kind == core.EventRunEnded && ev.Run != nil {
				if t != run.Ticks-1 {
					return *ev.Run, fmt.Errorf("%w: ended on tick %d of %d", ErrDiverged, t+1, run.Ticks)
				}
				return *ev.Run, nil
			}
		}
	}

	return core.RunSummary{}, fmt.Errorf("%w: still alive after %d ticks", ErrDiverged, run.Ticks)
}

// Verify replays run and checks the game reproduces its length, inputs and score.
func Verify(g registry.Game, run core.RunSummary) error {
	got, err := Run(g, run)
	if err != nil {
		return err
	}
	if got.Score != run.Score {
		return fmt.Errorf("%w: score %d, recorded %d", ErrDiverged, got.Score, run.Score)
	}
	if !slices.Equal(got.Inputs, run.Inputs) {
		return fmt.Errorf("%w: inputs differ", ErrDiverged)
	}
	return nil
}
