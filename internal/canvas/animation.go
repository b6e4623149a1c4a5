package canvas

import "fmt"

// Animation cycles through sprite frames at a fixed rate.
type Animation struct {
	Frames  []Sprite
	FPS     float64
	elapsed float64
}

// NewAnimation creates a looping animation.
func NewAnimation(frames []Sprite, fps float64) (*Animation, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("canvas: animation has no frames")
	}
	if fps <= 0 {
		return nil, fmt.Errorf("canvas: animation fps must be positive, got %g", fps)
	}
	return &Animation{Frames: frames, FPS: fps}, nil
}

// Advance moves the animation clock forward by dt seconds.
func (a *Animation) Advance(dt float64) {
	a.elapsed += dt
	period := float64(len(a.Frames)) / a.FPS
	for a.elapsed+1e-9 >= period {
		a.elapsed -= period
	}
}

// Frame returns the index of the current frame.
func (a *Animation) Frame() int {
	// The epsilon keeps accumulated float error from delaying a frame by a tick.
	i := int(a.elapsed*a.FPS + 1e-9)
	if i >= len(a.Frames) {
		i = len(a.Frames) - 1
	}
	return i
}

// Current returns the current frame.
func (a *Animation) Current() Sprite {
	return a.Frames[a.Frame()]
}
