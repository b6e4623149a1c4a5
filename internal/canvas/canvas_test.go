package canvas

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func block(name string, x, y, w, h float64, tags ...string) Entity {
	return Entity{
		Name:     name,
		Size:     core.V(w, h),
		Position: core.V(x, y),
		Tags:     tags,
	}
}

func TestCanvasAddGetRemove(t *testing.T) {
	c := New(core.V(800, 600), 1.0/60)
	c.Add(block("a", 0, 0, 10, 10, "obstacle"))

	e, ok := c.Get("a")
	if !ok {
		t.Fatal("Get should find an added entity")
	}
	if e.Scale != core.V(1, 1) {
		t.Errorf("zero scale should default to (1, 1), got %v", e.Scale)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get should report absence for unknown names")
	}
	if c.Edit("missing") != nil {
		t.Error("Edit should return nil for unknown names")
	}

	c.Remove("a")
	c.Remove("a") // no-op
	if c.Has("a") || c.Len() != 0 {
		t.Errorf("entity should be removed, Len() = %d", c.Len())
	}
}

func TestCanvasGetReturnsCopy(t *testing.T) {
	c := New(core.V(800, 600), 1.0/60)
	c.Add(block("a", 5, 5, 10, 10, "pipe"))

	e, _ := c.Get("a")
	e.Position = core.V(100, 100)
	e.Tags[0] = "changed"

	stored, _ := c.Get("a")
	if stored.Position != core.V(5, 5) {
		t.Errorf("mutating a Get copy changed the canvas: %v", stored.Position)
	}
	if !stored.HasTag("pipe") {
		t.Error("mutating copied tags changed the canvas")
	}

	c.Edit("a").Position.X = 42
	stored, _ = c.Get("a")
	if stored.Position.X != 42 {
		t.Errorf("Edit should mutate in place, got x=%f", stored.Position.X)
	}
}

func TestCanvasReplaceKeepsOrder(t *testing.T) {
	c := New(core.V(800, 600), 1.0/60)
	c.Add(block("a", 0, 0, 1, 1, "t"))
	c.Add(block("b", 0, 0, 1, 1, "t"))
	c.Add(block("a", 9, 9, 1, 1, "t"))

	names := c.Select(ByTag("t"))
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Select() = %v, expected [a b]", names)
	}
	if e, _ := c.Get("a"); e.Position != core.V(9, 9) {
		t.Errorf("re-adding should replace the entity, got %v", e.Position)
	}
}

func TestCanvasCollides(t *testing.T) {
	c := New(core.V(800, 600), 1.0/60)
	c.Add(block("bird", 200, 300, 50, 35, "player"))
	c.Add(block("pipe", 400, 0, 50, 200, "pipe", "obstacle"))
	c.Add(block("ground", 0, 488, 336, 112, "ground", "obstacle"))

	if c.Collides(ByName("bird"), ByTag("obstacle")) {
		t.Error("bird should not collide yet")
	}

	c.Edit("bird").Position.Y = 470
	if !c.Collides(ByName("bird"), ByTag("obstacle")) {
		t.Error("bird overlapping the ground should collide")
	}

	c.Edit("bird").Position = core.V(410, 150)
	if !c.Collides(ByName("bird"), ByTag("pipe")) {
		t.Error("bird overlapping a pipe should collide")
	}

	// An entity never collides with itself
	if c.Collides(ByName("pipe"), ByTag("pipe")) {
		t.Error("entity should not collide with itself")
	}
}

func TestCanvasCollidesScaled(t *testing.T) {
	c := New(core.V(800, 600), 1.0/60)
	bird := block("bird", 0, 0, 50, 35)
	bird.Scale = core.V(0.5, 0.5)
	c.Add(bird)
	c.Add(block("wall", 30, 0, 10, 10, "obstacle"))

	if c.Collides(ByName("bird"), ByTag("obstacle")) {
		t.Error("scaled bird (25 wide) should not reach x=30")
	}
}

func TestCanvasRadiusBounds(t *testing.T) {
	e := Entity{Radius: 20, Position: core.V(10, 10), Scale: core.V(1, 1)}
	b := e.Bounds()
	if b.Width() != 20 || b.Height() != 20 {
		t.Errorf("radius bounds = %vx%v, expected 20x20", b.Width(), b.Height())
	}
}

func TestCanvasStepKinematics(t *testing.T) {
	c := New(core.V(800, 600), 1.0/60)
	pipe := block("pipe", 900, 0, 50, 800, "pipe")
	pipe.Momentum = core.V(-3, 0)
	c.Add(pipe)

	bird := block("bird", 200, 300, 50, 35)
	bird.Gravity = 0.5
	bird.MaxFall = 1.0
	c.Add(bird)

	for i := 0; i < 10; i++ {
		c.Step()
	}

	p, _ := c.Get("pipe")
	if p.Position.X != 870 {
		t.Errorf("pipe x after 10 steps = %f, expected 870", p.Position.X)
	}

	b, _ := c.Get("bird")
	// 0.5 + 1 + 1 + ... (capped at 1) = 9.5
	if b.Position.Y != 309.5 {
		t.Errorf("bird y after 10 steps = %f, expected 309.5", b.Position.Y)
	}
	if b.Momentum.Y != 1.0 {
		t.Errorf("fall speed should be capped at 1, got %f", b.Momentum.Y)
	}
}

func TestCanvasActionRule(t *testing.T) {
	c := New(core.V(800, 600), 1.0/60)
	c.Add(block("bird", 200, 300, 50, 35, "player"))
	c.AddRule(OnAction(core.ActionFlap, ApplyMomentum{Target: ByName("bird"), Value: core.V(0, -10.5)}))

	c.Dispatch(core.NewInputFrame())
	if b, _ := c.Get("bird"); b.Momentum != (core.Vec2{}) {
		t.Errorf("rule should not fire without input, momentum = %v", b.Momentum)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	c.Dispatch(in)
	if b, _ := c.Get("bird"); b.Momentum != core.V(0, -10.5) {
		t.Errorf("flap rule should set momentum, got %v", b.Momentum)
	}
	if c.Rules() != 1 {
		t.Errorf("Rules() = %d, expected 1", c.Rules())
	}
}

func TestCanvasCollisionRule(t *testing.T) {
	c := New(core.V(800, 600), 1.0/60)
	bird := block("bird", 200, 440, 50, 35)
	bird.Momentum = core.V(0, 20)
	c.Add(bird)
	c.Add(block("ground", 0, 488, 800, 112, "obstacle"))
	c.AddRule(OnCollision(ByName("bird"), ByTag("obstacle"), ApplyMomentum{Target: ByName("bird")}))

	c.Step()

	b, _ := c.Get("bird")
	if b.Position.Y != 460 {
		t.Errorf("bird should have moved to 460, got %f", b.Position.Y)
	}
	if b.Momentum != (core.Vec2{}) {
		t.Errorf("collision rule should zero momentum, got %v", b.Momentum)
	}
}

func TestAnimation(t *testing.T) {
	frames := []Sprite{
		NewSprite([]string{"a"}, core.ColorDefault, false),
		NewSprite([]string{"b"}, core.ColorDefault, false),
		NewSprite([]string{"c"}, core.ColorDefault, false),
	}
	a, err := NewAnimation(frames, 12)
	if err != nil {
		t.Fatalf("NewAnimation failed: %v", err)
	}

	// 12 fps at 60 ticks/s: a new frame every 5 ticks
	tick := 1.0 / 60
	expect := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 2}
	for i, want := range expect {
		if got := a.Frame(); got != want {
			t.Errorf("tick %d: Frame() = %d, expected %d", i, got, want)
		}
		a.Advance(tick)
	}

	for i := 0; i < 1000; i++ {
		a.Advance(tick)
		if f := a.Frame(); f < 0 || f >= len(frames) {
			t.Fatalf("frame index %d out of range", f)
		}
	}

	if _, err := NewAnimation(nil, 12); err == nil {
		t.Error("NewAnimation should reject empty frames")
	}
	if _, err := NewAnimation(frames, 0); err == nil {
		t.Error("NewAnimation should reject non-positive fps")
	}
}

func TestCanvasDraw(t *testing.T) {
	// 80x60 field on an 80x60 screen: one world unit per cell
	c := New(core.V(80, 60), 1.0/60)

	ground := block("ground", 0, 50, 80, 10)
	ground.Visual = NewSprite([]string{"=-"}, core.ColorGreen, true)
	ground.Layer = 1
	c.Add(ground)

	bird := block("bird", 10, 20, 3, 1)
	bird.Visual = NewSprite([]string{">o "}, core.ColorYellow, false)
	bird.Layer = 2
	c.Add(bird)

	offscreen := block("pipe", -500, 0, 5, 10)
	offscreen.Visual = NewSprite([]string{"#"}, core.ColorDefault, true)
	c.Add(offscreen)

	s := core.NewScreen(80, 60)
	c.Draw(s)

	if s.Get(0, 50) != '=' || s.Get(1, 50) != '-' || s.Get(2, 59) != '=' {
		t.Errorf("ground should tile, got %q %q %q", s.Get(0, 50), s.Get(1, 50), s.Get(2, 59))
	}
	if s.GetCell(0, 50).Color != core.ColorGreen {
		t.Error("ground cells should carry the sprite color")
	}
	if s.Get(10, 20) != '>' || s.Get(11, 20) != 'o' {
		t.Errorf("bird should be stamped at (10, 20), got %q%q", s.Get(10, 20), s.Get(11, 20))
	}
	if s.Get(12, 20) != ' ' {
		t.Error("spaces in a sprite should be transparent")
	}
	if s.Get(0, 0) != ' ' {
		t.Error("off-screen entities should be clipped")
	}
}

func TestCanvasDrawScales(t *testing.T) {
	// 800x600 world on an 80x24 screen
	c := New(core.V(800, 600), 1.0/60)
	ground := block("ground", 0, 488, 800, 112)
	ground.Visual = NewSprite([]string{"="}, core.ColorDefault, true)
	c.Add(ground)

	s := core.NewScreen(80, 24)
	c.Draw(s)

	// 488 * 24 / 600 = 19.52 -> row 19
	if s.Get(0, 18) != ' ' || s.Get(0, 19) != '=' || s.Get(79, 23) != '=' {
		t.Errorf("ground should start at row 19 and fill to the bottom:\n%s", s.String())
	}
}
