package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type stubGame struct{}

func (stubGame) ID() string                           { return "stub" }
func (stubGame) Title() string                        { return "Stub" }
func (stubGame) Reset(core.RuntimeConfig)             {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen)                  {}
func (stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_stub", "Stub", func() (Game, error) { return stubGame{}, nil })

	if !Exists("test_stub") {
		t.Fatal("expected test_stub to be registered")
	}

	g, err := Create("test_stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub" {
		t.Errorf("ID() = %q, want stub", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "test_stub" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Error("List() does not include test_stub")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestCreateFactoryError(t *testing.T) {
	boom := errors.New("boom")
	Register("test_broken", "Broken", func() (Game, error) { return nil, boom })

	_, err := Create("test_broken")
	if !errors.Is(err, boom) {
		t.Errorf("Create error = %v, want wrapping %v", err, boom)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", "Dup", func() (Game, error) { return stubGame{}, nil })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("test_dup", "Dup", func() (Game, error) { return stubGame{}, nil })
}
