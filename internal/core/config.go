package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score  int  // Score of the run in progress
	Paused bool // Whether the game is paused
	Runs   int  // Runs completed (ended by a collision) this session
	Tick   int  // Ticks simulated in the current run
}

// EventKind identifies what happened during a tick.
type EventKind int

const (
	// EventScored fires on each scoring transition.
	EventScored EventKind = iota + 1
	// EventRunEnded fires on the tick a collision resets the run.
	EventRunEnded
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventScored:
		return "scored"
	case EventRunEnded:
		return "run_ended"
	default:
		return "unknown"
	}
}

// RunSummary is everything needed to replay a finished run.
type RunSummary struct {
	Seed   int64 // Seed of the run's obstacle RNG
	Ticks  int   // Ticks simulated, including the tick the run ended on
	Inputs []int // Run-relative ticks on which the player flapped
	Score  int   // Score at the moment the run ended
}

// Event is a notable state change reported by Step.
type Event struct {
	Kind  EventKind
	Score int         // Score when the event fired
	Pipe  int         // Obstacle index (EventScored only)
	Run   *RunSummary // Finished run (EventRunEnded only)
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
