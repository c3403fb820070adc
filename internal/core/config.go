package core

// RuntimeConfig contains the per-session settings handed to drivers.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for obstacle generation
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

// GameState is the summary the drivers need after each tick.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState

	// Scored is the number of obstacle pairs despawned during this tick.
	Scored int

	// Ended is true only on the tick that moved the game into game over.
	Ended bool
}
