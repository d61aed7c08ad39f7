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

// TickDuration returns the length of one tick in seconds.
func (c RuntimeConfig) TickDuration() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int   // Height climbed, in tiles
	Ticks    int   // Simulation ticks since the run started
	Seed     int64 // Seed the run was generated from
	GameOver bool  // Whether the run has ended
	Paused   bool  // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Skipped bool // The physics step was skipped (degenerate frame time)
}

// RunSummary describes a finished or in-progress run for the runs table.
type RunSummary struct {
	Mode      string
	Seed      int64
	Height    int     // Tiles climbed
	Platforms int     // Platforms generated
	Rescues   int     // Rescue platforms inserted by the generator
	Duration  float64 // Simulated seconds
}
