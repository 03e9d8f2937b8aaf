// Package state defines the top-level flow states of a play session.
package state

// GameState represents the current flow state of the playing scene.
type GameState int

const (
	// StatePlaying is normal gameplay with the simulation running.
	StatePlaying GameState = iota
	// StatePaused freezes the simulation until resumed.
	StatePaused
	// StateGameOver is entered when the player dies.
	StateGameOver
	// StateVictory is entered when every enemy on the stage is dead.
	StateVictory
)

// String returns a human readable state name.
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}
