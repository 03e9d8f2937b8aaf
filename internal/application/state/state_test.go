package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameStateString(t *testing.T) {
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "gameover", StateGameOver.String())
	assert.Equal(t, "victory", StateVictory.String())
	assert.Equal(t, "unknown", GameState(99).String())
}
