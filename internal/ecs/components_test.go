package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xml300/dao-game/internal/pathfind"
)

func TestPoolAddClampsToRange(t *testing.T) {
	p := Pool{Current: 50, Max: 100}

	assert.True(t, p.Add(30))
	assert.Equal(t, 80.0, p.Current)

	assert.True(t, p.Add(40))
	assert.Equal(t, 100.0, p.Current, "clamped at max")

	assert.False(t, p.Add(10), "no change at the ceiling")

	assert.True(t, p.Add(-150))
	assert.Equal(t, 0.0, p.Current, "clamped at zero")
	assert.False(t, p.Add(-1))
}

func TestPoolCanSpend(t *testing.T) {
	p := Pool{Current: 15, Max: 100}
	assert.True(t, p.CanSpend(15))
	assert.True(t, p.CanSpend(0))
	assert.False(t, p.CanSpend(15.1))
}

func TestHealthIsAlive(t *testing.T) {
	h := Health{Pool{Current: 1, Max: 100}}
	assert.True(t, h.IsAlive())
	h.Current = 0
	assert.False(t, h.IsAlive())
}

func TestRotationFacing(t *testing.T) {
	assert.True(t, Rotation{Degrees: 0}.FacingRight())
	assert.False(t, Rotation{Degrees: 180}.FacingRight())
	assert.Equal(t, 1.0, Rotation{Degrees: 0}.DirX())
	assert.Equal(t, -1.0, Rotation{Degrees: 180}.DirX())
}

func TestInputClearOneShotKeepsHeldState(t *testing.T) {
	in := InputState{
		MoveX:       1,
		Sprint:      true,
		AttackLight: true,
		AttackHeavy: true,
		Dodge:       true,
		Blink:       true,
		Technique:   [TechniqueSlots]bool{true, false, true, false},
	}
	in.ClearOneShot()

	assert.False(t, in.AttackLight)
	assert.False(t, in.AttackHeavy)
	assert.False(t, in.Dodge)
	assert.False(t, in.Blink)
	assert.Equal(t, [TechniqueSlots]bool{}, in.Technique)
	assert.Equal(t, 1.0, in.MoveX, "axes are held, not one-shot")
	assert.True(t, in.Sprint)
}

func TestHitboxWindow(t *testing.T) {
	hb := Hitbox{StartTime: 100, Duration: 250}

	assert.False(t, hb.ActiveAt(99))
	assert.True(t, hb.ActiveAt(100))
	assert.True(t, hb.ActiveAt(349))
	assert.False(t, hb.ActiveAt(350), "window end is exclusive")

	assert.False(t, hb.ExpiredAt(349))
	assert.True(t, hb.ExpiredAt(350))
}

func TestAIStateClearPath(t *testing.T) {
	ai := AIState{
		Path:           []pathfind.Tile{{X: 1, Y: 1}, {X: 2, Y: 1}},
		PathIndex:      1,
		LastTargetTile: pathfind.Tile{X: 2, Y: 1},
		HasTargetTile:  true,
	}
	ai.ClearPath()

	assert.Nil(t, ai.Path)
	assert.Equal(t, 0, ai.PathIndex)
	assert.False(t, ai.HasTargetTile)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "player-origin", FilterPlayerOrigin.String())
	assert.Equal(t, "enemy-origin", FilterEnemyOrigin.String())
	assert.Equal(t, "idle", AIIdle.String())
	assert.Equal(t, "chasing", AIChasing.String())
	assert.Equal(t, "attacking", AIAttacking.String())
}
