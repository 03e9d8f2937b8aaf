package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegenWaitsForFullInterval(t *testing.T) {
	f := newFixture()
	sys := NewRegenSystem(f.cfg.Regen, f.store)
	player := f.spawnPlayer(100, 100)

	qi := f.world.Qi[player]
	qi.Current = 10
	f.world.Qi[player] = qi

	sys.Update(f.world, 999)
	assert.Equal(t, 10.0, f.world.Qi[player].Current, "nothing applies below the interval")

	sys.Update(f.world, 1)
	// Realm 1 * 2 + affinity 0.5 * 4 = 4 qi/sec over a 1s interval.
	assert.Equal(t, 14.0, f.world.Qi[player].Current)
}

func TestRegenCarriesRemainder(t *testing.T) {
	f := newFixture()
	sys := NewRegenSystem(f.cfg.Regen, f.store)
	player := f.spawnPlayer(100, 100)

	qi := f.world.Qi[player]
	qi.Current = 0
	f.world.Qi[player] = qi

	// 1500ms: one interval fires, 500ms carries to the next tick.
	sys.Update(f.world, 1500)
	assert.Equal(t, 4.0, f.world.Qi[player].Current)

	sys.Update(f.world, 500)
	assert.Equal(t, 8.0, f.world.Qi[player].Current, "remainder not lost across ticks")
}

func TestRegenRestoresStamina(t *testing.T) {
	f := newFixture()
	sys := NewRegenSystem(f.cfg.Regen, f.store)
	player := f.spawnPlayer(100, 100)

	st := f.world.Stamina[player]
	st.Current = 50
	f.world.Stamina[player] = st

	sys.Update(f.world, 1000)
	// Base 10 + resilience 0.1 * 20 = 12 stamina/sec.
	assert.Equal(t, 62.0, f.world.Stamina[player].Current)
}

func TestRegenClampsAtMax(t *testing.T) {
	f := newFixture()
	sys := NewRegenSystem(f.cfg.Regen, f.store)
	player := f.spawnPlayer(100, 100)

	storeQi := f.store.CoreStats().Qi
	sys.Update(f.world, 1000)

	assert.Equal(t, 50.0, f.world.Qi[player].Current, "full pool stays clamped")
	assert.Equal(t, storeQi, f.store.CoreStats().Qi, "no store write when nothing changed")
}

func TestRegenSkipsHealth(t *testing.T) {
	f := newFixture()
	sys := NewRegenSystem(f.cfg.Regen, f.store)
	player := f.spawnPlayer(100, 100)

	h := f.world.Health[player]
	h.Current = 30
	f.world.Health[player] = h

	sys.Update(f.world, 5000)

	assert.Equal(t, 30.0, f.world.Health[player].Current, "health never regenerates passively")
}
