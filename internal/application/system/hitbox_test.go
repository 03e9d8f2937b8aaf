package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xml300/dao-game/internal/ecs"
)

func newHitbox(f *fixture) *HitboxSystem {
	return NewHitboxSystem(f.space, f.bridge, f.registry, f.log)
}

func TestMeleeHitboxFollowsOwner(t *testing.T) {
	f := newFixture()
	sys := newHitbox(f)
	player := f.spawnPlayer(100, 100)

	hb := f.world.SpawnMeleeHitbox(player, ecs.HitboxSpec{
		OffsetX: 18, Width: 30, Height: 24, Duration: 250,
		MaxHits: 1, Filter: ecs.FilterPlayerOrigin, Damage: 10,
	})
	f.bridge.Update(f.world, 0)

	// Owner moves; the hitbox must track position + offset.
	f.world.Position[player] = ecs.Position{X: 150, Y: 120}
	sys.Update(f.world, 16)

	pos := f.world.Position[hb]
	assert.Equal(t, 168.0, pos.X)
	assert.Equal(t, 120.0, pos.Y)

	b := bodyOfTest(f, hb)
	require.NotNil(t, b)
	assert.Equal(t, 168.0, b.X)
}

func TestProjectileDoesNotFollowOwner(t *testing.T) {
	f := newFixture()
	sys := newHitbox(f)
	player := f.spawnPlayer(100, 100)

	proj := f.world.SpawnProjectile(player, ecs.HitboxSpec{
		Width: 16, Height: 16, Duration: 2000, MaxHits: 1,
		Filter: ecs.FilterPlayerOrigin, Damage: 18,
	}, 320, 0)
	f.bridge.Update(f.world, 0)

	f.world.Position[player] = ecs.Position{X: 400, Y: 400}
	sys.Update(f.world, 16)

	assert.Equal(t, 100.0, f.world.Position[proj].X, "projectiles keep their own trajectory")
}

func TestExpiredHitboxIsDestroyed(t *testing.T) {
	f := newFixture()
	sys := newHitbox(f)
	player := f.spawnPlayer(100, 100)

	hb := f.world.SpawnMeleeHitbox(player, ecs.HitboxSpec{
		Width: 30, Height: 24, Duration: 250,
		MaxHits: 1, Filter: ecs.FilterPlayerOrigin, Damage: 10,
	})
	f.bridge.Update(f.world, 0)
	f.registry.Record(hb, 99)
	bodies := f.space.Count()

	f.world.Clock = 251
	sys.Update(f.world, 16)

	assert.False(t, f.world.Exists(hb))
	_, hasHB := f.world.HitboxOf[hb]
	assert.False(t, hasHB)
	assert.Equal(t, bodies-1, f.space.Count(), "expired hitbox body torn down immediately")
	assert.Zero(t, f.registry.Count(hb), "registry bookkeeping purged")
}

func TestOrphanedHitboxIsDestroyed(t *testing.T) {
	f := newFixture()
	sys := newHitbox(f)
	player := f.spawnPlayer(100, 100)

	hb := f.world.SpawnMeleeHitbox(player, ecs.HitboxSpec{
		Width: 30, Height: 24, Duration: 10000,
		MaxHits: 1, Filter: ecs.FilterPlayerOrigin, Damage: 10,
	})
	f.bridge.Update(f.world, 0)

	f.world.DestroyEntity(player)
	sys.Update(f.world, 16)

	assert.False(t, f.world.Exists(hb), "hitbox dies with its owner")
}

func TestLiveHitboxSurvivesUpdate(t *testing.T) {
	f := newFixture()
	sys := newHitbox(f)
	player := f.spawnPlayer(100, 100)

	hb := f.world.SpawnMeleeHitbox(player, ecs.HitboxSpec{
		Width: 30, Height: 24, Duration: 250,
		MaxHits: 1, Filter: ecs.FilterPlayerOrigin, Damage: 10,
	})
	f.bridge.Update(f.world, 0)

	f.world.Clock = 100 // inside the window
	sys.Update(f.world, 16)

	assert.True(t, f.world.Exists(hb))
}
