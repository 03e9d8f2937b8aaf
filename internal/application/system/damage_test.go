package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xml300/dao-game/internal/ecs"
)

func newDamage(f *fixture) *DamageSystem {
	return NewDamageSystem(f.cfg, f.store, f.space, testRNG(), f.log)
}

func TestDamageAmplifiedByPlayerStats(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	// Affinity 0.5 * scale 0.2 + mastery 0.3 * scale 0.5 = +25%.
	f.world.Damage[enemy] = ecs.TakeDamage{Amount: 10, Source: player}
	sys.Update(f.world, 16)

	assert.InDelta(t, 40-12.5, f.world.Health[enemy].Current, 1e-9)
	_, pending := f.world.Damage[enemy]
	assert.False(t, pending, "signal consumed exactly once")
}

func TestDamageMitigatedByResilience(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	// Resilience 0.1 takes 10% off enemy-sourced damage.
	f.world.Damage[player] = ecs.TakeDamage{Amount: 10, Source: enemy}
	sys.Update(f.world, 16)

	assert.InDelta(t, 100-9, f.world.Health[player].Current, 1e-9)
}

func TestCriticalHitMultiplies(t *testing.T) {
	f := newFixture()
	f.cfg.Crit.Chance = 1 // every player hit crits
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	f.world.Damage[enemy] = ecs.TakeDamage{Amount: 10, Source: player}
	sys.Update(f.world, 16)

	// 10 * 1.25 amplification * 1.8 crit = 22.5.
	assert.InDelta(t, 40-22.5, f.world.Health[enemy].Current, 1e-9)
}

func TestDamageFloorsAtOne(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	enemy := f.spawnEnemy(200, 100)
	e2 := f.spawnEnemy(300, 100)

	// Enemy-vs-enemy carries no modifiers; a sub-1 base still lands 1.
	f.world.Damage[enemy] = ecs.TakeDamage{Amount: 0.2, Source: e2}
	sys.Update(f.world, 16)

	assert.Equal(t, 39.0, f.world.Health[enemy].Current)
}

func TestInvulnerableTargetTakesNothing(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	cs := f.world.Combat[player]
	cs.Invulnerable = true
	f.world.Combat[player] = cs

	f.world.Damage[player] = ecs.TakeDamage{Amount: 10, Source: enemy}
	sys.Update(f.world, 16)

	assert.Equal(t, 100.0, f.world.Health[player].Current)
	_, pending := f.world.Damage[player]
	assert.False(t, pending, "signal still consumed")
}

func TestStaggerInterruptsActions(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	cs := f.world.Combat[player]
	cs.AttackingHeavy = true
	cs.AttackTimer = 300
	cs.Casting = true
	cs.CastTimer = 200
	f.world.Combat[player] = cs
	bodyOfTest(f, player).SetVelocity(160, 0)

	// 20 (mitigated to 18) clears the stagger threshold of 12.
	f.world.Damage[player] = ecs.TakeDamage{Amount: 20, Source: enemy}
	sys.Update(f.world, 16)

	cs = f.world.Combat[player]
	assert.True(t, cs.Staggered)
	assert.Equal(t, f.cfg.Stagger.Duration, cs.StaggerTimer)
	assert.False(t, cs.AttackingHeavy, "stagger interrupts the current action")
	assert.Zero(t, cs.AttackTimer)
	assert.False(t, cs.Casting)
	assert.Zero(t, cs.CastTimer)
	assert.Zero(t, bodyOfTest(f, player).VX)
}

func TestBelowThresholdDoesNotStagger(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	f.world.Damage[player] = ecs.TakeDamage{Amount: 5, Source: enemy}
	sys.Update(f.world, 16)

	assert.False(t, f.world.Combat[player].Staggered)
}

func TestLethalDamageKills(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	before := f.store.RealmProgress()
	f.world.Damage[enemy] = ecs.TakeDamage{Amount: 1000, Source: player}
	sys.Update(f.world, 16)

	mov := f.world.Movement[enemy]
	assert.True(t, mov.Dead)
	cs := f.world.Combat[enemy]
	assert.False(t, cs.CanAttack)
	assert.False(t, cs.CanMove)
	assert.False(t, f.world.Body[enemy].Enabled, "corpse body disabled")
	assert.Equal(t, before+f.cfg.KillReward, f.store.RealmProgress(), "player kill grants realm progress")

	assert.Equal(t, 0, f.world.CountEnemies(), "dead enemies leave the active roster")
	assert.Contains(t, f.world.Render, enemy, "the corpse stays drawable")
}

func TestDeathIsTerminal(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	f.world.Damage[enemy] = ecs.TakeDamage{Amount: 1000, Source: player}
	sys.Update(f.world, 16)
	require.True(t, f.world.Movement[enemy].Dead)
	health := f.world.Health[enemy].Current

	f.world.Damage[enemy] = ecs.TakeDamage{Amount: 50, Source: player}
	sys.Update(f.world, 16)

	assert.Equal(t, health, f.world.Health[enemy].Current, "dead entities ignore damage")
	assert.False(t, f.world.Combat[enemy].Staggered, "the dead cannot be staggered")
}

func TestDeathClearsStagger(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	cs := f.world.Combat[enemy]
	cs.Staggered = true
	cs.StaggerTimer = 200
	f.world.Combat[enemy] = cs

	f.world.Damage[enemy] = ecs.TakeDamage{Amount: 1000, Source: player}
	sys.Update(f.world, 16)

	cs = f.world.Combat[enemy]
	assert.False(t, cs.Staggered)
	assert.Zero(t, cs.StaggerTimer)
}

func TestPlayerDamageMirroredToStore(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	player := f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	f.world.Damage[player] = ecs.TakeDamage{Amount: 10, Source: enemy}
	sys.Update(f.world, 16)

	assert.InDelta(t, 100-10, f.store.CoreStats().Health, 1e-9, "store mirrors the raw hit")
	assert.InDelta(t, 100-9, f.world.Health[player].Current, 1e-9, "world health takes the mitigated amount")
}

func TestEnemyKillByEnemyGrantsNoReward(t *testing.T) {
	f := newFixture()
	sys := newDamage(f)
	f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)
	e2 := f.spawnEnemy(300, 100)

	before := f.store.RealmProgress()
	f.world.Damage[enemy] = ecs.TakeDamage{Amount: 1000, Source: e2}
	sys.Update(f.world, 16)

	assert.Equal(t, before, f.store.RealmProgress())
}
