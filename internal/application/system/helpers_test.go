package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/infrastructure/config"
	"github.com/xml300/dao-game/internal/pathfind"
	"github.com/xml300/dao-game/internal/physics"
	"github.com/xml300/dao-game/internal/progression"
)

// testRNG returns a seeded RNG for deterministic tests.
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func testCombatConfig() *config.CombatConfig {
	return &config.CombatConfig{
		LightAttack: config.AttackConfig{
			Damage: 10, Duration: 250, Cooldown: 400,
			OffsetX: 18, Width: 30, Height: 24, MaxHits: 3,
		},
		HeavyAttack: config.AttackConfig{
			Damage: 25, StaminaCost: 20, Duration: 450, Cooldown: 900,
			OffsetX: 22, Width: 36, Height: 28, MaxHits: 1,
		},
		Dodge: config.DodgeConfig{
			StaminaCost: 15, Duration: 300, Cooldown: 800, Speed: 420, Iframes: 200,
		},
		Parry:   config.ParryConfig{Duration: 150},
		Stagger: config.StaggerConfig{Threshold: 12, Duration: 350},
		Crit:    config.CritConfig{Chance: 0, Multiplier: 1.8},
		Bonuses: config.BonusConfig{AffinityScale: 0.2, MasteryScale: 0.5},
		Movement: config.MoveConfig{
			WalkSpeed: 160, SprintMultiplier: 1.6, SprintStaminaPerSec: 10,
		},
		Flight: config.FlightConfig{RealmRequired: 3, QiDrainPerSec: 5, Speed: 220},
		Blink:  config.BlinkConfig{QiCost: 10, Cooldown: 1200, Distance: 96},
		Regen: config.RegenConfig{
			Interval: 1000, QiPerRealm: 2, QiAffinityScale: 4,
			StaminaBase: 10, StaminaResilienceScale: 20,
		},
		KillReward: 25,
	}
}

func testStore() *progression.MemoryStore {
	store := progression.NewMemoryStore(progression.CoreStats{
		Realm: 1, Affinity: 0.5, Resilience: 0.1, Mastery: 0.3,
		Health: 100, MaxHealth: 100,
		Qi: 50, MaxQi: 50,
		Stamina: 100, MaxStamina: 100,
	})
	store.RegisterTechnique(progression.Technique{
		ID: "fireball", Name: "Fireball", QiCost: 15, Cooldown: 2500,
		Effect: progression.EffectProjectile, Damage: 18, Speed: 320,
		Width: 16, Height: 16, Duration: 2000, CastTime: 300,
	})
	store.RegisterTechnique(progression.Technique{
		ID: "sweeping-palm", Name: "Sweeping Palm", QiCost: 8, Cooldown: 1200,
		Effect: progression.EffectMelee, Damage: 14,
		Width: 48, Height: 32, Duration: 200, CastTime: 150,
	})
	store.Equip(0, "fireball")
	store.Equip(1, "sweeping-palm")
	return store
}

// fixture bundles a fully wired simulation context: world, space, open
// 20x20 grid, bridge, hit registry, and the overlap resolver.
type fixture struct {
	world    *ecs.World
	space    *physics.Space
	grid     *pathfind.Grid
	paths    *pathfind.Service
	store    *progression.MemoryStore
	bridge   *PhysicsBridgeSystem
	registry *HitRegistry
	cfg      *config.CombatConfig
	log      *zap.Logger
}

func newFixture() *fixture {
	grid := pathfind.NewGrid(20, 20, 32)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			grid.SetWalkable(pathfind.Tile{X: x, Y: y}, true)
		}
	}

	f := &fixture{
		world:    ecs.NewWorld(),
		space:    physics.NewSpace(640, 640),
		grid:     grid,
		paths:    pathfind.NewService(grid, pathfind.DefaultBudget),
		store:    testStore(),
		registry: NewHitRegistry(),
		cfg:      testCombatConfig(),
		log:      zap.NewNop(),
	}
	f.bridge = NewPhysicsBridgeSystem(f.space)
	f.space.SetOverlapFunc(NewResolver(f.world, f.bridge, f.registry).HandleOverlap)
	return f
}

func (f *fixture) spawnPlayer(x, y float64) ecs.EntityID {
	id := f.world.CreatePlayer(x, y, ecs.PlayerConfig{
		MaxHealth: 100, MaxQi: 50, MaxStamina: 100,
		BodyWidth: 20, BodyHeight: 28, Sprite: "player",
	})
	f.bridge.Update(f.world, 0)
	return id
}

func (f *fixture) spawnEnemy(x, y float64) ecs.EntityID {
	id := f.world.CreateEnemy(x, y, ecs.EnemyConfig{
		MaxHealth: 40, MoveSpeed: 120,
		PerceptionRadius: 200, AttackRadius: 40,
		AttackInterval: 1500, AttackDamage: 8,
		BodyWidth: 22, BodyHeight: 26, Sprite: "ashwalker",
	})
	f.bridge.Update(f.world, 0)
	return id
}

// bodyOfTest resolves an entity's simulated body for assertions.
func bodyOfTest(f *fixture, id ecs.EntityID) *physics.Body {
	comp := f.world.Body[id]
	if comp.Body == 0 {
		return nil
	}
	return f.space.Body(physics.BodyID(comp.Body))
}

// pressInput overwrites the entity's input state for one tick.
func (f *fixture) pressInput(id ecs.EntityID, mutate func(*ecs.InputState)) {
	in := f.world.Input[id]
	mutate(&in)
	f.world.Input[id] = in
}

// fakeDevice replays scripted frames for input tests.
type fakeDevice struct {
	frames []DeviceFrame
	next   int
}

func (d *fakeDevice) Poll() DeviceFrame {
	if d.next >= len(d.frames) {
		return DeviceFrame{}
	}
	f := d.frames[d.next]
	d.next++
	return f
}
