package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xml300/dao-game/internal/ecs"
)

func fullRegistry() *AnimRegistry {
	reg := NewAnimRegistry()
	for _, name := range []string{
		AnimIdle, AnimRun, AnimFly, AnimDodge, AnimHurt, AnimDead,
		AnimAttackHeavy, "attack_light_1", "attack_light_2", "attack_light_3",
	} {
		reg.Register(name)
	}
	return reg
}

func TestAnimRegistryInternsOnce(t *testing.T) {
	reg := NewAnimRegistry()
	a := reg.Register("idle")
	b := reg.Register("idle")
	assert.Equal(t, a, b)
	assert.Equal(t, "idle", reg.Name(a))

	_, ok := reg.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, "", reg.Name(0), "id 0 is reserved")
}

func animFor(t *testing.T, reg *AnimRegistry, mov ecs.MovementState, cs ecs.CombatState) string {
	t.Helper()
	f := newFixture()
	sys := NewAnimationSystem(reg)
	player := f.spawnPlayer(100, 100)
	f.world.Movement[player] = mov
	f.world.Combat[player] = cs

	sys.Update(f.world, 16)
	return reg.Name(f.world.Render[player].Anim)
}

func TestAnimationPriorityOrder(t *testing.T) {
	reg := fullRegistry()

	tests := []struct {
		name string
		mov  ecs.MovementState
		cs   ecs.CombatState
		want string
	}{
		{"dead beats everything", ecs.MovementState{Dead: true, Flying: true}, ecs.CombatState{Staggered: true}, AnimDead},
		{"stagger beats flight", ecs.MovementState{Flying: true}, ecs.CombatState{Staggered: true}, AnimHurt},
		{"flight beats dodge", ecs.MovementState{Flying: true}, ecs.CombatState{Dodging: true}, AnimFly},
		{"dodge beats attack", ecs.MovementState{}, ecs.CombatState{Dodging: true, AttackingHeavy: true}, AnimDodge},
		{"heavy beats light", ecs.MovementState{}, ecs.CombatState{AttackingHeavy: true, AttackingLight: true}, AnimAttackHeavy},
		{"light combo 1", ecs.MovementState{}, ecs.CombatState{AttackingLight: true, ComboSequence: 1}, "attack_light_1"},
		{"light combo 3", ecs.MovementState{}, ecs.CombatState{AttackingLight: true, ComboSequence: 3}, "attack_light_3"},
		{"run beats idle", ecs.MovementState{Running: true}, ecs.CombatState{}, AnimRun},
		{"idle fallback", ecs.MovementState{Idle: true}, ecs.CombatState{}, AnimIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, animFor(t, reg, tt.mov, tt.cs))
		})
	}
}

func TestAnimationFallsBackToIdleWhenUnregistered(t *testing.T) {
	reg := NewAnimRegistry()
	reg.Register(AnimIdle) // only idle exists

	got := animFor(t, reg, ecs.MovementState{Flying: true}, ecs.CombatState{})
	assert.Equal(t, AnimIdle, got, "unregistered selection falls back to idle")
}

func TestAnimationOutOfRangeComboUsesFirstSwing(t *testing.T) {
	reg := fullRegistry()
	got := animFor(t, reg, ecs.MovementState{}, ecs.CombatState{AttackingLight: true, ComboSequence: 7})
	assert.Equal(t, "attack_light_1", got)
}

func TestAnimationAppliesToAllRenderables(t *testing.T) {
	f := newFixture()
	reg := fullRegistry()
	sys := NewAnimationSystem(reg)
	f.spawnPlayer(100, 100)
	enemy := f.spawnEnemy(200, 100)

	mov := f.world.Movement[enemy]
	mov.Running = true
	mov.Idle = false
	f.world.Movement[enemy] = mov

	sys.Update(f.world, 16)

	require.Contains(t, f.world.Render, enemy)
	assert.Equal(t, AnimRun, reg.Name(f.world.Render[enemy].Anim))
}
