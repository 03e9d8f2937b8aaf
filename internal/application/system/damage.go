package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/infrastructure/config"
	"github.com/xml300/dao-game/internal/physics"
	"github.com/xml300/dao-game/internal/progression"
)

// DamageSystem consumes queued TakeDamage signals, computes final
// damage through mitigation and amplification, and applies the
// consequences: health loss, stagger, death, and progression-store
// reporting. The signal is removed exactly once regardless of outcome.
type DamageSystem struct {
	cfg   *config.CombatConfig
	store progression.Store
	space *physics.Space
	rng   *rand.Rand
	log   *zap.Logger
}

// NewDamageSystem creates a damage system. The RNG feeds the critical
// roll and should be seeded deterministically for replays and tests.
func NewDamageSystem(cfg *config.CombatConfig, store progression.Store, space *physics.Space, rng *rand.Rand, log *zap.Logger) *DamageSystem {
	return &DamageSystem{cfg: cfg, store: store, space: space, rng: rng, log: log}
}

// Update processes every pending damage signal.
func (s *DamageSystem) Update(w *ecs.World, dt float64) {
	for id, sig := range w.Damage {
		s.apply(w, id, sig)
		// Consumed exactly once, no matter how resolution went.
		delete(w.Damage, id)
	}
}

func (s *DamageSystem) apply(w *ecs.World, target ecs.EntityID, sig ecs.TakeDamage) {
	health, ok := w.Health[target]
	if !ok {
		return
	}
	mov := w.Movement[target]
	if mov.Dead {
		return
	}
	cs := w.Combat[target]
	if cs.Invulnerable {
		return
	}

	_, targetIsPlayer := w.PlayerControlled[target]
	_, sourceIsPlayer := w.PlayerControlled[sig.Source]

	amount := s.finalDamage(sig.Amount, sourceIsPlayer, targetIsPlayer)

	health.Add(-amount)
	w.Health[target] = health

	if targetIsPlayer {
		// The store mirror receives the raw hit; mitigation is a
		// session effect, not a sheet effect.
		s.store.TakeDamage(sig.Amount)
	}

	if health.Current > 0 {
		if amount >= s.cfg.Stagger.Threshold && !cs.Staggered {
			s.stagger(w, target, &cs)
			w.Combat[target] = cs
		}
		return
	}

	s.kill(w, target, &cs, &mov)
	w.Combat[target] = cs
	w.Movement[target] = mov

	if _, enemy := w.IsEnemy[target]; enemy {
		if sourceIsPlayer {
			s.store.AddRealmProgress(s.cfg.KillReward)
		}
		// A dead enemy leaves the active roster so the stage can be
		// cleared; the corpse keeps its render components.
		delete(w.IsEnemy, target)
	}
}

// finalDamage applies attacker-side amplification (player only), the
// independent critical roll, and defender-side mitigation, clamped to a
// minimum of 1.
func (s *DamageSystem) finalDamage(base float64, sourceIsPlayer, targetIsPlayer bool) float64 {
	amount := base

	if sourceIsPlayer {
		stats := s.store.CoreStats()
		amount *= 1 + stats.Affinity*s.cfg.Bonuses.AffinityScale + stats.Mastery*s.cfg.Bonuses.MasteryScale
		if s.rng.Float64() < s.cfg.Crit.Chance {
			amount *= s.cfg.Crit.Multiplier
		}
	}

	if targetIsPlayer {
		stats := s.store.CoreStats()
		amount *= 1 - stats.Resilience
	}

	if amount < 1 {
		amount = 1
	}
	return amount
}

// stagger interrupts every current action and locks the entity down for
// the stagger duration.
func (s *DamageSystem) stagger(w *ecs.World, target ecs.EntityID, cs *ecs.CombatState) {
	cs.AttackingLight = false
	cs.AttackingHeavy = false
	cs.AttackTimer = 0
	cs.Dodging = false
	cs.DodgeTimer = 0
	cs.Casting = false
	cs.CastTimer = 0
	cs.Staggered = true
	cs.StaggerTimer = s.cfg.Stagger.Duration

	if b := bodyOf(w, s.space, target); b != nil {
		b.SetVelocity(0, 0)
	}
}

// kill marks the entity dead and disables its body. Death clears
// stagger; a dead entity can never be staggered again.
func (s *DamageSystem) kill(w *ecs.World, target ecs.EntityID, cs *ecs.CombatState, mov *ecs.MovementState) {
	mov.Dead = true
	mov.Running = false
	mov.Flying = false
	mov.Idle = false

	cs.Staggered = false
	cs.StaggerTimer = 0
	cs.CanAttack = false
	cs.CanMove = false

	if comp, ok := w.Body[target]; ok {
		comp.Enabled = false
		w.Body[target] = comp
	}
	if b := bodyOf(w, s.space, target); b != nil {
		b.SetVelocity(0, 0)
		b.Enabled = false
	}

	s.log.Info("entity died", zap.Uint64("entity", uint64(target)))
}
