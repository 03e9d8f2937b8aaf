package system

import (
	"go.uber.org/zap"

	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/infrastructure/config"
	"github.com/xml300/dao-game/internal/physics"
	"github.com/xml300/dao-game/internal/progression"
)

// CombatSystem runs the per-actor action state machine. Each tick, in
// order: age down action timers, drop flags whose timer reached zero,
// recompute the act/move gates, then attempt at most one new action in
// strict priority order (dodge > techniques 1..4 > heavy > light).
// A successful initiation recomputes the gates immediately, so the
// movement pass later in the same tick already sees them locked.
// Initiations gated by cooldown or resource abort silently; the
// consumed one-shot input flags are cleared every tick regardless.
type CombatSystem struct {
	cfg   *config.CombatConfig
	store progression.Store
	space *physics.Space
	log   *zap.Logger
}

// NewCombatSystem creates a combat system.
func NewCombatSystem(cfg *config.CombatConfig, store progression.Store, space *physics.Space, log *zap.Logger) *CombatSystem {
	return &CombatSystem{cfg: cfg, store: store, space: space, log: log}
}

// Update advances every combat-capable entity's state machine.
func (s *CombatSystem) Update(w *ecs.World, dt float64) {
	for id, cs := range w.Combat {
		tickActionTimers(&cs, dt)
		recomputeGates(&cs)
		w.Combat[id] = cs

		if _, controlled := w.PlayerControlled[id]; controlled {
			s.resolveIntent(w, id)
		}
	}
}

// tickActionTimers decrements every action timer and flips its paired
// flag to false exactly when the timer reaches zero.
func tickActionTimers(cs *ecs.CombatState, dt float64) {
	cs.AttackTimer = floorZero(cs.AttackTimer - dt)
	if cs.AttackTimer == 0 {
		cs.AttackingLight = false
		cs.AttackingHeavy = false
	}
	cs.DodgeTimer = floorZero(cs.DodgeTimer - dt)
	if cs.DodgeTimer == 0 {
		cs.Dodging = false
	}
	cs.ParryTimer = floorZero(cs.ParryTimer - dt)
	if cs.ParryTimer == 0 {
		cs.Parrying = false
	}
	cs.StaggerTimer = floorZero(cs.StaggerTimer - dt)
	if cs.StaggerTimer == 0 {
		cs.Staggered = false
	}
	cs.InvulnTimer = floorZero(cs.InvulnTimer - dt)
	if cs.InvulnTimer == 0 {
		cs.Invulnerable = false
	}
	cs.CastTimer = floorZero(cs.CastTimer - dt)
	if cs.CastTimer == 0 {
		cs.Casting = false
	}
}

// recomputeGates derives the act/move pair from the active flags.
// Attacking, parrying, casting, and stagger block both; dodging blocks
// acting but not moving.
func recomputeGates(cs *ecs.CombatState) {
	cs.CanAttack = true
	cs.CanMove = true

	if cs.AttackingLight || cs.AttackingHeavy || cs.Parrying || cs.Casting || cs.Staggered {
		cs.CanAttack = false
		cs.CanMove = false
	}
	if cs.Dodging {
		cs.CanAttack = false
	}
}

// resolveIntent attempts to initiate at most one action for a controlled
// entity, then clears the one-shot flags it consumes.
func (s *CombatSystem) resolveIntent(w *ecs.World, id ecs.EntityID) {
	in, ok := w.Input[id]
	if !ok {
		return
	}

	switch {
	case in.Dodge:
		s.tryDodge(w, id, in)
	case in.Technique[0]:
		s.tryTechnique(w, id, 0)
	case in.Technique[1]:
		s.tryTechnique(w, id, 1)
	case in.Technique[2]:
		s.tryTechnique(w, id, 2)
	case in.Technique[3]:
		s.tryTechnique(w, id, 3)
	case in.AttackHeavy:
		s.tryHeavyAttack(w, id)
	case in.AttackLight:
		s.tryLightAttack(w, id)
	}

	// Consumed one-shots never persist to the next tick, even when the
	// action failed to fire. Blink and flight belong to movement.
	in = w.Input[id]
	in.Dodge = false
	in.AttackLight = false
	in.AttackHeavy = false
	for i := range in.Technique {
		in.Technique[i] = false
	}
	w.Input[id] = in
}

func (s *CombatSystem) tryDodge(w *ecs.World, id ecs.EntityID, in ecs.InputState) {
	cs := w.Combat[id]
	cd := w.Cooldown[id]
	if !cs.CanAttack || cd.Dodge > 0 {
		return
	}

	st := w.Stamina[id]
	if !st.CanSpend(s.cfg.Dodge.StaminaCost) {
		s.log.Debug("dodge aborted, insufficient stamina",
			zap.Float64("stamina", st.Current),
			zap.Float64("cost", s.cfg.Dodge.StaminaCost))
		return
	}
	st.Add(-s.cfg.Dodge.StaminaCost)
	w.Stamina[id] = st
	s.store.ConsumeStamina(s.cfg.Dodge.StaminaCost)

	// Dodge direction: input direction, or current facing when neutral.
	dirX, dirY := in.MoveX, in.MoveY
	if dirX == 0 && dirY == 0 {
		dirX = w.Rotation[id].DirX()
	}

	cs.Dodging = true
	cs.DodgeTimer = s.cfg.Dodge.Duration
	cs.Invulnerable = true
	cs.InvulnTimer = s.cfg.Dodge.Iframes
	cs.DodgeDirX = dirX
	cs.DodgeDirY = dirY
	recomputeGates(&cs)
	w.Combat[id] = cs

	cd.Dodge = s.cfg.Dodge.Cooldown
	w.Cooldown[id] = cd

	s.zeroVelocity(w, id)
}

// tryTechnique activates the technique equipped in the given slot. The
// four slots share this one path; only the slot index differs.
func (s *CombatSystem) tryTechnique(w *ecs.World, id ecs.EntityID, slot int) {
	cs := w.Combat[id]
	cd := w.Cooldown[id]
	if !cs.CanAttack || cd.Technique[slot] > 0 {
		return
	}

	techID := s.store.EquippedTechniques()[slot]
	if techID == "" {
		return
	}
	tech, ok := s.store.TechniqueByID(techID)
	if !ok {
		s.log.Warn("equipped technique missing from registry",
			zap.String("technique", techID), zap.Int("slot", slot))
		return
	}
	if tech.Effect != progression.EffectMelee && tech.Effect != progression.EffectProjectile {
		s.log.Warn("technique effect not implemented",
			zap.String("technique", techID), zap.String("effect", string(tech.Effect)))
		return
	}

	qi := w.Qi[id]
	if !qi.CanSpend(tech.QiCost) {
		s.log.Debug("technique aborted, insufficient qi",
			zap.String("technique", techID),
			zap.Float64("qi", qi.Current),
			zap.Float64("cost", tech.QiCost))
		return
	}
	qi.Add(-tech.QiCost)
	w.Qi[id] = qi
	s.store.ConsumeQi(tech.QiCost)

	cd.Technique[slot] = tech.Cooldown
	w.Cooldown[id] = cd

	cs.Casting = true
	cs.CastTimer = tech.CastTime
	recomputeGates(&cs)
	w.Combat[id] = cs

	s.zeroVelocity(w, id)

	rot := w.Rotation[id]
	spec := ecs.HitboxSpec{
		OffsetX:  rot.DirX() * (s.cfg.LightAttack.OffsetX + tech.Width/2),
		OffsetY:  0,
		Width:    tech.Width,
		Height:   tech.Height,
		Duration: tech.Duration,
		MaxHits:  1,
		Filter:   ecs.FilterPlayerOrigin,
		Damage:   tech.Damage,
	}
	if tech.Effect == progression.EffectProjectile {
		spec.Sprite = techID
		w.SpawnProjectile(id, spec, rot.DirX()*tech.Speed, 0)
	} else {
		w.SpawnMeleeHitbox(id, spec)
	}
}

func (s *CombatSystem) tryHeavyAttack(w *ecs.World, id ecs.EntityID) {
	cs := w.Combat[id]
	cd := w.Cooldown[id]
	if !cs.CanAttack || cd.AttackHeavy > 0 {
		return
	}

	st := w.Stamina[id]
	if !st.CanSpend(s.cfg.HeavyAttack.StaminaCost) {
		s.log.Debug("heavy attack aborted, insufficient stamina",
			zap.Float64("stamina", st.Current),
			zap.Float64("cost", s.cfg.HeavyAttack.StaminaCost))
		return
	}
	st.Add(-s.cfg.HeavyAttack.StaminaCost)
	w.Stamina[id] = st
	s.store.ConsumeStamina(s.cfg.HeavyAttack.StaminaCost)

	cs.AttackingHeavy = true
	cs.AttackTimer = s.cfg.HeavyAttack.Duration
	recomputeGates(&cs)
	w.Combat[id] = cs

	cd.AttackHeavy = s.cfg.HeavyAttack.Cooldown
	w.Cooldown[id] = cd

	s.zeroVelocity(w, id)
	s.spawnAttackHitbox(w, id, s.cfg.HeavyAttack)
}

func (s *CombatSystem) tryLightAttack(w *ecs.World, id ecs.EntityID) {
	cs := w.Combat[id]
	cd := w.Cooldown[id]
	if !cs.CanAttack || cd.AttackLight > 0 {
		return
	}

	cs.AttackingLight = true
	cs.AttackTimer = s.cfg.LightAttack.Duration
	// The combo counter restarts at 1 on every initiation; chaining to
	// sequences 2/3 is not wired up.
	cs.ComboSequence = 1
	recomputeGates(&cs)
	w.Combat[id] = cs

	cd.AttackLight = s.cfg.LightAttack.Cooldown
	w.Cooldown[id] = cd

	s.zeroVelocity(w, id)
	s.spawnAttackHitbox(w, id, s.cfg.LightAttack)
}

func (s *CombatSystem) spawnAttackHitbox(w *ecs.World, id ecs.EntityID, atk config.AttackConfig) {
	rot := w.Rotation[id]
	w.SpawnMeleeHitbox(id, ecs.HitboxSpec{
		OffsetX:  rot.DirX() * atk.OffsetX,
		OffsetY:  atk.OffsetY,
		Width:    atk.Width,
		Height:   atk.Height,
		Duration: atk.Duration,
		MaxHits:  atk.MaxHits,
		Filter:   ecs.FilterPlayerOrigin,
		Damage:   atk.Damage,
	})
}

func (s *CombatSystem) zeroVelocity(w *ecs.World, id ecs.EntityID) {
	if b := bodyOf(w, s.space, id); b != nil {
		b.SetVelocity(0, 0)
	}
}
