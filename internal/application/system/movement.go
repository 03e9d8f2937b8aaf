package system

import (
	"go.uber.org/zap"

	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/infrastructure/config"
	"github.com/xml300/dao-game/internal/pathfind"
	"github.com/xml300/dao-game/internal/physics"
	"github.com/xml300/dao-game/internal/progression"
)

// MovementSystem translates intent and action state into velocity on the
// simulated body. Per controlled entity the precedence is strict:
// blink > flight > dodge burst > grounded movement > blocked. Entities
// carrying an independent Velocity (projectiles) have it applied
// verbatim instead.
type MovementSystem struct {
	cfg   *config.CombatConfig
	store progression.Store
	space *physics.Space
	grid  *pathfind.Grid
	log   *zap.Logger
}

// NewMovementSystem creates a movement system.
func NewMovementSystem(cfg *config.CombatConfig, store progression.Store, space *physics.Space, grid *pathfind.Grid, log *zap.Logger) *MovementSystem {
	return &MovementSystem{cfg: cfg, store: store, space: space, grid: grid, log: log}
}

// Update applies movement for controlled and free-velocity entities.
func (s *MovementSystem) Update(w *ecs.World, dt float64) {
	for id := range w.PlayerControlled {
		s.updateControlled(w, id, dt)
	}

	// Free movers: velocity applied verbatim, facing follows velocity.
	for id, vel := range w.Velocity {
		if _, controlled := w.PlayerControlled[id]; controlled {
			continue
		}
		b := bodyOf(w, s.space, id)
		if b == nil {
			continue
		}
		b.SetVelocity(vel.X, vel.Y)
		if rot, ok := w.Rotation[id]; ok {
			if vel.X > 0 {
				rot.Degrees = 0
			} else if vel.X < 0 {
				rot.Degrees = 180
			}
			w.Rotation[id] = rot
		}
	}
}

func (s *MovementSystem) updateControlled(w *ecs.World, id ecs.EntityID, dt float64) {
	in, ok := w.Input[id]
	if !ok {
		return
	}
	cs := w.Combat[id]
	mov := w.Movement[id]

	blink := in.Blink
	toggleFlight := in.ToggleFlight
	in.Blink = false
	in.ToggleFlight = false
	w.Input[id] = in

	b := bodyOf(w, s.space, id)
	if b == nil {
		return
	}

	if mov.Dead {
		b.SetVelocity(0, 0)
		return
	}

	// Blink: instant reposition with validity check.
	if blink && s.tryBlink(w, id, b) {
		return
	}

	// Flight toggle and maintenance.
	if toggleFlight {
		s.toggleFlight(w, id, &mov)
	}
	if mov.Flying {
		s.maintainFlight(w, id, &mov, b, in, dt)
		w.Movement[id] = mov
		return
	}

	// Dodge burst overrides standard movement restrictions.
	if cs.Dodging {
		b.SetVelocity(cs.DodgeDirX*s.cfg.Dodge.Speed, cs.DodgeDirY*s.cfg.Dodge.Speed)
		w.Movement[id] = mov
		return
	}

	// Standard grounded movement, gated by the combat move flag.
	if !cs.CanMove {
		b.SetVelocity(0, 0)
		mov.Running = false
		mov.Idle = true
		w.Movement[id] = mov
		return
	}

	speed := s.cfg.Movement.WalkSpeed
	if in.Sprint && (in.MoveX != 0 || in.MoveY != 0) {
		st := w.Stamina[id]
		if st.Current > 0 {
			speed *= s.cfg.Movement.SprintMultiplier
			st.Add(-s.cfg.Movement.SprintStaminaPerSec * dt / 1000.0)
			w.Stamina[id] = st
		}
	}

	b.SetVelocity(in.MoveX*speed, in.MoveY*speed)

	// Facing follows horizontal input sign.
	if rot, ok := w.Rotation[id]; ok && in.MoveX != 0 {
		if in.MoveX > 0 {
			rot.Degrees = 0
		} else {
			rot.Degrees = 180
		}
		w.Rotation[id] = rot
	}

	moving := in.MoveX != 0 || in.MoveY != 0
	mov.Running = moving
	mov.Idle = !moving
	w.Movement[id] = mov
}

// tryBlink teleports the entity a fixed distance along its facing when
// the destination tile is walkable and the qi cost and cooldown allow.
func (s *MovementSystem) tryBlink(w *ecs.World, id ecs.EntityID, b *physics.Body) bool {
	cd := w.Cooldown[id]
	if cd.Blink > 0 {
		return false
	}
	qi := w.Qi[id]
	if !qi.CanSpend(s.cfg.Blink.QiCost) {
		s.log.Debug("blink aborted, insufficient qi",
			zap.Float64("qi", qi.Current), zap.Float64("cost", s.cfg.Blink.QiCost))
		return false
	}

	pos := w.Position[id]
	rot := w.Rotation[id]
	destX := pos.X + rot.DirX()*s.cfg.Blink.Distance
	destY := pos.Y

	if !s.grid.Walkable(s.grid.WorldToTile(destX, destY)) {
		s.log.Debug("blink aborted, destination blocked",
			zap.Float64("x", destX), zap.Float64("y", destY))
		return false
	}

	qi.Add(-s.cfg.Blink.QiCost)
	w.Qi[id] = qi
	s.store.ConsumeQi(s.cfg.Blink.QiCost)

	cd.Blink = s.cfg.Blink.Cooldown
	w.Cooldown[id] = cd

	b.SetPosition(destX, destY)
	b.SetVelocity(0, 0)
	return true
}

// toggleFlight lands a flying entity, or lifts off when the realm tier
// unlock and a non-empty qi pool allow it.
func (s *MovementSystem) toggleFlight(w *ecs.World, id ecs.EntityID, mov *ecs.MovementState) {
	if mov.Flying {
		mov.Flying = false
		return
	}
	stats := s.store.CoreStats()
	if stats.Realm < s.cfg.Flight.RealmRequired {
		s.log.Debug("flight locked, realm too low",
			zap.Int("realm", stats.Realm), zap.Int("required", s.cfg.Flight.RealmRequired))
		return
	}
	if qi := w.Qi[id]; qi.Current <= 0 {
		return
	}
	mov.Flying = true
}

// maintainFlight drains qi while airborne and force-lands at zero.
func (s *MovementSystem) maintainFlight(w *ecs.World, id ecs.EntityID, mov *ecs.MovementState, b *physics.Body, in ecs.InputState, dt float64) {
	qi := w.Qi[id]
	qi.Add(-s.cfg.Flight.QiDrainPerSec * dt / 1000.0)
	w.Qi[id] = qi

	if qi.Current <= 0 {
		mov.Flying = false
		b.SetVelocity(0, 0)
		return
	}

	b.SetVelocity(in.MoveX*s.cfg.Flight.Speed, in.MoveY*s.cfg.Flight.Speed)

	if rot, ok := w.Rotation[id]; ok && in.MoveX != 0 {
		if in.MoveX > 0 {
			rot.Degrees = 0
		} else {
			rot.Degrees = 180
		}
		w.Rotation[id] = rot
	}
}
