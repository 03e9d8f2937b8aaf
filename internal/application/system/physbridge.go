package system

import (
	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/physics"
)

// PhysicsBridgeSystem creates and destroys the simulated bodies backing
// entities, and assigns collision-filter groups from the entity's tags.
// Hitbox bodies start as sensors (overlap-only); actor bodies collide
// with world bounds. The bridge owns the body->entity handle table used
// by collision resolution.
type PhysicsBridgeSystem struct {
	space *physics.Space
	owner map[physics.BodyID]ecs.EntityID
}

// NewPhysicsBridgeSystem creates a bridge over the given space.
func NewPhysicsBridgeSystem(space *physics.Space) *PhysicsBridgeSystem {
	return &PhysicsBridgeSystem{
		space: space,
		owner: make(map[physics.BodyID]ecs.EntityID),
	}
}

// EntityForBody resolves a body handle to its owning entity.
func (s *PhysicsBridgeSystem) EntityForBody(id physics.BodyID) (ecs.EntityID, bool) {
	eid, ok := s.owner[id]
	return eid, ok
}

// Update creates bodies for newly physical entities and tears down
// bodies whose entity no longer needs a physics presence.
func (s *PhysicsBridgeSystem) Update(w *ecs.World, dt float64) {
	// Teardown first so a recycled component never aliases a dead body.
	for bid, eid := range s.owner {
		if _, ok := w.Body[eid]; ok && w.Exists(eid) {
			continue
		}
		s.space.DestroyBody(bid)
		delete(s.owner, bid)
		if comp, ok := w.Body[eid]; ok {
			comp.Body = 0
			w.Body[eid] = comp
		}
	}

	for eid, comp := range w.Body {
		if comp.Body != 0 {
			// Mirror the enabled flag onto the live body.
			if b := s.space.Body(physics.BodyID(comp.Body)); b != nil {
				b.Enabled = comp.Enabled
			}
			continue
		}

		pos := w.Position[eid]
		b := s.space.CreateBody(pos.X, pos.Y, comp.Width, comp.Height,
			comp.OffsetX, comp.OffsetY, s.groupFor(w, eid), comp.Sensor)
		b.Enabled = comp.Enabled

		comp.Body = uint64(b.ID())
		w.Body[eid] = comp
		s.owner[b.ID()] = eid
	}
}

// Teardown destroys an entity's body immediately, outside the normal
// per-tick pass. Used by the hitbox lifecycle so an expired hitbox stops
// overlapping within the same tick.
func (s *PhysicsBridgeSystem) Teardown(w *ecs.World, eid ecs.EntityID) {
	comp, ok := w.Body[eid]
	if !ok || comp.Body == 0 {
		return
	}
	bid := physics.BodyID(comp.Body)
	s.space.DestroyBody(bid)
	delete(s.owner, bid)
	comp.Body = 0
	w.Body[eid] = comp
}

func (s *PhysicsBridgeSystem) groupFor(w *ecs.World, eid ecs.EntityID) physics.Group {
	if hb, ok := w.HitboxOf[eid]; ok {
		if hb.Filter == ecs.FilterPlayerOrigin {
			return physics.GroupPlayerHitbox
		}
		return physics.GroupEnemyHitbox
	}
	if _, ok := w.PlayerControlled[eid]; ok {
		return physics.GroupPlayer
	}
	if _, ok := w.IsEnemy[eid]; ok {
		return physics.GroupEnemy
	}
	return physics.GroupNone
}
