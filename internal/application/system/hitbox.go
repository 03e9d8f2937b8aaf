package system

import (
	"go.uber.org/zap"

	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/physics"
)

// HitboxSystem maintains transient hitbox entities: melee hitboxes track
// their owner's position every tick, expired or orphaned hitboxes are
// destroyed along with their body and hit-registry bookkeeping.
type HitboxSystem struct {
	space    *physics.Space
	bridge   *PhysicsBridgeSystem
	registry *HitRegistry
	log      *zap.Logger
}

// NewHitboxSystem creates a hitbox lifecycle system.
func NewHitboxSystem(space *physics.Space, bridge *PhysicsBridgeSystem, registry *HitRegistry, log *zap.Logger) *HitboxSystem {
	return &HitboxSystem{space: space, bridge: bridge, registry: registry, log: log}
}

// Update repositions live hitboxes and removes dead ones.
func (s *HitboxSystem) Update(w *ecs.World, dt float64) {
	var toDestroy []ecs.EntityID

	for id, hb := range w.HitboxOf {
		// Orphan: the owner vanished out from under us.
		if !w.Exists(hb.Owner) {
			s.log.Debug("removing orphaned hitbox",
				zap.Uint64("hitbox", uint64(id)), zap.Uint64("owner", uint64(hb.Owner)))
			toDestroy = append(toDestroy, id)
			continue
		}
		if hb.ExpiredAt(w.Clock) {
			toDestroy = append(toDestroy, id)
			continue
		}

		// Projectiles move on their own velocity; everything else is
		// pinned to the owner.
		if hb.Projectile {
			continue
		}
		ownerPos := w.Position[hb.Owner]
		pos := ecs.Position{X: ownerPos.X + hb.OffsetX, Y: ownerPos.Y + hb.OffsetY}
		w.Position[id] = pos
		if b := bodyOf(w, s.space, id); b != nil {
			b.SetPosition(pos.X, pos.Y)
		}
	}

	for _, id := range toDestroy {
		s.bridge.Teardown(w, id)
		s.registry.Purge(id)
		w.DestroyEntity(id)
	}
}
