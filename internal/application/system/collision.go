package system

import (
	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/physics"
)

// HitRegistry tracks which targets each hitbox has already struck, so a
// hitbox never damages the same entity twice and never exceeds its
// max-hit count. Entries are purged when their hitbox is destroyed.
type HitRegistry struct {
	struck map[ecs.EntityID]map[ecs.EntityID]struct{}
}

// NewHitRegistry creates an empty registry.
func NewHitRegistry() *HitRegistry {
	return &HitRegistry{struck: make(map[ecs.EntityID]map[ecs.EntityID]struct{})}
}

// Struck reports whether the hitbox already hit the target.
func (r *HitRegistry) Struck(hitbox, target ecs.EntityID) bool {
	_, ok := r.struck[hitbox][target]
	return ok
}

// Count returns how many distinct targets the hitbox has struck.
func (r *HitRegistry) Count(hitbox ecs.EntityID) int {
	return len(r.struck[hitbox])
}

// Record marks the target as struck by the hitbox.
func (r *HitRegistry) Record(hitbox, target ecs.EntityID) {
	set, ok := r.struck[hitbox]
	if !ok {
		set = make(map[ecs.EntityID]struct{})
		r.struck[hitbox] = set
	}
	set[target] = struct{}{}
}

// Purge drops all bookkeeping for a destroyed hitbox.
func (r *HitRegistry) Purge(hitbox ecs.EntityID) {
	delete(r.struck, hitbox)
}

// Resolver is the overlap callback invoked by the physics space. Given
// two overlapping bodies it decides whether a hit lands and, if so,
// attaches a one-tick TakeDamage signal to the target.
type Resolver struct {
	world    *ecs.World
	bridge   *PhysicsBridgeSystem
	registry *HitRegistry
}

// NewResolver creates a collision resolver.
func NewResolver(world *ecs.World, bridge *PhysicsBridgeSystem, registry *HitRegistry) *Resolver {
	return &Resolver{world: world, bridge: bridge, registry: registry}
}

// HandleOverlap resolves one overlapping body pair.
func (r *Resolver) HandleOverlap(a, b *physics.Body) {
	w := r.world

	ea, ok := r.bridge.EntityForBody(a.ID())
	if !ok {
		return
	}
	eb, ok := r.bridge.EntityForBody(b.ID())
	if !ok {
		return
	}

	hbA, aIsHitbox := w.HitboxOf[ea]
	hbB, bIsHitbox := w.HitboxOf[eb]

	// Exactly one side must be a hitbox.
	if aIsHitbox == bIsHitbox {
		return
	}

	hitboxID, targetID := ea, eb
	hb := hbA
	if bIsHitbox {
		hitboxID, targetID = eb, ea
		hb = hbB
	}

	if hb.Owner == targetID {
		return
	}
	if !hb.ActiveAt(w.Clock) {
		return
	}

	// Category filter: player-origin hitboxes hit enemies, enemy-origin
	// hitboxes hit the player.
	switch hb.Filter {
	case ecs.FilterPlayerOrigin:
		if _, enemy := w.IsEnemy[targetID]; !enemy {
			return
		}
	case ecs.FilterEnemyOrigin:
		if _, player := w.PlayerControlled[targetID]; !player {
			return
		}
	default:
		return
	}

	if r.registry.Struck(hitboxID, targetID) {
		return
	}
	if hb.MaxHits > 0 && r.registry.Count(hitboxID) >= hb.MaxHits {
		return
	}
	r.registry.Record(hitboxID, targetID)

	// A second unresolved hit in the same window is dropped.
	if _, pending := w.Damage[targetID]; pending {
		return
	}
	w.Damage[targetID] = ecs.TakeDamage{Amount: hb.Damage, Source: hb.Owner}
}
