package system

import (
	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/physics"
)

// PositionSyncSystem copies the authoritative simulated-body position
// back into the logical Position component after the space has stepped.
type PositionSyncSystem struct {
	space *physics.Space
}

// NewPositionSyncSystem creates a position sync system.
func NewPositionSyncSystem(space *physics.Space) *PositionSyncSystem {
	return &PositionSyncSystem{space: space}
}

// Update syncs every entity that has a live body.
func (s *PositionSyncSystem) Update(w *ecs.World, dt float64) {
	for id := range w.Body {
		b := bodyOf(w, s.space, id)
		if b == nil {
			continue
		}
		w.Position[id] = ecs.Position{X: b.X, Y: b.Y}
	}
}
