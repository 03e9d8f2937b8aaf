package system

import (
	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/physics"
)

// PhysicsStepSystem advances the simulated space by one tick. Overlap
// callbacks fire during the step, so it must run after movement and
// hitbox placement and before position sync and damage application.
type PhysicsStepSystem struct {
	space *physics.Space
}

// NewPhysicsStepSystem creates the step wrapper.
func NewPhysicsStepSystem(space *physics.Space) *PhysicsStepSystem {
	return &PhysicsStepSystem{space: space}
}

// Update steps the space.
func (s *PhysicsStepSystem) Update(w *ecs.World, dt float64) {
	s.space.Step(dt)
}
