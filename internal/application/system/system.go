// Package system contains the fixed-order simulation pipeline. Every
// system runs once per tick over the shared ECS world; the order is the
// structural backbone of the simulation and must not be rearranged:
// intent is decided before bodies are created, bodies are simulated
// before positions sync, and consequences (damage) resolve last before
// presentation.
package system

import (
	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/physics"
)

// System is a stateless per-tick pass over the world. dt is the elapsed
// time in milliseconds.
type System interface {
	Update(w *ecs.World, dt float64)
}

// Pipeline runs systems in registration order and advances the world
// clock. The pathfinding pump (and any other deferred work) runs after
// every system has completed, so callbacks observe a consistent world.
type Pipeline struct {
	systems []System
	pumps   []func()
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Add appends a system to the pipeline.
func (p *Pipeline) Add(s System) *Pipeline {
	p.systems = append(p.systems, s)
	return p
}

// AddPump registers deferred work drained once per tick, after systems.
func (p *Pipeline) AddPump(fn func()) *Pipeline {
	p.pumps = append(p.pumps, fn)
	return p
}

// Tick advances the clock and runs one full simulation step.
func (p *Pipeline) Tick(w *ecs.World, dt float64) {
	w.Clock += dt
	for _, s := range p.systems {
		s.Update(w, dt)
	}
	for _, pump := range p.pumps {
		pump()
	}
}

// bodyOf resolves an entity's simulated body, or nil when the bridge has
// not created one yet.
func bodyOf(w *ecs.World, space *physics.Space, id ecs.EntityID) *physics.Body {
	comp, ok := w.Body[id]
	if !ok || comp.Body == 0 {
		return nil
	}
	return space.Body(physics.BodyID(comp.Body))
}
