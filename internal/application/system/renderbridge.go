package system

import (
	"sort"

	"github.com/xml300/dao-game/internal/ecs"
)

// RenderInstance is the drawable snapshot of one entity, owned by the
// render side. The simulation never draws; it only keeps these in sync.
type RenderInstance struct {
	Sprite  string
	Anim    ecs.AnimID
	X, Y    float64
	FlipX   bool
	Depth   float64
	Visible bool
}

// RenderBridgeSystem materializes, updates, and destroys render
// instances from logical state. It runs last in the tick so the draw
// pass sees post-damage, post-animation state.
type RenderBridgeSystem struct {
	instances map[ecs.EntityID]*RenderInstance
	sorted    []*RenderInstance
	dirty     bool
}

func NewRenderBridgeSystem() *RenderBridgeSystem {
	return &RenderBridgeSystem{
		instances: make(map[ecs.EntityID]*RenderInstance),
	}
}

// Update synchronizes instances with entities that carry a Renderable
// and a Position. Instances for vanished entities are dropped.
func (s *RenderBridgeSystem) Update(w *ecs.World, dt float64) {
	for id := range s.instances {
		if _, ok := w.Render[id]; !ok {
			delete(s.instances, id)
			s.dirty = true
		}
	}

	for id, rend := range w.Render {
		pos, ok := w.Position[id]
		if !ok {
			continue
		}
		inst, ok := s.instances[id]
		if !ok {
			inst = &RenderInstance{}
			s.instances[id] = inst
			s.dirty = true
		}
		if inst.Depth != rend.Depth {
			s.dirty = true
		}
		inst.Sprite = rend.Sprite
		inst.Anim = rend.Anim
		inst.X = pos.X
		inst.Y = pos.Y
		inst.Depth = rend.Depth
		inst.Visible = rend.Visible
		if rot, ok := w.Rotation[id]; ok {
			inst.FlipX = !rot.FacingRight()
		} else {
			inst.FlipX = rend.FlipX
		}
	}
}

// Instances returns the live instances ordered by ascending depth,
// stable across calls. The slice is reused; callers must not retain it.
func (s *RenderBridgeSystem) Instances() []*RenderInstance {
	if s.dirty {
		s.sorted = s.sorted[:0]
		for _, inst := range s.instances {
			s.sorted = append(s.sorted, inst)
		}
		sort.SliceStable(s.sorted, func(i, j int) bool {
			return s.sorted[i].Depth < s.sorted[j].Depth
		})
		s.dirty = false
	}
	return s.sorted
}

// Count reports how many instances are alive.
func (s *RenderBridgeSystem) Count() int { return len(s.instances) }
