package system

import "github.com/xml300/dao-game/internal/ecs"

// AnimRegistry interns animation names into dense ids once at
// registration time, so the per-tick selection loop never hashes
// strings.
type AnimRegistry struct {
	byName map[string]ecs.AnimID
	names  []string
}

// NewAnimRegistry creates an empty registry. Id 0 is reserved for
// "none".
func NewAnimRegistry() *AnimRegistry {
	return &AnimRegistry{
		byName: make(map[string]ecs.AnimID),
		names:  []string{""},
	}
}

// Register interns a name, returning its stable id. Re-registering
// returns the existing id.
func (r *AnimRegistry) Register(name string) ecs.AnimID {
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := ecs.AnimID(len(r.names))
	r.byName[name] = id
	r.names = append(r.names, name)
	return id
}

// Lookup resolves a name without registering it.
func (r *AnimRegistry) Lookup(name string) (ecs.AnimID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Name returns the interned name for an id, or "" for unknown ids.
func (r *AnimRegistry) Name(id ecs.AnimID) string {
	if id <= 0 || int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

// Standard animation names. Light attacks sub-select by combo sequence
// (attack_light_1 .. attack_light_3).
const (
	AnimIdle        = "idle"
	AnimRun         = "run"
	AnimFly         = "fly"
	AnimDodge       = "dodge"
	AnimHurt        = "hurt"
	AnimDead        = "dead"
	AnimAttackHeavy = "attack_heavy"
)

// maxComboSteps is the number of light-attack combo animations.
const maxComboSteps = 3

// AnimationSystem derives the animation identifier from action and
// movement state, in strict descending priority. It writes Renderable
// only when the selection changed, and falls back to idle when the
// intended animation is not registered with the render collaborator.
type AnimationSystem struct {
	idle  ecs.AnimID
	run   ecs.AnimID
	fly   ecs.AnimID
	dodge ecs.AnimID
	hurt  ecs.AnimID
	dead  ecs.AnimID
	heavy ecs.AnimID
	light [maxComboSteps + 1]ecs.AnimID // indexed by combo sequence
}

// NewAnimationSystem creates an animation selection system. Ids resolve
// against the registry once, here; names absent from the registry fall
// back to idle at selection time.
func NewAnimationSystem(reg *AnimRegistry) *AnimationSystem {
	s := &AnimationSystem{}
	s.idle, _ = reg.Lookup(AnimIdle)
	s.run, _ = reg.Lookup(AnimRun)
	s.fly, _ = reg.Lookup(AnimFly)
	s.dodge, _ = reg.Lookup(AnimDodge)
	s.hurt, _ = reg.Lookup(AnimHurt)
	s.dead, _ = reg.Lookup(AnimDead)
	s.heavy, _ = reg.Lookup(AnimAttackHeavy)
	s.light[1], _ = reg.Lookup("attack_light_1")
	s.light[2], _ = reg.Lookup("attack_light_2")
	s.light[3], _ = reg.Lookup("attack_light_3")
	return s
}

// Update selects an animation for every renderable entity.
func (s *AnimationSystem) Update(w *ecs.World, dt float64) {
	for id, rend := range w.Render {
		mov := w.Movement[id]
		cs := w.Combat[id]

		animID := s.selectAnim(mov, cs)
		if animID == 0 {
			animID = s.idle
		}

		if rend.Anim != animID {
			rend.Anim = animID
			w.Render[id] = rend
		}
	}
}

func (s *AnimationSystem) selectAnim(mov ecs.MovementState, cs ecs.CombatState) ecs.AnimID {
	switch {
	case mov.Dead:
		return s.dead
	case cs.Staggered:
		return s.hurt
	case mov.Flying:
		return s.fly
	case cs.Dodging:
		return s.dodge
	case cs.AttackingHeavy:
		return s.heavy
	case cs.AttackingLight:
		if cs.ComboSequence >= 1 && cs.ComboSequence <= maxComboSteps {
			return s.light[cs.ComboSequence]
		}
		return s.light[1]
	case mov.Running:
		return s.run
	default:
		return s.idle
	}
}
