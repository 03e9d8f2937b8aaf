package system

import "github.com/xml300/dao-game/internal/ecs"

// CooldownSystem ages down every per-action cooldown timer, floored at
// zero. No branching, no side effects beyond the timers.
type CooldownSystem struct{}

// NewCooldownSystem creates a cooldown system.
func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

// Update subtracts elapsed milliseconds from every cooldown field.
func (s *CooldownSystem) Update(w *ecs.World, dt float64) {
	for id, cd := range w.Cooldown {
		cd.AttackLight = floorZero(cd.AttackLight - dt)
		cd.AttackHeavy = floorZero(cd.AttackHeavy - dt)
		cd.Dodge = floorZero(cd.Dodge - dt)
		cd.Blink = floorZero(cd.Blink - dt)
		for i := range cd.Technique {
			cd.Technique[i] = floorZero(cd.Technique[i] - dt)
		}
		w.Cooldown[id] = cd
	}
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
