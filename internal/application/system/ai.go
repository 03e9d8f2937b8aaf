package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/pathfind"
	"github.com/xml300/dao-game/internal/physics"
)

// Hysteresis margin applied to perception and attack radii when leaving
// a state, so enemies do not flicker between states at the boundary.
// Radii are squared, so the 1.5x distance margin squares to 2.25.
const hysteresisSq = 2.25

// enemySwingDuration is how long an enemy attack animation holds, ms.
const enemySwingDuration = 300

// AISystem drives the Idle -> Chasing -> Attacking state machine for
// every AI-controlled combatant. Chasing never steers at the target's
// raw coordinates: it requests a tile path from the pathfinding service
// and seeks waypoint centers, recomputing when the target changes tile.
type AISystem struct {
	paths *pathfind.Service
	space *physics.Space
	log   *zap.Logger
}

// NewAISystem creates an AI system over the given path service.
func NewAISystem(paths *pathfind.Service, space *physics.Space, log *zap.Logger) *AISystem {
	return &AISystem{paths: paths, space: space, log: log}
}

// Update runs one FSM decision per AI entity.
func (s *AISystem) Update(w *ecs.World, dt float64) {
	playerID := w.PlayerID
	playerAlive := playerID != 0 && w.Exists(playerID) && !w.Movement[playerID].Dead

	for id, ai := range w.AI {
		ai.AttackCooldown = floorZero(ai.AttackCooldown - dt)

		if mov, ok := w.Movement[id]; ok && mov.Dead {
			w.AI[id] = ai
			continue
		}
		if cs, ok := w.Combat[id]; ok && cs.Staggered {
			s.stop(w, id)
			w.AI[id] = ai
			continue
		}

		if !playerAlive {
			if ai.Mode != ecs.AIIdle {
				ai.Mode = ecs.AIIdle
				ai.Target = 0
				ai.ClearPath()
				s.stop(w, id)
			}
			w.AI[id] = ai
			continue
		}

		pos := w.Position[id]
		target := w.Position[playerID]
		dx := target.X - pos.X
		dy := target.Y - pos.Y
		distSq := dx*dx + dy*dy

		switch ai.Mode {
		case ecs.AIIdle:
			if distSq <= ai.PerceptionRadiusSq {
				// Entering Chasing drops any stale path and target.
				ai.Mode = ecs.AIChasing
				ai.Target = playerID
				ai.ClearPath()
			}

		case ecs.AIChasing:
			if distSq > ai.PerceptionRadiusSq*hysteresisSq {
				ai.Mode = ecs.AIIdle
				ai.Target = 0
				ai.ClearPath()
				s.stop(w, id)
				break
			}
			if distSq <= ai.AttackRadiusSq {
				ai.Mode = ecs.AIAttacking
				ai.ClearPath()
				s.stop(w, id)
				if ai.AttackCooldown == 0 {
					ai.AttackCooldown = ai.AttackInterval
				}
				break
			}
			s.chase(w, id, &ai, pos, target)

		case ecs.AIAttacking:
			if distSq > ai.AttackRadiusSq*hysteresisSq {
				ai.Mode = ecs.AIChasing
				ai.ClearPath()
				break
			}
			s.faceTarget(w, id, dx)
			s.stop(w, id)
			if ai.AttackCooldown == 0 {
				s.attack(w, id, &ai)
				ai.AttackCooldown = ai.AttackInterval
			}
		}

		w.AI[id] = ai
	}
}

// chase requests or follows a tile path toward the target.
func (s *AISystem) chase(w *ecs.World, id ecs.EntityID, ai *ecs.AIState, pos, target ecs.Position) {
	grid := s.paths.Grid()
	selfTile := grid.WorldToTile(pos.X, pos.Y)
	targetTile := grid.WorldToTile(target.X, target.Y)

	needsPath := len(ai.Path) == 0 || !ai.HasTargetTile || targetTile != ai.LastTargetTile
	if needsPath && !ai.Calculating {
		if s.paths.Request(uint64(id), selfTile, targetTile, s.pathResult(w)) {
			ai.Calculating = true
			ai.LastTargetTile = targetTile
			ai.HasTargetTile = true
		}
	}

	if len(ai.Path) == 0 || ai.PathIndex >= len(ai.Path) {
		return
	}

	wx, wy := grid.TileCenter(ai.Path[ai.PathIndex])
	dx := wx - pos.X
	dy := wy - pos.Y
	distSq := dx*dx + dy*dy

	tolerance := float64(grid.TileSize()) / 2
	if distSq <= tolerance*tolerance {
		ai.PathIndex++
		if ai.PathIndex >= len(ai.Path) {
			// Reaching path end forces a fresh computation.
			ai.ClearPath()
			s.stop(w, id)
			return
		}
		wx, wy = grid.TileCenter(ai.Path[ai.PathIndex])
		dx = wx - pos.X
		dy = wy - pos.Y
	}

	s.seek(w, id, dx, dy, ai.MoveSpeed)
	s.faceTarget(w, id, dx)
}

// pathResult builds the deferred callback applied between ticks. The
// requesting entity may have been destroyed by the time the result
// lands; a stale result is a no-op.
func (s *AISystem) pathResult(w *ecs.World) pathfind.Callback {
	return func(requester uint64, path []pathfind.Tile) {
		id := ecs.EntityID(requester)
		ai, ok := w.AI[id]
		if !ok || !w.Exists(id) {
			return
		}
		ai.Calculating = false
		if path == nil {
			// No route to the target: give up the chase.
			s.log.Debug("no path to target, reverting to idle",
				zap.Uint64("entity", requester))
			ai.Mode = ecs.AIIdle
			ai.Target = 0
			ai.ClearPath()
			s.stop(w, id)
		} else {
			ai.Path = path
			ai.PathIndex = 0
		}
		w.AI[id] = ai
	}
}

// attack spawns an enemy-origin hitbox aimed at the current facing,
// mirroring the player's attack-hitbox spawn contract.
func (s *AISystem) attack(w *ecs.World, id ecs.EntityID, ai *ecs.AIState) {
	rot := w.Rotation[id]
	body := w.Body[id]

	w.SpawnMeleeHitbox(id, ecs.HitboxSpec{
		OffsetX:  rot.DirX() * (body.Width/2 + 12),
		OffsetY:  0,
		Width:    body.Width,
		Height:   body.Height * 0.75,
		Duration: enemySwingDuration,
		MaxHits:  1,
		Filter:   ecs.FilterEnemyOrigin,
		Damage:   ai.AttackDamage,
	})

	if cs, ok := w.Combat[id]; ok {
		cs.AttackingLight = true
		cs.AttackTimer = enemySwingDuration
		w.Combat[id] = cs
	}
}

func (s *AISystem) seek(w *ecs.World, id ecs.EntityID, dx, dy, speed float64) {
	b := bodyOf(w, s.space, id)
	if b == nil {
		return
	}
	distSq := dx*dx + dy*dy
	if distSq == 0 {
		b.SetVelocity(0, 0)
		return
	}
	inv := speed / math.Sqrt(distSq)
	b.SetVelocity(dx*inv, dy*inv)

	if mov, ok := w.Movement[id]; ok {
		mov.Running = true
		mov.Idle = false
		w.Movement[id] = mov
	}
}

func (s *AISystem) stop(w *ecs.World, id ecs.EntityID) {
	if b := bodyOf(w, s.space, id); b != nil {
		b.SetVelocity(0, 0)
	}
	if mov, ok := w.Movement[id]; ok {
		mov.Running = false
		mov.Idle = true
		w.Movement[id] = mov
	}
}

func (s *AISystem) faceTarget(w *ecs.World, id ecs.EntityID, dx float64) {
	rot := w.Rotation[id]
	if dx > 0 {
		rot.Degrees = 0
	} else if dx < 0 {
		rot.Degrees = 180
	}
	w.Rotation[id] = rot
}
