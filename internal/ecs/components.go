package ecs

import "github.com/xml300/dao-game/internal/pathfind"

// Position is the logical world location in pixels.
// Once a simulated body exists for the entity, the body is authoritative
// and Position is refreshed from it by the position-sync system.
type Position struct {
	X, Y float64
}

// Velocity is an independent movement vector in pixels/sec.
// Only free-moving entities (projectiles) carry it; controlled entities
// write velocity straight onto their simulated body instead.
type Velocity struct {
	X, Y float64
}

// Rotation is the facing direction in degrees. Only 0 (right) and 180
// (left) are produced by current systems, though the field is continuous.
type Rotation struct {
	Degrees float64
}

// FacingRight reports whether the rotation points into the right half-plane.
func (r Rotation) FacingRight() bool {
	return r.Degrees < 90 || r.Degrees > 270
}

// DirX returns the unit X direction for the two effective facings.
func (r Rotation) DirX() float64 {
	if r.FacingRight() {
		return 1
	}
	return -1
}

// TechniqueSlots is the number of equipped technique slots.
const TechniqueSlots = 4

// InputState is the per-frame intent snapshot. Action flags are one-shot
// ("just pressed") and must be cleared by the consumer within the same
// tick; axes and Sprint are "held" state, rewritten every frame.
type InputState struct {
	MoveX, MoveY float64 // [-1,1], normalized on diagonals
	Sprint       bool

	AttackLight  bool
	AttackHeavy  bool
	Dodge        bool
	Blink        bool
	ToggleFlight bool
	Technique    [TechniqueSlots]bool
}

// ClearOneShot resets every one-shot action flag.
func (in *InputState) ClearOneShot() {
	in.AttackLight = false
	in.AttackHeavy = false
	in.Dodge = false
	in.Blink = false
	in.ToggleFlight = false
	for i := range in.Technique {
		in.Technique[i] = false
	}
}

// MovementState holds the animation-relevant movement flags. Mutual
// exclusion is enforced by animation selection priority, not here.
type MovementState struct {
	Idle    bool
	Running bool
	Flying  bool
	Dead    bool
}

// CombatState is the per-actor action state machine. Timers are in
// milliseconds; a timer at 0 implies its paired flag is false, enforced
// every tick by the combat system.
type CombatState struct {
	AttackingLight bool
	AttackingHeavy bool
	Dodging        bool
	Parrying       bool
	Staggered      bool
	Invulnerable   bool
	Casting        bool

	ComboSequence int

	// DodgeDirX/Y capture the burst direction at dodge initiation.
	DodgeDirX float64
	DodgeDirY float64

	AttackTimer  float64 // ms
	DodgeTimer   float64 // ms
	ParryTimer   float64 // ms
	StaggerTimer float64 // ms
	InvulnTimer  float64 // ms
	CastTimer    float64 // ms

	CanAttack bool
	CanMove   bool
}

// Cooldowns holds the per-action countdown timers in milliseconds.
// Strictly non-negative; decremented by elapsed time each tick.
type Cooldowns struct {
	AttackLight float64
	AttackHeavy float64
	Dodge       float64
	Blink       float64
	Technique   [TechniqueSlots]float64
}

// Pool is a clamped current/max resource pair.
type Pool struct {
	Current, Max float64
}

// Add applies a delta and clamps the result to [0, Max].
// Returns true if the stored value changed.
func (p *Pool) Add(delta float64) bool {
	before := p.Current
	p.Current += delta
	if p.Current > p.Max {
		p.Current = p.Max
	}
	if p.Current < 0 {
		p.Current = 0
	}
	return p.Current != before
}

// CanSpend reports whether the pool holds at least cost.
func (p Pool) CanSpend(cost float64) bool {
	return p.Current >= cost
}

// Health is the hit-point pool.
type Health struct {
	Pool
}

// IsAlive returns true while current health is above zero.
func (h Health) IsAlive() bool {
	return h.Current > 0
}

// QiPool is the technique/flight resource pool.
type QiPool struct {
	Pool
}

// StaminaPool is the dodge/sprint/heavy-attack resource pool.
type StaminaPool struct {
	Pool
}

// HitboxFilter restricts which entity category a hitbox may damage.
type HitboxFilter int

const (
	// FilterPlayerOrigin hitboxes damage enemy-category entities only.
	FilterPlayerOrigin HitboxFilter = iota
	// FilterEnemyOrigin hitboxes damage the player only.
	FilterEnemyOrigin
)

// String returns the filter name.
func (f HitboxFilter) String() string {
	switch f {
	case FilterPlayerOrigin:
		return "player-origin"
	case FilterEnemyOrigin:
		return "enemy-origin"
	default:
		return "unknown"
	}
}

// Hitbox is a transient damage volume tied to an owner entity.
// Active only within [StartTime, StartTime+Duration) on the world clock.
// Owner is a non-owning back-reference; if the owner is destroyed the
// hitbox is independently destroyed by the hitbox lifecycle system.
type Hitbox struct {
	Owner   EntityID
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64

	StartTime float64 // ms, world clock
	Duration  float64 // ms

	MaxHits int
	Filter  HitboxFilter
	Damage  float64

	// Projectile hitboxes carry their own Velocity and do not follow
	// the owner after spawn.
	Projectile bool
}

// ActiveAt reports whether the hitbox may deal damage at world time now.
func (h Hitbox) ActiveAt(now float64) bool {
	return now >= h.StartTime && now < h.StartTime+h.Duration
}

// ExpiredAt reports whether the hitbox window has fully elapsed.
func (h Hitbox) ExpiredAt(now float64) bool {
	return now >= h.StartTime+h.Duration
}

// TakeDamage is a one-tick damage signal attached by collision resolution
// and consumed by the damage system. An entity carries at most one at a
// time; a second unresolved hit in the same window is dropped.
type TakeDamage struct {
	Amount float64
	Source EntityID
}

// AIMode is the discrete enemy behavior state.
type AIMode int

const (
	AIIdle AIMode = iota
	AIChasing
	AIAttacking
)

// String returns the mode name.
func (m AIMode) String() string {
	switch m {
	case AIIdle:
		return "idle"
	case AIChasing:
		return "chasing"
	case AIAttacking:
		return "attacking"
	default:
		return "unknown"
	}
}

// AIState is the per-enemy FSM register plus pathfinding bookkeeping.
type AIState struct {
	Mode   AIMode
	Target EntityID

	PerceptionRadiusSq float64 // px²
	AttackRadiusSq     float64 // px²

	AttackCooldown float64 // ms until next attack allowed
	AttackInterval float64 // ms between attacks
	MoveSpeed      float64 // px/sec
	AttackDamage   float64

	// Path bookkeeping
	Path           []pathfind.Tile
	PathIndex      int
	LastTargetTile pathfind.Tile
	HasTargetTile  bool
	Calculating    bool
}

// ClearPath drops all held path data, forcing recomputation.
func (a *AIState) ClearPath() {
	a.Path = nil
	a.PathIndex = 0
	a.HasTargetTile = false
}

// PhysicsBody bridges an entity to its externally-simulated rigid body.
// Body is 0 before the physics bridge creates the underlying body.
type PhysicsBody struct {
	Body    uint64 // handle into the physics space, 0 = unset
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64

	// Sensor bodies report overlaps but never collide with the world.
	Sensor  bool
	Enabled bool
}

// AnimID is an interned animation identifier. 0 is "none".
type AnimID int

// Renderable is the visual identity consumed by the render bridge.
type Renderable struct {
	Sprite  string
	Anim    AnimID
	Visible bool
	Depth   float64
	FlipX   bool
}
