// Package ecs holds the entity-component store shared by every system in
// the simulation pipeline. Components are value types kept in per-type
// maps keyed by entity id; systems copy a component out, mutate it, and
// write it back.
package ecs

// EntityID is a unique identifier for an entity (never recycled).
type EntityID uint64

// World holds all component maps and the next entity ID.
type World struct {
	nextID EntityID

	// Clock is the simulation time in milliseconds, advanced once per
	// tick by the pipeline before systems run.
	Clock float64

	// Components
	Position  map[EntityID]Position
	Velocity  map[EntityID]Velocity
	Rotation  map[EntityID]Rotation
	Input     map[EntityID]InputState
	Movement  map[EntityID]MovementState
	Combat    map[EntityID]CombatState
	Cooldown  map[EntityID]Cooldowns
	Health    map[EntityID]Health
	Qi        map[EntityID]QiPool
	Stamina   map[EntityID]StaminaPool
	HitboxOf  map[EntityID]Hitbox
	Damage    map[EntityID]TakeDamage
	AI        map[EntityID]AIState
	Body      map[EntityID]PhysicsBody
	Render    map[EntityID]Renderable

	// Tags
	PlayerControlled map[EntityID]struct{}
	IsEnemy          map[EntityID]struct{}

	// Singleton references
	PlayerID EntityID
}

// NewWorld creates a new empty world.
func NewWorld() *World {
	return &World{
		nextID:           1, // 0 is "nil"
		Position:         make(map[EntityID]Position),
		Velocity:         make(map[EntityID]Velocity),
		Rotation:         make(map[EntityID]Rotation),
		Input:            make(map[EntityID]InputState),
		Movement:         make(map[EntityID]MovementState),
		Combat:           make(map[EntityID]CombatState),
		Cooldown:         make(map[EntityID]Cooldowns),
		Health:           make(map[EntityID]Health),
		Qi:               make(map[EntityID]QiPool),
		Stamina:          make(map[EntityID]StaminaPool),
		HitboxOf:         make(map[EntityID]Hitbox),
		Damage:           make(map[EntityID]TakeDamage),
		AI:               make(map[EntityID]AIState),
		Body:             make(map[EntityID]PhysicsBody),
		Render:           make(map[EntityID]Renderable),
		PlayerControlled: make(map[EntityID]struct{}),
		IsEnemy:          make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID.
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity.
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Position, id)
	delete(w.Velocity, id)
	delete(w.Rotation, id)
	delete(w.Input, id)
	delete(w.Movement, id)
	delete(w.Combat, id)
	delete(w.Cooldown, id)
	delete(w.Health, id)
	delete(w.Qi, id)
	delete(w.Stamina, id)
	delete(w.HitboxOf, id)
	delete(w.Damage, id)
	delete(w.AI, id)
	delete(w.Body, id)
	delete(w.Render, id)
	delete(w.PlayerControlled, id)
	delete(w.IsEnemy, id)
	if w.PlayerID == id {
		w.PlayerID = 0
	}
}

// Exists checks if an entity has a Position component.
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Position[id]
	return ok
}

// PlayerConfig holds configuration for creating the player entity.
type PlayerConfig struct {
	MaxHealth  float64
	MaxQi      float64
	MaxStamina float64
	BodyWidth  float64
	BodyHeight float64
	Sprite     string
}

// CreatePlayer creates the locally controlled player entity.
func (w *World) CreatePlayer(x, y float64, cfg PlayerConfig) EntityID {
	id := w.NewEntity()

	w.Position[id] = Position{X: x, Y: y}
	w.Rotation[id] = Rotation{Degrees: 0}
	w.Input[id] = InputState{}
	w.Movement[id] = MovementState{Idle: true}
	w.Combat[id] = CombatState{CanAttack: true, CanMove: true}
	w.Cooldown[id] = Cooldowns{}
	w.Health[id] = Health{Pool{Current: cfg.MaxHealth, Max: cfg.MaxHealth}}
	w.Qi[id] = QiPool{Pool{Current: cfg.MaxQi, Max: cfg.MaxQi}}
	w.Stamina[id] = StaminaPool{Pool{Current: cfg.MaxStamina, Max: cfg.MaxStamina}}
	w.Body[id] = PhysicsBody{
		Width: cfg.BodyWidth, Height: cfg.BodyHeight,
		OffsetX: -cfg.BodyWidth / 2, OffsetY: -cfg.BodyHeight / 2,
		Enabled: true,
	}
	w.Render[id] = Renderable{Sprite: cfg.Sprite, Visible: true, Depth: 10}
	w.PlayerControlled[id] = struct{}{}

	w.PlayerID = id
	return id
}

// EnemyConfig holds configuration for creating an enemy entity.
type EnemyConfig struct {
	MaxHealth        float64
	MoveSpeed        float64 // px/sec
	PerceptionRadius float64 // px
	AttackRadius     float64 // px
	AttackInterval   float64 // ms
	AttackDamage     float64
	BodyWidth        float64
	BodyHeight       float64
	Sprite           string
}

// CreateEnemy creates an AI-controlled combatant.
func (w *World) CreateEnemy(x, y float64, cfg EnemyConfig) EntityID {
	id := w.NewEntity()

	w.Position[id] = Position{X: x, Y: y}
	w.Rotation[id] = Rotation{Degrees: 180}
	w.Movement[id] = MovementState{Idle: true}
	w.Combat[id] = CombatState{CanAttack: true, CanMove: true}
	w.Health[id] = Health{Pool{Current: cfg.MaxHealth, Max: cfg.MaxHealth}}
	w.AI[id] = AIState{
		Mode:               AIIdle,
		PerceptionRadiusSq: cfg.PerceptionRadius * cfg.PerceptionRadius,
		AttackRadiusSq:     cfg.AttackRadius * cfg.AttackRadius,
		AttackInterval:     cfg.AttackInterval,
		MoveSpeed:          cfg.MoveSpeed,
		AttackDamage:       cfg.AttackDamage,
	}
	w.Body[id] = PhysicsBody{
		Width: cfg.BodyWidth, Height: cfg.BodyHeight,
		OffsetX: -cfg.BodyWidth / 2, OffsetY: -cfg.BodyHeight / 2,
		Enabled: true,
	}
	w.Render[id] = Renderable{Sprite: cfg.Sprite, Visible: true, Depth: 9}
	w.IsEnemy[id] = struct{}{}

	return id
}

// HitboxSpec holds configuration for spawning a hitbox entity. Sprite
// is only consulted for projectiles; melee hitboxes are invisible.
type HitboxSpec struct {
	OffsetX  float64
	OffsetY  float64
	Width    float64
	Height   float64
	Duration float64 // ms
	MaxHits  int
	Filter   HitboxFilter
	Damage   float64
	Sprite   string
}

// SpawnMeleeHitbox creates a hitbox entity that follows its owner.
// The activation window starts at the current world clock.
func (w *World) SpawnMeleeHitbox(owner EntityID, spec HitboxSpec) EntityID {
	id := w.NewEntity()

	pos := w.Position[owner]
	w.Position[id] = Position{X: pos.X + spec.OffsetX, Y: pos.Y + spec.OffsetY}
	w.HitboxOf[id] = Hitbox{
		Owner:     owner,
		OffsetX:   spec.OffsetX,
		OffsetY:   spec.OffsetY,
		Width:     spec.Width,
		Height:    spec.Height,
		StartTime: w.Clock,
		Duration:  spec.Duration,
		MaxHits:   spec.MaxHits,
		Filter:    spec.Filter,
		Damage:    spec.Damage,
	}
	w.Body[id] = PhysicsBody{
		Width: spec.Width, Height: spec.Height,
		OffsetX: -spec.Width / 2, OffsetY: -spec.Height / 2,
		Sensor: true, Enabled: true,
	}

	return id
}

// SpawnProjectile creates a projectile hitbox entity with its own
// velocity. Projectiles do not follow their owner after spawn.
func (w *World) SpawnProjectile(owner EntityID, spec HitboxSpec, vx, vy float64) EntityID {
	id := w.SpawnMeleeHitbox(owner, spec)

	hb := w.HitboxOf[id]
	hb.Projectile = true
	w.HitboxOf[id] = hb
	w.Velocity[id] = Velocity{X: vx, Y: vy}
	if spec.Sprite != "" {
		w.Render[id] = Renderable{Sprite: spec.Sprite, Visible: true, Depth: 8}
	}

	return id
}

// CountEnemies returns the number of active enemies.
func (w *World) CountEnemies() int {
	return len(w.IsEnemy)
}
