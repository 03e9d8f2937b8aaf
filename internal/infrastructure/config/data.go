package config

// CombatConfig is the root of combat.yaml. Every damage constant,
// timing window, and resource cost lives here rather than in code.
type CombatConfig struct {
	LightAttack AttackConfig   `yaml:"lightAttack"`
	HeavyAttack AttackConfig   `yaml:"heavyAttack"`
	Dodge       DodgeConfig    `yaml:"dodge"`
	Parry       ParryConfig    `yaml:"parry"`
	Stagger     StaggerConfig  `yaml:"stagger"`
	Crit        CritConfig     `yaml:"crit"`
	Bonuses     BonusConfig    `yaml:"bonuses"`
	Movement    MoveConfig     `yaml:"movement"`
	Flight      FlightConfig   `yaml:"flight"`
	Blink       BlinkConfig    `yaml:"blink"`
	Regen       RegenConfig    `yaml:"regen"`
	KillReward  float64        `yaml:"killReward"`
}

// AttackConfig describes a basic attack and its hitbox.
type AttackConfig struct {
	Damage      float64 `yaml:"damage"`
	StaminaCost float64 `yaml:"staminaCost,omitempty"`
	Duration    float64 `yaml:"durationMs"`
	Cooldown    float64 `yaml:"cooldownMs"`
	OffsetX     float64 `yaml:"offsetX"`
	OffsetY     float64 `yaml:"offsetY"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	MaxHits     int     `yaml:"maxHits"`
}

// DodgeConfig describes the dodge burst.
type DodgeConfig struct {
	StaminaCost float64 `yaml:"staminaCost"`
	Duration    float64 `yaml:"durationMs"`
	Cooldown    float64 `yaml:"cooldownMs"`
	Speed       float64 `yaml:"speed"`
	Iframes     float64 `yaml:"iframesMs"`
}

// ParryConfig describes the parry window.
type ParryConfig struct {
	Duration float64 `yaml:"durationMs"`
}

// StaggerConfig sets the interrupt threshold and duration.
type StaggerConfig struct {
	Threshold float64 `yaml:"thresholdDamage"`
	Duration  float64 `yaml:"durationMs"`
}

// CritConfig is the independent critical-hit roll.
type CritConfig struct {
	Chance     float64 `yaml:"chance"`
	Multiplier float64 `yaml:"multiplier"`
}

// BonusConfig scales attacker-side stat amplification.
type BonusConfig struct {
	AffinityScale float64 `yaml:"affinityScale"`
	MasteryScale  float64 `yaml:"masteryScale"`
}

// MoveConfig tunes grounded movement.
type MoveConfig struct {
	WalkSpeed           float64 `yaml:"walkSpeed"` // px/sec
	SprintMultiplier    float64 `yaml:"sprintMultiplier"`
	SprintStaminaPerSec float64 `yaml:"sprintStaminaPerSec"`
}

// FlightConfig tunes the flight ability.
type FlightConfig struct {
	RealmRequired int     `yaml:"realmRequired"`
	QiDrainPerSec float64 `yaml:"qiDrainPerSec"`
	Speed         float64 `yaml:"speed"`
}

// BlinkConfig tunes the instant-reposition ability.
type BlinkConfig struct {
	QiCost   float64 `yaml:"qiCost"`
	Cooldown float64 `yaml:"cooldownMs"`
	Distance float64 `yaml:"distancePx"`
}

// RegenConfig tunes the periodic resource restoration.
type RegenConfig struct {
	Interval               float64 `yaml:"intervalMs"`
	QiPerRealm             float64 `yaml:"qiPerRealm"`
	QiAffinityScale        float64 `yaml:"qiAffinityScale"`
	StaminaBase            float64 `yaml:"staminaBase"`
	StaminaResilienceScale float64 `yaml:"staminaResilienceScale"`
}

// EntitiesConfig is the root of entities.yaml.
type EntitiesConfig struct {
	Player  PlayerConfig           `yaml:"player"`
	Enemies map[string]EnemyConfig `yaml:"enemies"`
}

// PlayerConfig describes the player entity and starting sheet.
type PlayerConfig struct {
	Sprite string       `yaml:"sprite"`
	Body   BodyConfig   `yaml:"body"`
	Stats  StatsConfig  `yaml:"stats"`
	Slots  [4]string    `yaml:"techniqueSlots"`
}

// StatsConfig seeds the progression store.
type StatsConfig struct {
	Realm      int     `yaml:"realm"`
	Affinity   float64 `yaml:"affinity"`
	Resilience float64 `yaml:"resilience"`
	Mastery    float64 `yaml:"mastery"`
	MaxHealth  float64 `yaml:"maxHealth"`
	MaxQi      float64 `yaml:"maxQi"`
	MaxStamina float64 `yaml:"maxStamina"`
}

// BodyConfig sizes a physics body.
type BodyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// EnemyConfig describes an enemy archetype, keyed by name.
type EnemyConfig struct {
	Sprite           string     `yaml:"sprite"`
	Body             BodyConfig `yaml:"body"`
	MaxHealth        float64    `yaml:"maxHealth"`
	MoveSpeed        float64    `yaml:"moveSpeed"`
	PerceptionRadius float64    `yaml:"perceptionRadius"`
	AttackRadius     float64    `yaml:"attackRadius"`
	AttackInterval   float64    `yaml:"attackIntervalMs"`
	Damage           float64    `yaml:"damage"`
}

// TechniqueConfig is one entry of techniques.yaml.
type TechniqueConfig struct {
	Name     string  `yaml:"name"`
	QiCost   float64 `yaml:"qiCost"`
	Cooldown float64 `yaml:"cooldownMs"`
	Effect   string  `yaml:"effect"` // melee | projectile
	Damage   float64 `yaml:"damage"`
	Speed    float64 `yaml:"speed,omitempty"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Duration float64 `yaml:"durationMs"`
	CastTime float64 `yaml:"castTimeMs"`
}

// TechniquesConfig is the root of techniques.yaml.
type TechniquesConfig struct {
	Techniques map[string]TechniqueConfig `yaml:"techniques"`
}

// StageConfig is the root of a stage YAML file. Rows use '#' for solid
// tiles and '.' for walkable ground.
type StageConfig struct {
	Name     string       `yaml:"name"`
	TileSize int          `yaml:"tileSize"`
	Rows     []string     `yaml:"rows"`
	Spawn    TilePoint    `yaml:"spawn"`
	Enemies  []EnemySpawn `yaml:"enemies"`
}

// TilePoint is a tile coordinate in stage files.
type TilePoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// EnemySpawn places one enemy archetype on the stage.
type EnemySpawn struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Width returns the stage width in tiles.
func (s *StageConfig) Width() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// Height returns the stage height in tiles.
func (s *StageConfig) Height() int { return len(s.Rows) }

// Solid reports whether the tile at (x, y) is a wall. Out-of-bounds
// tiles are solid.
func (s *StageConfig) Solid(x, y int) bool {
	if y < 0 || y >= len(s.Rows) {
		return true
	}
	row := s.Rows[y]
	if x < 0 || x >= len(row) {
		return true
	}
	return row[x] == '#'
}
