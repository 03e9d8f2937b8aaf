// Package progression defines the read/write contract with the external
// character-advancement store. The simulation never owns this state: it
// reads it fresh at the point of use and writes through explicit calls.
package progression

// CoreStats is a snapshot of the persistent character sheet.
type CoreStats struct {
	Realm      int     // progression tier; gates flight and scales regen
	Affinity   float64 // attack amplification and qi regen modifier
	Resilience float64 // flat percentage damage mitigation, 0..1
	Mastery    float64 // weapon damage amplification

	Health     float64
	MaxHealth  float64
	Qi         float64
	MaxQi      float64
	Stamina    float64
	MaxStamina float64
}

// EffectKind is the mechanical shape of a technique.
type EffectKind string

const (
	EffectMelee      EffectKind = "melee"
	EffectProjectile EffectKind = "projectile"
)

// Technique is a registry entry keyed by technique identifier.
type Technique struct {
	ID       string
	Name     string
	QiCost   float64
	Cooldown float64 // ms
	Effect   EffectKind
	Damage   float64
	Speed    float64 // px/sec, projectiles only
	Width    float64
	Height   float64
	Duration float64 // ms the hitbox stays active
	CastTime float64 // ms the caster is locked
}

// Store is the narrow contract the combat core holds on the external
// progression state.
type Store interface {
	CoreStats() CoreStats
	SetCoreStats(CoreStats)

	// TakeDamage mirrors raw damage dealt to the player.
	TakeDamage(amount float64)
	ConsumeQi(amount float64) bool
	ConsumeStamina(amount float64) bool
	RestoreQi(amount float64)
	RestoreStamina(amount float64)

	// AddRealmProgress grants advancement points (kill rewards).
	AddRealmProgress(points float64)

	// EquippedTechniques returns the technique ids bound to the four
	// slots; empty string means the slot is unbound.
	EquippedTechniques() [4]string
	TechniqueByID(id string) (Technique, bool)
}

// MemoryStore is the default in-process Store implementation.
type MemoryStore struct {
	stats      CoreStats
	progress   float64
	slots      [4]string
	techniques map[string]Technique
}

// NewMemoryStore creates a store seeded with the given stats.
func NewMemoryStore(stats CoreStats) *MemoryStore {
	return &MemoryStore{
		stats:      stats,
		techniques: make(map[string]Technique),
	}
}

// RegisterTechnique adds a technique to the registry.
func (m *MemoryStore) RegisterTechnique(t Technique) {
	m.techniques[t.ID] = t
}

// Equip binds a technique id to a slot. Out-of-range slots are ignored.
func (m *MemoryStore) Equip(slot int, id string) {
	if slot < 0 || slot >= len(m.slots) {
		return
	}
	m.slots[slot] = id
}

// CoreStats returns a copy of the current character sheet.
func (m *MemoryStore) CoreStats() CoreStats { return m.stats }

// SetCoreStats replaces the character sheet.
func (m *MemoryStore) SetCoreStats(s CoreStats) { m.stats = s }

// TakeDamage mirrors damage into persistent health, clamped at zero.
func (m *MemoryStore) TakeDamage(amount float64) {
	m.stats.Health -= amount
	if m.stats.Health < 0 {
		m.stats.Health = 0
	}
}

// ConsumeQi spends qi, refusing if the pool is short.
func (m *MemoryStore) ConsumeQi(amount float64) bool {
	if m.stats.Qi < amount {
		return false
	}
	m.stats.Qi -= amount
	return true
}

// ConsumeStamina spends stamina, refusing if the pool is short.
func (m *MemoryStore) ConsumeStamina(amount float64) bool {
	if m.stats.Stamina < amount {
		return false
	}
	m.stats.Stamina -= amount
	return true
}

// RestoreQi refills qi up to the maximum.
func (m *MemoryStore) RestoreQi(amount float64) {
	m.stats.Qi += amount
	if m.stats.Qi > m.stats.MaxQi {
		m.stats.Qi = m.stats.MaxQi
	}
}

// RestoreStamina refills stamina up to the maximum.
func (m *MemoryStore) RestoreStamina(amount float64) {
	m.stats.Stamina += amount
	if m.stats.Stamina > m.stats.MaxStamina {
		m.stats.Stamina = m.stats.MaxStamina
	}
}

// AddRealmProgress accumulates advancement points.
func (m *MemoryStore) AddRealmProgress(points float64) {
	m.progress += points
}

// RealmProgress returns accumulated advancement points.
func (m *MemoryStore) RealmProgress() float64 { return m.progress }

// EquippedTechniques returns the four bound slot ids.
func (m *MemoryStore) EquippedTechniques() [4]string { return m.slots }

// TechniqueByID looks up a registry entry.
func (m *MemoryStore) TechniqueByID(id string) (Technique, bool) {
	t, ok := m.techniques[id]
	return t, ok
}
