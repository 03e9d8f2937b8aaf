package system

import (
	"github.com/xml300/dao-game/internal/ecs"
	"github.com/xml300/dao-game/internal/infrastructure/config"
	"github.com/xml300/dao-game/internal/progression"
)

// RegenSystem periodically restores qi and stamina. It runs on an
// internal accumulator: once a full interval has elapsed it applies one
// interval's worth of regeneration and carries the remainder forward,
// so no time is lost to rounding across ticks. Health regeneration is
// deliberately excluded. Changes mirror to the progression store only
// when a value actually moved.
type RegenSystem struct {
	cfg   config.RegenConfig
	store progression.Store
	accum float64 // ms
}

// NewRegenSystem creates a regen system.
func NewRegenSystem(cfg config.RegenConfig, store progression.Store) *RegenSystem {
	return &RegenSystem{cfg: cfg, store: store}
}

// Update accumulates elapsed time and applies regeneration on interval.
func (s *RegenSystem) Update(w *ecs.World, dt float64) {
	s.accum += dt
	if s.accum < s.cfg.Interval {
		return
	}
	s.accum -= s.cfg.Interval
	elapsedSec := s.cfg.Interval / 1000.0

	// Rates derive from the live character sheet, read fresh each time.
	stats := s.store.CoreStats()
	qiRate := float64(stats.Realm)*s.cfg.QiPerRealm + stats.Affinity*s.cfg.QiAffinityScale
	staminaRate := s.cfg.StaminaBase + stats.Resilience*s.cfg.StaminaResilienceScale

	for id := range w.PlayerControlled {
		if qi, ok := w.Qi[id]; ok {
			if qi.Add(qiRate * elapsedSec) {
				w.Qi[id] = qi
				s.store.RestoreQi(qiRate * elapsedSec)
			}
		}
		if st, ok := w.Stamina[id]; ok {
			if st.Add(staminaRate * elapsedSec) {
				w.Stamina[id] = st
				s.store.RestoreStamina(staminaRate * elapsedSec)
			}
		}
	}
}
