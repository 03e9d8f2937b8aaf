package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xml300/dao-game/internal/ecs"
)

type recordingSystem struct {
	tag string
	log *[]string
}

func (r recordingSystem) Update(w *ecs.World, dt float64) {
	*r.log = append(*r.log, r.tag)
}

func TestPipelineRunsInRegistrationOrder(t *testing.T) {
	var log []string
	p := NewPipeline().
		Add(recordingSystem{"input", &log}).
		Add(recordingSystem{"combat", &log}).
		Add(recordingSystem{"damage", &log})
	p.AddPump(func() { log = append(log, "pump") })

	w := ecs.NewWorld()
	p.Tick(w, 16)
	p.Tick(w, 16)

	assert.Equal(t, []string{
		"input", "combat", "damage", "pump",
		"input", "combat", "damage", "pump",
	}, log)
}

func TestPipelineAdvancesClockBeforeSystems(t *testing.T) {
	var seen []float64
	w := ecs.NewWorld()
	p := NewPipeline()
	p.Add(systemFunc(func(w *ecs.World, dt float64) {
		seen = append(seen, w.Clock)
	}))

	p.Tick(w, 16)
	p.Tick(w, 16)

	assert.Equal(t, []float64{16, 32}, seen)
	assert.Equal(t, 32.0, w.Clock)
}

type systemFunc func(w *ecs.World, dt float64)

func (f systemFunc) Update(w *ecs.World, dt float64) { f(w, dt) }

func TestPipelineEmptyTickStillAdvancesClock(t *testing.T) {
	w := ecs.NewWorld()
	p := NewPipeline()
	p.Tick(w, 8)
	assert.Equal(t, 8.0, w.Clock)
}
