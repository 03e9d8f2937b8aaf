package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/xml300/dao-game/internal/ecs"
)

// DeviceFrame is one frame of polled device state. Axes are raw -1/0/1;
// action fields carry "just pressed this frame" semantics, Sprint is held.
type DeviceFrame struct {
	MoveX, MoveY float64
	Sprint       bool

	AttackLight  bool
	AttackHeavy  bool
	Dodge        bool
	Blink        bool
	ToggleFlight bool
	Technique    [ecs.TechniqueSlots]bool
}

// Device polls the input hardware once per frame.
type Device interface {
	Poll() DeviceFrame
}

// InputSystem resolves device state into InputState intent on every
// input-capable entity. All one-shot flags and axes are reset before
// being set from the current frame, so stale intent never survives.
type InputSystem struct {
	dev Device
}

// NewInputSystem creates an input system over the given device.
func NewInputSystem(dev Device) *InputSystem {
	return &InputSystem{dev: dev}
}

// Update writes the current frame's intent onto controlled entities.
func (s *InputSystem) Update(w *ecs.World, dt float64) {
	frame := s.dev.Poll()

	// Normalize diagonals so intent magnitude stays 1.
	if frame.MoveX != 0 && frame.MoveY != 0 {
		mag := math.Hypot(frame.MoveX, frame.MoveY)
		frame.MoveX /= mag
		frame.MoveY /= mag
	}

	for id := range w.PlayerControlled {
		in, ok := w.Input[id]
		if !ok {
			continue
		}

		in.ClearOneShot()
		in.MoveX = frame.MoveX
		in.MoveY = frame.MoveY
		in.Sprint = frame.Sprint
		in.AttackLight = frame.AttackLight
		in.AttackHeavy = frame.AttackHeavy
		in.Dodge = frame.Dodge
		in.Blink = frame.Blink
		in.ToggleFlight = frame.ToggleFlight
		in.Technique = frame.Technique

		w.Input[id] = in
	}
}

// KeyboardDevice polls ebiten's keyboard state.
type KeyboardDevice struct{}

// NewKeyboardDevice creates the default keyboard binding.
func NewKeyboardDevice() *KeyboardDevice {
	return &KeyboardDevice{}
}

// Poll reads the keyboard via ebiten.
func (d *KeyboardDevice) Poll() DeviceFrame {
	var f DeviceFrame

	if ebiten.IsKeyPressed(ebiten.KeyA) {
		f.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		f.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		f.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		f.MoveY += 1
	}
	f.Sprint = ebiten.IsKeyPressed(ebiten.KeyShift)

	f.AttackLight = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	f.AttackHeavy = inpututil.IsKeyJustPressed(ebiten.KeyK)
	f.Dodge = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	f.Blink = inpututil.IsKeyJustPressed(ebiten.KeyL)
	f.ToggleFlight = inpututil.IsKeyJustPressed(ebiten.KeyF)
	f.Technique[0] = inpututil.IsKeyJustPressed(ebiten.Key1)
	f.Technique[1] = inpututil.IsKeyJustPressed(ebiten.Key2)
	f.Technique[2] = inpututil.IsKeyJustPressed(ebiten.Key3)
	f.Technique[3] = inpututil.IsKeyJustPressed(ebiten.Key4)

	return f
}
