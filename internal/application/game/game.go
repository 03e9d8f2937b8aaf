// Package game provides the main loop manager that drives Scene
// transitions under ebiten.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/xml300/dao-game/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dtMs    float64
}

// New creates a Game with the given initial scene. The scene's OnEnter
// is called immediately. framerate sets the fixed simulation step.
func New(initial scene.Scene, screenW, screenH, framerate int) *Game {
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dtMs:    1000.0 / float64(framerate),
	}
	g.current.OnEnter()
	return g
}

// Update advances the current scene and handles transitions.
// Implements ebiten.Game.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dtMs)
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene. Implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen dimensions. Implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT overrides the fixed step, in milliseconds. Useful for tests.
func (g *Game) SetDT(dtMs float64) {
	g.dtMs = dtMs
}
