// Package scene defines the Scene interface for game screens.
//
// Each screen (playing, future menus) implements Scene and handles its
// own update logic and rendering. Transitions happen by returning the
// next scene from Update.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen.
type Scene interface {
	// Update advances the scene state. dt is the frame delta in
	// milliseconds. Returns the next scene to transition to, or nil to
	// stay on the current scene. A non-nil error terminates the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when this scene becomes current.
	OnEnter()

	// OnExit is called when leaving this scene.
	OnExit()
}
