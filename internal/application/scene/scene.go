// Package scene defines the Scene interface for sandbox screens.
//
// Each screen (live sandbox, replay playback, future inspectors)
// implements Scene; the game shell delegates update and draw to the
// current one and swaps scenes between frames.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the sandbox application.
type Scene interface {
	// Update advances the scene by one fixed timestep. Returning a
	// non-nil next scene requests a transition; returning an error
	// ends the run.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene.
	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current.
	OnEnter()

	// OnExit runs when the scene is left; release resources here.
	OnExit()
}
