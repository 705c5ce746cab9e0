package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/christianWissmann85/aether-engine/internal/application/scene"
)

// Game implements ebiten.Game and hands each tick to the current
// scene. Scene transitions happen between frames, never mid-update.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates the ebiten shell around an initial scene. The scene's
// OnEnter runs immediately.
func New(initial scene.Scene, screenW, screenH int, dt float64) *Game {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dt:      dt,
	}
	g.current.OnEnter()
	return g
}

// Update implements ebiten.Game. A scene returning a non-nil next
// scene triggers the exit/enter handoff; a scene returning an error
// ends the run.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
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

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
