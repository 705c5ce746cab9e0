package sandbox

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is one frame of sandbox input.
type InputState struct {
	Left  bool
	Right bool

	JumpPressed  bool
	JumpReleased bool
	DashPressed  bool

	PausePressed bool
	StepPressed  bool
	ResetPressed bool
	SavePressed  bool
}

// InputReader supplies per-frame input. The keyboard reader is the
// live implementation; tests inject scripted readers.
type InputReader interface {
	Read() InputState
}

// Keyboard reads sandbox input from ebiten's keyboard state.
type Keyboard struct{}

// Read implements InputReader.
func (Keyboard) Read() InputState {
	return InputState{
		Left:         ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:        ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		JumpPressed:  inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeyW) || inpututil.IsKeyJustReleased(ebiten.KeySpace),
		DashPressed:  inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight),
		PausePressed: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		StepPressed:  inpututil.IsKeyJustPressed(ebiten.KeyN),
		ResetPressed: inpututil.IsKeyJustPressed(ebiten.KeyR),
		SavePressed:  inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
}
