package sandbox

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christianWissmann85/aether-engine/internal/application/game"
	"github.com/christianWissmann85/aether-engine/internal/application/replay"
	"github.com/christianWissmann85/aether-engine/internal/application/state"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

// scriptedInput replays a fixed input sequence, then reports idle.
type scriptedInput struct {
	frames []InputState
	i      int
}

func (s *scriptedInput) Read() InputState {
	if s.i >= len(s.frames) {
		return InputState{}
	}
	in := s.frames[s.i]
	s.i++
	return in
}

func holdRight(n int) []InputState {
	frames := make([]InputState, n)
	for i := range frames {
		frames[i].Right = true
	}
	return frames
}

func testStage() *config.StageConfig {
	return &config.StageConfig{
		ID:    "sandbox-test",
		Size:  config.StageSizeConfig{Width: 640, Height: 360},
		Spawn: config.PositionConfig{X: 100, Y: 270},
		Bodies: []config.BodyConfig{
			{Kind: "solid", X: 0, Y: 300, Width: 640, Height: 32},
		},
	}
}

func newTestSandbox(cfg Config) (*Sandbox, *game.Engine) {
	engine := game.NewEngine(config.Default())
	if cfg.Stage == nil {
		cfg.Stage = testStage()
	}
	s := New(engine, cfg)
	s.OnEnter()
	return s, engine
}

func stepSandbox(t *testing.T, s *Sandbox, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		next, err := s.Update(s.engine.Dt())
		require.NoError(t, err)
		require.Nil(t, next)
	}
}

func TestSandbox_WalkInputMovesPlayer(t *testing.T) {
	s, engine := newTestSandbox(Config{Input: &scriptedInput{frames: holdRight(45)}})
	player, ok := engine.World().Get(s.playerID)
	require.True(t, ok)
	startX := player.Position().X

	stepSandbox(t, s, 45)

	assert.Greater(t, player.Position().X, startX+20, "held right walks the player")
}

func TestSandbox_PauseFreezesAndStepAdvancesOneFrame(t *testing.T) {
	frames := []InputState{
		{PausePressed: true}, // frame 0: pause
		{},                   // frozen
		{},                   // frozen
		{StepPressed: true},  // arm single step
		{},                   // executes exactly one engine frame
		{},                   // frozen again
	}
	s, engine := newTestSandbox(Config{Input: &scriptedInput{frames: frames}})

	stepSandbox(t, s, 3)
	frozen := engine.Stats().Frames
	assert.Zero(t, frozen, "no engine frames while paused")
	assert.Equal(t, state.StatePaused, s.simState)

	stepSandbox(t, s, 2)
	assert.Equal(t, uint64(1), engine.Stats().Frames, "step mode advances exactly one frame")
	assert.Equal(t, state.StatePaused, s.simState)

	stepSandbox(t, s, 1)
	assert.Equal(t, uint64(1), engine.Stats().Frames)
}

func TestSandbox_ResetRespawnsAtSpawnPoint(t *testing.T) {
	script := holdRight(30)
	script = append(script, InputState{ResetPressed: true})
	s, engine := newTestSandbox(Config{Input: &scriptedInput{frames: script}})

	stepSandbox(t, s, 30)
	player, _ := engine.World().Get(s.playerID)
	require.Greater(t, player.Position().X, 100.0)

	stepSandbox(t, s, 1)

	player, ok := engine.World().Get(s.playerID)
	require.True(t, ok)
	assert.Equal(t, 100.0, player.Position().X)
	assert.Equal(t, 2, engine.World().Count(), "floor plus player after reset")
}

func TestSandbox_RecordingRoundTripsThroughReplayMode(t *testing.T) {
	recordPath := filepath.Join(t.TempDir(), "session.json")

	// Live session: settle, walk right, jump, coast.
	script := make([]InputState, 0, 90)
	for i := 0; i < 20; i++ {
		script = append(script, InputState{})
	}
	script = append(script, holdRight(40)...)
	script[30].JumpPressed = true
	live, liveEngine := newTestSandbox(Config{
		Input:      &scriptedInput{frames: script},
		RecordPath: recordPath,
	})
	stepSandbox(t, live, 90)
	live.OnExit()

	livePlayer, _ := liveEngine.World().Get(live.playerID)
	livePos := livePlayer.Position()

	data, err := replay.LoadReplay(recordPath)
	require.NoError(t, err)
	require.NotEmpty(t, data.Frames)

	// Replay session: same stage, no live input.
	rep, repEngine := newTestSandbox(Config{
		Input:    &scriptedInput{},
		Playback: replay.NewReplayer(*data),
	})
	require.Equal(t, state.StateReplaying, rep.simState)
	stepSandbox(t, rep, 91) // 90 recorded frames plus one to notice exhaustion

	repPlayer, _ := repEngine.World().Get(rep.playerID)
	assert.Equal(t, livePos, repPlayer.Position(), "replay reproduces the recorded run")
	assert.Equal(t, state.StatePaused, rep.simState, "playback pauses when exhausted")
}
