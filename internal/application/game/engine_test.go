package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christianWissmann85/aether-engine/internal/application/system"
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

func testStage() *config.StageConfig {
	return &config.StageConfig{
		ID:    "rig",
		Name:  "Test Rig",
		Size:  config.StageSizeConfig{Width: 400, Height: 400},
		Spawn: config.PositionConfig{X: 100, Y: 270},
		Bodies: []config.BodyConfig{
			{Kind: "solid", X: 0, Y: 300, Width: 400, Height: 32},
		},
	}
}

// spawnOnFloor loads the test stage, drops a player at the spawn
// point and settles it onto the floor.
func spawnOnFloor(t *testing.T, e *Engine) *entity.Entity {
	t.Helper()
	spawn, err := e.LoadStage(testStage())
	require.NoError(t, err)

	player := e.World().SpawnDynamic(entity.LayerPlayer, spawn, entity.Vec2{X: 16, Y: 24}, 1)
	e.StepN(60)
	require.True(t, e.Tracker().CanJump(player.ID), "player should have settled onto the floor")
	return player
}

func TestNewEngine_NilTuningGetsDefaults(t *testing.T) {
	e := NewEngine(nil)

	assert.NotNil(t, e.Config())
	assert.InDelta(t, 1.0/60, e.Dt(), 1e-12)
	assert.Zero(t, e.World().Count())
	assert.Zero(t, e.Now())
}

func TestEngine_LoadStageSpawnsGeometry(t *testing.T) {
	e := NewEngine(nil)

	spawn, err := e.LoadStage(testStage())

	require.NoError(t, err)
	assert.Equal(t, entity.Vec2{X: 100, Y: 270}, spawn)
	assert.Equal(t, 1, e.World().Count())
}

func TestEngine_LoadStageRejectsUnknownKind(t *testing.T) {
	e := NewEngine(nil)
	stage := testStage()
	stage.Bodies = append(stage.Bodies, config.BodyConfig{Kind: "lava", X: 0, Y: 0, Width: 10, Height: 10})

	_, err := e.LoadStage(stage)

	assert.Error(t, err)
}

func TestEngine_RequestAffectsSameFrame(t *testing.T) {
	e := NewEngine(nil)
	player := spawnOnFloor(t, e)
	startX := player.Position().X

	ok, reason := e.Enqueue(e.NewRequest(player.ID, system.MoveWalk, entity.Vec2{X: 1}, 1, 0))
	require.True(t, ok, "enqueue refused: %s", reason)
	e.Step()

	assert.Greater(t, player.Position().X, startX,
		"a request queued before the frame moves the entity within that frame")
}

func TestEngine_FullJumpArc(t *testing.T) {
	e := NewEngine(nil)
	player := spawnOnFloor(t, e)
	restY := player.Position().Y

	ok, _ := e.Enqueue(e.NewRequest(player.ID, system.MoveJump, entity.Vec2{Y: -1}, 1, 0))
	require.True(t, ok)
	e.Step()

	require.Negative(t, player.Body.Velocity().Y, "moving up right after the jump frame")
	assert.False(t, e.Tracker().CanJump(player.ID), "jump spends the ground window")

	// Track the apex over a full arc, then confirm the landing.
	apexY := restY
	for i := 0; i < 120; i++ {
		e.Step()
		if y := player.Position().Y; y < apexY {
			apexY = y
		}
	}

	assert.Less(t, apexY, restY-50, "jump reaches meaningful height")
	assert.InDelta(t, restY, player.Position().Y, 0.1, "lands back at rest height")
	assert.True(t, e.Tracker().CanJump(player.ID), "grounded again after landing")
	assert.Zero(t, player.Body.Velocity().Y)
}

func TestEngine_WalkStaysBounded(t *testing.T) {
	e := NewEngine(nil)
	player := spawnOnFloor(t, e)
	startX := player.Position().X

	for i := 0; i < 90; i++ {
		ok, _ := e.Enqueue(e.NewRequest(player.ID, system.MoveWalk, entity.Vec2{X: 1}, 1, 0))
		require.True(t, ok)
		e.Step()
		assert.LessOrEqual(t, player.Body.Velocity().X, e.Config().Movement.WalkSpeed+1e-9,
			"steering never exceeds the walk target")
	}

	assert.Greater(t, player.Position().X, startX+50, "sustained walking covers ground")
}

func TestEngine_ApplyTuningTakesEffectNextStep(t *testing.T) {
	e := NewEngine(nil)
	player := e.World().SpawnDynamic(entity.LayerPlayer, entity.Vec2{X: 100, Y: 100}, entity.Vec2{X: 16, Y: 24}, 1)

	weightless := config.Default()
	weightless.Physics.GravityY = 0
	e.ApplyTuning(weightless)
	e.StepN(10)

	assert.Zero(t, player.Body.Velocity().Y, "zero gravity applies without rebuilding the engine")
}

func TestEngine_DestroyEntityDropsAllState(t *testing.T) {
	e := NewEngine(nil)
	player := spawnOnFloor(t, e)
	ok, _ := e.Enqueue(e.NewRequest(player.ID, system.MoveWalk, entity.Vec2{X: 1}, 1, 0))
	require.True(t, ok)

	e.DestroyEntity(player.ID)

	assert.False(t, e.World().Exists(player.ID))
	assert.False(t, e.Tracker().CanJump(player.ID))
	e.Step() // queued request for the dead entity must not blow up
	assert.Equal(t, 1, e.World().Count(), "the floor remains")
}

func TestEngine_ResetReturnsToEmptyWorld(t *testing.T) {
	e := NewEngine(nil)
	spawnOnFloor(t, e)
	require.NotZero(t, e.Stats().Frames)

	e.Reset()

	assert.Zero(t, e.World().Count())
	assert.Zero(t, e.Now())
	assert.Zero(t, e.Stats().Frames)
}

func TestEngine_StatsCountPipelineWork(t *testing.T) {
	e := NewEngine(nil)
	player := spawnOnFloor(t, e)

	ok, _ := e.Enqueue(e.NewRequest(player.ID, system.MoveWalk, entity.Vec2{X: 1}, 1, 0))
	require.True(t, ok)
	e.Step()

	stats := e.Stats()
	assert.NotZero(t, stats.RequestsSubmitted)
	assert.NotZero(t, stats.RequestsAccepted)
	assert.NotZero(t, stats.CollisionsDetected, "resting contact is re-detected every frame")
	assert.NotZero(t, stats.Frames)
}
