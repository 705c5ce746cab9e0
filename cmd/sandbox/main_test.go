package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christianWissmann85/aether-engine/internal/application/replay"
	"github.com/christianWissmann85/aether-engine/internal/application/system"
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
)

func TestEmbeddedConfigsLoad(t *testing.T) {
	loader, watchDir, err := buildLoader("")
	require.NoError(t, err)
	assert.Empty(t, watchDir, "embedded configs cannot be watched")

	tuning, err := loader.LoadTuning()
	require.NoError(t, err)
	assert.Equal(t, 980.0, tuning.Physics.GravityY)
	assert.Equal(t, 60, tuning.World.Framerate)
	assert.Equal(t, 0.150, tuning.Jump.CoyoteTime)

	stage, err := loader.LoadStage("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", stage.ID)
	assert.NotEmpty(t, stage.Bodies)

	kinds := map[string]bool{}
	for _, b := range stage.Bodies {
		kinds[b.Kind] = true
	}
	assert.True(t, kinds["solid"] && kinds["oneway"] && kinds["hazard"],
		"demo stage exercises every body kind")
}

func TestRunHeadlessReplay(t *testing.T) {
	loader, _, err := buildLoader("")
	require.NoError(t, err)
	tuning, err := loader.LoadTuning()
	require.NoError(t, err)
	stage, err := loader.LoadStage("demo")
	require.NoError(t, err)

	// A short hand-built recording: walk right for a second. IDs are
	// assigned in spawn order, so the player follows the stage bodies.
	playerID := entity.EntityID(len(stage.Bodies) + 1)
	rec := replay.NewRecorder(stage.ID)
	dt := tuning.Dt()
	for frame := 0; frame < 60; frame++ {
		rec.Record(system.MovementRequest{
			EntityID:  playerID,
			Type:      system.MoveWalk,
			Direction: entity.Vec2{X: 1},
			Magnitude: 1,
			CreatedAt: float64(frame) * dt,
		})
		rec.EndFrame()
	}

	err = runHeadless(tuning, stage, replay.NewReplayer(rec.Data()), 30)

	assert.NoError(t, err)
}
