package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christianWissmann85/aether-engine/internal/application/event"
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
)

type groundRecorder struct {
	events []event.GroundStateChanged
}

func (g *groundRecorder) OnGroundStateChanged(ev event.GroundStateChanged) {
	g.events = append(g.events, ev)
}

func TestGroundStateTracker_CoyoteTimingProperty(t *testing.T) {
	cfg := createTestTuning()
	// 0.150s at 50fps is 7.5 frames, so the window closes mid-frame
	// and the boundary assertions stay clear of rounding.
	cfg.World.Framerate = 50
	cfg.Jump.CoyoteTime = 0.150
	rig := newTestRig(cfg)
	dt := cfg.Dt()

	const id = entity.EntityID(1)

	// Frame with a ground collision: grounded, coyote fully armed.
	rig.tracker.ReportGroundContact(id, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.Update(rig.world, dt)

	gi, ok := rig.tracker.Info(id)
	require.True(t, ok)
	assert.True(t, gi.IsGrounded)
	assert.Equal(t, cfg.Jump.CoyoteTime, gi.CoyoteTimeRemaining)
	assert.True(t, rig.tracker.CanJump(id))

	// Walk off the ledge: the coyote window counts down and jumping
	// stays possible until it elapses.
	framesInWindow := int(math.Floor(cfg.Jump.CoyoteTime / dt))
	for i := 0; i < framesInWindow; i++ {
		rig.tracker.Update(rig.world, dt)
		gi, ok = rig.tracker.Info(id)
		require.True(t, ok, "entry persists during the window (frame %d)", i)
		assert.False(t, gi.IsGrounded)
		assert.True(t, gi.CanJump(), "coyote window still open (frame %d)", i)
	}

	// One more frame pushes past coyoteTime: airborne, no jump.
	rig.tracker.Update(rig.world, dt)
	assert.False(t, rig.tracker.CanJump(id))
	_, ok = rig.tracker.Info(id)
	assert.False(t, ok, "entry removed once airborne with the window elapsed")
}

func TestGroundStateTracker_CoyoteMonotonicWhileAirborne(t *testing.T) {
	rig := newTestRig(nil)
	dt := rig.cfg.Dt()
	const id = entity.EntityID(1)

	rig.tracker.ReportGroundContact(id, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.Update(rig.world, dt)

	prev := rig.cfg.Jump.CoyoteTime
	for {
		rig.tracker.Update(rig.world, dt)
		gi, ok := rig.tracker.Info(id)
		if !ok {
			break
		}
		assert.LessOrEqual(t, gi.CoyoteTimeRemaining, prev)
		prev = gi.CoyoteTimeRemaining
	}
}

func TestGroundStateTracker_RecontactReArmsCoyote(t *testing.T) {
	rig := newTestRig(nil)
	dt := rig.cfg.Dt()
	const id = entity.EntityID(1)

	rig.tracker.ReportGroundContact(id, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.Update(rig.world, dt)
	rig.tracker.Update(rig.world, dt) // airborne, counting down
	rig.tracker.Update(rig.world, dt)

	gi, _ := rig.tracker.Info(id)
	drained := gi.CoyoteTimeRemaining
	assert.Less(t, drained, rig.cfg.Jump.CoyoteTime)

	rig.tracker.ReportGroundContact(id, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.Update(rig.world, dt)

	gi, _ = rig.tracker.Info(id)
	assert.Equal(t, rig.cfg.Jump.CoyoteTime, gi.CoyoteTimeRemaining, "reset exactly on re-detection")
	assert.True(t, gi.IsGrounded)
	assert.False(t, gi.WasGroundedLastFrame)
}

func TestGroundStateTracker_TransitionsFireEvents(t *testing.T) {
	rig := newTestRig(nil)
	listener := &groundRecorder{}
	rig.bus.SubscribeGround(listener)
	dt := rig.cfg.Dt()
	const id = entity.EntityID(5)

	// Land
	rig.tracker.ReportGroundContact(id, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.Update(rig.world, dt)
	// Stay grounded: no extra event
	rig.tracker.ReportGroundContact(id, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.Update(rig.world, dt)
	// Leave ground
	rig.tracker.Update(rig.world, dt)

	require.Len(t, listener.events, 2)
	assert.True(t, listener.events[0].IsGrounded)
	assert.Equal(t, id, listener.events[0].EntityID)
	assert.Equal(t, entity.Vec2{Y: -1}, listener.events[0].GroundNormal)
	assert.False(t, listener.events[1].IsGrounded)
}

func TestGroundStateTracker_ConsumeJumpClosesWindow(t *testing.T) {
	rig := newTestRig(nil)
	dt := rig.cfg.Dt()
	const id = entity.EntityID(1)

	rig.tracker.ReportGroundContact(id, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.Update(rig.world, dt)
	require.True(t, rig.tracker.CanJump(id))

	rig.tracker.ConsumeJump(id)

	assert.False(t, rig.tracker.CanJump(id), "no double jump off one window")
}

func TestGroundStateTracker_GroundVelocityAndStability(t *testing.T) {
	rig := newTestRig(nil)
	dt := rig.cfg.Dt()
	const id = entity.EntityID(1)

	rig.clock.Advance(dt)
	rig.tracker.ReportGroundContact(id, entity.Vec2{Y: -1}, entity.SurfaceOneWay, entity.Vec2{X: 40})
	rig.tracker.Update(rig.world, dt)

	gi, ok := rig.tracker.Info(id)
	require.True(t, ok)
	assert.Equal(t, entity.Vec2{X: 40}, gi.GroundVelocity)
	assert.Equal(t, entity.SurfaceOneWay, gi.GroundSurface)
	assert.True(t, gi.IsStableGround)
	assert.Equal(t, rig.clock.Now(), gi.LastGroundedTime)
}

func TestGroundStateTracker_ForgetAndReset(t *testing.T) {
	rig := newTestRig(nil)
	dt := rig.cfg.Dt()

	rig.tracker.ReportGroundContact(1, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.ReportGroundContact(2, entity.Vec2{Y: -1}, entity.SurfaceSolid, entity.Vec2{})
	rig.tracker.Update(rig.world, dt)

	rig.tracker.Forget(1)
	_, ok := rig.tracker.Info(1)
	assert.False(t, ok)

	rig.tracker.Reset()
	_, ok = rig.tracker.Info(2)
	assert.False(t, ok)
}
