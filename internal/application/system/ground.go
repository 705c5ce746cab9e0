package system

import (
	"github.com/christianWissmann85/aether-engine/internal/application/event"
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/ecs"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

type groundContact struct {
	normal  entity.Vec2
	surface entity.SurfaceType
	refVel  entity.Vec2
}

// GroundStateTracker maintains per-entity grounded state and the
// coyote window, derived strictly from the resolver's contact
// reports. It is the only writer of GroundInfo; the physics stage and
// the movement coordinator read it.
//
// Three logical states exist: Grounded, CoyoteWindow and Airborne.
// Only IsGrounded and CoyoteTimeRemaining are stored; CoyoteWindow is
// IsGrounded == false with time remaining.
type GroundStateTracker struct {
	cfg   *config.Tuning
	clock *Clock
	bus   *event.Bus

	info     map[entity.EntityID]*entity.GroundInfo
	contacts map[entity.EntityID]groundContact
}

// NewGroundStateTracker creates the tracking stage.
func NewGroundStateTracker(cfg *config.Tuning, clock *Clock, bus *event.Bus) *GroundStateTracker {
	return &GroundStateTracker{
		cfg:      cfg,
		clock:    clock,
		bus:      bus,
		info:     make(map[entity.EntityID]*entity.GroundInfo),
		contacts: make(map[entity.EntityID]groundContact),
	}
}

// Name implements System.
func (t *GroundStateTracker) Name() string { return "ground" }

// ReportGroundContact records a ground collision for this frame.
// Called by the collision resolver only.
func (t *GroundStateTracker) ReportGroundContact(id entity.EntityID, normal entity.Vec2, surface entity.SurfaceType, refVel entity.Vec2) {
	t.contacts[id] = groundContact{normal: normal, surface: surface, refVel: refVel}
}

// Update folds this frame's contact reports into per-entity state.
// Runs after resolution, so the flags it writes are read by the
// coordinator on the next frame's validation.
func (t *GroundStateTracker) Update(w *ecs.World, dt float64) {
	now := t.clock.Now()

	for id, contact := range t.contacts {
		gi := t.info[id]
		if gi == nil {
			gi = &entity.GroundInfo{}
			t.info[id] = gi
		}
		wasGrounded := gi.IsGrounded

		gi.WasGroundedLastFrame = wasGrounded
		gi.IsGrounded = true
		gi.GroundNormal = contact.normal
		gi.GroundSurface = contact.surface
		gi.GroundVelocity = contact.refVel
		gi.LastGroundedTime = now
		// The coyote window is re-armed exactly when ground contact
		// is (re)detected.
		gi.CoyoteTimeRemaining = t.cfg.Jump.CoyoteTime
		gi.IsStableGround = contact.normal.Y <= -t.cfg.Collision.GroundNormal

		if !wasGrounded {
			t.bus.PublishGround(event.GroundStateChanged{
				EntityID:     id,
				IsGrounded:   true,
				GroundNormal: contact.normal,
			})
		}
	}

	for id, gi := range t.info {
		if _, contacted := t.contacts[id]; contacted {
			continue
		}
		wasGrounded := gi.IsGrounded
		gi.WasGroundedLastFrame = wasGrounded

		if wasGrounded {
			gi.IsGrounded = false
			t.bus.PublishGround(event.GroundStateChanged{
				EntityID:     id,
				IsGrounded:   false,
				GroundNormal: gi.GroundNormal,
			})
		}

		// Non-increasing while airborne.
		gi.CoyoteTimeRemaining -= dt
		if gi.CoyoteTimeRemaining < 0 {
			gi.CoyoteTimeRemaining = 0
		}

		if gi.Expired() {
			delete(t.info, id)
		}
	}

	clear(t.contacts)
}

// Info returns a copy of the entity's ground state. Entities with no
// entry are fully airborne.
func (t *GroundStateTracker) Info(id entity.EntityID) (entity.GroundInfo, bool) {
	if gi, ok := t.info[id]; ok {
		return *gi, true
	}
	return entity.GroundInfo{}, false
}

// CanJump reports whether the entity is grounded or inside its coyote
// window.
func (t *GroundStateTracker) CanJump(id entity.EntityID) bool {
	gi, ok := t.info[id]
	return ok && gi.CanJump()
}

// ConsumeJump spends the entity's ground state on a jump: the coyote
// window closes and the entity is airborne immediately, so a second
// jump cannot ride the same window.
func (t *GroundStateTracker) ConsumeJump(id entity.EntityID) {
	gi, ok := t.info[id]
	if !ok {
		return
	}
	if gi.IsGrounded {
		t.bus.PublishGround(event.GroundStateChanged{
			EntityID:     id,
			IsGrounded:   false,
			GroundNormal: gi.GroundNormal,
		})
	}
	delete(t.info, id)
}

// Forget drops all ground state for an entity.
func (t *GroundStateTracker) Forget(id entity.EntityID) {
	delete(t.info, id)
	delete(t.contacts, id)
}

// Reset drops all ground state.
func (t *GroundStateTracker) Reset() {
	clear(t.info)
	clear(t.contacts)
}
