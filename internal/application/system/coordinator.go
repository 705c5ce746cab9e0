package system

import (
	"log"
	"math"

	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/ecs"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

type dashState struct {
	dashingUntil  float64
	cooldownUntil float64
	savedGravity  float64
}

type appliedKey struct {
	id  entity.EntityID
	typ MovementType
}

// MovementCoordinator is the sole intake for movement commands. It
// validates requests against current physics and ground state and
// converts accepted ones into impulses on the entity's body, which
// the physics stage folds in before integrating the same frame.
//
// It never assigns position or velocity itself; the single-writer
// rule stays with the physics and resolution stages.
type MovementCoordinator struct {
	cfg     *config.Tuning
	world   *ecs.World
	queue   *RequestQueue
	tracker *GroundStateTracker
	clock   *Clock
	stats   *Stats

	dashes  map[entity.EntityID]*dashState
	applied map[appliedKey]struct{} // types already applied this frame
}

// NewMovementCoordinator creates the movement intake stage.
func NewMovementCoordinator(cfg *config.Tuning, world *ecs.World, queue *RequestQueue, tracker *GroundStateTracker, clock *Clock, stats *Stats) *MovementCoordinator {
	return &MovementCoordinator{
		cfg:     cfg,
		world:   world,
		queue:   queue,
		tracker: tracker,
		clock:   clock,
		stats:   stats,
		dashes:  make(map[entity.EntityID]*dashState),
		applied: make(map[appliedKey]struct{}),
	}
}

// Name implements System.
func (c *MovementCoordinator) Name() string { return "movement" }

// Update drains the request queue for this frame. Jump requests
// denied only for lack of ground contact are re-buffered until they
// expire, which is what makes a jump pressed just before landing
// still fire (the queue timeout doubles as the jump buffer window).
func (c *MovementCoordinator) Update(w *ecs.World, dt float64) {
	clear(c.applied)
	c.tickDashes()

	// Snapshot the ready requests first; re-buffered jumps must not
	// be picked up again within the same frame.
	var pending []MovementRequest
	for {
		req, ok := c.queue.Dequeue()
		if !ok {
			break
		}
		pending = append(pending, req)
	}

	for i := range pending {
		resp := c.apply(w, &pending[i], dt)
		if !resp.Success && resp.Reason == ReasonNotGrounded && pending[i].Type == MoveJump {
			if !pending[i].expired(c.clock.Now(), c.queue.timeout) {
				c.queue.requeue(pending[i])
				c.stats.RequestsBuffered++
			}
		}
	}
}

// Submit validates and applies a request immediately, bypassing the
// queue. The response reports what was actually applied, which can
// differ from what was asked.
func (c *MovementCoordinator) Submit(req MovementRequest) MovementResponse {
	return c.apply(c.world, &req, c.cfg.Dt())
}

// NewRequest builds a request stamped with the current simulation
// time.
func (c *MovementCoordinator) NewRequest(id entity.EntityID, typ MovementType, dir entity.Vec2, magnitude float64, priority int) MovementRequest {
	return MovementRequest{
		EntityID:  id,
		Type:      typ,
		Direction: dir.Normalized(),
		Magnitude: magnitude,
		Priority:  priority,
		CreatedAt: c.clock.Now(),
	}
}

func (c *MovementCoordinator) apply(w *ecs.World, req *MovementRequest, dt float64) MovementResponse {
	now := c.clock.Now()

	if !req.structurallyValid() {
		c.stats.RequestsRejected++
		log.Printf("invalid movement request rejected: entity=%d type=%v", req.EntityID, req.Type)
		return rejected(ReasonInvalidRequest)
	}

	if req.expired(now, c.queue.timeout) {
		c.stats.RequestsExpired++
		return rejected(ReasonExpired)
	}

	e, ok := w.Get(req.EntityID)
	if !ok || e.Body == nil || e.Body.Static {
		c.stats.RequestsRejected++
		c.stats.SkippedEntities++
		return rejected(ReasonMissingBody)
	}

	// Redundant same-type requests within one frame coalesce into the
	// first; merged requests never stack velocity.
	key := appliedKey{req.EntityID, req.Type}
	if _, dup := c.applied[key]; dup {
		c.stats.RequestsCoalesced++
		return rejected(ReasonCoalesced)
	}

	var delta entity.Vec2
	switch req.Type {
	case MoveWalk:
		delta = c.applyWalk(e, req, dt)
	case MoveJump:
		if !c.tracker.CanJump(req.EntityID) {
			c.stats.RequestsRejected++
			return rejected(ReasonNotGrounded)
		}
		delta = c.applyJump(e, req)
	case MoveDash:
		if ds, exists := c.dashes[req.EntityID]; exists && now < ds.cooldownUntil {
			c.stats.RequestsRejected++
			return rejected(ReasonDashCooldown)
		}
		delta = c.applyDash(e, req, now)
	case MoveStop:
		delta = c.applyStop(e, req, dt)
	case MoveImpulse:
		delta = req.Direction.Scale(req.Magnitude)
	}

	e.Body.ApplyImpulse(delta)
	c.applied[key] = struct{}{}
	c.stats.RequestsAccepted++
	return accepted(delta)
}

// applyWalk steers horizontal velocity toward the requested target
// speed, with reduced authority in the air.
func (c *MovementCoordinator) applyWalk(e *entity.Entity, req *MovementRequest, dt float64) entity.Vec2 {
	mag := math.Min(req.Magnitude, 1.0)
	target := req.Direction.X * c.cfg.Movement.WalkSpeed * mag

	gi, _ := c.tracker.Info(e.ID)
	if !gi.IsGrounded {
		target *= c.cfg.Movement.AirControl
	}

	vx := e.Body.Velocity().X
	accel := c.cfg.Movement.Acceleration
	if target == 0 || (vx != 0 && math.Signbit(vx) != math.Signbit(target)) {
		accel = c.cfg.Movement.Deceleration
	}

	step := accel * dt
	diff := target - vx
	if math.Abs(diff) <= step {
		return entity.Vec2{X: diff}
	}
	if diff > 0 {
		return entity.Vec2{X: step}
	}
	return entity.Vec2{X: -step}
}

// applyJump sets vertical velocity to exactly one jump's magnitude
// regardless of how many requests merged into it, then spends the
// coyote window.
func (c *MovementCoordinator) applyJump(e *entity.Entity, req *MovementRequest) entity.Vec2 {
	mag := math.Min(math.Max(req.Magnitude, 0), 1.0)
	if mag == 0 {
		mag = 1.0
	}
	speed := c.cfg.Jump.Speed * mag
	c.tracker.ConsumeJump(e.ID)
	return entity.Vec2{Y: -speed - e.Body.Velocity().Y}
}

// applyDash bursts horizontal velocity and suspends gravity for the
// dash duration. Dash state and cooldown live here, not on the body.
func (c *MovementCoordinator) applyDash(e *entity.Entity, req *MovementRequest, now float64) entity.Vec2 {
	dir := 1.0
	if req.Direction.X < 0 {
		dir = -1.0
	}

	ds := c.dashes[e.ID]
	if ds == nil {
		ds = &dashState{savedGravity: e.Body.GravityScale}
		c.dashes[e.ID] = ds
	} else if now >= ds.dashingUntil {
		ds.savedGravity = e.Body.GravityScale
	}
	ds.dashingUntil = now + c.cfg.Dash.Duration
	ds.cooldownUntil = now + c.cfg.Dash.Cooldown
	e.Body.GravityScale = 0

	vel := e.Body.Velocity()
	return entity.Vec2{
		X: dir*c.cfg.Dash.Speed - vel.X,
		Y: -vel.Y,
	}
}

// applyStop cuts an ascending jump short when aimed upward, and
// otherwise decelerates horizontal movement.
func (c *MovementCoordinator) applyStop(e *entity.Entity, req *MovementRequest, dt float64) entity.Vec2 {
	vel := e.Body.Velocity()

	if req.Direction.Y < 0 && vel.Y < 0 {
		return entity.Vec2{Y: vel.Y * (c.cfg.Jump.CutMultiplier - 1)}
	}

	step := c.cfg.Movement.Deceleration * dt
	if math.Abs(vel.X) <= step {
		return entity.Vec2{X: -vel.X}
	}
	if vel.X > 0 {
		return entity.Vec2{X: -step}
	}
	return entity.Vec2{X: step}
}

// DashReady reports whether the entity could dash right now.
func (c *MovementCoordinator) DashReady(id entity.EntityID) bool {
	ds, exists := c.dashes[id]
	return !exists || c.clock.Now() >= ds.cooldownUntil
}

// tickDashes ends expired dashes and restores gravity.
func (c *MovementCoordinator) tickDashes() {
	now := c.clock.Now()
	for id, ds := range c.dashes {
		if ds.dashingUntil > 0 && now >= ds.dashingUntil {
			if e, ok := c.world.Get(id); ok && e.Body != nil {
				e.Body.GravityScale = ds.savedGravity
			}
			ds.dashingUntil = 0
		}
		if ds.dashingUntil == 0 && now >= ds.cooldownUntil {
			delete(c.dashes, id)
		}
	}
}

// ClearEntity drops all coordinator state for an entity, restoring
// anything the dash borrowed.
func (c *MovementCoordinator) ClearEntity(id entity.EntityID) {
	if ds, exists := c.dashes[id]; exists {
		if ds.dashingUntil > 0 {
			if e, ok := c.world.Get(id); ok && e.Body != nil {
				e.Body.GravityScale = ds.savedGravity
			}
		}
		delete(c.dashes, id)
	}
	c.queue.Flush(id)
}
