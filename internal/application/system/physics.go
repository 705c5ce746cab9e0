package system

import (
	"math"

	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/ecs"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

// jumpOffThreshold is the upward velocity (px/s) past which a grounded
// body is considered to be leaving the ground.
const jumpOffThreshold = 1.0

// PhysicsEngine integrates forces, velocity and position for every
// active non-static body. It is the first of the two allowed writers
// of position and velocity; the collision resolver is the second.
// This stage never raises errors: out-of-range values are clamped,
// not rejected.
type PhysicsEngine struct {
	cfg   *config.Tuning
	stats *Stats
}

// NewPhysicsEngine creates the integration stage.
func NewPhysicsEngine(cfg *config.Tuning, stats *Stats) *PhysicsEngine {
	return &PhysicsEngine{cfg: cfg, stats: stats}
}

// Name implements System.
func (p *PhysicsEngine) Name() string { return "physics" }

// Update integrates one fixed timestep for every dynamic body.
func (p *PhysicsEngine) Update(w *ecs.World, dt float64) {
	w.ForEachDynamic(func(e *entity.Entity) {
		p.step(e.Body, dt)
	})
}

func (p *PhysicsEngine) step(b *entity.Body, dt float64) {
	vel := b.Velocity().Add(b.ConsumeImpulse())

	// A grounded body moving meaningfully upward is jumping off;
	// clear the flag so gravity applies this frame.
	if b.OnGround() && vel.Y < -jumpOffThreshold {
		b.SetGrounded(false)
	}

	// Gravity is a force scaled by mass and the body's gravity scale;
	// force/mass cancels, leaving acceleration scaled per entity.
	if !b.OnGround() && b.GravityScale != 0 {
		gravity := entity.Vec2{X: p.cfg.Physics.GravityX, Y: p.cfg.Physics.GravityY}
		vel = vel.Add(gravity.Scale(b.GravityScale * dt))
	}

	// Integrate accumulated forces, then clamp before the position
	// update so a runaway force can never teleport a body.
	vel = vel.Add(b.Acceleration().Scale(dt))
	vel = p.clampVelocity(vel)

	pos := b.Position().Add(vel.Scale(dt))

	// Forces are impulses-per-frame, not persistent.
	b.ClearAcceleration()

	if b.OnGround() {
		// Ground friction, with micro-velocity suppression so a
		// resting body cannot drift.
		vel.X *= p.cfg.Physics.GroundFriction
		if math.Abs(vel.X) < p.cfg.Physics.MicroVelocity {
			vel.X = 0
		}
	} else {
		// Air resistance proportional to horizontal speed.
		vel.X -= vel.X * p.cfg.Physics.AirResistance
	}

	pos, vel = p.recover(b, pos, vel)

	b.SetVelocity(vel)
	b.SetPosition(pos)
}

func (p *PhysicsEngine) clampVelocity(vel entity.Vec2) entity.Vec2 {
	terminal := p.cfg.Physics.TerminalVelocity
	if vel.Y > terminal {
		vel.Y = terminal
		p.stats.AccumulationClamps++
	} else if vel.Y < -terminal {
		vel.Y = -terminal
		p.stats.AccumulationClamps++
	}

	maxSpeed := p.cfg.Physics.MaxSpeed
	if vel.X > maxSpeed {
		vel.X = maxSpeed
		p.stats.AccumulationClamps++
	} else if vel.X < -maxSpeed {
		vel.X = -maxSpeed
		p.stats.AccumulationClamps++
	}
	return vel
}

// recover repairs non-finite state in place instead of failing the
// frame: a poisoned velocity is zeroed, a poisoned position falls
// back to the last committed one.
func (p *PhysicsEngine) recover(b *entity.Body, pos, vel entity.Vec2) (entity.Vec2, entity.Vec2) {
	if !vel.IsFinite() {
		vel = entity.Vec2{}
		p.stats.AccumulationClamps++
	}
	if !pos.IsFinite() {
		pos = b.Position()
		p.stats.AccumulationClamps++
	}
	return pos, vel
}
