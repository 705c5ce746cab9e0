package entity

// Body represents the physical state of an entity.
//
// Position and velocity have exactly one writer per frame: the physics
// integration stage assigns them, and the collision resolution stage may
// correct them once afterwards. Everyone else feeds the body through
// ApplyForce and ApplyImpulse, which are folded in at the start of the
// next integration. SetPosition, SetVelocity and SetGrounded exist for
// those two stages (and for tests); calling them from anywhere else
// breaks the single-writer contract.
type Body struct {
	pos      Vec2
	vel      Vec2
	accel    Vec2
	impulse  Vec2 // pending velocity delta, consumed at integration start
	onGround bool

	Mass         float64
	GravityScale float64
	Bounciness   float64 // 0..1, velocity retained along the contact normal
	Static       bool
}

// NewBody creates a dynamic body at the given position.
// Mass below a sane minimum is clamped rather than rejected.
func NewBody(pos Vec2, mass float64) *Body {
	if mass < MinMass {
		mass = MinMass
	}
	return &Body{
		pos:          pos,
		Mass:         mass,
		GravityScale: 1.0,
	}
}

// MinMass is the smallest allowed body mass. Forces divide by mass, so
// zero is clamped away instead of propagating infinities.
const MinMass = 0.001

// Position returns the current position.
func (b *Body) Position() Vec2 { return b.pos }

// Velocity returns the current velocity.
func (b *Body) Velocity() Vec2 { return b.vel }

// Acceleration returns the pending acceleration accumulator.
func (b *Body) Acceleration() Vec2 { return b.accel }

// OnGround reports whether the body was grounded by the last
// resolution pass.
func (b *Body) OnGround() bool { return b.onGround }

// SetPosition assigns the position. Reserved for the integration and
// resolution stages.
func (b *Body) SetPosition(p Vec2) { b.pos = p }

// SetVelocity assigns the velocity. Reserved for the integration and
// resolution stages.
func (b *Body) SetVelocity(v Vec2) { b.vel = v }

// SetGrounded assigns the grounded flag. Reserved for the resolution
// stage and the ground tracker.
func (b *Body) SetGrounded(g bool) { b.onGround = g }

// ApplyForce accumulates a force for the next integration step.
// Forces are impulses-per-frame: the accumulator is cleared after each
// integration, so a persistent push must be re-applied every frame.
// Non-finite forces are ignored.
func (b *Body) ApplyForce(f Vec2) {
	if b.Static || !f.IsFinite() {
		return
	}
	b.accel = b.accel.Add(f.Scale(1.0 / b.Mass))
}

// ApplyImpulse accumulates an instantaneous velocity change, folded
// into velocity at the start of the next integration step.
// Non-finite impulses are ignored.
func (b *Body) ApplyImpulse(dv Vec2) {
	if b.Static || !dv.IsFinite() {
		return
	}
	b.impulse = b.impulse.Add(dv)
}

// ConsumeImpulse returns the pending velocity delta and clears it.
// Reserved for the integration stage.
func (b *Body) ConsumeImpulse() Vec2 {
	dv := b.impulse
	b.impulse = Vec2{}
	return dv
}

// ClearAcceleration zeroes the force accumulator. Reserved for the
// integration stage.
func (b *Body) ClearAcceleration() { b.accel = Vec2{} }

// Reset returns the body to a quiescent state: zero velocity, zero
// acceleration, no pending impulses, not grounded. Position is kept.
// Resetting twice is the same as resetting once.
func (b *Body) Reset() {
	b.vel = Vec2{}
	b.accel = Vec2{}
	b.impulse = Vec2{}
	b.onGround = false
}
