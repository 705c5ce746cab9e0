package entity

// GroundInfo is the per-entity ground contact state maintained by the
// ground tracker. The coyote window is not stored as a separate state:
// it is IsGrounded == false && CoyoteTimeRemaining > 0.
type GroundInfo struct {
	IsGrounded           bool
	WasGroundedLastFrame bool
	GroundNormal         Vec2
	GroundSurface        SurfaceType
	GroundVelocity       Vec2
	LastGroundedTime     float64 // simulation seconds
	CoyoteTimeRemaining  float64 // seconds, non-increasing while airborne
	IsStableGround       bool    // normal close enough to straight up to stand on
}

// CanJump reports whether a jump is currently allowed: either standing
// on ground or still inside the coyote window.
func (g *GroundInfo) CanJump() bool {
	return g.IsGrounded || g.CoyoteTimeRemaining > 0
}

// Expired reports whether this entry carries no information anymore
// and can be dropped: airborne with the coyote window fully elapsed.
func (g *GroundInfo) Expired() bool {
	return !g.IsGrounded && g.CoyoteTimeRemaining <= 0
}
