package system

import (
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
)

// MovementType is the kind of movement a request asks for.
type MovementType int

const (
	MoveWalk MovementType = iota
	MoveJump
	MoveDash
	MoveStop
	MoveImpulse

	movementTypeCount
)

// String returns the movement type name.
func (m MovementType) String() string {
	switch m {
	case MoveWalk:
		return "walk"
	case MoveJump:
		return "jump"
	case MoveDash:
		return "dash"
	case MoveStop:
		return "stop"
	case MoveImpulse:
		return "impulse"
	default:
		return "unknown"
	}
}

// Valid reports whether the type is a known movement type.
func (m MovementType) Valid() bool {
	return m >= MoveWalk && m < movementTypeCount
}

// MovementRequest is an immutable movement intent. It is validated
// once and never mutated while queued.
type MovementRequest struct {
	EntityID  entity.EntityID `json:"entityId"`
	Type      MovementType    `json:"type"`
	Direction entity.Vec2     `json:"direction"` // unit vector
	Magnitude float64         `json:"magnitude"`
	Priority  int             `json:"priority"`
	CreatedAt float64         `json:"createdAt"` // simulation seconds

	// seq orders requests with equal priority and timestamp; assigned
	// by the queue at submission.
	seq uint64
}

// structurallyValid checks the request's own fields, independent of
// world state.
func (r *MovementRequest) structurallyValid() bool {
	if !r.Type.Valid() || r.EntityID == 0 {
		return false
	}
	if !r.Direction.IsFinite() {
		return false
	}
	if r.Magnitude != r.Magnitude || r.Magnitude < 0 { // NaN or negative
		return false
	}
	return true
}

// expired reports whether the request is older than timeout at the
// given time.
func (r *MovementRequest) expired(now, timeout float64) bool {
	return now-r.CreatedAt >= timeout
}

// Reason says why a request was not applied as asked.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonInvalidRequest Reason = "invalid request"
	ReasonExpired        Reason = "expired"
	ReasonNotGrounded    Reason = "not grounded"
	ReasonDashCooldown   Reason = "dash on cooldown"
	ReasonCoalesced      Reason = "coalesced"
	ReasonMissingBody    Reason = "missing body"
	ReasonQueueFull      Reason = "queue full"
)

// MovementResponse reports what was actually applied for a request,
// which may differ from what was asked.
type MovementResponse struct {
	Success      bool        `json:"success"`
	AppliedDelta entity.Vec2 `json:"appliedDelta"` // velocity change applied
	Reason       Reason      `json:"reason,omitempty"`
}

func rejected(reason Reason) MovementResponse {
	return MovementResponse{Reason: reason}
}

func accepted(delta entity.Vec2) MovementResponse {
	return MovementResponse{Success: true, AppliedDelta: delta}
}
