package system

import (
	"github.com/christianWissmann85/aether-engine/internal/application/event"
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/ecs"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

// contactSlop is the penetration (px) left in place when separating
// bodies. Leaving a hair of overlap keeps resting contacts alive
// frame to frame; a full push-out would separate the pair completely
// and make the grounded flag flap every other frame.
const contactSlop = 0.05

// CollisionResolver consumes the detector's records, corrects
// positions and velocities, and is the exclusive trigger for ground
// contact reports. It is the second and last writer of position and
// velocity each frame.
type CollisionResolver struct {
	cfg      *config.Tuning
	detector *CollisionDetector
	tracker  *GroundStateTracker
	bus      *event.Bus
	stats    *Stats
}

// NewCollisionResolver creates the resolution stage.
func NewCollisionResolver(cfg *config.Tuning, detector *CollisionDetector, tracker *GroundStateTracker, bus *event.Bus, stats *Stats) *CollisionResolver {
	return &CollisionResolver{
		cfg:      cfg,
		detector: detector,
		tracker:  tracker,
		bus:      bus,
		stats:    stats,
	}
}

// Name implements System.
func (r *CollisionResolver) Name() string { return "collision-resolve" }

// Update resolves this frame's collision records. Vertical records
// resolve before horizontal ones so platform landings settle before
// sliding; deeper penetrations resolve first within an axis.
func (r *CollisionResolver) Update(w *ecs.World, dt float64) {
	// Grounded-ness is re-derived from scratch every frame; a body
	// with no ground contact this frame is airborne.
	w.ForEachDynamic(func(e *entity.Entity) {
		e.Body.SetGrounded(false)
	})

	records := r.detector.Records()
	sortRecords(records)

	for i := range records {
		r.resolve(w, &records[i])
	}
}

func (r *CollisionResolver) resolve(w *ecs.World, rec *CollisionRecord) {
	if !rec.Active {
		return
	}

	movable, ok := w.Get(rec.EntityA)
	if !ok || movable.Body == nil || movable.Body.Static {
		// Entity disappeared or lost its body between detection and
		// resolution; skip it and clear its transient state.
		r.stats.SkippedEntities++
		r.tracker.Forget(rec.EntityA)
		return
	}
	body := movable.Body

	// One-way platforms only stop an entity coming from above:
	// upward normal, and the body either falling or already resting
	// on the platform. Anything moving upward passes through without
	// a trace.
	if rec.Surface == entity.SurfaceOneWay {
		if rec.Normal.Y >= 0 || !r.oneWayLands(movable.ID, body) {
			rec.Active = false
			return
		}
	}

	// Penetration correction: the separation vector is the minimal
	// translation out of the overlap, minus the contact slop.
	if corr := rec.Penetration - contactSlop; corr > 0 {
		body.SetPosition(body.Position().Add(rec.Normal.Scale(corr)))
	}

	vel := body.Velocity()
	vn := vel.Dot(rec.Normal)
	if vn < 0 {
		if body.Bounciness > 0 {
			// Reflect the normal component, scaled by bounciness.
			vel = vel.Sub(rec.Normal.Scale((1 + body.Bounciness) * vn))
		} else if rec.Normal.X != 0 {
			vel.X = 0
		} else {
			vel.Y = 0
		}
		body.SetVelocity(vel)
	}

	if rec.Normal.Y <= -r.cfg.Collision.GroundNormal {
		body.SetGrounded(true)
		r.tracker.ReportGroundContact(movable.ID, rec.Normal, rec.Surface, r.referenceVelocity(w, rec.EntityB))
	}

	r.stats.CollisionsResolved++

	// Fire-and-forget notification; listeners get a copy and cannot
	// reach back into physics state.
	r.bus.PublishCollision(event.CollisionStarted{
		EntityA:     rec.EntityA,
		EntityB:     rec.EntityB,
		Normal:      rec.Normal,
		Penetration: rec.Penetration,
		Surface:     rec.Surface,
	})
}

// oneWayLands reports whether a one-way contact counts as a landing.
// Falling bodies land. A body at rest (vel.Y == 0, gravity suspended
// while grounded) lands only if it is already standing on a one-way
// surface; otherwise the resting contact would flap the grounded flag
// every frame. A body inside the platform with no downward motion and
// no such footing, e.g. at the apex of a jump that entered from
// below, falls back through instead of being snapped on top.
func (r *CollisionResolver) oneWayLands(id entity.EntityID, body *entity.Body) bool {
	vy := body.Velocity().Y
	if vy > 0 {
		return true
	}
	if vy < 0 {
		return false
	}
	gi, ok := r.tracker.Info(id)
	return ok && gi.IsGrounded && gi.GroundSurface == entity.SurfaceOneWay
}

func (r *CollisionResolver) referenceVelocity(w *ecs.World, id entity.EntityID) entity.Vec2 {
	ref, ok := w.Get(id)
	if !ok || ref.Body == nil {
		return entity.Vec2{}
	}
	return ref.Body.Velocity()
}
