package system

import (
	"log"
	"sort"

	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/ecs"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

// recordHistoryMaxAge is how long resolved collision records are kept
// for expiry bookkeeping before being dropped, in seconds.
const recordHistoryMaxAge = 1.0

// CollisionRecord describes one detected overlap. Records are built
// fresh every frame and consumed immediately; they never persist
// across frames except in the short-lived expiry history.
type CollisionRecord struct {
	// EntityA is the movable side, EntityB the reference side, as
	// decided at detection time. The normal points from B toward A.
	EntityA entity.EntityID
	EntityB entity.EntityID

	ContactPoint entity.Vec2
	Normal       entity.Vec2
	Penetration  float64
	Separation   entity.Vec2 // Normal scaled by Penetration
	Surface      entity.SurfaceType
	Active       bool
	Timestamp    float64
}

// LayerMatrix gates which layer pairs are even tested against each
// other. It is symmetric by construction.
type LayerMatrix struct {
	pairs [entity.NumLayers][entity.NumLayers]bool
}

// Enable marks a layer pair as collidable.
func (m *LayerMatrix) Enable(a, b entity.Layer) {
	m.pairs[a][b] = true
	m.pairs[b][a] = true
}

// Collidable reports whether the pair should be tested.
func (m *LayerMatrix) Collidable(a, b entity.Layer) bool {
	return m.pairs[a][b]
}

// DefaultLayerMatrix returns the platformer compatibility matrix:
// actors hit level geometry and each other, projectiles hit enemies
// and geometry, hazards hit actors.
func DefaultLayerMatrix() *LayerMatrix {
	m := &LayerMatrix{}
	m.Enable(entity.LayerPlayer, entity.LayerPlatform)
	m.Enable(entity.LayerPlayer, entity.LayerOneWayPlatform)
	m.Enable(entity.LayerPlayer, entity.LayerEnemy)
	m.Enable(entity.LayerPlayer, entity.LayerHazard)
	m.Enable(entity.LayerEnemy, entity.LayerPlatform)
	m.Enable(entity.LayerEnemy, entity.LayerOneWayPlatform)
	m.Enable(entity.LayerProjectile, entity.LayerEnemy)
	m.Enable(entity.LayerProjectile, entity.LayerPlatform)
	return m
}

// CollisionDetector is the broad+narrow phase. Each frame it rebuilds
// the spatial hash from current positions, filters candidate pairs
// through the layer matrix, and emits collision records for the
// resolver. A per-frame budget caps the number of records; overflow
// is truncated with a warning, never carried over.
type CollisionDetector struct {
	cfg    *config.Tuning
	matrix *LayerMatrix
	grid   *spatialHash
	clock  *Clock
	stats  *Stats

	records []CollisionRecord
	history []CollisionRecord
}

// NewCollisionDetector creates the detection stage.
func NewCollisionDetector(cfg *config.Tuning, matrix *LayerMatrix, clock *Clock, stats *Stats) *CollisionDetector {
	if matrix == nil {
		matrix = DefaultLayerMatrix()
	}
	return &CollisionDetector{
		cfg:    cfg,
		matrix: matrix,
		grid:   newSpatialHash(cfg.Collision.CellSize),
		clock:  clock,
		stats:  stats,
	}
}

// Name implements System.
func (d *CollisionDetector) Name() string { return "collision-detect" }

// Update runs detection against post-integration positions.
func (d *CollisionDetector) Update(w *ecs.World, dt float64) {
	d.records = d.records[:0]
	d.trimHistory()
	if !d.cfg.Collision.Enabled {
		return
	}

	d.grid.clear()
	w.ForEach(func(e *entity.Entity) {
		d.grid.insert(e.ID, e.Bounds())
	})

	budget := d.cfg.Collision.MaxPerFrame
	truncated := false

	seen := make(map[[2]entity.EntityID]struct{})
	w.ForEach(func(a *entity.Entity) {
		if truncated {
			return
		}
		d.grid.query(a.Bounds(), func(otherID entity.EntityID) {
			if truncated || otherID == a.ID {
				return
			}
			key := pairKeyOf(a.ID, otherID)
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}

			b, ok := w.Get(otherID)
			if !ok {
				return
			}
			if !d.matrix.Collidable(a.Layer, b.Layer) {
				return
			}
			if a.IsStatic() && b.IsStatic() {
				return
			}
			d.stats.PairsTested++

			rec, hit := TestOverlap(a, b)
			if !hit {
				return
			}
			rec.Timestamp = d.clock.Now()
			d.records = append(d.records, rec)
			d.stats.CollisionsDetected++

			if len(d.records) >= budget {
				// First-discovered wins; the remainder of this
				// frame's pairs are dropped, not prioritized.
				truncated = true
			}
		})
	})

	if truncated {
		d.stats.CollisionsTruncated++
		log.Printf("collision budget exceeded: processing first %d collisions this frame", budget)
	}

	d.history = append(d.history, d.records...)
}

// Records returns this frame's collision records. Valid until the
// next Update.
func (d *CollisionDetector) Records() []CollisionRecord {
	return d.records
}

func (d *CollisionDetector) trimHistory() {
	cutoff := d.clock.Now() - recordHistoryMaxAge
	kept := d.history[:0]
	for _, r := range d.history {
		if r.Timestamp >= cutoff {
			kept = append(kept, r)
		}
	}
	d.history = kept
}

// DropHistory clears the expiry history outright. Last-resort path
// for memory pressure; detection output is unaffected.
func (d *CollisionDetector) DropHistory() {
	d.history = d.history[:0]
}

func pairKeyOf(a, b entity.EntityID) [2]entity.EntityID {
	if a < b {
		return [2]entity.EntityID{a, b}
	}
	return [2]entity.EntityID{b, a}
}

// TestOverlap performs the narrow-phase AABB test between two
// entities. On overlap it returns a record whose movable side is the
// non-static entity (a wins when both move), with the normal pointing
// from the reference toward the movable side along the axis of
// smaller overlap. The smaller axis gives a sliding response instead
// of a corner snag.
func TestOverlap(a, b *entity.Entity) (CollisionRecord, bool) {
	movable, reference := a, b
	if movable.IsStatic() && !reference.IsStatic() {
		movable, reference = reference, movable
	}

	mb := movable.Bounds()
	rb := reference.Bounds()
	dx, dy := mb.OverlapExtent(rb)
	if dx <= 0 || dy <= 0 {
		return CollisionRecord{}, false
	}

	var normal entity.Vec2
	var depth float64
	if dx < dy {
		depth = dx
		if mb.Center().X >= rb.Center().X {
			normal = entity.Vec2{X: 1}
		} else {
			normal = entity.Vec2{X: -1}
		}
	} else {
		depth = dy
		if mb.Center().Y >= rb.Center().Y {
			normal = entity.Vec2{Y: 1}
		} else {
			normal = entity.Vec2{Y: -1}
		}
	}

	return CollisionRecord{
		EntityA:      movable.ID,
		EntityB:      reference.ID,
		ContactPoint: mb.OverlapCenter(rb),
		Normal:       normal,
		Penetration:  depth,
		Separation:   normal.Scale(depth),
		Surface:      entity.SurfaceForLayer(reference.Layer),
		Active:       true,
	}, true
}

// sortRecords orders records for resolution: vertical-axis records
// first so platform landings settle before horizontal sliding, then
// deeper penetrations first.
func sortRecords(records []CollisionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		iv := records[i].Normal.Y != 0
		jv := records[j].Normal.Y != 0
		if iv != jv {
			return iv
		}
		return records[i].Penetration > records[j].Penetration
	})
}
