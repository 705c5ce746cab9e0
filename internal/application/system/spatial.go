package system

import (
	"math"

	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
)

// cellKey addresses one cell of the uniform grid.
type cellKey struct {
	X, Y int
}

// spatialHash is the broad-phase structure: a uniform grid mapping
// world cells to the entities whose bounds overlap them. It carries
// no cross-frame state; the detector rebuilds it from scratch every
// frame, trading rebuild work for immunity to staleness.
type spatialHash struct {
	cellSize float64
	cells    map[cellKey][]entity.EntityID
	used     []cellKey // keys touched since the last clear
}

func newSpatialHash(cellSize float64) *spatialHash {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &spatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]entity.EntityID),
	}
}

// clear empties all cells but keeps their allocated capacity.
func (s *spatialHash) clear() {
	for _, k := range s.used {
		s.cells[k] = s.cells[k][:0]
	}
	s.used = s.used[:0]
}

// insert adds an entity to every cell its bounds overlap.
func (s *spatialHash) insert(id entity.EntityID, bounds entity.AABB) {
	minX, minY, maxX, maxY := s.cellRange(bounds)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			k := cellKey{cx, cy}
			cell, ok := s.cells[k]
			if !ok || len(cell) == 0 {
				s.used = append(s.used, k)
			}
			s.cells[k] = append(cell, id)
		}
	}
}

// query calls fn for every entity sharing a cell with bounds.
// The same entity may be reported more than once when it spans
// multiple cells; callers dedupe.
func (s *spatialHash) query(bounds entity.AABB, fn func(entity.EntityID)) {
	minX, minY, maxX, maxY := s.cellRange(bounds)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			for _, id := range s.cells[cellKey{cx, cy}] {
				fn(id)
			}
		}
	}
}

func (s *spatialHash) cellRange(bounds entity.AABB) (minX, minY, maxX, maxY int) {
	minX = int(math.Floor(bounds.X / s.cellSize))
	minY = int(math.Floor(bounds.Y / s.cellSize))
	maxX = int(math.Floor(bounds.Right() / s.cellSize))
	maxY = int(math.Floor(bounds.Bottom() / s.cellSize))
	return minX, minY, maxX, maxY
}
