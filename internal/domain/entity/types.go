package entity

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// Layer classifies an entity for collision filtering.
// Which layer pairs are tested is decided by the detector's
// compatibility matrix, not by the layers themselves.
type Layer int

const (
	LayerNone Layer = iota
	LayerPlayer
	LayerEnemy
	LayerPlatform
	LayerOneWayPlatform
	LayerProjectile
	LayerHazard

	layerCount
)

// NumLayers is the number of collision layers, for sizing matrices.
const NumLayers = int(layerCount)

// String returns the layer name for logs and debug overlays.
func (l Layer) String() string {
	switch l {
	case LayerNone:
		return "none"
	case LayerPlayer:
		return "player"
	case LayerEnemy:
		return "enemy"
	case LayerPlatform:
		return "platform"
	case LayerOneWayPlatform:
		return "oneway"
	case LayerProjectile:
		return "projectile"
	case LayerHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// SurfaceType describes the material of a contacted surface.
type SurfaceType int

const (
	SurfaceNone SurfaceType = iota
	SurfaceSolid
	SurfaceOneWay
	SurfaceHazard
)

// String returns the surface name.
func (s SurfaceType) String() string {
	switch s {
	case SurfaceSolid:
		return "solid"
	case SurfaceOneWay:
		return "oneway"
	case SurfaceHazard:
		return "hazard"
	default:
		return "none"
	}
}

// SurfaceForLayer returns the surface type presented by a reference
// entity on the given layer.
func SurfaceForLayer(l Layer) SurfaceType {
	switch l {
	case LayerOneWayPlatform:
		return SurfaceOneWay
	case LayerHazard:
		return SurfaceHazard
	case LayerNone:
		return SurfaceNone
	default:
		return SurfaceSolid
	}
}
