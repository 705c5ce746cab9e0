package entity

// Entity is anything the physics stages can see: a position, a size,
// a collision layer, and optionally a Body. Static level geometry
// omits the Body and keeps its position on the entity itself.
type Entity struct {
	ID    EntityID
	Name  string
	Layer Layer
	Size  Vec2

	Body *Body

	staticPos Vec2
}

// NewStatic creates a bodiless entity fixed at pos.
func NewStatic(id EntityID, layer Layer, pos, size Vec2) *Entity {
	return &Entity{
		ID:        id,
		Layer:     layer,
		Size:      size,
		staticPos: pos,
	}
}

// NewDynamic creates an entity with a dynamic body at pos.
func NewDynamic(id EntityID, layer Layer, pos, size Vec2, mass float64) *Entity {
	return &Entity{
		ID:    id,
		Layer: layer,
		Size:  size,
		Body:  NewBody(pos, mass),
	}
}

// Position returns the body position for dynamic entities, or the
// fixed position for static geometry.
func (e *Entity) Position() Vec2 {
	if e.Body != nil {
		return e.Body.Position()
	}
	return e.staticPos
}

// IsStatic reports whether the entity never moves: either it has no
// body at all, or its body is flagged static.
func (e *Entity) IsStatic() bool {
	return e.Body == nil || e.Body.Static
}

// Bounds returns the entity's world-space AABB.
func (e *Entity) Bounds() AABB {
	return NewAABB(e.Position(), e.Size)
}
