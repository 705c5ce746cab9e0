// Package ecs holds the entity registry shared by all physics stages.
//
// Systems never keep their own entity lists; they are handed a *World
// at construction and query it by ID. That keeps every piece of entity
// state in exactly one place.
package ecs

import (
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
)

// World holds all entities, indexed by ID.
type World struct {
	nextID   entity.EntityID
	entities map[entity.EntityID]*entity.Entity

	// order keeps IDs in creation order. IDs grow monotonically and
	// are never recycled, so the slice stays sorted, which gives
	// every system a deterministic iteration order.
	order []entity.EntityID
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		nextID:   1, // 0 is "nil"
		entities: make(map[entity.EntityID]*entity.Entity),
	}
}

// NewEntityID reserves and returns a fresh entity ID.
func (w *World) NewEntityID() entity.EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// Add registers an already-built entity. Entities with ID 0 or a
// duplicate ID are rejected.
func (w *World) Add(e *entity.Entity) bool {
	if e == nil || e.ID == 0 {
		return false
	}
	if _, exists := w.entities[e.ID]; exists {
		return false
	}
	w.entities[e.ID] = e
	w.order = append(w.order, e.ID)
	return true
}

// SpawnStatic creates and registers bodiless level geometry.
func (w *World) SpawnStatic(layer entity.Layer, pos, size entity.Vec2) *entity.Entity {
	e := entity.NewStatic(w.NewEntityID(), layer, pos, size)
	w.Add(e)
	return e
}

// SpawnDynamic creates and registers an entity with a dynamic body.
func (w *World) SpawnDynamic(layer entity.Layer, pos, size entity.Vec2, mass float64) *entity.Entity {
	e := entity.NewDynamic(w.NewEntityID(), layer, pos, size, mass)
	w.Add(e)
	return e
}

// Get returns the entity with the given ID, if it exists.
func (w *World) Get(id entity.EntityID) (*entity.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Destroy removes an entity and everything it owns.
func (w *World) Destroy(id entity.EntityID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Exists reports whether the entity is registered.
func (w *World) Exists(id entity.EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Count returns the number of registered entities.
func (w *World) Count() int {
	return len(w.entities)
}

// ForEach calls fn for every entity in creation order.
func (w *World) ForEach(fn func(*entity.Entity)) {
	for _, id := range w.order {
		fn(w.entities[id])
	}
}

// ForEachDynamic calls fn for every entity with a non-static body,
// in creation order.
func (w *World) ForEachDynamic(fn func(*entity.Entity)) {
	for _, id := range w.order {
		e := w.entities[id]
		if e.Body != nil && !e.Body.Static {
			fn(e)
		}
	}
}

// Clear removes every entity and resets ID allocation. Used on scene
// reload; the simulation carries no state across a clear.
func (w *World) Clear() {
	w.nextID = 1
	w.entities = make(map[entity.EntityID]*entity.Entity)
	w.order = w.order[:0]
}
