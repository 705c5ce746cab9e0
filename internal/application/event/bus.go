// Package event carries read-only notifications out of the physics
// core. Downstream consumers (animation, audio, debug overlays)
// subscribe here; they receive value copies and have no path back
// into physics state.
package event

import "github.com/christianWissmann85/aether-engine/internal/domain/entity"

// GroundStateChanged is fired when an entity's grounded flag flips.
type GroundStateChanged struct {
	EntityID     entity.EntityID
	IsGrounded   bool
	GroundNormal entity.Vec2
}

// CollisionStarted is fired once per resolved collision.
type CollisionStarted struct {
	EntityA     entity.EntityID
	EntityB     entity.EntityID
	Normal      entity.Vec2
	Penetration float64
	Surface     entity.SurfaceType
}

// GroundListener receives ground state transitions.
type GroundListener interface {
	OnGroundStateChanged(ev GroundStateChanged)
}

// CollisionListener receives collision start notifications.
type CollisionListener interface {
	OnCollisionStarted(ev CollisionStarted)
}

// SubscriptionID identifies a subscription for unsubscribe.
type SubscriptionID uint64

// Bus fans notifications out to subscribers. Dispatch is synchronous
// and single-threaded, matching the frame loop; subscribers must not
// block.
type Bus struct {
	nextID    SubscriptionID
	ground    map[SubscriptionID]GroundListener
	collision map[SubscriptionID]CollisionListener
	order     []SubscriptionID // dispatch in subscription order
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		nextID:    1,
		ground:    make(map[SubscriptionID]GroundListener),
		collision: make(map[SubscriptionID]CollisionListener),
	}
}

// SubscribeGround registers a ground state listener.
func (b *Bus) SubscribeGround(l GroundListener) SubscriptionID {
	id := b.nextID
	b.nextID++
	b.ground[id] = l
	b.order = append(b.order, id)
	return id
}

// SubscribeCollision registers a collision listener.
func (b *Bus) SubscribeCollision(l CollisionListener) SubscriptionID {
	id := b.nextID
	b.nextID++
	b.collision[id] = l
	b.order = append(b.order, id)
	return id
}

// Unsubscribe removes a subscription of either kind. Unknown IDs are
// a no-op.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	if _, ok := b.ground[id]; !ok {
		if _, ok := b.collision[id]; !ok {
			return
		}
	}
	delete(b.ground, id)
	delete(b.collision, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// PublishGround delivers a ground transition to all ground listeners.
func (b *Bus) PublishGround(ev GroundStateChanged) {
	for _, id := range b.order {
		if l, ok := b.ground[id]; ok {
			l.OnGroundStateChanged(ev)
		}
	}
}

// PublishCollision delivers a collision start to all collision
// listeners.
func (b *Bus) PublishCollision(ev CollisionStarted) {
	for _, id := range b.order {
		if l, ok := b.collision[id]; ok {
			l.OnCollisionStarted(ev)
		}
	}
}
