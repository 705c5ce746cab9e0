package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
)

func newTestQueue(capacity int, timeout float64) (*RequestQueue, *Clock, *Stats) {
	clock := NewClock()
	stats := &Stats{}
	return NewRequestQueue(capacity, timeout, clock, stats), clock, stats
}

func walkRequest(id entity.EntityID, priority int, createdAt float64) MovementRequest {
	return MovementRequest{
		EntityID:  id,
		Type:      MoveWalk,
		Direction: entity.Vec2{X: 1},
		Magnitude: 1,
		Priority:  priority,
		CreatedAt: createdAt,
	}
}

func TestRequestQueue_OrderingProperty(t *testing.T) {
	q, _, _ := newTestQueue(32, 10)

	// Mixed priorities, interleaved submissions
	priorities := []int{1, 5, 3, 5, 2, 9, 0, 3, 9, 1}
	for i, p := range priorities {
		ok, reason := q.Enqueue(walkRequest(1, p, float64(i)*0.001))
		require.True(t, ok, "reason: %s", reason)
	}

	var lastPriority = int(^uint(0) >> 1) // max int
	var lastCreated float64 = -1
	for {
		req, ok := q.Dequeue()
		if !ok {
			break
		}
		assert.LessOrEqual(t, req.Priority, lastPriority, "priority must be non-increasing")
		if req.Priority == lastPriority {
			assert.GreaterOrEqual(t, req.CreatedAt, lastCreated, "ties break by ascending submission time")
		}
		lastPriority = req.Priority
		lastCreated = req.CreatedAt
	}
	assert.Equal(t, 0, q.Len())
}

func TestRequestQueue_BoundAndEviction(t *testing.T) {
	q, _, stats := newTestQueue(4, 10)

	for i := 0; i < 4; i++ {
		ok, reason := q.Enqueue(walkRequest(1, 5, float64(i)*0.01))
		require.True(t, ok)
		assert.Equal(t, ReasonNone, reason)
	}
	assert.Equal(t, 4, q.LenFor(1))

	// Each overflow evicts exactly one entry and reports the
	// displacement; the queue never grows past capacity.
	for i := 0; i < 3; i++ {
		ok, reason := q.Enqueue(walkRequest(1, 9, 0.1+float64(i)*0.01))
		require.True(t, ok)
		assert.Equal(t, ReasonQueueFull, reason)
		assert.Equal(t, 4, q.LenFor(1))
	}
	assert.Equal(t, uint64(3), stats.RequestsEvicted)

	// The survivors are the high-priority entries plus the newest of
	// the originals.
	var priorities []int
	for {
		req, ok := q.Dequeue()
		if !ok {
			break
		}
		priorities = append(priorities, req.Priority)
	}
	assert.Equal(t, []int{9, 9, 9, 5}, priorities)
}

func TestRequestQueue_EvictsLowestPriorityOldest(t *testing.T) {
	q, _, _ := newTestQueue(2, 10)

	q.Enqueue(walkRequest(1, 1, 0.00)) // lowest priority, oldest: evicted
	q.Enqueue(walkRequest(1, 1, 0.01))
	q.Enqueue(walkRequest(1, 5, 0.02))

	first, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 5, first.Priority)

	second, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 1, second.Priority)
	assert.Equal(t, 0.01, second.CreatedAt)

	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestRequestQueue_RejectsInvalid(t *testing.T) {
	q, _, stats := newTestQueue(8, 10)

	tests := []struct {
		name string
		req  MovementRequest
	}{
		{
			name: "zero entity id",
			req:  walkRequest(0, 1, 0),
		},
		{
			name: "unknown type",
			req: MovementRequest{
				EntityID: 1, Type: MovementType(99),
				Direction: entity.Vec2{X: 1}, Magnitude: 1,
			},
		},
		{
			name: "negative magnitude",
			req: MovementRequest{
				EntityID: 1, Type: MoveWalk,
				Direction: entity.Vec2{X: 1}, Magnitude: -1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := q.Enqueue(tt.req)
			assert.False(t, ok)
			assert.Equal(t, ReasonInvalidRequest, reason)
		})
	}
	assert.Equal(t, uint64(3), stats.RequestsRejected)
	assert.Equal(t, 0, q.Len())
}

func TestRequestQueue_RejectsAlreadyExpired(t *testing.T) {
	q, clock, stats := newTestQueue(8, 0.1)
	clock.Advance(1.0)

	ok, reason := q.Enqueue(walkRequest(1, 1, 0.5))
	assert.False(t, ok)
	assert.Equal(t, ReasonExpired, reason)
	assert.Equal(t, uint64(1), stats.RequestsExpired)
}

func TestRequestQueue_DequeuePurgesExpired(t *testing.T) {
	q, clock, stats := newTestQueue(8, 0.1)

	q.Enqueue(walkRequest(1, 9, 0.0)) // will expire
	q.Enqueue(walkRequest(2, 1, 0.0)) // will expire
	clock.Advance(0.09)
	q.Enqueue(walkRequest(1, 1, clock.Now())) // fresh

	clock.Advance(0.05) // now 0.14: the first two are past the timeout

	req, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, entity.EntityID(1), req.EntityID)
	assert.Equal(t, 0.09, req.CreatedAt)
	assert.Equal(t, uint64(2), stats.RequestsExpired)

	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestRequestQueue_GlobalHighestAcrossEntities(t *testing.T) {
	q, _, _ := newTestQueue(8, 10)

	q.Enqueue(walkRequest(1, 3, 0.00))
	q.Enqueue(walkRequest(2, 7, 0.01))
	q.Enqueue(walkRequest(3, 5, 0.02))

	req, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, entity.EntityID(2), req.EntityID, "highest priority wins regardless of entity")
}
