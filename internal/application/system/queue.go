package system

import (
	"container/heap"

	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
)

// RequestQueue buffers pending movement requests per entity, ordered
// by priority (descending) with submission time breaking ties
// (ascending). Each entity's queue is a bounded binary heap; overflow
// evicts exactly one lowest-priority, oldest entry.
type RequestQueue struct {
	capacity int
	timeout  float64
	clock    *Clock
	stats    *Stats

	queues map[entity.EntityID]*requestHeap
	nextSeq uint64
}

// NewRequestQueue creates a queue with the given per-entity capacity
// and request timeout in seconds.
func NewRequestQueue(capacity int, timeout float64, clock *Clock, stats *Stats) *RequestQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &RequestQueue{
		capacity: capacity,
		timeout:  timeout,
		clock:    clock,
		stats:    stats,
		queues:   make(map[entity.EntityID]*requestHeap),
	}
}

// Enqueue buffers a request. Structurally invalid or already-expired
// requests are rejected outright. At capacity, the lowest-priority
// oldest entry is evicted to make room; the queue never grows past
// capacity. The request is still accepted then, with ReasonQueueFull
// reporting the displacement.
func (q *RequestQueue) Enqueue(req MovementRequest) (bool, Reason) {
	q.stats.RequestsSubmitted++
	if !req.structurallyValid() {
		q.stats.RequestsRejected++
		return false, ReasonInvalidRequest
	}
	if req.expired(q.clock.Now(), q.timeout) {
		q.stats.RequestsExpired++
		return false, ReasonExpired
	}

	req.seq = q.nextSeq
	q.nextSeq++
	if q.push(req) {
		return true, ReasonQueueFull
	}
	return true, ReasonNone
}

// requeue puts a previously dequeued request back without treating it
// as a new submission. Its original timestamp (and thus expiry) is
// preserved.
func (q *RequestQueue) requeue(req MovementRequest) {
	req.seq = q.nextSeq
	q.nextSeq++
	q.push(req)
}

// push reports whether an entry was evicted to make room.
func (q *RequestQueue) push(req MovementRequest) bool {
	h := q.queues[req.EntityID]
	if h == nil {
		h = &requestHeap{}
		q.queues[req.EntityID] = h
	}

	evicted := h.Len() >= q.capacity
	if evicted {
		h.evictWorst()
		q.stats.RequestsEvicted++
	}
	heap.Push(h, req)
	return evicted
}

// Dequeue purges expired entries everywhere, then returns the
// globally highest-priority ready request. Ties across entities break
// by submission order.
func (q *RequestQueue) Dequeue() (MovementRequest, bool) {
	q.purgeExpired()

	var best *requestHeap
	for id, h := range q.queues {
		if h.Len() == 0 {
			delete(q.queues, id)
			continue
		}
		if best == nil || requestLess(h.peek(), best.peek()) {
			best = h
		}
	}
	if best == nil {
		return MovementRequest{}, false
	}
	return heap.Pop(best).(MovementRequest), true
}

// Len returns the total number of buffered requests.
func (q *RequestQueue) Len() int {
	n := 0
	for _, h := range q.queues {
		n += h.Len()
	}
	return n
}

// LenFor returns the number of buffered requests for one entity.
func (q *RequestQueue) LenFor(id entity.EntityID) int {
	if h, ok := q.queues[id]; ok {
		return h.Len()
	}
	return 0
}

// Flush drops all buffered requests for an entity.
func (q *RequestQueue) Flush(id entity.EntityID) {
	delete(q.queues, id)
}

// Clear drops everything.
func (q *RequestQueue) Clear() {
	q.queues = make(map[entity.EntityID]*requestHeap)
}

func (q *RequestQueue) purgeExpired() {
	now := q.clock.Now()
	for id, h := range q.queues {
		kept := (*h)[:0]
		removed := 0
		for _, req := range *h {
			if req.expired(now, q.timeout) {
				removed++
				continue
			}
			kept = append(kept, req)
		}
		if removed > 0 {
			q.stats.RequestsExpired += uint64(removed)
			*h = kept
			heap.Init(h)
		}
		if h.Len() == 0 {
			delete(q.queues, id)
		}
	}
}

// requestLess orders a before b: higher priority first, then earlier
// creation time, then submission order.
func requestLess(a, b MovementRequest) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.seq < b.seq
}

// requestHeap is a max-heap by requestLess.
type requestHeap []MovementRequest

func (h requestHeap) Len() int            { return len(h) }
func (h requestHeap) Less(i, j int) bool  { return requestLess(h[i], h[j]) }
func (h requestHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *requestHeap) Push(x any)         { *h = append(*h, x.(MovementRequest)) }
func (h *requestHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (h requestHeap) peek() MovementRequest { return h[0] }

// evictWorst removes the single lowest-priority, oldest entry.
func (h *requestHeap) evictWorst() {
	if h.Len() == 0 {
		return
	}
	worst := 0
	for i := 1; i < h.Len(); i++ {
		if evictBefore((*h)[i], (*h)[worst]) {
			worst = i
		}
	}
	heap.Remove(h, worst)
}

// evictBefore orders a before b for eviction: lower priority first,
// then older submission.
func evictBefore(a, b MovementRequest) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.seq < b.seq
}
