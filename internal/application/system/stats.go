package system

// Stats counts what the frame loop drops, clamps, and truncates.
// Nothing in the error taxonomy aborts a frame, so these counters are
// the only trace most degradations leave.
type Stats struct {
	Frames uint64

	RequestsSubmitted uint64
	RequestsAccepted  uint64
	RequestsRejected  uint64
	RequestsExpired   uint64
	RequestsCoalesced uint64
	RequestsEvicted   uint64
	RequestsBuffered  uint64

	PairsTested         uint64
	CollisionsDetected  uint64
	CollisionsResolved  uint64
	CollisionsTruncated uint64

	AccumulationClamps uint64
	SkippedEntities    uint64
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Stats {
	return *s
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	*s = Stats{}
}
