package system

import "github.com/christianWissmann85/aether-engine/internal/ecs"

// System is one per-frame processing stage. Systems own no entity
// lists; they query the world they are handed.
type System interface {
	// Name identifies the system in logs and stats.
	Name() string
	// Update advances the system by one fixed timestep.
	Update(w *ecs.World, dt float64)
}

// Scheduler runs systems in a fixed order every frame. Order is the
// whole point: movement effects must land before integration, and
// collision work must see post-integration positions. The scheduler
// itself owns no logic.
type Scheduler struct {
	systems []System
}

// NewScheduler creates a scheduler running the given systems in order.
func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

// Add appends a system to the end of the frame order.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs one frame across all systems.
func (s *Scheduler) Update(w *ecs.World, dt float64) {
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

// Systems returns a copy of the configured order.
func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
