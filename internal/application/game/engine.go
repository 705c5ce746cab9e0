// Package game assembles the per-frame pipeline and owns the shared
// simulation state: world, clock, event bus and counters. The Engine
// is headless; rendering and input live in the scenes that drive it.
package game

import (
	"github.com/christianWissmann85/aether-engine/internal/application/event"
	"github.com/christianWissmann85/aether-engine/internal/application/system"
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/ecs"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

// Engine runs the simulation at a fixed timestep. Each Step advances
// the clock once and runs the stages in their fixed order: movement
// intake, integration, collision detection, resolution, ground state.
type Engine struct {
	cfg   *config.Tuning
	world *ecs.World
	clock *system.Clock
	stats *system.Stats
	bus   *event.Bus

	queue       *system.RequestQueue
	tracker     *system.GroundStateTracker
	coordinator *system.MovementCoordinator
	detector    *system.CollisionDetector
	scheduler   *system.Scheduler
}

// NewEngine wires a fresh simulation from the given tuning. A nil
// tuning gets the defaults. The tuning pointer is retained: ApplyTuning
// hot-swaps values through it without rebuilding the pipeline.
func NewEngine(cfg *config.Tuning) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.Normalize()

	world := ecs.NewWorld()
	clock := system.NewClock()
	stats := &system.Stats{}
	bus := event.NewBus()

	queue := system.NewRequestQueue(cfg.Requests.QueueCapacity, cfg.Requests.Timeout, clock, stats)
	tracker := system.NewGroundStateTracker(cfg, clock, bus)
	coordinator := system.NewMovementCoordinator(cfg, world, queue, tracker, clock, stats)
	physics := system.NewPhysicsEngine(cfg, stats)
	detector := system.NewCollisionDetector(cfg, nil, clock, stats)
	resolver := system.NewCollisionResolver(cfg, detector, tracker, bus, stats)

	return &Engine{
		cfg:         cfg,
		world:       world,
		clock:       clock,
		stats:       stats,
		bus:         bus,
		queue:       queue,
		tracker:     tracker,
		coordinator: coordinator,
		detector:    detector,
		scheduler:   system.NewScheduler(coordinator, physics, detector, resolver, tracker),
	}
}

// Step advances the simulation by exactly one fixed timestep.
func (e *Engine) Step() {
	dt := e.cfg.Dt()
	e.clock.Advance(dt)
	e.scheduler.Update(e.world, dt)
	e.stats.Frames++
}

// StepN runs n frames.
func (e *Engine) StepN(n int) {
	for i := 0; i < n; i++ {
		e.Step()
	}
}

// Enqueue buffers a movement request for the next frame.
func (e *Engine) Enqueue(req system.MovementRequest) (bool, system.Reason) {
	return e.queue.Enqueue(req)
}

// Submit applies a movement request immediately, bypassing the queue.
func (e *Engine) Submit(req system.MovementRequest) system.MovementResponse {
	return e.coordinator.Submit(req)
}

// NewRequest builds a request stamped with the current simulation time.
func (e *Engine) NewRequest(id entity.EntityID, typ system.MovementType, dir entity.Vec2, magnitude float64, priority int) system.MovementRequest {
	return e.coordinator.NewRequest(id, typ, dir, magnitude, priority)
}

// LoadStage instantiates stage geometry into the world and returns
// the spawn point.
func (e *Engine) LoadStage(stage *config.StageConfig) (entity.Vec2, error) {
	return system.LoadStage(e.world, stage)
}

// DestroyEntity removes an entity along with every piece of pipeline
// state that references it, so destroying mid-air or mid-dash leaks
// nothing.
func (e *Engine) DestroyEntity(id entity.EntityID) {
	e.coordinator.ClearEntity(id)
	e.tracker.Forget(id)
	e.world.Destroy(id)
}

// Reset returns the engine to an empty world at t=0. Tuning survives;
// everything else is cleared.
func (e *Engine) Reset() {
	e.world.ForEach(func(ent *entity.Entity) {
		e.coordinator.ClearEntity(ent.ID)
	})
	e.world.Clear()
	e.queue.Clear()
	e.tracker.Reset()
	e.detector.DropHistory()
	e.clock.Reset()
	e.stats.Reset()
}

// ApplyTuning swaps in new tuning values mid-run. All stages read
// through the shared pointer, so the next Step sees the new values.
func (e *Engine) ApplyTuning(cfg *config.Tuning) {
	if cfg == nil {
		return
	}
	cfg.Normalize()
	*e.cfg = *cfg
}

// Dt returns the fixed timestep in seconds.
func (e *Engine) Dt() float64 {
	return e.cfg.Dt()
}

// Config returns the live tuning.
func (e *Engine) Config() *config.Tuning {
	return e.cfg
}

// World returns the entity store.
func (e *Engine) World() *ecs.World {
	return e.world
}

// Bus returns the event bus for ground and collision subscriptions.
func (e *Engine) Bus() *event.Bus {
	return e.bus
}

// Tracker returns the ground state tracker (read side: Info, CanJump).
func (e *Engine) Tracker() *system.GroundStateTracker {
	return e.tracker
}

// Coordinator returns the movement intake stage.
func (e *Engine) Coordinator() *system.MovementCoordinator {
	return e.coordinator
}

// Detector returns the collision detection stage (read side: Records).
func (e *Engine) Detector() *system.CollisionDetector {
	return e.detector
}

// Now returns the current simulation time in seconds.
func (e *Engine) Now() float64 {
	return e.clock.Now()
}

// Stats returns a snapshot of the frame counters.
func (e *Engine) Stats() system.Stats {
	return e.stats.Snapshot()
}
