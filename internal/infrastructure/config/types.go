package config

// Tuning is the root config for tuning.yaml. Every value is a plain
// parameter; there is no CLI or network configuration surface.
type Tuning struct {
	World     WorldSettings     `yaml:"world"`
	Physics   PhysicsSettings   `yaml:"physics"`
	Movement  MovementSettings  `yaml:"movement"`
	Jump      JumpSettings      `yaml:"jump"`
	Dash      DashSettings      `yaml:"dash"`
	Collision CollisionSettings `yaml:"collision"`
	Requests  RequestSettings   `yaml:"requests"`
}

// WorldSettings controls the global simulation cadence.
type WorldSettings struct {
	TimeScale float64 `yaml:"timeScale"` // 1.0 = realtime
	Framerate int     `yaml:"framerate"` // fixed steps per second
}

// PhysicsSettings controls integration.
type PhysicsSettings struct {
	GravityX         float64 `yaml:"gravityX"`
	GravityY         float64 `yaml:"gravityY"`         // px/s², positive is down
	TerminalVelocity float64 `yaml:"terminalVelocity"` // px/s, vertical clamp both ways
	MaxSpeed         float64 `yaml:"maxSpeed"`         // px/s, hard horizontal clamp; must clear dash speed
	GroundFriction   float64 `yaml:"groundFriction"`   // per-frame horizontal multiplier, < 1
	AirResistance    float64 `yaml:"airResistance"`    // drag coefficient, force = -c*mass*v
	MicroVelocity    float64 `yaml:"microVelocity"`    // px/s, below this grounded X velocity snaps to 0
}

// MovementSettings controls walk steering.
type MovementSettings struct {
	WalkSpeed    float64 `yaml:"walkSpeed"`    // px/s target at magnitude 1
	Acceleration float64 `yaml:"acceleration"` // px/s² toward target
	Deceleration float64 `yaml:"deceleration"` // px/s² toward stop
	AirControl   float64 `yaml:"airControl"`   // 0..1 steering multiplier while airborne
}

// JumpSettings controls jumping and the coyote window.
type JumpSettings struct {
	Speed         float64 `yaml:"speed"`         // px/s initial upward velocity
	CoyoteTime    float64 `yaml:"coyoteTime"`    // seconds
	CutMultiplier float64 `yaml:"cutMultiplier"` // upward velocity retained on early release
}

// DashSettings controls the dash burst.
type DashSettings struct {
	Speed    float64 `yaml:"speed"`    // px/s horizontal burst
	Duration float64 `yaml:"duration"` // seconds of gravity suspension
	Cooldown float64 `yaml:"cooldown"` // seconds between dashes
}

// CollisionSettings controls detection and resolution.
type CollisionSettings struct {
	Enabled      bool    `yaml:"enabled"`
	CellSize     float64 `yaml:"cellSize"`     // spatial hash cell, px
	MaxPerFrame  int     `yaml:"maxPerFrame"`  // collision budget before truncation
	GroundNormal float64 `yaml:"groundNormal"` // min upward normal Y magnitude to count as ground
}

// RequestSettings controls the movement request queue.
type RequestSettings struct {
	QueueCapacity int     `yaml:"queueCapacity"` // per entity
	Timeout       float64 `yaml:"timeout"`       // seconds before a request expires
}

// Default returns the tuning the engine ships with.
func Default() *Tuning {
	return &Tuning{
		World: WorldSettings{
			TimeScale: 1.0,
			Framerate: 60,
		},
		Physics: PhysicsSettings{
			GravityX:         0,
			GravityY:         980,
			TerminalVelocity: 980,
			MaxSpeed:         600,
			GroundFriction:   0.85,
			AirResistance:    0.02,
			MicroVelocity:    1.0,
		},
		Movement: MovementSettings{
			WalkSpeed:    240,
			Acceleration: 1800,
			Deceleration: 2200,
			AirControl:   0.8,
		},
		Jump: JumpSettings{
			Speed:         420,
			CoyoteTime:    0.150,
			CutMultiplier: 0.5,
		},
		Dash: DashSettings{
			Speed:    480,
			Duration: 0.18,
			Cooldown: 0.8,
		},
		Collision: CollisionSettings{
			Enabled:      true,
			CellSize:     64,
			MaxPerFrame:  128,
			GroundNormal: 0.7,
		},
		Requests: RequestSettings{
			QueueCapacity: 32,
			Timeout:       0.100,
		},
	}
}

// Normalize clamps out-of-range values to usable ones instead of
// rejecting the document. Loaded configs always pass through here.
func (t *Tuning) Normalize() {
	if t.World.TimeScale <= 0 {
		t.World.TimeScale = 1.0
	}
	if t.World.Framerate <= 0 {
		t.World.Framerate = 60
	}
	if t.Physics.TerminalVelocity <= 0 {
		t.Physics.TerminalVelocity = Default().Physics.TerminalVelocity
	}
	if t.Physics.MaxSpeed <= 0 {
		t.Physics.MaxSpeed = Default().Physics.MaxSpeed
	}
	if t.Physics.GroundFriction < 0 {
		t.Physics.GroundFriction = 0
	}
	if t.Physics.GroundFriction >= 1 {
		t.Physics.GroundFriction = 0.99
	}
	if t.Physics.AirResistance < 0 {
		t.Physics.AirResistance = 0
	}
	if t.Physics.MicroVelocity < 0 {
		t.Physics.MicroVelocity = 0
	}
	if t.Movement.AirControl < 0 {
		t.Movement.AirControl = 0
	}
	if t.Movement.AirControl > 1 {
		t.Movement.AirControl = 1
	}
	if t.Jump.CoyoteTime < 0 {
		t.Jump.CoyoteTime = 0
	}
	if t.Jump.CutMultiplier < 0 || t.Jump.CutMultiplier > 1 {
		t.Jump.CutMultiplier = Default().Jump.CutMultiplier
	}
	if t.Collision.CellSize <= 0 {
		t.Collision.CellSize = Default().Collision.CellSize
	}
	if t.Collision.MaxPerFrame <= 0 {
		t.Collision.MaxPerFrame = Default().Collision.MaxPerFrame
	}
	if t.Collision.GroundNormal <= 0 || t.Collision.GroundNormal > 1 {
		t.Collision.GroundNormal = Default().Collision.GroundNormal
	}
	if t.Requests.QueueCapacity <= 0 {
		t.Requests.QueueCapacity = Default().Requests.QueueCapacity
	}
	if t.Requests.Timeout <= 0 {
		t.Requests.Timeout = Default().Requests.Timeout
	}
}

// Dt returns the fixed timestep in seconds, with the global time
// scale applied.
func (t *Tuning) Dt() float64 {
	return t.World.TimeScale / float64(t.World.Framerate)
}
