package system

// Clock is the shared simulation clock. The engine advances it once
// per frame; every component that needs a timestamp reads it from
// here, so there is a single notion of "now" per frame.
type Clock struct {
	now float64
}

// NewClock creates a clock at t=0.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current simulation time in seconds.
func (c *Clock) Now() float64 {
	return c.now
}

// Advance moves the clock forward by dt seconds.
func (c *Clock) Advance(dt float64) {
	c.now += dt
}

// Reset returns the clock to t=0.
func (c *Clock) Reset() {
	c.now = 0
}
