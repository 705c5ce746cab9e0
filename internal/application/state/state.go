package state

// SimState is the sandbox's run mode for the simulation loop.
type SimState int

const (
	StateRunning SimState = iota
	StatePaused
	StateStepping // paused, advancing one frame per step key
	StateReplaying
)

// String returns the string representation of the state.
func (s SimState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateStepping:
		return "Stepping"
	case StateReplaying:
		return "Replaying"
	default:
		return "Unknown"
	}
}
