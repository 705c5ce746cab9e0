// Package replay records and plays back movement request streams.
//
// The simulation is deterministic given a stage, tuning and the exact
// per-frame request sequence, so a replay file is just that sequence.
package replay

import (
	"github.com/christianWissmann85/aether-engine/internal/application/system"
)

// Version identifies the replay file format.
const Version = "1.0"

// FrameRequests holds the requests submitted during one frame.
// Frames with no requests are omitted from the file.
type FrameRequests struct {
	F        int                      `json:"f"`
	Requests []system.MovementRequest `json:"requests"`
}

// ReplayData is the full content of a replay file.
type ReplayData struct {
	Version   string          `json:"version"`
	Stage     string          `json:"stage"`
	Tuning    string          `json:"tuning,omitempty"`
	StartTime string          `json:"startTime"`
	Frames    []FrameRequests `json:"frames"`
	LastFrame int             `json:"lastFrame"`
}
