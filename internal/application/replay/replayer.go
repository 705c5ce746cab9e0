package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/christianWissmann85/aether-engine/internal/application/system"
)

// Replayer walks a recorded request stream frame by frame. Callers
// ask for each frame's requests in order and feed them back into the
// engine before stepping it.
type Replayer struct {
	data  ReplayData
	frame int
	next  int // index into data.Frames
}

// NewReplayer creates a replayer over loaded data.
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay reads a replay file from disk.
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// NextFrame returns the requests for the current frame and advances.
// Frames recorded with no requests return an empty slice. The second
// return is false once the recording is exhausted.
func (r *Replayer) NextFrame() ([]system.MovementRequest, bool) {
	if r.frame >= r.data.LastFrame {
		return nil, false
	}

	var reqs []system.MovementRequest
	if r.next < len(r.data.Frames) && r.data.Frames[r.next].F == r.frame {
		reqs = r.data.Frames[r.next].Requests
		r.next++
	}
	r.frame++
	return reqs, true
}

// CurrentFrame returns the number of frames already replayed.
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the recording's length in frames, including
// trailing request-free frames.
func (r *Replayer) TotalFrames() int {
	return r.data.LastFrame
}

// Stage returns the stage name the recording was made on.
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset rewinds to the first frame.
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}
