package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/christianWissmann85/aether-engine/internal/application/system"
)

// Recorder captures the request stream of a running session. Call
// Record for every request the session submits, EndFrame once per
// frame, and Save when done.
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
	current   FrameRequests
}

// NewRecorder starts recording for the named stage.
func NewRecorder(stage string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameRequests, 0, 256),
		},
		recording: true,
	}
}

// Record captures one request for the current frame. The copy is
// taken before the queue touches it, so what is saved is exactly what
// was asked.
func (r *Recorder) Record(req system.MovementRequest) {
	if !r.recording {
		return
	}
	r.current.Requests = append(r.current.Requests, req)
}

// EndFrame closes the current frame. Frames without requests leave no
// entry; only the frame counter moves.
func (r *Recorder) EndFrame() {
	if !r.recording {
		return
	}
	if len(r.current.Requests) > 0 {
		r.current.F = r.frame
		r.data.Frames = append(r.data.Frames, r.current)
		r.current = FrameRequests{}
	}
	r.frame++
}

// Stop ends recording. Further Record and EndFrame calls are no-ops.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording reports whether the recorder still accepts frames.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of frames that carried requests.
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded data as saved so far.
func (r *Recorder) Data() ReplayData {
	data := r.data
	data.LastFrame = r.frame
	return data
}

// Save writes the recording as indented JSON.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.Data()); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// GenerateFilename creates a timestamped replay filename.
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
