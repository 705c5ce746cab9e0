// Package sandbox is the interactive test scene: one controllable
// body, stage geometry from config, live tuning reload and request
// recording. It exists to poke at the movement pipeline, not to be a
// game.
package sandbox

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/christianWissmann85/aether-engine/internal/application/game"
	"github.com/christianWissmann85/aether-engine/internal/application/replay"
	"github.com/christianWissmann85/aether-engine/internal/application/scene"
	"github.com/christianWissmann85/aether-engine/internal/application/state"
	"github.com/christianWissmann85/aether-engine/internal/application/system"
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorSolid    = color.RGBA{80, 80, 100, 255}
	colorOneWay   = color.RGBA{100, 140, 100, 255}
	colorHazard   = color.RGBA{200, 50, 50, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorAirborne = color.RGBA{100, 160, 220, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
)

// Config carries everything the sandbox scene needs besides the
// engine itself.
type Config struct {
	Stage      *config.StageConfig
	Loader     *config.Loader   // tuning reload source; nil disables hot reload
	WatchDir   string           // config dir to watch; empty disables
	RecordPath string           // replay save target; empty disables recording
	Playback   *replay.Replayer // non-nil runs in replay mode
	Input      InputReader      // nil defaults to the keyboard
	ScreenW    int
	ScreenH    int
}

// Sandbox drives one player entity through the engine from keyboard
// input or a replay stream.
type Sandbox struct {
	engine *game.Engine
	cfg    Config

	input    InputReader
	recorder *replay.Recorder
	watcher  *config.Watcher

	playerID entity.EntityID
	spawn    entity.Vec2
	facing   float64 // last horizontal intent, for dash direction
	simState state.SimState
}

// New creates the sandbox scene. The engine's world is populated on
// OnEnter, not here.
func New(engine *game.Engine, cfg Config) *Sandbox {
	in := cfg.Input
	if in == nil {
		in = Keyboard{}
	}
	s := &Sandbox{
		engine:   engine,
		cfg:      cfg,
		input:    in,
		facing:   1,
		simState: state.StateRunning,
	}
	if cfg.Playback != nil {
		s.simState = state.StateReplaying
	}
	return s
}

// OnEnter implements scene.Scene: builds the world and starts the
// optional config watcher and recorder.
func (s *Sandbox) OnEnter() {
	s.respawn()

	if s.cfg.RecordPath != "" && s.cfg.Playback == nil {
		s.recorder = replay.NewRecorder(s.cfg.Stage.ID)
		log.Printf("recording to %s", s.cfg.RecordPath)
	}

	if s.cfg.WatchDir != "" && s.cfg.Loader != nil {
		w, err := config.NewWatcher(s.cfg.WatchDir)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			s.watcher = w
		}
	}
}

// OnExit implements scene.Scene.
func (s *Sandbox) OnExit() {
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
	s.saveRecording()
}

// Update implements scene.Scene.
func (s *Sandbox) Update(dt float64) (scene.Scene, error) {
	in := s.input.Read()
	s.pollTuningReload()

	if in.PausePressed {
		s.togglePause()
	}
	if in.ResetPressed {
		s.reset()
	}
	if in.SavePressed {
		s.saveRecording()
	}

	switch s.simState {
	case state.StatePaused:
		if in.StepPressed {
			s.simState = state.StateStepping
		}
		return nil, nil
	case state.StateStepping:
		s.engine.Step()
		s.simState = state.StatePaused
		return nil, nil
	case state.StateReplaying:
		reqs, ok := s.cfg.Playback.NextFrame()
		if !ok {
			s.simState = state.StatePaused
			return nil, nil
		}
		for _, req := range reqs {
			s.engine.Enqueue(req)
		}
	default:
		s.applyInput(in)
		if s.recorder != nil {
			s.recorder.EndFrame()
		}
	}

	s.engine.Step()
	return nil, nil
}

// applyInput turns held keys into this frame's movement requests.
func (s *Sandbox) applyInput(in InputState) {
	switch {
	case in.Left && !in.Right:
		s.facing = -1
		s.enqueue(system.MoveWalk, entity.Vec2{X: -1}, 1, 0)
	case in.Right && !in.Left:
		s.facing = 1
		s.enqueue(system.MoveWalk, entity.Vec2{X: 1}, 1, 0)
	default:
		s.enqueue(system.MoveStop, entity.Vec2{}, 0, 0)
	}

	if in.JumpPressed {
		s.enqueue(system.MoveJump, entity.Vec2{Y: -1}, 1, 1)
	}
	if in.JumpReleased {
		s.enqueue(system.MoveStop, entity.Vec2{Y: -1}, 0, 1)
	}
	if in.DashPressed {
		s.enqueue(system.MoveDash, entity.Vec2{X: s.facing}, 1, 2)
	}
}

func (s *Sandbox) enqueue(typ system.MovementType, dir entity.Vec2, magnitude float64, priority int) {
	req := s.engine.NewRequest(s.playerID, typ, dir, magnitude, priority)
	if ok, reason := s.engine.Enqueue(req); !ok {
		log.Printf("request dropped: %s", reason)
		return
	}
	if s.recorder != nil {
		s.recorder.Record(req)
	}
}

func (s *Sandbox) togglePause() {
	switch s.simState {
	case state.StateRunning:
		s.simState = state.StatePaused
	case state.StatePaused, state.StateStepping:
		s.simState = state.StateRunning
	}
}

func (s *Sandbox) reset() {
	s.engine.Reset()
	s.respawn()
	if s.cfg.Playback != nil {
		s.cfg.Playback.Reset()
		s.simState = state.StateReplaying
	}
	if s.recorder != nil {
		s.recorder = replay.NewRecorder(s.cfg.Stage.ID)
	}
}

func (s *Sandbox) respawn() {
	spawn, err := s.engine.LoadStage(s.cfg.Stage)
	if err != nil {
		log.Printf("stage load failed: %v", err)
		spawn = entity.Vec2{X: 100, Y: 100}
	}
	s.spawn = spawn
	player := s.engine.World().SpawnDynamic(entity.LayerPlayer, spawn, entity.Vec2{X: 16, Y: 24}, 1)
	s.playerID = player.ID
}

// pollTuningReload drains watcher events without blocking the frame.
func (s *Sandbox) pollTuningReload() {
	if s.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case <-s.watcher.Events:
			reload = true
			continue
		case err := <-s.watcher.Errors:
			log.Printf("config watch error: %v", err)
			continue
		default:
		}
		break
	}
	if !reload {
		return
	}

	tuning, err := s.cfg.Loader.LoadTuning()
	if err != nil {
		log.Printf("tuning reload failed: %v", err)
		return
	}
	s.engine.ApplyTuning(tuning)
	log.Printf("tuning reloaded")
}

func (s *Sandbox) saveRecording() {
	if s.recorder == nil || s.recorder.FrameCount() == 0 {
		return
	}
	path := s.cfg.RecordPath
	if path == "" {
		path = replay.GenerateFilename()
	}
	if err := s.recorder.Save(path); err != nil {
		log.Printf("failed to save recording: %v", err)
	} else {
		log.Printf("recording saved: %s (%d frames)", path, s.recorder.FrameCount())
	}
}

// Draw implements scene.Scene.
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	s.engine.World().ForEach(func(e *entity.Entity) {
		b := e.Bounds()
		ebitenutil.DrawRect(screen, b.X, b.Y, b.W, b.H, s.entityColor(e))
	})

	s.drawOverlay(screen)

	if s.simState == state.StatePaused || s.simState == state.StateStepping {
		ebitenutil.DrawRect(screen, 0, 0, float64(s.cfg.ScreenW), float64(s.cfg.ScreenH), colorOverlay)
		ebitenutil.DebugPrintAt(screen, "PAUSED  (N: step, ESC: resume)", s.cfg.ScreenW/2-90, s.cfg.ScreenH/2)
	}
}

func (s *Sandbox) entityColor(e *entity.Entity) color.Color {
	switch e.Layer {
	case entity.LayerPlatform:
		return colorSolid
	case entity.LayerOneWayPlatform:
		return colorOneWay
	case entity.LayerHazard:
		return colorHazard
	case entity.LayerPlayer:
		if gi, ok := s.engine.Tracker().Info(e.ID); ok && gi.IsGrounded {
			return colorPlayer
		}
		return colorAirborne
	default:
		return colorPlayer
	}
}

func (s *Sandbox) drawOverlay(screen *ebiten.Image) {
	stats := s.engine.Stats()
	var pos, vel entity.Vec2
	grounded := false
	if player, ok := s.engine.World().Get(s.playerID); ok {
		pos = player.Position()
		vel = player.Body.Velocity()
		gi, _ := s.engine.Tracker().Info(s.playerID)
		grounded = gi.IsGrounded
	}

	text := fmt.Sprintf(
		"%s  t=%.2fs  frame=%d\npos=(%.1f, %.1f) vel=(%.1f, %.1f) grounded=%v\nreq ok/rej/coal=%d/%d/%d  col det/res/trunc=%d/%d/%d\nA/D: move  W: jump  Shift: dash  R: reset  ESC: pause  F5: save",
		s.simState, s.engine.Now(), stats.Frames,
		pos.X, pos.Y, vel.X, vel.Y, grounded,
		stats.RequestsAccepted, stats.RequestsRejected, stats.RequestsCoalesced,
		stats.CollisionsDetected, stats.CollisionsResolved, stats.CollisionsTruncated,
	)
	ebitenutil.DebugPrint(screen, text)
}
