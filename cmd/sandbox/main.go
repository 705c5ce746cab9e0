// The sandbox binary runs the movement engine interactively: a
// controllable body on YAML-defined stage geometry, with request
// recording, replay playback and live tuning reload. With -headless
// it replays a recording without a window and prints the run summary.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/christianWissmann85/aether-engine/internal/application/game"
	"github.com/christianWissmann85/aether-engine/internal/application/replay"
	"github.com/christianWissmann85/aether-engine/internal/application/scene/sandbox"
	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

func main() {
	configDir := flag.String("config", "", "config directory (default: embedded configs)")
	stageName := flag.String("stage", "demo", "stage name under stages/")
	recordPath := flag.String("record", "", "record the session's requests to this file")
	replayPath := flag.String("replay", "", "play back a recorded session")
	headless := flag.Bool("headless", false, "run the replay without a window and print a summary")
	frames := flag.Int("frames", 0, "headless: extra frames to run past the recording (settling time)")
	flag.Parse()

	loader, watchDir, err := buildLoader(*configDir)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	tuning, err := loader.LoadTuning()
	if err != nil {
		log.Fatalf("tuning: %v", err)
	}
	stage, err := loader.LoadStage(*stageName)
	if err != nil {
		log.Fatalf("stage: %v", err)
	}

	var playback *replay.Replayer
	if *replayPath != "" {
		data, err := replay.LoadReplay(*replayPath)
		if err != nil {
			log.Fatalf("replay: %v", err)
		}
		playback = replay.NewReplayer(*data)
		log.Printf("replaying %s: stage %s, %d frames", *replayPath, data.Stage, data.LastFrame)
	}

	if *headless {
		if playback == nil {
			log.Fatal("-headless requires -replay")
		}
		if err := runHeadless(tuning, stage, playback, *frames); err != nil {
			log.Fatalf("headless run: %v", err)
		}
		return
	}

	engine := game.NewEngine(tuning)
	scn := sandbox.New(engine, sandbox.Config{
		Stage:      stage,
		Loader:     loader,
		WatchDir:   watchDir,
		RecordPath: *recordPath,
		Playback:   playback,
		ScreenW:    int(stage.Size.Width),
		ScreenH:    int(stage.Size.Height),
	})
	shell := game.New(scn, int(stage.Size.Width), int(stage.Size.Height), engine.Dt())

	ebiten.SetWindowSize(int(stage.Size.Width)*2, int(stage.Size.Height)*2)
	ebiten.SetWindowTitle("Aether Engine Sandbox")
	ebiten.SetTPS(tuning.World.Framerate)

	if err := ebiten.RunGame(shell); err != nil {
		log.Fatal(err)
	}
}

// buildLoader picks the config source: a directory when given (which
// also enables hot reload), the embedded defaults otherwise.
func buildLoader(dir string) (*config.Loader, string, error) {
	if dir != "" {
		return config.NewLoader(dir), dir, nil
	}
	sub, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, "", err
	}
	return config.NewFSLoader(sub, "configs"), "", nil
}

// runHeadless drives a replay through a fresh engine with no window
// and prints where the body ended up plus the frame counters.
func runHeadless(tuning *config.Tuning, stage *config.StageConfig, playback *replay.Replayer, extraFrames int) error {
	engine := game.NewEngine(tuning)
	spawn, err := engine.LoadStage(stage)
	if err != nil {
		return err
	}
	player := engine.World().SpawnDynamic(entity.LayerPlayer, spawn, entity.Vec2{X: 16, Y: 24}, 1)

	for {
		reqs, ok := playback.NextFrame()
		if !ok {
			break
		}
		for _, req := range reqs {
			engine.Enqueue(req)
		}
		engine.Step()
	}
	engine.StepN(extraFrames)

	stats := engine.Stats()
	pos := player.Position()
	fmt.Printf("frames: %d  t=%.2fs\n", stats.Frames, engine.Now())
	fmt.Printf("player: pos=(%.2f, %.2f) vel=(%.2f, %.2f)\n",
		pos.X, pos.Y, player.Body.Velocity().X, player.Body.Velocity().Y)
	fmt.Printf("requests: submitted=%d accepted=%d rejected=%d expired=%d coalesced=%d\n",
		stats.RequestsSubmitted, stats.RequestsAccepted, stats.RequestsRejected,
		stats.RequestsExpired, stats.RequestsCoalesced)
	fmt.Printf("collisions: detected=%d resolved=%d truncated=%d\n",
		stats.CollisionsDetected, stats.CollisionsResolved, stats.CollisionsTruncated)
	return nil
}
