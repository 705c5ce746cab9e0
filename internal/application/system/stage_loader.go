package system

import (
	"fmt"

	"github.com/christianWissmann85/aether-engine/internal/domain/entity"
	"github.com/christianWissmann85/aether-engine/internal/ecs"
	"github.com/christianWissmann85/aether-engine/internal/infrastructure/config"
)

// LoadStage instantiates a stage document as static entities in the
// world and returns the spawn point. Unknown body kinds fail the
// load; a half-loaded stage is worse than no stage.
func LoadStage(w *ecs.World, cfg *config.StageConfig) (entity.Vec2, error) {
	for i, body := range cfg.Bodies {
		layer, err := layerForKind(body.Kind)
		if err != nil {
			return entity.Vec2{}, fmt.Errorf("stage %s body %d: %w", cfg.ID, i, err)
		}
		if body.Width <= 0 || body.Height <= 0 {
			return entity.Vec2{}, fmt.Errorf("stage %s body %d: non-positive size %gx%g", cfg.ID, i, body.Width, body.Height)
		}
		w.SpawnStatic(layer,
			entity.Vec2{X: body.X, Y: body.Y},
			entity.Vec2{X: body.Width, Y: body.Height})
	}

	return entity.Vec2{X: cfg.Spawn.X, Y: cfg.Spawn.Y}, nil
}

func layerForKind(kind string) (entity.Layer, error) {
	switch kind {
	case "solid":
		return entity.LayerPlatform, nil
	case "oneway":
		return entity.LayerOneWayPlatform, nil
	case "hazard":
		return entity.LayerHazard, nil
	default:
		return entity.LayerNone, fmt.Errorf("unknown body kind %q", kind)
	}
}
