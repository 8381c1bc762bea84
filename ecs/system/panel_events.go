package system

import (
	"log/slog"

	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/logging"
)

// PanelEventSystem delivers finished animation clips to the panel on the
// same entity. It runs right after AnimationSystem so a panel settles in the
// tick its clip ends.
type PanelEventSystem struct {
	log *slog.Logger
}

func NewPanelEventSystem() *PanelEventSystem {
	return &PanelEventSystem{log: logging.WithComponent("panel_events")}
}

func (s *PanelEventSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventAnimationFinished {
			continue
		}
		data, ok := evt.Data.(ecs.AnimationFinishedEvent)
		if !ok {
			continue
		}
		pc, ok := ecs.Get(w, data.Entity, component.PanelComponent.Kind())
		if !ok || pc.Machine == nil {
			s.log.Debug("animation finished on non-panel entity", slog.String("entity", data.Entity.String()), slog.String("clip", data.Clip))
			continue
		}
		pc.Machine.AnimationFinished(data.Clip)
	}
}
