package system

import (
	"log/slog"

	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/logging"
	"github.com/milk9111/windowstack/window"
)

// RequestWindow queues a navigation request for the named group. It is
// applied on the next WindowSystem update.
func RequestWindow(w *ecs.World, group string, op component.WindowOp, index int) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.WindowRequestComponent.Kind(), &component.WindowRequest{
		Group: group,
		Op:    op,
		Index: index,
	})
	return e
}

// WindowSystem resumes every group's in-flight transition, then applies
// queued WindowRequests in the order they were made.
type WindowSystem struct {
	log *slog.Logger
}

func NewWindowSystem() *WindowSystem {
	return &WindowSystem{log: logging.WithComponent("window_system")}
}

func (s *WindowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	groups := map[string]*window.Group{}
	ecs.ForEach(w, component.WindowGroupComponent.Kind(), func(_ ecs.Entity, wg *component.WindowGroup) {
		if wg.Group == nil {
			return
		}
		wg.Group.Update()
		groups[wg.Name] = wg.Group
	})

	ecs.ForEach(w, component.WindowRequestComponent.Kind(), func(e ecs.Entity, req *component.WindowRequest) {
		defer ecs.DestroyEntity(w, e)

		g, ok := groups[req.Group]
		if !ok {
			s.log.Warn("window request for unknown group", slog.String("group", req.Group), slog.String("op", string(req.Op)))
			return
		}
		s.apply(g, req)
	})
}

func (s *WindowSystem) apply(g *window.Group, req *component.WindowRequest) {
	switch req.Op {
	case component.WindowOpOpen:
		g.Open(req.Index)
	case component.WindowOpNext:
		g.Next()
	case component.WindowOpBack:
		g.Back()
	case component.WindowOpCloseAll:
		g.CloseAll()
	case component.WindowOpResetHistory:
		g.ResetHistory()
	default:
		s.log.Warn("unknown window op", slog.String("group", req.Group), slog.String("op", string(req.Op)))
	}
}
