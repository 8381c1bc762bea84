package system

import (
	"io"
	"log/slog"
	"testing"

	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/window"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type panelEntityOpts struct {
	mode           window.AnimationMode
	autoVisibility bool
	shown          bool
	frames         int
	script         string
}

// newPanelEntity builds an entity carrying a panel machine wired through the
// entity bindings, with "Open" and "Close" clips of opts.frames at 60 FPS.
func newPanelEntity(t *testing.T, w *ecs.World, name string, opts panelEntityOpts) (ecs.Entity, *window.Panel) {
	t.Helper()

	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.VisibilityComponent.Kind(), &component.Visibility{Shown: opts.shown}))
	require.NoError(t, ecs.Add(w, e, component.PresentationComponent.Kind(), &component.Presentation{Title: name}))
	if opts.frames > 0 {
		require.NoError(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
			Clips: map[string]component.AnimationClip{
				"Open":  {Name: "Open", FrameCount: opts.frames, FPS: 60},
				"Close": {Name: "Close", FrameCount: opts.frames, FPS: 60},
			},
		}))
	}
	if opts.script != "" {
		require.NoError(t, ecs.Add(w, e, component.PanelScriptComponent.Kind(), &component.PanelScript{Path: opts.script}))
	}

	p := window.NewPanel(window.PanelConfig{
		Name:           name,
		Mode:           opts.mode,
		AutoVisibility: opts.autoVisibility,
		Animator:       EntityAnimator{World: w, Entity: e},
		Visibility:     EntityVisibility{World: w, Entity: e},
		Notifiers:      []window.StateNotifier{PresentationNotifier{World: w, Entity: e}},
		Logger:         quietLogger,
	})
	require.NoError(t, ecs.Add(w, e, component.PanelComponent.Kind(), &component.Panel{Machine: p}))
	return e, p
}

func shown(t *testing.T, w *ecs.World, e ecs.Entity) bool {
	t.Helper()
	vis, ok := ecs.Get(w, e, component.VisibilityComponent.Kind())
	require.True(t, ok)
	return vis.Shown
}

func progress(t *testing.T, w *ecs.World, e ecs.Entity) float64 {
	t.Helper()
	pres, ok := ecs.Get(w, e, component.PresentationComponent.Kind())
	require.True(t, ok)
	return pres.Progress
}

func newTestScheduler(load ScriptLoader) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewAnimationSystem(),
		NewPanelEventSystem(),
		NewScriptSystem(load),
		NewWindowSystem(),
	)
}

func tickN(s *ecs.Scheduler, w *ecs.World, n int) {
	for i := 0; i < n; i++ {
		s.Update(w)
	}
}
