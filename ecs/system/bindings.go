package system

import (
	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/window"
)

// EntityVisibility shows and hides an entity through its Visibility
// component.
type EntityVisibility struct {
	World  *ecs.World
	Entity ecs.Entity
}

func (v EntityVisibility) SetVisible(visible bool) {
	vis, ok := ecs.Get(v.World, v.Entity, component.VisibilityComponent.Kind())
	if !ok {
		_ = ecs.Add(v.World, v.Entity, component.VisibilityComponent.Kind(), &component.Visibility{Shown: visible})
		return
	}
	vis.Shown = visible
}

// EntityAnimator hands open/close triggers to the AnimationSystem. It
// reports no active controller when the entity is gone, hidden, or has no
// clip for the action.
type EntityAnimator struct {
	World  *ecs.World
	Entity ecs.Entity
}

func (a EntityAnimator) Trigger(action string) bool {
	if !ecs.IsAlive(a.World, a.Entity) {
		return false
	}
	if vis, ok := ecs.Get(a.World, a.Entity, component.VisibilityComponent.Kind()); ok && !vis.Shown {
		return false
	}
	anim, ok := ecs.Get(a.World, a.Entity, component.AnimationComponent.Kind())
	if !ok {
		return false
	}
	if _, ok := anim.Clips[action]; !ok {
		return false
	}
	return ecs.Add(a.World, a.Entity, component.AnimationCommandComponent.Kind(), &component.AnimationCommand{Clip: action}) == nil
}

// Deactivate hides e from outside the window system and lets its panel, if
// any, react.
func Deactivate(w *ecs.World, e ecs.Entity) {
	if vis, ok := ecs.Get(w, e, component.VisibilityComponent.Kind()); ok {
		vis.Shown = false
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		anim.Playing = false
	}
	_ = ecs.Remove(w, e, component.AnimationCommandComponent.Kind())

	if pc, ok := ecs.Get(w, e, component.PanelComponent.Kind()); ok && pc.Machine != nil {
		pc.Machine.Deactivated()
	}
}

// PresentationNotifier snaps Presentation.Progress to the settled value
// whenever a panel reaches Opened or Closed.
type PresentationNotifier struct {
	World  *ecs.World
	Entity ecs.Entity
}

func (n PresentationNotifier) NotifyStateChanged(_ *window.Panel, s window.State) {
	pres, ok := ecs.Get(n.World, n.Entity, component.PresentationComponent.Kind())
	if !ok {
		return
	}
	switch s {
	case window.StateOpened:
		pres.Progress = 1
	case window.StateClosed:
		pres.Progress = 0
	}
}
