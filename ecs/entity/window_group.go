package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/ecs/system"
	"github.com/milk9111/windowstack/layouts"
	"github.com/milk9111/windowstack/window"
)

var (
	defaultPanelColor   = color.NRGBA{R: 0x30, G: 0x34, B: 0x48, A: 0xff}
	defaultBlockerColor = color.NRGBA{A: 0x60}
)

const blockerLayer = 1 << 10

// WindowGroupEntities are the entities built for one window group. Panels
// is indexed like the group's slots; holes are zero.
type WindowGroupEntities struct {
	Name       string
	Group      *window.Group
	Entity     ecs.Entity
	Panels     []ecs.Entity
	Background ecs.Entity
	Blocker    ecs.Entity
}

type WindowGroupHooks struct {
	OnOpened    func(index int)
	OnClosedAll func()
}

func NewWindowGroupFromLayout(world *ecs.World, filename string, hooks WindowGroupHooks) (*WindowGroupEntities, error) {
	spec, err := layouts.LoadWindowGroupSpec(filename)
	if err != nil {
		return nil, fmt.Errorf("window group: failed to load layout: %w", err)
	}
	return NewWindowGroup(world, spec, hooks)
}

func NewWindowGroup(world *ecs.World, spec *layouts.WindowGroupSpec, hooks WindowGroupHooks) (*WindowGroupEntities, error) {
	if world == nil {
		return nil, fmt.Errorf("window group: world is nil")
	}
	if spec == nil {
		return nil, fmt.Errorf("window group: spec is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("window group: %w", err)
	}
	strategy, err := spec.ParsedStrategy()
	if err != nil {
		return nil, fmt.Errorf("window group: %w", err)
	}

	out := &WindowGroupEntities{Name: spec.Name, Panels: make([]ecs.Entity, len(spec.Panels))}
	fail := func(err error) (*WindowGroupEntities, error) {
		DestroyWindowGroup(world, out)
		return nil, err
	}

	windows := make([]window.Transitioner, len(spec.Panels))
	for i, ps := range spec.Panels {
		if ps == nil {
			continue
		}
		e, p, err := newPanel(world, ps)
		if err != nil {
			return fail(fmt.Errorf("window group: panel %q: %w", ps.Name, err))
		}
		out.Panels[i] = e
		windows[i] = p
	}

	var background window.Transitioner
	if spec.Background != nil {
		e, p, err := newPanel(world, spec.Background)
		if err != nil {
			return fail(fmt.Errorf("window group: background: %w", err))
		}
		if err := ecs.Add(world, e, component.BackgroundTagComponent.Kind(), &component.BackgroundTag{}); err != nil {
			return fail(fmt.Errorf("window group: failed to add background tag: %w", err))
		}
		out.Background = e
		background = p
	}

	var blocker window.Visibility
	if spec.Blocker != nil {
		e, err := newBlocker(world, spec.Blocker)
		if err != nil {
			return fail(fmt.Errorf("window group: blocker: %w", err))
		}
		out.Blocker = e
		blocker = system.EntityVisibility{World: world, Entity: e}
	}

	out.Group = window.NewGroup(window.GroupConfig{
		Name:        spec.Name,
		Strategy:    strategy,
		Windows:     windows,
		Background:  background,
		Blocker:     blocker,
		OnOpened:    hooks.OnOpened,
		OnClosedAll: hooks.OnClosedAll,
	})

	out.Entity = ecs.CreateEntity(world)
	if err := ecs.Add(world, out.Entity, component.WindowGroupComponent.Kind(), &component.WindowGroup{
		Name:  spec.Name,
		Group: out.Group,
	}); err != nil {
		return fail(fmt.Errorf("window group: failed to add window group component: %w", err))
	}

	return out, nil
}

// DestroyWindowGroup removes every entity built for g.
func DestroyWindowGroup(world *ecs.World, g *WindowGroupEntities) {
	if world == nil || g == nil {
		return
	}
	for _, e := range g.Panels {
		if e != 0 {
			ecs.DestroyEntity(world, e)
		}
	}
	for _, e := range []ecs.Entity{g.Background, g.Blocker, g.Entity} {
		if e != 0 {
			ecs.DestroyEntity(world, e)
		}
	}
}

func newPanel(world *ecs.World, spec *layouts.PanelSpec) (_ ecs.Entity, _ *window.Panel, err error) {
	mode, err := spec.AnimationMode()
	if err != nil {
		return 0, nil, err
	}
	autoVisible := spec.AutoVisible()

	entity := ecs.CreateEntity(world)
	defer func() {
		if err != nil {
			ecs.DestroyEntity(world, entity)
		}
	}()

	if err := ecs.Add(world, entity, component.VisibilityComponent.Kind(), &component.Visibility{
		Shown: !autoVisible,
	}); err != nil {
		return 0, nil, fmt.Errorf("failed to add visibility component: %w", err)
	}

	title := spec.Title
	if title == "" {
		title = spec.Name
	}
	if err := ecs.Add(world, entity, component.PresentationComponent.Kind(), &component.Presentation{
		Title:  title,
		Color:  spec.Color.Or(defaultPanelColor),
		X:      spec.Rect.X,
		Y:      spec.Rect.Y,
		W:      spec.Rect.W,
		H:      spec.Rect.H,
		Layer:  spec.Layer,
		SlideX: spec.SlideX,
	}); err != nil {
		return 0, nil, fmt.Errorf("failed to add presentation component: %w", err)
	}

	switch mode {
	case window.AnimationExternal:
		clips := map[string]component.AnimationClip{}
		for name, clip := range map[string]layouts.ClipSpec{
			window.ActionOpen.String():  spec.Animation.Open,
			window.ActionClose.String(): spec.Animation.Close,
		} {
			if clip.Frames <= 0 {
				continue
			}
			clips[name] = component.AnimationClip{Name: name, FrameCount: clip.Frames, FPS: clip.FPS}
		}
		if err := ecs.Add(world, entity, component.AnimationComponent.Kind(), &component.Animation{Clips: clips}); err != nil {
			return 0, nil, fmt.Errorf("failed to add animation component: %w", err)
		}
	case window.AnimationScript:
		if err := ecs.Add(world, entity, component.PanelScriptComponent.Kind(), &component.PanelScript{Path: spec.Script}); err != nil {
			return 0, nil, fmt.Errorf("failed to add panel script component: %w", err)
		}
	}

	panel := window.NewPanel(window.PanelConfig{
		Name:           spec.Name,
		Mode:           mode,
		AutoVisibility: autoVisible,
		Animator:       system.EntityAnimator{World: world, Entity: entity},
		Visibility:     system.EntityVisibility{World: world, Entity: entity},
		Notifiers:      []window.StateNotifier{system.PresentationNotifier{World: world, Entity: entity}},
	})
	if err := ecs.Add(world, entity, component.PanelComponent.Kind(), &component.Panel{Machine: panel}); err != nil {
		return 0, nil, fmt.Errorf("failed to add panel component: %w", err)
	}

	return entity, panel, nil
}

func newBlocker(world *ecs.World, spec *layouts.BlockerSpec) (_ ecs.Entity, err error) {
	entity := ecs.CreateEntity(world)
	defer func() {
		if err != nil {
			ecs.DestroyEntity(world, entity)
		}
	}()

	if err := ecs.Add(world, entity, component.VisibilityComponent.Kind(), &component.Visibility{}); err != nil {
		return 0, fmt.Errorf("failed to add visibility component: %w", err)
	}
	if err := ecs.Add(world, entity, component.BlockerTagComponent.Kind(), &component.BlockerTag{}); err != nil {
		return 0, fmt.Errorf("failed to add blocker tag: %w", err)
	}
	if err := ecs.Add(world, entity, component.PresentationComponent.Kind(), &component.Presentation{
		Color:    spec.Color.Or(defaultBlockerColor),
		Layer:    blockerLayer,
		Progress: 1,
	}); err != nil {
		return 0, fmt.Errorf("failed to add presentation component: %w", err)
	}

	return entity, nil
}
