package system

import (
	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/window"
)

const ticksPerSecond = 60.0

// AnimationSystem is the animation service behind EntityAnimator. It starts
// clips from AnimationCommands, advances playing clips of shown entities,
// and pushes an AnimationFinishedEvent when a non-looping clip ends.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.AnimationCommandComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, cmd *component.AnimationCommand, anim *component.Animation) {
		_ = ecs.Remove(w, e, component.AnimationCommandComponent.Kind())
		if _, ok := anim.Clips[cmd.Clip]; !ok {
			return
		}
		anim.Current = cmd.Clip
		anim.Frame = 0
		anim.FrameTimer = 0
		anim.Playing = true
	})

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		if !anim.Playing {
			return
		}
		if vis, ok := ecs.Get(w, e, component.VisibilityComponent.Kind()); ok && !vis.Shown {
			return
		}

		clip, ok := anim.Clips[anim.Current]
		if !ok {
			anim.Playing = false
			return
		}

		finished := false
		if clip.FrameCount <= 0 {
			finished = true
		} else {
			tpf := ticksPerFrame(clip)
			anim.FrameTimer++
			if anim.FrameTimer >= tpf {
				anim.FrameTimer = 0
				anim.Frame++
				if anim.Frame >= clip.FrameCount {
					if clip.Loop {
						anim.Frame = 0
					} else {
						anim.Frame = clip.FrameCount - 1
						finished = true
					}
				}
			}
		}

		progress := clipProgress(clip, anim, finished)
		if pres, ok := ecs.Get(w, e, component.PresentationComponent.Kind()); ok {
			switch anim.Current {
			case window.ActionOpen.String():
				pres.Progress = progress
			case window.ActionClose.String():
				pres.Progress = 1 - progress
			}
		}

		if finished {
			anim.Playing = false
			w.Events().Push(ecs.Event{
				Type: ecs.EventAnimationFinished,
				Data: ecs.AnimationFinishedEvent{Entity: e, Clip: anim.Current},
			})
		}
	})
}

func ticksPerFrame(clip component.AnimationClip) int {
	if clip.FPS <= 0 {
		return 1
	}
	tpf := int(ticksPerSecond / clip.FPS)
	if tpf < 1 {
		tpf = 1
	}
	return tpf
}

// ClipTicks returns how many update ticks a non-looping clip takes to finish.
func ClipTicks(clip component.AnimationClip) int {
	if clip.FrameCount <= 0 {
		return 1
	}
	return clip.FrameCount * ticksPerFrame(clip)
}

func clipProgress(clip component.AnimationClip, anim *component.Animation, finished bool) float64 {
	if finished || clip.FrameCount <= 0 {
		return 1
	}
	total := float64(ClipTicks(clip))
	elapsed := float64(anim.Frame*ticksPerFrame(clip) + anim.FrameTimer)
	return elapsed / total
}
