package window

import (
	"io"
	"log/slog"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeVisibility records every SetVisible call.
type fakeVisibility struct {
	visible bool
	calls   []bool
}

func (v *fakeVisibility) SetVisible(visible bool) {
	v.visible = visible
	v.calls = append(v.calls, visible)
}

// countdownAnimator finishes each triggered action after a fixed number of
// ticks, reporting back through the panel's AnimationFinished.
type countdownAnimator struct {
	panel    *Panel
	frames   int
	pending  string
	left     int
	active   bool
	triggers []string
}

func newCountdownAnimator(frames int) *countdownAnimator {
	return &countdownAnimator{frames: frames, active: true}
}

func (a *countdownAnimator) Trigger(action string) bool {
	a.triggers = append(a.triggers, action)
	if !a.active {
		return false
	}
	a.pending = action
	a.left = a.frames
	return true
}

func (a *countdownAnimator) tick() {
	if a.pending == "" {
		return
	}
	a.left--
	if a.left > 0 {
		return
	}
	name := a.pending
	a.pending = ""
	a.panel.AnimationFinished(name)
}

func newAnimatedPanel(name string, frames int) (*Panel, *countdownAnimator, *fakeVisibility) {
	anim := newCountdownAnimator(frames)
	vis := &fakeVisibility{}
	p := NewPanel(PanelConfig{
		Name:           name,
		Mode:           AnimationExternal,
		AutoVisibility: true,
		Animator:       anim,
		Visibility:     vis,
		Logger:         quietLogger,
	})
	anim.panel = p
	return p, anim, vis
}
