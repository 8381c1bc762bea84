package system

import (
	"errors"
	"testing"

	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/window"
	"github.com/stretchr/testify/require"
)

const fadeScript = `
duration := 4

update := func(panel) {
	t := panel.frame / float(duration)
	if panel.state == "OpeningAnim" {
		panel.set_progress(t)
	} else {
		panel.set_progress(1.0 - t)
	}
	if panel.frame >= duration {
		panel.finish(panel.state == "OpeningAnim" ? "Open" : "Close")
	}
}
`

func staticLoader(scripts map[string]string) ScriptLoader {
	return func(path string) ([]byte, error) {
		src, ok := scripts[path]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(src), nil
	}
}

func TestScriptSystemDrivesPanel(t *testing.T) {
	w := ecs.NewWorld()
	s := newTestScheduler(staticLoader(map[string]string{"scripts/fade.tengo": fadeScript}))
	e, p := newPanelEntity(t, w, "menu", panelEntityOpts{mode: window.AnimationScript, autoVisibility: true, script: "scripts/fade.tengo"})

	p.Open()
	require.Equal(t, window.StateOpeningAnim, p.State())

	tickN(s, w, 2)
	require.Equal(t, window.StateOpeningAnim, p.State())
	require.InDelta(t, 0.5, progress(t, w, e), 1e-9)

	tickN(s, w, 2)
	require.Equal(t, window.StateOpened, p.State())
	require.Equal(t, 1.0, progress(t, w, e))

	tickN(s, w, 3)
	require.Equal(t, window.StateOpened, p.State())

	p.Close()
	tickN(s, w, 1)
	require.InDelta(t, 0.75, progress(t, w, e), 1e-9)

	tickN(s, w, 3)
	require.Equal(t, window.StateClosed, p.State())
	require.False(t, shown(t, w, e))
}

func TestScriptSystemFrameResetsOnPhaseChange(t *testing.T) {
	w := ecs.NewWorld()
	s := newTestScheduler(staticLoader(map[string]string{"scripts/fade.tengo": fadeScript}))
	_, p := newPanelEntity(t, w, "menu", panelEntityOpts{mode: window.AnimationScript, script: "scripts/fade.tengo"})

	p.Open()
	tickN(s, w, 2)
	p.Close()
	require.Equal(t, window.ActionClose, p.Queued())

	tickN(s, w, 2)
	require.Equal(t, window.StateClosingAnim, p.State())

	tickN(s, w, 3)
	require.Equal(t, window.StateClosingAnim, p.State())
	tickN(s, w, 1)
	require.Equal(t, window.StateClosed, p.State())
}

func TestScriptSystemLoadFailureLeavesPanelWaiting(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewScriptSystem(staticLoader(nil))
	sys.log = quietLogger
	e, p := newPanelEntity(t, w, "menu", panelEntityOpts{mode: window.AnimationScript, script: "scripts/missing.tengo"})

	p.Open()
	for i := 0; i < 5; i++ {
		sys.Update(w)
	}

	require.Equal(t, window.StateOpeningAnim, p.State())
	require.Equal(t, "scripts/missing.tengo", sys.failed[e])
	require.Empty(t, sys.runtimes)

	p.AnimationFinished("Open")
	require.Equal(t, window.StateOpened, p.State())
}

func TestScriptSystemCompileError(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewScriptSystem(staticLoader(map[string]string{"scripts/bad.tengo": "update := func(panel) {"}))
	sys.log = quietLogger
	e, p := newPanelEntity(t, w, "menu", panelEntityOpts{mode: window.AnimationScript, script: "scripts/bad.tengo"})

	p.Open()
	sys.Update(w)

	require.Equal(t, window.StateOpeningAnim, p.State())
	require.Contains(t, sys.failed, e)
}

func TestScriptSystemDropsDeadEntities(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewScriptSystem(staticLoader(map[string]string{"scripts/fade.tengo": fadeScript}))
	e, p := newPanelEntity(t, w, "menu", panelEntityOpts{mode: window.AnimationScript, script: "scripts/fade.tengo"})

	p.Open()
	sys.Update(w)
	require.Len(t, sys.runtimes, 1)

	ecs.DestroyEntity(w, e)
	sys.Update(w)
	require.Empty(t, sys.runtimes)
}
