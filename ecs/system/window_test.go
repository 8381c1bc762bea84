package system

import (
	"testing"

	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/window"
	"github.com/stretchr/testify/require"
)

type windowFixture struct {
	w       *ecs.World
	s       *ecs.Scheduler
	group   *window.Group
	panels  []*window.Panel
	blocker ecs.Entity
	opened  []int
	closed  int
}

func newWindowFixture(t *testing.T, strategy window.Strategy) *windowFixture {
	t.Helper()

	f := &windowFixture{w: ecs.NewWorld(), s: newTestScheduler(nil)}

	var windows []window.Transitioner
	for _, name := range []string{"home", "options"} {
		_, p := newPanelEntity(t, f.w, name, panelEntityOpts{mode: window.AnimationExternal, autoVisibility: true, frames: 3})
		f.panels = append(f.panels, p)
		windows = append(windows, p)
	}
	_, bg := newPanelEntity(t, f.w, "background", panelEntityOpts{mode: window.AnimationExternal, autoVisibility: true, frames: 2})

	f.blocker = ecs.CreateEntity(f.w)
	require.NoError(t, ecs.Add(f.w, f.blocker, component.VisibilityComponent.Kind(), &component.Visibility{}))
	require.NoError(t, ecs.Add(f.w, f.blocker, component.BlockerTagComponent.Kind(), &component.BlockerTag{}))

	f.group = window.NewGroup(window.GroupConfig{
		Name:        "main",
		Strategy:    strategy,
		Windows:     windows,
		Background:  bg,
		Blocker:     EntityVisibility{World: f.w, Entity: f.blocker},
		Logger:      quietLogger,
		OnOpened:    func(i int) { f.opened = append(f.opened, i) },
		OnClosedAll: func() { f.closed++ },
	})

	e := ecs.CreateEntity(f.w)
	require.NoError(t, ecs.Add(f.w, e, component.WindowGroupComponent.Kind(), &component.WindowGroup{Name: "main", Group: f.group}))
	return f
}

// settle ticks until the group is no longer transitioning.
func (f *windowFixture) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 100; i++ {
		f.s.Update(f.w)
		if f.group.State() != window.GroupTransitioning && len(f.w.Query(component.WindowRequestComponent.Kind())) == 0 {
			return
		}
	}
	t.Fatalf("group %q did not settle", f.group.Name())
}

func TestWindowSystemOpenAndBack(t *testing.T) {
	f := newWindowFixture(t, window.StrategySequential)

	req := RequestWindow(f.w, "main", component.WindowOpOpen, 0)
	require.Equal(t, window.GroupClosed, f.group.State(), "requests apply on the next update")

	f.s.Update(f.w)
	require.False(t, ecs.IsAlive(f.w, req))
	require.Equal(t, window.GroupTransitioning, f.group.State())
	require.True(t, shown(t, f.w, f.blocker))

	f.settle(t)
	require.Equal(t, window.GroupOpened, f.group.State())
	require.Equal(t, 0, f.group.ActiveIndex())
	require.Equal(t, window.StateOpened, f.panels[0].State())
	require.False(t, shown(t, f.w, f.blocker))
	require.Equal(t, []int{0}, f.opened)

	RequestWindow(f.w, "main", component.WindowOpOpen, 1)
	f.settle(t)
	require.Equal(t, window.StateClosed, f.panels[0].State())
	require.Equal(t, window.StateOpened, f.panels[1].State())
	require.Equal(t, []int{0, 1}, f.group.History())

	RequestWindow(f.w, "main", component.WindowOpBack, 0)
	f.settle(t)
	require.Equal(t, 0, f.group.ActiveIndex())
	require.Equal(t, window.StateOpened, f.panels[0].State())
	require.Equal(t, window.StateClosed, f.panels[1].State())

	RequestWindow(f.w, "main", component.WindowOpNext, 0)
	f.settle(t)
	require.Equal(t, 1, f.group.ActiveIndex())

	RequestWindow(f.w, "main", component.WindowOpCloseAll, 0)
	f.settle(t)
	require.Equal(t, window.GroupClosed, f.group.State())
	require.Equal(t, -1, f.group.ActiveIndex())
	require.Equal(t, 1, f.closed)
	for _, p := range f.panels {
		require.Equal(t, window.StateClosed, p.State())
	}
}

func TestWindowSystemResetHistoryThenBackClosesAll(t *testing.T) {
	f := newWindowFixture(t, window.StrategyCrossDissolve)

	RequestWindow(f.w, "main", component.WindowOpOpen, 0)
	f.settle(t)
	RequestWindow(f.w, "main", component.WindowOpOpen, 1)
	f.settle(t)

	RequestWindow(f.w, "main", component.WindowOpResetHistory, 0)
	f.settle(t)
	require.Equal(t, []int{1}, f.group.History())

	RequestWindow(f.w, "main", component.WindowOpBack, 0)
	f.settle(t)
	require.Equal(t, window.GroupClosed, f.group.State())
	require.Equal(t, 1, f.closed)
}

func TestWindowSystemRequestsDuringTransitionAreIgnored(t *testing.T) {
	f := newWindowFixture(t, window.StrategySequential)

	RequestWindow(f.w, "main", component.WindowOpOpen, 0)
	RequestWindow(f.w, "main", component.WindowOpOpen, 1)
	f.settle(t)

	require.Equal(t, 0, f.group.ActiveIndex())
	require.Equal(t, []int{0}, f.group.History())
	require.Equal(t, window.StateClosed, f.panels[1].State())
}

func TestWindowSystemUnknownGroupAndOp(t *testing.T) {
	f := newWindowFixture(t, window.StrategySequential)
	sys := NewWindowSystem()
	sys.log = quietLogger

	a := RequestWindow(f.w, "missing", component.WindowOpOpen, 0)
	b := RequestWindow(f.w, "main", component.WindowOp("spin"), 0)
	sys.Update(f.w)

	require.False(t, ecs.IsAlive(f.w, a))
	require.False(t, ecs.IsAlive(f.w, b))
	require.Equal(t, window.GroupClosed, f.group.State())
}
