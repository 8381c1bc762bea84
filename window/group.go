package window

import (
	"log/slog"

	"github.com/milk9111/windowstack/logging"
)

// Transitioner is the view a Group has of a window. *Panel implements it.
type Transitioner interface {
	Open()
	Close()
	State() State
	IsOpen() bool
}

type GroupConfig struct {
	Name     string
	Strategy Strategy
	// Windows are the registered slots. A nil entry is a hole.
	Windows    []Transitioner
	Background Transitioner
	Blocker    Visibility
	Logger     *slog.Logger

	// OnOpened runs when a transition settles with index active.
	OnOpened func(index int)
	// OnClosedAll runs when CloseAll has finished closing everything.
	OnClosedAll func()
}

// Group owns a set of mutually exclusive windows, a shared background and an
// input blocker, and moves between windows along a navigable history. All
// waiting is done by polling from Update, which the host calls once per tick.
type Group struct {
	name        string
	strategy    Strategy
	windows     []Transitioner
	background  Transitioner
	blocker     Visibility
	onOpened    func(int)
	onClosedAll func()
	log         *slog.Logger

	history History
	state   GroupState
	routine *Routine
}

func NewGroup(cfg GroupConfig) *Group {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.WithComponent("window")
	}
	windows := make([]Transitioner, len(cfg.Windows))
	for i, t := range cfg.Windows {
		if present(t) {
			windows[i] = t
		}
	}
	var background Transitioner
	if present(cfg.Background) {
		background = cfg.Background
	}
	return &Group{
		name:        cfg.Name,
		strategy:    cfg.Strategy,
		windows:     windows,
		background:  background,
		blocker:     cfg.Blocker,
		onOpened:    cfg.OnOpened,
		onClosedAll: cfg.OnClosedAll,
		log:         logger.With(slog.String("group", cfg.Name)),
		history:     NewHistory(),
		state:       GroupClosed,
	}
}

func (g *Group) Name() string { return g.name }
func (g *Group) Strategy() Strategy { return g.strategy }
func (g *Group) State() GroupState { return g.state }
func (g *Group) Len() int { return len(g.windows) }
func (g *Group) Cursor() int { return g.history.Cursor() }
func (g *Group) History() []int { return g.history.Entries() }
func (g *Group) Background() Transitioner { return g.background }
func (g *Group) ActiveIndex() int { return g.history.Active() }
func (g *Group) ActiveWindow() Transitioner { return g.Window(g.ActiveIndex()) }
func (g *Group) transitioning() bool { return g.state == GroupTransitioning }

// Window returns the window registered at index, or nil.
func (g *Group) Window(index int) Transitioner {
	if index < 0 || index >= len(g.windows) {
		return nil
	}
	return g.windows[index]
}

// SetWindow replaces the window in slot index. Passing nil clears the slot.
func (g *Group) SetWindow(index int, t Transitioner) {
	if index < 0 || index >= len(g.windows) {
		return
	}
	if !present(t) {
		t = nil
	}
	g.windows[index] = t
	g.log.Debug("window slot updated", slog.Int("index", index), slog.Bool("empty", t == nil))
}

// Open navigates to index, discarding any forward history.
func (g *Group) Open(index int) {
	if g.transitioning() {
		g.log.Debug("open ignored while transitioning", slog.Int("index", index))
		return
	}
	if index == g.ActiveIndex() || g.Window(index) == nil {
		return
	}

	g.history.Push(index)
	g.transition(true)
}

// Next moves forward to the next history entry.
func (g *Group) Next() {
	if g.transitioning() || !g.history.HasNext() {
		return
	}
	target, _ := g.history.Peek(1)
	if g.Window(target) == nil {
		g.log.Warn("next target has no window", slog.Int("index", target))
		return
	}
	g.transition(true)
}

// Back returns to the previous history entry, or closes everything when
// there is none.
func (g *Group) Back() {
	if g.transitioning() {
		return
	}
	if g.history.Cursor() < 1 {
		g.CloseAll()
		return
	}
	target, _ := g.history.Peek(-1)
	if g.Window(target) == nil {
		g.log.Warn("back target has no window", slog.Int("index", target))
		return
	}
	g.transition(false)
}

// CloseAll clears the history and closes every open window and the
// background.
func (g *Group) CloseAll() {
	if g.transitioning() {
		return
	}

	g.history.Reset()
	g.state = GroupTransitioning
	g.log.Debug("closing all windows")

	var closing []Transitioner
	g.run(NewRoutine(
		Do(func() {
			g.setBlocker(true)
			if g.background != nil {
				g.background.Close()
			}
			for _, w := range g.windows {
				if w == nil || !w.IsOpen() {
					continue
				}
				w.Close()
				closing = append(closing, w)
			}
		}),
		WaitUntil(func() bool {
			for _, w := range closing {
				if w.State() != StateClosed {
					return false
				}
			}
			return true
		}),
		WaitUntil(func() bool { return reached(g.background, StateClosed) }),
		Do(func() {
			g.setBlocker(false)
			g.state = GroupClosed
			g.log.Debug("all windows closed")
			if g.onClosedAll != nil {
				g.onClosedAll()
			}
		}),
	))
}

// ResetHistory collapses the history to the active window without touching
// any window's visual state.
func (g *Group) ResetHistory() {
	if g.transitioning() {
		return
	}
	g.history.Collapse()
}

// Update resumes the in-flight transition. Hosts call it once per tick.
func (g *Group) Update() {
	r := g.routine
	if r == nil {
		return
	}
	if r.Tick() && g.routine == r {
		g.routine = nil
	}
}

func (g *Group) run(r *Routine) {
	g.routine = r
	g.Update()
}

func (g *Group) transition(forward bool) {
	delta := 1
	if !forward {
		delta = -1
	}

	g.state = GroupTransitioning
	from := g.ActiveWindow()
	var to Transitioner
	advance := func() {
		g.history.Step(delta)
		to = g.ActiveWindow()
		if to == nil {
			g.log.Warn("transition target has no window", slog.Int("index", g.ActiveIndex()))
			return
		}
		to.Open()
	}
	g.log.Debug("transition started",
		slog.Bool("forward", forward),
		slog.String("strategy", g.strategy.String()),
		slog.Int("from", g.ActiveIndex()),
	)

	steps := []Step{
		Do(func() {
			g.setBlocker(true)
			if g.background != nil {
				g.background.Open()
			}
		}),
	}

	switch g.strategy {
	case StrategyCrossDissolve:
		steps = append(steps,
			Do(func() {
				if from != nil {
					from.Close()
				}
				advance()
			}),
			WaitUntil(func() bool { return reached(from, StateClosed) }),
			WaitUntil(func() bool { return reached(to, StateOpened) }),
		)
	default:
		steps = append(steps,
			Do(func() {
				if from != nil {
					from.Close()
				}
			}),
			WaitUntil(func() bool { return reached(from, StateClosed) }),
			Do(advance),
			WaitUntil(func() bool { return reached(to, StateOpened) }),
		)
	}

	steps = append(steps,
		WaitUntil(func() bool { return reached(g.background, StateOpened) }),
		Do(func() {
			g.setBlocker(false)
			g.state = GroupOpened
			index := g.ActiveIndex()
			g.log.Debug("transition finished", slog.Int("active", index))
			if g.onOpened != nil {
				g.onOpened(index)
			}
		}),
	)

	g.run(NewRoutine(steps...))
}

func (g *Group) setBlocker(visible bool) {
	if g.blocker == nil {
		return
	}
	g.blocker.SetVisible(visible)
}

// reached treats a missing window as already settled.
func reached(t Transitioner, s State) bool {
	return t == nil || t.State() == s
}

func present(t Transitioner) bool {
	if t == nil {
		return false
	}
	if p, ok := t.(*Panel); ok && p == nil {
		return false
	}
	return true
}
