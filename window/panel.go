package window

import (
	"log/slog"

	"github.com/milk9111/windowstack/logging"
)

// Animator drives the open/close animation attached to a panel's visual.
// Trigger returns false when no controller is active, in which case the
// panel treats the phase as already complete.
type Animator interface {
	Trigger(action string) bool
}

// Visibility shows or hides the display object behind a panel or blocker.
// Implementations must be idempotent.
type Visibility interface {
	SetVisible(visible bool)
}

// StateNotifier is told about every notified state change of a panel.
type StateNotifier interface {
	NotifyStateChanged(p *Panel, s State)
}

// NotifierFunc adapts a plain function to StateNotifier.
type NotifierFunc func(p *Panel, s State)

func (f NotifierFunc) NotifyStateChanged(p *Panel, s State) {
	f(p, s)
}

type PanelConfig struct {
	Name string
	Mode AnimationMode
	// AutoVisibility shows the panel when it starts opening and hides it once
	// it is fully closed.
	AutoVisibility bool
	Animator       Animator
	Visibility     Visibility
	Notifiers      []StateNotifier
	Logger         *slog.Logger
}

// Panel is the open/close state machine of a single window.
type Panel struct {
	name           string
	mode           AnimationMode
	autoVisibility bool
	animator       Animator
	visibility     Visibility
	notifiers      []StateNotifier
	log            *slog.Logger

	state  State
	queued Action
	hiding bool
}

func NewPanel(cfg PanelConfig) *Panel {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.WithComponent("window")
	}
	return &Panel{
		name:           cfg.Name,
		mode:           cfg.Mode,
		autoVisibility: cfg.AutoVisibility,
		animator:       cfg.Animator,
		visibility:     cfg.Visibility,
		notifiers:      append([]StateNotifier(nil), cfg.Notifiers...),
		log:            logger.With(slog.String("panel", cfg.Name)),
		state:          StateClosed,
	}
}

func (p *Panel) Name() string { return p.name }
func (p *Panel) State() State { return p.state }
func (p *Panel) Mode() AnimationMode { return p.mode }
func (p *Panel) Queued() Action { return p.queued }
func (p *Panel) AutoVisibility() bool { return p.autoVisibility }
func (p *Panel) IsOpen() bool { return p.state != StateClosed }

func (p *Panel) AddNotifier(n StateNotifier) {
	if n == nil {
		return
	}
	p.notifiers = append(p.notifiers, n)
}

// Open starts the opening phase from Closed. While any other phase is
// running the request is remembered and applied once the panel settles.
func (p *Panel) Open() {
	if p.state != StateClosed {
		if p.state != StateOpened {
			p.queued = ActionOpen
		}
		return
	}

	if p.autoVisibility {
		p.setVisible(true)
	}
	p.ChangeState(StateOpeningAnim, true)
	p.play(ActionOpen, StateOpened)
}

// Close is the mirror of Open.
func (p *Panel) Close() {
	if p.state != StateOpened {
		if p.state != StateClosed {
			p.queued = ActionClose
		}
		return
	}

	p.ChangeState(StateClosingAnim, true)
	p.play(ActionClose, StateClosed)
}

func (p *Panel) play(action Action, terminal State) {
	switch p.mode {
	case AnimationNone:
		p.ChangeState(terminal, true)
	case AnimationExternal:
		if p.animator == nil || !p.animator.Trigger(action.String()) {
			p.ChangeState(terminal, true)
		}
	case AnimationScript:
		// the script owns the animation and reports back through AnimationFinished
	}
}

// AnimationFinished completes the running phase when name matches it. It is
// the path used both by animators and by scripted callers. Unknown or stale
// names are ignored.
func (p *Panel) AnimationFinished(name string) {
	switch {
	case name == ActionOpen.String() && p.state == StateOpeningAnim:
		p.ChangeState(StateOpened, true)
	case name == ActionClose.String() && p.state == StateClosingAnim:
		p.ChangeState(StateClosed, true)
	default:
		p.log.Debug("animation event ignored", slog.String("event", name), slog.String("state", p.state.String()))
	}
}

// ChangeState moves the panel to s. Notifiers run unless notify is false.
// Afterwards the queued action is cleared, and applied first if it asks for
// the opposite of the terminal state just reached.
func (p *Panel) ChangeState(s State, notify bool) {
	p.state = s
	p.log.Debug("panel state changed", slog.String("state", s.String()))

	if s == StateClosed && p.autoVisibility {
		p.hiding = true
		p.setVisible(false)
		p.hiding = false
	}

	if notify {
		for _, n := range p.notifiers {
			n.NotifyStateChanged(p, s)
		}
	}

	queued := p.queued
	p.queued = ActionNone
	switch {
	case s == StateOpened && queued == ActionClose:
		p.Close()
	case s == StateClosed && queued == ActionOpen:
		p.Open()
	}
}

// Deactivated is called when the panel's display object is hidden from the
// outside. Auto-visibility panels close themselves, and an externally
// animated panel caught mid-phase jumps to that phase's end because its
// animator stops running while inactive.
func (p *Panel) Deactivated() {
	if p.hiding {
		return
	}

	if p.autoVisibility {
		p.Close()
	}

	for p.mode == AnimationExternal && p.state.Animating() {
		if p.state == StateOpeningAnim {
			p.ChangeState(StateOpened, true)
		} else {
			p.ChangeState(StateClosed, true)
		}
	}
}

func (p *Panel) setVisible(v bool) {
	if p.visibility == nil {
		return
	}
	p.visibility.SetVisible(v)
}
