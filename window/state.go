package window

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStrategy      = errors.New("window: unknown strategy")
	ErrUnknownAnimationMode = errors.New("window: unknown animation mode")
)

// State is a panel's position in its open/close lifecycle.
type State int

const (
	StateOpeningAnim State = iota + 1
	StateOpened
	StateClosingAnim
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpeningAnim:
		return "OpeningAnim"
	case StateOpened:
		return "Opened"
	case StateClosingAnim:
		return "ClosingAnim"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Animating reports whether s is one of the in-flight phases.
func (s State) Animating() bool {
	return s == StateOpeningAnim || s == StateClosingAnim
}

// AnimationMode decides how a panel learns that an open or close phase is done.
type AnimationMode int

const (
	// AnimationNone completes every phase synchronously.
	AnimationNone AnimationMode = iota
	// AnimationExternal triggers an Animator and waits for its finished event.
	AnimationExternal
	// AnimationScript waits for a scripted caller to call AnimationFinished.
	AnimationScript
)

func (m AnimationMode) String() string {
	switch m {
	case AnimationNone:
		return "none"
	case AnimationExternal:
		return "animator"
	case AnimationScript:
		return "script"
	default:
		return "unknown"
	}
}

func ParseAnimationMode(s string) (AnimationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AnimationNone, nil
	case "animator", "external":
		return AnimationExternal, nil
	case "script", "scripted":
		return AnimationScript, nil
	default:
		return AnimationNone, fmt.Errorf("%w: %q", ErrUnknownAnimationMode, s)
	}
}

// Action is the single pending request a panel remembers while the opposite
// transition is still running.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "Open"
	case ActionClose:
		return "Close"
	default:
		return "None"
	}
}

// Strategy selects how a group sequences the outgoing and incoming windows.
type Strategy int

const (
	// StrategySequential closes the old window fully before opening the new one.
	StrategySequential Strategy = iota
	// StrategyCrossDissolve closes and opens at the same time.
	StrategyCrossDissolve
)

func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyCrossDissolve:
		return "cross_dissolve"
	default:
		return "unknown"
	}
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return StrategySequential, nil
	case "cross_dissolve", "crossdissolve", "fade":
		return StrategyCrossDissolve, nil
	default:
		return StrategySequential, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// GroupState is the macro state of a window group.
type GroupState int

const (
	GroupClosed GroupState = iota
	GroupTransitioning
	GroupOpened
)

func (s GroupState) String() string {
	switch s {
	case GroupClosed:
		return "Closed"
	case GroupTransitioning:
		return "Transitioning"
	case GroupOpened:
		return "Opened"
	default:
		return "Unknown"
	}
}
