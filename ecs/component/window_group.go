package component

import "github.com/milk9111/windowstack/window"

// WindowGroup attaches a window group to an entity so the window system
// can tick it.
type WindowGroup struct {
	Name  string
	Group *window.Group
}

var WindowGroupComponent = NewComponent[WindowGroup]()

type WindowOp string

const (
	WindowOpOpen         WindowOp = "open"
	WindowOpNext         WindowOp = "next"
	WindowOpBack         WindowOp = "back"
	WindowOpCloseAll     WindowOp = "close_all"
	WindowOpResetHistory WindowOp = "reset_history"
)

// WindowRequest is a one-shot navigation request. The window system applies
// it to the group with the matching name and destroys the request entity.
type WindowRequest struct {
	Group string
	Op    WindowOp
	Index int
}

var WindowRequestComponent = NewComponent[WindowRequest]()
