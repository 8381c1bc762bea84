package component

import "github.com/milk9111/windowstack/window"

// Panel attaches a window state machine to an entity.
type Panel struct {
	Machine *window.Panel
}

var PanelComponent = NewComponent[Panel]()

// PanelScript names the tengo script that animates a script-driven panel.
type PanelScript struct {
	Path string
}

var PanelScriptComponent = NewComponent[PanelScript]()
