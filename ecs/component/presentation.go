package component

import "image/color"

// Presentation is what the renderer needs to draw a panel, background or
// blocker.
type Presentation struct {
	Title string
	Color color.NRGBA
	X     float64
	Y     float64
	W     float64
	H     float64
	// Layer orders drawing; higher layers draw on top.
	Layer int
	// Progress runs from 0 (fully closed) to 1 (fully open) and is written by
	// the animation and script systems.
	Progress float64
	// SlideX is an extra horizontal offset, in pixels, applied at Progress 0.
	SlideX float64
}

var PresentationComponent = NewComponent[Presentation]()
