package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// NewNavUI builds the navigation bar along the top edge: one button per
// registered window plus Back, Next, Close all and Reset. Buttons only queue
// window requests; the blocker check in Game.Update keeps them inert while a
// transition runs.
func NewNavUI(g *Game) *ebitenui.UI {
	barImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x55, A: 255}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 6, Right: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	for i, e := range g.windows.Panels {
		if e == 0 {
			continue
		}
		index := i
		bar.AddChild(button(fmt.Sprintf("%d %s", index+1, panelTitle(g.world, e)), func() {
			g.request(component.WindowOpOpen, index)
		}))
	}
	bar.AddChild(button("Back", func() { g.request(component.WindowOpBack, 0) }))
	bar.AddChild(button("Next", func() { g.request(component.WindowOpNext, 0) }))
	bar.AddChild(button("Close all", func() { g.request(component.WindowOpCloseAll, 0) }))
	bar.AddChild(button("Reset", func() { g.request(component.WindowOpResetHistory, 0) }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	return &ebitenui.UI{Container: root}
}

func panelTitle(w *ecs.World, e ecs.Entity) string {
	pres, ok := ecs.Get(w, e, component.PresentationComponent.Kind())
	if !ok || pres.Title == "" {
		return "?"
	}
	return pres.Title
}
