package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/ecs/entity"
	"github.com/milk9111/windowstack/ecs/system"
	"github.com/milk9111/windowstack/layouts"
	"github.com/milk9111/windowstack/logging"
	"github.com/milk9111/windowstack/window"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 640
	baseHeight = 480
)

var slotKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type Game struct {
	frames int
	debug  bool

	layout    string
	world     *ecs.World
	scheduler *ecs.Scheduler
	windows   *entity.WindowGroupEntities
	ui        *ebitenui.UI
	face      ebtext.Face

	watcher       *layouts.Watcher
	reloadPending bool

	lastEvent string
	log       *slog.Logger
}

func NewGame(layout string, debug, watch bool) (*Game, error) {
	g := &Game{
		debug:  debug,
		layout: layout,
		world:  ecs.NewWorld(),
		scheduler: ecs.NewScheduler(
			system.NewAnimationSystem(),
			system.NewPanelEventSystem(),
			system.NewScriptSystem(layouts.LoadScript),
			system.NewWindowSystem(),
		),
		face: ebtext.NewGoXFace(basicfont.Face7x13),
		log:  logging.WithComponent("game"),
	}

	if err := g.loadLayout(); err != nil {
		return nil, err
	}
	g.ui = NewNavUI(g)

	if watch {
		w, err := layouts.NewWatcher(layouts.DiskDir, filepath.Join(layouts.DiskDir, "scripts"))
		if err != nil {
			g.log.Warn("layout watch disabled", slog.Any("err", err))
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) loadLayout() error {
	spec, err := layouts.LoadWindowGroupSpec(g.layout)
	if err != nil {
		return err
	}
	return g.buildLayout(spec)
}

func (g *Game) buildLayout(spec *layouts.WindowGroupSpec) error {
	windows, err := entity.NewWindowGroup(g.world, spec, entity.WindowGroupHooks{
		OnOpened: func(index int) {
			g.lastEvent = fmt.Sprintf("opened %d", index)
		},
		OnClosedAll: func() {
			g.lastEvent = "closed all"
		},
	})
	if err != nil {
		return err
	}
	g.windows = windows
	g.log.Info("layout loaded",
		slog.String("layout", g.layout),
		slog.String("group", windows.Name),
		slog.String("strategy", windows.Group.Strategy().String()),
		slog.Int("windows", windows.Group.Len()),
	)
	return nil
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()
	if g.reloadPending && g.windows.Group.State() == window.GroupClosed {
		g.reloadPending = false
		g.reloadLayout()
	}

	// the blocker swallows all navigation input while a transition runs
	if !g.inputBlocked() {
		g.ui.Update()
		g.handleKeys()
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	for i, key := range slotKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.request(component.WindowOpOpen, i)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.request(component.WindowOpNext, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyB), inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.request(component.WindowOpBack, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.request(component.WindowOpCloseAll, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.request(component.WindowOpResetHistory, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.hideActive()
	}
}

func (g *Game) request(op component.WindowOp, index int) {
	system.RequestWindow(g.world, g.windows.Name, op, index)
}

// hideActive deactivates the active panel's display object from outside the
// group, the way an unrelated game system would.
func (g *Game) hideActive() {
	index := g.windows.Group.ActiveIndex()
	if index < 0 || index >= len(g.windows.Panels) || g.windows.Panels[index] == 0 {
		return
	}
	system.Deactivate(g.world, g.windows.Panels[index])
	g.lastEvent = fmt.Sprintf("deactivated %d", index)
}

func (g *Game) inputBlocked() bool {
	if g.windows.Blocker == 0 {
		return g.windows.Group.State() == window.GroupTransitioning
	}
	vis, ok := ecs.Get(g.world, g.windows.Blocker, component.VisibilityComponent.Kind())
	return ok && vis.Shown
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info("layout changed", slog.String("file", name))
			g.reloadPending = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("layout watch", slog.Any("err", err))
			}
		default:
			return
		}
	}
}

// reloadLayout rebuilds the window group from disk. It only runs while the
// group is closed so no transition is cut short. A layout that fails to load
// leaves the current group in place.
func (g *Game) reloadLayout() {
	spec, err := layouts.LoadWindowGroupSpec(g.layout)
	if err != nil {
		g.log.Error("reload layout", slog.String("layout", g.layout), slog.Any("err", err))
		return
	}

	old := g.windows
	if err := g.buildLayout(spec); err != nil {
		g.log.Error("rebuild layout", slog.String("layout", g.layout), slog.Any("err", err))
		return
	}
	entity.DestroyWindowGroup(g.world, old)
	g.ui = NewNavUI(g)
	g.lastEvent = "layout reloaded"
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	type drawable struct {
		e    ecs.Entity
		pres *component.Presentation
	}
	var items []drawable
	ecs.ForEach2(g.world, component.PresentationComponent.Kind(), component.VisibilityComponent.Kind(), func(e ecs.Entity, pres *component.Presentation, vis *component.Visibility) {
		if !vis.Shown {
			return
		}
		items = append(items, drawable{e: e, pres: pres})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].pres.Layer != items[j].pres.Layer {
			return items[i].pres.Layer < items[j].pres.Layer
		}
		return items[i].e < items[j].e
	})

	for _, it := range items {
		g.drawPresentation(screen, it.pres)
	}

	g.ui.Draw(screen)

	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawPresentation(screen *ebiten.Image, pres *component.Presentation) {
	x, y, w, h := pres.X, pres.Y, pres.W, pres.H
	if w <= 0 || h <= 0 {
		x, y, w, h = 0, 0, baseWidth, baseHeight
	}

	p := pres.Progress
	if p <= 0 {
		return
	}
	x += pres.SlideX * (1 - p)

	clr := pres.Color
	clr.A = uint8(float64(clr.A) * p)
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
	if pres.Title == "" {
		return
	}

	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(200 * p)}, false)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x+12, y+10)
	op.ColorScale.ScaleWithColor(colornames.White)
	op.ColorScale.ScaleAlpha(float32(p))
	ebtext.Draw(screen, pres.Title, g.face, op)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	grp := g.windows.Group

	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.2f  ticks: %d\n", ebiten.ActualFPS(), g.scheduler.Ticks())
	fmt.Fprintf(&b, "group %s [%s] %s\n", grp.Name(), grp.Strategy(), grp.State())
	fmt.Fprintf(&b, "history %v cursor %d\n", grp.History(), grp.Cursor())
	for i := 0; i < grp.Len(); i++ {
		t := grp.Window(i)
		if t == nil {
			fmt.Fprintf(&b, " %d: -\n", i)
			continue
		}
		marker := " "
		if i == grp.ActiveIndex() {
			marker = "*"
		}
		name := ""
		if p, ok := t.(*window.Panel); ok {
			name = p.Name()
		}
		fmt.Fprintf(&b, "%s%d: %-10s %s\n", marker, i, name, t.State())
	}
	if bg := grp.Background(); bg != nil {
		fmt.Fprintf(&b, " bg: %s\n", bg.State())
	}
	if g.lastEvent != "" {
		fmt.Fprintf(&b, "last: %s\n", g.lastEvent)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 4, baseHeight-16*(grp.Len()+6))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
