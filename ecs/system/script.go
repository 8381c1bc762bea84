package system

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/windowstack/ecs"
	"github.com/milk9111/windowstack/ecs/component"
	"github.com/milk9111/windowstack/logging"
	"github.com/milk9111/windowstack/window"
)

// ScriptLoader returns the source of the tengo script at path.
type ScriptLoader func(path string) ([]byte, error)

type panelScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	phase      window.State
	frame      int
}

// The script defines update(panel). panel.state holds the running phase
// ("OpeningAnim" or "ClosingAnim") and panel.frame counts ticks since it
// started, starting at 1.
const panelScriptDispatch = `
update(__panel)
`

// ScriptSystem drives AnimationScript panels with tengo. Each tick a panel
// spends in an animating phase runs its script once. The script reports
// completion by calling panel.finish("Open") or panel.finish("Close").
type ScriptSystem struct {
	load     ScriptLoader
	runtimes map[ecs.Entity]*panelScriptRuntime
	failed   map[ecs.Entity]string
	log      *slog.Logger
}

func NewScriptSystem(load ScriptLoader) *ScriptSystem {
	return &ScriptSystem{
		load:     load,
		runtimes: map[ecs.Entity]*panelScriptRuntime{},
		failed:   map[ecs.Entity]string{},
		log:      logging.WithComponent("script"),
	}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}
	for e := range s.failed {
		if !ecs.IsAlive(w, e) {
			delete(s.failed, e)
		}
	}

	ecs.ForEach2(w, component.PanelComponent.Kind(), component.PanelScriptComponent.Kind(), func(e ecs.Entity, pc *component.Panel, ps *component.PanelScript) {
		p := pc.Machine
		if p == nil || p.Mode() != window.AnimationScript {
			return
		}

		state := p.State()
		rt, err := s.runtime(e, ps.Path)
		if err != nil {
			if s.failed[e] != ps.Path {
				s.failed[e] = ps.Path
				s.log.Error("load panel script", slog.String("entity", e.String()), slog.String("script", ps.Path), slog.Any("err", err))
			}
			return
		}
		delete(s.failed, e)

		if !state.Animating() {
			rt.phase = state
			rt.frame = 0
			return
		}
		if state != rt.phase {
			rt.phase = state
			rt.frame = 0
			rt.stateData = &tengo.Map{Value: map[string]tengo.Object{}}
		}

		rt.frame++
		panel := buildPanelScriptObject(w, e, p, rt)
		if err := rt.run(panel); err != nil {
			s.log.Error("panel script update", slog.String("entity", e.String()), slog.String("script", ps.Path), slog.Any("err", err))
		}
	})
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*panelScriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := s.runtimes[e]; ok && rt.scriptPath == path {
		return rt, nil
	}
	if s.load == nil {
		return nil, fmt.Errorf("no script loader")
	}

	src, err := s.load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + panelScriptDispatch))
	_ = script.Add("__panel", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	rt := &panelScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (rt *panelScriptRuntime) run(panel *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__panel", panel); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildPanelScriptObject(w *ecs.World, e ecs.Entity, p *window.Panel, rt *panelScriptRuntime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"name":  &tengo.String{Value: p.Name()},
		"state": &tengo.String{Value: p.State().String()},
		"frame": &tengo.Int{Value: int64(rt.frame)},
		"data":  rt.stateData,
	}

	values["set_progress"] = &tengo.UserFunction{Name: "set_progress", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		v, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		pres, ok := ecs.Get(w, e, component.PresentationComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		pres.Progress = clamp01(v)
		return tengo.TrueValue, nil
	}}

	values["set_offset"] = &tengo.UserFunction{Name: "set_offset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		v, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		pres, ok := ecs.Get(w, e, component.PresentationComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		pres.SlideX = v
		return tengo.TrueValue, nil
	}}

	values["finish"] = &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		p.AnimationFinished(name)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
