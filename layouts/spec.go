package layouts

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/windowstack/window"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("layouts: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("layouts: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WindowGroupSpec describes one window group: its mutually exclusive panels,
// the shared background and the input blocker. A "~" entry in panels leaves
// that index unregistered.
type WindowGroupSpec struct {
	Name       string       `yaml:"name"`
	Strategy   string       `yaml:"strategy"`
	Background *PanelSpec   `yaml:"background"`
	Blocker    *BlockerSpec `yaml:"blocker"`
	Panels     []*PanelSpec `yaml:"panels"`
}

type PanelSpec struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	// Mode is one of none, animator or script.
	Mode string `yaml:"mode"`
	// AutoVisibility defaults to true.
	AutoVisibility *bool         `yaml:"auto_visibility"`
	Script         string        `yaml:"script"`
	Color          *YAMLColor    `yaml:"color"`
	Rect           Rect          `yaml:"rect"`
	Layer          int           `yaml:"layer"`
	SlideX         float64       `yaml:"slide_x"`
	Animation      AnimationSpec `yaml:"animation"`
}

type AnimationSpec struct {
	Open  ClipSpec `yaml:"open"`
	Close ClipSpec `yaml:"close"`
}

type ClipSpec struct {
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
}

type BlockerSpec struct {
	Color *YAMLColor `yaml:"color"`
}

type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func LoadWindowGroupSpec(filename string) (*WindowGroupSpec, error) {
	spec, err := LoadSpec[WindowGroupSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("layouts: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *WindowGroupSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("window group has no name")
	}
	if _, err := s.ParsedStrategy(); err != nil {
		return err
	}

	seen := map[string]bool{}
	registered := 0
	for i, p := range s.Panels {
		if p == nil {
			continue
		}
		registered++
		if err := p.validate(); err != nil {
			return fmt.Errorf("panel %d: %w", i, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("panel %d: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	if registered == 0 {
		return errors.New("window group has no panels")
	}

	if s.Background != nil {
		if err := s.Background.validate(); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	return nil
}

func (s *WindowGroupSpec) ParsedStrategy() (window.Strategy, error) {
	return window.ParseStrategy(s.Strategy)
}

func (p *PanelSpec) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("missing name")
	}
	mode, err := p.AnimationMode()
	if err != nil {
		return err
	}
	if mode == window.AnimationScript && strings.TrimSpace(p.Script) == "" {
		return fmt.Errorf("%s: script mode needs a script", p.Name)
	}
	return nil
}

func (p *PanelSpec) AnimationMode() (window.AnimationMode, error) {
	return window.ParseAnimationMode(p.Mode)
}

func (p *PanelSpec) AutoVisible() bool {
	return p.AutoVisibility == nil || *p.AutoVisibility
}

// YAMLColor decodes "#rgb", "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(strings.TrimSpace(value.Value), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %s: %w", value.Value, err)
	}
	c.NRGBA = color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return nil
}

// Or returns the decoded color, or fallback when c is nil.
func (c *YAMLColor) Or(fallback color.NRGBA) color.NRGBA {
	if c == nil {
		return fallback
	}
	return c.NRGBA
}
