package layouts

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/windowstack/window"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedLayouts(t *testing.T) {
	spec, err := LoadWindowGroupSpec("main_menu.yaml")
	require.NoError(t, err)
	require.Equal(t, "main_menu", spec.Name)
	require.Len(t, spec.Panels, 4)
	require.NotNil(t, spec.Background)
	require.NotNil(t, spec.Blocker)

	strategy, err := spec.ParsedStrategy()
	require.NoError(t, err)
	require.Equal(t, window.StrategySequential, strategy)

	mode, err := spec.Panels[1].AnimationMode()
	require.NoError(t, err)
	require.Equal(t, window.AnimationScript, mode)
	require.True(t, spec.Panels[0].AutoVisible())

	inv, err := LoadWindowGroupSpec("layouts/inventory.yaml")
	require.NoError(t, err)
	strategy, err = inv.ParsedStrategy()
	require.NoError(t, err)
	require.Equal(t, window.StrategyCrossDissolve, strategy)
	require.Len(t, inv.Panels, 4)
	require.Nil(t, inv.Panels[2], "~ leaves a hole")
	require.Nil(t, inv.Background)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"slide.tengo", "scripts/slide.tengo", "layouts/scripts/slide.tengo"} {
		t.Run(name, func(t *testing.T) {
			src, err := LoadScript(name)
			require.NoError(t, err)
			require.Contains(t, string(src), "update := func(panel)")
		})
	}

	_, err := LoadScript("missing.tengo")
	require.Error(t, err)
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	_, ok := ModTime("main_menu.yaml")
	require.False(t, ok)

	override := "name: overridden\npanels:\n  - name: only\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main_menu.yaml"), []byte(override), 0o644))

	spec, err := LoadWindowGroupSpec("main_menu.yaml")
	require.NoError(t, err)
	require.Equal(t, "overridden", spec.Name)
	require.Len(t, spec.Panels, 1)

	_, ok = ModTime("main_menu.yaml")
	require.True(t, ok)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "fade.tengo"), []byte("update := func(panel) {}"), 0o644))
	src, err := LoadScript("fade.tengo")
	require.NoError(t, err)
	require.Equal(t, "update := func(panel) {}", string(src))
}

func TestWindowGroupSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{name: "minimal", src: "name: g\npanels:\n  - name: a\n"},
		{name: "hole", src: "name: g\npanels:\n  - ~\n  - name: a\n"},
		{name: "no name", src: "panels:\n  - name: a\n", wantErr: true},
		{name: "no panels", src: "name: g\npanels:\n  - ~\n", wantErr: true},
		{name: "bad strategy", src: "name: g\nstrategy: spiral\npanels:\n  - name: a\n", wantErr: true},
		{name: "bad mode", src: "name: g\npanels:\n  - name: a\n    mode: tween\n", wantErr: true},
		{name: "script without path", src: "name: g\npanels:\n  - name: a\n    mode: script\n", wantErr: true},
		{name: "duplicate", src: "name: g\npanels:\n  - name: a\n  - name: a\n", wantErr: true},
		{name: "unnamed background", src: "name: g\nbackground: {mode: none}\npanels:\n  - name: a\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spec WindowGroupSpec
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &spec))
			err := spec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff8000"`, want: color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
		{in: `"#10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: `"#fa0"`, want: color.NRGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}},
		{in: `"0a0b0c"`, want: color.NRGBA{R: 0x0a, G: 0x0b, B: 0x0c, A: 0xff}},
		{in: `"#12345"`, wantErr: true},
		{in: `"#zzzzzz"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, c.NRGBA)
		})
	}

	var nilColor *YAMLColor
	fallback := color.NRGBA{A: 1}
	require.Equal(t, fallback, nilColor.Or(fallback))
}
