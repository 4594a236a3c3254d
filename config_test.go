package meadow

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPresetsValidate(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q: %v", name, err)
		}
		if cfg.Preset != name {
			t.Errorf("preset %q names itself %q", name, cfg.Preset)
		}
	}
}

func TestPresetIsCopy(t *testing.T) {
	c, ok := Preset("meadow")
	if !ok {
		t.Fatal("meadow preset missing")
	}
	c.Ball.Radius = 99
	if Presets["meadow"].Ball.Radius == 99 {
		t.Error("modifying a returned preset changed the registry")
	}
}

func TestDecodeConfig_OverridesPreset(t *testing.T) {
	data := []byte(`
preset = "dusk"
activation = "always"

[ball]
max_speed = 7.5

[grass]
layers = 3
height = [10.0, 30.0]

[grass.highlight]
color = "#ffffff"
`)
	c, err := DecodeConfig(data)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	dusk := Presets["dusk"]
	if c.Ball.MaxSpeed != 7.5 {
		t.Errorf("max_speed = %v, want 7.5", c.Ball.MaxSpeed)
	}
	if c.Ball.Radius != dusk.Ball.Radius || c.Ball.Restitution != dusk.Ball.Restitution {
		t.Errorf("unset ball keys lost their preset values: %+v", c.Ball)
	}
	if c.Grass.Layers != 3 || c.Grass.Height != [2]float64{10, 30} {
		t.Errorf("grass = layers %d height %v", c.Grass.Layers, c.Grass.Height)
	}
	if c.Grass.Blades != dusk.Grass.Blades || c.Grass.Shade != "depth" {
		t.Errorf("unset grass keys lost their preset values: %+v", c.Grass)
	}
	if c.Grass.Highlight.Color != "#ffffff" || c.Grass.Highlight.Alpha != dusk.Grass.Highlight.Alpha {
		t.Errorf("highlight = %+v", c.Grass.Highlight)
	}
	if c.Activation != "always" {
		t.Errorf("activation = %q, want always", c.Activation)
	}
}

func TestDecodeConfig_DefaultsToMeadow(t *testing.T) {
	c, err := DecodeConfig([]byte(`activation = "key"`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Preset != "meadow" || c.Grass.Blades != 800 {
		t.Errorf("got preset %q with %d blades, want meadow with 800", c.Preset, c.Grass.Blades)
	}
}

func TestDecodeConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"syntax", `preset = `, false},
		{"wrong type", `[ball]
radius = "big"`, false},
		{"unknown preset", `preset = "tundra"`, true},
		{"unknown key", `[ball]
bounce = 2.0`, true},
		{"friction one", `[ball]
friction = 1.0`, true},
		{"friction zero", `[ball]
friction = 0.0`, true},
		{"restitution", `[ball]
restitution = 1.5`, true},
		{"sprint below one", `[ball]
sprint = 0.5`, true},
		{"zero radius", `[ball]
radius = 0.0`, true},
		{"negative max speed", `[ball]
max_speed = -1.0`, true},
		{"ball too big", `[ball]
radius = 300.0`, true},
		{"no layers", `[grass]
layers = 0`, true},
		{"one segment", `[grass]
segments = [1, 4]`, true},
		{"eight segments", `[grass]
segments = [3, 8]`, true},
		{"zero reach", `[grass]
reach = 0.0`, true},
		{"smoothing", `[grass]
smoothing = 1.5`, true},
		{"activation", `activation = "wave"`, true},
		{"theme", `theme = "noir"`, true},
		{"area", `[grass]
area = "sky"`, true},
		{"highlight color", `[grass.highlight]
color = "green"`, true},
		{"height range", `[grass]
height = [20.0, 10.0]`, true},
		{"nan friction", `[ball]
friction = nan`, true},
		{"inf max speed", `[ball]
max_speed = inf`, true},
		{"nan padding", `[world]
padding = nan`, true},
		{"nan smoothing", `[grass]
smoothing = nan`, true},
		{"inf reach", `[grass]
reach = inf`, true},
		{"nan height", `[grass]
height = [nan, 10.0]`, true},
		{"negative max bend", `[grass]
max_bend = -1.0`, true},
		{"negative sway amplitude", `[grass]
sway_amplitude = -2.0`, true},
		{"negative sway coupling", `[grass]
sway_coupling = -0.1`, true},
		{"negative bend scale", `[grass]
bend_scale = -1.0`, true},
		{"nan highlight lean", `[grass.highlight]
lean = nan`, true},
		{"inf highlight width", `[grass.highlight]
width = -inf`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(%v, ErrInvalidConfig) = %v, want %v", err, got, tt.invalid)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte("preset = \"dusk\"\n[world]\nwidth = 1280.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.World.Width != 1280 || c.World.Height != 540 {
		t.Errorf("world = %+v", c.World)
	}

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[ball]\nfriction = 2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadConfig(bad)
	if !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), "bad.toml") {
		t.Errorf("invalid file error = %v, want ErrInvalidConfig naming the file", err)
	}
}

func TestConfig_NewSimulation(t *testing.T) {
	tests := []struct {
		preset string
		start  Vec2
		blades int
		policy Activation
		area   Rect
	}{
		{"meadow", Vec2{X: 480, Y: 270}, 800, ActivateOnClick, Rect{Width: 960, Height: 540}},
		{"dusk", Vec2{X: 480, Y: 540 * 0.35}, 0, ActivateOnKey, Rect{Y: 60, Width: 960, Height: 420}},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg, _ := Preset(tt.preset)
			sim, err := cfg.NewSimulation()
			if err != nil {
				t.Fatal(err)
			}
			if d := sim.Ball.Start.Sub(tt.start).Len(); d > 1e-9 || sim.Ball.Pos != sim.Ball.Start {
				t.Errorf("start = %+v, want %+v", sim.Ball.Start, tt.start)
			}
			if tt.blades > 0 && sim.Field.Len() != tt.blades {
				t.Errorf("blades = %d, want %d", sim.Field.Len(), tt.blades)
			}
			if sim.Controls.Policy() != tt.policy {
				t.Errorf("policy = %v, want %v", sim.Controls.Policy(), tt.policy)
			}
			fc := sim.Field.Config()
			if fc.Area != tt.area {
				t.Errorf("blade area = %+v, want %+v", fc.Area, tt.area)
			}
			for _, b := range sim.Field.Blades() {
				if !fc.Area.Contains(b.Origin.X, b.Origin.Y) {
					t.Fatalf("blade origin %+v outside %+v", b.Origin, fc.Area)
				}
			}
			if sim.World.Padding != cfg.World.Padding {
				t.Errorf("padding = %v, want %v", sim.World.Padding, cfg.World.Padding)
			}
		})
	}
}

func TestConfig_NewSimulationRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
	}{
		{"friction one", func(c *Config) { c.Ball.Friction = 1 }},
		{"nan friction", func(c *Config) { c.Ball.Friction = math.NaN() }},
		{"nan smoothing", func(c *Config) { c.Grass.Smoothing = math.NaN() }},
		{"inf reach", func(c *Config) { c.Grass.Reach = math.Inf(1) }},
		{"nan start", func(c *Config) { c.World.Start[0] = math.NaN() }},
		{"negative max bend", func(c *Config) { c.Grass.MaxBend = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := Preset("meadow")
			tt.apply(&cfg)
			if _, err := cfg.NewSimulation(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGrassConfig_FieldConfig(t *testing.T) {
	g := Presets["dusk"].Grass
	fc := g.FieldConfig(World{Bounds: Rect{Width: 960, Height: 540}, Padding: 60})
	if fc.Shade != ShadeDepth {
		t.Errorf("shade = %v, want ShadeDepth", fc.Shade)
	}
	if fc.Segments != (SegmentRange{Min: 4, Max: 6}) {
		t.Errorf("segments = %+v", fc.Segments)
	}
	if fc.Height != (Range{Min: 6, Max: 20}) {
		t.Errorf("height = %+v", fc.Height)
	}
	want := RGB8(0xb4, 0xdc, 0x8c).WithAlpha(0.2)
	if fc.Highlight.Color != want {
		t.Errorf("highlight color = %+v, want %+v", fc.Highlight.Color, want)
	}
}

func TestConfig_NewTheme(t *testing.T) {
	cfg, _ := Preset("dusk")
	if th := cfg.NewTheme(); th.Name != "dusk" {
		t.Errorf("theme = %q, want dusk", th.Name)
	}
	cfg.Theme = "meadow"
	if th := cfg.NewTheme(); th.Name != "meadow" {
		t.Errorf("theme override = %q, want meadow", th.Name)
	}
}
