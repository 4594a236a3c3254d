package meadow

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation failure from Config.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the file form of a scene. A config names a base preset; every
// key present in the file overrides that preset's value.
//
//	preset = "dusk"
//	activation = "key"
//
//	[ball]
//	max_speed = 7.5
//
//	[grass]
//	layers = 3
//	height = [10.0, 30.0]
type Config struct {
	Preset string `toml:"preset"`
	// Activation is "click", "key" or "always".
	Activation string `toml:"activation"`
	// Theme names the look. Empty uses the preset's name.
	Theme string `toml:"theme"`

	World WorldConfig `toml:"world"`
	Ball  BallConfig  `toml:"ball"`
	Grass GrassConfig `toml:"grass"`
}

// WorldConfig sizes the play area.
type WorldConfig struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`
	// Start is the ball's start position as fractions of the world size.
	Start [2]float64 `toml:"start"`
}

// GrassConfig is the file form of FieldConfig. Ranges are [min, max] pairs.
type GrassConfig struct {
	Blades int    `toml:"blades"`
	Layers int    `toml:"layers"`
	Seed   uint64 `toml:"seed"`
	// Area is "bounds" (the whole world) or "band" (full width, inside the
	// vertical padding).
	Area string `toml:"area"`
	// Shade is "intensity" or "depth".
	Shade string `toml:"shade"`

	Height      [2]float64 `toml:"height"`
	Width       [2]float64 `toml:"width"`
	SwaySpeed   [2]float64 `toml:"sway_speed"`
	Segments    [2]int     `toml:"segments"`
	ColorJitter float64    `toml:"color_jitter"`

	SwayAmplitude float64 `toml:"sway_amplitude"`
	SwayCoupling  float64 `toml:"sway_coupling"`
	Reach         float64 `toml:"reach"`
	MaxBend       float64 `toml:"max_bend"`
	Smoothing     float64 `toml:"smoothing"`
	BendScale     float64 `toml:"bend_scale"`
	Taper         float64 `toml:"taper"`

	Highlight HighlightConfig `toml:"highlight"`
}

// HighlightConfig is the file form of Highlight.
type HighlightConfig struct {
	At     float64 `toml:"at"`
	Sway   float64 `toml:"sway"`
	Bend   float64 `toml:"bend"`
	Length float64 `toml:"length"`
	Lean   float64 `toml:"lean"`
	Width  float64 `toml:"width"`
	// Color is "#rrggbb"; Alpha is its opacity.
	Color string  `toml:"color"`
	Alpha float64 `toml:"alpha"`
}

// Presets are the built-in scenes. "meadow" is a single dense layer over
// the whole window; "dusk" is five thinning depth layers under a sky
// gradient.
var Presets = map[string]Config{
	"meadow": {
		Preset:     "meadow",
		Activation: "click",
		World:      WorldConfig{Width: 960, Height: 540, Padding: 40, Start: [2]float64{0.5, 0.5}},
		Ball: BallConfig{
			Radius: 18, MaxSpeed: 5.5, Accel: 0.35, Friction: 0.9,
			SprintMultiplier: 1.6, Restitution: 0.35,
		},
		Grass: GrassConfig{
			Blades: 800, Layers: 1, Seed: 1, Area: "bounds", Shade: "intensity",
			Height: [2]float64{8, 24}, Width: [2]float64{1, 2.5}, SwaySpeed: [2]float64{0.008, 0.02},
			Segments: [2]int{3, 5}, ColorJitter: 0.075,
			SwayAmplitude: 3, SwayCoupling: 0.008, Reach: 120, MaxBend: 18,
			Smoothing: 0.15, BendScale: 1.2, Taper: 0.7,
			Highlight: HighlightConfig{
				At: 0.4, Sway: 1, Bend: 0.3, Length: 0.3, Lean: 2, Width: 0.4,
				Color: "#c8dc96", Alpha: 0.3,
			},
		},
	},
	"dusk": {
		Preset:     "dusk",
		Activation: "key",
		World:      WorldConfig{Width: 960, Height: 540, Padding: 60, Start: [2]float64{0.5, 0.35}},
		Ball: BallConfig{
			Radius: 22, MaxSpeed: 6, Accel: 0.38, Friction: 0.88,
			SprintMultiplier: 1.7, Restitution: 0.4,
		},
		Grass: GrassConfig{
			Blades: 150, Layers: 5, Seed: 1, Area: "band", Shade: "depth",
			Height: [2]float64{6, 20}, Width: [2]float64{1.2, 3}, SwaySpeed: [2]float64{0.006, 0.016},
			Segments: [2]int{4, 6}, ColorJitter: 0.1,
			SwayAmplitude: 4, SwayCoupling: 0.006, Reach: 100, MaxBend: 22,
			Smoothing: 0.16, BendScale: 1.5, Taper: 0.6,
			Highlight: HighlightConfig{
				At: 0.35, Sway: 0.3, Bend: 0.1, Length: 0.25, Lean: 2.5, Width: 0.3,
				Color: "#b4dc8c", Alpha: 0.2,
			},
		},
	},
}

// Preset returns a copy of the named built-in config.
func Preset(name string) (Config, bool) {
	c, ok := Presets[name]
	return c, ok
}

// LoadConfig reads and validates a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	c, err := DecodeConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}

// DecodeConfig parses TOML on top of the preset it names ("meadow" when
// absent) and validates the result. Unknown keys are rejected.
func DecodeConfig(data []byte) (Config, error) {
	var head struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	name := head.Preset
	if name == "" {
		name = "meadow"
	}
	c, ok := Preset(name)
	if !ok {
		return Config{}, fmt.Errorf("preset %q: %w", name, ErrInvalidConfig)
	}

	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalidConfig)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}

type tuning struct {
	name string
	v    float64
}

// checkFinite rejects NaN and infinite values. TOML spells them nan and inf.
func checkFinite(section string, fields ...tuning) error {
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid("%s %s %g is not finite", section, f.name, f.v)
		}
	}
	return nil
}

// Validate reports the first value that would break the simulation.
// Every returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if _, ok := Presets[c.Preset]; !ok {
		return invalid("preset %q", c.Preset)
	}
	if _, ok := ParseActivation(c.Activation); !ok {
		return invalid("activation %q", c.Activation)
	}
	if _, ok := ThemeByName(c.themeName(), Rect{}, 0); !ok {
		return invalid("theme %q", c.themeName())
	}

	w := c.World
	if err := checkFinite("world",
		tuning{"width", w.Width}, tuning{"height", w.Height}, tuning{"padding", w.Padding},
		tuning{"start[0]", w.Start[0]}, tuning{"start[1]", w.Start[1]},
	); err != nil {
		return err
	}
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("world size %gx%g", w.Width, w.Height)
	}
	if w.Padding < 0 {
		return invalid("world padding %g", w.Padding)
	}
	if w.Start[0] < 0 || w.Start[0] > 1 || w.Start[1] < 0 || w.Start[1] > 1 {
		return invalid("world start %v outside [0, 1]", w.Start)
	}

	b := c.Ball
	if err := checkFinite("ball",
		tuning{"radius", b.Radius}, tuning{"max_speed", b.MaxSpeed}, tuning{"accel", b.Accel},
		tuning{"friction", b.Friction}, tuning{"restitution", b.Restitution},
		tuning{"sprint", b.SprintMultiplier},
	); err != nil {
		return err
	}
	switch {
	case b.Radius <= 0:
		return invalid("ball radius %g", b.Radius)
	case b.MaxSpeed <= 0:
		return invalid("ball max_speed %g", b.MaxSpeed)
	case b.Accel < 0:
		return invalid("ball accel %g", b.Accel)
	case b.Friction <= 0 || b.Friction >= 1:
		return invalid("ball friction %g outside (0, 1)", b.Friction)
	case b.Restitution < 0 || b.Restitution > 1:
		return invalid("ball restitution %g outside [0, 1]", b.Restitution)
	case b.SprintMultiplier < 1:
		return invalid("ball sprint %g below 1", b.SprintMultiplier)
	}
	arena := c.world().Arena()
	if 2*b.Radius > arena.Width || 2*b.Radius > arena.Height {
		return invalid("ball radius %g does not fit a %gx%g arena", b.Radius, arena.Width, arena.Height)
	}

	return c.Grass.validate()
}

func (g GrassConfig) validate() error {
	h := g.Highlight
	if err := checkFinite("grass",
		tuning{"height[0]", g.Height[0]}, tuning{"height[1]", g.Height[1]},
		tuning{"width[0]", g.Width[0]}, tuning{"width[1]", g.Width[1]},
		tuning{"sway_speed[0]", g.SwaySpeed[0]}, tuning{"sway_speed[1]", g.SwaySpeed[1]},
		tuning{"color_jitter", g.ColorJitter}, tuning{"sway_amplitude", g.SwayAmplitude},
		tuning{"sway_coupling", g.SwayCoupling}, tuning{"reach", g.Reach},
		tuning{"max_bend", g.MaxBend}, tuning{"smoothing", g.Smoothing},
		tuning{"bend_scale", g.BendScale}, tuning{"taper", g.Taper},
	); err != nil {
		return err
	}
	if err := checkFinite("grass highlight",
		tuning{"at", h.At}, tuning{"sway", h.Sway}, tuning{"bend", h.Bend},
		tuning{"length", h.Length}, tuning{"lean", h.Lean}, tuning{"width", h.Width},
		tuning{"alpha", h.Alpha},
	); err != nil {
		return err
	}
	switch {
	case g.Blades < 1:
		return invalid("grass blades %d", g.Blades)
	case g.Layers < 1:
		return invalid("grass layers %d", g.Layers)
	case g.Area != "bounds" && g.Area != "band":
		return invalid("grass area %q", g.Area)
	case g.Shade != "intensity" && g.Shade != "depth":
		return invalid("grass shade %q", g.Shade)
	case g.Segments[0] < 2 || g.Segments[1] > 7 || g.Segments[0] > g.Segments[1]:
		return invalid("grass segments %v outside 2..7", g.Segments)
	case g.Reach <= 0:
		return invalid("grass reach %g", g.Reach)
	case g.Smoothing <= 0 || g.Smoothing > 1:
		return invalid("grass smoothing %g outside (0, 1]", g.Smoothing)
	case g.Taper < 0 || g.Taper > 1:
		return invalid("grass taper %g outside [0, 1]", g.Taper)
	case g.ColorJitter < 0:
		return invalid("grass color_jitter %g", g.ColorJitter)
	case g.SwayAmplitude < 0:
		return invalid("grass sway_amplitude %g", g.SwayAmplitude)
	case g.SwayCoupling < 0:
		return invalid("grass sway_coupling %g", g.SwayCoupling)
	case g.MaxBend < 0:
		return invalid("grass max_bend %g", g.MaxBend)
	case g.BendScale < 0:
		return invalid("grass bend_scale %g", g.BendScale)
	}
	for name, r := range map[string][2]float64{"height": g.Height, "width": g.Width, "sway_speed": g.SwaySpeed} {
		if r[0] < 0 || r[0] > r[1] {
			return invalid("grass %s %v", name, r)
		}
	}
	if _, err := ParseHex(g.Highlight.Color); err != nil {
		return invalid("grass highlight: %v", err)
	}
	if a := g.Highlight.Alpha; a < 0 || a > 1 {
		return invalid("grass highlight alpha %g outside [0, 1]", a)
	}
	return nil
}

func (c Config) themeName() string {
	if c.Theme != "" {
		return c.Theme
	}
	return c.Preset
}

func (c Config) world() World {
	return World{
		Bounds:  Rect{Width: c.World.Width, Height: c.World.Height},
		Padding: c.World.Padding,
	}
}

// FieldConfig converts the grass section for a world.
func (g GrassConfig) FieldConfig(w World) FieldConfig {
	area := w.Bounds
	if g.Area == "band" {
		area.Y += w.Padding
		area.Height -= 2 * w.Padding
	}
	shade := ShadeIntensity
	if g.Shade == "depth" {
		shade = ShadeDepth
	}
	hl, _ := ParseHex(g.Highlight.Color)
	return FieldConfig{
		Blades:        g.Blades,
		Layers:        g.Layers,
		Area:          area,
		Height:        Range{Min: g.Height[0], Max: g.Height[1]},
		Width:         Range{Min: g.Width[0], Max: g.Width[1]},
		SwaySpeed:     Range{Min: g.SwaySpeed[0], Max: g.SwaySpeed[1]},
		ColorJitter:   g.ColorJitter,
		Segments:      SegmentRange{Min: g.Segments[0], Max: g.Segments[1]},
		SwayAmplitude: g.SwayAmplitude,
		SwayCoupling:  g.SwayCoupling,
		Reach:         g.Reach,
		MaxBend:       g.MaxBend,
		Smoothing:     g.Smoothing,
		BendScale:     g.BendScale,
		Taper:         g.Taper,
		Highlight: Highlight{
			At:     g.Highlight.At,
			Sway:   g.Highlight.Sway,
			Bend:   g.Highlight.Bend,
			Length: g.Highlight.Length,
			Lean:   g.Highlight.Lean,
			Width:  g.Highlight.Width,
			Color:  hl.WithAlpha(g.Highlight.Alpha),
		},
		Shade: shade,
		Seed:  g.Seed,
	}
}

// NewSimulation validates c and builds a fresh simulation from it.
func (c Config) NewSimulation() (*Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	world := c.world()
	start := Vec2{X: c.World.Width * c.World.Start[0], Y: c.World.Height * c.World.Start[1]}
	policy, _ := ParseActivation(c.Activation)
	return NewSimulation(
		world,
		NewBall(start, c.Ball),
		NewField(c.Grass.FieldConfig(world)),
		NewControls(policy),
	), nil
}

// NewTheme returns the theme named by c for its world and ball size.
func (c Config) NewTheme() Theme {
	t, ok := ThemeByName(c.themeName(), c.world().Bounds, c.Ball.Radius)
	if !ok {
		return ThemeMeadow(c.Ball.Radius)
	}
	return t
}
