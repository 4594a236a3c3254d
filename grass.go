package meadow

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
)

// Shade selects how blade stroke colors are derived.
type Shade uint8

const (
	// ShadeIntensity brightens a blade from a darker base toward its tip.
	ShadeIntensity Shade = iota
	// ShadeDepth colors a blade by its layer depth; farther layers are
	// darker and more transparent, and alpha rises toward the tip.
	ShadeDepth
)

// SegmentRange is the inclusive range of polyline segments per blade.
type SegmentRange struct {
	Min, Max int
}

// Highlight describes the short secondary stroke drawn near a blade's tip.
type Highlight struct {
	// At is where the stroke starts, as a fraction of the blade height.
	At float64
	// Sway and Bend are the shares of the blade's offsets applied to it.
	Sway, Bend float64
	// Length is how far it rises, as a fraction of the blade height.
	Length float64
	// Lean is its horizontal run; it starts one unit left of the anchor.
	Lean float64
	// Width is its stroke width as a fraction of the blade width.
	Width float64
	// Color of the stroke. Under ShadeDepth its alpha is scaled by depth.
	Color Color
}

// FieldConfig controls blade generation and animation. All animation values
// are per tick.
type FieldConfig struct {
	// Blades is the base blade count per layer.
	Blades int
	// Layers is the number of depth layers. With one layer every blade has
	// depth 1 and the count is exactly Blades.
	Layers int
	// Area is the rectangle blade origins are scattered in.
	Area Rect

	Height    Range
	Width     Range
	SwaySpeed Range
	// ColorJitter bounds the per-blade color offset to [-ColorJitter, ColorJitter).
	ColorJitter float64
	Segments    SegmentRange

	SwayAmplitude float64
	// SwayCoupling converts ball speed into extra sway phase per tick.
	SwayCoupling float64
	// Reach is the distance at which the ball stops bending grass.
	Reach float64
	// MaxBend is the bend reached with the ball directly on a blade.
	MaxBend float64
	// Smoothing is the one-pole filter factor approaching the target bend.
	Smoothing float64
	// BendScale converts bend into lateral tip displacement.
	BendScale float64
	// Taper is the fraction of width lost from base to tip.
	Taper float64

	Highlight Highlight
	Shade     Shade
	// Seed makes generation reproducible.
	Seed uint64
}

// minBendDistance is the distance below which the bend direction is zero.
const minBendDistance = 1.0

// Blade is one grass element. Shape fields are fixed at creation; Phase,
// Bend, Sway and Direction change every tick.
type Blade struct {
	Origin      Vec2
	BaseHeight  float64
	Width       float64
	SwaySpeed   float64
	ColorOffset float64
	Depth       float64
	Segments    int

	// Phase is the sway oscillator phase in radians.
	Phase float64
	// Bend is the smoothed bend magnitude, never negative.
	Bend float64
	// Sway is the lateral tip offset from the oscillator this tick.
	Sway float64
	// Direction is -1..1, the horizontal unit component from ball to blade.
	Direction float64

	palette   []Color
	highlight Color
}

// Segment is one stroked line of a blade.
type Segment struct {
	From, To Vec2
	Width    float64
	Color    Color
}

// Field is a fixed collection of grass blades. It is generated once and
// never resized.
type Field struct {
	cfg    FieldConfig
	blades []Blade
}

// NewField generates the blades described by cfg.
func NewField(cfg FieldConfig) *Field {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	layers := max(cfg.Layers, 1)

	f := &Field{cfg: cfg}
	for li := range layers {
		depth := 1.0
		count := cfg.Blades
		if layers > 1 {
			depth = 0.2 + float64(li)/float64(layers)*0.8
			count = int(math.Floor(float64(cfg.Blades) * (1 - depth*0.5)))
		}
		for range count {
			f.blades = append(f.blades, newBlade(rng, &cfg, depth))
		}
	}
	return f
}

func newBlade(rng *rand.Rand, cfg *FieldConfig, depth float64) Blade {
	segMin := max(cfg.Segments.Min, 1)
	segMax := max(cfg.Segments.Max, segMin)

	b := Blade{
		BaseHeight:  cfg.Height.Random(rng),
		Origin:      Vec2{X: cfg.Area.X + rng.Float64()*cfg.Area.Width, Y: cfg.Area.Y + rng.Float64()*cfg.Area.Height},
		Phase:       rng.Float64() * 2 * math.Pi,
		SwaySpeed:   cfg.SwaySpeed.Random(rng),
		Width:       cfg.Width.Random(rng),
		ColorOffset: rng.Float64()*2*cfg.ColorJitter - cfg.ColorJitter,
		Segments:    segMin + rng.IntN(segMax-segMin+1),
		Depth:       depth,
	}
	b.palette, b.highlight = bladeColors(&b, cfg)
	return b
}

// bladeColors builds the per-segment stroke colors and the highlight color.
// They depend only on static blade fields, so they are built once.
func bladeColors(b *Blade, cfg *FieldConfig) ([]Color, Color) {
	palette := make([]Color, b.Segments)
	off := b.ColorOffset
	switch cfg.Shade {
	case ShadeDepth:
		dc := 0.6 + b.Depth*0.4
		g := math.Round(140*dc + off*40)
		bl := math.Round(80*dc + off*30)
		for i := range palette {
			t := float64(i) / float64(b.Segments)
			palette[i] = RGBA8(100, g, bl, (0.4+t*0.6)*(0.7+b.Depth*0.3))
		}
		hl := cfg.Highlight.Color
		return palette, hl.WithAlpha(hl.A * (0.5 + b.Depth))
	default:
		r, g, bl := 131-off*50, 196-off*80, 120+off*40
		for i := range palette {
			t := float64(i) / float64(b.Segments)
			k := 0.5 + t*0.5
			palette[i] = RGBA8(math.Round(r*k), math.Round(g*k), math.Round(bl*k), 0.6+t*0.4)
		}
		return palette, cfg.Highlight.Color
	}
}

// Config returns the configuration the field was generated from.
func (f *Field) Config() FieldConfig { return f.cfg }

// Len returns the number of blades.
func (f *Field) Len() int { return len(f.blades) }

// Blade returns the i-th blade in current draw order.
func (f *Field) Blade(i int) *Blade { return &f.blades[i] }

// Blades returns the blades in draw order. The slice MUST NOT be resized.
func (f *Field) Blades() []Blade { return f.blades }

// Update advances every blade by one tick against the ball position and
// speed, then re-sorts blades back to front by origin Y.
func (f *Field) Update(ball Vec2, speed float64) {
	cfg := &f.cfg
	phaseBoost := speed * cfg.SwayCoupling
	for i := range f.blades {
		f.blades[i].update(cfg, ball, phaseBoost)
	}
	slices.SortStableFunc(f.blades, func(a, b Blade) int {
		return cmp.Compare(a.Origin.Y, b.Origin.Y)
	})
}

func (b *Blade) update(cfg *FieldConfig, ball Vec2, phaseBoost float64) {
	b.Phase += b.SwaySpeed + phaseBoost
	b.Sway = math.Sin(b.Phase) * cfg.SwayAmplitude

	dx := b.Origin.X - ball.X
	dy := b.Origin.Y - ball.Y
	dist := math.Hypot(dx, dy)

	influence := 0.0
	if cfg.Reach > 0 {
		influence = clamp(1-dist/cfg.Reach, 0, 1)
	}
	target := influence * influence * cfg.MaxBend
	b.Bend += (target - b.Bend) * cfg.Smoothing

	if dist < minBendDistance {
		b.Direction = 0
	} else {
		b.Direction = dx / dist
	}
}

// Influence returns the unsquared proximity score of a point at distance
// dist from a blade.
func (f *Field) Influence(dist float64) float64 {
	if f.cfg.Reach <= 0 {
		return 0
	}
	return clamp(1-dist/f.cfg.Reach, 0, 1)
}

// AppendGeometry appends the strokes of blade i: its tapered segments from
// base to tip, then the highlight. Sway and bend offsets grow with t and
// t² respectively, so bending compounds toward the tip.
func (f *Field) AppendGeometry(dst []Segment, i int) []Segment {
	b := &f.blades[i]
	cfg := &f.cfg
	bendOffset := b.Direction * b.Bend * cfg.BendScale
	n := float64(b.Segments)

	point := func(t float64) Vec2 {
		return Vec2{
			X: b.Origin.X + b.Sway*t + bendOffset*t*t,
			Y: b.Origin.Y - b.BaseHeight*t,
		}
	}

	for s := 0; s < b.Segments; s++ {
		t := float64(s) / n
		next := float64(s+1) / n
		dst = append(dst, Segment{
			From:  point(t),
			To:    point(next),
			Width: b.Width * (1 - t*cfg.Taper),
			Color: b.palette[s],
		})
	}

	hl := &cfg.Highlight
	hx := b.Origin.X + b.Sway*hl.Sway + bendOffset*hl.Bend
	hy := b.Origin.Y - b.BaseHeight*hl.At
	dst = append(dst, Segment{
		From:  Vec2{X: hx - 1, Y: hy},
		To:    Vec2{X: hx + hl.Lean, Y: hy - b.BaseHeight*hl.Length},
		Width: b.Width * hl.Width,
		Color: b.highlight,
	})
	return dst
}
