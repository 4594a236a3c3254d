package meadow

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
)

// TickRate is the fixed simulation rate in steps per second. All per-frame
// tuning constants (acceleration, friction, sway speed) are expressed per tick.
const TickRate = 60

// Vec2 is a 2D vector used for positions, velocities, and offsets.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Inset shrinks the rectangle by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Range is a general-purpose min/max range used for randomized blade shape
// parameters.
type Range struct {
	Min, Max float64
}

// Random returns a uniformly distributed value in [Min, Max).
func (r Range) Random(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Lerp returns the value at fraction t between Min and Max.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// RGB8 builds an opaque color from 0-255 channel values.
func RGB8(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// RGBA8 builds a color from 0-255 channel values and an alpha in [0, 1],
// matching the rgba() notation used for stroke styles.
func RGBA8(r, g, b float64, a float64) Color {
	return Color{R: clamp01(r / 255), G: clamp01(g / 255), B: clamp01(b / 255), A: clamp01(a)}
}

// Hex parses a "#rrggbb" literal. It panics on malformed input and is meant
// for package-level theme constants.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic("meadow: " + err.Error())
	}
	return c
}

// ParseHex parses a "#rrggbb" color.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad hex color %q", s)
	}
	return RGB8(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Scale multiplies the RGB channels by k, leaving alpha alone.
func (c Color) Scale(k float64) Color {
	return Color{R: clamp01(c.R * k), G: clamp01(c.G * k), B: clamp01(c.B * k), A: c.A}
}

// Lerp interpolates every channel between c and o.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// NRGBA converts to a straight-alpha color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// ColorAt implements Paint. A plain color is uniform everywhere.
func (c Color) ColorAt(x, y float64) Color { return c }

// Paint is anything a fill can be sampled from: a flat Color or a gradient.
type Paint interface {
	ColorAt(x, y float64) Color
}

// ColorStop is one stop of a gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  Color
}

// gradientStops holds sorted stops and interpolates between them.
type gradientStops []ColorStop

func newGradientStops(stops []ColorStop) gradientStops {
	s := make(gradientStops, len(stops))
	copy(s, stops)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Offset < s[j].Offset })
	return s
}

func (s gradientStops) at(t float64) Color {
	switch {
	case len(s) == 0:
		return ColorTransparent
	case t <= s[0].Offset:
		return s[0].Color
	case t >= s[len(s)-1].Offset:
		return s[len(s)-1].Color
	}
	for i := 1; i < len(s); i++ {
		if t <= s[i].Offset {
			a, b := s[i-1], s[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return s[len(s)-1].Color
}

// LinearGradient varies color along the segment From→To. Points are
// projected onto that segment; outside it the end stops extend.
type LinearGradient struct {
	From, To Vec2
	stops    gradientStops
}

// NewLinearGradient builds a linear gradient. Stops need not be sorted.
func NewLinearGradient(from, to Vec2, stops ...ColorStop) *LinearGradient {
	return &LinearGradient{From: from, To: to, stops: newGradientStops(stops)}
}

// ColorAt implements Paint.
func (g *LinearGradient) ColorAt(x, y float64) Color {
	d := g.To.Sub(g.From)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return g.stops.at(0)
	}
	t := ((x-g.From.X)*d.X + (y-g.From.Y)*d.Y) / l2
	return g.stops.at(t)
}

// RadialGradient blends between two circles: the start circle (Inner, R0)
// and the end circle (Outer, R1). Offset centres give the off-axis highlight
// used on the ball sprite.
type RadialGradient struct {
	Inner, Outer Vec2
	R0, R1       float64
	stops        gradientStops
}

// NewRadialGradient builds a radial gradient. Stops need not be sorted.
func NewRadialGradient(inner Vec2, r0 float64, outer Vec2, r1 float64, stops ...ColorStop) *RadialGradient {
	return &RadialGradient{Inner: inner, Outer: outer, R0: r0, R1: r1, stops: newGradientStops(stops)}
}

// ColorAt implements Paint. It solves for the largest t where the point lies
// on the interpolated circle with a non-negative radius, then clamps t.
func (g *RadialGradient) ColorAt(x, y float64) Color {
	cd := g.Outer.Sub(g.Inner)
	pd := Vec2{x - g.Inner.X, y - g.Inner.Y}
	dr := g.R1 - g.R0

	a := cd.X*cd.X + cd.Y*cd.Y - dr*dr
	b := pd.X*cd.X + pd.Y*cd.Y + g.R0*dr
	c := pd.X*pd.X + pd.Y*pd.Y - g.R0*g.R0

	var t float64
	if math.Abs(a) < 1e-9 {
		if b == 0 {
			return g.stops.at(1)
		}
		t = c / (2 * b)
	} else {
		disc := b*b - a*c
		if disc < 0 {
			return g.stops.at(1)
		}
		sq := math.Sqrt(disc)
		t1, t2 := (b+sq)/a, (b-sq)/a
		if t2 > t1 {
			t1, t2 = t2, t1
		}
		t = t1
		if g.R0+t*dr < 0 {
			t = t2
		}
	}
	return g.stops.at(clamp01(t))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
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
