package meadow

// BallSprite describes how the ball is painted. Its gradients are defined
// around the origin, since the renderer translates to the ball centre.
type BallSprite struct {
	// Glow, if set, fills a halo GlowPad units wider than the ball.
	Glow    Paint
	GlowPad float64
	Body    Paint
	// Highlight, if HighlightScale > 0, fills a small disc of radius
	// Radius*HighlightScale at HighlightOffset.
	Highlight       Color
	HighlightOffset Vec2
	HighlightScale  float64
	Rim             Color
	RimWidth        float64
}

// Theme is the static look of a scene. Paints are built once when the theme
// is constructed and only sampled while drawing.
type Theme struct {
	Name string
	// Background fills the full world bounds.
	Background Paint
	// Field, if set, fills the padded arena.
	Field         Paint
	Boundary      Color
	BoundaryWidth float64
	// Overlay, if set, is drawn over the grass across the full bounds.
	Overlay Paint
	// Prompt is the idle overlay tint shown before activation.
	Prompt Color
	Ball   BallSprite
}

// ThemeMeadow is the flat look: solid backdrop, a darker arena and a light
// shading overlay.
func ThemeMeadow(radius float64) Theme {
	return Theme{
		Name:          "meadow",
		Background:    Hex("#1a2618"),
		Field:         Hex("#1f2d1c"),
		Boundary:      RGBA8(255, 255, 255, 0.08),
		BoundaryWidth: 2,
		Overlay:       RGBA8(0, 0, 0, 0.08),
		Prompt:        RGBA8(0, 0, 0, 0.45),
		Ball: BallSprite{
			Body: NewRadialGradient(Vec2{-6, -6}, 4, Vec2{}, radius+6,
				ColorStop{0, Hex("#f7f8ff")},
				ColorStop{0.6, Hex("#98d6ff")},
				ColorStop{1, Hex("#3a78a1")},
			),
			Rim:      RGBA8(255, 255, 255, 0.5),
			RimWidth: 2,
		},
	}
}

// ThemeDusk is the layered look: a vertical sky gradient, a radial vignette
// over the grass and a glowing ball.
func ThemeDusk(bounds Rect, radius float64) Theme {
	center := bounds.Center()
	return Theme{
		Name: "dusk",
		Background: NewLinearGradient(Vec2{X: bounds.X, Y: bounds.Y}, Vec2{X: bounds.X, Y: bounds.Y + bounds.Height},
			ColorStop{0, Hex("#2a5a2a")},
			ColorStop{0.6, Hex("#1f3a1f")},
			ColorStop{1, Hex("#1a2618")},
		),
		Boundary:      RGBA8(255, 255, 255, 0.06),
		BoundaryWidth: 2,
		Overlay: NewRadialGradient(center, 200, center, 900,
			ColorStop{0, RGBA8(0, 0, 0, 0)},
			ColorStop{1, RGBA8(0, 0, 0, 0.15)},
		),
		Prompt: RGBA8(0, 0, 0, 0.5),
		Ball: BallSprite{
			Glow: NewRadialGradient(Vec2{-8, -8}, 0, Vec2{}, radius+12,
				ColorStop{0, RGBA8(200, 230, 255, 0.4)},
				ColorStop{0.4, RGBA8(120, 180, 255, 0.2)},
				ColorStop{1, RGBA8(0, 0, 0, 0)},
			),
			GlowPad: 12,
			Body: NewRadialGradient(Vec2{-7, -7}, 6, Vec2{}, radius+8,
				ColorStop{0, Hex("#ffffff")},
				ColorStop{0.5, Hex("#a0d6ff")},
				ColorStop{1, Hex("#3a78a1")},
			),
			Highlight:       RGBA8(255, 255, 255, 0.6),
			HighlightOffset: Vec2{-5, -6},
			HighlightScale:  0.35,
			Rim:             RGBA8(255, 255, 255, 0.4),
			RimWidth:        2,
		},
	}
}

// ThemeByName returns the theme called name ("meadow" or "dusk").
func ThemeByName(name string, bounds Rect, radius float64) (Theme, bool) {
	switch name {
	case "meadow":
		return ThemeMeadow(radius), true
	case "dusk":
		return ThemeDusk(bounds, radius), true
	}
	return Theme{}, false
}

// bladeStyle is shared by every grass stroke.
var bladeStyle = LineStyle{Cap: CapRound, Join: JoinRound}

// Renderer emits one frame of a Simulation to a Surface. It keeps a scratch
// segment buffer so steady-state frames do not allocate.
type Renderer struct {
	Theme Theme
	segs  []Segment
}

// NewRenderer creates a renderer using theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{Theme: theme}
}

// Draw paints the backdrop, the grass back to front, the overlay and then
// the ball. It does not modify the simulation.
func (r *Renderer) Draw(dst Surface, sim *Simulation) {
	th := &r.Theme
	bounds := sim.World.Bounds
	arena := sim.World.Arena()

	dst.FillRect(bounds, th.Background)
	if th.Field != nil {
		dst.FillRect(arena, th.Field)
	}
	dst.StrokeRect(arena, th.BoundaryWidth, th.Boundary)

	r.drawGrass(dst, sim.Field)

	if th.Overlay != nil {
		dst.FillRect(bounds, th.Overlay)
	}

	r.drawBall(dst, sim.Ball.Pos, sim.Ball.Radius)
}

func (r *Renderer) drawGrass(dst Surface, f *Field) {
	for i := 0; i < f.Len(); i++ {
		r.segs = f.AppendGeometry(r.segs[:0], i)
		for _, s := range r.segs {
			style := bladeStyle
			style.Width = s.Width
			dst.StrokeLine(s.From, s.To, style, s.Color)
		}
	}
}

func (r *Renderer) drawBall(dst Surface, pos Vec2, radius float64) {
	sp := &r.Theme.Ball
	dst.Save()
	dst.Translate(pos.X, pos.Y)

	if sp.Glow != nil {
		dst.FillCircle(Vec2{}, radius+sp.GlowPad, sp.Glow)
	}
	dst.FillCircle(Vec2{}, radius, sp.Body)
	if sp.HighlightScale > 0 {
		dst.FillCircle(sp.HighlightOffset, radius*sp.HighlightScale, sp.Highlight)
	}
	if sp.RimWidth > 0 {
		dst.StrokeCircle(Vec2{}, radius, sp.RimWidth, sp.Rim)
	}

	dst.Restore()
}
