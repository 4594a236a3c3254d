package meadow

// LineCap is the shape drawn at the ends of a stroked line.
type LineCap uint8

const (
	CapButt   LineCap = iota // flat end at the endpoint
	CapRound                 // semicircle past the endpoint
	CapSquare                // half-width square past the endpoint
)

// LineJoin is the shape drawn where stroked segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// LineStyle configures a stroked line.
type LineStyle struct {
	Width float64
	Cap   LineCap
	Join  LineJoin
}

// Surface is the drawing target the renderer emits primitives to. All
// coordinates are in world units, offset by the current translation.
type Surface interface {
	// FillRect fills r with p.
	FillRect(r Rect, p Paint)
	// StrokeRect outlines r with a line of the given width.
	StrokeRect(r Rect, width float64, c Color)
	// StrokeLine draws a single segment from a to b.
	StrokeLine(a, b Vec2, style LineStyle, c Color)
	// FillCircle fills a disc with p.
	FillCircle(center Vec2, radius float64, p Paint)
	// StrokeCircle outlines a circle.
	StrokeCircle(center Vec2, radius, width float64, c Color)
	// Translate offsets subsequent drawing by (dx, dy).
	Translate(dx, dy float64)
	// Save pushes the current translation; Restore pops it.
	Save()
	Restore()
}

// TranslateStack is the transform state shared by Surface implementations;
// the renderer only ever translates. Embed it to get Translate, Save and
// Restore, then map points with Point and paints with Local.
type TranslateStack struct {
	offset Vec2
	saved  []Vec2
}

// Translate offsets subsequent drawing by (dx, dy).
func (t *TranslateStack) Translate(dx, dy float64) {
	t.offset.X += dx
	t.offset.Y += dy
}

// Save pushes the current translation.
func (t *TranslateStack) Save() {
	t.saved = append(t.saved, t.offset)
}

// Restore pops the last saved translation. An unbalanced Restore resets to
// the identity.
func (t *TranslateStack) Restore() {
	if n := len(t.saved); n > 0 {
		t.offset = t.saved[n-1]
		t.saved = t.saved[:n-1]
		return
	}
	t.offset = Vec2{}
}

// Offset returns the current translation.
func (t *TranslateStack) Offset() Vec2 { return t.offset }

// Point maps a local point to target coordinates.
func (t *TranslateStack) Point(p Vec2) Vec2 { return p.Add(t.offset) }

// Local wraps p so it can be sampled at target coordinates. Gradients are
// defined in the space they were drawn in, so a translated sprite keeps its
// highlight.
func (t *TranslateStack) Local(p Paint) Paint {
	if _, flat := p.(Color); flat || t.offset == (Vec2{}) {
		return p
	}
	return localPaint{paint: p, offset: t.offset}
}

// ResetTransform clears the translation and the saved stack.
func (t *TranslateStack) ResetTransform() {
	t.offset = Vec2{}
	t.saved = t.saved[:0]
}

type localPaint struct {
	paint  Paint
	offset Vec2
}

func (l localPaint) ColorAt(x, y float64) Color {
	return l.paint.ColorAt(x-l.offset.X, y-l.offset.Y)
}
