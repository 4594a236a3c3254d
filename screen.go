package meadow

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices leaves headroom below the uint16 index limit for the
// largest single primitive appended before a flush check.
const maxBatchVertices = 60000

// gradientGrid is the rect subdivision used when a fill is not a flat color.
const gradientGrid = 16

// gradientRings is the number of rings used for a non-flat disc fill.
const gradientRings = 10

// --- White pixel singleton (single-threaded, like the game loop) ---

var whiteImage, whiteSubImage *ebiten.Image

// ensureWhiteSubImage returns the centre pixel of a 3x3 white image. Sampling
// the centre avoids bleeding from the texture edge.
func ensureWhiteSubImage() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// ScreenSurface draws onto an Ebitengine image. Fills become vertex-colored
// triangles in one shared buffer, flushed in order with DrawTriangles.
// Gradient fills are sampled per vertex, which needs no shader. Strokes are
// drawn with vector.StrokePath.
type ScreenSurface struct {
	TranslateStack

	dst   *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint16
	path  vector.Path
	triOp ebiten.DrawTrianglesOptions

	// flushes counts DrawTriangles calls since Begin.
	flushes int
}

// NewScreenSurface creates a surface. Call Begin before drawing and End
// after.
func NewScreenSurface() *ScreenSurface {
	s := &ScreenSurface{
		verts: make([]ebiten.Vertex, 0, 4096),
		inds:  make([]uint16, 0, 8192),
	}
	s.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	s.triOp.AntiAlias = true
	return s
}

// Begin targets dst and resets the transform.
func (s *ScreenSurface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.flushes = 0
	s.ResetTransform()
}

// End submits any buffered geometry and returns the number of draw calls
// made since Begin.
func (s *ScreenSurface) End() int {
	s.flush()
	s.dst = nil
	return s.flushes
}

func (s *ScreenSurface) flush() {
	if s.dst != nil && len(s.inds) > 0 {
		s.dst.DrawTriangles(s.verts, s.inds, ensureWhiteSubImage(), &s.triOp)
		s.flushes++
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

func (s *ScreenSurface) reserve(n int) {
	if len(s.verts)+n > maxBatchVertices {
		s.flush()
	}
}

// vertex builds a premultiplied white-sampling vertex.
func vertex(x, y float64, c Color) ebiten.Vertex {
	a := float32(clamp01(c.A))
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(clamp01(c.R)) * a,
		ColorG: float32(clamp01(c.G)) * a,
		ColorB: float32(clamp01(c.B)) * a,
		ColorA: a,
	}
}

var capModes = [...]vector.LineCap{
	CapButt:   vector.LineCapButt,
	CapRound:  vector.LineCapRound,
	CapSquare: vector.LineCapSquare,
}

var joinModes = [...]vector.LineJoin{
	JoinMiter: vector.LineJoinMiter,
	JoinRound: vector.LineJoinRound,
	JoinBevel: vector.LineJoinBevel,
}

func strokeOptions(style LineStyle) vector.StrokeOptions {
	return vector.StrokeOptions{
		Width:      float32(style.Width),
		LineCap:    capModes[style.Cap],
		LineJoin:   joinModes[style.Join],
		MiterLimit: 10,
	}
}

func pathOptions(c Color) vector.DrawPathOptions {
	op := vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c.NRGBA())
	return op
}

// stroke draws the pending path. Buffered fills go out first so strokes
// stay in submission order; Ebitengine batches consecutive paths itself.
func (s *ScreenSurface) stroke(style LineStyle, c Color) {
	if s.dst != nil {
		s.flush()
		op, dop := strokeOptions(style), pathOptions(c)
		vector.StrokePath(s.dst, &s.path, &op, &dop)
	}
	s.path.Reset()
}

// StrokeLine implements Surface.
func (s *ScreenSurface) StrokeLine(a, b Vec2, style LineStyle, c Color) {
	if c.A <= 0 || style.Width <= 0 {
		return
	}
	a, b = s.Point(a), s.Point(b)
	s.path.MoveTo(float32(a.X), float32(a.Y))
	s.path.LineTo(float32(b.X), float32(b.Y))
	s.stroke(style, c)
}

// StrokeRect implements Surface.
func (s *ScreenSurface) StrokeRect(r Rect, width float64, c Color) {
	if c.A <= 0 || width <= 0 {
		return
	}
	o := s.Point(Vec2{X: r.X, Y: r.Y})
	x0, y0 := float32(o.X), float32(o.Y)
	x1, y1 := x0+float32(r.Width), y0+float32(r.Height)
	s.path.MoveTo(x0, y0)
	s.path.LineTo(x1, y0)
	s.path.LineTo(x1, y1)
	s.path.LineTo(x0, y1)
	s.path.Close()
	s.stroke(LineStyle{Width: width, Join: JoinMiter}, c)
}

// StrokeCircle implements Surface.
func (s *ScreenSurface) StrokeCircle(center Vec2, radius, width float64, c Color) {
	if c.A <= 0 || width <= 0 || radius <= 0 {
		return
	}
	p := s.Point(center)
	s.path.Arc(float32(p.X), float32(p.Y), float32(radius), 0, 2*math.Pi, vector.Clockwise)
	s.path.Close()
	s.stroke(LineStyle{Width: width, Join: JoinRound}, c)
}

// FillRect implements Surface. Flat colors are one quad; gradients are a
// grid sampled at every vertex.
func (s *ScreenSurface) FillRect(r Rect, p Paint) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	cols, rows := 1, 1
	if _, flat := p.(Color); !flat {
		cols, rows = gradientGrid, gradientGrid
	}
	paint := s.Local(p)
	o := s.Point(Vec2{X: r.X, Y: r.Y})

	s.reserve((cols + 1) * (rows + 1))
	base := uint16(len(s.verts))
	for j := 0; j <= rows; j++ {
		y := o.Y + r.Height*float64(j)/float64(rows)
		for i := 0; i <= cols; i++ {
			x := o.X + r.Width*float64(i)/float64(cols)
			s.verts = append(s.verts, vertex(x, y, paint.ColorAt(x, y)))
		}
	}
	stride := uint16(cols + 1)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			tl := base + uint16(j)*stride + uint16(i)
			tr, bl := tl+1, tl+stride
			br := bl + 1
			s.inds = append(s.inds, tl, tr, bl, tr, br, bl)
		}
	}
}

// FillCircle implements Surface. The disc is a fan of concentric rings so
// radial gradients interpolate smoothly.
func (s *ScreenSurface) FillCircle(center Vec2, radius float64, p Paint) {
	if radius <= 0 {
		return
	}
	rings := 1
	if _, flat := p.(Color); !flat {
		rings = gradientRings
	}
	slices := max(16, min(96, int(radius*1.5)))
	paint := s.Local(p)
	c := s.Point(center)

	s.reserve(1 + rings*slices)
	base := uint16(len(s.verts))
	s.verts = append(s.verts, vertex(c.X, c.Y, paint.ColorAt(c.X, c.Y)))
	for ring := 1; ring <= rings; ring++ {
		rr := radius * float64(ring) / float64(rings)
		for k := 0; k < slices; k++ {
			th := 2 * math.Pi * float64(k) / float64(slices)
			x, y := c.X+rr*math.Cos(th), c.Y+rr*math.Sin(th)
			s.verts = append(s.verts, vertex(x, y, paint.ColorAt(x, y)))
		}
	}

	n := uint16(slices)
	for k := uint16(0); k < n; k++ {
		s.inds = append(s.inds, base, base+1+k, base+1+(k+1)%n)
	}
	for ring := uint16(1); ring < uint16(rings); ring++ {
		inner := base + 1 + (ring-1)*n
		outer := inner + n
		for k := uint16(0); k < n; k++ {
			k1 := (k + 1) % n
			s.inds = append(s.inds,
				inner+k, outer+k, outer+k1,
				inner+k, outer+k1, inner+k1,
			)
		}
	}
}
