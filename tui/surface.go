package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/meadow"
)

// Cell is one character cell of a Surface.
type Cell struct {
	Rune rune
	Fg   meadow.Color
	Bg   meadow.Color
}

// glyphAlpha is the opacity at which a filled shape replaces the glyph under
// it rather than tinting it.
const glyphAlpha = 0.5

var blank = Cell{Rune: ' ', Fg: meadow.ColorWhite, Bg: meadow.RGB8(0, 0, 0)}

// Surface is a meadow.Surface that rasterises primitives into a grid of
// terminal cells. World space is stretched over the grid, so one cell covers
// world.Width/cols by world.Height/rows units. Line widths are ignored; every
// stroke is one cell wide.
type Surface struct {
	meadow.TranslateStack

	cols, rows int
	world      meadow.Rect
	sx, sy     float64
	cells      []Cell
}

// NewSurface creates a surface of cols by rows cells.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid size. Contents are cleared on the next Begin.
func (s *Surface) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == s.cols && rows == s.rows {
		return
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]Cell, cols*rows)
}

// Size returns the grid size in cells.
func (s *Surface) Size() (cols, rows int) { return s.cols, s.rows }

// Begin clears the grid and maps world onto it for the next frame.
func (s *Surface) Begin(world meadow.Rect) {
	s.world = world
	s.sx = world.Width / float64(s.cols)
	s.sy = world.Height / float64(s.rows)
	if s.sx <= 0 {
		s.sx = 1
	}
	if s.sy <= 0 {
		s.sy = 1
	}
	for i := range s.cells {
		s.cells[i] = blank
	}
	s.ResetTransform()
}

// Cell returns the cell at col, row. Out-of-range positions return a blank.
func (s *Surface) Cell(col, row int) Cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return blank
	}
	return s.cells[row*s.cols+col]
}

// Flush copies the grid onto screen starting at row top.
func (s *Surface) Flush(screen tcell.Screen, top int) {
	for row := range s.rows {
		for col := range s.cols {
			c := s.cells[row*s.cols+col]
			style := tcell.StyleDefault.Foreground(toTcell(c.Fg)).Background(toTcell(c.Bg))
			screen.SetContent(col, top+row, c.Rune, nil, style)
		}
	}
}

func toTcell(c meadow.Color) tcell.Color {
	n := c.NRGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

// over composites src onto an opaque dst.
func over(dst, src meadow.Color) meadow.Color {
	return dst.Lerp(src.WithAlpha(1), src.A).WithAlpha(1)
}

// cellPos maps a target point to fractional cell coordinates.
func (s *Surface) cellPos(p meadow.Vec2) (float64, float64) {
	return (p.X - s.world.X) / s.sx, (p.Y - s.world.Y) / s.sy
}

// cellCenter returns the target coordinates of a cell's centre.
func (s *Surface) cellCenter(col, row int) (float64, float64) {
	return s.world.X + (float64(col)+0.5)*s.sx, s.world.Y + (float64(row)+0.5)*s.sy
}

func (s *Surface) at(col, row int) *Cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

// tint blends c over the whole cell, glyph included.
func (s *Surface) tint(col, row int, c meadow.Color) {
	cell := s.at(col, row)
	if cell == nil || c.A <= 0 {
		return
	}
	if c.A >= 1 {
		*cell = Cell{Rune: ' ', Fg: cell.Fg, Bg: c}
		return
	}
	cell.Bg = over(cell.Bg, c)
	cell.Fg = over(cell.Fg, c)
}

// glyph sets the cell's rune drawn in c over its background.
func (s *Surface) glyph(col, row int, r rune, c meadow.Color) {
	cell := s.at(col, row)
	if cell == nil || c.A <= 0 {
		return
	}
	cell.Rune = r
	cell.Fg = over(cell.Bg, c)
}

// span returns the half-open cell range whose centres lie in [lo, hi).
func span(lo, hi float64, n int) (int, int) {
	a := int(math.Ceil(lo - 0.5))
	b := int(math.Ceil(hi - 0.5))
	return max(a, 0), min(b, n)
}

func (s *Surface) FillRect(r meadow.Rect, p meadow.Paint) {
	o := s.Offset()
	x0, y0 := s.cellPos(meadow.Vec2{X: r.X + o.X, Y: r.Y + o.Y})
	x1, y1 := s.cellPos(meadow.Vec2{X: r.X + o.X + r.Width, Y: r.Y + o.Y + r.Height})
	c0, c1 := span(x0, x1, s.cols)
	r0, r1 := span(y0, y1, s.rows)
	paint := s.Local(p)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			cx, cy := s.cellCenter(col, row)
			s.tint(col, row, paint.ColorAt(cx, cy))
		}
	}
}

func (s *Surface) StrokeRect(r meadow.Rect, width float64, c meadow.Color) {
	style := meadow.LineStyle{Width: width}
	tl := meadow.Vec2{X: r.X, Y: r.Y}
	tr := meadow.Vec2{X: r.X + r.Width, Y: r.Y}
	br := meadow.Vec2{X: r.X + r.Width, Y: r.Y + r.Height}
	bl := meadow.Vec2{X: r.X, Y: r.Y + r.Height}
	s.StrokeLine(tl, tr, style, c)
	s.StrokeLine(bl, br, style, c)
	s.StrokeLine(tl, bl, style, c)
	s.StrokeLine(tr, br, style, c)
}

// slopeGlyph picks the character that best matches a line direction in
// cell space. Y grows downward.
func slopeGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case adx < 1e-9 && ady < 1e-9:
		return '.'
	case ady >= 2*adx:
		return '|'
	case adx >= 2*ady:
		return '-'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func (s *Surface) StrokeLine(a, b meadow.Vec2, _ meadow.LineStyle, c meadow.Color) {
	ax, ay := s.cellPos(s.Point(a))
	bx, by := s.cellPos(s.Point(b))
	g := slopeGlyph(bx-ax, by-ay)

	x0, y0 := int(math.Floor(ax)), int(math.Floor(ay))
	x1, y1 := int(math.Floor(bx)), int(math.Floor(by))
	dx, dy := abs(x1-x0), -abs(y1-y0)
	stepX, stepY := 1, 1
	if x0 > x1 {
		stepX = -1
	}
	if y0 > y1 {
		stepY = -1
	}
	e := dx + dy
	for {
		s.glyph(x0, y0, g, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += stepX
		}
		if e2 <= dx {
			e += dx
			y0 += stepY
		}
	}
}

func (s *Surface) FillCircle(center meadow.Vec2, radius float64, p meadow.Paint) {
	ctr := s.Point(center)
	paint := s.Local(p)
	x0, y0 := s.cellPos(meadow.Vec2{X: ctr.X - radius, Y: ctr.Y - radius})
	x1, y1 := s.cellPos(meadow.Vec2{X: ctr.X + radius, Y: ctr.Y + radius})
	c0, c1 := span(x0, x1, s.cols)
	r0, r1 := span(y0, y1, s.rows)

	covered := false
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			cx, cy := s.cellCenter(col, row)
			if math.Hypot(cx-ctr.X, cy-ctr.Y) > radius {
				continue
			}
			covered = true
			s.disc(col, row, '●', paint.ColorAt(cx, cy))
		}
	}
	if !covered {
		// Smaller than a cell: mark the cell holding the centre.
		x, y := s.cellPos(ctr)
		s.disc(int(math.Floor(x)), int(math.Floor(y)), 'o', paint.ColorAt(ctr.X, ctr.Y))
	}
}

// disc draws r for opaque enough fills and tints the cell otherwise, so
// soft glows shade the grass instead of hiding it.
func (s *Surface) disc(col, row int, r rune, c meadow.Color) {
	if c.A >= glyphAlpha {
		s.glyph(col, row, r, c)
		return
	}
	s.tint(col, row, c)
}

func (s *Surface) StrokeCircle(center meadow.Vec2, radius, _ float64, c meadow.Color) {
	ctr := s.Point(center)
	cell := math.Min(s.sx, s.sy)
	n := max(8, int(2*math.Pi*radius/cell)*2)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		x, y := s.cellPos(meadow.Vec2{X: ctr.X + radius*math.Cos(a), Y: ctr.Y + radius*math.Sin(a)})
		s.glyph(int(math.Floor(x)), int(math.Floor(y)), 'o', c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
