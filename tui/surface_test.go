package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/meadow"
)

var testWorld = meadow.Rect{Width: 100, Height: 50}

// newTestSurface maps testWorld onto 10x5 cells of 10x10 units.
func newTestSurface() *Surface {
	s := NewSurface(10, 5)
	s.Begin(testWorld)
	return s
}

func TestSlopeGlyph(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{0, 0, '.'},
		{0, -3, '|'},
		{1, 5, '|'},
		{4, 0, '-'},
		{-5, 1, '-'},
		{2, 2, '\\'},
		{-2, -2, '\\'},
		{2, -2, '/'},
		{-2, 2, '/'},
	}
	for _, tt := range tests {
		if got := slopeGlyph(tt.dx, tt.dy); got != tt.want {
			t.Errorf("slopeGlyph(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestSurface_ResizeAndBlank(t *testing.T) {
	s := NewSurface(0, -3)
	if c, r := s.Size(); c != 1 || r != 1 {
		t.Errorf("Size = %d x %d, want 1 x 1", c, r)
	}
	s.Resize(8, 4)
	s.Begin(testWorld)
	if c, r := s.Size(); c != 8 || r != 4 {
		t.Errorf("Size = %d x %d, want 8 x 4", c, r)
	}
	if s.Cell(3, 3) != blank {
		t.Errorf("fresh cell = %+v, want blank", s.Cell(3, 3))
	}
	if s.Cell(-1, 0) != blank || s.Cell(8, 0) != blank {
		t.Error("out of range cell is not blank")
	}
}

func TestSurface_FillRect(t *testing.T) {
	s := newTestSurface()
	red := meadow.RGB8(255, 0, 0)
	s.FillRect(testWorld, red)
	for row := range 5 {
		for col := range 10 {
			if c := s.Cell(col, row); c.Bg != red || c.Rune != ' ' {
				t.Fatalf("cell %d,%d = %+v", col, row, c)
			}
		}
	}

	// A half-transparent fill over part of the grid tints it.
	s.FillRect(meadow.Rect{X: 0, Y: 0, Width: 30, Height: 20}, meadow.Color{R: 0, G: 0, B: 1, A: 0.5})
	want := meadow.Color{R: 0.5, G: 0, B: 0.5, A: 1}
	if got := s.Cell(2, 1).Bg; got != want {
		t.Errorf("tinted cell bg = %+v, want %+v", got, want)
	}
	if got := s.Cell(3, 1).Bg; got != red {
		t.Errorf("cell outside the rect = %+v, want red", got)
	}
	if got := s.Cell(2, 2).Bg; got != red {
		t.Errorf("cell below the rect = %+v, want red", got)
	}
}

func TestSurface_StrokeLine(t *testing.T) {
	s := newTestSurface()
	s.StrokeLine(meadow.Vec2{X: 5, Y: 25}, meadow.Vec2{X: 95, Y: 25}, meadow.LineStyle{}, meadow.ColorWhite)
	for col := range 10 {
		if r := s.Cell(col, 2).Rune; r != '-' {
			t.Errorf("cell %d,2 = %q, want '-'", col, r)
		}
	}
	if r := s.Cell(0, 1).Rune; r != ' ' {
		t.Errorf("row above the line = %q", r)
	}

	s.Begin(testWorld)
	s.StrokeLine(meadow.Vec2{X: 15, Y: 45}, meadow.Vec2{X: 15, Y: 5}, meadow.LineStyle{}, meadow.ColorWhite)
	for row := range 5 {
		if r := s.Cell(1, row).Rune; r != '|' {
			t.Errorf("cell 1,%d = %q, want '|'", row, r)
		}
	}
}

func TestSurface_StrokeRect(t *testing.T) {
	s := newTestSurface()
	s.StrokeRect(meadow.Rect{X: 5, Y: 5, Width: 90, Height: 40}, 2, meadow.ColorWhite)
	if r := s.Cell(5, 0).Rune; r != '-' {
		t.Errorf("top edge = %q", r)
	}
	if r := s.Cell(0, 2).Rune; r != '|' {
		t.Errorf("left edge = %q", r)
	}
	if r := s.Cell(5, 2).Rune; r != ' ' {
		t.Errorf("interior = %q, want blank", r)
	}
}

func TestSurface_FillCircle(t *testing.T) {
	s := newTestSurface()
	s.FillCircle(meadow.Vec2{X: 50, Y: 25}, 12, meadow.ColorWhite)
	for _, cell := range [][2]int{{4, 2}, {5, 2}, {4, 1}, {5, 3}} {
		if c := s.Cell(cell[0], cell[1]); c.Rune != '●' || c.Fg != meadow.ColorWhite {
			t.Errorf("cell %v = %+v, want a white disc", cell, c)
		}
	}
	if r := s.Cell(3, 2).Rune; r != ' ' {
		t.Errorf("cell outside the circle = %q", r)
	}
}

func TestSurface_TinyCircleAndTranslate(t *testing.T) {
	s := newTestSurface()
	s.Translate(10, 0)
	s.FillCircle(meadow.Vec2{X: 40, Y: 25}, 1, meadow.ColorWhite)
	if r := s.Cell(5, 2).Rune; r != 'o' {
		t.Errorf("tiny circle cell = %q, want 'o'", r)
	}
}

func TestSurface_SoftCircleTints(t *testing.T) {
	s := newTestSurface()
	s.FillCircle(meadow.Vec2{X: 50, Y: 25}, 12, meadow.Color{R: 1, G: 1, B: 1, A: 0.25})
	c := s.Cell(4, 2)
	if c.Rune != ' ' {
		t.Errorf("soft fill replaced the glyph with %q", c.Rune)
	}
	if c.Bg == blank.Bg {
		t.Error("soft fill did not tint the cell")
	}
}

func TestSurface_Flush(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(10, 6)

	s := newTestSurface()
	s.StrokeLine(meadow.Vec2{X: 5, Y: 25}, meadow.Vec2{X: 95, Y: 25}, meadow.LineStyle{}, meadow.ColorWhite)
	s.Flush(screen, 1)
	screen.Show()

	if r, _, _, _ := screen.GetContent(4, 3); r != '-' {
		t.Errorf("screen 4,3 = %q, want '-'", r)
	}
	if r, _, _, _ := screen.GetContent(4, 2); r != ' ' {
		t.Errorf("screen 4,2 = %q, want ' '", r)
	}
}
