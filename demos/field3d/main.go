// field3d rolls the 3D ball variant across the grass, seen through a
// perspective camera. The field is the 2D simulation laid on the X/Z ground
// plane; a surface marker shows the ball's rolling orientation.
package main

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/meadow"
)

const (
	screenW = 1280
	screenH = 720

	groundW = 960.0
	groundD = 540.0

	fovY = 50.0
)

type demo struct {
	ball  *meadow.Ball3
	box   meadow.Box3
	field *meadow.Field

	view, proj mgl64.Mat4
	eye        mgl64.Vec3

	sky  meadow.Paint
	surf *meadow.ScreenSurface
	segs []meadow.Segment
}

func newDemo() *demo {
	cfg, _ := meadow.Preset("dusk")
	world := meadow.World{Bounds: meadow.Rect{Width: groundW, Height: groundD}}
	cfg.Grass.Blades = 400
	cfg.Grass.Area = "bounds"

	eye := mgl64.Vec3{groundW / 2, 420, groundD + 380}
	sky := meadow.NewLinearGradient(
		meadow.Vec2{}, meadow.Vec2{Y: screenH},
		meadow.ColorStop{Offset: 0, Color: meadow.Hex("#2a5a2a")},
		meadow.ColorStop{Offset: 1, Color: meadow.Hex("#1a2618")},
	)
	return &demo{
		ball:  meadow.NewBall3(mgl64.Vec3{groundW / 2, 0, groundD / 2}, cfg.Ball),
		box:   meadow.Box3{Max: mgl64.Vec3{groundW, 0, groundD}},
		field: meadow.NewField(cfg.Grass.FieldConfig(world)),
		eye:   eye,
		view:  mgl64.LookAtV(eye, mgl64.Vec3{groundW / 2, 0, groundD / 2}, mgl64.Vec3{0, 1, 0}),
		proj:  mgl64.Perspective(mgl64.DegToRad(fovY), float64(screenW)/screenH, 1, 5000),
		sky:   sky,
		surf:  meadow.NewScreenSurface(),
	}
}

// project maps a world point to screen coordinates and returns the clip w,
// which grows with distance from the camera.
func (d *demo) project(p mgl64.Vec3) (meadow.Vec2, float64) {
	clip := d.proj.Mul4(d.view).Mul4x1(p.Vec4(1))
	w := clip.W()
	return meadow.Vec2{
		X: (clip.X()/w + 1) / 2 * screenW,
		Y: (1 - clip.Y()/w) / 2 * screenH,
	}, w
}

// scale is the screen size of one world unit at clip depth w.
func scale(w float64) float64 {
	return screenH / 2 / (math.Tan(mgl64.DegToRad(fovY)/2) * w)
}

func (d *demo) Update() error {
	in := meadow.Input{
		Up:     ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:   ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Sprint: ebiten.IsKeyPressed(ebiten.KeyShift),
	}
	d.step(in, inpututil.IsKeyJustPressed(ebiten.KeyR))
	return nil
}

// step advances one tick. reset is true only on the tick R goes down.
func (d *demo) step(in meadow.Input, reset bool) {
	if reset {
		d.ball.Reset()
	}
	d.ball.Integrate(in, d.box)
	d.field.Update(d.ball.Ground(), d.ball.Speed())
}

func (d *demo) status() string {
	tel := d.ball.Telemetry()
	return "Speed: " + tel.SpeedText() + "\nPosition: " + tel.PositionText()
}

func (d *demo) Draw(screen *ebiten.Image) {
	s := d.surf
	s.Begin(screen)
	s.FillRect(meadow.Rect{Width: screenW, Height: screenH}, d.sky)

	style := meadow.LineStyle{Cap: meadow.CapRound, Join: meadow.JoinRound}
	blades := d.field.Blades()
	for i := range blades {
		b := &blades[i]
		d.segs = d.field.AppendGeometry(d.segs[:0], i)
		for _, seg := range d.segs {
			// The 2D blade rises toward -Y; here it rises along +Y above its
			// origin on the ground.
			a, w := d.project(mgl64.Vec3{seg.From.X, b.Origin.Y - seg.From.Y, b.Origin.Y})
			c, _ := d.project(mgl64.Vec3{seg.To.X, b.Origin.Y - seg.To.Y, b.Origin.Y})
			style.Width = seg.Width * scale(w)
			s.StrokeLine(a, c, style, seg.Color)
		}
	}

	center, w := d.project(d.ball.Pos)
	r := d.ball.Radius * scale(w)
	s.FillCircle(center, r, meadow.Hex("#a0d6ff"))
	s.StrokeCircle(center, r, 2, meadow.RGBA8(255, 255, 255, 0.4))

	// The marker is a fixed point on the ball's surface, turned by Rot.
	marker := d.ball.Rot.Rotate(mgl64.Vec3{0, 0, d.ball.Radius})
	toEye := d.eye.Sub(d.ball.Pos)
	if marker.Dot(toEye) > 0 {
		m, mw := d.project(d.ball.Pos.Add(marker))
		s.FillCircle(m, 3*scale(mw), meadow.Hex("#3a78a1"))
	}
	s.End()

	ebitenutil.DebugPrint(screen, "Arrows/WASD roll  Shift sprint  R reset")
	ebitenutil.DebugPrintAt(screen, d.status(), 0, 20)
}

func (d *demo) Layout(int, int) (int, int) { return screenW, screenH }

func main() {
	ebiten.SetWindowTitle("Meadow - 3D field")
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetTPS(meadow.TickRate)
	if err := ebiten.RunGame(newDemo()); err != nil {
		log.Fatal(err)
	}
}
