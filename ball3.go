package meadow

import "github.com/go-gl/mathgl/mgl64"

// Box3 bounds the 3D ball on the ground plane. Only X and Z are enforced;
// Y is ignored since the ball rests on the ground.
type Box3 struct {
	Min, Max mgl64.Vec3
}

// Ball3 is the ball variant that rolls on an X/Z ground plane. Unlike Ball,
// its speed cap applies to the full velocity vector rather than per axis.
type Ball3 struct {
	Pos   mgl64.Vec3
	Vel   mgl64.Vec3
	Start mgl64.Vec3
	// Rot is the rolling orientation, advanced by travelled distance.
	Rot mgl64.Quat
	BallConfig
}

var worldUp = mgl64.Vec3{0, 1, 0}

// NewBall3 creates a ball resting on the ground above start.
func NewBall3(start mgl64.Vec3, cfg BallConfig) *Ball3 {
	start[1] = cfg.Radius
	return &Ball3{Pos: start, Start: start, Rot: mgl64.QuatIdent(), BallConfig: cfg}
}

// Reset returns the ball to its start point, at rest and unrotated.
func (b *Ball3) Reset() {
	b.Pos = b.Start
	b.Vel = mgl64.Vec3{}
	b.Rot = mgl64.QuatIdent()
}

// Speed returns the velocity magnitude.
func (b *Ball3) Speed() float64 {
	return b.Vel.Len()
}

// Integrate advances the ball by one tick. Up and Down drive -Z and +Z,
// Left and Right drive -X and +X.
func (b *Ball3) Integrate(in Input, box Box3) Contact {
	mult := 1.0
	if in.Sprint {
		mult = b.SprintMultiplier
	}
	accel := b.Accel * mult

	if in.Up {
		b.Vel[2] -= accel
	}
	if in.Down {
		b.Vel[2] += accel
	}
	if in.Left {
		b.Vel[0] -= accel
	}
	if in.Right {
		b.Vel[0] += accel
	}

	b.Vel = b.Vel.Mul(b.Friction)
	b.Vel[1] = 0

	limit := b.MaxSpeed * mult
	if speed := b.Vel.Len(); speed > limit {
		b.Vel = b.Vel.Mul(limit / speed)
	}

	b.Pos = b.Pos.Add(b.Vel)
	b.roll()

	var contact Contact
	minX, maxX := box.Min.X()+b.Radius, box.Max.X()-b.Radius
	minZ, maxZ := box.Min.Z()+b.Radius, box.Max.Z()-b.Radius

	if b.Pos[0] < minX {
		b.Pos[0] = minX
		b.Vel[0] *= -b.Restitution
		contact |= ContactLeft
	} else if b.Pos[0] > maxX {
		b.Pos[0] = maxX
		b.Vel[0] *= -b.Restitution
		contact |= ContactRight
	}

	if b.Pos[2] < minZ {
		b.Pos[2] = minZ
		b.Vel[2] *= -b.Restitution
		contact |= ContactTop
	} else if b.Pos[2] > maxZ {
		b.Pos[2] = maxZ
		b.Vel[2] *= -b.Restitution
		contact |= ContactBottom
	}

	return contact
}

// roll spins Rot about the axis perpendicular to travel on the ground.
func (b *Ball3) roll() {
	dist := b.Vel.Len()
	if dist < 1e-9 || b.Radius <= 0 {
		return
	}
	axis := worldUp.Cross(b.Vel).Normalize()
	b.Rot = mgl64.QuatRotate(dist/b.Radius, axis).Mul(b.Rot).Normalize()
}

// Ground returns the ball position projected onto the X/Z plane as a Vec2,
// which is what the grass field consumes.
func (b *Ball3) Ground() Vec2 {
	return Vec2{X: b.Pos.X(), Y: b.Pos.Z()}
}

// Telemetry returns the speed and the ground position, with Z reported as Y.
func (b *Ball3) Telemetry() Telemetry {
	g := b.Ground()
	return Telemetry{Speed: b.Speed(), X: g.X, Y: g.Y}
}
