package meadow

// BallConfig holds the per-tick tuning of the ball.
type BallConfig struct {
	// Radius of the ball in world units.
	Radius float64 `toml:"radius"`
	// MaxSpeed caps each velocity axis, before the sprint multiplier.
	MaxSpeed float64 `toml:"max_speed"`
	// Accel is added to an axis each tick its direction is held.
	Accel float64 `toml:"accel"`
	// Friction multiplies velocity every tick. Must be in (0, 1).
	Friction float64 `toml:"friction"`
	// SprintMultiplier scales Accel and MaxSpeed while sprint is held.
	SprintMultiplier float64 `toml:"sprint"`
	// Restitution is the fraction of speed kept after a wall bounce.
	Restitution float64 `toml:"restitution"`
}

// Contact is a bitmask of the arena walls the ball touched in one step.
type Contact uint8

const (
	ContactLeft Contact = 1 << iota
	ContactRight
	ContactTop
	ContactBottom
)

// Any reports whether at least one wall was touched.
func (c Contact) Any() bool { return c != 0 }

// Ball is the player-controlled ball in the 2D arena.
type Ball struct {
	Pos   Vec2
	Vel   Vec2
	Start Vec2
	BallConfig
}

// NewBall creates a ball at start with zero velocity.
func NewBall(start Vec2, cfg BallConfig) *Ball {
	return &Ball{Pos: start, Start: start, BallConfig: cfg}
}

// Reset puts the ball back at its start point, at rest.
func (b *Ball) Reset() {
	b.Pos = b.Start
	b.Vel = Vec2{}
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// multiplier returns the sprint scale for the given input.
func (b *Ball) multiplier(in Input) float64 {
	if in.Sprint {
		return b.SprintMultiplier
	}
	return 1
}

// Integrate advances the ball by one tick: accelerate from input, apply
// friction, clamp each axis to the speed cap, move, then reflect off the
// arena walls. The ball's centre stays within arena inset by Radius.
func (b *Ball) Integrate(in Input, arena Rect) Contact {
	mult := b.multiplier(in)
	accel := b.Accel * mult

	if in.Up {
		b.Vel.Y -= accel
	}
	if in.Down {
		b.Vel.Y += accel
	}
	if in.Left {
		b.Vel.X -= accel
	}
	if in.Right {
		b.Vel.X += accel
	}

	b.Vel.X *= b.Friction
	b.Vel.Y *= b.Friction

	limit := b.MaxSpeed * mult
	b.Vel.X = clamp(b.Vel.X, -limit, limit)
	b.Vel.Y = clamp(b.Vel.Y, -limit, limit)

	b.Pos.X += b.Vel.X
	b.Pos.Y += b.Vel.Y

	var contact Contact
	minX, maxX := arena.X+b.Radius, arena.X+arena.Width-b.Radius
	minY, maxY := arena.Y+b.Radius, arena.Y+arena.Height-b.Radius

	if b.Pos.X < minX {
		b.Pos.X = minX
		b.Vel.X *= -b.Restitution
		contact |= ContactLeft
	} else if b.Pos.X > maxX {
		b.Pos.X = maxX
		b.Vel.X *= -b.Restitution
		contact |= ContactRight
	}

	if b.Pos.Y < minY {
		b.Pos.Y = minY
		b.Vel.Y *= -b.Restitution
		contact |= ContactTop
	} else if b.Pos.Y > maxY {
		b.Pos.Y = maxY
		b.Vel.Y *= -b.Restitution
		contact |= ContactBottom
	}

	return contact
}

// SpeedLimit returns the axis cap in effect for the given input.
func (b *Ball) SpeedLimit(in Input) float64 {
	return b.MaxSpeed * b.multiplier(in)
}
