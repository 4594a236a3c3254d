package meadow

import (
	"fmt"
	"math"
)

// maxCatchUp caps how many fixed ticks Advance runs for one call, so a long
// stall does not turn into a burst of catch-up steps.
const maxCatchUp = 5

// tickSeconds is the duration of one fixed tick.
const tickSeconds = 1.0 / TickRate

// World describes the play area. Bounds is the full drawing area; Arena is
// the padded rectangle the ball must stay within.
type World struct {
	Bounds  Rect
	Padding float64
}

// Arena returns Bounds inset by Padding.
func (w World) Arena() Rect {
	return w.Bounds.Inset(w.Padding)
}

// Simulation owns all mutable state for one instance: the ball, the grass
// and the controls. There is no package-level state, so instances are
// independent and can be stepped deterministically in tests.
type Simulation struct {
	World    World
	Ball     *Ball
	Field    *Field
	Controls *Controls

	// Frame counts completed ticks.
	Frame uint64

	sink  EventSink
	accum float64
}

// NewSimulation wires a simulation from its parts.
func NewSimulation(world World, ball *Ball, field *Field, controls *Controls) *Simulation {
	return &Simulation{World: world, Ball: ball, Field: field, Controls: controls}
}

// SetEventSink sets the optional event receiver. Pass nil to detach.
func (s *Simulation) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Simulation) emit(t EventType, contact Contact) {
	if s.sink == nil {
		return
	}
	s.sink.Emit(Event{Type: t, Frame: s.Frame, Pos: s.Ball.Pos, Vel: s.Ball.Vel, Contact: contact})
}

// Step runs one fixed tick: apply any pending reset, integrate the ball if
// the controls are active, then animate the grass against the new ball
// position.
func (s *Simulation) Step() {
	s.Frame++

	if s.Controls.takeActivated() {
		s.emit(EventActivated, 0)
	}
	if s.Controls.takeReset() {
		s.Ball.Reset()
		s.emit(EventReset, 0)
	}

	if s.Controls.Active() {
		if contact := s.Ball.Integrate(s.Controls.Input(), s.World.Arena()); contact.Any() {
			s.emit(EventWallHit, contact)
		}
	}

	s.Field.Update(s.Ball.Pos, s.Ball.Speed())
}

// Advance accumulates dt seconds and runs as many whole ticks as fit, at
// most maxCatchUp. Leftover time carries into the next call. It returns the
// number of ticks run.
func (s *Simulation) Advance(dt float64) int {
	if dt <= 0 || math.IsNaN(dt) {
		return 0
	}
	s.accum += dt
	steps := 0
	// A small epsilon keeps 1/60 increments from drifting one tick behind.
	for s.accum+1e-9 >= tickSeconds && steps < maxCatchUp {
		s.Step()
		s.accum -= tickSeconds
		steps++
	}
	if steps == maxCatchUp && s.accum >= tickSeconds {
		s.accum = 0
	}
	if s.accum < 0 {
		s.accum = 0
	}
	return steps
}

// Telemetry is the per-frame readout shown on the HUD.
type Telemetry struct {
	Speed float64
	X, Y  float64
}

// Telemetry returns the current speed and position.
func (s *Simulation) Telemetry() Telemetry {
	return Telemetry{Speed: s.Ball.Speed(), X: s.Ball.Pos.X, Y: s.Ball.Pos.Y}
}

// SpeedText formats the speed with two decimal places.
func (t Telemetry) SpeedText() string {
	return fmt.Sprintf("%.2f", t.Speed)
}

// PositionText formats the position as a rounded "x, y" pair.
func (t Telemetry) PositionText() string {
	return fmt.Sprintf("%d, %d", int(math.Round(t.X)), int(math.Round(t.Y)))
}
