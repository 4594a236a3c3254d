package ecs

import (
	"github.com/phanxgames/meadow"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SimEventType carries every simulation event in emission order.
var SimEventType = events.NewEventType[meadow.Event]()

// Per-kind streams, published alongside SimEventType.
var (
	ActivatedEventType = events.NewEventType[meadow.Event]()
	ResetEventType     = events.NewEventType[meadow.Event]()
	WallHitEventType   = events.NewEventType[WallHit]()
)

// WallHit is a bounce off one or more arena walls.
type WallHit struct {
	Frame uint64
	Sides meadow.Contact
	Pos   meadow.Vec2
	// Vel is the reflected velocity.
	Vel meadow.Vec2
}

// BallState mirrors the ball as of the last event. It is written
// immediately on Emit, before any queued events are processed.
type BallState struct {
	Frame  uint64
	Pos    meadow.Vec2
	Vel    meadow.Vec2
	Active bool

	Resets   int
	WallHits int
	// LastHitFrame and LastSides describe the most recent wall hit.
	LastHitFrame uint64
	LastSides    meadow.Contact
}

// Ball is the component holding a sink's BallState.
var Ball = donburi.NewComponentType[BallState]()

// Sink publishes simulation events into a Donburi world and keeps a ball
// entity carrying the Ball component up to date.
type Sink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates a ball entity in world and returns a sink for it.
// Events are queued on SimEventType and the per-kind types and reach
// subscribers on ProcessEvents.
func NewDonburiSink(world donburi.World) *Sink {
	return &Sink{world: world, entity: world.Create(Ball)}
}

// Entity returns the ball entity.
func (s *Sink) Entity() donburi.Entity { return s.entity }

// State returns the ball entity's current state.
func (s *Sink) State() BallState {
	return *Ball.Get(s.world.Entry(s.entity))
}

// Emit implements meadow.EventSink.
func (s *Sink) Emit(event meadow.Event) {
	st := Ball.Get(s.world.Entry(s.entity))
	st.Frame, st.Pos, st.Vel = event.Frame, event.Pos, event.Vel

	switch event.Type {
	case meadow.EventActivated:
		st.Active = true
		ActivatedEventType.Publish(s.world, event)
	case meadow.EventReset:
		st.Resets++
		ResetEventType.Publish(s.world, event)
	case meadow.EventWallHit:
		st.WallHits++
		st.LastHitFrame, st.LastSides = event.Frame, event.Contact
		WallHitEventType.Publish(s.world, WallHit{
			Frame: event.Frame, Sides: event.Contact, Pos: event.Pos, Vel: event.Vel,
		})
	}
	SimEventType.Publish(s.world, event)
}
