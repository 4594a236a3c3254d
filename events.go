package meadow

// EventSink receives simulation events. When set on a Simulation, events are
// forwarded as they happen during Step.
type EventSink interface {
	Emit(event Event)
}

// EventType identifies a kind of simulation event.
type EventType uint8

const (
	EventActivated EventType = iota // controls went from idle to active
	EventReset                      // the ball was reset to its start point
	EventWallHit                    // the ball bounced off one or more walls
)

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventActivated:
		return "activated"
	case EventReset:
		return "reset"
	case EventWallHit:
		return "wall-hit"
	}
	return "unknown"
}

// Event carries the ball state at the moment something happened.
type Event struct {
	Type  EventType
	Frame uint64
	Pos   Vec2
	// Vel is the velocity after the event was applied; for a wall hit this
	// is the reflected velocity.
	Vel Vec2
	// Contact is set for EventWallHit.
	Contact Contact
}
