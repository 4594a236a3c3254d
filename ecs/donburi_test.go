package ecs

import (
	"testing"

	"github.com/phanxgames/meadow"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink_CreatesBall(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if !world.Valid(sink.Entity()) {
		t.Fatal("ball entity is not valid")
	}
	if !world.Entry(sink.Entity()).HasComponent(Ball) {
		t.Fatal("ball entity has no Ball component")
	}
	if st := sink.State(); st != (BallState{}) {
		t.Errorf("initial state = %+v, want zero", st)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink meadow.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_State(t *testing.T) {
	tests := []struct {
		name   string
		events []meadow.Event
		want   BallState
	}{
		{
			name:   "activated",
			events: []meadow.Event{{Type: meadow.EventActivated, Frame: 1, Pos: meadow.Vec2{X: 100, Y: 200}}},
			want:   BallState{Frame: 1, Pos: meadow.Vec2{X: 100, Y: 200}, Active: true},
		},
		{
			name: "wall hits",
			events: []meadow.Event{
				{Type: meadow.EventWallHit, Frame: 4, Contact: meadow.ContactLeft},
				{Type: meadow.EventWallHit, Frame: 9, Contact: meadow.ContactLeft | meadow.ContactTop,
					Pos: meadow.Vec2{X: 18, Y: 18}, Vel: meadow.Vec2{X: 1, Y: 0.5}},
			},
			want: BallState{
				Frame: 9, Pos: meadow.Vec2{X: 18, Y: 18}, Vel: meadow.Vec2{X: 1, Y: 0.5},
				WallHits: 2, LastHitFrame: 9, LastSides: meadow.ContactLeft | meadow.ContactTop,
			},
		},
		{
			name: "reset after hit",
			events: []meadow.Event{
				{Type: meadow.EventActivated, Frame: 1},
				{Type: meadow.EventWallHit, Frame: 3, Contact: meadow.ContactRight},
				{Type: meadow.EventReset, Frame: 5, Pos: meadow.Vec2{X: 480, Y: 270}},
			},
			want: BallState{
				Frame: 5, Pos: meadow.Vec2{X: 480, Y: 270}, Active: true,
				Resets: 1, WallHits: 1, LastHitFrame: 3, LastSides: meadow.ContactRight,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewDonburiSink(donburi.NewWorld())
			for _, e := range tt.events {
				sink.Emit(e)
			}
			if got := sink.State(); got != tt.want {
				t.Errorf("state = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDonburiSink_TypedStreams(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var all []meadow.EventType
	var activated, resets int
	var hits []WallHit
	SimEventType.Subscribe(world, func(w donburi.World, e meadow.Event) {
		all = append(all, e.Type)
	})
	ActivatedEventType.Subscribe(world, func(w donburi.World, e meadow.Event) {
		activated++
	})
	ResetEventType.Subscribe(world, func(w donburi.World, e meadow.Event) {
		resets++
	})
	WallHitEventType.Subscribe(world, func(w donburi.World, h WallHit) {
		hits = append(hits, h)
	})

	sink.Emit(meadow.Event{Type: meadow.EventActivated, Frame: 1})
	sink.Emit(meadow.Event{Type: meadow.EventWallHit, Frame: 7, Contact: meadow.ContactBottom,
		Vel: meadow.Vec2{Y: -2}})
	sink.Emit(meadow.Event{Type: meadow.EventReset, Frame: 8})

	// Events are queued until processed.
	if len(all) != 0 || activated != 0 || resets != 0 || len(hits) != 0 {
		t.Fatal("subscribers ran before ProcessEvents")
	}
	events.ProcessAllEvents(world)

	want := []meadow.EventType{meadow.EventActivated, meadow.EventWallHit, meadow.EventReset}
	if len(all) != len(want) {
		t.Fatalf("all = %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, all[i], want[i])
		}
	}
	if activated != 1 || resets != 1 {
		t.Errorf("activated = %d, resets = %d, want 1 each", activated, resets)
	}
	if len(hits) != 1 {
		t.Fatalf("wall hits = %d, want 1", len(hits))
	}
	if h := hits[0]; h.Frame != 7 || h.Sides != meadow.ContactBottom || h.Vel != (meadow.Vec2{Y: -2}) {
		t.Errorf("wall hit = %+v", h)
	}
}

func TestDonburiSink_SinksAreIndependent(t *testing.T) {
	world := donburi.NewWorld()
	a, b := NewDonburiSink(world), NewDonburiSink(world)
	if a.Entity() == b.Entity() {
		t.Fatal("two sinks share one entity")
	}
	a.Emit(meadow.Event{Type: meadow.EventReset, Frame: 2})
	if a.State().Resets != 1 || b.State().Resets != 0 {
		t.Errorf("resets = %d and %d, want 1 and 0", a.State().Resets, b.State().Resets)
	}
}

func TestDonburiSink_FromSimulation(t *testing.T) {
	cfg, _ := meadow.Preset("meadow")
	cfg.Activation = "always"
	cfg.Grass.Blades = 10
	sim, err := cfg.NewSimulation()
	if err != nil {
		t.Fatal(err)
	}
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	sim.SetEventSink(sink)

	var got []meadow.EventType
	SimEventType.Subscribe(world, func(w donburi.World, e meadow.Event) {
		got = append(got, e.Type)
	})

	sim.Step()
	sim.Controls.RequestReset()
	sim.Step()
	SimEventType.ProcessEvents(world)

	want := []meadow.EventType{meadow.EventActivated, meadow.EventReset}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	st := sink.State()
	if !st.Active || st.Resets != 1 || st.Pos != sim.Ball.Start {
		t.Errorf("state = %+v, want active with one reset at %+v", st, sim.Ball.Start)
	}
}
