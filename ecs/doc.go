// Package ecs bridges meadow's simulation events into a [Donburi] world.
//
// [NewDonburiSink] creates a ball entity carrying the [Ball] component and
// returns an event sink. Each event updates the component immediately and
// is queued on [SimEventType] and on its per-kind type
// ([ActivatedEventType], [ResetEventType] or [WallHitEventType]).
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	sim.SetEventSink(sink)
//	ecs.WallHitEventType.Subscribe(world, onBounce)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
