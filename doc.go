// Package meadow simulates a keyboard-driven ball rolling over a
// procedurally animated grass field, and draws it with [Ebitengine].
//
// # Quick start
//
// The simplest way to get started is [Run] with a built-in preset:
//
//	cfg, _ := meadow.Preset("dusk")
//	sim, err := cfg.NewSimulation()
//	if err != nil {
//		log.Fatal(err)
//	}
//	meadow.Run(sim, meadow.RunConfig{Title: "Meadow", Theme: cfg.NewTheme()})
//
// For full control, wrap the simulation in a [Game] and hand it to
// [ebiten.RunGame] yourself, or skip Ebitengine entirely and call
// [Simulation.Step] from your own loop.
//
// # Simulation
//
// A [Simulation] owns a [Ball], a [Field] of grass blades and the
// [Controls] that turn key events into held directions. Everything is
// advanced in fixed ticks at [TickRate]; [Simulation.Advance] converts
// wall-clock time into whole ticks and caps catch-up after a stall.
// Each tick integrates the ball inside the padded arena, then bends every
// blade toward the ball's new position.
//
// Until the controls are activated (by a click, a key, or immediately,
// see [Activation]) direction keys are ignored and the ball stays put.
// The grass keeps swaying regardless.
//
// # Drawing
//
// [Renderer] emits a frame as primitives on a [Surface]. [ScreenSurface]
// batches them into Ebitengine triangles, [Recorder] keeps them for tests,
// and the tui sub-package rasterises them into terminal cells.
//
// # Configuration
//
// Scenes load from TOML with [LoadConfig]; every key overrides the named
// preset. Invalid values are reported as errors wrapping
// [ErrInvalidConfig].
//
// # Automation
//
// [Game.InjectPress] and friends queue synthetic input, and
// [LoadTestScript] sequences injections and [Game.Screenshot] captures
// from JSON for reproducible playthroughs.
//
// [Ebitengine]: https://ebitengine.org
package meadow
