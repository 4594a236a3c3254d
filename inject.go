package meadow

// syntheticInput represents a single injected input event.
type syntheticInput struct {
	action Action
	down   bool
	click  bool
	reset  bool
}

// InjectPress queues a key press for action. The event is consumed on the
// next frame's input pass, in place of real input.
func (g *Game) InjectPress(a Action) {
	g.injectQueue = append(g.injectQueue, syntheticInput{action: a, down: true})
}

// InjectRelease queues a key release for action.
func (g *Game) InjectRelease(a Action) {
	g.injectQueue = append(g.injectQueue, syntheticInput{action: a})
}

// InjectTap queues a press, then frames-2 idle frames holding the key, then
// the release. The total sequence consumes frames frames; minimum 2.
func (g *Game) InjectTap(a Action, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(a)
	for i := 0; i < frames-2; i++ {
		g.injectQueue = append(g.injectQueue, syntheticInput{action: ActionNone})
	}
	g.InjectRelease(a)
}

// InjectClick queues a pointer click, which activates idle controls.
func (g *Game) InjectClick() {
	g.injectQueue = append(g.injectQueue, syntheticInput{click: true})
}

// InjectReset queues a reset-button press.
func (g *Game) InjectReset() {
	g.injectQueue = append(g.injectQueue, syntheticInput{reset: true})
}

// processInjectedInput pops one event from the inject queue and applies it
// to the controls. Returns true if an event was consumed (real input should
// be skipped this frame).
func (g *Game) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	c := g.Sim.Controls
	switch {
	case evt.click:
		c.Click()
	case evt.reset:
		c.RequestReset()
	case evt.action != ActionNone:
		c.HandleKey(evt.action, evt.down)
	}
	return true
}
