package meadow

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the directional state read by the kinematics step each tick.
type Input struct {
	Up, Down, Left, Right bool
	Sprint                bool
}

// Action identifies what a key does.
type Action uint8

const (
	ActionNone   Action = iota // key is not bound
	ActionUp                   // accelerate upward while held
	ActionDown                 // accelerate downward while held
	ActionLeft                 // accelerate left while held
	ActionRight                // accelerate right while held
	ActionSprint               // scale acceleration and speed cap while held
	ActionReset                // put the ball back, fires once per press
)

var actionNames = map[string]Action{
	"up":     ActionUp,
	"down":   ActionDown,
	"left":   ActionLeft,
	"right":  ActionRight,
	"sprint": ActionSprint,
	"reset":  ActionReset,
}

// ParseAction maps a lowercase action name ("up", "sprint", ...) to an Action.
func ParseAction(name string) (Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}

// String returns the lowercase action name.
func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "none"
}

// Activation selects what turns an idle simulation active. While idle, key
// input is ignored and the ball does not move; the grass keeps animating.
type Activation uint8

const (
	ActivateOnClick Activation = iota // a pointer click or tap activates
	ActivateOnKey                     // the first key press (or a click) activates
	ActivateAlways                    // active from the start
)

// ParseActivation maps "click", "key" or "always" to an Activation.
func ParseActivation(name string) (Activation, bool) {
	switch name {
	case "click":
		return ActivateOnClick, true
	case "key":
		return ActivateOnKey, true
	case "always":
		return ActivateAlways, true
	}
	return 0, false
}

// KeyMap binds Ebitengine keys to actions.
type KeyMap map[ebiten.Key]Action

// DefaultKeyMap binds the arrow keys and WASD to movement, Shift to sprint,
// and R to reset.
var DefaultKeyMap = KeyMap{
	ebiten.KeyArrowUp:    ActionUp,
	ebiten.KeyW:          ActionUp,
	ebiten.KeyArrowDown:  ActionDown,
	ebiten.KeyS:          ActionDown,
	ebiten.KeyArrowLeft:  ActionLeft,
	ebiten.KeyA:          ActionLeft,
	ebiten.KeyArrowRight: ActionRight,
	ebiten.KeyD:          ActionRight,
	ebiten.KeyShiftLeft:  ActionSprint,
	ebiten.KeyShiftRight: ActionSprint,
	ebiten.KeyR:          ActionReset,
}

// Controls turns discrete press/release events into the Input flags read
// by the simulation. The event source writes, the tick reads, and the latest
// value of a flag wins.
type Controls struct {
	policy       Activation
	active       bool
	input        Input
	resetPending bool
	// activated latches the idle→active transition until the next tick.
	activated bool
}

// NewControls creates controls with the given activation policy.
func NewControls(policy Activation) *Controls {
	c := &Controls{policy: policy}
	if policy == ActivateAlways {
		c.active = true
		c.activated = true
	}
	return c
}

// Policy returns the activation policy.
func (c *Controls) Policy() Activation { return c.policy }

// Active reports whether input is being processed.
func (c *Controls) Active() bool { return c.active }

// Input returns the current directional flags.
func (c *Controls) Input() Input { return c.input }

// Activate switches the controls to active. Calling it again is a no-op.
func (c *Controls) Activate() {
	if !c.active {
		c.active = true
		c.activated = true
	}
}

// Click handles a pointer activation. Under ActivateOnClick and
// ActivateOnKey it activates the controls.
func (c *Controls) Click() {
	c.Activate()
}

// HandleKey applies a press (down=true) or release for an action. Events are
// dropped while idle, except that under ActivateOnKey a press first
// activates the controls and is then applied.
func (c *Controls) HandleKey(a Action, down bool) {
	if !c.active {
		if !down || c.policy != ActivateOnKey || a == ActionNone {
			return
		}
		c.Activate()
	}
	switch a {
	case ActionUp:
		c.input.Up = down
	case ActionDown:
		c.input.Down = down
	case ActionLeft:
		c.input.Left = down
	case ActionRight:
		c.input.Right = down
	case ActionSprint:
		c.input.Sprint = down
	case ActionReset:
		if down {
			c.resetPending = true
		}
	}
}

// RequestReset latches a reset for the next tick regardless of activation,
// like an on-screen reset button.
func (c *Controls) RequestReset() {
	c.resetPending = true
}

// ReleaseAll clears every held flag, e.g. when the window loses focus and
// release events would otherwise be missed.
func (c *Controls) ReleaseAll() {
	c.input = Input{}
}

// takeReset reports and clears the pending reset.
func (c *Controls) takeReset() bool {
	r := c.resetPending
	c.resetPending = false
	return r
}

// takeActivated reports and clears the idle→active transition.
func (c *Controls) takeActivated() bool {
	a := c.activated
	c.activated = false
	return a
}

// --- Ebitengine polling ---

// pollKeyboard converts this frame's key edges into HandleKey calls.
// keyBuf is reused between frames.
func pollKeyboard(c *Controls, keys KeyMap, keyBuf []ebiten.Key) []ebiten.Key {
	keyBuf = inpututil.AppendJustPressedKeys(keyBuf[:0])
	for _, k := range keyBuf {
		a, ok := keys[k]
		if !ok {
			// Unbound keys still wake an ActivateOnKey gate.
			if !c.active && c.policy == ActivateOnKey {
				c.Activate()
			}
			continue
		}
		c.HandleKey(a, true)
	}
	keyBuf = inpututil.AppendJustReleasedKeys(keyBuf[:0])
	for _, k := range keyBuf {
		if a, ok := keys[k]; ok {
			c.HandleKey(a, false)
		}
	}
	return keyBuf
}

// pollPointer reports a click for a fresh left-button press or touch.
func pollPointer(c *Controls, touchBuf []ebiten.TouchID) []ebiten.TouchID {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.Click()
	}
	touchBuf = inpututil.AppendJustPressedTouchIDs(touchBuf[:0])
	if len(touchBuf) > 0 {
		c.Click()
	}
	return touchBuf
}
