package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/meadow"
)

// DefaultHoldFrames is how many ticks a key press holds its action.
// Terminals report repeats but never releases, so the hold has to outlast
// the typical auto-repeat delay.
const DefaultHoldFrames = 18

// Driver runs a Simulation on a tcell screen.
type Driver struct {
	Sim      *meadow.Simulation
	Screen   tcell.Screen
	Surface  *Surface
	Renderer *meadow.Renderer

	// HoldFrames is the number of ticks an action stays held after the last
	// press or repeat.
	HoldFrames int

	hold [meadow.ActionReset + 1]int
}

// NewDriver creates a driver drawing sim with theme onto screen.
func NewDriver(sim *meadow.Simulation, screen tcell.Screen, theme meadow.Theme) *Driver {
	cols, rows := screen.Size()
	return &Driver{
		Sim:        sim,
		Screen:     screen,
		Surface:    NewSurface(cols, rows-1),
		Renderer:   meadow.NewRenderer(theme),
		HoldFrames: DefaultHoldFrames,
	}
}

// keyAction maps a key event to an action and whether it also sprints.
func keyAction(ev *tcell.EventKey) (a meadow.Action, sprint bool) {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyUp:
		return meadow.ActionUp, shift
	case tcell.KeyDown:
		return meadow.ActionDown, shift
	case tcell.KeyLeft:
		return meadow.ActionLeft, shift
	case tcell.KeyRight:
		return meadow.ActionRight, shift
	case tcell.KeyRune:
	default:
		return meadow.ActionNone, false
	}
	switch ev.Rune() {
	case 'w':
		return meadow.ActionUp, false
	case 'W':
		return meadow.ActionUp, true
	case 's':
		return meadow.ActionDown, false
	case 'S':
		return meadow.ActionDown, true
	case 'a':
		return meadow.ActionLeft, false
	case 'A':
		return meadow.ActionLeft, true
	case 'd':
		return meadow.ActionRight, false
	case 'D':
		return meadow.ActionRight, true
	case 'r', 'R':
		return meadow.ActionReset, false
	}
	return meadow.ActionNone, false
}

// HandleEvent applies one terminal event. It returns false when the
// driver should quit.
func (d *Driver) HandleEvent(ev tcell.Event) bool {
	c := d.Sim.Controls
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			c.Click()
			return true
		}
		a, sprint := keyAction(ev)
		if a == meadow.ActionNone {
			if !c.Active() && c.Policy() == meadow.ActivateOnKey {
				c.Activate()
			}
			return true
		}
		d.press(a)
		if sprint {
			d.press(meadow.ActionSprint)
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			c.Click()
		}
	case *tcell.EventResize:
		cols, rows := d.Screen.Size()
		d.Surface.Resize(cols, rows-1)
		d.Screen.Sync()
	}
	return true
}

func (d *Driver) press(a meadow.Action) {
	d.Sim.Controls.HandleKey(a, true)
	if a != meadow.ActionReset && d.Sim.Controls.Active() {
		d.hold[a] = d.HoldFrames
	}
}

// releaseExpired counts down held actions and releases those that ran out.
func (d *Driver) releaseExpired() {
	for a := range d.hold {
		if d.hold[a] == 0 {
			continue
		}
		d.hold[a]--
		if d.hold[a] == 0 {
			d.Sim.Controls.HandleKey(meadow.Action(a), false)
		}
	}
}

// Tick advances the simulation one step and redraws.
func (d *Driver) Tick() {
	d.releaseExpired()
	d.Sim.Step()
	d.Draw()
}

// Draw renders the scene and the status row, then shows the screen.
func (d *Driver) Draw() {
	d.Surface.Begin(d.Sim.World.Bounds)
	d.Renderer.Draw(d.Surface, d.Sim)
	d.Surface.Flush(d.Screen, 0)

	_, rows := d.Surface.Size()
	t := d.Sim.Telemetry()
	status := fmt.Sprintf("Speed: %s  Position: %s", t.SpeedText(), t.PositionText())
	if !d.Sim.Controls.Active() {
		status += "  | " + idlePrompt(d.Sim.Controls.Policy())
	}
	cols, _ := d.Screen.Size()
	d.putString(0, rows, status, cols)
	d.Screen.Show()
}

func idlePrompt(p meadow.Activation) string {
	if p == meadow.ActivateOnKey {
		return "press any key to play"
	}
	return "click or press Enter to play"
}

func (d *Driver) putString(x, y int, s string, width int) {
	col := x
	for _, r := range s {
		if col >= width {
			return
		}
		d.Screen.SetContent(col, y, r, nil, tcell.StyleDefault)
		col++
	}
	for ; col < width; col++ {
		d.Screen.SetContent(col, y, ' ', nil, tcell.StyleDefault)
	}
}

// Run drives sim on screen at meadow.TickRate until ctx is done or the user
// quits with Esc or Ctrl-C. The caller owns Init and Fini of screen.
func Run(ctx context.Context, sim *meadow.Simulation, screen tcell.Screen) error {
	return RunTheme(ctx, sim, screen, meadow.ThemeMeadow(sim.Ball.Radius))
}

// RunTheme is Run with an explicit theme.
func RunTheme(ctx context.Context, sim *meadow.Simulation, screen tcell.Screen, theme meadow.Theme) error {
	screen.EnableMouse()
	defer screen.DisableMouse()

	d := NewDriver(sim, screen, theme)

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / meadow.TickRate)
	defer ticker.Stop()

	d.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !d.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			d.Tick()
		}
	}
}
