package meadow

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional settings for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the window size. Zero uses the world bounds.
	Width, Height int
	// ShowFPS shows the FPS/TPS readout.
	ShowFPS bool
	// Debug logs per-frame timings to stderr.
	Debug bool
	// Theme overrides the look. A zero Theme uses ThemeMeadow.
	Theme Theme
	// KeyMap overrides DefaultKeyMap.
	KeyMap KeyMap
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to "screenshots".
	ScreenshotDir string
	// Script, if set, is a JSON test script driving the run.
	Script []byte
	// ExitOnScriptDone ends the run when the script finishes.
	ExitOnScriptDone bool
}

// errScriptDone ends RunGame cleanly once a script has finished.
var errScriptDone = errors.New("meadow: test script finished")

// Game adapts a Simulation to ebiten.Game. Use it directly for full control
// of the loop, or call Run.
type Game struct {
	Sim *Simulation
	HUD *HUD

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	renderer *Renderer
	surface  *ScreenSurface
	keys     KeyMap

	keyBuf   []ebiten.Key
	touchBuf []ebiten.TouchID
	focused  bool

	injectQueue      []syntheticInput
	testRunner       *TestRunner
	exitOnScriptDone bool
	screenshotQueue  []string

	debug bool
	stats frameStats
}

// NewGame creates a Game drawing sim with theme.
func NewGame(sim *Simulation, theme Theme) *Game {
	return &Game{
		Sim:           sim,
		HUD:           NewHUD(sim.Controls, false),
		ScreenshotDir: "screenshots",
		renderer:      NewRenderer(theme),
		surface:       NewScreenSurface(),
		keys:          DefaultKeyMap,
		focused:       true,
	}
}

// SetKeyMap replaces the key bindings.
func (g *Game) SetKeyMap(keys KeyMap) {
	g.keys = keys
}

// SetDebugMode enables or disables per-frame timing logs on stderr.
func (g *Game) SetDebugMode(enabled bool) {
	g.debug = enabled
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if focused := ebiten.IsFocused(); focused != g.focused {
		if !focused {
			g.Sim.Controls.ReleaseAll()
		}
		g.focused = focused
	}

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = TickRate
	}
	g.tick(1 / float64(tps))

	if g.testRunner != nil && g.exitOnScriptDone && g.testRunner.Done() && len(g.screenshotQueue) == 0 {
		return errScriptDone
	}
	return nil
}

// tick runs one frame of input and simulation.
func (g *Game) tick(dt float64) {
	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	if !g.processInjectedInput() {
		g.keyBuf = pollKeyboard(g.Sim.Controls, g.keys, g.keyBuf)
		g.touchBuf = pollPointer(g.Sim.Controls, g.touchBuf)
	}

	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	g.stats.steps = g.Sim.Advance(dt)
	if g.debug {
		g.stats.stepTime = time.Since(t0)
	}

	PublishTelemetry(g.HUD, g.Sim.Telemetry())
	g.HUD.Update(dt, g.Sim.Controls.Active())
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	g.surface.Begin(screen)
	g.renderer.Draw(g.surface, g.Sim)
	g.stats.drawCalls = g.surface.End()

	th := &g.renderer.Theme
	g.HUD.Draw(screen, g.surface, g.Sim.World.Bounds, th.Prompt, g.Sim.Controls.Active())

	if g.debug {
		g.stats.drawTime = time.Since(t0)
		g.stats.blades = g.Sim.Field.Len()
		g.debugLog()
	}

	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The logical screen is the world bounds.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.Sim.World.Bounds
	return int(b.X + b.Width), int(b.Y + b.Height)
}

// Run creates a window and runs sim until the window closes. It returns the
// error from ebiten.RunGame, or nil when a script ends the run.
func Run(sim *Simulation, cfg RunConfig) error {
	theme := cfg.Theme
	if theme.Background == nil {
		theme = ThemeMeadow(sim.Ball.Radius)
	}

	g := NewGame(sim, theme)
	g.HUD.ShowFPS = cfg.ShowFPS
	g.SetDebugMode(cfg.Debug)
	if cfg.KeyMap != nil {
		g.SetKeyMap(cfg.KeyMap)
	}
	if cfg.ScreenshotDir != "" {
		g.ScreenshotDir = cfg.ScreenshotDir
	}
	if len(cfg.Script) > 0 {
		runner, err := LoadTestScript(cfg.Script)
		if err != nil {
			return err
		}
		g.SetTestRunner(runner)
		g.exitOnScriptDone = cfg.ExitOnScriptDone
	}

	w, h := cfg.Width, cfg.Height
	if w == 0 || h == 0 {
		w, h = g.Layout(0, 0)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(TickRate)

	err := ebiten.RunGame(g)
	if errors.Is(err, errScriptDone) {
		return nil
	}
	return err
}
