package meadow

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TelemetrySink receives the two telemetry readouts once per frame.
type TelemetrySink interface {
	ShowSpeed(text string)
	ShowPosition(text string)
}

// PublishTelemetry formats t and sends it to sink.
func PublishTelemetry(sink TelemetrySink, t Telemetry) {
	sink.ShowSpeed(t.SpeedText())
	sink.ShowPosition(t.PositionText())
}

// overlayFadeSeconds is how long the idle overlay takes to clear.
const overlayFadeSeconds = 0.6

// HUD draws the telemetry text, the idle prompt and an optional FPS readout
// over the scene.
type HUD struct {
	ShowFPS bool

	speed    string
	position string

	// overlay is the idle dimming alpha in [0, 1]; fade animates it to 0
	// once the controls activate.
	overlay float64
	fade    *gween.Tween
	policy  Activation

	fps fpsCounter
}

// NewHUD creates a HUD for controls using the given activation policy.
// The overlay starts visible unless the controls are already active.
func NewHUD(controls *Controls, showFPS bool) *HUD {
	h := &HUD{ShowFPS: showFPS, policy: controls.Policy(), speed: "0.00", position: "0, 0"}
	if !controls.Active() {
		h.overlay = 1
	}
	return h
}

// ShowSpeed implements TelemetrySink.
func (h *HUD) ShowSpeed(text string) { h.speed = text }

// ShowPosition implements TelemetrySink.
func (h *HUD) ShowPosition(text string) { h.position = text }

// Overlay returns the current idle overlay alpha.
func (h *HUD) Overlay() float64 { return h.overlay }

// Update advances the overlay fade by dt seconds and refreshes the FPS text
// about twice a second.
func (h *HUD) Update(dt float64, active bool) {
	if active && h.overlay > 0 && h.fade == nil {
		h.fade = gween.New(float32(h.overlay), 0, overlayFadeSeconds, ease.OutQuad)
	}
	if h.fade != nil {
		v, done := h.fade.Update(float32(dt))
		h.overlay = float64(v)
		if done {
			h.overlay = 0
			h.fade = nil
		}
	}

	if h.ShowFPS {
		h.fps.update(dt)
	}
}

// prompt returns the idle hint for the activation policy.
func (h *HUD) prompt() string {
	if h.policy == ActivateOnKey {
		return "Press any key to play"
	}
	return "Click to play"
}

const controlsHint = "Arrows/WASD move  Shift sprint  R reset"

// Draw paints the overlay through surf and the text directly on screen.
func (h *HUD) Draw(screen *ebiten.Image, surf *ScreenSurface, bounds Rect, tint Color, active bool) {
	if h.overlay > 0 {
		surf.Begin(screen)
		surf.FillRect(bounds, tint.WithAlpha(tint.A*h.overlay))
		surf.End()
	}

	ebitenutil.DebugPrintAt(screen, "Speed: "+h.speed, int(bounds.X)+8, int(bounds.Y)+6)
	ebitenutil.DebugPrintAt(screen, "Position: "+h.position, int(bounds.X)+8, int(bounds.Y)+22)

	if !active {
		c := bounds.Center()
		msg := h.prompt()
		// DebugPrint glyphs are 6x16.
		ebitenutil.DebugPrintAt(screen, msg, int(c.X)-len(msg)*3, int(c.Y)-16)
		ebitenutil.DebugPrintAt(screen, controlsHint, int(c.X)-len(controlsHint)*3, int(c.Y)+4)
	}

	if txt := h.fps.text; h.ShowFPS && txt != "" {
		ebitenutil.DebugPrintAt(screen, txt, int(bounds.X+bounds.Width)-len(txt)*6-8, int(bounds.Y)+6)
	}
}
