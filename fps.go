package meadow

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsRefresh is how often the FPS readout is refreshed, in seconds.
const fpsRefresh = 0.5

// fpsCounter keeps an FPS/TPS readout that refreshes about twice a second.
type fpsCounter struct {
	accum float64
	text  string
	// read returns the current FPS and TPS. Nil uses ebiten.ActualFPS/TPS.
	read func() (fps, tps float64)
}

func (c *fpsCounter) update(dt float64) {
	c.accum += dt
	if c.accum < fpsRefresh && c.text != "" {
		return
	}
	c.accum = 0
	read := c.read
	if read == nil {
		read = func() (float64, float64) { return ebiten.ActualFPS(), ebiten.ActualTPS() }
	}
	fps, tps := read()
	c.text = fmt.Sprintf("FPS: %.1f  TPS: %.1f", fps, tps)
}
