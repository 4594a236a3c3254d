package meadow

import (
	"fmt"
	"io"
	"os"
	"time"
)

// frameStats holds per-frame timing and draw metrics.
// Only populated when the Game is in debug mode.
type frameStats struct {
	steps     int
	stepTime  time.Duration
	drawTime  time.Duration
	drawCalls int
	blades    int
}

// debugOut is where debug lines go. Tests swap it.
var debugOut io.Writer = os.Stderr

// debugLog prints timing and draw stats.
func (g *Game) debugLog() {
	if !g.debug {
		return
	}
	writeStats(debugOut, g.Sim.Frame, g.stats)
}

func writeStats(w io.Writer, frame uint64, st frameStats) {
	_, _ = fmt.Fprintf(w,
		"[meadow] frame %d | steps: %d | step: %v | draw: %v | total: %v\n",
		frame, st.steps, st.stepTime, st.drawTime, st.stepTime+st.drawTime)
	_, _ = fmt.Fprintf(w,
		"[meadow] blades: %d | draw calls: %d\n",
		st.blades, st.drawCalls)
}

// CountCommands renders one frame of sim into a Recorder and returns the
// number of primitives emitted. Useful for tuning blade density.
func CountCommands(sim *Simulation, theme Theme) int {
	var rec Recorder
	NewRenderer(theme).Draw(&rec, sim)
	return len(rec.Commands)
}
