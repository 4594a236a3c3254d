package meadow

import (
	"strings"
	"testing"
)

func TestLoadTestScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"bad json", `{"steps": [`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, `unknown action "jump"`},
		{"missing key", `{"steps": [{"action": "press"}]}`, `unknown key ""`},
		{"unknown key", `{"steps": [{"action": "click"}, {"action": "hold", "key": "fly"}]}`, `step 1: unknown key "fly"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.json))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTestRunner_Playthrough(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click"},
		{"action": "hold", "key": "right", "frames": 10},
		{"action": "screenshot", "label": "moved"},
		{"action": "wait", "frames": 3}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGame(ActivateOnClick)
	g.SetTestRunner(runner)

	frames := 0
	for !runner.Done() && frames < 100 {
		runFrame(g)
		frames++
	}
	// click 1, hold 10, screenshot 1, wait 3, then the frame that notices
	// the end.
	if frames != 16 {
		t.Errorf("script took %d frames, want 16", frames)
	}
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "moved" {
		t.Errorf("screenshot queue = %v, want [moved]", g.screenshotQueue)
	}
	if !g.Sim.Controls.Active() {
		t.Error("script click did not activate")
	}
	if g.Sim.Ball.Pos.X <= g.Sim.Ball.Start.X {
		t.Errorf("ball x = %v, want right of start %v", g.Sim.Ball.Pos.X, g.Sim.Ball.Start.X)
	}
	if g.Sim.Controls.Input().Right {
		t.Error("hold left the key pressed")
	}
}

func TestTestRunner_WaitsForInjections(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "press", "key": "up"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGame(ActivateAlways)
	g.SetTestRunner(runner)

	runFrame(g)
	if runner.Done() {
		t.Error("done before the press was consumed")
	}
	if !g.Sim.Controls.Input().Up {
		t.Error("press not applied on the first frame")
	}
	runFrame(g)
	if !runner.Done() {
		t.Error("not done after the queue drained")
	}

	// A finished runner does nothing.
	runFrame(g)
	if len(g.injectQueue) != 0 {
		t.Errorf("finished runner queued %d events", len(g.injectQueue))
	}
}

func TestTestRunner_ResetStep(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "hold", "key": "down", "frames": 8},
		{"action": "reset"},
		{"action": "screenshot"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGame(ActivateAlways)
	g.SetTestRunner(runner)
	for i := 0; !runner.Done() && i < 100; i++ {
		runFrame(g)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	if g.Sim.Ball.Pos != g.Sim.Ball.Start {
		t.Errorf("ball at %+v after reset step, want %+v", g.Sim.Ball.Pos, g.Sim.Ball.Start)
	}
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "" {
		t.Errorf("screenshot queue = %q, want one unlabeled entry", g.screenshotQueue)
	}
}
