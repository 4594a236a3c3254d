package meadow

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"after-run", "after-run"},
		{"v1.2", "v1.2"},
		{"  padded  ", "padded"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"a/b\\c", "a_b_c"},
		{"two words", "two_words"},
		{"grass:bent?", "grass_bent_"},
		{"ünïcode", "_n_code"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	g := newTestGame(ActivateAlways)
	if g.ScreenshotDir != "screenshots" {
		t.Errorf("default dir = %q, want screenshots", g.ScreenshotDir)
	}
	g.Screenshot("one")
	g.Screenshot("two")
	if len(g.screenshotQueue) != 2 || g.screenshotQueue[1] != "two" {
		t.Errorf("queue = %v", g.screenshotQueue)
	}
}

func TestUnpremultiply(t *testing.T) {
	src := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half-alpha orange
		0, 0, 0, 0, // transparent
		200, 200, 200, 100, // channels above alpha saturate
	}
	dst := make([]byte, len(src))
	unpremultiply(dst, src)
	want := []byte{
		255, 0, 0, 255,
		127, 63, 0, 128,
		0, 0, 0, 0,
		255, 255, 255, 100,
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 2, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "000042_test.png")
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	r, g, b, a := got.At(1, 2).RGBA()
	if r>>8 != 10 || g>>8 != 200 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("pixel = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestWritePNG_BadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.png")
	if err := writePNG(path, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
