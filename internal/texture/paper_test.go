package texture

import (
	"bytes"
	"testing"
)

// TestPaperDeterministic tests that the same seed reproduces the texture.
func TestPaperDeterministic(t *testing.T) {
	a := Paper(Params{Size: 64, Roughness: 1, Seed: 7})
	b := Paper(Params{Size: 64, Roughness: 1, Seed: 7})
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed produced different textures")
	}

	c := Paper(Params{Size: 64, Roughness: 1, Seed: 8})
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("different seeds produced identical textures")
	}
}

// TestPaperDefaults tests the fallback size and scale.
func TestPaperDefaults(t *testing.T) {
	img := Paper(Params{})
	if got := img.Bounds().Dx(); got != 256 {
		t.Errorf("default size = %d, want 256", got)
	}
}

// TestPaperRoughness tests that zero roughness yields a flat mask and
// higher roughness widens the value range.
func TestPaperRoughness(t *testing.T) {
	valueRange := func(roughness float64) int {
		img := Paper(Params{Size: 64, Roughness: roughness, Seed: 3})
		lo, hi := 255, 0
		for _, v := range img.Pix {
			if int(v) < lo {
				lo = int(v)
			}
			if int(v) > hi {
				hi = int(v)
			}
		}
		return hi - lo
	}

	if r := valueRange(0); r != 0 {
		t.Errorf("roughness 0 value range = %d, want 0", r)
	}
	if flat, rough := valueRange(0.2), valueRange(1); rough <= flat {
		t.Errorf("roughness 1 range (%d) should exceed roughness 0.2 range (%d)", rough, flat)
	}
}

// TestPaperBlurSmooths tests that the blur pass reduces local contrast.
func TestPaperBlurSmooths(t *testing.T) {
	maxStep := func(blur float64) int {
		img := Paper(Params{Size: 64, Roughness: 1, Blur: blur, Seed: 3})
		step := 0
		for y := 0; y < 64; y++ {
			for x := 1; x < 64; x++ {
				d := int(img.GrayAt(x, y).Y) - int(img.GrayAt(x-1, y).Y)
				if d < 0 {
					d = -d
				}
				if d > step {
					step = d
				}
			}
		}
		return step
	}

	if sharp, soft := maxStep(0), maxStep(2); soft > sharp {
		t.Errorf("blurred texture has larger steps (%d) than unblurred (%d)", soft, sharp)
	}
}
