package paint

import (
	"math"
	"testing"
)

// TestPremul tests straight-to-premultiplied conversion.
func TestPremul(t *testing.T) {
	tests := []struct {
		name             string
		c                RGBA
		wantR, wantG     uint8
		wantB, wantA     uint8
	}{
		{"opaque white", White, 255, 255, 255, 255},
		{"opaque black", Black, 0, 0, 0, 255},
		{"transparent", Transparent, 0, 0, 0, 0},
		{"half red", RGBA{R: 1, A: 0.5}, 127, 0, 0, 127},
		{"clamped", RGBA{R: 2, G: -1, A: 1}, 255, 0, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.Premul()
			if r != tt.wantR || g != tt.wantG || b != tt.wantB || a != tt.wantA {
				t.Errorf("Premul() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

// TestLerp tests linear color interpolation.
func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	for _, v := range []float64{got.R, got.G, got.B} {
		if math.Abs(v-0.5) > 1e-9 {
			t.Errorf("Black.Lerp(White, 0.5) = %v, want 0.5 channels", got)
		}
	}
	if got := Black.Lerp(White, 0); got != Black {
		t.Errorf("Lerp at t=0 = %v, want %v", got, Black)
	}
	if got := Black.Lerp(White, 1); got != White {
		t.Errorf("Lerp at t=1 = %v, want %v", got, White)
	}
}

// TestFromColorRoundTrip tests that Color/FromColor preserve opaque colors.
func TestFromColorRoundTrip(t *testing.T) {
	c := RGB(0.2, 0.4, 0.8)
	got := FromColor(c.Color())
	if math.Abs(got.R-c.R) > 0.01 || math.Abs(got.G-c.G) > 0.01 ||
		math.Abs(got.B-c.B) > 0.01 || math.Abs(got.A-c.A) > 0.01 {
		t.Errorf("FromColor(Color()) = %v, want %v", got, c)
	}
}
