package paint

import (
	"testing"
)

// TestSoftStampCoverage tests the radial falloff: full coverage inside the
// hardness radius, fading to nothing at the rim.
func TestSoftStampCoverage(t *testing.T) {
	dst := NewPixmap(32, 32)
	s := &SoftStamp{Hardness: 0.5}
	s.DrawStamp(dst, Translate(16, 16), 20, Black, 255)

	center := dst.GetPixel(16, 16)
	if center.A < 0.99 {
		t.Errorf("center alpha = %v, want full coverage", center.A)
	}

	// Inside the hard core (d < 0.5 of the radius).
	core := dst.GetPixel(19, 16)
	if core.A < 0.99 {
		t.Errorf("core alpha = %v, want full coverage", core.A)
	}

	// In the falloff band the coverage must be partial.
	edge := dst.GetPixel(24, 16)
	if edge.A <= 0 || edge.A >= 1 {
		t.Errorf("falloff alpha = %v, want partial coverage", edge.A)
	}

	// Outside the radius nothing is painted.
	if got := dst.GetPixel(27, 16); got != Transparent {
		t.Errorf("outside alpha = %v, want Transparent", got)
	}
}

// TestSoftStampAlphaScales tests that the per-stamp alpha scales coverage.
func TestSoftStampAlphaScales(t *testing.T) {
	full := NewPixmap(16, 16)
	half := NewPixmap(16, 16)
	s := &SoftStamp{Hardness: 0.5}
	s.DrawStamp(full, Translate(8, 8), 10, Black, 255)
	s.DrawStamp(half, Translate(8, 8), 10, Black, 128)

	f := full.GetPixel(8, 8).A
	h := half.GetPixel(8, 8).A
	if h >= f {
		t.Errorf("half-alpha stamp (%v) should be lighter than full (%v)", h, f)
	}
	if h < 0.4 || h > 0.6 {
		t.Errorf("half-alpha center = %v, want about 0.5", h)
	}
}

// TestSoftStampTextureModulates tests that a transparent texture masks the
// dab completely while an opaque one leaves it unchanged.
func TestSoftStampTextureModulates(t *testing.T) {
	opaque := NewPixmap(4, 4)
	opaque.Fill(White)
	clear := NewPixmap(4, 4)

	draw := func(tex *Pixmap) RGBA {
		dst := NewPixmap(16, 16)
		s := &SoftStamp{Hardness: 0.5, Texture: tex}
		s.DrawStamp(dst, Translate(8, 8), 10, Black, 255)
		return dst.GetPixel(8, 8)
	}

	if got := draw(clear); got != Transparent {
		t.Errorf("fully transparent texture painted %v, want nothing", got)
	}
	if got := draw(opaque); got.A < 0.99 {
		t.Errorf("opaque texture center alpha = %v, want full coverage", got.A)
	}
}

// TestSoftStampClipped tests that stamps straddling the surface edge only
// touch in-bounds pixels.
func TestSoftStampClipped(t *testing.T) {
	dst := NewPixmap(16, 16)
	s := &SoftStamp{Hardness: 0.5}
	s.DrawStamp(dst, Translate(0, 0), 10, Black, 255)

	if got := dst.GetPixel(0, 0); got.A < 0.5 {
		t.Errorf("corner alpha = %v, want coverage from the clipped stamp", got.A)
	}
}

// TestSpriteStampCycles tests deterministic sprite cycling without a
// random source.
func TestSpriteStampCycles(t *testing.T) {
	red := NewPixmap(4, 4)
	red.Fill(RGBA{R: 1, A: 1})
	green := NewPixmap(4, 4)
	green.Fill(RGBA{G: 1, A: 1})

	s := &SpriteStamp{Sprites: []*Pixmap{red, green}}

	stamp := func() RGBA {
		dst := NewPixmap(16, 16)
		s.DrawStamp(dst, Translate(8, 8), 8, White, 255)
		return dst.GetPixel(8, 8)
	}

	first := stamp()
	second := stamp()
	third := stamp()
	if first.R < 0.9 || second.G < 0.9 {
		t.Errorf("cycling order wrong: first=%v second=%v", first, second)
	}
	if third.R < 0.9 {
		t.Errorf("cycle should wrap back to the first sprite, got %v", third)
	}
}

// TestSpriteStampColorModulates tests that the brush color tints the
// sprite.
func TestSpriteStampColorModulates(t *testing.T) {
	white := NewPixmap(4, 4)
	white.Fill(White)
	s := &SpriteStamp{Sprites: []*Pixmap{white}}

	dst := NewPixmap(16, 16)
	s.DrawStamp(dst, Translate(8, 8), 8, RGBA{R: 1, A: 1}, 255)

	got := dst.GetPixel(8, 8)
	if got.R < 0.9 || got.G > 0.1 || got.B > 0.1 {
		t.Errorf("white sprite tinted red = %v, want pure red", got)
	}
}

// TestSpriteStampEmpty tests that a sprite stamp without sprites renders
// nothing rather than panicking.
func TestSpriteStampEmpty(t *testing.T) {
	dst := NewPixmap(8, 8)
	s := &SpriteStamp{}
	s.DrawStamp(dst, Translate(4, 4), 8, Black, 255)

	for _, v := range dst.Data() {
		if v != 0 {
			t.Fatal("empty sprite stamp painted pixels")
		}
	}
}
