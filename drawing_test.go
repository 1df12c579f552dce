package paint

import (
	"bytes"
	"testing"
)

// TestDrawingDeterminism tests that the same seed reproduces a jittered
// stroke exactly.
func TestDrawingDeterminism(t *testing.T) {
	b := DefaultBrush()
	b.Scatter = 0.5
	b.AngleJitter = 0.8
	b.SizeJitter = 0.4

	render := func(seed int64) *Pixmap {
		dst := NewPixmap(64, 64)
		e := NewDrawingEngine(seed)
		e.StrokeBegin(b)
		for i := 0; i < 8; i++ {
			e.StampAt(dst, 32, 32, b)
		}
		e.StrokeEnd(b)
		return dst
	}

	if !bytes.Equal(render(7).Data(), render(7).Data()) {
		t.Error("same seed produced different strokes")
	}
	if bytes.Equal(render(7).Data(), render(8).Data()) {
		t.Error("different seeds produced identical jittered strokes")
	}
}

// TestDrawingStampAt tests that a plain stamp covers the brush center.
func TestDrawingStampAt(t *testing.T) {
	dst := NewPixmap(64, 64)
	e := NewDrawingEngine(1)
	b := DefaultBrush()
	e.StrokeBegin(b)
	e.StampAt(dst, 32, 32, b)

	if got := dst.GetPixel(32, 32); got.A < 0.9 {
		t.Errorf("stamp center alpha = %v, want near 1", got.A)
	}
	if got := dst.GetPixel(0, 0); got != Transparent {
		t.Errorf("far corner = %v, want Transparent", got)
	}
}

// TestDrawingTaperRamp tests that taper starts at the brush's initial size
// fraction and ramps to 1 per stamp.
func TestDrawingTaperRamp(t *testing.T) {
	b := DefaultBrush()
	b.StartTaperSize = 0.5
	b.StartTaperSpeed = 0.25

	e := NewDrawingEngine(1)
	e.StrokeBegin(b)
	want := []float64{0.5, 0.75, 1, 1}
	dst := NewPixmap(8, 8)
	for i, w := range want {
		if e.taper != w {
			t.Fatalf("taper before stamp %d = %v, want %v", i, e.taper, w)
		}
		e.StampAt(dst, 4, 4, b)
	}

	// A new stroke resets the ramp.
	e.StrokeBegin(b)
	if e.taper != 0.5 {
		t.Errorf("taper after StrokeBegin = %v, want 0.5", e.taper)
	}
}

// TestDrawingStampAlpha tests the constant and jittered opacity paths.
func TestDrawingStampAlpha(t *testing.T) {
	e := NewDrawingEngine(1)

	if got := e.stampAlpha(&Brush{Opacity: 1}); got != 255 {
		t.Errorf("stampAlpha at opacity 1 = %d, want 255", got)
	}
	if got := e.stampAlpha(&Brush{Opacity: 0.5}); got != 127 {
		t.Errorf("stampAlpha at opacity 0.5 = %d, want 127", got)
	}

	// Jitter overrides the constant opacity entirely.
	b := &Brush{Opacity: 1, OpacityJitter: 0.25}
	for i := 0; i < 32; i++ {
		if got := e.stampAlpha(b); got > 64 {
			t.Fatalf("jittered alpha = %d, want at most 255*0.25", got)
		}
	}
}

// TestDrawingZeroTaperSkipsStamp tests that a zero-size first stamp renders
// nothing but still advances the ramp.
func TestDrawingZeroTaperSkipsStamp(t *testing.T) {
	b := DefaultBrush()
	b.StartTaperSize = 0
	b.StartTaperSpeed = 0.5

	dst := NewPixmap(32, 32)
	e := NewDrawingEngine(1)
	e.StrokeBegin(b)
	e.StampAt(dst, 16, 16, b)

	for _, v := range dst.Data() {
		if v != 0 {
			t.Fatal("zero-taper stamp rendered pixels")
		}
	}
	if e.taper != 0.5 {
		t.Errorf("taper after skipped stamp = %v, want 0.5", e.taper)
	}
}
