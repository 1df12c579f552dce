package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T, w, h int) (*Compositor, *StrokePainter) {
	t.Helper()
	c := NewCompositor(w, h)
	p := NewStrokePainter(c)
	p.Seed(1)
	return c, p
}

// TestPainterNoBrushIgnored verifies that a gesture without a brush leaves
// the canvas and history untouched.
func TestPainterNoBrushIgnored(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	c.AddLayer()
	c.History().Clear()

	p.MoveBegin(32, 32)
	p.Move(40, 40)
	p.MoveEnd(40, 40)

	assert.False(t, c.History().CanUndo())
	assert.Equal(t, Transparent, c.layers[0].surface.GetPixel(32, 32))
}

// TestPainterLockedLayerIgnored verifies that strokes cannot bind to a
// locked layer.
func TestPainterLockedLayerIgnored(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	c.AddLayer()
	require.NoError(t, c.SetLayerLocked(0, true))
	c.History().Clear()

	p.SetBrush(DefaultBrush())
	p.MoveBegin(32, 32)
	p.MoveEnd(32, 32)

	assert.False(t, c.History().CanUndo())
	assert.Equal(t, Transparent, c.layers[0].surface.GetPixel(32, 32))
}

// TestPainterEmptyStackIgnored verifies that a gesture on an empty stack is
// a no-op rather than a panic.
func TestPainterEmptyStackIgnored(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	p.SetBrush(DefaultBrush())

	p.MoveBegin(10, 10)
	p.Move(20, 20)
	p.MoveEnd(20, 20)

	assert.False(t, c.History().CanUndo())
}

// TestPainterStrokePaintsAndRecords verifies the basic stroke lifecycle:
// pixels land on the selected layer and one history record is pushed.
func TestPainterStrokePaintsAndRecords(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	c.AddLayer()
	c.History().Clear()

	p.SetBrush(DefaultBrush())
	p.MoveBegin(32, 32)
	p.MoveEnd(32, 32)

	assert.Equal(t, 1, c.History().Depth())
	got := c.layers[0].surface.GetPixel(32, 32)
	assert.Greater(t, got.A, 0.9)

	require.True(t, c.Undo())
	assert.Equal(t, Transparent, c.layers[0].surface.GetPixel(32, 32))

	require.True(t, c.Redo())
	got = c.layers[0].surface.GetPixel(32, 32)
	assert.Greater(t, got.A, 0.9)
}

// TestPainterAlphaBlendIdempotent verifies that overlapping stamps within
// one alpha-blend stroke do not exceed the brush opacity, while a plain
// brush accumulates per stamp.
func TestPainterAlphaBlendIdempotent(t *testing.T) {
	center := func(alphaBlend bool, drag bool) float64 {
		c, p := newTestCanvas(t, 64, 64)
		c.AddLayer()

		b := DefaultBrush()
		b.Opacity = 0.5
		b.AlphaBlend = alphaBlend
		p.SetBrush(b)

		p.MoveBegin(32, 32)
		if drag {
			p.Move(34, 32)
			p.MoveEnd(36, 32)
		} else {
			p.MoveEnd(32, 32)
		}
		return c.layers[0].surface.GetPixel(32, 32).A
	}

	tap := center(true, false)
	drag := center(true, true)
	assert.Equal(t, tap, drag, "overlapping alpha-blend stamps must not darken beyond one stamp")

	plain := center(false, true)
	assert.Greater(t, plain, drag, "a plain brush should accumulate per stamp")
}

// TestPainterAlphaBlendSeparateStrokes verifies that distinct alpha-blend
// strokes still accumulate against each other.
func TestPainterAlphaBlendSeparateStrokes(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	c.AddLayer()

	b := DefaultBrush()
	b.Opacity = 0.5
	b.AlphaBlend = true
	p.SetBrush(b)

	p.MoveBegin(32, 32)
	p.MoveEnd(32, 32)
	one := c.layers[0].surface.GetPixel(32, 32).A

	p.MoveBegin(32, 32)
	p.MoveEnd(32, 32)
	two := c.layers[0].surface.GetPixel(32, 32).A

	assert.Greater(t, two, one)
}

// TestPainterViewTransform verifies that pointer coordinates are mapped
// through the inverse of the surface-to-view transform.
func TestPainterViewTransform(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	c.AddLayer()

	p.SetBrush(DefaultBrush())
	p.SetViewTransform(Scale(2, 2)) // canvas displayed at 2x zoom

	p.MoveBegin(64, 64)
	p.MoveEnd(64, 64)

	got := c.layers[0].surface.GetPixel(32, 32)
	assert.Greater(t, got.A, 0.9, "stamp should land at surface (32, 32)")
}

// TestPainterMoveWithoutBegin verifies that Move and MoveEnd outside a
// stroke are ignored.
func TestPainterMoveWithoutBegin(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	c.AddLayer()
	c.History().Clear()
	p.SetBrush(DefaultBrush())

	p.Move(10, 10)
	p.MoveEnd(10, 10)

	assert.False(t, c.History().CanUndo())
}

// TestPainterBrushReadAtBegin verifies that swapping the brush mid-stroke
// does not affect the stroke in flight.
func TestPainterBrushReadAtBegin(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	c.AddLayer()

	b := DefaultBrush()
	b.Color = RGBA{R: 1, A: 1}
	p.SetBrush(b)

	p.MoveBegin(20, 32)
	b2 := DefaultBrush()
	b2.Color = RGBA{G: 1, A: 1}
	p.SetBrush(b2)
	p.Move(32, 32)
	p.MoveEnd(44, 32)

	got := c.layers[0].surface.GetPixel(32, 32)
	assert.Greater(t, got.R, 0.9, "stroke should keep the color it began with")
	assert.Less(t, got.G, 0.1)
}

// TestPainterBrushSwapMidStroke verifies that the snapshot taken at
// MoveBegin fully isolates a stroke from later SetBrush calls: the final
// alpha-blend composite keeps the opacity the stroke began with, and even
// clearing the brush mid-stroke is harmless.
func TestPainterBrushSwapMidStroke(t *testing.T) {
	c, p := newTestCanvas(t, 64, 64)
	c.AddLayer()

	b := DefaultBrush()
	b.Opacity = 0.5
	b.AlphaBlend = true
	p.SetBrush(b)

	p.MoveBegin(32, 32)
	p.SetBrush(DefaultBrush()) // opaque, no alpha blend
	p.Move(34, 32)
	p.MoveEnd(36, 32)

	one := c.layers[0].surface.GetPixel(32, 32).A
	assert.InDelta(t, 0.5, one, 0.01, "the stroke composites with the opacity it began with")

	p.SetBrush(b)
	p.MoveBegin(32, 32)
	p.SetBrush(nil)
	p.Move(34, 32)
	p.MoveEnd(36, 32)

	two := c.layers[0].surface.GetPixel(32, 32).A
	assert.Greater(t, two, one, "a brush cleared mid-stroke still finishes the stroke")
}
