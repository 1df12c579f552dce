package paint

import (
	"math"
	"math/rand"
)

// DrawingEngine turns stamp positions into rendered brush impressions.
// For each stamp it composes a transform from the brush's scatter, angle,
// jitter, taper and squish parameters, then hands the transform to the
// brush's stamp primitive.
//
// Randomness comes from an injected seedable source so strokes are
// reproducible in tests. Taper state resets on every stroke begin.
type DrawingEngine struct {
	rng   *rand.Rand
	taper float64
	count int
}

// NewDrawingEngine creates an engine with its own deterministic random
// source.
func NewDrawingEngine(seed int64) *DrawingEngine {
	return &DrawingEngine{
		rng:   rand.New(rand.NewSource(seed)),
		taper: 1,
	}
}

// Reseed resets the engine's random source.
func (e *DrawingEngine) Reseed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// StrokeBegin resets per-stroke state for the given brush.
func (e *DrawingEngine) StrokeBegin(b *Brush) {
	e.count = 0
	e.taper = clamp01(b.StartTaperSize)
}

// StampAt renders one stamp of b at (x, y) onto dst.
func (e *DrawingEngine) StampAt(dst *Pixmap, x, y float64, b *Brush) {
	// Scatter: random offset up to Size*Scatter on each axis.
	ox, oy := 0.0, 0.0
	if b.Scatter > 0 {
		ox = b.Size * b.Scatter * (e.rng.Float64()*2 - 1)
		oy = b.Size * b.Scatter * (e.rng.Float64()*2 - 1)
	}

	// Rotation: fixed angle plus optional jitter, wrapped to [0, 360).
	deg := b.Angle
	if b.AngleJitter > 0 {
		deg += e.rng.Float64() * 360 * b.AngleJitter
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}

	// Scale: taper ramp times size jitter, with squish on one axis.
	scale := e.taper
	if b.SizeJitter > 0 {
		scale *= 1 + b.SizeJitter*e.rng.Float64()
	}
	squish := clamp01(1 - b.Squish)

	alpha := e.stampAlpha(b)

	if scale > 0 && squish > 0 && alpha > 0 {
		m := Translate(x+ox, y+oy).
			Multiply(Rotate(deg * math.Pi / 180)).
			Multiply(Scale(scale, scale*squish))
		b.stamper().DrawStamp(dst, m, b.Size, b.Color, alpha)
	}

	e.advanceTaper(b)
	e.count++
}

// stampAlpha returns the per-stamp opacity. Opacity jitter is an override,
// not a multiplier: it replaces the constant opacity with a uniform random
// value.
func (e *DrawingEngine) stampAlpha(b *Brush) uint8 {
	if b.OpacityJitter > 0 {
		return uint8(e.rng.Float64() * 255 * clamp01(b.OpacityJitter))
	}
	return uint8(clamp255(b.Opacity * 255))
}

// advanceTaper ramps the taper factor toward 1 at the brush's taper speed.
func (e *DrawingEngine) advanceTaper(b *Brush) {
	if e.taper >= 1 {
		e.taper = 1
		return
	}
	e.taper += b.StartTaperSpeed
	if e.taper > 1 {
		e.taper = 1
	}
}

// StrokeEnd finishes the current stroke. Present for symmetry with
// StrokeBegin; per-stroke state is reset on the next StrokeBegin.
func (e *DrawingEngine) StrokeEnd(_ *Brush) {}
