package paint

// minSpacing is the floor applied to Brush.Spacing. A spacing of zero would
// degenerate stamp placement into zero-length steps, so the stroke pipeline
// clamps to this value instead.
const minSpacing = 0.01

// minSpacingStep is the smallest distance, in pixels, between consecutive
// stamps regardless of brush size.
const minSpacingStep = 0.5

// Brush is the parameter bag describing what a stroke paints with.
// A Brush is treated as immutable for the duration of a stroke: the
// StrokePainter reads it at stroke begin and ignores later mutation until
// the next stroke.
//
// All jitter fields are fractions in [0, 1]; Size is in pixels; Angle is in
// degrees.
type Brush struct {
	// Size is the stamp diameter in pixels.
	Size float64

	// Spacing is the distance between consecutive stamps as a fraction of
	// Size. Values below minSpacing are clamped.
	Spacing float64

	// Opacity is the stroke opacity in [0, 1].
	Opacity float64

	// OpacityJitter, when positive, replaces the per-stamp opacity with a
	// uniform random value in [0, Opacity jitter range). It is an override,
	// not a multiplier.
	OpacityJitter float64

	// Scatter offsets each stamp by a random amount up to Size*Scatter on
	// each axis.
	Scatter float64

	// Angle rotates every stamp by a fixed amount, in degrees.
	Angle float64

	// AngleJitter, when positive, adds a random rotation in
	// [0, 360*AngleJitter) degrees per stamp.
	AngleJitter float64

	// SizeJitter, when positive, scales each stamp by a random factor in
	// [1, 1+SizeJitter).
	SizeJitter float64

	// Squish compresses the stamp along one axis by (1 - Squish).
	Squish float64

	// StartTaperSize is the scale of the first stamp of a stroke, in
	// [0, 1]. StartTaperSpeed is added per stamp until the scale saturates
	// at 1. Taper state resets on every stroke begin.
	StartTaperSize  float64
	StartTaperSpeed float64

	// Smoothness in [0, 1] controls path smoothing: 0 yields fully
	// smoothed curves, 1 preserves raw input corners.
	Smoothness float64

	// AlphaBlend accumulates a whole stroke on a transient surface and
	// composites it with Opacity in a single pass, so overlapping stamps
	// within one stroke do not double-darken.
	AlphaBlend bool

	// Color is the stamp color.
	Color RGBA

	// Texture, when non-nil, modulates the default soft stamp's coverage
	// by the texture's alpha channel (paper grain). Ignored when Stamp is
	// set; sprite stamps carry their own imagery.
	Texture *Pixmap

	// Stamp overrides the raw stamp primitive. When nil the brush renders
	// a soft radial-gradient dab.
	Stamp Stamper
}

// DefaultBrush returns a round, opaque, untextured brush.
func DefaultBrush() *Brush {
	return &Brush{
		Size:            16,
		Spacing:         0.1,
		Opacity:         1,
		StartTaperSize:  1,
		StartTaperSpeed: 0.1,
		Color:           Black,
	}
}

// SpacingStep returns the path distance between consecutive stamps,
// clamping degenerate spacing values.
func (b *Brush) SpacingStep() float64 {
	spacing := b.Spacing
	if spacing < minSpacing {
		spacing = minSpacing
	}
	step := b.Size * spacing
	if step < minSpacingStep {
		step = minSpacingStep
	}
	return step
}

// stamper returns the active stamp primitive for the brush.
func (b *Brush) stamper() Stamper {
	if b.Stamp != nil {
		return b.Stamp
	}
	return &SoftStamp{Hardness: 0.5, Texture: b.Texture}
}
