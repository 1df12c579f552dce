package paint

import "time"

// StrokePainter orchestrates the Smoother and DrawingEngine against the
// selected layer of a Compositor.
//
// State machine: Idle → StrokeActive → Idle. MoveBegin starts a stroke
// only when a brush is set and the selected layer exists and is not
// locked; otherwise the whole gesture is a no-op and every Move call is
// ignored until the next MoveBegin.
//
// For alpha-blend brushes the painter accumulates stamps at full opacity
// on a transient scratch surface that starts each stroke fully
// transparent; MoveEnd composites the accumulation onto the layer in one
// pass at the brush's constant opacity, so overlapping stamps within a
// stroke do not double-darken.
//
// The painter borrows the selected layer for the duration of one stroke
// and never retains it past MoveEnd.
type StrokePainter struct {
	comp   *Compositor
	engine *DrawingEngine

	brush     *Brush
	view      Matrix // view→surface mapping, identity by default
	toSurface Matrix

	active     bool
	layer      *Layer
	layerIndex int
	smoother   *Smoother
	scratch    *Pixmap // alpha-blend accumulation, lazily allocated
	before     *Pixmap // layer snapshot for the stroke's history record

	// strokeBrush is the effective brush for in-flight stamps, copied at
	// MoveBegin so a mid-stroke SetBrush cannot affect the stroke. For
	// alpha-blend strokes its opacity is forced to 1; strokeOpacity keeps
	// the opacity the final composite applies.
	strokeBrush   Brush
	strokeOpacity float64
}

// NewStrokePainter creates a painter bound to the compositor and registers
// it as the compositor's active painter for live-stroke rendering.
func NewStrokePainter(c *Compositor) *StrokePainter {
	p := &StrokePainter{
		comp:      c,
		engine:    NewDrawingEngine(time.Now().UnixNano()),
		view:      Identity(),
		toSurface: Identity(),
	}
	c.painter = p
	return p
}

// SetBrush sets the brush used by subsequent strokes. The brush is read at
// MoveBegin; changing it mid-stroke has no effect until the next stroke.
func (p *StrokePainter) SetBrush(b *Brush) {
	p.brush = b
}

// Brush returns the painter's current brush.
func (p *StrokePainter) Brush() *Brush {
	return p.brush
}

// Seed reseeds the painter's drawing engine for reproducible strokes.
func (p *StrokePainter) Seed(seed int64) {
	p.engine.Reseed(seed)
}

// SetViewTransform supplies the surface→view transform from layout. It is
// used only to map incoming pointer coordinates into surface space and is
// not stored as editing state.
func (p *StrokePainter) SetViewTransform(m Matrix) {
	p.view = m
	p.toSurface = m.Invert()
}

// MoveBegin starts a stroke at view position (x, y). The stroke is a no-op
// when no brush is set or the selected layer is missing or locked.
func (p *StrokePainter) MoveBegin(x, y float64) {
	layer, index := p.comp.strokeTarget()
	if p.brush == nil || layer == nil || layer.locked {
		Logger().Warn("stroke ignored", "brush", p.brush != nil, "layer", layer != nil)
		p.active = false
		return
	}

	p.active = true
	p.layer = layer
	p.layerIndex = index
	p.before = layer.surface.Clone()

	p.strokeBrush = *p.brush
	p.strokeOpacity = p.strokeBrush.Opacity
	if p.strokeBrush.AlphaBlend {
		// Stamps accumulate at full opacity; the stroke's net opacity is
		// applied in one pass at MoveEnd.
		p.strokeBrush.Opacity = 1
		p.strokeBrush.OpacityJitter = 0
		p.ensureScratch()
		p.scratch.Clear()
	}

	p.engine.StrokeBegin(&p.strokeBrush)
	p.smoother = NewSmoother(p.strokeBrush.SpacingStep(), p.strokeBrush.Smoothness, p.stampAt)

	pt := p.toSurface.TransformPoint(Pt(x, y))
	p.smoother.Begin(pt.X, pt.Y)
}

// Move extends the active stroke to view position (x, y). Ignored when no
// stroke is active.
func (p *StrokePainter) Move(x, y float64) {
	if !p.active {
		return
	}
	pt := p.toSurface.TransformPoint(Pt(x, y))
	p.smoother.Extend(pt.X, pt.Y)
}

// MoveEnd finishes the active stroke at view position (x, y), composites
// any alpha-blend accumulation, and records the stroke in history.
func (p *StrokePainter) MoveEnd(x, y float64) {
	if !p.active {
		return
	}
	pt := p.toSurface.TransformPoint(Pt(x, y))
	p.smoother.End(pt.X, pt.Y)
	p.engine.StrokeEnd(&p.strokeBrush)

	if p.strokeBrush.AlphaBlend {
		p.layer.surface.Draw(p.scratch, BlendNormal, p.strokeOpacity)
		p.scratch.Clear()
	}

	p.comp.strokeFinished(p.layerIndex, p.before, p.layer.surface.Clone())

	// The borrow ends here.
	p.active = false
	p.layer = nil
	p.before = nil
	p.smoother = nil
}

// stampAt receives one smoothed stamp position and renders it.
func (p *StrokePainter) stampAt(x, y float64) {
	dst := p.layer.surface
	if p.strokeBrush.AlphaBlend {
		// The layer's surface can be swapped externally mid-stroke; a
		// size mismatch is recovered locally by reallocating scratch
		// surfaces, never surfaced to the caller.
		p.ensureScratch()
		dst = p.scratch
	}
	p.engine.StampAt(dst, x, y, &p.strokeBrush)
}

// ensureScratch allocates or resizes the accumulation surface to match the
// target layer.
func (p *StrokePainter) ensureScratch() {
	surf := p.layer.surface
	if p.scratch == nil || !p.scratch.SameSize(surf) {
		if p.scratch != nil {
			Logger().Debug("scratch surface reallocated",
				"w", surf.Width(), "h", surf.Height())
		}
		p.scratch = NewPixmap(surf.Width(), surf.Height())
	}
}
