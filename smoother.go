package paint

import "math"

// StampFunc receives one stamp position emitted by the Smoother.
type StampFunc func(x, y float64)

// quadBez is a quadratic Bezier curve with control points P0, P1, P2.
type quadBez struct {
	P0, P1, P2 Point
}

// eval evaluates the curve at parameter t in [0, 1].
func (q quadBez) eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Smoother consumes raw pointer samples and emits evenly spaced stamp
// positions along a smoothed path.
//
// Between consecutive raw samples the path follows a quadratic Bezier from
// the previous midpoint to the new midpoint, with control geometry derived
// from the raw sample itself. Smoothing avoids visible corners at the raw
// input positions; the smoothness parameter blends between fully smoothed
// curves and corner-preserving ones.
//
// Stamp positions are spaced by a fixed path-distance step. Distance left
// over at the end of one segment carries into the next, so slow input made
// of many tiny segments produces the same stamps as the same path fed as
// one long segment. A Smoother is restartable: Begin resets all state. It
// is not a persistent or replayable stream.
type Smoother struct {
	step       float64
	smoothness float64
	emit       StampFunc

	active   bool
	haveMid  bool
	prev     Point // last raw input point
	prevMid  Point // midpoint between the last two raw points
	residual float64
	lastEmit Point
}

// NewSmoother creates a smoother emitting stamps every step pixels of path
// distance. smoothness is the brush smoothness in [0, 1]: 0 yields fully
// smoothed curves, 1 preserves raw corners.
func NewSmoother(step, smoothness float64, emit StampFunc) *Smoother {
	if step <= 0 {
		step = minSpacingStep
	}
	return &Smoother{
		step:       step,
		smoothness: clamp01(smoothness),
		emit:       emit,
	}
}

// Begin starts a new path at (x, y), discarding any previous state, and
// emits the stroke's first stamp there.
func (s *Smoother) Begin(x, y float64) {
	p := Pt(x, y)
	s.active = true
	s.haveMid = false
	s.prev = p
	s.residual = 0
	s.lastEmit = p
	s.emit(x, y)
}

// Extend continues the path to (x, y), emitting zero or more stamps in
// strictly increasing path-distance order.
func (s *Smoother) Extend(x, y float64) {
	if !s.active {
		return
	}
	p := Pt(x, y)
	mid := s.prev.Lerp(p, 0.5)

	if !s.haveMid {
		// First segment: nothing to smooth against yet, walk straight to
		// the first midpoint.
		s.walkLine(s.prev, mid)
	} else {
		s.walkQuad(s.curveTo(mid))
	}

	s.prevMid = mid
	s.haveMid = true
	s.prev = p
}

// End finishes the path at (x, y). Remaining sub-step distance is flushed
// by emitting one final stamp at the end point, then the smoother becomes
// inactive until the next Begin.
func (s *Smoother) End(x, y float64) {
	if !s.active {
		return
	}
	p := Pt(x, y)

	if s.haveMid {
		s.walkLine(s.prevMid, s.prev)
	}
	if s.prev != p {
		s.walkLine(s.prev, p)
	}

	// Flush accumulated distance with a final stamp at the end point.
	if s.residual > 1e-9 && s.lastEmit.Distance(p) > 1e-9 {
		s.emit(x, y)
		s.lastEmit = p
	}

	s.active = false
	s.haveMid = false
	s.residual = 0
}

// curveTo builds the quadratic segment from the previous midpoint to mid.
//
// With full smoothing the control point is the raw sample itself, the
// classic midpoint scheme that rounds off input corners. With smoothing
// disabled the control point overshoots so the curve passes through the raw
// sample at t=0.5, preserving the corner.
func (s *Smoother) curveTo(mid Point) quadBez {
	effective := 1 - s.smoothness
	// Control point that makes the curve interpolate the raw sample:
	// eval(0.5) = (P0 + P2)/4 + C/2, solved for C.
	sharp := s.prev.Mul(2).Sub(s.prevMid.Add(mid).Mul(0.5))
	ctrl := sharp.Lerp(s.prev, effective)
	return quadBez{P0: s.prevMid, P1: ctrl, P2: mid}
}

// walkQuad flattens the curve into short chords and walks each one.
func (s *Smoother) walkQuad(q quadBez) {
	chord := q.P0.Distance(q.P1) + q.P1.Distance(q.P2)
	segs := int(math.Ceil(chord / 1.5))
	if segs < 4 {
		segs = 4
	}
	if segs > 256 {
		segs = 256
	}

	prev := q.P0
	for i := 1; i <= segs; i++ {
		next := q.eval(float64(i) / float64(segs))
		s.walkLine(prev, next)
		prev = next
	}
}

// walkLine advances along the segment a-b, emitting a stamp every step
// pixels of accumulated path distance.
func (s *Smoother) walkLine(a, b Point) {
	d := a.Distance(b)
	if d <= 0 {
		return
	}
	dir := b.Sub(a).Mul(1 / d)

	traveled := s.step - s.residual
	for traveled <= d {
		p := a.Add(dir.Mul(traveled))
		s.emit(p.X, p.Y)
		s.lastEmit = p
		traveled += s.step
	}
	s.residual = d - (traveled - s.step)
}
