package paint

import (
	"math"
	"math/rand"
)

// Stamper renders one brush impression at the origin of a local coordinate
// space. It is the closed polymorphism point for brush kinds: the drawing
// engine computes a per-stamp transform and hands it to the Stamper, which
// rasterizes itself onto the destination surface.
type Stamper interface {
	// DrawStamp renders one stamp onto dst. m maps stamp-local
	// coordinates (origin at the stamp center, units in pixels) to dst
	// coordinates. size is the untransformed stamp diameter, color the
	// brush color, and alpha the per-stamp opacity in 0-255.
	DrawStamp(dst *Pixmap, m Matrix, size float64, color RGBA, alpha uint8)

	// Footprint returns the side length of the axis-aligned square,
	// centered at the stamp origin, that fully contains the untransformed
	// stamp of the given size.
	Footprint(size float64) float64
}

// stampBounds returns the destination-pixel rectangle covered by a stamp of
// the given footprint under transform m, clipped to dst. The second return
// is false when the stamp lies entirely outside dst.
func stampBounds(dst *Pixmap, m Matrix, footprint float64) (x0, y0, x1, y1 int, ok bool) {
	h := footprint / 2
	corners := [4]Point{{-h, -h}, {h, -h}, {-h, h}, {h, h}}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := m.TransformPoint(c)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	x0 = int(math.Floor(minX))
	y0 = int(math.Floor(minY))
	x1 = int(math.Ceil(maxX)) + 1
	y1 = int(math.Ceil(maxY)) + 1

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, dst.Width())
	y1 = min(y1, dst.Height())

	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

// SoftStamp renders a soft-edged radial gradient dab. This is the default
// stamp primitive for brushes without an explicit Stamper.
type SoftStamp struct {
	// Hardness in [0, 1) sets the fraction of the radius that is fully
	// covered before the edge falloff begins.
	Hardness float64

	// Texture, when non-nil, modulates coverage by the texture's alpha
	// channel. The texture is sampled in destination space and tiled, so
	// grain stays anchored to the canvas as the brush moves across it.
	Texture *Pixmap
}

// Footprint implements Stamper.
func (s *SoftStamp) Footprint(size float64) float64 {
	return size
}

// DrawStamp implements Stamper.
func (s *SoftStamp) DrawStamp(dst *Pixmap, m Matrix, size float64, color RGBA, alpha uint8) {
	radius := size / 2
	if radius <= 0 || alpha == 0 {
		return
	}

	x0, y0, x1, y1, ok := stampBounds(dst, m, s.Footprint(size))
	if !ok {
		return
	}

	inv := m.Invert()
	hardness := clamp01(s.Hardness)
	pr, pg, pb, pa := color.Premul()
	af := float64(alpha) / 255

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			local := inv.TransformPoint(Pt(float64(x)+0.5, float64(y)+0.5))
			d := local.Length() / radius
			if d >= 1 {
				continue
			}

			cov := 1.0
			if d > hardness {
				t := (d - hardness) / (1 - hardness)
				cov = 1 - t*t*(3-2*t) // smoothstep falloff
			}
			if s.Texture != nil {
				cov *= s.textureAt(x, y)
			}
			cov *= af
			if cov <= 0 {
				continue
			}

			dst.BlendPixelPremul(x, y,
				uint8(float64(pr)*cov),
				uint8(float64(pg)*cov),
				uint8(float64(pb)*cov),
				uint8(float64(pa)*cov))
		}
	}
}

// textureAt samples the tiled texture alpha at a destination pixel.
func (s *SoftStamp) textureAt(x, y int) float64 {
	tw, th := s.Texture.Width(), s.Texture.Height()
	if tw == 0 || th == 0 {
		return 1
	}
	tx := ((x % tw) + tw) % tw
	ty := ((y % th) + th) % th
	return float64(s.Texture.Data()[(ty*tw+tx)*4+3]) / 255
}

// SpriteStamp renders stamps from a list of source pixmaps, either cycling
// through them in order or sampling randomly. Sprite pixels are modulated
// by the brush color and the per-stamp opacity, so a white-on-transparent
// sprite behaves like a shaped, colorable brush tip.
type SpriteStamp struct {
	// Sprites are the candidate stamp images. Must be non-empty.
	Sprites []*Pixmap

	// Random selects a random sprite per stamp instead of cycling.
	// Rand supplies the randomness; when nil, selection falls back to
	// cycling so behavior stays deterministic.
	Random bool
	Rand   *rand.Rand

	next int
}

// Footprint implements Stamper.
func (s *SpriteStamp) Footprint(size float64) float64 {
	return size
}

// DrawStamp implements Stamper.
func (s *SpriteStamp) DrawStamp(dst *Pixmap, m Matrix, size float64, color RGBA, alpha uint8) {
	if len(s.Sprites) == 0 || size <= 0 || alpha == 0 {
		return
	}
	sprite := s.pick()
	sw, sh := sprite.Width(), sprite.Height()
	if sw == 0 || sh == 0 {
		return
	}

	x0, y0, x1, y1, ok := stampBounds(dst, m, s.Footprint(size))
	if !ok {
		return
	}

	inv := m.Invert()
	cr, cg, cb, ca := color.Premul()
	af := float64(alpha) / 255

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			local := inv.TransformPoint(Pt(float64(x)+0.5, float64(y)+0.5))

			// Map the stamp-local square [-size/2, size/2] onto the sprite.
			sx := (local.X/size + 0.5) * float64(sw)
			sy := (local.Y/size + 0.5) * float64(sh)
			if sx < 0 || sy < 0 || sx >= float64(sw) || sy >= float64(sh) {
				continue
			}

			pr, pg, pb, pa := sprite.bilinear(sx, sy)
			if pa == 0 {
				continue
			}

			// Modulate by brush color and stamp opacity.
			dst.BlendPixelPremul(x, y,
				uint8(pr*float64(cr)/255*af),
				uint8(pg*float64(cg)/255*af),
				uint8(pb*float64(cb)/255*af),
				uint8(pa*float64(ca)/255*af))
		}
	}
}

// pick returns the sprite for the next stamp.
func (s *SpriteStamp) pick() *Pixmap {
	if s.Random && s.Rand != nil {
		return s.Sprites[s.Rand.Intn(len(s.Sprites))]
	}
	sprite := s.Sprites[s.next%len(s.Sprites)]
	s.next++
	return sprite
}

// bilinear samples the premultiplied pixmap at a fractional position.
func (p *Pixmap) bilinear(x, y float64) (r, g, b, a float64) {
	x -= 0.5
	y -= 0.5
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	sample := func(px, py int) (float64, float64, float64, float64) {
		if px < 0 || py < 0 || px >= p.width || py >= p.height {
			return 0, 0, 0, 0
		}
		i := (py*p.width + px) * 4
		return float64(p.data[i]), float64(p.data[i+1]), float64(p.data[i+2]), float64(p.data[i+3])
	}

	r00, g00, b00, a00 := sample(x0, y0)
	r10, g10, b10, a10 := sample(x0+1, y0)
	r01, g01, b01, a01 := sample(x0, y0+1)
	r11, g11, b11, a11 := sample(x0+1, y0+1)

	lerp := func(v00, v10, v01, v11 float64) float64 {
		top := v00 + (v10-v00)*fx
		bot := v01 + (v11-v01)*fx
		return top + (bot-top)*fy
	}

	return lerp(r00, r10, r01, r11), lerp(g00, g10, g01, g11),
		lerp(b00, b10, b01, b11), lerp(a00, a10, a01, a11)
}
