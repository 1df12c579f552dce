package paint

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/paint/internal/blend"
)

// Pixmap represents a rectangular pixel buffer.
// Pixels are stored as premultiplied RGBA, 4 bytes per pixel.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new, fully transparent pixmap with the given
// dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (premultiplied RGBA).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &Pixmap{
		width:  p.width,
		height: p.height,
		data:   data,
	}
}

// SameSize reports whether q has the same dimensions as p.
func (p *Pixmap) SameSize(q *Pixmap) bool {
	return q != nil && p.width == q.width && p.height == q.height
}

// SetPixel sets the color of a single pixel. Out-of-bounds coordinates are
// silently ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	r, g, b, a := c.Premul()
	i := (y*p.width + x) * 4
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
	p.data[i+3] = a
}

// SetPixelPremul sets a single pixel from premultiplied components.
// Out-of-bounds coordinates are silently ignored.
func (p *Pixmap) SetPixelPremul(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
	p.data[i+3] = a
}

// BlendPixelPremul composites a premultiplied pixel over the existing pixel
// at (x, y) using source-over. Out-of-bounds coordinates are silently
// ignored.
func (p *Pixmap) BlendPixelPremul(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	blend.Pixel(p.data[i:i+4], r, g, b, a)
}

// GetPixel returns the straight-alpha color of a single pixel.
// Out-of-bounds coordinates return Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	a := p.data[i+3]
	if a == 0 {
		return Transparent
	}
	af := float64(a)
	return RGBA{
		R: float64(p.data[i+0]) / af,
		G: float64(p.data[i+1]) / af,
		B: float64(p.data[i+2]) / af,
		A: af / 255,
	}
}

// Clear resets the pixmap to fully transparent.
func (p *Pixmap) Clear() {
	clear(p.data)
}

// Fill sets every pixel to the given color.
func (p *Pixmap) Fill(c RGBA) {
	r, g, b, a := c.Premul()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Draw composites src onto p at the origin using the given blend mode and
// opacity. The overlapping region is the intersection of the two pixmaps;
// any excess source or destination area is left untouched.
func (p *Pixmap) Draw(src *Pixmap, mode BlendMode, opacity float64) {
	if src == nil {
		return
	}
	op := uint8(clamp255(opacity * 255))
	if op == 0 {
		return
	}

	w := min(p.width, src.width)
	h := min(p.height, src.height)
	m := mode.mode()

	if w == p.width && w == src.width {
		// Contiguous rows: one pass over both buffers.
		blend.Composite(p.data[:w*h*4], src.data[:w*h*4], w*h, m, op)
		return
	}

	for y := 0; y < h; y++ {
		di := y * p.width * 4
		si := y * src.width * 4
		blend.Composite(p.data[di:di+w*4], src.data[si:si+w*4], w, m, op)
	}
}

// SubRegion returns a deep copy of the given region, clipped to the pixmap
// bounds. Returns an empty pixmap if the region does not intersect.
func (p *Pixmap) SubRegion(r image.Rectangle) *Pixmap {
	r = r.Intersect(image.Rect(0, 0, p.width, p.height))
	out := NewPixmap(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		si := ((r.Min.Y+y)*p.width + r.Min.X) * 4
		di := y * out.width * 4
		copy(out.data[di:di+out.width*4], p.data[si:si+out.width*4])
	}
	return out
}

// ToImage converts the pixmap to an image.NRGBA (straight alpha).
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			img.SetNRGBA(x, y, p.GetPixel(x, y).Color().(color.NRGBA))
		}
	}
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	pm.drawImage(img)
	return pm
}

// drawImage copies img into the pixmap's top-left corner, premultiplying.
func (p *Pixmap) drawImage(img image.Image) {
	bounds := img.Bounds()
	w := min(p.width, bounds.Dx())
	h := min(p.height, bounds.Dy())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*p.width + x) * 4
			p.data[i+0] = uint8(r >> 8)
			p.data[i+1] = uint8(g >> 8)
			p.data[i+2] = uint8(b >> 8)
			p.data[i+3] = uint8(a >> 8)
		}
	}
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
