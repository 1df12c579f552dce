package paint

import (
	"fmt"
	"image"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/paint/internal/texture"

	_ "image/jpeg" // register JPEG decoder for texture loading
	_ "image/png"  // register PNG decoder for texture loading
)

// LoadTexture loads an image file for use as a brush texture or sprite.
// When maxSize is positive and the image exceeds it on either axis, the
// image is downscaled proportionally to fit.
func LoadTexture(path string, maxSize int) (*Pixmap, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		scale := float64(maxSize) / float64(max(w, h))
		nw := int(float64(w) * scale)
		nh := int(float64(h) * scale)
		scaled := image.NewNRGBA(image.Rect(0, 0, nw, nh))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Over, nil)
		img = scaled
	}

	return FromImage(img), nil
}

// PaperTexture generates a procedural paper-grain texture for textured
// brushes. The grain is stored in the alpha channel (white ink at varying
// coverage), which is what SoftStamp samples.
//
// roughness in [0, 1] controls grain contrast; the same seed always yields
// the same texture.
func PaperTexture(size int, roughness float64, seed int64) *Pixmap {
	gray := texture.Paper(texture.Params{
		Size:      size,
		Roughness: roughness,
		Blur:      0.8,
		Seed:      seed,
	})

	pm := NewPixmap(size, size)
	data := pm.Data()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := gray.GrayAt(x, y).Y
			i := (y*size + x) * 4
			// Premultiplied white at coverage v.
			data[i+0] = v
			data[i+1] = v
			data[i+2] = v
			data[i+3] = v
		}
	}
	return pm
}
