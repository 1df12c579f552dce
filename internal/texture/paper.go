// Package texture synthesizes procedural grain masks for textured brushes.
package texture

import (
	"image"
	"image/color"

	"github.com/aquilax/go-perlin"
	"github.com/disintegration/gift"
)

// Params describes a paper-grain texture.
type Params struct {
	// Size is the side length of the square texture in pixels.
	Size int

	// Scale is the noise frequency; higher values give finer grain.
	Scale float64

	// Roughness in [0, 1] controls grain contrast: 0 is a flat mask,
	// 1 swings the full value range.
	Roughness float64

	// Blur softens the grain with a Gaussian pass; 0 disables it.
	Blur float64

	// Seed makes the texture reproducible.
	Seed int64
}

// Paper generates a grayscale grain mask from layered Perlin noise.
// The returned image's pixel values are intended to be used as coverage
// (alpha) by stamp renderers.
func Paper(p Params) *image.Gray {
	if p.Size <= 0 {
		p.Size = 256
	}
	if p.Scale <= 0 {
		p.Scale = 24
	}
	rough := p.Roughness
	if rough < 0 {
		rough = 0
	}
	if rough > 1 {
		rough = 1
	}

	noise := perlin.NewPerlin(2.0, 2.0, 3, p.Seed)
	img := image.NewGray(image.Rect(0, 0, p.Size, p.Size))

	inv := p.Scale / float64(p.Size)
	for y := 0; y < p.Size; y++ {
		for x := 0; x < p.Size; x++ {
			// Two octaves: base grain plus finer speckle.
			v := noise.Noise2D(float64(x)*inv, float64(y)*inv)
			v += 0.35 * noise.Noise2D(float64(x)*inv*4, float64(y)*inv*4)

			// Map roughly [-1.35, 1.35] to [0, 1], then pull toward the
			// midpoint by the inverse of roughness.
			n := (v/1.35 + 1) / 2
			n = 0.5 + (n-0.5)*rough

			if n < 0 {
				n = 0
			}
			if n > 1 {
				n = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(n*255 + 0.5)})
		}
	}

	if p.Blur > 0 {
		g := gift.New(gift.GaussianBlur(float32(p.Blur)))
		dst := image.NewGray(g.Bounds(img.Bounds()))
		g.Draw(dst, img)
		img = dst
	}
	return img
}
