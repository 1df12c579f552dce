// Package blend implements Porter-Duff compositing and separable blend
// modes for layered raster compositing.
//
// All operations work on premultiplied alpha values in the range 0-255.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "math"

// Mode identifies a compositing rule for combining a source pixel with the
// accumulated destination beneath it.
type Mode uint8

const (
	// SourceOver is the default alpha compositing mode: S + D*(1-Sa).
	SourceOver Mode = iota
	// Multiply multiplies source and destination channels; always darkens.
	Multiply
	// Screen is the inverse multiply; always lightens.
	Screen
	// Overlay multiplies or screens depending on destination brightness.
	Overlay
	// Darken keeps the darker of source and destination per channel.
	Darken
	// Lighten keeps the lighter of source and destination per channel.
	Lighten
	// ColorDodge brightens the destination to reflect the source.
	ColorDodge
	// ColorBurn darkens the destination to reflect the source.
	ColorBurn
	// HardLight multiplies or screens depending on source brightness.
	HardLight
	// SoftLight is a softer version of HardLight.
	SoftLight
	// Difference subtracts the darker channel from the lighter one.
	Difference
	// Exclusion is a lower-contrast Difference.
	Exclusion
	// Add sums source and destination, clamped to 255.
	Add
)

// Func is the signature for scalar blend operations.
// All values are premultiplied alpha, 0-255.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// Get returns the blend function for the given mode.
// Returns sourceOver for unknown modes.
func Get(mode Mode) Func {
	switch mode {
	case SourceOver:
		return sourceOver
	case Multiply:
		return separable(chanMultiply)
	case Screen:
		return separable(chanScreen)
	case Overlay:
		return separable(chanOverlay)
	case Darken:
		return separable(chanDarken)
	case Lighten:
		return separable(chanLighten)
	case ColorDodge:
		return separable(chanColorDodge)
	case ColorBurn:
		return separable(chanColorBurn)
	case HardLight:
		return separable(chanHardLight)
	case SoftLight:
		return separable(chanSoftLight)
	case Difference:
		return separable(chanDifference)
	case Exclusion:
		return separable(chanExclusion)
	case Add:
		return add
	default:
		return sourceOver
	}
}

// sourceOver composites source over destination (default blend mode).
// Formula: S + D * (1 - Sa)
func sourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return clampAdd(sr, mulDiv255(dr, invSa)),
		clampAdd(sg, mulDiv255(dg, invSa)),
		clampAdd(sb, mulDiv255(db, invSa)),
		clampAdd(sa, mulDiv255(da, invSa))
}

// add sums source and destination colors (clamped to 255).
func add(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return clampAdd(sr, dr), clampAdd(sg, dg), clampAdd(sb, db), clampAdd(sa, da)
}

// separable wraps a per-channel blend function B(s, d) operating on
// unmultiplied channels into a premultiplied blend Func using the standard
// formula:
//
//	Result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Sc, Dc)
func separable(blendChan func(s, d byte) byte) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		if sa == 0 {
			return dr, dg, db, da
		}
		if da == 0 {
			return sr, sg, sb, sa
		}

		// Unpremultiply both sides for the channel function.
		sur := unmul(sr, sa)
		sug := unmul(sg, sa)
		sub := unmul(sb, sa)
		dur := unmul(dr, da)
		dug := unmul(dg, da)
		dub := unmul(db, da)

		invSa := 255 - sa
		invDa := 255 - da
		sada := mulDiv255(sa, da)

		outR := clampAdd(clampAdd(mulDiv255(dr, invSa), mulDiv255(sr, invDa)), mulDiv255(sada, blendChan(sur, dur)))
		outG := clampAdd(clampAdd(mulDiv255(dg, invSa), mulDiv255(sg, invDa)), mulDiv255(sada, blendChan(sug, dug)))
		outB := clampAdd(clampAdd(mulDiv255(db, invSa), mulDiv255(sb, invDa)), mulDiv255(sada, blendChan(sub, dub)))
		outA := clampAdd(sa, mulDiv255(da, invSa))

		return outR, outG, outB, outA
	}
}

// Per-channel blend functions on unmultiplied 0-255 values.

func chanMultiply(s, d byte) byte {
	return mulDiv255(s, d)
}

func chanScreen(s, d byte) byte {
	return 255 - mulDiv255(255-s, 255-d)
}

func chanOverlay(s, d byte) byte {
	return chanHardLight(d, s)
}

func chanDarken(s, d byte) byte {
	if s < d {
		return s
	}
	return d
}

func chanLighten(s, d byte) byte {
	if s > d {
		return s
	}
	return d
}

func chanColorDodge(s, d byte) byte {
	if d == 0 {
		return 0
	}
	if s == 255 {
		return 255
	}
	v := uint16(d) * 255 / uint16(255-s)
	if v > 255 {
		return 255
	}
	return byte(v)
}

func chanColorBurn(s, d byte) byte {
	if d == 255 {
		return 255
	}
	if s == 0 {
		return 0
	}
	v := uint16(255-d) * 255 / uint16(s)
	if v > 255 {
		return 0
	}
	return 255 - byte(v)
}

func chanHardLight(s, d byte) byte {
	if s <= 127 {
		return mulDiv255(2*s, d)
	}
	return 255 - mulDiv255(2*(255-s), 255-d)
}

func chanSoftLight(s, d byte) byte {
	// W3C soft-light in 0-255 integer arithmetic.
	sf := float64(s) / 255
	df := float64(d) / 255
	var out float64
	if sf <= 0.5 {
		out = df - (1-2*sf)*df*(1-df)
	} else {
		var g float64
		if df <= 0.25 {
			g = ((16*df-12)*df + 4) * df
		} else {
			g = math.Sqrt(df)
		}
		out = df + (2*sf-1)*(g-df)
	}
	v := out*255 + 0.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func chanDifference(s, d byte) byte {
	if s > d {
		return s - d
	}
	return d - s
}

// chanExclusion computes s + d - 2*s*d. The result is always in range:
// it equals s*(1-d) + d*(1-s).
func chanExclusion(s, d byte) byte {
	mul := uint16(mulDiv255(s, d))
	return byte(uint16(s) + uint16(d) - 2*mul)
}

// Utility functions.

// mulDiv255 multiplies two byte values and divides by 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// clampAdd adds two byte values with clamping to 255.
func clampAdd(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// unmul unpremultiplies a channel by its alpha.
func unmul(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := uint16(c) * 255 / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}
