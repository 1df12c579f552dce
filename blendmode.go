package paint

import "github.com/gogpu/paint/internal/blend"

// BlendMode is a Porter-Duff-style rule for combining a layer's pixels with
// the composite beneath it.
type BlendMode uint8

const (
	// BlendNormal is standard alpha compositing (source over). This is the
	// default for new layers and the only mode the cache tier can cross:
	// all other modes force per-layer compositing because they are not
	// associative across a cached composite boundary.
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendAdd
)

// String returns a human-readable name for the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	case BlendDarken:
		return "Darken"
	case BlendLighten:
		return "Lighten"
	case BlendColorDodge:
		return "ColorDodge"
	case BlendColorBurn:
		return "ColorBurn"
	case BlendHardLight:
		return "HardLight"
	case BlendSoftLight:
		return "SoftLight"
	case BlendDifference:
		return "Difference"
	case BlendExclusion:
		return "Exclusion"
	case BlendAdd:
		return "Add"
	default:
		return "Unknown"
	}
}

// mode maps the public enum onto the internal blend package.
func (m BlendMode) mode() blend.Mode {
	switch m {
	case BlendNormal:
		return blend.SourceOver
	case BlendMultiply:
		return blend.Multiply
	case BlendScreen:
		return blend.Screen
	case BlendOverlay:
		return blend.Overlay
	case BlendDarken:
		return blend.Darken
	case BlendLighten:
		return blend.Lighten
	case BlendColorDodge:
		return blend.ColorDodge
	case BlendColorBurn:
		return blend.ColorBurn
	case BlendHardLight:
		return blend.HardLight
	case BlendSoftLight:
		return blend.SoftLight
	case BlendDifference:
		return blend.Difference
	case BlendExclusion:
		return blend.Exclusion
	case BlendAdd:
		return blend.Add
	default:
		return blend.SourceOver
	}
}
