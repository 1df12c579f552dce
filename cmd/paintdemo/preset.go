package main

import (
	"github.com/spf13/viper"

	"github.com/gogpu/paint"
)

// presetDefaults seeds viper with the default brush so a config file only
// needs to override the parameters it cares about.
func presetDefaults() {
	viper.SetDefault("brush.size", 16.0)
	viper.SetDefault("brush.spacing", 0.1)
	viper.SetDefault("brush.opacity", 1.0)
	viper.SetDefault("brush.scatter", 0.0)
	viper.SetDefault("brush.angle", 0.0)
	viper.SetDefault("brush.angle-jitter", 0.0)
	viper.SetDefault("brush.size-jitter", 0.0)
	viper.SetDefault("brush.squish", 0.0)
	viper.SetDefault("brush.smoothness", 0.0)
	viper.SetDefault("brush.taper-size", 1.0)
	viper.SetDefault("brush.taper-speed", 0.1)
	viper.SetDefault("brush.alpha-blend", false)
	viper.SetDefault("brush.roughness", 0.7)
	viper.SetDefault("brush.color", "#000000")
}

// brushFromConfig builds a brush from the viper "brush" preset section.
func brushFromConfig() *paint.Brush {
	b := paint.DefaultBrush()
	b.Size = viper.GetFloat64("brush.size")
	b.Spacing = viper.GetFloat64("brush.spacing")
	b.Opacity = viper.GetFloat64("brush.opacity")
	b.Scatter = viper.GetFloat64("brush.scatter")
	b.Angle = viper.GetFloat64("brush.angle")
	b.AngleJitter = viper.GetFloat64("brush.angle-jitter")
	b.SizeJitter = viper.GetFloat64("brush.size-jitter")
	b.Squish = viper.GetFloat64("brush.squish")
	b.Smoothness = viper.GetFloat64("brush.smoothness")
	b.StartTaperSize = viper.GetFloat64("brush.taper-size")
	b.StartTaperSpeed = viper.GetFloat64("brush.taper-speed")
	b.AlphaBlend = viper.GetBool("brush.alpha-blend")
	b.Color = parseHexColor(viper.GetString("brush.color"))
	return b
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA"; invalid strings fall back
// to opaque black.
func parseHexColor(s string) paint.RGBA {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return paint.Black
	}

	parse := func(hi, lo byte) (float64, bool) {
		h, ok1 := hexDigit(hi)
		l, ok2 := hexDigit(lo)
		return float64(h*16+l) / 255, ok1 && ok2
	}

	r, ok1 := parse(s[0], s[1])
	g, ok2 := parse(s[2], s[3])
	b, ok3 := parse(s[4], s[5])
	a := 1.0
	ok4 := true
	if len(s) == 8 {
		a, ok4 = parse(s[6], s[7])
	}
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return paint.Black
	}
	return paint.RGBA{R: r, G: g, B: b, A: a}
}

func hexDigit(c byte) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
