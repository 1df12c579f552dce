package blend

// Composite blends n pixels of src over dst in place using the given mode.
// Both buffers hold premultiplied RGBA bytes (4 bytes per pixel) and must be
// at least 4*n bytes long.
//
// opacity scales the source before blending: 255 leaves the source
// untouched, 0 makes the operation a no-op. Because the buffers are
// premultiplied, scaling all four channels uniformly is exact.
func Composite(dst, src []byte, n int, mode Mode, opacity byte) {
	if n <= 0 || opacity == 0 {
		return
	}

	fn := Get(mode)

	// Fast path: fully opaque SourceOver is by far the most common call
	// (cache tier assembly), so skip the per-pixel opacity multiply.
	if opacity == 255 && mode == SourceOver {
		for i := 0; i < n*4; i += 4 {
			sa := src[i+3]
			if sa == 0 {
				continue
			}
			if sa == 255 {
				dst[i+0] = src[i+0]
				dst[i+1] = src[i+1]
				dst[i+2] = src[i+2]
				dst[i+3] = 255
				continue
			}
			r, g, b, a := sourceOver(src[i+0], src[i+1], src[i+2], sa, dst[i+0], dst[i+1], dst[i+2], dst[i+3])
			dst[i+0], dst[i+1], dst[i+2], dst[i+3] = r, g, b, a
		}
		return
	}

	for i := 0; i < n*4; i += 4 {
		sr := src[i+0]
		sg := src[i+1]
		sb := src[i+2]
		sa := src[i+3]
		if opacity != 255 {
			sr = mulDiv255(sr, opacity)
			sg = mulDiv255(sg, opacity)
			sb = mulDiv255(sb, opacity)
			sa = mulDiv255(sa, opacity)
		}

		r, g, b, a := fn(sr, sg, sb, sa, dst[i+0], dst[i+1], dst[i+2], dst[i+3])

		dst[i+0] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = a
	}
}

// Pixel blends a single premultiplied source pixel over the destination
// bytes at dst[0:4] using SourceOver. Used by stamp renderers on their
// inner loop.
func Pixel(dst []byte, sr, sg, sb, sa byte) {
	if sa == 0 {
		return
	}
	if sa == 255 {
		dst[0] = sr
		dst[1] = sg
		dst[2] = sb
		dst[3] = 255
		return
	}
	r, g, b, a := sourceOver(sr, sg, sb, sa, dst[0], dst[1], dst[2], dst[3])
	dst[0], dst[1], dst[2], dst[3] = r, g, b, a
}
