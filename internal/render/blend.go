package render

import (
	"image"
	"image/color"
)

// BlendMode selects the per-channel compositing formula for a draw
// stage. The canvas-style semantics are reproduced here directly on
// image.RGBA: screen for wave bands, lighter for the particle field,
// overlay or difference for the grain pass.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendScreen
	BlendLighter
	BlendOverlay
	BlendDifference
)

func blendChannel(mode BlendMode, dst, src uint8) uint8 {
	d, s := int(dst), int(src)
	switch mode {
	case BlendScreen:
		return uint8(255 - (255-d)*(255-s)/255)
	case BlendLighter:
		v := d + s
		if v > 255 {
			v = 255
		}
		return uint8(v)
	case BlendOverlay:
		if d < 128 {
			return uint8(2 * d * s / 255)
		}
		return uint8(255 - 2*(255-d)*(255-s)/255)
	case BlendDifference:
		if d > s {
			return uint8(d - s)
		}
		return uint8(s - d)
	default:
		return src
	}
}

// blendPixel composites src over one pixel at the given opacity. Out
// of bounds coordinates are ignored so callers can draw shapes that
// overhang the surface edge.
func blendPixel(dst *image.RGBA, x, y int, src color.RGBA, mode BlendMode, opacity float64) {
	if opacity <= 0 || !(image.Point{X: x, Y: y}.In(dst.Rect)) {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	p[0] = mix(p[0], blendChannel(mode, p[0], src.R), opacity)
	p[1] = mix(p[1], blendChannel(mode, p[1], src.G), opacity)
	p[2] = mix(p[2], blendChannel(mode, p[2], src.B), opacity)
	p[3] = 255
}

// compositeMask applies one uniform color through a coverage mask.
// The mask is interpreted in the destination's coordinate space over
// bbox; coverage scales the stage opacity per pixel, which is what
// gives the vector shapes their anti-aliased edges.
func compositeMask(dst *image.RGBA, bbox image.Rectangle, mask *image.Alpha, src color.RGBA, mode BlendMode, opacity float64) {
	clipped := bbox.Intersect(dst.Rect)
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			cov := mask.AlphaAt(x-bbox.Min.X, y-bbox.Min.Y).A
			if cov == 0 {
				continue
			}
			blendPixel(dst, x, y, src, mode, opacity*float64(cov)/255)
		}
	}
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
