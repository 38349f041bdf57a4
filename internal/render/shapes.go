package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/ivlev/prompt2video/internal/system"
)

// rasterShape builds a path in bbox-local coordinates, rasterizes it
// to a pooled coverage mask and composites it onto dst. The mask is
// returned to the pool before the call ends, so shapes never allocate
// per frame once the pools are warm.
func rasterShape(dst *image.RGBA, bbox image.Rectangle, src color.RGBA, mode BlendMode, opacity float64, build func(r *vector.Rasterizer)) {
	w, h := bbox.Dx(), bbox.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	mask := system.GetMask(image.Rect(0, 0, w, h))
	defer system.PutMask(mask)
	for i := range mask.Pix {
		mask.Pix[i] = 0
	}

	r := vector.NewRasterizer(w, h)
	build(r)
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	compositeMask(dst, bbox, mask, src, mode, opacity)
}

// Kappa for approximating a quarter circle with one cubic Bezier.
const circleKappa = 0.5522847498

func circlePath(r *vector.Rasterizer, cx, cy, radius float32) {
	k := radius * circleKappa
	r.MoveTo(cx+radius, cy)
	r.CubeTo(cx+radius, cy+k, cx+k, cy+radius, cx, cy+radius)
	r.CubeTo(cx-k, cy+radius, cx-radius, cy+k, cx-radius, cy)
	r.CubeTo(cx-radius, cy-k, cx-k, cy-radius, cx, cy-radius)
	r.CubeTo(cx+k, cy-radius, cx+radius, cy-k, cx+radius, cy)
	r.ClosePath()
}

// fillCircle draws an anti-aliased disc centered at (cx, cy).
func fillCircle(dst *image.RGBA, cx, cy, radius float64, src color.RGBA, mode BlendMode, opacity float64) {
	if radius <= 0 {
		return
	}
	bbox := image.Rect(
		int(math.Floor(cx-radius))-1, int(math.Floor(cy-radius))-1,
		int(math.Ceil(cx+radius))+2, int(math.Ceil(cy+radius))+2,
	)
	rasterShape(dst, bbox, src, mode, opacity, func(r *vector.Rasterizer) {
		circlePath(r, float32(cx-float64(bbox.Min.X)), float32(cy-float64(bbox.Min.Y)), float32(radius))
	})
}

// drawCross draws the sparkle cross-hair: a horizontal and a vertical
// one-pixel arm through the particle center.
func drawCross(dst *image.RGBA, cx, cy, arm float64, src color.RGBA, mode BlendMode, opacity float64) {
	x, y := int(cx+0.5), int(cy+0.5)
	half := int(arm + 0.5)
	for dx := -half; dx <= half; dx++ {
		blendPixel(dst, x+dx, y, src, mode, opacity)
	}
	for dy := -half; dy <= half; dy++ {
		if dy == 0 {
			continue
		}
		blendPixel(dst, x, y+dy, src, mode, opacity)
	}
}
