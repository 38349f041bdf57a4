package overlay

import (
	"image"
	"image/color"
	stddraw "image/draw"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// End-card geometry: the code sits in the bottom-right corner and
// fades in over the final render stage.
const (
	StampSize = 96
	margin    = 16
	fadeStart = 0.85
)

// QR renders the prompt into a QR code image. The code is
// deterministic per text, so stamped videos stay reproducible.
func QR(text string, size int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(size), nil
}

// Stamp composites the code onto a frame. Before the final stage
// (progress < 0.85) it draws nothing; across the stage the opacity
// ramps from 0 to 1.
func Stamp(dst *image.RGBA, qr image.Image, progress float64) {
	if qr == nil || progress < fadeStart {
		return
	}
	alpha := (progress - fadeStart) / (1 - fadeStart)
	if alpha > 1 {
		alpha = 1
	}

	b := dst.Bounds()
	target := image.Rect(
		b.Max.X-margin-StampSize, b.Max.Y-margin-StampSize,
		b.Max.X-margin, b.Max.Y-margin,
	).Intersect(b)
	if target.Empty() {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, target.Dx(), target.Dy()))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), qr, qr.Bounds(), xdraw.Src, nil)

	mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	stddraw.DrawMask(dst, target, scaled, image.Point{}, mask, image.Point{}, stddraw.Over)
}
