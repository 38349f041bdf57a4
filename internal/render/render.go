package render

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"golang.org/x/image/vector"

	"github.com/ivlev/prompt2video/internal/noise"
	"github.com/ivlev/prompt2video/internal/style"
)

// Stage composition order and counts. Changing any of these changes
// the exact pixel trace for a given prompt.
const (
	waveBands    = 5
	grainSpecks  = 60
	sparkleEvery = 16
)

// Gradient stop positions for the four palette entries.
var gradientStops = [4]float64{0, 0.4, 0.75, 1.0}

// Render draws exactly one frame onto dst, fully overwriting any
// prior contents. It is a pure function of its explicit inputs with
// one labeled exception: grain supplies the film-grain flicker, the
// single cosmetic non-deterministic element. A nil grain skips that
// pass entirely, which is the hook the purity tests use. The renderer
// keeps no state between calls; the caller owns elapsed time and
// progress.
func Render(dst *image.RGBA, field noise.Field, d style.Descriptor, elapsedMs, progress float64, grain *rand.Rand) {
	pal := d.PaletteRGBA()
	t := elapsedMs * 0.001 * d.Speed

	drawGradient(dst, pal)
	drawWaves(dst, field, d, pal, t)
	drawParticles(dst, field, d, pal, t)
	if grain != nil {
		drawGrain(dst, d, grain)
	}
}

// drawGradient fills the surface with a vertical linear gradient
// through the four palette colors at stops 0, 0.4, 0.75, 1.0.
func drawGradient(dst *image.RGBA, pal [4]color.RGBA) {
	b := dst.Rect
	h := b.Dy()
	for y := 0; y < h; y++ {
		v := 0.0
		if h > 1 {
			v = float64(y) / float64(h-1)
		}
		c := gradientAt(pal, v)
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		row := dst.Pix[off : off+b.Dx()*4]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4 : x*4+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
		}
	}
}

func gradientAt(pal [4]color.RGBA, v float64) color.RGBA {
	if v <= gradientStops[0] {
		return pal[0]
	}
	for i := 0; i < len(gradientStops)-1; i++ {
		lo, hi := gradientStops[i], gradientStops[i+1]
		if v <= hi {
			t := (v - lo) / (hi - lo)
			return lerpRGBA(pal[i], pal[i+1], t)
		}
	}
	return pal[3]
}

// drawWaves composites five horizontal noise-displaced bands in
// screen mode. Band L rides a shared horizon at 0.65 of the height,
// displaced by the noise field and a warped sine, and is filled as a
// closed polygon down to the bottom edge.
func drawWaves(dst *image.RGBA, field noise.Field, d style.Descriptor, pal [4]color.RGBA, t float64) {
	b := dst.Rect
	w, h := float64(b.Dx()), float64(b.Dy())
	horizon := 0.65 * h

	for l := 0; l < waveBands; l++ {
		fl := float64(l)
		amplitude := d.WaveHeight*50*(1-fl/waveBands) + fl*6
		src := pal[l%4]

		rasterShape(dst, b, src, BlendScreen, 0.4, func(r *vector.Rasterizer) {
			const step = 4.0
			first := true
			for x := 0.0; ; x += step {
				if x > w {
					x = w
				}
				nx := x / w
				y := horizon +
					field.Eval3(nx*1.6+fl*0.2, t*0.8+fl*0.5, fl*0.3)*amplitude +
					math.Sin(nx*2*math.Pi+t*d.WarpFactor)*amplitude*0.4
				if first {
					r.MoveTo(float32(x), float32(y))
					first = false
				} else {
					r.LineTo(float32(x), float32(y))
				}
				if x >= w {
					break
				}
			}
			r.LineTo(float32(w), float32(h))
			r.LineTo(0, float32(h))
			r.ClosePath()
		})
	}
}

// drawParticles composites the particle field in lighter (additive)
// mode. Every quantity is derived from the particle index, the noise
// field and the current time, so the layout replays identically for
// the same descriptor and field.
func drawParticles(dst *image.RGBA, field noise.Field, d style.Descriptor, pal [4]color.RGBA, t float64) {
	if d.ParticleCount <= 0 {
		return
	}
	b := dst.Rect
	w, h := float64(b.Dx()), float64(b.Dy())

	// Burst sweeps three revolutions where other styles sweep one;
	// the orbit anchor rides at a style-dependent height.
	revolutions := 1.0
	if d.Motion == style.MotionBurst {
		revolutions = 3.0
	}
	anchorY := 0.6 * h
	switch d.Motion {
	case style.MotionWave:
		anchorY = 0.55 * h
	case style.MotionNebula:
		anchorY = 0.5 * h
	}
	anchorX := 0.5 * w

	count := float64(d.ParticleCount)
	for i := 0; i < d.ParticleCount; i++ {
		fi := float64(i)
		n1 := field.Eval3(fi*0.37, t*0.6, 11.3)
		n2 := field.Eval3(fi*0.53+31.0, t*0.45, 23.7)
		n3 := field.Eval3(fi*0.71+67.0, t*0.5, 41.9)

		angle := fi/count*2*math.Pi*revolutions + t*0.6*revolutions + n1*1.2
		radius := (0.15 + 0.35*(0.5+0.5*n2)) * h
		x := anchorX + math.Cos(angle)*radius
		y := anchorY + math.Sin(angle)*radius*0.85
		size := 1.5 + (0.5+0.5*n3)*3.5

		src := pal[i%4]
		fillCircle(dst, x, y, size, src, BlendLighter, 0.85)

		if d.Sparkle && i%sparkleEvery == 0 {
			drawCross(dst, x, y, size*2.5, src, BlendLighter, 0.6)
		}
	}
}

// drawGrain scatters dark two-pixel specks from the injected random
// source. Mood intense flips the pass from overlay to difference.
func drawGrain(dst *image.RGBA, d style.Descriptor, grain *rand.Rand) {
	b := dst.Rect
	mode := BlendOverlay
	if d.Mood == style.MoodIntense {
		mode = BlendDifference
	}
	opacity := 0.09 + d.Grain*0.06
	speck := color.RGBA{R: 10, G: 10, B: 14, A: 255}

	for i := 0; i < grainSpecks; i++ {
		x := b.Min.X + grain.Intn(b.Dx())
		y := b.Min.Y + grain.Intn(b.Dy())
		a := 0.3 + grain.Float64()*0.3
		blendPixel(dst, x, y, speck, mode, opacity*a)
		blendPixel(dst, x+1, y, speck, mode, opacity*a)
		blendPixel(dst, x, y+1, speck, mode, opacity*a)
		blendPixel(dst, x+1, y+1, speck, mode, opacity*a)
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: mix(a.R, b.R, t),
		G: mix(a.G, b.G, t),
		B: mix(a.B, b.B, t),
		A: 255,
	}
}
