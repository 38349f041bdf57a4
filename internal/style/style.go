package style

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Motion selects the geometric layout of the particle field and the
// emphasis of the wave bands.
type Motion string

const (
	MotionWave     Motion = "wave"
	MotionParticle Motion = "particle"
	MotionBurst    Motion = "burst"
	MotionNebula   Motion = "nebula"
)

// Mood tweaks the final grade. MoodIntense switches the grain pass
// from "overlay" to "difference" compositing.
type Mood string

const (
	MoodCalm    Mood = "calm"
	MoodDynamic Mood = "dynamic"
	MoodDreamy  Mood = "dreamy"
	MoodIntense Mood = "intense"
)

// Descriptor is the immutable visual recipe derived from a prompt. It
// is produced once per generation run and never mutated afterwards, so
// every frame of one video is drawn from identical parameters. Palette
// entries are positional: they feed the gradient stops and tint waves
// and particles by index.
type Descriptor struct {
	Palette       [4]string `yaml:"palette,flow"`
	Motion        Motion    `yaml:"motion"`
	ParticleCount int       `yaml:"particleCount"`
	WaveHeight    float64   `yaml:"waveHeight"`
	WarpFactor    float64   `yaml:"warpFactor"`
	Sparkle       bool      `yaml:"sparkle"`
	Grain         float64   `yaml:"grain"`
	Speed         float64   `yaml:"speed"`
	Mood          Mood      `yaml:"mood"`
}

// Defaults returns the base descriptor that keyword overrides and hash
// jitter are applied on top of.
func Defaults() Descriptor {
	return Descriptor{
		Motion:        MotionWave,
		ParticleCount: 150,
		WaveHeight:    0.7,
		WarpFactor:    1.0,
		Sparkle:       false,
		Grain:         0.35,
		Speed:         1.0,
		Mood:          MoodDreamy,
	}
}

// PaletteRGBA decodes the four hex entries for the raster pipeline.
// Entries are well-formed by construction from Extract; anything that
// still fails to parse falls back to a dark slate instead of aborting
// a frame.
func (d Descriptor) PaletteRGBA() [4]color.RGBA {
	var out [4]color.RGBA
	for i, hex := range d.Palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			out[i] = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
			continue
		}
		r, g, b := c.RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out
}

// Validate reports the first contract violation in a descriptor. It
// guards hand-edited descriptor files; Extract output always passes.
func (d Descriptor) Validate() error {
	switch d.Motion {
	case MotionWave, MotionParticle, MotionBurst, MotionNebula:
	default:
		return fmt.Errorf("unknown motion style: %q", d.Motion)
	}
	switch d.Mood {
	case MoodCalm, MoodDynamic, MoodDreamy, MoodIntense:
	default:
		return fmt.Errorf("unknown mood: %q", d.Mood)
	}
	if d.ParticleCount < 0 {
		return fmt.Errorf("negative particleCount: %d", d.ParticleCount)
	}
	if d.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", d.Speed)
	}
	if d.WaveHeight < 0 {
		return fmt.Errorf("negative waveHeight: %v", d.WaveHeight)
	}
	if d.WarpFactor < 0 {
		return fmt.Errorf("negative warpFactor: %v", d.WarpFactor)
	}
	if d.Grain < 0 || d.Grain > 1 {
		return fmt.Errorf("grain out of [0,1]: %v", d.Grain)
	}
	for i, hex := range d.Palette {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("palette[%d]: %v", i, err)
		}
	}
	return nil
}
