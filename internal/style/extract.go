package style

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/prompt2video/internal/prng"
)

// DefaultToken replaces an empty prompt so extraction always has at
// least one word to chew on.
const DefaultToken = "dream"

// paletteSalt decorrelates the procedural palette stream from other
// hash-derived values (golden ratio constant).
const paletteSalt = 0x9E3779B1

// Particle count clamp bounds, applied after the hash jitter.
const (
	particleMin = 80
	particleMax = 260
)

// Normalize is the canonical prompt preparation: trim, lowercase,
// substitute the default token for an empty string. Everything that
// hashes a prompt must go through it so the style and noise streams
// agree on the seed.
func Normalize(prompt string) string {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	if normalized == "" {
		return DefaultToken
	}
	return normalized
}

// Extract maps a prompt to a fully populated Descriptor. The mapping
// is deterministic: equal prompts produce bit-identical descriptors,
// on any platform. Keyword styling picks the coarse look; hash jitter
// keeps each exact prompt text visually distinct.
func Extract(prompt string) Descriptor {
	normalized := Normalize(prompt)
	hash := prng.Hash(normalized)

	var matched []Entry
	for _, e := range table {
		if strings.Contains(normalized, e.Keyword) {
			matched = append(matched, e)
		}
	}

	d := Defaults()

	// Palette: first match in table order wins; otherwise procedural.
	if len(matched) > 0 {
		d.Palette = matched[0].Palette
	} else {
		d.Palette = proceduralPalette(hash ^ paletteSalt)
	}

	// Overrides: every match in table order, last write wins per field.
	for _, e := range matched {
		e.Patch.Apply(&d)
	}

	// Jitter from the hash bytes keeps same-keyword prompts apart.
	low := float64(hash & 0xFF)
	second := float64((hash >> 8) & 0xFF)
	d.ParticleCount += int(math.Floor(low/255*60)) - 30
	if d.ParticleCount < particleMin {
		d.ParticleCount = particleMin
	}
	if d.ParticleCount > particleMax {
		d.ParticleCount = particleMax
	}
	d.Speed *= 0.8 + second/255

	return d
}

// proceduralPalette draws four HSL colors from a dedicated stream so
// prompts without a table keyword still get a stable palette of their
// own.
func proceduralPalette(seed uint32) [4]string {
	src := prng.New(seed)
	var pal [4]string
	for i := range pal {
		h := src.Float64() * 360
		s := 40 + src.Float64()*45
		l := 35 + src.Float64()*35
		pal[i] = colorful.Hsl(h, s/100, l/100).Hex()
	}
	return pal
}
