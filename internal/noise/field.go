package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/ivlev/prompt2video/internal/prng"
)

// Field is a coherent 3D noise function: smooth in all three inputs,
// output roughly in [-1, 1]. One Field instance is created per
// generation run and is read-only afterwards, so the renderer may
// sample it from any frame without coordination.
type Field interface {
	Eval3(x, y, z float64) float64
}

// seedSalt decorrelates the noise seed stream from the palette and
// jitter streams drawn from the same prompt hash.
const seedSalt = 0x85EBCA6B

// Seed derives the backend seed for a prompt hash. Same hash, same
// field, on every platform.
func Seed(hash uint32) int64 {
	return int64(prng.New(hash ^ seedSalt).Uint32())
}

type simplexField struct {
	n opensimplex.Noise
}

func (f simplexField) Eval3(x, y, z float64) float64 {
	return f.n.Eval3(x, y, z)
}

type perlinField struct {
	p *perlin.Perlin
}

func (f perlinField) Eval3(x, y, z float64) float64 {
	return f.p.Noise3D(x, y, z)
}

// New creates a noise field for the given variant. "simplex" is the
// default and what the renderer contract was tuned against; "perlin"
// is a drop-in alternative with a slightly softer range.
func New(variant string, seed int64) (Field, error) {
	switch variant {
	case "simplex", "":
		return simplexField{n: opensimplex.New(seed)}, nil
	case "perlin":
		return perlinField{p: perlin.NewPerlin(2, 2, 3, seed)}, nil
	default:
		return nil, fmt.Errorf("unknown noise variant: %s", variant)
	}
}

// Variants lists the selectable backends.
func Variants() []string {
	return []string{"simplex", "perlin"}
}
