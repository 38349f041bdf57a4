package style

// Patch is a partial-field override attached to a table keyword. Only
// non-nil fields are copied, in the fixed order they are declared
// here, so stacked keyword matches stay last-write-wins per field.
// The field set is closed: a patch can never touch anything outside
// this list.
type Patch struct {
	Motion        *Motion
	ParticleCount *int
	WaveHeight    *float64
	WarpFactor    *float64
	Sparkle       *bool
	Grain         *float64
	Speed         *float64
	Mood          *Mood
}

// Apply copies the set fields of p onto d.
func (p Patch) Apply(d *Descriptor) {
	if p.Motion != nil {
		d.Motion = *p.Motion
	}
	if p.ParticleCount != nil {
		d.ParticleCount = *p.ParticleCount
	}
	if p.WaveHeight != nil {
		d.WaveHeight = *p.WaveHeight
	}
	if p.WarpFactor != nil {
		d.WarpFactor = *p.WarpFactor
	}
	if p.Sparkle != nil {
		d.Sparkle = *p.Sparkle
	}
	if p.Grain != nil {
		d.Grain = *p.Grain
	}
	if p.Speed != nil {
		d.Speed = *p.Speed
	}
	if p.Mood != nil {
		d.Mood = *p.Mood
	}
}

func ptr[T any](v T) *T { return &v }
