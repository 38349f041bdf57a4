package style

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var promptCorpus = []string{
	"a calm ocean and a neon city",
	"An aurora lights up a futuristic city skyline reflected on water",
	"fire dancing in the dark",
	"liquid chrome dunes at midnight",
	"snow drifting over a sleeping harbor",
	"galaxy spiral seen from a glass bridge",
	"storm over the old lighthouse",
	"whispering machines",
	"",
	"   ",
	"OCEAN SUNSET FOREST NEON AURORA",
	"x",
}

func TestExtractDeterminism(t *testing.T) {
	for _, p := range promptCorpus {
		a := Extract(p)
		b := Extract(p)
		if a != b {
			t.Errorf("Extract(%q) not reproducible:\n%+v\n%+v", p, a, b)
		}
	}
}

func TestExtractClamps(t *testing.T) {
	for _, p := range promptCorpus {
		d := Extract(p)
		if d.ParticleCount < 80 || d.ParticleCount > 260 {
			t.Errorf("Extract(%q): particleCount %d out of [80,260]", p, d.ParticleCount)
		}
		if d.Speed <= 0 {
			t.Errorf("Extract(%q): non-positive speed %v", p, d.Speed)
		}
		// Palette size is fixed by the array type; entries must still
		// be well-formed hex colors.
		for i, hex := range d.Palette {
			if len(hex) != 7 || !strings.HasPrefix(hex, "#") {
				t.Errorf("Extract(%q): palette[%d] malformed: %q", p, i, hex)
			}
		}
		if err := d.Validate(); err != nil {
			t.Errorf("Extract(%q): invalid descriptor: %v", p, err)
		}
	}
}

func TestExtractNormalizesCase(t *testing.T) {
	if Extract("OCEAN WAVES AT DUSK") != Extract("ocean waves at dusk") {
		t.Error("Expected case-insensitive extraction")
	}
	if Extract("  ocean  ") != Extract("ocean") {
		t.Error("Expected surrounding whitespace to be trimmed")
	}
}

func TestEmptyPromptUsesDefaultToken(t *testing.T) {
	token := Extract(DefaultToken)
	if got := Extract(""); got != token {
		t.Errorf("Extract(\"\"): expected the %q descriptor, got %+v", DefaultToken, got)
	}
	if got := Extract(" \t \n"); got != token {
		t.Errorf("Extract(blank): expected the %q descriptor, got %+v", DefaultToken, got)
	}
}

func TestKeywordPrecedence(t *testing.T) {
	d := Extract("a calm ocean and a neon city")

	ocean, ok := Lookup("ocean")
	if !ok {
		t.Fatal("ocean entry missing from table")
	}
	if d.Palette != ocean.Palette {
		t.Errorf("Expected first-match palette %v, got %v", ocean.Palette, d.Palette)
	}

	// Overrides stack across every match: neon sits later in the
	// table, so its fields win over ocean's where both patch them.
	if d.Motion != MotionBurst {
		t.Errorf("Expected motion %q from the neon override, got %q", MotionBurst, d.Motion)
	}
	if d.Mood != MoodIntense {
		t.Errorf("Expected mood %q from the neon override, got %q", MoodIntense, d.Mood)
	}
	if !d.Sparkle {
		t.Error("Expected sparkle from the neon override")
	}
	// Fields neon leaves alone keep the earlier ocean override.
	if d.WaveHeight != 0.85 {
		t.Errorf("Expected waveHeight 0.85 from the ocean override, got %v", d.WaveHeight)
	}
}

func TestAuroraScenario(t *testing.T) {
	d := Extract("An aurora lights up a futuristic city skyline reflected on water")

	wantPalette := [4]string{"#7c3aed", "#22d3ee", "#22c55e", "#0f172a"}
	if d.Palette != wantPalette {
		t.Errorf("Expected palette %v, got %v", wantPalette, d.Palette)
	}
	if d.Motion != MotionNebula {
		t.Errorf("Expected motion nebula, got %q", d.Motion)
	}
	if d.Mood != MoodDreamy {
		t.Errorf("Expected mood dreamy, got %q", d.Mood)
	}
	if d.WarpFactor != 1.1 {
		t.Errorf("Expected warpFactor 1.1, got %v", d.WarpFactor)
	}
	// Hash jitter still applies on top of the table entry.
	if d.ParticleCount < 80 || d.ParticleCount > 260 {
		t.Errorf("particleCount %d out of [80,260]", d.ParticleCount)
	}
	if d.Speed < 0.8 || d.Speed >= 1.8 {
		t.Errorf("speed %v outside the jitter envelope [0.8,1.8)", d.Speed)
	}
}

func TestProceduralPaletteStable(t *testing.T) {
	a := proceduralPalette(0xDEADBEEF)
	b := proceduralPalette(0xDEADBEEF)
	if a != b {
		t.Errorf("Expected stable palette for one seed, got %v vs %v", a, b)
	}
	c := proceduralPalette(0xDEADBEF0)
	if a == c {
		t.Error("Expected different seeds to give different palettes")
	}
	for i, hex := range a {
		if len(hex) != 7 || hex[0] != '#' {
			t.Errorf("palette[%d] malformed: %q", i, hex)
		}
	}
}

func TestPatchAppliesOnlySetFields(t *testing.T) {
	d := Defaults()
	p := Patch{Motion: ptr(MotionBurst), Speed: ptr(1.5)}
	p.Apply(&d)

	if d.Motion != MotionBurst {
		t.Errorf("Expected motion burst, got %q", d.Motion)
	}
	if d.Speed != 1.5 {
		t.Errorf("Expected speed 1.5, got %v", d.Speed)
	}
	if d.ParticleCount != 150 || d.Grain != 0.35 || d.Mood != MoodDreamy {
		t.Errorf("Patch touched unset fields: %+v", d)
	}
}

func TestTableIntrospection(t *testing.T) {
	kws := Keywords()
	if len(kws) != 11 {
		t.Fatalf("Expected 11 table entries, got %d", len(kws))
	}
	for _, kw := range kws {
		e, ok := Lookup(kw)
		if !ok {
			t.Errorf("Lookup(%q) missed a listed keyword", kw)
		}
		if e.Keyword != kw {
			t.Errorf("Lookup(%q) returned entry for %q", kw, e.Keyword)
		}
	}
	if _, ok := Lookup("volcano"); ok {
		t.Error("Expected Lookup to miss unknown keywords")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	d := Extract("a neon galaxy storm")

	// Write
	tmpFile := filepath.Join(t.TempDir(), "style.yaml")
	if err := Write(&d, tmpFile); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Read
	loaded, err := Read(tmpFile)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if loaded.Palette != d.Palette {
		t.Errorf("Palette mismatch: expected %v, got %v", d.Palette, loaded.Palette)
	}
	if loaded.Motion != d.Motion {
		t.Errorf("Motion mismatch: expected %q, got %q", d.Motion, loaded.Motion)
	}
	if loaded.Mood != d.Mood {
		t.Errorf("Mood mismatch: expected %q, got %q", d.Mood, loaded.Mood)
	}
	if *loaded != d {
		t.Errorf("Round trip mismatch:\nwrote: %+v\nread:  %+v", d, *loaded)
	}
}

func TestReadRejectsInvalidDescriptor(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		yaml string
	}{
		{
			"unknown motion",
			"palette: [\"#0ea5e9\", \"#0369a1\", \"#22d3ee\", \"#0c4a6e\"]\nmotion: vortex\nparticleCount: 150\nwaveHeight: 0.7\nwarpFactor: 1.0\ngrain: 0.35\nspeed: 1.0\nmood: calm\n",
		},
		{
			"zero speed",
			"palette: [\"#0ea5e9\", \"#0369a1\", \"#22d3ee\", \"#0c4a6e\"]\nmotion: wave\nparticleCount: 150\nwaveHeight: 0.7\nwarpFactor: 1.0\ngrain: 0.35\nspeed: 0\nmood: calm\n",
		},
	}
	for _, c := range cases {
		path := filepath.Join(dir, strings.ReplaceAll(c.name, " ", "_")+".yaml")
		if err := os.WriteFile(path, []byte(c.yaml), 0644); err != nil {
			t.Fatalf("%s: setup: %v", c.name, err)
		}
		if _, err := Read(path); err == nil {
			t.Errorf("%s: expected a validation error from Read", c.name)
		}
	}

	if _, err := Read(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected an error reading a missing file")
	}
}

func TestPaletteRGBA(t *testing.T) {
	d := Defaults()
	d.Palette = [4]string{"#ff0000", "#00ff00", "#0000ff", "#0f172a"}
	rgba := d.PaletteRGBA()
	if rgba[0].R != 255 || rgba[0].G != 0 || rgba[0].B != 0 || rgba[0].A != 255 {
		t.Errorf("Expected opaque red, got %+v", rgba[0])
	}
	if rgba[2].B != 255 {
		t.Errorf("Expected blue channel 255, got %+v", rgba[2])
	}

	d.Palette[1] = "not-a-color"
	fallback := d.PaletteRGBA()[1]
	if fallback.A != 255 {
		t.Errorf("Expected an opaque fallback for a malformed entry, got %+v", fallback)
	}
}
