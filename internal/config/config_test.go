package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultContract(t *testing.T) {
	cfg := Default()
	if cfg.Width != 896 || cfg.Height != 504 {
		t.Errorf("Expected 896x504, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 {
		t.Errorf("Expected 30 FPS, got %d", cfg.FPS)
	}
	if cfg.DurationMs != 5200 {
		t.Errorf("Expected 5200ms, got %d", cfg.DurationMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestTotalFrames(t *testing.T) {
	cfg := Default()
	if got := cfg.TotalFrames(); got != 156 {
		t.Errorf("Expected 156 frames at contract defaults, got %d", got)
	}

	cfg.FPS = 24
	cfg.DurationMs = 1000
	if got := cfg.TotalFrames(); got != 24 {
		t.Errorf("Expected 24 frames, got %d", got)
	}
}

func TestApplyPreset(t *testing.T) {
	cases := []struct {
		preset string
		w, h   int
	}{
		{"16:9", 896, 504},
		{"9:16", 504, 896},
		{"4:5", 720, 900},
	}
	for _, c := range cases {
		cfg := Default()
		if err := cfg.ApplyPreset(c.preset); err != nil {
			t.Errorf("ApplyPreset(%q): %v", c.preset, err)
			continue
		}
		if cfg.Width != c.w || cfg.Height != c.h {
			t.Errorf("ApplyPreset(%q): expected %dx%d, got %dx%d", c.preset, c.w, c.h, cfg.Width, cfg.Height)
		}
	}

	cfg := Default()
	if err := cfg.ApplyPreset("21:9"); err == nil {
		t.Error("Expected error for unknown preset")
	}
	if err := cfg.ApplyPreset(""); err != nil {
		t.Errorf("Expected empty preset to be a no-op, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Prompt = "ocean at dusk"
	cfg.NoiseVariant = "perlin"
	cfg.Quality = 23
	cfg.StampQR = true

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Prompt != cfg.Prompt || loaded.NoiseVariant != cfg.NoiseVariant ||
		loaded.Quality != cfg.Quality || loaded.StampQR != cfg.StampQR {
		t.Errorf("Round trip mismatch:\nsaved:  %+v\nloaded: %+v", cfg, loaded)
	}
	if loaded.Width != cfg.Width || loaded.FPS != cfg.FPS {
		t.Errorf("Expected geometry to survive round trip, got %+v", loaded)
	}
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Width = 0 },
		func(c *Config) { c.Height = -1 },
		func(c *Config) { c.FPS = 0 },
		func(c *Config) { c.DurationMs = 0 },
	}
	for i, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("Case %d: expected validation error for %+v", i, cfg)
		}
	}
}
