package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Фиксированная геометрия воспроизводимого контракта: изменение любой
// из этих констант меняет точный пиксельный след для данного промпта.
const (
	DefaultWidth      = 896
	DefaultHeight     = 504
	DefaultFPS        = 30
	DefaultDurationMs = 5200
)

type Config struct {
	Prompt       string  `yaml:"prompt"`
	OutputVideo  string  `yaml:"output"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FPS          int     `yaml:"fps"`
	DurationMs   int     `yaml:"durationMs"`
	NoiseVariant string  `yaml:"noise"`
	VideoEncoder string  `yaml:"encoder"`
	Quality      int     `yaml:"quality"`
	AudioPath    string  `yaml:"audio"`
	Preset       string  `yaml:"preset"`
	StampQR      bool    `yaml:"qr"`
	ShowStats    bool    `yaml:"stats"`
	BuildVersion string  `yaml:"-"`
}

// Default возвращает конфигурацию с контрактными значениями по
// умолчанию.
func Default() *Config {
	return &Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		FPS:          DefaultFPS,
		DurationMs:   DefaultDurationMs,
		NoiseVariant: "simplex",
		Quality:      0,
	}
}

// Load читает конфигурацию из YAML-файла поверх значений по умолчанию.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}
	return cfg, nil
}

// Save сохраняет конфигурацию в YAML-файл.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyPreset переключает геометрию на один из именованных форматов.
func (c *Config) ApplyPreset(name string) error {
	switch name {
	case "":
	case "16:9":
		c.Width, c.Height = 896, 504
	case "9:16":
		c.Width, c.Height = 504, 896
	case "4:5":
		c.Width, c.Height = 720, 900
	default:
		return fmt.Errorf("неизвестный пресет формата: %s", name)
	}
	c.Preset = name
	return nil
}

// TotalFrames возвращает количество логических кадров прогона.
func (c *Config) TotalFrames() int {
	return c.DurationMs * c.FPS / 1000
}

// Validate проверяет, что геометрия пригодна для генерации.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("некорректное разрешение: %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("некорректный FPS: %d", c.FPS)
	}
	if c.DurationMs <= 0 {
		return fmt.Errorf("некорректная длительность: %dms", c.DurationMs)
	}
	return nil
}
