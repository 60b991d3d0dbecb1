// Package config loads the survey settings file.
//
// The file is optional YAML; every key falls back to the built-in default:
//
//	projectName: Hauptstraße
//	defaultActive: true
//	units: g/cm3,cm
//	surface: {width: 800, height: 400, margin: 50}
//	drag: {sensitivity: 0.02, minWidth: 0.1, axisMode: dynamic}
//	duplicateOffset: 5
//	mapRange: 60
//	seedSampleData: false
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-road/internal/survey"
)

// DefaultProjectName is used when neither the file nor a snapshot names the project.
const DefaultProjectName = "Neues Projekt"

// Drag configures the profile editor.
type Drag struct {
	Sensitivity float64         `yaml:"sensitivity"`
	MinWidth    float64         `yaml:"minWidth"`
	AxisMode    survey.AxisMode `yaml:"axisMode"`
}

// Config is the parsed settings file.
type Config struct {
	ProjectName     string         `yaml:"projectName"`
	DefaultActive   *bool          `yaml:"defaultActive"`
	Units           string         `yaml:"units"`
	Surface         survey.Surface `yaml:"surface"`
	Drag            Drag           `yaml:"drag"`
	DuplicateOffset float64        `yaml:"duplicateOffset"`
	MapRange        float64        `yaml:"mapRange"`
	SeedSampleData  bool           `yaml:"seedSampleData"`
}

// Default returns the built-in settings.
func Default() Config {
	active := true
	s := survey.DefaultSettings()
	return Config{
		ProjectName:     DefaultProjectName,
		DefaultActive:   &active,
		Units:           string(s.Units),
		Surface:         s.Surface,
		Drag:            Drag{Sensitivity: s.DragSensitivity, MinWidth: s.MinWidth, AxisMode: s.AxisMode},
		DuplicateOffset: s.DuplicateOffset,
		MapRange:        s.MapRange,
	}
}

// Load reads path. An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DefaultActive == nil {
		active := true
		cfg.DefaultActive = &active
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the editor cannot work with.
func (c Config) Validate() error {
	if _, err := survey.ParseUnits(c.Units); err != nil {
		return fmt.Errorf("units: %w", err)
	}
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("surface: width and height must be positive")
	}
	if c.Surface.Margin < 0 || c.Surface.Drawable() <= 0 {
		return fmt.Errorf("surface: margin %v leaves no drawable width", c.Surface.Margin)
	}
	if c.Drag.Sensitivity <= 0 {
		return fmt.Errorf("drag.sensitivity must be positive")
	}
	if c.Drag.MinWidth <= 0 {
		return fmt.Errorf("drag.minWidth must be positive")
	}
	switch c.Drag.AxisMode {
	case survey.AxisDynamic, survey.AxisLocked:
	default:
		return fmt.Errorf("drag.axisMode %q: want %q or %q", c.Drag.AxisMode, survey.AxisDynamic, survey.AxisLocked)
	}
	if c.DuplicateOffset <= 0 {
		return fmt.Errorf("duplicateOffset must be positive")
	}
	if c.MapRange <= 0 {
		return fmt.Errorf("mapRange must be positive")
	}
	return nil
}

// Settings converts the file into project settings.
func (c Config) Settings() survey.Settings {
	units, err := survey.ParseUnits(c.Units)
	if err != nil {
		units = survey.UnitsGramCentimeter
	}
	active := true
	if c.DefaultActive != nil {
		active = *c.DefaultActive
	}
	return survey.Settings{
		DefaultActive:   active,
		Units:           units,
		Surface:         c.Surface,
		DragSensitivity: c.Drag.Sensitivity,
		MinWidth:        c.Drag.MinWidth,
		AxisMode:        c.Drag.AxisMode,
		DuplicateOffset: c.DuplicateOffset,
		MapRange:        c.MapRange,
	}
}
