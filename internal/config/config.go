package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
	"gopkg.in/yaml.v3"
)

// DrawingConfig describes how drawings are rasterized.
type DrawingConfig struct {
	DPI float64 `yaml:"dpi" toml:"dpi"` // must equal units.DrawingDPI when set
}

// ViewConfig holds viewport defaults.
type ViewConfig struct {
	MaxZoom        float64 `yaml:"max_zoom" toml:"max_zoom"`
	ViewportWidth  int     `yaml:"viewport_width" toml:"viewport_width"`
	ViewportHeight int     `yaml:"viewport_height" toml:"viewport_height"`
}

// InputConfig holds the pick radii (drawing pixels) and drag margin.
type InputConfig struct {
	PickRadiusMouse  float64 `yaml:"pick_radius_mouse" toml:"pick_radius_mouse"`   // floor marker and line endpoints
	PickRadiusTouch  float64 `yaml:"pick_radius_touch" toml:"pick_radius_touch"`   // same handles with a finger
	HandlePickRadius float64 `yaml:"handle_pick_radius" toml:"handle_pick_radius"` // projector and screen bubbles
	DragMargin       float64 `yaml:"drag_margin" toml:"drag_margin"`               // handles stay this far inside the drawing
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Unit  string `yaml:"unit" toml:"unit"`   // feet, inches, meters, cm
	Scale string `yaml:"scale" toml:"scale"` // scale notation, e.g. 1/8" = 1'-0"
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// StoreConfig configures project persistence.
type StoreConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// Config aggregates all application configuration.
type Config struct {
	Drawing    DrawingConfig      `yaml:"drawing" toml:"drawing"`
	View       ViewConfig         `yaml:"view" toml:"view"`
	Input      InputConfig        `yaml:"input" toml:"input"`
	Defaults   projector.Defaults `yaml:"defaults" toml:"defaults"`
	Display    DisplayConfig      `yaml:"display" toml:"display"`
	Server     ServerConfig       `yaml:"server" toml:"server"`
	Store      StoreConfig        `yaml:"store" toml:"store"`
	DebugLevel int                `yaml:"debug_level" toml:"debug_level"` // 0-4
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.applyDefaults(); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes configuration data. ext selects the format.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal toml: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Drawing.DPI == 0 {
		c.Drawing.DPI = units.DrawingDPI
	}
	if c.Drawing.DPI != units.DrawingDPI {
		return fmt.Errorf("drawing.dpi must be %v (rasterization and measurement share it), got %v", units.DrawingDPI, c.Drawing.DPI)
	}

	if c.View.MaxZoom == 0 {
		c.View.MaxZoom = 4.0
	}
	if c.View.MaxZoom < 0 {
		return fmt.Errorf("view.max_zoom must be > 0, got %.2f", c.View.MaxZoom)
	}
	if c.View.ViewportWidth <= 0 {
		c.View.ViewportWidth = 1280
	}
	if c.View.ViewportHeight <= 0 {
		c.View.ViewportHeight = 800
	}

	if c.Input.PickRadiusMouse <= 0 {
		c.Input.PickRadiusMouse = 25
	}
	if c.Input.PickRadiusTouch <= 0 {
		c.Input.PickRadiusTouch = 35
	}
	if c.Input.HandlePickRadius <= 0 {
		c.Input.HandlePickRadius = 70
	}
	if c.Input.DragMargin < 0 {
		return fmt.Errorf("input.drag_margin must be >= 0, got %.2f", c.Input.DragMargin)
	}
	if c.Input.DragMargin == 0 {
		c.Input.DragMargin = 30
	}

	builtin := projector.DefaultDefaults()
	if c.Defaults.ThrowRatio <= 0 {
		c.Defaults.ThrowRatio = builtin.ThrowRatio
	}
	if c.Defaults.Lens == "" {
		c.Defaults.Lens = builtin.Lens
	}
	if c.Defaults.Lens != projector.LensFixed && c.Defaults.Lens != projector.LensZoom {
		return fmt.Errorf("defaults.lens_type must be fixed or zoom, got %q", c.Defaults.Lens)
	}
	if c.Defaults.ThrowRatioMin <= 0 {
		c.Defaults.ThrowRatioMin = c.Defaults.ThrowRatio
	}
	if c.Defaults.ThrowRatioMax <= 0 {
		c.Defaults.ThrowRatioMax = c.Defaults.ThrowRatio
	}
	if c.Defaults.Lumens <= 0 {
		c.Defaults.Lumens = builtin.Lumens
	}
	if c.Defaults.Aspect == "" {
		c.Defaults.Aspect = builtin.Aspect
	}
	if !c.Defaults.Aspect.Valid() {
		return fmt.Errorf("defaults.aspect must be one of %v, got %q", projector.Aspects, c.Defaults.Aspect)
	}

	if c.Display.Unit == "" {
		c.Display.Unit = string(units.Feet)
	}
	if _, err := units.ParseUnit(c.Display.Unit); err != nil {
		return fmt.Errorf("display.unit: %w", err)
	}
	if c.Display.Scale == "" {
		c.Display.Scale = units.DefaultPreset
	}
	if _, err := units.ParseScale(c.Display.Scale); err != nil {
		return fmt.Errorf("display.scale: %w", err)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Store.Path == "" {
		c.Store.Path = "throwplan.db"
	}
	if c.DebugLevel < 0 || c.DebugLevel > 4 {
		return fmt.Errorf("debug_level must be between 0 and 4, got %d", c.DebugLevel)
	}
	return nil
}

// DisplayUnit returns the configured display unit.
func (c *Config) DisplayUnit() units.Unit {
	u, _ := units.ParseUnit(c.Display.Unit)
	return u
}

// Scale returns the configured drawing scale.
func (c *Config) Scale() units.DrawingScale {
	s, err := units.ParseScale(c.Display.Scale)
	if err != nil {
		return units.PresetScale(units.DefaultPreset)
	}
	return s
}
