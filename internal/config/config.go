// Package config loads airdeck settings from defaults, a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/ayusman/airdeck/internal/gesture"
	"github.com/ayusman/airdeck/internal/presentation"
)

// Config holds every setting of a presenter run.
type Config struct {
	SlidesDir string `toml:"slides_dir" env:"SLIDES_DIR"`
	DataDir   string `toml:"data_dir" env:"DATA_DIR"`
	PluginDir string `toml:"plugin_dir" env:"PLUGIN_DIR"`

	CameraID int   `toml:"camera_id" env:"CAMERA_ID"`
	Width    int   `toml:"width" env:"WIDTH"`
	Height   int   `toml:"height" env:"HEIGHT"`
	Mirror   *bool `toml:"mirror" env:"MIRROR"`
	// MotionThreshold skips hand detection on frames where no more than
	// this percentage of pixels changed. Zero detects on every frame.
	MotionThreshold float64 `toml:"motion_threshold" env:"MOTION_THRESHOLD"`

	HoldFrames     int     `toml:"hold_frames" env:"HOLD_FRAMES"`
	CooldownFrames int     `toml:"cooldown_frames" env:"COOLDOWN_FRAMES"`
	Handedness     string  `toml:"handedness" env:"HANDEDNESS"`
	MinConfidence  float64 `toml:"min_confidence" env:"MIN_CONFIDENCE"`

	// DrawColor is blue, green, red.
	DrawColor     []int `toml:"draw_color" env:"DRAW_COLOR" envSeparator:","`
	DrawThickness int   `toml:"draw_thickness" env:"DRAW_THICKNESS"`
	PointerRadius int   `toml:"pointer_radius" env:"POINTER_RADIUS"`

	Listen string `toml:"listen" env:"LISTEN"`
	Window *bool  `toml:"window" env:"WINDOW"`
	Tray   bool   `toml:"tray" env:"TRAY"`
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AIRDECK_"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SlidesDir:      "slides",
		DataDir:        defaultDataDir(),
		CameraID:       0,
		Width:          1280,
		Height:         720,
		Mirror:         boolPtr(true),
		HoldFrames:     gesture.DefaultHoldFrames,
		CooldownFrames: presentation.DefaultCooldownFrames,
		Handedness:     string(gesture.HandRight),
		MinConfidence:  0.7,
		DrawColor:      []int{0, 0, 255},
		DrawThickness:  12,
		PointerRadius:  12,
		Window:         boolPtr(true),
	}
}

// Load builds the configuration: defaults, then the config file (if any),
// then AIRDECK_* environment variables.
func Load() (*Config, error) {
	return LoadFile(FilePath())
}

// LoadFile is Load with an explicit config file. An empty path skips the file.
// The file is decoded over the defaults, so keys it sets win even when the
// value is zero and keys it omits keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %q: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.SlidesDir = expandTilde(cfg.SlidesDir)
	cfg.DataDir = expandTilde(cfg.DataDir)
	cfg.PluginDir = expandTilde(cfg.PluginDir)
	if cfg.PluginDir == "" {
		cfg.PluginDir = filepath.Join(cfg.DataDir, "plugins")
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a presenter.
func (c *Config) Validate() error {
	var errs []error
	if c.SlidesDir == "" {
		errs = append(errs, errors.New("slides_dir is required"))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("frame size %dx%d must be positive", c.Width, c.Height))
	}
	if c.HoldFrames < 0 {
		errs = append(errs, fmt.Errorf("hold_frames %d must not be negative", c.HoldFrames))
	}
	if c.CooldownFrames < 0 {
		errs = append(errs, fmt.Errorf("cooldown_frames %d must not be negative", c.CooldownFrames))
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf("min_confidence %g must be within 0..1", c.MinConfidence))
	}
	if len(c.DrawColor) != 3 {
		errs = append(errs, fmt.Errorf("draw_color needs 3 components, got %d", len(c.DrawColor)))
	}
	for _, v := range c.DrawColor {
		if v < 0 || v > 255 {
			errs = append(errs, fmt.Errorf("draw_color component %d out of range", v))
		}
	}
	if c.MotionThreshold < 0 || c.MotionThreshold > 100 {
		errs = append(errs, fmt.Errorf("motion_threshold %g must be within 0..100", c.MotionThreshold))
	}
	if c.DrawThickness <= 0 {
		errs = append(errs, fmt.Errorf("draw_thickness %d must be positive", c.DrawThickness))
	}
	if _, err := gesture.ParseHandedness(c.Handedness); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// MirrorEnabled reports whether webcam frames are flipped before detection.
func (c *Config) MirrorEnabled() bool {
	return c.Mirror == nil || *c.Mirror
}

// WindowEnabled reports whether the output is shown in a window.
func (c *Config) WindowEnabled() bool {
	return c.Window == nil || *c.Window
}

// DatabasePath returns the history database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "airdeck.db")
}

// FilePath returns the config file location, or "" when there is none.
func FilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "airdeck")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "airdeck")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".airdeck")
	}
	return ".airdeck"
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func boolPtr(b bool) *bool {
	return &b
}
