// Package config loads the user configuration from YAML, with defaults and
// GOMEASURE_* environment overrides applied on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gomeasure/internal/log"
	"github.com/philipparndt/gomeasure/internal/measurement"
)

// CurrentVersion is the config_version written by Save
const CurrentVersion = 1

// ErrUnsupportedVersion is returned for files written by a newer release
var ErrUnsupportedVersion = errors.New("unsupported config version")

type MeasurementConfig struct {
	DefaultMode     string  `yaml:"default_mode"`
	SnapThreshold   float64 `yaml:"snap_threshold"`
	PlaneEpsilon    float64 `yaml:"plane_epsilon"`
	SameSurfaceLock bool    `yaml:"same_surface_lock"`
}

type OverlayConfig struct {
	MarkerRadius float64 `yaml:"marker_radius"`
	ArcRadius    float64 `yaml:"arc_radius"`
	LabelOffset  float64 `yaml:"label_offset"`
	FontSize     float64 `yaml:"font_size"`
	LabelPadding float64 `yaml:"label_padding"`
	LineWidth    float64 `yaml:"line_width"`
}

type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	FPS        int  `yaml:"fps"`
	Watch      bool `yaml:"watch"`
	DebounceMs int  `yaml:"debounce_ms"`
	Wireframe  bool `yaml:"wireframe"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Config is the persisted user configuration
type Config struct {
	ConfigVersion int               `yaml:"config_version"`
	Measurement   MeasurementConfig `yaml:"measurement"`
	Overlay       OverlayConfig     `yaml:"overlay"`
	Viewer        ViewerConfig      `yaml:"viewer"`
	Logging       LoggingConfig     `yaml:"logging"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	style := measurement.DefaultStyle()
	return Config{
		ConfigVersion: CurrentVersion,
		Measurement: MeasurementConfig{
			DefaultMode:   measurement.ModeLength.String(),
			SnapThreshold: measurement.DefaultSnapThreshold,
			PlaneEpsilon:  measurement.DefaultPlaneEpsilon,
		},
		Overlay: OverlayConfig{
			MarkerRadius: style.MarkerRadius,
			ArcRadius:    style.ArcRadius,
			LabelOffset:  style.LabelOffset,
			FontSize:     style.FontSize,
			LabelPadding: style.LabelPadding,
			LineWidth:    style.LineWidth,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     800,
			FPS:        60,
			Watch:      true,
			DebounceMs: 500,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides
const (
	EnvMode          = "GOMEASURE_MODE"
	EnvSnapThreshold = "GOMEASURE_SNAP_THRESHOLD"
	EnvPlaneEpsilon  = "GOMEASURE_PLANE_EPSILON"
	EnvSameSurface   = "GOMEASURE_SAME_SURFACE_LOCK"
	EnvWatch         = "GOMEASURE_WATCH"

	// EnvPath names the config file when no --config flag is given
	EnvPath = "GOMEASURE_CONFIG"
)

// DefaultPath returns the per-user config file path
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(base, "gomeasure", "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides. An
// empty path means DefaultPath. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if cfg.ConfigVersion > CurrentVersion {
			return cfg, fmt.Errorf("%s has version %d: %w", path, cfg.ConfigVersion, ErrUnsupportedVersion)
		}
		normalize(&cfg)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory when needed
func Save(path string, cfg Config) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	cfg.ConfigVersion = CurrentVersion
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Encode renders cfg as YAML
func Encode(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func normalize(cfg *Config) {
	if cfg.ConfigVersion == 0 {
		cfg.ConfigVersion = CurrentVersion
	}
	cfg.Measurement.DefaultMode = strings.ToLower(strings.TrimSpace(cfg.Measurement.DefaultMode))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.File = strings.TrimSpace(cfg.Logging.File)
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvMode)); v != "" {
		cfg.Measurement.DefaultMode = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapThreshold)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Measurement.SnapThreshold = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPlaneEpsilon)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Measurement.PlaneEpsilon = f
		}
	}
	if v, ok := envBool(EnvSameSurface); ok {
		cfg.Measurement.SameSurfaceLock = v
	}
	if v, ok := envBool(EnvWatch); ok {
		cfg.Viewer.Watch = v
	}
	if v := strings.TrimSpace(os.Getenv(log.EnvLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(log.EnvFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v, ok := envBool(log.EnvSource); ok {
		cfg.Logging.Source = v
	}
	if v := strings.TrimSpace(os.Getenv(log.EnvFile)); v != "" {
		cfg.Logging.File = v
	}
}

func envBool(key string) (bool, bool) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return false, false
	}
	return v == "1" || v == "true" || v == "on" || v == "yes", true
}

// Mode returns the configured start mode
func (c Config) Mode() (measurement.Mode, error) {
	if c.Measurement.DefaultMode == "" {
		return measurement.ModeLength, nil
	}
	return measurement.ParseMode(c.Measurement.DefaultMode)
}

// Style overlays the configured sizes on the default colors
func (c Config) Style() measurement.Style {
	s := measurement.DefaultStyle()
	o := c.Overlay
	setPositive(&s.MarkerRadius, o.MarkerRadius)
	setPositive(&s.ArcRadius, o.ArcRadius)
	setPositive(&s.LabelOffset, o.LabelOffset)
	setPositive(&s.FontSize, o.FontSize)
	setPositive(&s.LabelPadding, o.LabelPadding)
	setPositive(&s.LineWidth, o.LineWidth)
	return s
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// SessionOptions maps the measurement section to session options
func (c Config) SessionOptions() ([]measurement.Option, error) {
	mode, err := c.Mode()
	if err != nil {
		return nil, err
	}
	return []measurement.Option{
		measurement.WithMode(mode),
		measurement.WithSnapThreshold(c.Measurement.SnapThreshold),
		measurement.WithPlaneEpsilon(c.Measurement.PlaneEpsilon),
		measurement.WithSameSurfaceLock(c.Measurement.SameSurfaceLock),
	}, nil
}

// LogOptions maps the logging section to logger options
func (c Config) LogOptions() log.Options {
	return log.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

// Debounce returns the watcher debounce interval
func (v ViewerConfig) Debounce() time.Duration {
	if v.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(v.DebounceMs) * time.Millisecond
}
