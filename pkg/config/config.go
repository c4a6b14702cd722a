// Package config handles loading and saving lr configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/lr/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BehaviorConfig holds the scroll-behavior constants. Durations are plain
// milliseconds so the file stays yaml-friendly.
type BehaviorConfig struct {
	MastheadThreshold int `yaml:"masthead_threshold,omitempty"` // rows scrolled before the masthead compacts
	TOCThreshold      int `yaml:"toc_threshold,omitempty"`      // rows scrolled before the TOC reveals
	TOCRevealDelayMS  int `yaml:"toc_reveal_delay_ms,omitempty"`
	NavOffset         int `yaml:"nav_offset,omitempty"` // rows left above a navigated-to section
	ResizeDebounceMS  int `yaml:"resize_debounce_ms,omitempty"`
	ToastDurationMS   int `yaml:"toast_duration_ms,omitempty"`
	HeroStaggerMS     int `yaml:"hero_stagger_ms,omitempty"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	Theme    string `yaml:"theme,omitempty"`     // glamour style: auto, dark, light, notty
	WidthCap int    `yaml:"width_cap,omitempty"` // max rendered column width
}

// Config is the top-level configuration for lr.
type Config struct {
	ReducedMotion bool           `yaml:"reduced_motion,omitempty"`
	ShareCommand  string         `yaml:"share_command,omitempty"`
	UI            UIConfig       `yaml:"ui,omitempty"`
	Behavior      BehaviorConfig `yaml:"behavior,omitempty"`
}

// DefaultConfig returns a Config with the stock thresholds.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme:    "auto",
			WidthCap: 100,
		},
		Behavior: BehaviorConfig{
			MastheadThreshold: 100,
			TOCThreshold:      200,
			TOCRevealDelayMS:  500,
			NavOffset:         80,
			ResizeDebounceMS:  250,
			ToastDurationMS:   3000,
			HeroStaggerMS:     200,
		},
	}
}

// TOCRevealDelay returns the startup TOC reveal delay.
func (b BehaviorConfig) TOCRevealDelay() time.Duration {
	return time.Duration(b.TOCRevealDelayMS) * time.Millisecond
}

// ResizeDebounce returns the resize quiescence window.
func (b BehaviorConfig) ResizeDebounce() time.Duration {
	return time.Duration(b.ResizeDebounceMS) * time.Millisecond
}

// ToastDuration returns how long a toast stays visible.
func (b BehaviorConfig) ToastDuration() time.Duration {
	return time.Duration(b.ToastDurationMS) * time.Millisecond
}

// HeroStagger returns the staggered hero reveal delay.
func (b BehaviorConfig) HeroStagger() time.Duration {
	return time.Duration(b.HeroStaggerMS) * time.Millisecond
}

// ConfigDir returns the XDG config directory for lr.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lr")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lr")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory and applies env
// overrides. Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return applyEnv(DefaultConfig()), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Missing fields keep their
// defaults; the LR_REDUCED_MOTION env var wins over the file.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return applyEnv(DefaultConfig()), fmt.Errorf("parse %s: %w", path, err)
	}
	return applyEnv(cfg), nil
}

// Save writes the config to the XDG config path, creating the directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnv captures the motion-reduction preference once at load time; it is
// not re-evaluated on live preference change.
func applyEnv(cfg Config) Config {
	if v, ok := os.LookupEnv("LR_REDUCED_MOTION"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "no":
			cfg.ReducedMotion = false
		default:
			cfg.ReducedMotion = true
		}
	}
	return cfg
}
