// Package config loads slate's settings: defaults, then an optional YAML
// file, then SLATE_* environment variables. Flags stay in the CLI layer and
// win over everything here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type SidebarConfig struct {
	Width       int     `mapstructure:"width"`
	RecentCap   int     `mapstructure:"recent_cap"`
	AnimationMS int     `mapstructure:"animation_ms"`
	Hysteresis  float64 `mapstructure:"hysteresis"`
	Crossing    float64 `mapstructure:"crossing"`
}

type LogConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Path of the log file. Empty means <workspace>/slate.log.
	Path string `mapstructure:"path"`
}

type Config struct {
	// Dir is the workspace directory. Empty means DefaultDir().
	Dir     string        `mapstructure:"dir"`
	Sidebar SidebarConfig `mapstructure:"sidebar"`
	Log     LogConfig     `mapstructure:"log"`
}

func Default() Config {
	return Config{
		Dir: "",
		Sidebar: SidebarConfig{
			Width:       32,
			RecentCap:   50,
			AnimationMS: 200,
			Hysteresis:  0.2,
			Crossing:    0.8,
		},
		Log: LogConfig{
			Enabled: true,
			Path:    "",
		},
	}
}

// DefaultDir is the workspace used when nothing else names one.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".slate"), nil
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "slate", "config.yaml"), nil
}

// Load reads the config file named by SLATE_CONFIG, or the default
// ~/.config/slate/config.yaml. A missing file is fine; a present but
// unparseable one is not silently ignored.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("SLATE_CONFIG")
	if path == "" {
		p, err := xdgConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// defaults
	v.SetDefault("dir", cfg.Dir)
	v.SetDefault("sidebar.width", cfg.Sidebar.Width)
	v.SetDefault("sidebar.recent_cap", cfg.Sidebar.RecentCap)
	v.SetDefault("sidebar.animation_ms", cfg.Sidebar.AnimationMS)
	v.SetDefault("sidebar.hysteresis", cfg.Sidebar.Hysteresis)
	v.SetDefault("sidebar.crossing", cfg.Sidebar.Crossing)
	v.SetDefault("log.enabled", cfg.Log.Enabled)
	v.SetDefault("log.path", cfg.Log.Path)

	// SLATE_DIR, SLATE_SIDEBAR_WIDTH, ...
	v.SetEnvPrefix("slate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize floors the integer knobs; the drag engine validates its own
// fractions separately.
func (c *Config) normalize() {
	d := Default()
	if c.Sidebar.Width < 16 {
		c.Sidebar.Width = d.Sidebar.Width
	}
	if c.Sidebar.RecentCap <= 0 {
		c.Sidebar.RecentCap = d.Sidebar.RecentCap
	}
	if c.Sidebar.AnimationMS <= 0 {
		c.Sidebar.AnimationMS = d.Sidebar.AnimationMS
	}
}
