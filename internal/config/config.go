// Package config holds viewer settings read from YAML or TOML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"model-viewer/internal/asset"
	"model-viewer/internal/env"
)

// ConfigPath is the default config file, relative to the process working directory.
const ConfigPath = "config/viewer.yaml"

// DefaultModelURL is the model shown when nothing else is configured.
const DefaultModelURL = "https://media.githubusercontent.com/media/kishorkishor/PAID_Blender_16/main/my%20blender%20project.glb"

// Duration is a time.Duration written as "30s" in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "0" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Window describes the native window the viewer opens.
type Window struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int32  `yaml:"width" toml:"width"`
	Height    int32  `yaml:"height" toml:"height"`
	TargetFPS int32  `yaml:"target_fps" toml:"target_fps"`
	MSAA      bool   `yaml:"msaa" toml:"msaa"`
	HighDPI   bool   `yaml:"high_dpi" toml:"high_dpi"`
}

// Config is the full viewer configuration.
type Config struct {
	ModelURL       string   `yaml:"model_url" toml:"model_url"`
	CacheDir       string   `yaml:"cache_dir" toml:"cache_dir"`
	ReuseCache     bool     `yaml:"reuse_cache" toml:"reuse_cache"`
	DecoderCommand string   `yaml:"decoder_command" toml:"decoder_command"`
	FetchTimeout   Duration `yaml:"fetch_timeout" toml:"fetch_timeout"`

	Exposure      float32 `yaml:"exposure" toml:"exposure"`
	MaxPixelRatio float32 `yaml:"max_pixel_ratio" toml:"max_pixel_ratio"`
	ShowFPS       bool    `yaml:"show_fps" toml:"show_fps"`
	ShowGrid      bool    `yaml:"show_grid" toml:"show_grid"`
	// Font is a font file path or a family name searched under assets/fonts.
	// Empty uses the raylib default font.
	Font string `yaml:"font" toml:"font"`

	LogLevel string `yaml:"log_level" toml:"log_level"`
	LogFile  string `yaml:"log_file" toml:"log_file"`

	Window Window `yaml:"window" toml:"window"`
}

// Default returns the settings the viewer uses when no file is present.
func Default() Config {
	return Config{
		ModelURL:       DefaultModelURL,
		CacheDir:       "cache/models",
		ReuseCache:     true,
		DecoderCommand: asset.DefaultDecoderCommand,
		Exposure:       1.4,
		MaxPixelRatio:  2,
		ShowFPS:        false,
		ShowGrid:       false,
		LogLevel:       "info",
		LogFile:        "logs/viewer.txt",
		Window: Window{
			Title:     "Model Viewer",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
			MSAA:      true,
			HighDPI:   true,
		},
	}
}

// Timeout returns the fetch timeout. Zero means no timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.FetchTimeout)
}

// ResolvedCacheDir expands a leading ~ in CacheDir.
func (c Config) ResolvedCacheDir() (string, error) {
	dir, err := homedir.Expand(c.CacheDir)
	if err != nil {
		return "", fmt.Errorf("config: cache_dir: %w", err)
	}
	return dir, nil
}

// Validate replaces out-of-range values with their defaults.
func (c *Config) Validate() {
	d := Default()
	if c.ModelURL == "" {
		c.ModelURL = d.ModelURL
	}
	if c.CacheDir == "" {
		c.CacheDir = d.CacheDir
	}
	if c.Exposure <= 0 {
		c.Exposure = d.Exposure
	}
	if c.MaxPixelRatio < 1 {
		c.MaxPixelRatio = 1
	}
	if c.FetchTimeout < 0 {
		c.FetchTimeout = 0
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}
	if c.Window.TargetFPS <= 0 {
		c.Window.TargetFPS = d.Window.TargetFPS
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
}

type codec struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return codec{marshal: toml.Marshal, unmarshal: toml.Unmarshal}
	default:
		return codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
	}
}

// Load reads path (YAML, or TOML when the extension is .toml) over Default().
// A missing file gives Default() and no error. A file that fails to parse
// gives Default() and the parse error so the caller can report it.
func Load(path string) (Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: %w", err)
	}
	c := Default()
	if err := codecFor(path).unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	c.Validate()
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := codecFor(path).marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Environment variables read by ApplyEnv.
const (
	EnvModelURL       = "VIEWER_MODEL_URL"
	EnvCacheDir       = "VIEWER_CACHE_DIR"
	EnvDecoderCommand = "VIEWER_DECODER_COMMAND"
	EnvExposure       = "VIEWER_EXPOSURE"
	EnvShowFPS        = "VIEWER_SHOW_FPS"
	EnvShowGrid       = "VIEWER_SHOW_GRID"
	EnvFetchTimeout   = "VIEWER_FETCH_TIMEOUT"
	EnvLogLevel       = "VIEWER_LOG_LEVEL"
	EnvFont           = "VIEWER_FONT"
)

// ApplyEnv overrides c from VIEWER_* variables. Malformed values are
// skipped and reported together.
func (c *Config) ApplyEnv() error {
	var errs []error
	if v, ok := env.String(EnvModelURL); ok {
		c.ModelURL = v
	}
	if v, ok := env.String(EnvCacheDir); ok {
		c.CacheDir = v
	}
	if v, ok := env.String(EnvDecoderCommand); ok {
		c.DecoderCommand = v
	}
	if v, ok := env.String(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := env.String(EnvFont); ok {
		c.Font = v
	}
	if v, ok, err := env.Float(EnvExposure); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.Exposure = v
	}
	if v, ok, err := env.Bool(EnvShowFPS); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.ShowFPS = v
	}
	if v, ok, err := env.Bool(EnvShowGrid); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.ShowGrid = v
	}
	if v, ok, err := env.Duration(EnvFetchTimeout); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.FetchTimeout = Duration(v)
	}
	c.Validate()
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
