// Package config loads the editor and CLI settings from YAML, JSON or TOML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/flowdesk"
	"github.com/aretw0/flowdesk/pkg/viewport"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config holds flowdesk configuration.
type Config struct {
	Canvas  CanvasConfig    `yaml:"canvas" json:"canvas" toml:"canvas"`
	Zoom    viewport.Limits `yaml:"zoom" json:"zoom" toml:"zoom"`
	History HistoryConfig   `yaml:"history" json:"history" toml:"history"`
	Editor  EditorConfig    `yaml:"editor" json:"editor" toml:"editor"`
	Store   StoreConfig     `yaml:"store" json:"store" toml:"store"`
	Log     LogConfig       `yaml:"log" json:"log" toml:"log"`
}

// CanvasConfig is the visible canvas size in pixels.
type CanvasConfig struct {
	Width  float64 `yaml:"width" json:"width" toml:"width"`
	Height float64 `yaml:"height" json:"height" toml:"height"`
}

// HistoryConfig bounds the undo history. Zero means unbounded.
type HistoryConfig struct {
	Limit int `yaml:"limit" json:"limit" toml:"limit"`
}

// EditorConfig toggles strict editing rules.
type EditorConfig struct {
	StrictConnections bool `yaml:"strict_connections" json:"strict_connections" toml:"strict_connections"`
	StrictLoad        bool `yaml:"strict_load" json:"strict_load" toml:"strict_load"`
}

// StoreConfig selects the definition store.
type StoreConfig struct {
	Driver string      `yaml:"driver" json:"driver" toml:"driver"` // "memory", "file", "redis"
	Path   string      `yaml:"path" json:"path" toml:"path"`
	Format string      `yaml:"format" json:"format" toml:"format"` // "json", "yaml"
	Redis  RedisConfig `yaml:"redis" json:"redis" toml:"redis"`
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string   `yaml:"addr" json:"addr" toml:"addr"`
	Password string   `yaml:"password" json:"password" toml:"password"`
	DB       int      `yaml:"db" json:"db" toml:"db"`
	Prefix   string   `yaml:"prefix" json:"prefix" toml:"prefix"`
	TTL      Duration `yaml:"ttl" json:"ttl" toml:"ttl"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" toml:"level"`
	Format string `yaml:"format" json:"format" toml:"format"` // "text", "json"
}

// Duration is a time.Duration written as a string such as "90s" or "24h".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: flowdesk.DefaultCanvas.Width, Height: flowdesk.DefaultCanvas.Height},
		Zoom:   viewport.DefaultLimits,
		Store: StoreConfig{
			Driver: DriverFile,
			Path:   filepath.Join(".flowdesk", "definitions"),
			Format: "json",
			Redis:  RedisConfig{Addr: "localhost:6379"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the config file at path on top of the defaults. The format is
// chosen by extension. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height))
	}
	if !c.Zoom.Valid() {
		errs = append(errs, fmt.Errorf("zoom limits invalid: min=%v max=%v step=%v", c.Zoom.MinZoom, c.Zoom.MaxZoom, c.Zoom.Step))
	}
	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history limit cannot be negative"))
	}
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	switch c.Store.Format {
	case "", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("unknown store format %q", c.Store.Format))
	}
	return errors.Join(errs...)
}

// SessionOptions converts the editor settings into session options.
func (c *Config) SessionOptions() []flowdesk.Option {
	return []flowdesk.Option{
		flowdesk.WithCanvasSize(flowdesk.CanvasSize{Width: c.Canvas.Width, Height: c.Canvas.Height}),
		flowdesk.WithZoomLimits(c.Zoom),
		flowdesk.WithHistoryLimit(c.History.Limit),
		flowdesk.WithStrictConnections(c.Editor.StrictConnections),
		flowdesk.WithStrictLoad(c.Editor.StrictLoad),
	}
}
