package sketch

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/sketch/asset"
)

// Config is the file form of the sketch options.
//
//	width = 640
//	height = 480
//	resources = "./res"
//	origin = "center"
//	time_scale = 0.5
//	log_level = "debug"
//
//	[draw]
//	content = true
//	overlay = false
//	auto_clear = true
type Config struct {
	Width           int      `toml:"width"`
	Height          int      `toml:"height"`
	Resources       string   `toml:"resources"`
	DefaultFont     *string  `toml:"default_font"`
	Origin          string   `toml:"origin"`
	TimeScale       *float64 `toml:"time_scale"`
	AsyncPreload    bool     `toml:"async_preload"`
	HotReload       bool     `toml:"hot_reload"`
	LoadConcurrency int      `toml:"load_concurrency"`
	LogLevel        string   `toml:"log_level"`

	Draw DrawConfig `toml:"draw"`
}

// DrawConfig is the file form of DrawSettings. Unset layers are drawn.
type DrawConfig struct {
	Content   *bool `toml:"content"`
	Overlay   *bool `toml:"overlay"`
	AutoClear bool  `toml:"auto_clear"`
}

// LoadConfig reads and validates a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sketch: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates TOML config data. Unknown keys are
// rejected.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("sketch: parse config at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("sketch: parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, value any, msg string) {
		errs = append(errs, &ConfigError{Field: field, Value: value, Msg: msg})
	}
	if c.Width < 0 {
		bad("width", c.Width, "must not be negative")
	}
	if c.Height < 0 {
		bad("height", c.Height, "must not be negative")
	}
	if c.LoadConcurrency < 0 {
		bad("load_concurrency", c.LoadConcurrency, "must not be negative")
	}
	if _, err := parseOrigin(c.Origin); err != nil {
		bad("origin", c.Origin, err.Error())
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		bad("log_level", c.LogLevel, err.Error())
	}
	if c.DefaultFont != nil && *c.DefaultFont != "" {
		if err := asset.KindFont.Validate(*c.DefaultFont); err != nil {
			bad("default_font", *c.DefaultFont, err.Error())
		}
	}
	return errors.Join(errs...)
}

// Options returns the options described by c.
func (c *Config) Options() []Option {
	var opts []Option
	if c.Width > 0 || c.Height > 0 {
		opts = append(opts, WithSize(c.Width, c.Height))
	}
	if c.Resources != "" {
		opts = append(opts, WithResources(c.Resources))
	}
	if c.DefaultFont != nil {
		opts = append(opts, WithDefaultFont(*c.DefaultFont))
	}
	if origin, err := parseOrigin(c.Origin); err == nil {
		opts = append(opts, WithOrigin(origin))
	}
	if c.TimeScale != nil {
		opts = append(opts, WithTimeScale(*c.TimeScale))
	}
	if c.LoadConcurrency > 0 {
		opts = append(opts, WithLoadConcurrency(c.LoadConcurrency))
	}
	opts = append(opts,
		WithAsyncPreload(c.AsyncPreload),
		WithHotReload(c.HotReload),
		WithDrawSettings(c.Draw.settings()),
	)
	return opts
}

// Level returns the configured log level, Info if unset.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func (d DrawConfig) settings() DrawSettings {
	ds := DefaultDrawSettings()
	if d.Content != nil {
		ds.DrawContent = *d.Content
	}
	if d.Overlay != nil {
		ds.DrawOverlay = *d.Overlay
	}
	ds.AutoClear = d.AutoClear
	return ds
}

func parseOrigin(s string) (Origin, error) {
	switch strings.ToLower(s) {
	case "", "top-left", "topleft":
		return OriginTopLeft, nil
	case "center":
		return OriginCenter, nil
	}
	return 0, errors.New(`want "top-left" or "center"`)
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.New("want debug, info, warn or error")
	}
	return l, nil
}
